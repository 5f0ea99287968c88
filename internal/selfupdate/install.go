package selfupdate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// applyUpdate replaces target with binary, keeping target's permissions.
// The new file is staged next to target so the final rename stays on one
// filesystem, and it is re-read before the swap to catch a bad write.
func applyUpdate(binary []byte, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	staged, err := os.CreateTemp(filepath.Dir(target), ".codemaster-update-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	stagedPath := staged.Name()
	defer func() { _ = os.Remove(stagedPath) }()

	if _, err := staged.Write(binary); err != nil {
		_ = staged.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := staged.Sync(); err != nil {
		_ = staged.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := staged.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	written, err := os.ReadFile(stagedPath)
	if err != nil {
		return fmt.Errorf("re-read temp file: %w", err)
	}
	if !bytes.Equal(written, binary) {
		return fmt.Errorf("%w: staged binary differs from download", ErrChecksum)
	}

	if err := os.Chmod(stagedPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(stagedPath, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
