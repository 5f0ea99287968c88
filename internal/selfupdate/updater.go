package selfupdate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"
)

var (
	ErrDevBuild      = errors.New("cannot update a development build")
	ErrAlreadyLatest = errors.New("already running the latest version")
	ErrChecksum      = errors.New("checksum verification failed")
)

// maxDownload caps any single release download.
const maxDownload = 256 << 20

// Stage names a step of an update as reported to the progress callback.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageExtract  Stage = "extract"
	StageApply    Stage = "apply"
	StageDone     Stage = "done"
)

type UpdateInput struct {
	CurrentVersion string

	// TargetVersion pins a release tag. Empty means the latest release.
	TargetVersion string
}

type UpdateProgress struct {
	Stage   Stage
	Message string
}

// releaseFiles locates the downloadable files of one tagged release.
type releaseFiles struct {
	base  string
	owner string
	repo  string
	tag   string
	asset string
}

func (r releaseFiles) url(file string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s", r.base, r.owner, r.repo, r.tag, file)
}

// Update downloads the release archive for this platform, checks it against
// the published checksums and swaps it in for the running binary. progress
// may be nil.
func (c *Checker) Update(ctx context.Context, input *UpdateInput, progress func(UpdateProgress)) error {
	if input.CurrentVersion == "(devel)" {
		return ErrDevBuild
	}
	report := func(stage Stage, format string, args ...any) {
		if progress != nil {
			progress(UpdateProgress{Stage: stage, Message: fmt.Sprintf(format, args...)})
		}
	}

	tag := input.TargetVersion
	if tag == "" {
		report(StageCheck, "Checking for latest version...")
		res, err := c.Check(ctx, &CheckInput{Version: input.CurrentVersion})
		if err != nil {
			return fmt.Errorf("check for updates: %w", err)
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		tag = res.LatestVersion
	}

	asset, err := assetName()
	if err != nil {
		return err
	}
	rel := releaseFiles{
		base:  strings.TrimRight(c.downloadBaseURL, "/"),
		owner: c.owner,
		repo:  c.repo,
		tag:   tag,
		asset: asset,
	}

	report(StageDownload, "Downloading %s...", tag)
	archive, err := c.download(ctx, rel.url(asset))
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	report(StageVerify, "Verifying checksum...")
	sums, err := c.download(ctx, rel.url("checksums.txt"))
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[asset]
	if !ok {
		return fmt.Errorf("no checksum found for %s in checksums.txt", asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	report(StageExtract, "Extracting binary...")
	binary, err := extractBinary(archive, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	report(StageApply, "Applying update...")
	target, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable path: %w", err)
	}
	if err := applyUpdate(binary, target); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}

	report(StageDone, "Updated to %s", tag)
	return nil
}

func assetName() (string, error) {
	return assetNameFor(runtime.GOOS, runtime.GOARCH)
}

// assetNameFor mirrors the archive names produced by the release build.
func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return "codemaster_Darwin_all.tar.gz", nil
	}

	arch, ok := map[string]string{"amd64": "x86_64", "arm64": "arm64", "386": "i386"}[goarch]
	switch {
	case goos != "linux" && goos != "windows":
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	case !ok:
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	case goos == "windows":
		return "codemaster_Windows_" + arch + ".zip", nil
	}
	return "codemaster_Linux_" + arch + ".tar.gz", nil
}

func (c *Checker) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDownload {
		return nil, fmt.Errorf("%s exceeds %d bytes", url, maxDownload)
	}
	return data, nil
}

// parseChecksums reads "<sha256>  <file>" lines as written by sha256sum.
func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		sums[strings.TrimPrefix(fields[1], "*")] = strings.ToLower(fields[0])
	}
	return sums
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	got := hex.EncodeToString(sum[:])
	if !strings.EqualFold(got, wantHex) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}
