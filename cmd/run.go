package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abhisek/codemaster/internal/app"
	"github.com/abhisek/codemaster/internal/llm"
	"github.com/abhisek/codemaster/internal/store"
	"github.com/abhisek/codemaster/internal/tutor"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, args []string) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	opts := app.Options{
		EventRepo: eventRepo,
	}

	if len(args) == 1 {
		src, err := readSource(args[0])
		if err != nil {
			return err
		}
		opts.Source = src
	}

	provider, err := providerFromFlags(cmd, eventRepo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will be unavailable.")
		opts.TutorErr = err
	} else {
		opts.Tutor = tutor.NewClient(provider, tutor.DefaultConfig())
	}

	// The TUI owns the terminal; warnings go to a log beside the database.
	logPath := filepath.Join(filepath.Dir(dbPath), "codemaster.log")
	if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
		defer f.Close()
		prev := llm.Warnings
		llm.Warnings = f
		defer func() { llm.Warnings = prev }()
	}

	return app.Run(opts)
}
