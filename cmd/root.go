package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/abhisek/codemaster/internal/llm"
	"github.com/abhisek/codemaster/internal/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codemaster [file]",
	Short: "AI code tutor for the terminal",
	Long: `CodeMaster AI turns a code snippet into a learning module: an explanation,
a step-by-step tutorial, an advanced example, and a quiz mixing multiple choice
with coding tasks graded by the model.`,
	Args: cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnv(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, args)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CODEMASTER_DB env var)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Environment file to load before reading configuration")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: gemini, openai, anthropic, openrouter or mock (overrides CODEMASTER_LLM_PROVIDER)")
	rootCmd.PersistentFlags().String("model", "", "Model for the selected provider")

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// loadEnv reads the --env-file into the environment. Variables already
// set win, and a missing file is not an error.
func loadEnv(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("env-file")
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		if err := os.Setenv("CODEMASTER_LLM_PROVIDER", p); err != nil {
			return err
		}
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CODEMASTER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// providerFromFlags builds the LLM provider from the environment, applying
// --model. A nil repo disables event logging.
func providerFromFlags(cmd *cobra.Command, repo store.EventRepo) (llm.Provider, error) {
	model, _ := cmd.Flags().GetString("model")
	return llm.NewProviderFromEnv(cmd.Context(), repo, func(c *llm.Config) {
		if model != "" {
			c.SetModel(model)
		}
	})
}
