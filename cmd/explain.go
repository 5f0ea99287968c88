package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/codemaster/internal/tutor"
	"github.com/abhisek/codemaster/internal/ui/components"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <file|->",
	Short: "Generate a learning module and print it",
	Long: `Generate a learning module for a source file (or stdin with "-") and print
the explanation, tutorial and example. Use --json to dump the whole module,
quiz included.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().Bool("json", false, "Print the module as JSON")
	explainCmd.Flags().Bool("plain", false, "Print Markdown without terminal styling")
	explainCmd.Flags().StringSlice("section", []string{"explanation", "tutorial", "example"}, "Sections to print")
	explainCmd.Flags().Int("width", 100, "Wrap width for styled output")
}

func runExplain(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	plain, _ := cmd.Flags().GetBool("plain")
	sections, _ := cmd.Flags().GetStringSlice("section")
	width, _ := cmd.Flags().GetInt("width")

	src, err := readSource(args[0])
	if err != nil {
		return err
	}

	client, closeFn, err := newTutorClient(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	fmt.Fprintln(os.Stderr, "Generating learning module...")
	mod, err := client.RequestModule(cmd.Context(), src)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(moduleJSON(mod))
	}

	fmt.Fprintf(out, "%s MODULE\n\n", strings.ToUpper(mod.Language))
	for _, name := range sections {
		text, title, err := section(mod, name)
		if err != nil {
			return err
		}
		printSection(out, title, text, plain, width)
	}
	return nil
}

func section(mod *tutor.Module, name string) (text, title string, err error) {
	switch strings.ToLower(name) {
	case "explanation":
		return mod.Explanation, "Explanation", nil
	case "tutorial":
		return mod.Tutorial, "Tutorial", nil
	case "example":
		return mod.Example, "Pro Example", nil
	}
	return "", "", fmt.Errorf("unknown section %q: must be explanation, tutorial or example", name)
}

func printSection(w io.Writer, title, text string, plain bool, width int) {
	if plain {
		fmt.Fprintf(w, "# %s\n\n%s\n\n", title, text)
		return
	}
	fmt.Fprintf(w, "── %s ──\n\n%s\n\n", title, components.RenderMarkdown(text, width))
}

// readSource reads a source file, or stdin for "-".
func readSource(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

// newTutorClient opens the event store and builds a client whose LLM calls
// are logged to it.
func newTutorClient(cmd *cobra.Command) (*tutor.Client, func(), error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	provider, err := providerFromFlags(cmd, st.EventRepo())
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("LLM provider: %w", err)
	}
	return tutor.NewClient(provider, tutor.DefaultConfig()), func() { st.Close() }, nil
}

type questionJSON struct {
	Type               string   `json:"type"`
	Question           string   `json:"question"`
	Explanation        string   `json:"explanation"`
	Options            []string `json:"options,omitempty"`
	CorrectAnswerIndex *int     `json:"correctAnswerIndex,omitempty"`
	Task               string   `json:"task,omitempty"`
	StarterCode        *string  `json:"starterCode,omitempty"`
	Solution           string   `json:"solution,omitempty"`
}

type moduleJSONOut struct {
	ID          string         `json:"id"`
	Language    string         `json:"language"`
	Explanation string         `json:"explanation"`
	Tutorial    string         `json:"tutorial"`
	Example     string         `json:"example"`
	Quiz        []questionJSON `json:"quiz"`
}

func moduleJSON(mod *tutor.Module) moduleJSONOut {
	out := moduleJSONOut{
		ID:          mod.ID,
		Language:    mod.Language,
		Explanation: mod.Explanation,
		Tutorial:    mod.Tutorial,
		Example:     mod.Example,
		Quiz:        make([]questionJSON, 0, len(mod.Quiz)),
	}
	for _, q := range mod.Quiz {
		qj := questionJSON{
			Type:        string(q.Kind()),
			Question:    q.Prompt(),
			Explanation: q.Explanation(),
		}
		switch q := q.(type) {
		case *tutor.ChoiceQuestion:
			idx := q.CorrectIndex
			qj.Options = q.Options
			qj.CorrectAnswerIndex = &idx
		case *tutor.CodeQuestion:
			starter := q.StarterCode
			qj.Task = q.Task
			qj.StarterCode = &starter
			qj.Solution = q.Solution
		}
		out.Quiz = append(out.Quiz, qj)
	}
	return out
}
