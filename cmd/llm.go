package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/abhisek/codemaster/internal/llm"
	"github.com/abhisek/codemaster/internal/store"
	"github.com/abhisek/codemaster/internal/tutor"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded LLM calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM calls, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts store.QueryOpts
		opts.Limit, _ = cmd.Flags().GetInt("limit")
		opts.Purpose, _ = cmd.Flags().GetString("purpose")
		opts.Trace, _ = cmd.Flags().GetString("module")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		return printEventList(cmd.OutOrStdout(), events)
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and response of one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		printEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		printStats(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show "+tutor.PurposeModule+" or "+tutor.PurposeEvaluation+" calls")
	llmListCmd.Flags().StringP("module", "m", "", "Only show calls made for this module ID")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}

func printEventList(w io.Writer, events []store.LLMEvent) error {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM events found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tPURPOSE\tMODEL\tIN\tOUT\tMS\tOK")
	for _, e := range events {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			e.ID,
			e.Timestamp.Local().Format(timeLayout),
			e.Purpose,
			truncate(e.Model, 28),
			e.InputTokens,
			e.OutputTokens,
			e.LatencyMs,
			lo.Ternary(e.Success, "✓", "✗"),
		)
	}
	return tw.Flush()
}

func printEvent(w io.Writer, e *store.LLMEvent) {
	field := func(name, value string) { fmt.Fprintf(w, "%-10s %s\n", name+":", value) }

	field("ID", strconv.Itoa(e.ID))
	field("Time", e.Timestamp.Local().Format(timeLayout))
	field("Provider", e.Provider)
	field("Model", e.Model)
	field("Purpose", e.Purpose)
	if e.Trace != "" {
		field("Module", e.Trace)
	}
	field("Tokens", fmt.Sprintf("%d in / %d out", e.InputTokens, e.OutputTokens))
	field("Latency", fmt.Sprintf("%dms", e.LatencyMs))
	field("Success", strconv.FormatBool(e.Success))
	if e.ErrorMessage != "" {
		field("Error", e.ErrorMessage)
	}

	section := func(title, body string) {
		rule := strings.Repeat("─", 60)
		fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
		fmt.Fprintln(w, lo.Ternary(body == "", "(not captured)", body))
	}
	section("REQUEST", e.RequestBody)
	section("RESPONSE", e.ResponseBody)
}

func printStats(w io.Writer, byPurpose, byModel []store.LLMUsage) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return
	}

	fmt.Fprintln(w, "Usage by purpose")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PURPOSE\tCALLS\tINPUT\tOUTPUT\tTOTAL\tAVG MS\t")
	for _, u := range byPurpose {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t\n",
			u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
	}
	calls := lo.SumBy(byPurpose, func(u store.LLMUsage) int { return u.Calls })
	in := lo.SumBy(byPurpose, func(u store.LLMUsage) int { return u.InputTokens })
	out := lo.SumBy(byPurpose, func(u store.LLMUsage) int { return u.OutputTokens })
	fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%d\t%d\t\t\n", calls, in, out, in+out)
	tw.Flush()

	if len(byModel) == 0 {
		return
	}

	fmt.Fprintln(w, "\nEstimated cost (USD)")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MODEL\tCALLS\tINPUT\tOUTPUT\tCOST\t")
	var total float64
	var unknown []string
	for _, u := range byModel {
		cost := "?"
		if c, ok := llm.EstimateCost(u.Model, u.InputTokens, u.OutputTokens); ok {
			total += c
			cost = formatCost(c)
		} else {
			unknown = append(unknown, u.Model)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t\n", truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
	}
	fmt.Fprintf(tw, "%s\t\t\t\t%s\t\n", lo.Ternary(len(unknown) > 0, "TOTAL (partial)", "TOTAL"), formatCost(total))
	tw.Flush()

	if len(unknown) > 0 {
		fmt.Fprintf(w, "\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}
