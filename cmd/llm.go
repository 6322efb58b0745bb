package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/novapath/trident/internal/llm"
	"github.com/novapath/trident/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect logged language model requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model requests, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit}
		if since > 0 {
			opts.From = time.Now().Add(-since)
		}
		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if purpose != "" {
			kept := events[:0]
			for _, e := range events {
				if e.Purpose == purpose {
					kept = append(kept, e)
				}
			}
			events = kept
		}
		return writeLLMEvents(cmd.OutOrStdout(), events)
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one request with its prompt and response",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", args[0], err)
		}

		s, err := openStore()
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
		return writeLLMEvent(cmd.OutOrStdout(), e)
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage by purpose and estimated cost by model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
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
		return writeLLMStats(cmd.OutOrStdout(), byPurpose, byModel)
	},
}

func writeLLMEvents(w io.Writer, events []store.LLMEvent) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(w, "No LLM events found.")
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-5s  %-19s  %-10s  %-11s  %-26s  %6s  %6s  %7s  %s\n",
		"ID", "Time", "Purpose", "Provider", "Model", "In", "Out", "Ms", "OK")
	b.WriteString(rule(104))
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		fmt.Fprintf(&b, "%-5d  %-19s  %-10s  %-11s  %-26s  %6d  %6d  %7d  %s\n",
			e.ID, e.Timestamp.Local().Format(timeLayout), truncate(e.Purpose, 10),
			truncate(e.Provider, 11), truncate(e.Model, 26),
			e.InputTokens, e.OutputTokens, e.LatencyMs, ok)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeLLMEvent(w io.Writer, e *store.LLMEvent) error {
	var b strings.Builder
	field := func(name, format string, args ...any) {
		fmt.Fprintf(&b, "%-10s "+format+"\n", append([]any{name + ":"}, args...)...)
	}
	field("ID", "%d", e.ID)
	field("Time", "%s", e.Timestamp.Local().Format(timeLayout))
	field("Provider", "%s", e.Provider)
	field("Model", "%s", e.Model)
	field("Purpose", "%s", e.Purpose)
	field("Tokens", "%d in / %d out", e.InputTokens, e.OutputTokens)
	field("Latency", "%dms", e.LatencyMs)
	field("Success", "%v", e.Success)
	if e.ErrorMessage != "" {
		field("Error", "%s", e.ErrorMessage)
	}

	for _, part := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		body := part.body
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintf(&b, "\n%s%s\n%s%s\n", rule(60), part.title, rule(60), body)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeLLMStats(w io.Writer, byPurpose, byModel []store.LLMUsage) error {
	if len(byPurpose) == 0 {
		_, err := fmt.Fprintln(w, "No LLM usage recorded yet.")
		return err
	}

	var b strings.Builder
	b.WriteString("Usage by Purpose\n")
	b.WriteString(rule(72))
	fmt.Fprintf(&b, "%-16s  %6s  %10s  %10s  %10s  %8s\n", "Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
	b.WriteString(rule(72))
	var total store.LLMUsage
	for _, u := range byPurpose {
		fmt.Fprintf(&b, "%-16s  %6d  %10d  %10d  %10d  %8d\n",
			truncate(u.Purpose, 16), u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		total.Calls += u.Calls
		total.InputTokens += u.InputTokens
		total.OutputTokens += u.OutputTokens
	}
	b.WriteString(rule(72))
	fmt.Fprintf(&b, "%-16s  %6d  %10d  %10d  %10d\n",
		"TOTAL", total.Calls, total.InputTokens, total.OutputTokens, total.InputTokens+total.OutputTokens)

	if len(byModel) > 0 {
		b.WriteString("\nEstimated Cost (USD)\n")
		b.WriteString(rule(72))
		fmt.Fprintf(&b, "%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
		b.WriteString(rule(72))

		var sum float64
		var unpriced []string
		for _, u := range byModel {
			cost := "?"
			if rate := llm.LookupCost(u.Model); rate != nil {
				c := rate.Cost(u.InputTokens, u.OutputTokens)
				sum += c
				cost = formatCost(c)
			} else {
				unpriced = append(unpriced, u.Model)
			}
			fmt.Fprintf(&b, "%-32s  %6d  %10d  %10d  %10s\n",
				truncate(u.Model, 32), u.Calls, u.InputTokens, u.OutputTokens, cost)
		}
		b.WriteString(rule(72))
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Fprintf(&b, "%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(sum))
		if len(unpriced) > 0 {
			fmt.Fprintf(&b, "\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func rule(n int) string {
	return strings.Repeat("─", n) + "\n"
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

// openStore opens the configured database without loading a question bank.
func openStore() (*store.Store, error) {
	dbPath, err := resolveDBPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show this purpose (e.g. guidance)")
	llmListCmd.Flags().Duration("since", 0, "Only show events newer than this, e.g. 24h")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
