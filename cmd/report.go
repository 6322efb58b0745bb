package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/novapath/trident/internal/assessment"
	"github.com/novapath/trident/internal/guidance"
	"github.com/novapath/trident/internal/identity"
	"github.com/novapath/trident/internal/report"
	"github.com/novapath/trident/internal/session"
)

var reportCmd = &cobra.Command{
	Use:   "report <user-id>",
	Short: "Print the results of a completed assessment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		withGuidance, _ := cmd.Flags().GetBool("guidance")
		top := cfg.TopN
		if cmd.Flags().Changed("top") {
			top, _ = cmd.Flags().GetInt("top")
		}

		id, err := identity.Normalize(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		d, err := openDeps(ctx, depsOptions{})
		if err != nil {
			return err
		}
		defer d.Close()

		sess, err := d.sessions.Lookup(ctx, identity.Key(id))
		if errors.Is(err, session.ErrNotFound) {
			return fmt.Errorf("no assessment found for %q", id)
		}
		if err != nil {
			return err
		}
		sum, err := d.sessions.Summary(sess, top)
		if errors.Is(err, assessment.ErrIncomplete) {
			return fmt.Errorf("assessment for %q is not complete: %d of %d answered", id, sess.Answered(), sess.Total())
		}
		if err != nil {
			return err
		}

		var g *guidance.Guidance
		if withGuidance {
			if g, err = d.guidance.Generate(ctx, sum); err != nil {
				return fmt.Errorf("generate guidance: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				*report.Summary
				Guidance *guidance.Guidance `json:"guidance,omitempty"`
			}{sum, g})
		}
		if err := report.WriteText(out, sum); err != nil {
			return err
		}
		return writeGuidance(out, g)
	},
}

func writeGuidance(w io.Writer, g *guidance.Guidance) error {
	if g == nil {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\nCareer guidance (%s)\n%s\n", g.Source, strings.Repeat("─", 60))
	for _, n := range g.Types {
		fmt.Fprintf(&b, "  %s: %s\n", n.Trait, n.Description)
	}
	if len(g.Careers) > 0 {
		fmt.Fprintf(&b, "Careers:            %s\n", strings.Join(g.Careers, ", "))
	}
	if g.RecommendedStream != "" {
		fmt.Fprintf(&b, "Recommended stream: %s\n", g.RecommendedStream)
	}
	if g.LearningTips != "" {
		fmt.Fprintf(&b, "Learning tips:      %s\n", g.LearningTips)
	}
	for _, tip := range g.ActionTips {
		fmt.Fprintf(&b, "  - %s\n", tip)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func init() {
	reportCmd.Flags().Bool("json", false, "Print the report as JSON")
	reportCmd.Flags().Int("top", 0, "Leading traits per section (overrides top_n; 0 keeps all)")
	reportCmd.Flags().Bool("guidance", true, "Include career guidance")
}
