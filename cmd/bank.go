package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novapath/trident/internal/bank"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Inspect question banks",
}

var bankValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Load a question bank and check it against the catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := resolveBankPath()
		if len(args) == 1 {
			path = args[0]
		}

		b, err := bank.Load(path, cfg.Catalog())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		cat := b.Catalog()
		version := b.Version()
		if version == "" {
			version = "unversioned"
		}
		fmt.Fprintf(out, "%s: ok (%s)\n", path, version)
		for i, s := range cat.Sections {
			fmt.Fprintf(out, "  %-20s %2d traits  %4d questions\n", s.Name, cat.TraitCount(i), cat.TraitCount(i)*cat.QuestionsPerTrait)
		}
		fmt.Fprintf(out, "  %-20s %15d questions\n", "Total", cat.TotalQuestions())
		return nil
	},
}

func init() {
	bankCmd.AddCommand(bankValidateCmd)
}
