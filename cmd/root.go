package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/novapath/trident/internal/config"
	"github.com/novapath/trident/internal/store"
)

// defaultBankPath is where the question bank is looked for when neither
// --bank nor the config names one.
const defaultBankPath = "question_bank.json"

// cfg is loaded once per invocation by the root PersistentPreRunE.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "trident",
	Short: "Career and learning-style assessment",
	Long: "TRIDENT walks a student through interest, personality, aptitude, emotional\n" +
		"intelligence and learning-style questions and reports ranked results with\n" +
		"career guidance.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command until ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default trident.yaml in . or the user config dir)")
	flags.String("db", "", "Path to SQLite database file (overrides TRIDENT_DB)")
	flags.String("bank", "", "Path to the question bank (JSON or YAML, default "+defaultBankPath+")")
	flags.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(bankCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig layers flags over environment over config file over defaults.
func loadConfig(cmd *cobra.Command) error {
	v := config.NewViper()
	flags := cmd.Flags()
	for key, flag := range map[string]string{
		"db":        "db",
		"bank":      "bank",
		"log.level": "log-level",
	} {
		if f := flags.Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind --%s: %w", flag, err)
			}
		}
	}

	path, _ := flags.GetString("config")
	loaded, err := config.Load(v, path, os.Getenv)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// resolveDBPath returns the configured database path, or the default XDG
// path when none is set.
func resolveDBPath() (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

func resolveBankPath() string {
	if cfg.Bank != "" {
		return cfg.Bank
	}
	return defaultBankPath
}
