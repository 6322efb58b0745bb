package cmd

import (
	"github.com/spf13/cobra"

	"github.com/novapath/trident/internal/app"
	"github.com/novapath/trident/internal/screens"
)

// runApp opens the dependencies and launches the terminal UI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	d, err := openDeps(ctx, depsOptions{logToFile: true})
	if err != nil {
		return err
	}
	defer d.Close()

	return app.Run(ctx, screens.Env{
		Sessions: d.sessions,
		Guidance: d.guidance,
		TopN:     cfg.TopN,
	})
}
