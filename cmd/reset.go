package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/novapath/trident/internal/identity"
	"github.com/novapath/trident/internal/session"
)

var resetCmd = &cobra.Command{
	Use:   "reset <user-id>",
	Short: "Discard a user's answers so the assessment starts over",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		sess, err := d.sessions.ResetKey(ctx, identity.Key(id))
		if errors.Is(err, session.ErrNotFound) {
			return fmt.Errorf("no assessment found for %q", id)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %q: 0 of %d answered.\n", id, sess.Total())
		return nil
	},
}
