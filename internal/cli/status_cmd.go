package cli

import (
	"fmt"

	"github.com/alexanderramin/steril/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running sterilization session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}

			sess, err := a.Sessions.Resume(cmd.Context(), owner)
			if err != nil {
				return err
			}
			if sess == nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNoSession())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(sess, a.now(), a.location()))
			return nil
		},
	}
}
