package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/steril/internal/cli/formatter"
	"github.com/alexanderramin/steril/internal/domain"
	"github.com/spf13/cobra"
)

func newStartCmd(a *App) *cobra.Command {
	var minutes float64
	var food, label string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a sterilization session",
		Long: `Start a timed sterilization run for the current owner.

Without --minutes on an interactive terminal, a form asks for the food and
the duration. Food keys: nasi, sayur, ayam, ikan, daging, buah, lainnya.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("minutes") {
				if !a.interactive() {
					return fmt.Errorf("--minutes is required")
				}
				text := ""
				if err := startForm(&food, &text).Run(); err != nil {
					return err
				}
				if minutes, err = parseMinutes(text); err != nil {
					return err
				}
			}
			if strings.TrimSpace(label) == "" && strings.TrimSpace(food) != "" {
				label = domain.FoodLabel(food)
			}

			sess, err := a.startSessionUseCase().Start(cmd.Context(), owner, minutes, label)
			if errors.Is(err, domain.ErrSessionAlreadyActive) && sess != nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(sess, a.now(), a.location()))
				return fmt.Errorf("%w (stop it first with: steril stop --id %s)", err, sess.ID)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(sess, a.now(), a.location()))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&minutes, "minutes", "m", 0, "Run length in minutes")
	cmd.Flags().StringVar(&food, "food", "", "Food preset key (nasi, sayur, ayam, ikan, daging, buah, lainnya)")
	cmd.Flags().StringVar(&label, "label", "", "Free-text label, overrides the food preset label")

	return cmd
}

func newStopCmd(a *App) *cobra.Command {
	var id string
	var yes bool

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running sterilization session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if id, err = resolveSessionID(ctx, a, owner, id); err != nil {
				return err
			}
			if a.interactive() && !yes {
				live, err := a.Sessions.Resume(ctx, owner)
				if err != nil {
					return err
				}
				if live != nil && live.Status == domain.StatusProcessing {
					msg := fmt.Sprintf("Hentikan sterilisasi %s (%s)? [y/N]: ", formatter.FoodTitle(live.Label), live.RemainingLabel(a.now()))
					if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), msg, false) {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Dibatalkan."))
						return nil
					}
				}
			}

			sess, err := a.stopSessionUseCase().Stop(ctx, owner, id)
			if errors.Is(err, domain.ErrNotRunning) {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Warning(err.Error()))
				if sess != nil {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(sess, a.now(), a.location()))
				}
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSession(sess, a.now(), a.location()))
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Session ID or a prefix of at least 4 characters (defaults to whatever is running)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
