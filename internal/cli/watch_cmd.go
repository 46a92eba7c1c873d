package cli

import (
	"fmt"

	"github.com/alexanderramin/steril/internal/cli/formatter"
	"github.com/alexanderramin/steril/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWatchCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the running session with a live countdown",
		Long: `Follow the running session with a live countdown.

Press s to stop the session, q to leave the view while it keeps running.
The view closes by itself when the countdown completes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}

			sess, err := a.Sessions.Resume(cmd.Context(), owner)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if sess == nil {
				fmt.Fprintln(out, formatter.FormatNoSession())
				return nil
			}
			if sess.Status != domain.StatusProcessing {
				fmt.Fprintln(out, formatter.FormatSession(sess, a.now(), a.location()))
				return nil
			}

			model := newWatchModel(a.Sessions, owner, *sess, a.now, a.TickInterval)
			final, err := tea.NewProgram(model,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(out),
			).Run()
			if err != nil {
				return err
			}

			m := final.(watchModel)
			if m.err != nil {
				return m.err
			}
			fmt.Fprintln(out, watchFarewell(m))
			return nil
		},
	}
}

func watchFarewell(m watchModel) string {
	switch {
	case m.detached:
		return formatter.Dim("Sterilisasi tetap berjalan. Lihat lagi dengan: steril watch")
	case m.session.Status == domain.StatusCompleted:
		return formatter.StyleGreen.Render("✔ Sterilisasi selesai.")
	case m.session.Status == domain.StatusStopped:
		return formatter.StyleRed.Render("✖ Sterilisasi dihentikan.")
	default:
		return ""
	}
}
