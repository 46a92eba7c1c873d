package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/steril/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newActivityCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Browse and import sterilization history",
	}

	cmd.AddCommand(
		newActivityListCmd(a),
		newActivityImportCmd(a),
	)

	return cmd
}

func newActivityListCmd(a *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent activities, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}

			recs, err := a.Activities.ListRecent(cmd.Context(), owner, limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Belum ada aktivitas."))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Riwayat", formatter.FormatActivityTable(recs, a.location())))
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of activities to show")

	return cmd
}

func newActivityImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import activity history from a YAML or JSON file",
		Long: `Import activity history from a YAML or JSON file.

The file holds a list of entries, or an object with an "activities" list.
Each entry may carry id, label or food, status, finishedAt, startedAt, and
at or time. Timestamps are epoch milliseconds, RFC 3339 strings, or
{seconds: N} objects. Entries whose id is already stored are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			stop := func() {}
			if a.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Mengimpor riwayat...")
			}
			res, err := a.importActivitiesUseCase().Import(cmd.Context(), owner, f)
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d of %d activities (%d already present)\n", res.Imported, res.Read, res.Duplicates)
			if res.Untimed > 0 {
				fmt.Fprintln(out, formatter.Warning(fmt.Sprintf("%d imported activities have no timestamp and are left out of statistics", res.Untimed)))
			}
			return nil
		},
	}
}
