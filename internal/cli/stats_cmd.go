package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/steril/internal/app"
	"github.com/alexanderramin/steril/internal/cli/formatter"
	"github.com/alexanderramin/steril/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newStatsCmd(a *App) *cobra.Command {
	rng := granularityFlag{value: domain.GranularityDaily}
	status := statusFilterFlag{value: domain.FilterTotal}
	output := outputFlag{value: outputTable}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session counts per day, week, month or five-day segment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}

			req := app.NewStatsRequest(owner)
			req.Granularity = rng.value
			req.Filter = status.value
			now := a.now()
			req.Now = &now

			resp, err := a.statsUseCase().GetStats(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch output.value {
			case outputYAML, outputJSON:
				return writeDocument(out, output.value, newStatsDocument(owner, resp))
			default:
				fmt.Fprintln(out, formatter.FormatStats(resp))
				return nil
			}
		},
	}

	cmd.Flags().VarP(&rng, "range", "r", "Bucket range: daily, weekly, monthly, segment")
	cmd.Flags().VarP(&status, "status", "s", "Status filter: total, completed, stopped")
	cmd.Flags().VarP(&output, "output", "o", "Output format: table, yaml, json")

	return cmd
}

type statsDocument struct {
	Owner         string           `yaml:"owner" json:"owner"`
	Range         string           `yaml:"range" json:"range"`
	Status        string           `yaml:"status" json:"status"`
	GeneratedAt   string           `yaml:"generatedAt" json:"generatedAt"`
	Buckets       []bucketDocument `yaml:"buckets" json:"buckets"`
	Skipped       int              `yaml:"skipped" json:"skipped"`
	Summary       summaryDocument  `yaml:"summary" json:"summary"`
	Effectiveness int              `yaml:"effectiveness" json:"effectiveness"`
}

type bucketDocument struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label" json:"label"`
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
	Count int    `yaml:"count" json:"count"`
}

type summaryDocument struct {
	From      string `yaml:"from" json:"from"`
	To        string `yaml:"to" json:"to"`
	Total     int    `yaml:"total" json:"total"`
	Completed int    `yaml:"completed" json:"completed"`
	Stopped   int    `yaml:"stopped" json:"stopped"`
}

func newStatsDocument(owner string, resp *app.StatsResponse) statsDocument {
	doc := statsDocument{
		Owner:       owner,
		Range:       string(resp.Granularity),
		Status:      string(resp.Filter),
		GeneratedAt: resp.GeneratedAt.Format(time.RFC3339),
		Skipped:     resp.Skipped,
		Summary: summaryDocument{
			From:      resp.WindowStart.Format(time.RFC3339),
			To:        resp.WindowEnd.Format(time.RFC3339),
			Total:     resp.Summary.Total,
			Completed: resp.Summary.Completed,
			Stopped:   resp.Summary.Stopped,
		},
		Effectiveness: resp.Effectiveness,
	}
	for _, b := range resp.Buckets {
		doc.Buckets = append(doc.Buckets, bucketDocument{
			Key:   b.Key,
			Label: b.Label,
			Start: b.RangeStart.Format(time.RFC3339),
			End:   b.RangeEndInclusive.Format(time.RFC3339Nano),
			Count: b.Count,
		})
	}
	return doc
}

func writeDocument(w io.Writer, format outputFormat, doc any) error {
	if format == outputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func newDashboardCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's numbers, the running session and recent history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := a.requireOwner()
			if err != nil {
				return err
			}
			now := a.now()
			resp, err := a.dashboardUseCase().GetDashboard(cmd.Context(), app.DashboardRequest{Owner: owner, Now: &now})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(resp, a.location()))
			return nil
		},
	}
}

func newAdminCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Cross-owner reports",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "overview",
		Short: "Show per-owner totals and five-day segments across all owners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			resp, err := a.overviewUseCase().GetOverview(cmd.Context(), app.OverviewRequest{Now: &now})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatOverview(resp))
			return nil
		},
	})

	return cmd
}
