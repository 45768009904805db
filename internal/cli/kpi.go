package cli

import (
	"github.com/spf13/cobra"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/cli/output"
)

type kpiFlags struct {
	mode string
}

func NewKPICmd(opts *RootOptions) *cobra.Command {
	flags := &kpiFlags{}

	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Headline rollups: latest, trailing averages, fiscal YTD, MTD",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return printError(cmd, outputFormat(opts), invalidArgsError("kpi", args))
			}

			mode := flags.mode
			if !cmd.Flags().Changed("mode") && opts.DefaultMode != "" {
				mode = opts.DefaultMode
			}

			reports, err := opts.reportService()
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			result, err := reports.KPI(cmd.Context(), mode)
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			snapshot := result.Snapshot
			data := map[string]any{
				"mode":               result.Mode,
				"latest":             snapshot.Latest,
				"latest_yoy_pct":     snapshot.LatestYoYPct,
				"avg_7d":             snapshot.Avg7,
				"avg_7d_yoy_pct":     snapshot.Avg7YoYPct,
				"avg_30d":            snapshot.Avg30,
				"avg_30d_yoy_pct":    snapshot.Avg30YoYPct,
				"fiscal_ytd":         snapshot.FiscalYTD,
				"fiscal_ytd_yoy_pct": snapshot.FiscalYTDYoYPct,
				"mtd_avg":            snapshot.MTDAvg,
				"mtd_avg_yoy_pct":    snapshot.MTDAvgYoYPct,
			}
			if snapshot.LatestDate != nil {
				data["latest_date"] = snapshot.LatestDate.String()
			}

			env := output.NewSuccessEnvelope(data, toWarningPayloads(result.Warnings))
			return output.Print(cmd.OutOrStdout(), outputFormat(opts), env)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", "sum", "Aggregation mode for fiscal YTD: sum|average")

	return cmd
}
