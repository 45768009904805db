package cli

import (
	"github.com/spf13/cobra"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/cli/output"
	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/service"
)

type reportMonthlyFlags struct {
	mode   string
	months int
}

func NewReportCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Aggregate the daily series into comparable periods",
	}

	cmd.AddCommand(newReportMonthlyCmd(opts))

	return cmd
}

func newReportMonthlyCmd(opts *RootOptions) *cobra.Command {
	flags := &reportMonthlyFlags{}

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly totals or averages with MoM and YoY growth",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return printError(cmd, outputFormat(opts), invalidArgsError("report monthly", args))
			}

			mode := flags.mode
			if !cmd.Flags().Changed("mode") && opts.DefaultMode != "" {
				mode = opts.DefaultMode
			}
			months := flags.months
			if !cmd.Flags().Changed("months") && opts.DefaultMonths > 0 {
				months = opts.DefaultMonths
			}

			reports, err := opts.reportService()
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			result, err := reports.Monthly(cmd.Context(), service.MonthlyReportRequest{
				Mode:   mode,
				Months: months,
			})
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			rows := make([]map[string]any, 0, len(result.Rows))
			for _, row := range result.Rows {
				rows = append(rows, map[string]any{
					"month":   row.MonthKey.String(),
					"label":   row.Label,
					"value":   row.Value,
					"yoy_pct": row.YoYPct,
					"mom_pct": row.MoMPct,
				})
			}

			env := output.NewSuccessEnvelope(map[string]any{
				"mode": result.Mode,
				"rows": rows,
			}, toWarningPayloads(result.Warnings))
			return output.Print(cmd.OutOrStdout(), outputFormat(opts), env)
		},
	}

	cmd.Flags().StringVar(&flags.mode, "mode", "sum", "Aggregation mode: sum|average")
	cmd.Flags().IntVar(&flags.months, "months", 0, "Keep only the most recent N months (0 = all)")

	return cmd
}
