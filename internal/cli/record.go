package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/cli/output"
	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/domain"
)

type recordAddFlags struct {
	dateRaw string
	value   float64
}

type recordListFlags struct {
	fromRaw string
	toRaw   string
}

func NewRecordCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Add and list daily observations",
	}

	cmd.AddCommand(
		newRecordAddCmd(opts),
		newRecordListCmd(opts),
	)

	return cmd
}

func newRecordAddCmd(opts *RootOptions) *cobra.Command {
	flags := &recordAddFlags{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Insert or overwrite one day's value",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return printError(cmd, outputFormat(opts), invalidArgsError("record add", args))
			}

			date, err := domain.ParseDate(flags.dateRaw)
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			series, err := opts.seriesService()
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			record, err := series.Add(cmd.Context(), date, flags.value)
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			env := output.NewSuccessEnvelope(map[string]any{
				"date":  record.Date.String(),
				"value": record.Value,
			}, nil)
			return output.Print(cmd.OutOrStdout(), outputFormat(opts), env)
		},
	}

	cmd.Flags().StringVar(&flags.dateRaw, "date", "", "Observation date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&flags.value, "value", 0, "Observed value")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newRecordListCmd(opts *RootOptions) *cobra.Command {
	flags := &recordListFlags{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the stored series ascending by date",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return printError(cmd, outputFormat(opts), invalidArgsError("record list", args))
			}

			from, to, err := parseOptionalRange(flags.fromRaw, flags.toRaw)
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			series, err := opts.seriesService()
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			records, warnings, err := series.List(cmd.Context(), from, to)
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			rows := make([]map[string]any, 0, len(records))
			for _, record := range records {
				rows = append(rows, map[string]any{
					"date":  record.Date.String(),
					"value": record.Value,
				})
			}

			env := output.NewSuccessEnvelope(map[string]any{
				"count":   len(rows),
				"records": rows,
			}, toWarningPayloads(warnings))
			return output.Print(cmd.OutOrStdout(), outputFormat(opts), env)
		},
	}

	cmd.Flags().StringVar(&flags.fromRaw, "from", "", "Range start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&flags.toRaw, "to", "", "Range end date (YYYY-MM-DD, inclusive)")

	return cmd
}

func parseOptionalRange(fromRaw, toRaw string) (domain.Date, domain.Date, error) {
	var from, to domain.Date
	var err error

	if strings.TrimSpace(fromRaw) != "" {
		from, err = domain.ParseDate(fromRaw)
		if err != nil {
			return domain.Date{}, domain.Date{}, err
		}
	}
	if strings.TrimSpace(toRaw) != "" {
		to, err = domain.ParseDate(toRaw)
		if err != nil {
			return domain.Date{}, domain.Date{}, err
		}
	}

	if err := domain.ValidateDateRange(from, to); err != nil {
		return domain.Date{}, domain.Date{}, err
	}
	return from, to, nil
}
