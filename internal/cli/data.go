package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/cli/output"
)

type dataExportFlags struct {
	format string
	file   string
}

type dataImportFlags struct {
	format string
	file   string
}

type dataBackupFlags struct {
	file string
}

type dataRestoreFlags struct {
	file string
}

type dataClearFlags struct {
	confirm bool
}

func NewDataCmd(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Import/export the series and backup/restore the database",
	}

	cmd.AddCommand(
		newDataImportCmd(opts),
		newDataExportCmd(opts),
		newDataBackupCmd(opts),
		newDataRestoreCmd(opts),
		newDataClearCmd(opts),
	)

	return cmd
}

func newDataImportCmd(opts *RootOptions) *cobra.Command {
	flags := &dataImportFlags{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import daily observations from a CSV or JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return printError(cmd, outputFormat(opts), invalidArgsError("data import", args))
			}
			if strings.TrimSpace(flags.file) == "" {
				return printError(cmd, outputFormat(opts), &cliError{Code: "INVALID_ARGUMENT", Message: "file is required", Details: map[string]any{"field": "file"}})
			}

			portability, err := opts.portabilityService()
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			result, err := portability.Import(cmd.Context(), flags.format, flags.file)
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			slog.Info("import finished",
				"file", flags.file,
				"imported", result.Imported,
				"skipped", result.Skipped,
			)

			env := output.NewSuccessEnvelope(map[string]any{
				"file":     flags.file,
				"imported": result.Imported,
				"skipped":  result.Skipped,
			}, toWarningPayloads(result.Warnings))
			return output.Print(cmd.OutOrStdout(), outputFormat(opts), env)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "Input file path")
	cmd.Flags().StringVar(&flags.format, "format", "csv", "Input format: csv|json")

	return cmd
}

func newDataExportCmd(opts *RootOptions) *cobra.Command {
	flags := &dataExportFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full series to a CSV or JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return printError(cmd, outputFormat(opts), invalidArgsError("data export", args))
			}
			if strings.TrimSpace(flags.file) == "" {
				return printError(cmd, outputFormat(opts), &cliError{Code: "INVALID_ARGUMENT", Message: "file is required", Details: map[string]any{"field": "file"}})
			}

			portability, err := opts.portabilityService()
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			exported, err := portability.Export(cmd.Context(), flags.format, flags.file)
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			env := output.NewSuccessEnvelope(map[string]any{
				"file":     flags.file,
				"exported": exported,
			}, nil)
			return output.Print(cmd.OutOrStdout(), outputFormat(opts), env)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "Output file path")
	cmd.Flags().StringVar(&flags.format, "format", "csv", "Output format: csv|json")

	return cmd
}

func newDataBackupCmd(opts *RootOptions) *cobra.Command {
	flags := &dataBackupFlags{}

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot the SQLite DB to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return printError(cmd, outputFormat(opts), invalidArgsError("data backup", args))
			}
			if strings.TrimSpace(flags.file) == "" {
				return printError(cmd, outputFormat(opts), &cliError{Code: "INVALID_ARGUMENT", Message: "file is required", Details: map[string]any{"field": "file"}})
			}

			portability, err := opts.portabilityService()
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			if err := portability.Backup(cmd.Context(), flags.file); err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			env := output.NewSuccessEnvelope(map[string]any{"backup_file": flags.file, "db_path": opts.DBPath}, nil)
			return output.Print(cmd.OutOrStdout(), outputFormat(opts), env)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "Backup file path")
	return cmd
}

func newDataRestoreCmd(opts *RootOptions) *cobra.Command {
	flags := &dataRestoreFlags{}

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore the SQLite DB from a backup file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return printError(cmd, outputFormat(opts), invalidArgsError("data restore", args))
			}
			if strings.TrimSpace(flags.file) == "" {
				return printError(cmd, outputFormat(opts), &cliError{Code: "INVALID_ARGUMENT", Message: "file is required", Details: map[string]any{"field": "file"}})
			}

			portability, err := opts.portabilityService()
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			if err := portability.Restore(flags.file); err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			env := output.NewSuccessEnvelope(map[string]any{"restored_from": flags.file, "db_path": opts.DBPath}, nil)
			return output.Print(cmd.OutOrStdout(), outputFormat(opts), env)
		},
	}

	cmd.Flags().StringVar(&flags.file, "file", "", "Backup file path to restore from")
	return cmd
}

func newDataClearCmd(opts *RootOptions) *cobra.Command {
	flags := &dataClearFlags{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored observation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return printError(cmd, outputFormat(opts), invalidArgsError("data clear", args))
			}
			if !flags.confirm {
				return printError(cmd, outputFormat(opts), &cliError{Code: "INVALID_ARGUMENT", Message: "pass --confirm to delete all observations", Details: map[string]any{"field": "confirm"}})
			}

			series, err := opts.seriesService()
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			deleted, err := series.Clear(cmd.Context())
			if err != nil {
				return printError(cmd, outputFormat(opts), err)
			}

			env := output.NewSuccessEnvelope(map[string]any{"deleted": deleted}, nil)
			return output.Print(cmd.OutOrStdout(), outputFormat(opts), env)
		},
	}

	cmd.Flags().BoolVar(&flags.confirm, "confirm", false, "Confirm full deletion")
	return cmd
}
