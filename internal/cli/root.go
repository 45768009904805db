package cli

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/cli/output"
	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/config"
	"github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/service"
	sqlitestore "github.com/siddkanodia-1994/india-generation-dashboard-V12/internal/store/sqlite"
)

type RootOptions struct {
	Output     string
	DBPath     string
	ConfigPath string

	// Defaults resolved from the config file; flags override them.
	DefaultMode   string
	DefaultMonths int

	db *sql.DB
}

func NewRootCmd() *cobra.Command {
	defaultDBPath, err := config.DefaultDBPath()
	if err != nil {
		defaultDBPath = config.DefaultDBFile
	}
	defaultConfigPath, err := config.DefaultConfigPath()
	if err != nil {
		defaultConfigPath = config.DefaultConfFile
	}

	opts := &RootOptions{
		Output: output.FormatHuman,
		DBPath: defaultDBPath,
	}

	cmd := &cobra.Command{
		Use:           "gendash",
		Short:         "Gendash tracks a daily generation series and its period-over-period growth",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !output.IsValidFormat(opts.Output) {
				return fmt.Errorf("invalid --output value %q: supported values are %s|%s", opts.Output, output.FormatHuman, output.FormatJSON)
			}
			opts.Output = strings.ToLower(strings.TrimSpace(opts.Output))

			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			opts.DefaultMode = cfg.Mode
			opts.DefaultMonths = cfg.Months
			if cfg.DBPath != "" && !cmd.Flags().Changed("db-path") {
				opts.DBPath = cfg.DBPath
			}

			db, err := sqlitestore.OpenAndMigrate(cmd.Context(), opts.DBPath)
			if err != nil {
				return fmt.Errorf("initialize sqlite: %w", err)
			}

			opts.db = db
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			envelope := output.NewSuccessEnvelope(
				map[string]any{
					"command": "root",
					"message": "gendash CLI ready",
					"db_path": opts.DBPath,
				},
				nil,
			)

			return output.Print(cmd.OutOrStdout(), opts.Output, envelope)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.db != nil {
				if err := opts.db.Close(); err != nil {
					return fmt.Errorf("close sqlite db: %w", err)
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Output, "output", output.FormatHuman, "Output format: human|json")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db-path", opts.DBPath, "SQLite database path")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", defaultConfigPath, "YAML config file path")

	cmd.AddCommand(
		NewRecordCmd(opts),
		NewDataCmd(opts),
		NewReportCmd(opts),
		NewKPICmd(opts),
	)

	return cmd
}

func (o *RootOptions) seriesService() (*service.SeriesService, error) {
	repo := sqlitestore.NewObservationRepo(o.db)
	return service.NewSeriesService(repo)
}

func (o *RootOptions) reportService() (*service.ReportService, error) {
	series, err := o.seriesService()
	if err != nil {
		return nil, err
	}
	return service.NewReportService(series)
}

func (o *RootOptions) portabilityService() (*service.PortabilityService, error) {
	series, err := o.seriesService()
	if err != nil {
		return nil, err
	}
	return service.NewPortabilityService(series, o.db, o.DBPath)
}
