package commands

import (
	"strconv"

	"github.com/satishbabariya/datastore/driver/sqldb"
	"github.com/satishbabariya/datastore/internal/config"
	"github.com/satishbabariya/datastore/internal/debug"
	"github.com/satishbabariya/datastore/internal/ui"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command.
func NewConfigCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or save the effective configuration",
	}

	cmd.AddCommand(NewConfigShowCommand(app))
	cmd.AddCommand(NewConfigSaveCommand(app))
	return cmd
}

// NewConfigShowCommand creates the config show command.
func NewConfigShowCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configuration after flags, environment and files are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.config
			ui.PrintField("dialect", cfg.Dialect)
			ui.PrintField("dsn", sqldb.Redact(app.dialect, cfg.DSN))
			ui.PrintField("table", cfg.Table)
			ui.PrintField("debug", strconv.FormatBool(cfg.Debug))
			ui.PrintField("pool", "max_open="+strconv.Itoa(cfg.Pool.MaxOpenConns)+
				" max_idle="+strconv.Itoa(cfg.Pool.MaxIdleConns)+
				" health_check="+cfg.Pool.HealthCheckInterval.String())
			return nil
		},
	}
}

// NewConfigSaveCommand creates the config save command.
func NewConfigSaveCommand(app *App) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Write the effective configuration to a file",
		Long: `Write the effective configuration, including --dialect, --dsn and --table, to a
YAML file. Without --path the file is $HOME/.config/datastore/.datastore.yaml, which
later invocations pick up automatically. The DSN is written as given.`,
		Example: `  datastore --dialect postgres --dsn "$DATABASE_URL" config save`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			if err := config.Save(app.config, path); err != nil {
				return err
			}

			debug.Info("configuration saved", "path", path, "dialect", app.config.Dialect)
			ui.PrintSuccess("Saved configuration to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "File to write (default $HOME/.config/datastore/.datastore.yaml)")
	return cmd
}
