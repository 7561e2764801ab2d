// Package commands implements the datastore CLI commands.
package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute runs the datastore command with args and closes the app afterwards, whether
// or not the command succeeded.
func Execute(ctx context.Context, args []string) error {
	app := &App{}
	return execute(ctx, app, NewRootCommand(app), args)
}

func execute(ctx context.Context, app *App, cmd *cobra.Command, args []string) error {
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if cerr := app.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// NewRootCommand creates the datastore command with all subcommands attached. The
// caller closes app when the command returns; Execute does both.
func NewRootCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datastore",
		Short: "Store typed records in SQL tables",
		Long: `datastore maps typed records to SQL tables on MySQL, PostgreSQL or SQLite.

The kv commands manage a key/value table through the record store, which makes
them a quick way to check a connection string and see the SQL each dialect runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.Load()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.Options.ConfigFile, "config", "", "config file (default .datastore.yaml in ., $HOME or $HOME/.config/datastore)")
	flags.StringVar(&app.Options.Dialect, "dialect", "", "SQL dialect: mysql, postgres or sqlite")
	flags.StringVar(&app.Options.DSN, "dsn", "", "data source name (default $DATABASE_URL)")
	flags.StringVar(&app.Options.Table, "table", "", "table for kv commands")
	flags.BoolVar(&app.Options.Debug, "debug", false, "log every statement")
	flags.BoolVar(&app.Options.DryRun, "dry-run", false, "print statements instead of executing them")

	cmd.AddCommand(NewConfigCommand(app))
	cmd.AddCommand(NewKVCommand(app))
	cmd.AddCommand(NewPingCommand(app))
	cmd.AddCommand(NewSQLCommand(app))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
