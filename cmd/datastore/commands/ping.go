package commands

import (
	"strconv"

	"github.com/satishbabariya/datastore/driver/sqldb"
	"github.com/satishbabariya/datastore/internal/ui"
	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command.
func NewPingCommand(app *App) *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check the connection and the server version",
		Long: `Connect using the configured data source name, run a health check and verify
that the server is at least the oldest version the dialect's SQL supports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := app.DB(ctx)
			if err != nil {
				return err
			}
			if err := db.HealthCheck(ctx); err != nil {
				return err
			}

			v, err := db.CheckVersion(ctx)
			if v != nil {
				ui.PrintInfo("%s %s at %s", app.dialect.Name, v, sqldb.Redact(app.dialect, app.config.DSN))
			}
			if err != nil {
				return err
			}

			if stats {
				s := db.Stats()
				ui.PrintField("open", strconv.Itoa(s.OpenConnections))
				ui.PrintField("in use", strconv.Itoa(s.InUse))
				ui.PrintField("idle", strconv.Itoa(s.Idle))
				ui.PrintField("max open", strconv.Itoa(s.MaxOpenConnections))
			}

			ui.PrintSuccess("Connection OK")
			return nil
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "Print connection pool statistics")
	return cmd
}
