package commands

import (
	"github.com/satishbabariya/datastore"
	"github.com/satishbabariya/datastore/driver/recorder"
	"github.com/satishbabariya/datastore/internal/ui"
	"github.com/satishbabariya/datastore/record"
	"github.com/spf13/cobra"
)

// NewSQLCommand creates the sql command.
func NewSQLCommand(app *App) *cobra.Command {
	var where string
	var entry Entry

	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Print the statements the kv commands run, without connecting",
		Example: `  datastore sql --dialect postgres
  datastore sql --dialect mysql --name greeting --value "it's here" --where "pinned = true"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.Entries()
			if err != nil {
				return err
			}
			store := datastore.New(recorder.New(app.dialect))

			var filter record.Query
			if where != "" {
				expr, err := parseWhere(where, entries.Kind)
				if err != nil {
					return err
				}
				filter = expr
			}

			create, err := datastore.CreateSQL(store, entries)
			if err != nil {
				return err
			}
			insert, err := datastore.InsertSQL(store, entries, entry)
			if err != nil {
				return err
			}
			sel, err := datastore.SelectSQL(store, entries, filter)
			if err != nil {
				return err
			}
			del, err := datastore.DeleteSQL(store, entries, filter)
			if err != nil {
				return err
			}

			ui.PrintStatements(app.dialect.Name, []string{create, insert, sel, del})
			return nil
		},
	}

	cmd.Flags().StringVarP(&where, "where", "w", "", "Filter for the SELECT and DELETE statements")
	cmd.Flags().StringVar(&entry.Name, "name", "example", "Name of the inserted entry")
	cmd.Flags().StringVar(&entry.Value, "value", "", "Value of the inserted entry")
	cmd.Flags().Int64Var(&entry.Revision, "revision", 1, "Revision of the inserted entry")
	cmd.Flags().BoolVar(&entry.Pinned, "pinned", false, "Pin the inserted entry")
	return cmd
}
