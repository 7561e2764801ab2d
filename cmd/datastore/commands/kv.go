package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/satishbabariya/datastore"
	"github.com/satishbabariya/datastore/internal/ui"
	"github.com/satishbabariya/datastore/query/filterexpr"
	"github.com/satishbabariya/datastore/record"
	"github.com/spf13/cobra"
)

var (
	// ErrNotFound is returned when no entry has the requested name.
	ErrNotFound = errors.New("entry not found")

	// ErrPinned is returned when deleting a pinned entry without --force.
	ErrPinned = errors.New("entry is pinned")

	// ErrAborted is returned when the user declines a confirmation.
	ErrAborted = errors.New("aborted")
)

// NewKVCommand creates the parent kv command.
func NewKVCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kv",
		Short: "Manage entries of a key/value table",
		Long: `Manage entries of a key/value table with columns name, value, revision and
pinned. The table name comes from --table or the config file (default kv).`,
	}

	cmd.AddCommand(NewKVInitCommand(app))
	cmd.AddCommand(NewKVPutCommand(app))
	cmd.AddCommand(NewKVGetCommand(app))
	cmd.AddCommand(NewKVListCommand(app))
	cmd.AddCommand(NewKVDeleteCommand(app))
	return cmd
}

// NewKVInitCommand creates the kv init command.
func NewKVInitCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries, err := app.Entries()
			if err != nil {
				return err
			}
			store, err := app.Store(ctx)
			if err != nil {
				return err
			}
			if err := datastore.Create(ctx, store, entries); err != nil {
				return err
			}
			ui.PrintSuccess("Table %s is ready", entries.Table())
			return nil
		},
	}
}

// NewKVPutCommand creates the kv put command.
func NewKVPutCommand(app *App) *cobra.Command {
	var pin bool

	cmd := &cobra.Command{
		Use:   "put NAME VALUE",
		Short: "Store a value under a name",
		Long: `Store a value under a name, replacing any previous value and bumping the
revision. The replacement is a delete followed by an insert and is not atomic.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries, err := app.Entries()
			if err != nil {
				return err
			}
			store, err := app.Store(ctx)
			if err != nil {
				return err
			}

			byName := datastore.Where().String("name", args[0])
			existing, err := datastore.GetOne(ctx, store, entries, byName)
			if err != nil {
				return err
			}

			entry := Entry{Name: args[0], Value: args[1], Revision: 1, Pinned: pin}
			if existing != nil {
				entry.Revision = existing.Revision + 1
				entry.Pinned = entry.Pinned || existing.Pinned
				if _, err := datastore.Delete(ctx, store, entries, byName); err != nil {
					return err
				}
			}
			if err := datastore.Insert(ctx, store, entries, entry); err != nil {
				return err
			}

			ui.PrintSuccess("Stored %s (revision %d)", entry.Name, entry.Revision)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pin, "pin", false, "Protect the entry from kv delete without --force")
	return cmd
}

// NewKVGetCommand creates the kv get command.
func NewKVGetCommand(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Print one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries, err := app.Entries()
			if err != nil {
				return err
			}
			store, err := app.Store(ctx)
			if err != nil {
				return err
			}

			entry, err := datastore.GetOne(ctx, store, entries, datastore.Where().String("name", args[0]))
			if err != nil {
				return err
			}
			if entry == nil {
				if app.Options.DryRun {
					return nil
				}
				return fmt.Errorf("%w: %s", ErrNotFound, args[0])
			}

			if output == outputTable {
				ui.PrintField("name", entry.Name)
				ui.PrintField("value", entry.Value)
				ui.PrintField("revision", strconv.FormatInt(entry.Revision, 10))
				ui.PrintField("pinned", strconv.FormatBool(entry.Pinned))
				return nil
			}
			return writeOutput(output, entry)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")
	return cmd
}

// NewKVListCommand creates the kv list command.
func NewKVListCommand(app *App) *cobra.Command {
	var where string
	var output string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries",
		Example: `  datastore kv list
  datastore kv list --where "pinned = true"
  datastore kv list --where "name = 'greeting' AND revision = 2" -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries, err := app.Entries()
			if err != nil {
				return err
			}
			store, err := app.Store(ctx)
			if err != nil {
				return err
			}

			var list []Entry
			if where == "" {
				list, err = datastore.GetAll(ctx, store, entries)
			} else {
				filter, perr := parseWhere(where, entries.Kind)
				if perr != nil {
					return perr
				}
				list, err = datastore.Get(ctx, store, entries, filter)
			}
			if err != nil {
				return err
			}

			if output == outputTable {
				rows := make([][]string, len(list))
				for i, e := range list {
					rows[i] = []string{e.Name, e.Value, strconv.FormatInt(e.Revision, 10), strconv.FormatBool(e.Pinned)}
				}
				return ui.PrintTable([]string{"NAME", "VALUE", "REVISION", "PINNED"}, rows)
			}
			return writeOutput(output, list)
		},
	}

	cmd.Flags().StringVarP(&where, "where", "w", "", "Filter such as \"name = 'a' AND pinned = false\"")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format: table, json or yaml")
	return cmd
}

// NewKVDeleteCommand creates the kv delete command.
func NewKVDeleteCommand(app *App) *cobra.Command {
	var where string
	var all bool
	var yes bool
	var force bool

	cmd := &cobra.Command{
		Use:   "delete [NAME]",
		Short: "Delete one entry, entries matching a filter, or every entry",
		Example: `  datastore kv delete greeting
  datastore kv delete --where "revision = 1"
  datastore kv delete --all --yes`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selectors := 0
			for _, set := range []bool{len(args) == 1, where != "", all} {
				if set {
					selectors++
				}
			}
			if selectors != 1 {
				return errors.New("give exactly one of NAME, --where or --all")
			}

			ctx := cmd.Context()
			entries, err := app.Entries()
			if err != nil {
				return err
			}
			store, err := app.Store(ctx)
			if err != nil {
				return err
			}

			var n int64
			switch {
			case all:
				if !yes && !app.Options.DryRun {
					ok, err := ui.Confirm(fmt.Sprintf("Delete every entry in %s?", entries.Table()))
					if err != nil {
						return err
					}
					if !ok {
						return ErrAborted
					}
				}
				n, err = datastore.DeleteAll(ctx, store, entries)

			case where != "":
				filter, perr := parseWhere(where, entries.Kind)
				if perr != nil {
					return perr
				}
				n, err = datastore.Delete(ctx, store, entries, filter)

			default:
				byName := datastore.Where().String("name", args[0])
				entry, gerr := datastore.GetOne(ctx, store, entries, byName)
				if gerr != nil {
					return gerr
				}
				if entry != nil && entry.Pinned && !force {
					return fmt.Errorf("%w: %s (use --force)", ErrPinned, args[0])
				}
				n, err = datastore.Delete(ctx, store, entries, byName)
			}
			if err != nil {
				return err
			}

			ui.PrintSuccess("Deleted %d entries", n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&where, "where", "w", "", "Delete entries matching this filter")
	cmd.Flags().BoolVar(&all, "all", false, "Delete every entry")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	cmd.Flags().BoolVar(&force, "force", false, "Delete a pinned entry")
	return cmd
}

// parseWhere parses a filter and checks it against the table's columns.
func parseWhere(where string, kindOf func(column string) record.Kind) (*filterexpr.Expr, error) {
	expr, err := filterexpr.Parse(where)
	if err != nil {
		return nil, err
	}
	if err := expr.Check(kindOf); err != nil {
		return nil, err
	}
	return expr, nil
}
