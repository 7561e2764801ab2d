package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/satishbabariya/datastore"
	"github.com/satishbabariya/datastore/derive"
	"github.com/satishbabariya/datastore/dialect"
	"github.com/satishbabariya/datastore/driver"
	"github.com/satishbabariya/datastore/driver/recorder"
	"github.com/satishbabariya/datastore/driver/sqldb"
	"github.com/satishbabariya/datastore/internal/config"
	"github.com/satishbabariya/datastore/internal/debug"
	"github.com/satishbabariya/datastore/internal/ui"
)

// Options holds the global flags. Non-empty values override the config file.
type Options struct {
	ConfigFile string
	Dialect    string
	DSN        string
	Table      string
	Debug      bool
	DryRun     bool
}

// Entry is one row of the kv table.
type Entry struct {
	Name     string `db:"name" json:"name" yaml:"name"`
	Value    string `db:"value" json:"value" yaml:"value"`
	Revision int64  `db:"revision" json:"revision" yaml:"revision"`
	Pinned   bool   `db:"pinned" json:"pinned" yaml:"pinned"`
}

// App carries the state shared by commands of one invocation.
type App struct {
	Options Options

	config  *config.Config
	dialect *dialect.Dialect
	db      *sqldb.DB
	rec     *recorder.Driver
}

// Load reads configuration and applies flag overrides.
func (a *App) Load() error {
	cfg, err := config.Load(a.Options.ConfigFile)
	if err != nil {
		return err
	}

	if a.Options.Dialect != "" {
		cfg.Dialect = a.Options.Dialect
	}
	if a.Options.DSN != "" {
		cfg.DSN = a.Options.DSN
	}
	if a.Options.Table != "" {
		cfg.Table = a.Options.Table
	}
	if a.Options.Debug {
		cfg.Debug = true
	}

	d, err := dialect.Lookup(cfg.Dialect)
	if err != nil {
		return err
	}

	debug.Init(cfg.Debug)
	cfg.Dialect = d.Name
	a.config = cfg
	a.dialect = d
	return nil
}

// Entries returns the descriptor of the configured kv table.
func (a *App) Entries() (*derive.Descriptor[Entry], error) {
	return derive.Struct[Entry](a.config.Table)
}

// Driver returns the driver for this invocation: a recorder on --dry-run, otherwise a
// connection pool opened on first use.
func (a *App) Driver(ctx context.Context) (driver.Driver, error) {
	if a.Options.DryRun {
		if a.rec == nil {
			a.rec = recorder.New(a.dialect)
		}
		return a.rec, nil
	}
	return a.DB(ctx)
}

// DB opens the connection pool and verifies the server is reachable.
func (a *App) DB(ctx context.Context) (*sqldb.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if a.config.DSN == "" {
		return nil, errors.New("no data source name: set --dsn, DATASTORE_DSN or DATABASE_URL")
	}

	db, err := sqldb.Open(a.dialect, a.config.DSN, a.config.Pool)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s: %w", sqldb.Redact(a.dialect, a.config.DSN), err)
	}

	log := debug.With("dialect", a.dialect.Name, "dsn", sqldb.Redact(a.dialect, a.config.DSN))
	log.Debug("connected", "max_open_conns", db.Stats().MaxOpenConnections)
	a.db = db
	return db, nil
}

// Store returns a store on Driver.
func (a *App) Store(ctx context.Context) (*datastore.Store, error) {
	drv, err := a.Driver(ctx)
	if err != nil {
		return nil, err
	}
	return datastore.New(drv), nil
}

// Close prints the statements recorded on --dry-run and closes the pool. It runs after
// every command, including failed ones, and may be called more than once.
func (a *App) Close() error {
	if a.rec != nil {
		ui.PrintStatements(a.rec.Dialect().Name+" (dry run)", a.rec.Statements())
		a.rec = nil
	}
	if a.db != nil {
		err := a.db.Close()
		a.db = nil
		if err != nil {
			debug.Error("failed to close connection pool", "error", err)
		}
		return err
	}
	return nil
}
