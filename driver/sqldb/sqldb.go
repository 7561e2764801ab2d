// Package sqldb implements driver.Driver on database/sql with a managed connection pool.
package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/lib/pq"              // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"    // SQLite driver

	"github.com/satishbabariya/datastore/dialect"
	"github.com/satishbabariya/datastore/driver"
	"github.com/satishbabariya/datastore/internal/debug"
)

// Config holds connection pool configuration.
type Config struct {
	// MaxOpenConns is the maximum number of open connections (0 = unlimited).
	MaxOpenConns int
	// MaxIdleConns is the maximum number of idle connections.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum lifetime of a connection.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum idle time of a connection.
	ConnMaxIdleTime time.Duration
	// HealthCheckInterval is how often to ping the server (0 disables).
	HealthCheckInterval time.Duration
}

// DefaultConfig returns sensible default pool configuration.
func DefaultConfig() Config {
	return Config{
		MaxOpenConns:        25,
		MaxIdleConns:        5,
		ConnMaxLifetime:     30 * time.Minute,
		ConnMaxIdleTime:     10 * time.Minute,
		HealthCheckInterval: 1 * time.Minute,
	}
}

// DB is a pooled database connection that executes literal SQL.
type DB struct {
	db      *sql.DB
	dialect *dialect.Dialect
	config  Config

	mu              sync.RWMutex
	failedChecks    int64
	lastHealthCheck time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Open opens a pool for d. The connection is established lazily; call Ping to verify it.
func Open(d *dialect.Dialect, dsn string, config Config) (*DB, error) {
	db, err := sql.Open(d.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if d == dialect.SQLite {
		// Each connection to ":memory:" is a separate database, and SQLite allows a
		// single writer anyway.
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	return newDB(db, d, config), nil
}

// New wraps an existing *sql.DB. The caller keeps ownership of its pool settings.
func New(db *sql.DB, d *dialect.Dialect) *DB {
	config := DefaultConfig()
	config.HealthCheckInterval = 0
	return newDB(db, d, config)
}

func newDB(db *sql.DB, d *dialect.Dialect, config Config) *DB {
	ctx, cancel := context.WithCancel(context.Background())
	p := &DB{
		db:      db,
		dialect: d,
		config:  config,
		ctx:     ctx,
		cancel:  cancel,
	}

	if config.HealthCheckInterval > 0 {
		p.wg.Add(1)
		go p.healthCheckLoop()
	}

	return p
}

// Dialect implements driver.Driver.
func (p *DB) Dialect() *dialect.Dialect {
	return p.dialect
}

// SQL returns the underlying *sql.DB.
func (p *DB) SQL() *sql.DB {
	return p.db
}

// Execute implements driver.Driver.
func (p *DB) Execute(ctx context.Context, query string) (int64, error) {
	res, err := p.db.ExecContext(ctx, query)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		// Some drivers cannot report affected rows.
		return 0, nil
	}
	return n, nil
}

// Fetch implements driver.Driver.
func (p *DB) Fetch(ctx context.Context, query string) (driver.Rows, error) {
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, err
	}
	return &cursor{rows: rows, columns: columns}, nil
}

// FetchOne implements driver.Driver. Rows after the first are discarded.
func (p *DB) FetchOne(ctx context.Context, query string) (driver.Row, error) {
	rows, err := p.Fetch(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, driver.ErrNoRows
	}
	return rows.Row(), nil
}

// Ping verifies the server is reachable.
func (p *DB) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Stats returns current pool statistics.
func (p *DB) Stats() Stats {
	p.mu.RLock()
	defer p.mu.RUnlock()

	dbStats := p.db.Stats()

	return Stats{
		MaxOpenConnections: dbStats.MaxOpenConnections,
		OpenConnections:    dbStats.OpenConnections,
		InUse:              dbStats.InUse,
		Idle:               dbStats.Idle,
		WaitCount:          dbStats.WaitCount,
		WaitDuration:       dbStats.WaitDuration,
		MaxIdleClosed:      dbStats.MaxIdleClosed,
		MaxLifetimeClosed:  dbStats.MaxLifetimeClosed,
		FailedHealthChecks: p.failedChecks,
		LastHealthCheck:    p.lastHealthCheck,
	}
}

// Stats represents pool statistics.
type Stats struct {
	MaxOpenConnections int
	OpenConnections    int
	InUse              int
	Idle               int
	WaitCount          int64
	WaitDuration       time.Duration
	MaxIdleClosed      int64
	MaxLifetimeClosed  int64
	FailedHealthChecks int64
	LastHealthCheck    time.Time
}

// HealthCheck pings the server and records the outcome in Stats.
func (p *DB) HealthCheck(ctx context.Context) error {
	p.mu.Lock()
	p.lastHealthCheck = time.Now()
	p.mu.Unlock()

	if err := p.db.PingContext(ctx); err != nil {
		p.mu.Lock()
		p.failedChecks++
		p.mu.Unlock()
		return fmt.Errorf("health check failed: %w", err)
	}

	return nil
}

func (p *DB) healthCheckLoop() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.HealthCheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(p.ctx, 5*time.Second)
			if err := p.HealthCheck(ctx); err != nil {
				debug.Warn("health check failed", "dialect", p.dialect.Name, "error", err)
			}
			cancel()
		}
	}
}

// Close stops background health checks and closes the pool.
func (p *DB) Close() error {
	p.cancel()
	p.wg.Wait()
	return p.db.Close()
}

type cursor struct {
	rows    *sql.Rows
	columns []string
	current *driver.IndexedRow
	err     error
}

func (c *cursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		return false
	}
	values := make([]any, len(c.columns))
	ptrs := make([]any, len(c.columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := c.rows.Scan(ptrs...); err != nil {
		c.err = err
		return false
	}
	c.current = driver.NewIndexedRow(c.columns, values)
	return true
}

func (c *cursor) Row() driver.Row {
	return c.current
}

func (c *cursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *cursor) Close() error {
	return c.rows.Close()
}

var _ driver.Driver = (*DB)(nil)
