package datastore

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/satishbabariya/datastore/dialect"
	"github.com/satishbabariya/datastore/driver"
	"github.com/satishbabariya/datastore/internal/debug"
)

// Store executes record operations against one driver. It is safe for concurrent use.
type Store struct {
	driver      driver.Driver
	logger      *slog.Logger
	middlewares []Middleware
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger statements are logged to. By default the process logger
// from internal/debug is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMiddleware appends middlewares to the chain run around every statement.
func WithMiddleware(middlewares ...Middleware) Option {
	return func(s *Store) {
		s.middlewares = append(s.middlewares, middlewares...)
	}
}

// New creates a store on drv.
func New(drv driver.Driver, opts ...Option) *Store {
	s := &Store{driver: drv}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Driver returns the driver statements are executed on.
func (s *Store) Driver() driver.Driver {
	return s.driver
}

// Dialect returns the dialect statements are rendered in.
func (s *Store) Dialect() *dialect.Dialect {
	return s.driver.Dialect()
}

func (s *Store) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return debug.Logger()
}

// run executes exec inside the middleware chain and logs the statement.
func (s *Store) run(ctx context.Context, op Operation, table, sql string, exec func(event *QueryEvent) error) error {
	event := &QueryEvent{
		ID:        uuid.Must(uuid.NewV7()),
		Operation: op,
		Table:     table,
		SQL:       sql,
		Start:     time.Now(),
	}

	var next func() error
	index := 0

	next = func() error {
		if index >= len(s.middlewares) {
			err := exec(event)
			event.End = time.Now()
			event.Duration = event.End.Sub(event.Start)
			event.Err = err
			return err
		}

		middleware := s.middlewares[index]
		index++
		return middleware(ctx, event, next)
	}

	err := next()

	attrs := []any{
		slog.String("op", string(op)),
		slog.String("table", table),
		slog.String("sql", sql),
		slog.String("query_id", event.ID.String()),
		slog.Duration("duration", event.Duration),
		slog.Int64("rows", event.Rows),
	}
	if err != nil {
		s.log().DebugContext(ctx, "statement failed", append(attrs, slog.Any("error", err))...)
	} else {
		s.log().DebugContext(ctx, "statement executed", attrs...)
	}

	return err
}
