package datastore

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Operation names the store operation a statement belongs to.
type Operation string

const (
	OpCreate Operation = "create"
	OpInsert Operation = "insert"
	OpGetAll Operation = "get_all"
	OpGet    Operation = "get"
	OpGetOne Operation = "get_one"
	OpDelete Operation = "delete"
	OpIter   Operation = "iter"
)

// QueryEvent represents a statement execution event
type QueryEvent struct {
	ID        uuid.UUID
	Operation Operation
	Table     string
	SQL       string
	// Rows is the affected count for create, insert and delete, and the number of
	// records decoded for reads. Iter reports zero since rows are pulled later.
	Rows     int64
	Duration time.Duration
	Err      error
	Start    time.Time
	End      time.Time
}

// Middleware is a function that intercepts statements
type Middleware func(ctx context.Context, event *QueryEvent, next func() error) error

// LoggingMiddleware creates a middleware that logs statements at info level
func LoggingMiddleware(logger *slog.Logger) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		logger.InfoContext(ctx, "executing statement",
			"query_id", event.ID.String(),
			"op", string(event.Operation),
			"sql", event.SQL,
		)
		err := next()
		if err != nil {
			logger.ErrorContext(ctx, "statement failed", "query_id", event.ID.String(), "error", err)
		} else {
			logger.InfoContext(ctx, "statement completed",
				"query_id", event.ID.String(),
				"duration", event.Duration,
				"rows", event.Rows,
			)
		}
		return err
	}
}

// TimingMiddleware creates a middleware that measures statement execution time
func TimingMiddleware(onTiming func(event *QueryEvent)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if onTiming != nil {
			onTiming(event)
		}
		return err
	}
}

// ErrorMiddleware creates a middleware that observes failed statements
func ErrorMiddleware(onError func(event *QueryEvent, err error)) Middleware {
	return func(ctx context.Context, event *QueryEvent, next func() error) error {
		err := next()
		if err != nil && onError != nil {
			onError(event, err)
		}
		return err
	}
}
