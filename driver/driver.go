// Package driver defines the SQL execution contract a store is built on. Implementations
// execute literal SQL text; they never see records.
package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/satishbabariya/datastore/dialect"
)

var (
	// ErrNoRows is returned by FetchOne when the statement produced no row.
	ErrNoRows = errors.New("no rows in result set")

	// ErrMissingColumn means a row has no column with the requested name.
	ErrMissingColumn = errors.New("missing column")

	// ErrNullValue means a column holds NULL where a value is required.
	ErrNullValue = errors.New("unexpected NULL")

	// ErrUnsupportedDest means Scan was given a destination it cannot fill.
	ErrUnsupportedDest = errors.New("unsupported scan destination")
)

// Driver executes SQL statements.
type Driver interface {
	// Execute runs a statement that returns no rows and reports the affected count.
	Execute(ctx context.Context, sql string) (int64, error)

	// Fetch runs a query and streams its rows. The caller must Close the result.
	Fetch(ctx context.Context, sql string) (Rows, error)

	// FetchOne runs a query and returns its first row, or ErrNoRows.
	FetchOne(ctx context.Context, sql string) (Row, error)

	// Dialect returns the SQL dialect statements must be rendered in.
	Dialect() *dialect.Dialect
}

// Rows is a forward-only stream of rows.
type Rows interface {
	// Next advances to the next row. It returns false at the end or on error.
	Next() bool

	// Row returns the current row. Valid until the next call to Next.
	Row() Row

	// Err returns the error, if any, that ended iteration.
	Err() error

	// Close releases the underlying cursor. It is safe to call more than once.
	Close() error
}

// Row is one fetched row addressed by column name.
type Row interface {
	// Scan converts the named column into dest, which must be a pointer to one of
	// bool, int8..int64, uint8..uint64, float32, float64, []byte or string.
	Scan(column string, dest any) error
}

// DecodeError reports a column that could not be converted into a field.
type DecodeError struct {
	Column string
	Type   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode column %q as %s: %v", e.Column, e.Type, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether err is, or wraps, a *DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}
