// Package recorder provides an in-memory driver that records every statement it is
// given and answers queries from canned rows. It backs dry runs and tests.
package recorder

import (
	"context"
	"sync"

	"github.com/satishbabariya/datastore/dialect"
	"github.com/satishbabariya/datastore/driver"
)

// Driver records statements. The zero value is not usable; call New.
type Driver struct {
	dialect *dialect.Dialect

	mu         sync.Mutex
	statements []string
	rows       []driver.MapRow
	affected   int64
	err        error
	closed     int
}

// New creates a recorder rendering for d.
func New(d *dialect.Dialect) *Driver {
	return &Driver{dialect: d}
}

// Dialect implements driver.Driver.
func (r *Driver) Dialect() *dialect.Dialect {
	return r.dialect
}

// SetRows sets the rows every subsequent Fetch and FetchOne returns.
func (r *Driver) SetRows(rows ...driver.MapRow) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = rows
}

// SetAffected sets the count Execute reports.
func (r *Driver) SetAffected(n int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.affected = n
}

// SetError makes every subsequent call fail with err after recording the statement.
func (r *Driver) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Statements returns the recorded SQL in execution order.
func (r *Driver) Statements() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.statements))
	copy(out, r.statements)
	return out
}

// Last returns the most recent statement, or "".
func (r *Driver) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.statements) == 0 {
		return ""
	}
	return r.statements[len(r.statements)-1]
}

// Reset clears recorded statements.
func (r *Driver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = nil
	r.closed = 0
}

// ClosedCursors reports how many cursors returned by Fetch have been closed.
func (r *Driver) ClosedCursors() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *Driver) record(sql string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statements = append(r.statements, sql)
	return r.err
}

// Execute implements driver.Driver.
func (r *Driver) Execute(ctx context.Context, sql string) (int64, error) {
	if err := r.record(sql); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.affected, nil
}

// Fetch implements driver.Driver.
func (r *Driver) Fetch(ctx context.Context, sql string) (driver.Rows, error) {
	if err := r.record(sql); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return &rows{owner: r, rows: r.rows, pos: -1}, nil
}

// FetchOne implements driver.Driver.
func (r *Driver) FetchOne(ctx context.Context, sql string) (driver.Row, error) {
	if err := r.record(sql); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.rows) == 0 {
		return nil, driver.ErrNoRows
	}
	return r.rows[0], nil
}

type rows struct {
	owner  *Driver
	rows   []driver.MapRow
	pos    int
	closed bool
}

func (r *rows) Next() bool {
	if r.closed || r.pos+1 >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *rows) Row() driver.Row {
	return r.rows[r.pos]
}

func (r *rows) Err() error {
	return nil
}

func (r *rows) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.owner.mu.Lock()
	r.owner.closed++
	r.owner.mu.Unlock()
	return nil
}

var _ driver.Driver = (*Driver)(nil)
