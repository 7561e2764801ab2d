package datastore

import (
	"iter"

	"github.com/satishbabariya/datastore/driver"
	"github.com/satishbabariya/datastore/query/sqlgen"
	"github.com/satishbabariya/datastore/record"
)

// Cursor pulls records one row at a time. It is not safe for concurrent use.
type Cursor[T any] struct {
	rows    driver.Rows
	desc    record.Descriptor[T]
	current T
	err     error
	closed  bool
}

func newCursor[T any](rows driver.Rows, desc record.Descriptor[T]) *Cursor[T] {
	return &Cursor[T]{rows: rows, desc: desc}
}

// Next decodes the next row. It returns false at the end, on error, or after Close.
// A row that fails to decode stops iteration and is reported by Err.
func (c *Cursor[T]) Next() bool {
	if c.closed || c.err != nil {
		return false
	}
	if !c.rows.Next() {
		c.err = c.rows.Err()
		return false
	}
	v, err := sqlgen.Decode(c.desc, c.rows.Row())
	if err != nil {
		var zero T
		c.current = zero
		c.err = err
		return false
	}
	c.current = v
	return true
}

// Record returns the record decoded by the last successful Next.
func (c *Cursor[T]) Record() T {
	return c.current
}

// Err returns the error that stopped iteration, if any.
func (c *Cursor[T]) Err() error {
	return c.err
}

// Close releases the driver cursor. It is safe to call more than once.
func (c *Cursor[T]) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.rows.Close()
}

// All iterates the remaining records and closes the cursor when done. An error is
// yielded once, with a zero record, as the final element.
func (c *Cursor[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer c.Close()
		for c.Next() {
			if !yield(c.current, nil) {
				return
			}
		}
		if err := c.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}
