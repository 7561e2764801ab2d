package datastore

import (
	"context"
	"errors"

	"github.com/satishbabariya/datastore/driver"
	"github.com/satishbabariya/datastore/query/sqlgen"
	"github.com/satishbabariya/datastore/record"
)

// Create creates the table for d's record type if it does not exist.
func Create[T any](ctx context.Context, s *Store, d record.Descriptor[T]) error {
	sql, err := CreateSQL(s, d)
	if err != nil {
		return err
	}
	return s.run(ctx, OpCreate, d.Table(), sql, func(event *QueryEvent) error {
		n, err := s.driver.Execute(ctx, sql)
		event.Rows = n
		return err
	})
}

// Insert stores v as a new row.
func Insert[T any](ctx context.Context, s *Store, d record.Descriptor[T], v T) error {
	sql, err := InsertSQL(s, d, v)
	if err != nil {
		return err
	}
	return s.run(ctx, OpInsert, d.Table(), sql, func(event *QueryEvent) error {
		n, err := s.driver.Execute(ctx, sql)
		event.Rows = n
		return err
	})
}

// GetAll returns every row of the table. An empty table yields an empty slice.
func GetAll[T any](ctx context.Context, s *Store, d record.Descriptor[T]) ([]T, error) {
	return collect(ctx, s, OpGetAll, d, nil)
}

// Get returns every row matching q. If any row fails to decode no records are returned.
func Get[T any](ctx context.Context, s *Store, d record.Descriptor[T], q record.Query) ([]T, error) {
	return collect(ctx, s, OpGet, d, q)
}

// GetOne returns the first row matching q, or nil if no row matches.
func GetOne[T any](ctx context.Context, s *Store, d record.Descriptor[T], q record.Query) (*T, error) {
	sql, err := SelectSQL(s, d, q)
	if err != nil {
		return nil, err
	}

	var result *T
	err = s.run(ctx, OpGetOne, d.Table(), sql, func(event *QueryEvent) error {
		row, err := s.driver.FetchOne(ctx, sql)
		if errors.Is(err, driver.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		v, err := sqlgen.Decode(d, row)
		if err != nil {
			return err
		}
		result = &v
		event.Rows = 1
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes every row matching q and reports how many were removed.
// A nil or empty q matches every row and empties the table.
func Delete[T any](ctx context.Context, s *Store, d record.Descriptor[T], q record.Query) (int64, error) {
	stmt, err := sqlgen.Delete(s.Dialect(), d.Table(), q)
	if err != nil {
		return 0, err
	}
	if stmt.Conditions().Empty() {
		s.log().WarnContext(ctx, "delete without conditions removes every row", "table", d.Table())
	}
	return execDelete(ctx, s, d.Table(), stmt.String())
}

// DeleteAll removes every row of the table.
func DeleteAll[T any](ctx context.Context, s *Store, d record.Descriptor[T]) (int64, error) {
	stmt, err := sqlgen.Delete(s.Dialect(), d.Table(), nil)
	if err != nil {
		return 0, err
	}
	return execDelete(ctx, s, d.Table(), stmt.String())
}

func execDelete(ctx context.Context, s *Store, table, sql string) (int64, error) {
	var affected int64
	err := s.run(ctx, OpDelete, table, sql, func(event *QueryEvent) error {
		n, err := s.driver.Execute(ctx, sql)
		affected = n
		event.Rows = n
		return err
	})
	return affected, err
}

// Iter opens a cursor over the rows matching q. The caller must Close it.
func Iter[T any](ctx context.Context, s *Store, d record.Descriptor[T], q record.Query) (*Cursor[T], error) {
	sql, err := SelectSQL(s, d, q)
	if err != nil {
		return nil, err
	}

	var cursor *Cursor[T]
	err = s.run(ctx, OpIter, d.Table(), sql, func(event *QueryEvent) error {
		rows, err := s.driver.Fetch(ctx, sql)
		if err != nil {
			return err
		}
		cursor = newCursor(rows, d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cursor, nil
}

func collect[T any](ctx context.Context, s *Store, op Operation, d record.Descriptor[T], q record.Query) ([]T, error) {
	sql, err := SelectSQL(s, d, q)
	if err != nil {
		return nil, err
	}

	var records []T
	err = s.run(ctx, op, d.Table(), sql, func(event *QueryEvent) error {
		rows, err := s.driver.Fetch(ctx, sql)
		if err != nil {
			return err
		}
		cursor := newCursor(rows, d)

		out := []T{}
		for cursor.Next() {
			out = append(out, cursor.Record())
		}
		if err := cursor.Err(); err != nil {
			cursor.Close()
			return err
		}
		if err := cursor.Close(); err != nil {
			return err
		}

		records = out
		event.Rows = int64(len(out))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CreateSQL renders the statement Create would execute.
func CreateSQL[T any](s *Store, d record.Descriptor[T]) (string, error) {
	stmt, err := sqlgen.CreateTable(s.Dialect(), d)
	if err != nil {
		return "", err
	}
	return stmt.String(), nil
}

// InsertSQL renders the statement Insert would execute for v.
func InsertSQL[T any](s *Store, d record.Descriptor[T], v T) (string, error) {
	stmt, err := sqlgen.Insert(s.Dialect(), d, v)
	if err != nil {
		return "", err
	}
	return stmt.String(), nil
}

// SelectSQL renders the statement Get, GetOne and Iter execute for q, and GetAll for nil.
func SelectSQL[T any](s *Store, d record.Descriptor[T], q record.Query) (string, error) {
	stmt, err := sqlgen.Select(s.Dialect(), d, q)
	if err != nil {
		return "", err
	}
	return stmt.String(), nil
}

// DeleteSQL renders the statement Delete would execute for q.
func DeleteSQL[T any](s *Store, d record.Descriptor[T], q record.Query) (string, error) {
	stmt, err := sqlgen.Delete(s.Dialect(), d.Table(), q)
	if err != nil {
		return "", err
	}
	return stmt.String(), nil
}
