package driver

import (
	"database/sql"
	"fmt"
)

// Convert stores the driver value src into dest using database/sql conversion rules:
// integers are range checked, text-protocol []byte values are parsed, and NULL is an
// error. Errors are not wrapped in a DecodeError; Row implementations do that.
func Convert(dest, src any) error {
	if src == nil {
		return ErrNullValue
	}

	switch d := dest.(type) {
	case *bool:
		return assign(d, src)
	case *int8:
		return assign(d, src)
	case *int16:
		return assign(d, src)
	case *int32:
		return assign(d, src)
	case *int64:
		return assign(d, src)
	case *uint8:
		return assign(d, src)
	case *uint16:
		return assign(d, src)
	case *uint32:
		return assign(d, src)
	case *uint64:
		return assign(d, src)
	case *float32:
		return assign(d, src)
	case *float64:
		return assign(d, src)
	case *[]byte:
		return assign(d, src)
	case *string:
		return assign(d, src)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedDest, dest)
	}
}

func assign[T any](dst *T, src any) error {
	var n sql.Null[T]
	if err := n.Scan(src); err != nil {
		return err
	}
	*dst = n.V
	return nil
}

// typeName returns the Go type a destination pointer points to.
func typeName(dest any) string {
	return fmt.Sprintf("%T", dest)[1:]
}

// MapRow is a Row backed by a map of column name to driver value. Values follow
// database/sql driver types: int64, float64, bool, []byte, string, time.Time or nil.
type MapRow map[string]any

// Scan implements Row.
func (r MapRow) Scan(column string, dest any) error {
	src, ok := r[column]
	if !ok {
		return &DecodeError{Column: column, Type: typeName(dest), Err: ErrMissingColumn}
	}
	if err := Convert(dest, src); err != nil {
		return &DecodeError{Column: column, Type: typeName(dest), Err: err}
	}
	return nil
}

// IndexedRow is a Row over positional values with a shared column index, as produced
// by a cursor that scans every column once.
type IndexedRow struct {
	Index  map[string]int
	Values []any
}

// NewIndexedRow builds the column index for columns and wraps values.
func NewIndexedRow(columns []string, values []any) *IndexedRow {
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; !dup {
			index[c] = i
		}
	}
	return &IndexedRow{Index: index, Values: values}
}

// Scan implements Row.
func (r *IndexedRow) Scan(column string, dest any) error {
	i, ok := r.Index[column]
	if !ok || i >= len(r.Values) {
		return &DecodeError{Column: column, Type: typeName(dest), Err: ErrMissingColumn}
	}
	if err := Convert(dest, r.Values[i]); err != nil {
		return &DecodeError{Column: column, Type: typeName(dest), Err: err}
	}
	return nil
}

var (
	_ Row = MapRow(nil)
	_ Row = (*IndexedRow)(nil)
)
