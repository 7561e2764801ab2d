// Package derive builds record descriptors from struct types by reflection.
//
// Every exported field becomes a column, in declaration order. The column name is the
// first element of the field's db tag, or the field name when the tag is absent. A tag
// of "-" skips the field.
//
//	type User struct {
//		ID     int64  `db:"id"`
//		Name   string `db:"name"`
//		Avatar []byte `db:"avatar"`
//		cache  string
//	}
//
//	users := derive.MustStruct[User]("users")
package derive

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/satishbabariya/datastore/record"
)

var (
	// ErrNotStruct is returned when the type parameter is not a struct.
	ErrNotStruct = errors.New("derive: type is not a struct")

	// ErrUnsupportedField is returned for a field whose type has no record kind.
	ErrUnsupportedField = errors.New("derive: unsupported field type")

	// ErrInvalidIdentifier is returned for a table or column name that is not a plain
	// SQL identifier.
	ErrInvalidIdentifier = errors.New("derive: invalid identifier")

	// ErrDuplicateColumn is returned when two fields map to the same column.
	ErrDuplicateColumn = errors.New("derive: duplicate column")

	// ErrNoFields is returned for a struct with no mapped fields.
	ErrNoFields = errors.New("derive: no mapped fields")
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type field struct {
	column string
	index  []int
	kind   record.Kind
}

// Descriptor is a reflection-based record.Descriptor.
type Descriptor[T any] struct {
	table  string
	fields []field
}

// Struct builds the descriptor of struct type T stored in table.
func Struct[T any](table string) (*Descriptor[T], error) {
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("%w: table %q", ErrInvalidIdentifier, table)
	}

	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotStruct, typ)
	}

	d := &Descriptor[T]{table: table}
	seen := make(map[string]string)

	for i := 0; i < typ.NumField(); i++ {
		sf := typ.Field(i)
		if !sf.IsExported() {
			continue
		}

		column := columnName(sf)
		if column == "-" {
			continue
		}
		if !identifier.MatchString(column) {
			return nil, fmt.Errorf("%w: column %q of field %s", ErrInvalidIdentifier, column, sf.Name)
		}
		if other, ok := seen[column]; ok {
			return nil, fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateColumn, column, other, sf.Name)
		}

		kind, ok := kindOf(sf.Type)
		if !ok {
			return nil, fmt.Errorf("%w: field %s has type %s", ErrUnsupportedField, sf.Name, sf.Type)
		}

		seen[column] = sf.Name
		d.fields = append(d.fields, field{column: column, index: sf.Index, kind: kind})
	}

	if len(d.fields) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFields, typ)
	}

	return d, nil
}

// MustStruct is like Struct but panics on error. It is intended for package-level
// descriptor variables.
func MustStruct[T any](table string) *Descriptor[T] {
	d, err := Struct[T](table)
	if err != nil {
		panic(err)
	}
	return d
}

// columnName extracts the column name from the db tag
func columnName(sf reflect.StructField) string {
	tag := sf.Tag.Get("db")
	if tag == "" {
		return sf.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return sf.Name
	}
	return name
}

func kindOf(t reflect.Type) (record.Kind, bool) {
	switch t.Kind() {
	case reflect.Bool:
		return record.Bool, true
	case reflect.Int8:
		return record.Int8, true
	case reflect.Int16:
		return record.Int16, true
	case reflect.Int32:
		return record.Int32, true
	case reflect.Int64, reflect.Int:
		return record.Int64, true
	case reflect.Uint8:
		return record.Uint8, true
	case reflect.Uint16:
		return record.Uint16, true
	case reflect.Uint32:
		return record.Uint32, true
	case reflect.Uint64, reflect.Uint:
		return record.Uint64, true
	case reflect.Float32:
		return record.Float32, true
	case reflect.Float64:
		return record.Float64, true
	case reflect.String:
		return record.String, true
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return record.Bytes, true
		}
	}
	return record.Invalid, false
}

// Table implements record.Descriptor.
func (d *Descriptor[T]) Table() string {
	return d.table
}

// Columns returns the column names in field order.
func (d *Descriptor[T]) Columns() []string {
	columns := make([]string, len(d.fields))
	for i, f := range d.fields {
		columns[i] = f.column
	}
	return columns
}

// Kind returns the kind of column, or record.Invalid if the column is not mapped.
func (d *Descriptor[T]) Kind(column string) record.Kind {
	for _, f := range d.fields {
		if f.column == column {
			return f.kind
		}
	}
	return record.Invalid
}

// WriteType implements record.Descriptor.
func (d *Descriptor[T]) WriteType(w record.TypeWriter) error {
	for _, f := range d.fields {
		if err := w.WriteType(f.column, f.kind); err != nil {
			return err
		}
	}
	return nil
}

// Write implements record.Descriptor.
func (d *Descriptor[T]) Write(w record.Writer, v T) error {
	rv := reflect.ValueOf(&v).Elem()
	for _, f := range d.fields {
		if err := writeField(w, f, rv.FieldByIndex(f.index)); err != nil {
			return err
		}
	}
	return nil
}

func writeField(w record.Writer, f field, fv reflect.Value) error {
	switch f.kind {
	case record.Bool:
		return w.WriteBool(f.column, fv.Bool())
	case record.Int8:
		return w.WriteInt8(f.column, int8(fv.Int()))
	case record.Int16:
		return w.WriteInt16(f.column, int16(fv.Int()))
	case record.Int32:
		return w.WriteInt32(f.column, int32(fv.Int()))
	case record.Int64:
		return w.WriteInt64(f.column, fv.Int())
	case record.Uint8:
		return w.WriteUint8(f.column, uint8(fv.Uint()))
	case record.Uint16:
		return w.WriteUint16(f.column, uint16(fv.Uint()))
	case record.Uint32:
		return w.WriteUint32(f.column, uint32(fv.Uint()))
	case record.Uint64:
		return w.WriteUint64(f.column, fv.Uint())
	case record.Float32:
		return w.WriteFloat32(f.column, float32(fv.Float()))
	case record.Float64:
		return w.WriteFloat64(f.column, fv.Float())
	case record.Bytes:
		return w.WriteBytes(f.column, fv.Bytes())
	case record.String:
		return w.WriteString(f.column, fv.String())
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedField, f.kind)
}

// Read implements record.Descriptor.
func (d *Descriptor[T]) Read(r record.Reader) (T, error) {
	var v T
	rv := reflect.ValueOf(&v).Elem()
	for _, f := range d.fields {
		if err := readField(r, f, rv.FieldByIndex(f.index)); err != nil {
			var zero T
			return zero, err
		}
	}
	return v, nil
}

func readField(r record.Reader, f field, fv reflect.Value) error {
	switch f.kind {
	case record.Bool:
		x, err := r.ReadBool(f.column)
		if err != nil {
			return err
		}
		fv.SetBool(x)
	case record.Int8:
		x, err := r.ReadInt8(f.column)
		if err != nil {
			return err
		}
		fv.SetInt(int64(x))
	case record.Int16:
		x, err := r.ReadInt16(f.column)
		if err != nil {
			return err
		}
		fv.SetInt(int64(x))
	case record.Int32:
		x, err := r.ReadInt32(f.column)
		if err != nil {
			return err
		}
		fv.SetInt(int64(x))
	case record.Int64:
		x, err := r.ReadInt64(f.column)
		if err != nil {
			return err
		}
		fv.SetInt(x)
	case record.Uint8:
		x, err := r.ReadUint8(f.column)
		if err != nil {
			return err
		}
		fv.SetUint(uint64(x))
	case record.Uint16:
		x, err := r.ReadUint16(f.column)
		if err != nil {
			return err
		}
		fv.SetUint(uint64(x))
	case record.Uint32:
		x, err := r.ReadUint32(f.column)
		if err != nil {
			return err
		}
		fv.SetUint(uint64(x))
	case record.Uint64:
		x, err := r.ReadUint64(f.column)
		if err != nil {
			return err
		}
		fv.SetUint(x)
	case record.Float32:
		x, err := r.ReadFloat32(f.column)
		if err != nil {
			return err
		}
		fv.SetFloat(float64(x))
	case record.Float64:
		x, err := r.ReadFloat64(f.column)
		if err != nil {
			return err
		}
		fv.SetFloat(x)
	case record.Bytes:
		x, err := r.ReadBytes(f.column)
		if err != nil {
			return err
		}
		fv.SetBytes(x)
	case record.String:
		x, err := r.ReadString(f.column)
		if err != nil {
			return err
		}
		fv.SetString(x)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedField, f.kind)
	}
	return nil
}

var _ record.Descriptor[struct{}] = (*Descriptor[struct{}])(nil)
