// Package sqlgen renders records into statements and rows back into records. It holds
// the three visitors of the record protocol: the value writer, the schema writer and
// the row reader.
package sqlgen

import (
	"github.com/satishbabariya/datastore/dialect"
	"github.com/satishbabariya/datastore/query/ast"
	"github.com/satishbabariya/datastore/record"
)

// Mode selects what a writer pushes onto its statement.
type Mode uint8

const (
	// ModeValues pushes column/value pairs (INSERT) or column definitions (CREATE).
	ModeValues Mode = iota
	// ModeColumns pushes bare column names (SELECT projection).
	ModeColumns
	// ModeConditions pushes equality conditions (SELECT and DELETE filters).
	ModeConditions
)

func (m Mode) String() string {
	switch m {
	case ModeValues:
		return "values"
	case ModeColumns:
		return "columns"
	case ModeConditions:
		return "conditions"
	default:
		return "unknown"
	}
}

// ValueWriter converts field values into literals and appends them to a statement.
// It is not safe for concurrent use.
type ValueWriter struct {
	dialect *dialect.Dialect
	mode    Mode
	push    func(column, literal string)
}

// NewValueWriter writes column/value pairs into s.
func NewValueWriter(d *dialect.Dialect, s ast.ValueSink) *ValueWriter {
	return &ValueWriter{dialect: d, mode: ModeValues, push: s.Push}
}

// NewConditionWriter writes "column = literal" conditions into s.
func NewConditionWriter(d *dialect.Dialect, s ast.ConditionSink) *ValueWriter {
	return &ValueWriter{
		dialect: d,
		mode:    ModeConditions,
		push: func(column, literal string) {
			s.PushCondition(ast.NewCondition(column, literal, ast.Eq))
		},
	}
}

// Mode reports whether w writes values or conditions.
func (w *ValueWriter) Mode() Mode {
	return w.mode
}

func (w *ValueWriter) WriteBool(key string, v bool) error {
	w.push(key, w.dialect.Bool(v))
	return nil
}

func (w *ValueWriter) WriteInt8(key string, v int8) error {
	return w.WriteInt64(key, int64(v))
}

func (w *ValueWriter) WriteInt16(key string, v int16) error {
	return w.WriteInt64(key, int64(v))
}

func (w *ValueWriter) WriteInt32(key string, v int32) error {
	return w.WriteInt64(key, int64(v))
}

func (w *ValueWriter) WriteInt64(key string, v int64) error {
	w.push(key, w.dialect.Int(v))
	return nil
}

func (w *ValueWriter) WriteUint8(key string, v uint8) error {
	return w.WriteUint64(key, uint64(v))
}

func (w *ValueWriter) WriteUint16(key string, v uint16) error {
	return w.WriteUint64(key, uint64(v))
}

func (w *ValueWriter) WriteUint32(key string, v uint32) error {
	return w.WriteUint64(key, uint64(v))
}

func (w *ValueWriter) WriteUint64(key string, v uint64) error {
	lit, err := w.dialect.Uint(v)
	if err != nil {
		return &FieldError{Column: key, Err: err}
	}
	w.push(key, lit)
	return nil
}

func (w *ValueWriter) WriteFloat32(key string, v float32) error {
	return w.writeFloat(key, float64(v), 32)
}

func (w *ValueWriter) WriteFloat64(key string, v float64) error {
	return w.writeFloat(key, v, 64)
}

func (w *ValueWriter) writeFloat(key string, v float64, bitSize int) error {
	lit, err := w.dialect.Float(v, bitSize)
	if err != nil {
		return &FieldError{Column: key, Err: err}
	}
	w.push(key, lit)
	return nil
}

func (w *ValueWriter) WriteBytes(key string, v []byte) error {
	w.push(key, w.dialect.Bytes(v))
	return nil
}

func (w *ValueWriter) WriteString(key string, v string) error {
	lit, err := w.dialect.Text(v)
	if err != nil {
		return &FieldError{Column: key, Err: err}
	}
	w.push(key, lit)
	return nil
}

var _ record.Writer = (*ValueWriter)(nil)
