package sqlgen

import (
	"fmt"

	"github.com/satishbabariya/datastore/dialect"
	"github.com/satishbabariya/datastore/query/ast"
	"github.com/satishbabariya/datastore/record"
)

// SchemaWriter turns field kinds into column definitions or column references.
// It is not safe for concurrent use.
type SchemaWriter struct {
	dialect *dialect.Dialect
	mode    Mode
	push    func(column, columnType string)
}

// NewDefinitionWriter writes "column TYPE" definitions into a CREATE TABLE.
func NewDefinitionWriter(d *dialect.Dialect, s *ast.CreateTable) *SchemaWriter {
	return &SchemaWriter{dialect: d, mode: ModeValues, push: s.Push}
}

// NewProjectionWriter writes bare column names into a SELECT projection.
func NewProjectionWriter(d *dialect.Dialect, s ast.ColumnSink) *SchemaWriter {
	return &SchemaWriter{
		dialect: d,
		mode:    ModeColumns,
		push: func(column, _ string) {
			s.PushColumn(column)
		},
	}
}

// NewTypeConditionWriter writes "column = TYPE" conditions into s.
func NewTypeConditionWriter(d *dialect.Dialect, s ast.ConditionSink) *SchemaWriter {
	return &SchemaWriter{
		dialect: d,
		mode:    ModeConditions,
		push: func(column, columnType string) {
			s.PushCondition(ast.NewCondition(column, columnType, ast.Eq))
		},
	}
}

// Mode reports what w pushes.
func (w *SchemaWriter) Mode() Mode {
	return w.mode
}

// WriteType implements record.TypeWriter.
func (w *SchemaWriter) WriteType(key string, kind record.Kind) error {
	columnType, err := w.dialect.ColumnType(kind)
	if err != nil {
		return &FieldError{Column: key, Err: err}
	}
	w.push(key, columnType)
	return nil
}

// FieldError attaches the column being written to an encoding or type error.
type FieldError struct {
	Column string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Column, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

var _ record.TypeWriter = (*SchemaWriter)(nil)
