package sqlgen

import (
	"github.com/satishbabariya/datastore/dialect"
	"github.com/satishbabariya/datastore/driver"
	"github.com/satishbabariya/datastore/query/ast"
	"github.com/satishbabariya/datastore/record"
)

// CreateTable builds the CREATE TABLE statement for desc's record type.
func CreateTable[T any](d *dialect.Dialect, desc record.Descriptor[T]) (*ast.CreateTable, error) {
	stmt := ast.NewCreateTable(desc.Table())
	if err := desc.WriteType(NewDefinitionWriter(d, stmt)); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Insert builds the INSERT statement storing v.
func Insert[T any](d *dialect.Dialect, desc record.Descriptor[T], v T) (*ast.Insert, error) {
	stmt := ast.NewInsert(desc.Table())
	if err := desc.Write(NewValueWriter(d, stmt), v); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Select builds a SELECT projecting every field of desc's record type, filtered by q.
// A nil q selects every row.
func Select[T any](d *dialect.Dialect, desc record.Descriptor[T], q record.Query) (*ast.Select, error) {
	stmt := ast.NewSelect(desc.Table())
	if err := desc.WriteType(NewProjectionWriter(d, stmt)); err != nil {
		return nil, err
	}
	if err := writeConditions(d, stmt, q); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Delete builds a DELETE on table filtered by q. A nil or empty q deletes every row.
func Delete(d *dialect.Dialect, table string, q record.Query) (*ast.Delete, error) {
	stmt := ast.NewDelete(table)
	if err := writeConditions(d, stmt, q); err != nil {
		return nil, err
	}
	return stmt, nil
}

func writeConditions(d *dialect.Dialect, s ast.ConditionSink, q record.Query) error {
	if q == nil {
		return nil
	}
	return q.Write(NewConditionWriter(d, s))
}

// Decode reads one row into a T.
func Decode[T any](desc record.Descriptor[T], row driver.Row) (T, error) {
	return desc.Read(NewRowReader(row))
}
