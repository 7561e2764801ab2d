// Package ast defines the statement AST rendered into literal SQL text.
package ast

import (
	"fmt"
	"strings"
)

// Kind represents the kind of a statement
type Kind uint8

const (
	KindCreate Kind = iota + 1
	KindInsert
	KindSelect
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindCreate:
		return "create"
	case KindInsert:
		return "insert"
	case KindSelect:
		return "select"
	case KindDelete:
		return "delete"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Statement is one SQL statement for a single table
type Statement interface {
	Kind() Kind
	Table() string
	String() string
}

// ValueSink is implemented by statements that carry column/value pairs
type ValueSink interface {
	Statement
	Push(column, value string)
}

// ColumnSink is implemented by statements that carry a projection list
type ColumnSink interface {
	Statement
	PushColumn(column string)
}

// ConditionSink is implemented by statements that carry a WHERE clause
type ConditionSink interface {
	Statement
	PushCondition(c Condition)
}

// New allocates an empty statement of the given kind. It panics with a *KindError for
// an unknown kind.
func New(table string, kind Kind) Statement {
	switch kind {
	case KindCreate:
		return NewCreateTable(table)
	case KindInsert:
		return NewInsert(table)
	case KindSelect:
		return NewSelect(table)
	case KindDelete:
		return NewDelete(table)
	default:
		panic(&KindError{Kind: kind, Want: "statement"})
	}
}

// MustValues returns s as a ValueSink. It panics with a *KindError when s does not
// accept column/value pairs (SELECT and DELETE).
func MustValues(s Statement) ValueSink {
	v, ok := s.(ValueSink)
	if !ok {
		panic(&KindError{Kind: s.Kind(), Want: "column values"})
	}
	return v
}

// MustColumns returns s as a ColumnSink. It panics with a *KindError for anything but
// SELECT.
func MustColumns(s Statement) ColumnSink {
	c, ok := s.(ColumnSink)
	if !ok {
		panic(&KindError{Kind: s.Kind(), Want: "projection columns"})
	}
	return c
}

// MustConditions returns s as a ConditionSink. It panics with a *KindError when s does
// not accept conditions (CREATE and INSERT).
func MustConditions(s Statement) ConditionSink {
	c, ok := s.(ConditionSink)
	if !ok {
		panic(&KindError{Kind: s.Kind(), Want: "conditions"})
	}
	return c
}

// KindError is the panic value for pushing onto a statement of the wrong kind.
type KindError struct {
	Kind Kind
	Want string
}

func (e *KindError) Error() string {
	return fmt.Sprintf("ast: %s statement does not accept %s", e.Kind, e.Want)
}

// CreateTable is a CREATE TABLE IF NOT EXISTS statement
type CreateTable struct {
	table   string
	columns []string
	types   []string
}

// NewCreateTable creates an empty CREATE TABLE statement
func NewCreateTable(table string) *CreateTable {
	return &CreateTable{table: table}
}

func (s *CreateTable) Kind() Kind    { return KindCreate }
func (s *CreateTable) Table() string { return s.table }

// Push appends a column definition
func (s *CreateTable) Push(column, columnType string) {
	s.columns = append(s.columns, column)
	s.types = append(s.types, columnType)
}

func (s *CreateTable) String() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(s.table)
	b.WriteString(" (")
	for i, column := range s.columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(column)
		b.WriteByte(' ')
		b.WriteString(s.types[i])
	}
	b.WriteByte(')')
	return b.String()
}

// Insert is an INSERT INTO ... VALUES statement
type Insert struct {
	table   string
	columns []string
	values  []string
}

// NewInsert creates an empty INSERT statement
func NewInsert(table string) *Insert {
	return &Insert{table: table}
}

func (s *Insert) Kind() Kind    { return KindInsert }
func (s *Insert) Table() string { return s.table }

// Push appends a column and its literal value
func (s *Insert) Push(column, value string) {
	s.columns = append(s.columns, column)
	s.values = append(s.values, value)
}

func (s *Insert) String() string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(s.table)
	b.WriteString(" (")
	b.WriteString(strings.Join(s.columns, ","))
	b.WriteString(") VALUES (")
	b.WriteString(strings.Join(s.values, ","))
	b.WriteByte(')')
	return b.String()
}

// Select is a SELECT statement over a single table
type Select struct {
	table      string
	columns    []string
	conditions Conditions
}

// NewSelect creates an empty SELECT statement
func NewSelect(table string) *Select {
	return &Select{table: table}
}

func (s *Select) Kind() Kind    { return KindSelect }
func (s *Select) Table() string { return s.table }

// PushColumn appends a column to the projection
func (s *Select) PushColumn(column string) {
	s.columns = append(s.columns, column)
}

// PushCondition appends a WHERE condition
func (s *Select) PushCondition(c Condition) {
	s.conditions = append(s.conditions, c)
}

// Columns returns the projection list
func (s *Select) Columns() []string { return s.columns }

// Conditions returns the WHERE conditions
func (s *Select) Conditions() Conditions { return s.conditions }

func (s *Select) String() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(s.columns, ","))
	b.WriteString(" FROM ")
	b.WriteString(s.table)
	s.conditions.writeTo(&b)
	return b.String()
}

// Delete is a DELETE statement. With no conditions it deletes every row of the table.
type Delete struct {
	table      string
	conditions Conditions
}

// NewDelete creates a DELETE statement with no conditions
func NewDelete(table string) *Delete {
	return &Delete{table: table}
}

func (s *Delete) Kind() Kind    { return KindDelete }
func (s *Delete) Table() string { return s.table }

// PushCondition appends a WHERE condition
func (s *Delete) PushCondition(c Condition) {
	s.conditions = append(s.conditions, c)
}

// Conditions returns the WHERE conditions
func (s *Delete) Conditions() Conditions { return s.conditions }

func (s *Delete) String() string {
	var b strings.Builder
	b.WriteString("DELETE FROM ")
	b.WriteString(s.table)
	s.conditions.writeTo(&b)
	return b.String()
}

var (
	_ ValueSink     = (*CreateTable)(nil)
	_ ValueSink     = (*Insert)(nil)
	_ ColumnSink    = (*Select)(nil)
	_ ConditionSink = (*Select)(nil)
	_ ConditionSink = (*Delete)(nil)
)
