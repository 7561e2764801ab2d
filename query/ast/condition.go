package ast

import "strings"

// Comparator compares a column with a literal
type Comparator uint8

const (
	// Eq renders as "="
	Eq Comparator = iota
)

var comparatorSymbols = map[Comparator]string{
	Eq: "=",
}

// Symbol returns the SQL operator of c
func (c Comparator) Symbol() string {
	if s, ok := comparatorSymbols[c]; ok {
		return s
	}
	return "="
}

func (c Comparator) String() string { return c.Symbol() }

// Condition is a single comparison, e.g. id = 1
type Condition struct {
	Column     string
	Value      string
	Comparator Comparator
}

// NewCondition creates a condition
func NewCondition(column, value string, comparator Comparator) Condition {
	return Condition{Column: column, Value: value, Comparator: comparator}
}

func (c Condition) String() string {
	return c.Column + " " + c.Comparator.Symbol() + " " + c.Value
}

// Conditions is a conjunction of conditions. Empty means no filter.
type Conditions []Condition

// Empty reports whether no condition has been added
func (cs Conditions) Empty() bool { return len(cs) == 0 }

// String renders the WHERE suffix, including its leading space, or "" when empty
func (cs Conditions) String() string {
	var b strings.Builder
	cs.writeTo(&b)
	return b.String()
}

func (cs Conditions) writeTo(b *strings.Builder) {
	for i, c := range cs {
		if i == 0 {
			b.WriteString(" WHERE ")
		} else {
			b.WriteString(" AND ")
		}
		b.WriteString(c.String())
	}
}
