// Package filterexpr parses textual equality filters such as
//
//	id = 3 AND name = 'O''Brien' AND active = true AND avatar = 0x0aff
//
// into a record.Query. Strings use SQL quoting, integers are decimal, and binary values
// are written as 0x followed by hex digits.
package filterexpr

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/satishbabariya/datastore/record"
)

var (
	// ErrEmpty is returned by Parse for blank input.
	ErrEmpty = errors.New("filterexpr: empty expression")

	// ErrUnknownColumn is returned by Check for a column the record type does not have.
	ErrUnknownColumn = errors.New("filterexpr: unknown column")

	// ErrTypeMismatch is returned by Check when a literal cannot be stored in its column.
	ErrTypeMismatch = errors.New("filterexpr: literal does not match column type")
)

// Term is one `column = literal` comparison.
type Term struct {
	Column string
	// Kind is the literal's kind: Bool, Int64, Uint64 (integers above MaxInt64),
	// Float64, Bytes or String.
	Kind  record.Kind
	Value any
}

// Expr is a parsed filter. It implements record.Query.
type Expr struct {
	Terms []Term
}

// Parse parses a filter expression.
func Parse(input string) (*Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmpty
	}

	raw, err := parser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("filterexpr: %w", err)
	}

	expr := &Expr{Terms: make([]Term, 0, len(raw.Terms))}
	for _, rt := range raw.Terms {
		term, err := convert(rt)
		if err != nil {
			return nil, fmt.Errorf("filterexpr: %s: column %s: %w", rt.Value.Pos, rt.Column, err)
		}
		expr.Terms = append(expr.Terms, term)
	}
	return expr, nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string) *Expr {
	expr, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return expr
}

func convert(rt *rawTerm) (Term, error) {
	term := Term{Column: rt.Column}
	v := rt.Value

	switch {
	case v.Bool != nil:
		term.Kind, term.Value = record.Bool, strings.EqualFold(*v.Bool, "TRUE")
	case v.Hex != nil:
		b, err := hex.DecodeString((*v.Hex)[2:])
		if err != nil {
			return term, err
		}
		term.Kind, term.Value = record.Bytes, b
	case v.Float != nil:
		f, err := strconv.ParseFloat(*v.Float, 64)
		if err != nil {
			return term, err
		}
		term.Kind, term.Value = record.Float64, f
	case v.Int != nil:
		if i, err := strconv.ParseInt(*v.Int, 10, 64); err == nil {
			term.Kind, term.Value = record.Int64, i
			break
		}
		u, err := strconv.ParseUint(strings.TrimPrefix(*v.Int, "+"), 10, 64)
		if err != nil {
			return term, err
		}
		term.Kind, term.Value = record.Uint64, u
	case v.String != nil:
		s := *v.String
		term.Kind, term.Value = record.String, strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return term, nil
}

// Write implements record.Query.
func (e *Expr) Write(w record.Writer) error {
	if e == nil {
		return nil
	}
	for _, t := range e.Terms {
		var err error
		switch t.Kind {
		case record.Bool:
			err = w.WriteBool(t.Column, t.Value.(bool))
		case record.Int64:
			err = w.WriteInt64(t.Column, t.Value.(int64))
		case record.Uint64:
			err = w.WriteUint64(t.Column, t.Value.(uint64))
		case record.Float64:
			err = w.WriteFloat64(t.Column, t.Value.(float64))
		case record.Bytes:
			err = w.WriteBytes(t.Column, t.Value.([]byte))
		case record.String:
			err = w.WriteString(t.Column, t.Value.(string))
		default:
			err = fmt.Errorf("filterexpr: column %s: unexpected literal kind %s", t.Column, t.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Columns returns the filtered columns in order.
func (e *Expr) Columns() []string {
	columns := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		columns[i] = t.Column
	}
	return columns
}

// Check verifies every term against the column kinds of a record type. kindOf returns
// record.Invalid for unknown columns.
func (e *Expr) Check(kindOf func(column string) record.Kind) error {
	for _, t := range e.Terms {
		want := kindOf(t.Column)
		if want == record.Invalid {
			return fmt.Errorf("%w: %s", ErrUnknownColumn, t.Column)
		}
		if !compatible(t, want) {
			return fmt.Errorf("%w: %s is %s, literal is %s", ErrTypeMismatch, t.Column, want, t.Kind)
		}
	}
	return nil
}

func compatible(t Term, want record.Kind) bool {
	switch want {
	case record.Bool, record.Bytes, record.String:
		return t.Kind == want
	case record.Float32, record.Float64:
		return t.Kind == record.Float64 || t.Kind == record.Int64 || t.Kind == record.Uint64
	case record.Int8, record.Int16, record.Int32, record.Int64:
		if t.Kind != record.Int64 {
			return false
		}
		return fitsInt(t.Value.(int64), want)
	case record.Uint8, record.Uint16, record.Uint32, record.Uint64:
		switch t.Kind {
		case record.Int64:
			i := t.Value.(int64)
			return i >= 0 && fitsUint(uint64(i), want)
		case record.Uint64:
			return want == record.Uint64
		}
	}
	return false
}

func fitsInt(v int64, kind record.Kind) bool {
	switch kind {
	case record.Int8:
		return v >= -1<<7 && v < 1<<7
	case record.Int16:
		return v >= -1<<15 && v < 1<<15
	case record.Int32:
		return v >= -1<<31 && v < 1<<31
	}
	return true
}

func fitsUint(v uint64, kind record.Kind) bool {
	switch kind {
	case record.Uint8:
		return v < 1<<8
	case record.Uint16:
		return v < 1<<16
	case record.Uint32:
		return v < 1<<32
	}
	return true
}

var _ record.Query = (*Expr)(nil)
