package datastore

import "github.com/satishbabariya/datastore/record"

// Filter is a conjunction of equality terms. It implements record.Query.
type Filter struct {
	terms []func(w record.Writer) error
}

// Where starts an empty filter.
func Where() *Filter {
	return &Filter{}
}

func (f *Filter) add(term func(w record.Writer) error) *Filter {
	f.terms = append(f.terms, term)
	return f
}

// Len returns the number of terms.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.terms)
}

// Write replays the terms in the order they were added.
func (f *Filter) Write(w record.Writer) error {
	if f == nil {
		return nil
	}
	for _, term := range f.terms {
		if err := term(w); err != nil {
			return err
		}
	}
	return nil
}

func (f *Filter) Bool(column string, v bool) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteBool(column, v) })
}

func (f *Filter) Int8(column string, v int8) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteInt8(column, v) })
}

func (f *Filter) Int16(column string, v int16) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteInt16(column, v) })
}

func (f *Filter) Int32(column string, v int32) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteInt32(column, v) })
}

func (f *Filter) Int64(column string, v int64) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteInt64(column, v) })
}

func (f *Filter) Uint8(column string, v uint8) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteUint8(column, v) })
}

func (f *Filter) Uint16(column string, v uint16) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteUint16(column, v) })
}

func (f *Filter) Uint32(column string, v uint32) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteUint32(column, v) })
}

func (f *Filter) Uint64(column string, v uint64) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteUint64(column, v) })
}

func (f *Filter) Float32(column string, v float32) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteFloat32(column, v) })
}

func (f *Filter) Float64(column string, v float64) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteFloat64(column, v) })
}

// Bytes matches a binary column. v is copied.
func (f *Filter) Bytes(column string, v []byte) *Filter {
	v = append([]byte(nil), v...)
	return f.add(func(w record.Writer) error { return w.WriteBytes(column, v) })
}

func (f *Filter) String(column string, v string) *Filter {
	return f.add(func(w record.Writer) error { return w.WriteString(column, v) })
}

var _ record.Query = (*Filter)(nil)
