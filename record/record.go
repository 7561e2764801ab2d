// Package record defines the visitor protocol records use to describe themselves to a
// store: field kinds, value and type writers, and a row reader.
package record

// Kind identifies a primitive field type a record may contain.
type Kind uint8

// Supported field kinds.
const (
	Invalid Kind = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Bytes
	String
)

var kindNames = [...]string{
	Invalid: "invalid",
	Bool:    "bool",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
	Bytes:   "[]byte",
	String:  "string",
}

// String returns the Go type name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	return k > Invalid && k <= String
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, String)
	for k := Bool; k <= String; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Writer receives the values of a record's fields, one call per field.
// The column key and the value arrive together.
type Writer interface {
	WriteBool(key string, v bool) error
	WriteInt8(key string, v int8) error
	WriteInt16(key string, v int16) error
	WriteInt32(key string, v int32) error
	WriteInt64(key string, v int64) error
	WriteUint8(key string, v uint8) error
	WriteUint16(key string, v uint16) error
	WriteUint32(key string, v uint32) error
	WriteUint64(key string, v uint64) error
	WriteFloat32(key string, v float32) error
	WriteFloat64(key string, v float64) error
	WriteBytes(key string, v []byte) error
	WriteString(key string, v string) error
}

// TypeWriter receives the declared kind of each field of a record type.
type TypeWriter interface {
	WriteType(key string, kind Kind) error
}

// Reader extracts field values from a single fetched row by column name.
type Reader interface {
	ReadBool(key string) (bool, error)
	ReadInt8(key string) (int8, error)
	ReadInt16(key string) (int16, error)
	ReadInt32(key string) (int32, error)
	ReadInt64(key string) (int64, error)
	ReadUint8(key string) (uint8, error)
	ReadUint16(key string) (uint16, error)
	ReadUint32(key string) (uint32, error)
	ReadUint64(key string) (uint64, error)
	ReadFloat32(key string) (float32, error)
	ReadFloat64(key string) (float64, error)
	ReadBytes(key string) ([]byte, error)
	ReadString(key string) (string, error)
}

// Descriptor maps a record type T to its table and drives the visitors over its fields.
//
// WriteType and Write must visit fields in the same order, which becomes the column
// order of rendered statements.
type Descriptor[T any] interface {
	// Table returns the table identifier. It must already be a safe SQL identifier.
	Table() string

	// WriteType reports every field's column name and kind.
	WriteType(w TypeWriter) error

	// Write reports every field's column name and value for v.
	Write(w Writer, v T) error

	// Read reconstructs a T from one row.
	Read(r Reader) (T, error)
}

// Query describes equality filters on a record type. Every value written becomes one
// condition; writing nothing means no filter.
type Query interface {
	Write(w Writer) error
}

// QueryFunc adapts a function to the Query interface.
type QueryFunc func(w Writer) error

// Write calls f(w).
func (f QueryFunc) Write(w Writer) error {
	return f(w)
}
