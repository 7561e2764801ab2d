package record

// Funcs builds a Descriptor from plain functions. It is the hand-written counterpart
// of the reflection-based descriptors in package derive.
type Funcs[T any] struct {
	Name   string
	Schema func(w TypeWriter) error
	Values func(w Writer, v T) error
	Decode func(r Reader) (T, error)
}

// Table returns f.Name.
func (f Funcs[T]) Table() string {
	return f.Name
}

// WriteType calls f.Schema.
func (f Funcs[T]) WriteType(w TypeWriter) error {
	return f.Schema(w)
}

// Write calls f.Values.
func (f Funcs[T]) Write(w Writer, v T) error {
	return f.Values(w, v)
}

// Read calls f.Decode.
func (f Funcs[T]) Read(r Reader) (T, error) {
	return f.Decode(r)
}

var _ Descriptor[struct{}] = Funcs[struct{}]{}
