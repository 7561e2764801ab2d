package sqlgen

import (
	"github.com/satishbabariya/datastore/driver"
	"github.com/satishbabariya/datastore/record"
)

// RowReader reads fields out of one fetched row by column name.
type RowReader struct {
	row driver.Row
}

// NewRowReader wraps row.
func NewRowReader(row driver.Row) *RowReader {
	return &RowReader{row: row}
}

func read[T any](r *RowReader, key string) (T, error) {
	var v T
	if err := r.row.Scan(key, &v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

func (r *RowReader) ReadBool(key string) (bool, error)       { return read[bool](r, key) }
func (r *RowReader) ReadInt8(key string) (int8, error)       { return read[int8](r, key) }
func (r *RowReader) ReadInt16(key string) (int16, error)     { return read[int16](r, key) }
func (r *RowReader) ReadInt32(key string) (int32, error)     { return read[int32](r, key) }
func (r *RowReader) ReadInt64(key string) (int64, error)     { return read[int64](r, key) }
func (r *RowReader) ReadUint8(key string) (uint8, error)     { return read[uint8](r, key) }
func (r *RowReader) ReadUint16(key string) (uint16, error)   { return read[uint16](r, key) }
func (r *RowReader) ReadUint32(key string) (uint32, error)   { return read[uint32](r, key) }
func (r *RowReader) ReadUint64(key string) (uint64, error)   { return read[uint64](r, key) }
func (r *RowReader) ReadFloat32(key string) (float32, error) { return read[float32](r, key) }
func (r *RowReader) ReadFloat64(key string) (float64, error) { return read[float64](r, key) }
func (r *RowReader) ReadBytes(key string) ([]byte, error)    { return read[[]byte](r, key) }
func (r *RowReader) ReadString(key string) (string, error)   { return read[string](r, key) }

var _ record.Reader = (*RowReader)(nil)
