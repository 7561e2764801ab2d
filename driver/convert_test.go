package driver_test

import (
	"errors"
	"math"
	"testing"

	"github.com/satishbabariya/datastore/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	t.Run("bool from int64 and text", func(t *testing.T) {
		var b bool
		require.NoError(t, driver.Convert(&b, int64(1)))
		assert.True(t, b)
		require.NoError(t, driver.Convert(&b, []byte("0")))
		assert.False(t, b)
		require.NoError(t, driver.Convert(&b, true))
		assert.True(t, b)
	})

	t.Run("integers from text protocol bytes", func(t *testing.T) {
		var i8 int8
		require.NoError(t, driver.Convert(&i8, []byte("-12")))
		assert.Equal(t, int8(-12), i8)

		var u64 uint64
		require.NoError(t, driver.Convert(&u64, []byte("18446744073709551615")))
		assert.Equal(t, uint64(math.MaxUint64), u64)

		var i64 int64
		require.NoError(t, driver.Convert(&i64, int64(42)))
		assert.Equal(t, int64(42), i64)
	})

	t.Run("integer overflow", func(t *testing.T) {
		var i8 int8
		assert.Error(t, driver.Convert(&i8, int64(300)))

		var u16 uint16
		assert.Error(t, driver.Convert(&u16, int64(-1)))
	})

	t.Run("floats", func(t *testing.T) {
		var f32 float32
		require.NoError(t, driver.Convert(&f32, float64(1.5)))
		assert.Equal(t, float32(1.5), f32)

		var f64 float64
		require.NoError(t, driver.Convert(&f64, []byte("0.25")))
		assert.Equal(t, 0.25, f64)
	})

	t.Run("text and bytes", func(t *testing.T) {
		var s string
		require.NoError(t, driver.Convert(&s, []byte("O'Brien")))
		assert.Equal(t, "O'Brien", s)

		src := []byte{0x0a, 0xff}
		var b []byte
		require.NoError(t, driver.Convert(&b, src))
		assert.Equal(t, []byte{0x0a, 0xff}, b)
		src[0] = 0
		assert.Equal(t, byte(0x0a), b[0], "bytes must be copied")
	})

	t.Run("type mismatch", func(t *testing.T) {
		var i int32
		assert.Error(t, driver.Convert(&i, "not a number"))
	})

	t.Run("null", func(t *testing.T) {
		var s string
		assert.ErrorIs(t, driver.Convert(&s, nil), driver.ErrNullValue)
	})

	t.Run("unsupported destination", func(t *testing.T) {
		var i int
		assert.ErrorIs(t, driver.Convert(&i, int64(1)), driver.ErrUnsupportedDest)
	})
}

func TestMapRow_Scan(t *testing.T) {
	row := driver.MapRow{
		"id":   int64(7),
		"name": "seven",
		"note": nil,
	}

	var id int32
	require.NoError(t, row.Scan("id", &id))
	assert.Equal(t, int32(7), id)

	var name string
	require.NoError(t, row.Scan("name", &name))
	assert.Equal(t, "seven", name)

	err := row.Scan("missing", &name)
	var de *driver.DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "missing", de.Column)
	assert.Equal(t, "string", de.Type)
	assert.ErrorIs(t, err, driver.ErrMissingColumn)

	err = row.Scan("note", &name)
	assert.ErrorIs(t, err, driver.ErrNullValue)
	assert.True(t, driver.IsDecodeError(err))

	var small int8
	err = row.Scan("name", &small)
	assert.True(t, driver.IsDecodeError(err))
	assert.Contains(t, err.Error(), `decode column "name" as int8`)
}

func TestIndexedRow_Scan(t *testing.T) {
	row := driver.NewIndexedRow([]string{"id", "name"}, []any{int64(1), []byte("one")})

	var name string
	require.NoError(t, row.Scan("name", &name))
	assert.Equal(t, "one", name)

	var id uint8
	require.NoError(t, row.Scan("id", &id))
	assert.Equal(t, uint8(1), id)

	assert.ErrorIs(t, row.Scan("other", &id), driver.ErrMissingColumn)
}
