package dialect_test

import (
	"errors"
	"math"
	"testing"

	"github.com/satishbabariya/datastore/dialect"
	"github.com/satishbabariya/datastore/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQL_ColumnType(t *testing.T) {
	want := map[record.Kind]string{
		record.Bool:    "BOOLEAN",
		record.Int8:    "TINYINT",
		record.Int16:   "SMALLINT",
		record.Int32:   "INT",
		record.Int64:   "BIGINT",
		record.Uint8:   "TINYINT UNSIGNED",
		record.Uint16:  "SMALLINT UNSIGNED",
		record.Uint32:  "INT UNSIGNED",
		record.Uint64:  "BIGINT UNSIGNED",
		record.Float32: "FLOAT",
		record.Float64: "DOUBLE",
		record.Bytes:   "BLOB",
		record.String:  "TEXT",
	}

	for _, kind := range record.Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			got, err := dialect.MySQL.ColumnType(kind)
			require.NoError(t, err)
			assert.Equal(t, want[kind], got)
		})
	}
}

func TestColumnType_EveryDialectCoversEveryKind(t *testing.T) {
	for _, name := range dialect.Names() {
		d, err := dialect.Lookup(name)
		require.NoError(t, err)
		for _, kind := range record.Kinds() {
			_, err := d.ColumnType(kind)
			assert.NoError(t, err, "%s %s", name, kind)
		}
	}
}

func TestColumnType_Unsupported(t *testing.T) {
	_, err := dialect.MySQL.ColumnType(record.Invalid)
	assert.ErrorIs(t, err, dialect.ErrUnsupportedKind)
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		d    *dialect.Dialect
		in   string
		want string
	}{
		{"plain", dialect.MySQL, "hello", "'hello'"},
		{"empty", dialect.MySQL, "", "''"},
		{"single quote is doubled", dialect.MySQL, "O'Brien", "'O''Brien'"},
		{"only quotes", dialect.SQLite, "''", "''''''"},
		{"mysql doubles backslash", dialect.MySQL, `a\b`, `'a\\b'`},
		{"mysql backslash before quote", dialect.MySQL, `\' OR 1=1 --`, `'\\'' OR 1=1 --'`},
		{"postgres keeps backslash", dialect.Postgres, `a\b`, `'a\b'`},
		{"sqlite keeps backslash", dialect.SQLite, `it's\`, `'it''s\'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.d.Text(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestText_QuoteEscapeIsNotANoop(t *testing.T) {
	for _, name := range dialect.Names() {
		d, err := dialect.Lookup(name)
		require.NoError(t, err)
		got, err := d.Text("O'Brien")
		require.NoError(t, err)
		assert.NotEqual(t, "'O'Brien'", got, name)
		assert.Equal(t, "'O''Brien'", got, name)
	}
}

func TestText_PostgresRejectsNUL(t *testing.T) {
	_, err := dialect.Postgres.Text("a\x00b")
	var encErr *dialect.EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, record.String, encErr.Kind)

	got, err := dialect.MySQL.Text("a\x00b")
	require.NoError(t, err)
	assert.Equal(t, "'a\x00b'", got)
}

func TestBytes(t *testing.T) {
	in := []byte{0x0a, 0xff}
	assert.Equal(t, "0x0aff", dialect.MySQL.Bytes(in))
	assert.Equal(t, "X'0aff'", dialect.SQLite.Bytes(in))
	assert.Equal(t, `'\x0aff'`, dialect.Postgres.Bytes(in))

	assert.Equal(t, "X''", dialect.MySQL.Bytes(nil))
	assert.Equal(t, "X''", dialect.SQLite.Bytes([]byte{}))
	assert.Equal(t, `'\x'`, dialect.Postgres.Bytes(nil))
	assert.Equal(t, "0x00", dialect.MySQL.Bytes([]byte{0}))
}

func TestScalars(t *testing.T) {
	d := dialect.MySQL
	assert.Equal(t, "TRUE", d.Bool(true))
	assert.Equal(t, "FALSE", d.Bool(false))
	assert.Equal(t, "-128", d.Int(math.MinInt8))
	assert.Equal(t, "9223372036854775807", d.Int(math.MaxInt64))

	lit, err := d.Uint(math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", lit)
}

func TestUint_SQLiteRejectsAboveMaxInt64(t *testing.T) {
	lit, err := dialect.SQLite.Uint(math.MaxInt64)
	require.NoError(t, err)
	assert.Equal(t, "9223372036854775807", lit)

	_, err = dialect.SQLite.Uint(math.MaxInt64 + 1)
	var encErr *dialect.EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, record.Uint64, encErr.Kind)

	lit, err = dialect.Postgres.Uint(math.MaxUint64)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", lit)
}

func TestFloat(t *testing.T) {
	tests := []struct {
		v       float64
		bitSize int
		want    string
	}{
		{1.5, 64, "1.5"},
		{3, 64, "3"},
		{-0.25, 32, "-0.25"},
		{float64(float32(0.1)), 32, "0.1"},
		{0.1, 64, "0.1"},
		{1e21, 64, "1e+21"},
	}

	for _, tt := range tests {
		got, err := dialect.MySQL.Float(tt.v, tt.bitSize)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := dialect.MySQL.Float(v, 64)
		var encErr *dialect.EncodingError
		assert.True(t, errors.As(err, &encErr), "%v", v)
	}

	_, err := dialect.SQLite.Float(math.NaN(), 32)
	var encErr *dialect.EncodingError
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, record.Float32, encErr.Kind)
	assert.Contains(t, err.Error(), "NaN")
}

func TestLookup(t *testing.T) {
	tests := map[string]*dialect.Dialect{
		"mysql":      dialect.MySQL,
		"MySQL":      dialect.MySQL,
		"mariadb":    dialect.MySQL,
		"postgres":   dialect.Postgres,
		"postgresql": dialect.Postgres,
		" sqlite ":   dialect.SQLite,
		"sqlite3":    dialect.SQLite,
	}
	for name, want := range tests {
		got, err := dialect.Lookup(name)
		require.NoError(t, err, name)
		assert.Same(t, want, got)
	}

	_, err := dialect.Lookup("oracle")
	assert.ErrorIs(t, err, dialect.ErrUnknownDialect)
}
