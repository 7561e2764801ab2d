package filterexpr_test

import (
	"math"
	"testing"

	"github.com/satishbabariya/datastore/dialect"
	"github.com/satishbabariya/datastore/query/ast"
	"github.com/satishbabariya/datastore/query/filterexpr"
	"github.com/satishbabariya/datastore/query/sqlgen"
	"github.com/satishbabariya/datastore/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, d *dialect.Dialect, q record.Query) string {
	t.Helper()
	stmt := ast.NewDelete("test")
	require.NoError(t, q.Write(sqlgen.NewConditionWriter(d, stmt)))
	return stmt.String()
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []filterexpr.Term
	}{
		{
			name:  "single integer",
			input: "id = 3",
			want:  []filterexpr.Term{{Column: "id", Kind: record.Int64, Value: int64(3)}},
		},
		{
			name:  "conjunction",
			input: "id = 3 AND name = 'hello'",
			want: []filterexpr.Term{
				{Column: "id", Kind: record.Int64, Value: int64(3)},
				{Column: "name", Kind: record.String, Value: "hello"},
			},
		},
		{
			name:  "lowercase keywords",
			input: "ok = true and gone = FALSE",
			want: []filterexpr.Term{
				{Column: "ok", Kind: record.Bool, Value: true},
				{Column: "gone", Kind: record.Bool, Value: false},
			},
		},
		{
			name:  "quoted quote",
			input: "name = 'O''Brien'",
			want:  []filterexpr.Term{{Column: "name", Kind: record.String, Value: "O'Brien"}},
		},
		{
			name:  "empty string",
			input: "name = ''",
			want:  []filterexpr.Term{{Column: "name", Kind: record.String, Value: ""}},
		},
		{
			name:  "hex bytes",
			input: "data = 0x0aFF",
			want:  []filterexpr.Term{{Column: "data", Kind: record.Bytes, Value: []byte{0x0a, 0xff}}},
		},
		{
			name:  "numbers",
			input: "a = -7 AND b = 2.5e1 AND c = 18446744073709551615 AND d = +4",
			want: []filterexpr.Term{
				{Column: "a", Kind: record.Int64, Value: int64(-7)},
				{Column: "b", Kind: record.Float64, Value: 25.0},
				{Column: "c", Kind: record.Uint64, Value: uint64(math.MaxUint64)},
				{Column: "d", Kind: record.Int64, Value: int64(4)},
			},
		},
		{
			name:  "identifier starting with keyword",
			input: "android = 1",
			want:  []filterexpr.Term{{Column: "android", Kind: record.Int64, Value: int64(1)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := filterexpr.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, expr.Terms)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := filterexpr.Parse("   ")
	assert.ErrorIs(t, err, filterexpr.ErrEmpty)

	for _, input := range []string{
		"id",
		"id = ",
		"id = 3 AND",
		"id = 3 OR name = 'x'",
		"name = 'unterminated",
		"data = 0xabc",
		"n = 99999999999999999999",
		"n = -99999999999999999999",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := filterexpr.Parse(input)
			assert.Error(t, err)
		})
	}

	assert.Panics(t, func() { filterexpr.MustParse("") })
}

func TestExpr_Write(t *testing.T) {
	expr := filterexpr.MustParse("id = 3 AND name = 'O''Brien' AND data = 0x0aff AND ok = true AND r = 0.5")
	assert.Equal(t, []string{"id", "name", "data", "ok", "r"}, expr.Columns())

	assert.Equal(t,
		"DELETE FROM test WHERE id = 3 AND name = 'O''Brien' AND data = 0x0aff AND ok = TRUE AND r = 0.5",
		render(t, dialect.MySQL, expr))
	assert.Equal(t,
		"DELETE FROM test WHERE id = 3 AND name = 'O''Brien' AND data = X'0aff' AND ok = TRUE AND r = 0.5",
		render(t, dialect.SQLite, expr))

	var nilExpr *filterexpr.Expr
	assert.Equal(t, "DELETE FROM test", render(t, dialect.MySQL, nilExpr))
}

func TestExpr_Check(t *testing.T) {
	kinds := map[string]record.Kind{
		"id":    record.Int32,
		"small": record.Int8,
		"count": record.Uint16,
		"big":   record.Uint64,
		"ratio": record.Float32,
		"name":  record.String,
		"ok":    record.Bool,
		"data":  record.Bytes,
	}
	kindOf := func(column string) record.Kind { return kinds[column] }

	assert.NoError(t, filterexpr.MustParse("id = 3 AND name = 'x' AND ok = false AND data = 0x00").Check(kindOf))
	assert.NoError(t, filterexpr.MustParse("ratio = 1 AND ratio = 1.5 AND count = 65535").Check(kindOf))
	assert.NoError(t, filterexpr.MustParse("big = 18446744073709551615").Check(kindOf))

	assert.ErrorIs(t, filterexpr.MustParse("missing = 1").Check(kindOf), filterexpr.ErrUnknownColumn)

	for _, input := range []string{
		"id = 'three'",
		"name = 3",
		"small = 128",
		"count = -1",
		"count = 65536",
		"id = 1.5",
		"ok = 1",
		"data = 'x'",
		"id = 18446744073709551615",
	} {
		t.Run(input, func(t *testing.T) {
			assert.ErrorIs(t, filterexpr.MustParse(input).Check(kindOf), filterexpr.ErrTypeMismatch)
		})
	}
}
