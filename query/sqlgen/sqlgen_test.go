package sqlgen_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/satishbabariya/datastore/dialect"
	"github.com/satishbabariya/datastore/driver"
	"github.com/satishbabariya/datastore/query/ast"
	"github.com/satishbabariya/datastore/query/sqlgen"
	"github.com/satishbabariya/datastore/record"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRecord struct {
	ID   int32
	Name string
}

var testDescriptor = record.Funcs[testRecord]{
	Name: "test",
	Schema: func(w record.TypeWriter) error {
		if err := w.WriteType("id", record.Int32); err != nil {
			return err
		}
		return w.WriteType("name", record.String)
	},
	Values: func(w record.Writer, v testRecord) error {
		if err := w.WriteInt32("id", v.ID); err != nil {
			return err
		}
		return w.WriteString("name", v.Name)
	},
	Decode: func(r record.Reader) (testRecord, error) {
		id, err := r.ReadInt32("id")
		if err != nil {
			return testRecord{}, err
		}
		name, err := r.ReadString("name")
		if err != nil {
			return testRecord{}, err
		}
		return testRecord{ID: id, Name: name}, nil
	},
}

func TestCreateTable(t *testing.T) {
	stmt, err := sqlgen.CreateTable(dialect.MySQL, testDescriptor)
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS test (id INT,name TEXT)", stmt.String())
}

func TestInsert(t *testing.T) {
	stmt, err := sqlgen.Insert(dialect.MySQL, testDescriptor, testRecord{ID: 3, Name: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO test (id,name) VALUES (3,'hello')", stmt.String())
}

func TestSelect(t *testing.T) {
	q := record.QueryFunc(func(w record.Writer) error {
		return w.WriteInt32("id", 3)
	})
	stmt, err := sqlgen.Select(dialect.MySQL, testDescriptor, q)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id,name FROM test WHERE id = 3", stmt.String())

	stmt, err = sqlgen.Select(dialect.MySQL, testDescriptor, nil)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id,name FROM test", stmt.String())
}

func TestDelete(t *testing.T) {
	q := record.QueryFunc(func(w record.Writer) error {
		if err := w.WriteInt32("id", 3); err != nil {
			return err
		}
		return w.WriteString("name", "hello")
	})
	stmt, err := sqlgen.Delete(dialect.MySQL, "test", q)
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM test WHERE id = 3 AND name = 'hello'", stmt.String())

	stmt, err = sqlgen.Delete(dialect.MySQL, "test", record.QueryFunc(func(record.Writer) error { return nil }))
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM test", stmt.String())
}

func TestValueWriter_Modes(t *testing.T) {
	insert := ast.NewInsert("t")
	w := sqlgen.NewValueWriter(dialect.MySQL, insert)
	assert.Equal(t, sqlgen.ModeValues, w.Mode())
	require.NoError(t, w.WriteBool("a", false))
	require.NoError(t, w.WriteUint8("b", 255))
	require.NoError(t, w.WriteString("c", "O'Brien"))
	assert.Equal(t, "INSERT INTO t (a,b,c) VALUES (FALSE,255,'O''Brien')", insert.String())

	del := ast.NewDelete("t")
	w = sqlgen.NewConditionWriter(dialect.MySQL, del)
	assert.Equal(t, sqlgen.ModeConditions, w.Mode())
	require.NoError(t, w.WriteInt64("a", -1))
	require.NoError(t, w.WriteBytes("b", []byte{0x01}))
	assert.Equal(t, "DELETE FROM t WHERE a = -1 AND b = 0x01", del.String())
}

func TestValueWriter_EncodingErrors(t *testing.T) {
	insert := ast.NewInsert("t")
	w := sqlgen.NewValueWriter(dialect.MySQL, insert)

	err := w.WriteFloat64("ratio", math.NaN())
	var fe *sqlgen.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "ratio", fe.Column)
	var ee *dialect.EncodingError
	assert.True(t, errors.As(err, &ee))

	assert.Error(t, w.WriteFloat32("f", float32(math.Inf(1))))

	pw := sqlgen.NewValueWriter(dialect.Postgres, insert)
	assert.Error(t, pw.WriteString("s", "a\x00b"))

	sw := sqlgen.NewValueWriter(dialect.SQLite, insert)
	err = sw.WriteUint64("u64", math.MaxUint64)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "u64", fe.Column)
	assert.True(t, errors.As(err, &ee))

	assert.Equal(t, "INSERT INTO t () VALUES ()", insert.String(), "failed writes must not push")
}

func TestSchemaWriter_Modes(t *testing.T) {
	sel := ast.NewSelect("t")
	pw := sqlgen.NewProjectionWriter(dialect.MySQL, sel)
	assert.Equal(t, sqlgen.ModeColumns, pw.Mode())
	require.NoError(t, pw.WriteType("a", record.Int64))
	require.NoError(t, pw.WriteType("b", record.Bytes))
	assert.Equal(t, []string{"a", "b"}, sel.Columns())

	del := ast.NewDelete("t")
	cw := sqlgen.NewTypeConditionWriter(dialect.MySQL, del)
	assert.Equal(t, sqlgen.ModeConditions, cw.Mode())
	require.NoError(t, cw.WriteType("a", record.Uint32))
	assert.Equal(t, "DELETE FROM t WHERE a = INT UNSIGNED", del.String())

	create := ast.NewCreateTable("t")
	dw := sqlgen.NewDefinitionWriter(dialect.MySQL, create)
	err := dw.WriteType("x", record.Invalid)
	assert.ErrorIs(t, err, dialect.ErrUnsupportedKind)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS t ()", create.String())
}

func TestRowReader(t *testing.T) {
	row := driver.MapRow{"id": int64(3), "name": []byte("hello"), "blob": []byte{1, 2}}
	got, err := sqlgen.Decode[testRecord](testDescriptor, row)
	require.NoError(t, err)
	assert.Equal(t, testRecord{ID: 3, Name: "hello"}, got)

	r := sqlgen.NewRowReader(row)
	b, err := r.ReadBytes("blob")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)

	_, err = r.ReadInt8("missing")
	assert.ErrorIs(t, err, driver.ErrMissingColumn)

	_, err = sqlgen.Decode[testRecord](testDescriptor, driver.MapRow{"id": "x", "name": "y"})
	assert.True(t, driver.IsDecodeError(err))
}

type allKinds struct {
	Flag bool
	I8   int8
	I16  int16
	I32  int32
	I64  int64
	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	F32  float32
	F64  float64
	Data []byte
	Text string
}

var allKindsDescriptor = record.Funcs[allKinds]{
	Name: "all_kinds",
	Schema: func(w record.TypeWriter) error {
		for _, f := range []struct {
			name string
			kind record.Kind
		}{
			{"flag", record.Bool}, {"i8", record.Int8}, {"i16", record.Int16},
			{"i32", record.Int32}, {"i64", record.Int64}, {"u8", record.Uint8},
			{"u16", record.Uint16}, {"u32", record.Uint32}, {"u64", record.Uint64},
			{"f32", record.Float32}, {"f64", record.Float64}, {"data", record.Bytes},
			{"text", record.String},
		} {
			if err := w.WriteType(f.name, f.kind); err != nil {
				return err
			}
		}
		return nil
	},
	Values: func(w record.Writer, v allKinds) error {
		return errors.Join(
			w.WriteBool("flag", v.Flag),
			w.WriteInt8("i8", v.I8),
			w.WriteInt16("i16", v.I16),
			w.WriteInt32("i32", v.I32),
			w.WriteInt64("i64", v.I64),
			w.WriteUint8("u8", v.U8),
			w.WriteUint16("u16", v.U16),
			w.WriteUint32("u32", v.U32),
			w.WriteUint64("u64", v.U64),
			w.WriteFloat32("f32", v.F32),
			w.WriteFloat64("f64", v.F64),
			w.WriteBytes("data", v.Data),
			w.WriteString("text", v.Text),
		)
	},
	Decode: func(r record.Reader) (allKinds, error) {
		return allKinds{}, errors.New("not used")
	},
}

func TestStatements_Golden(t *testing.T) {
	v := allKinds{
		Flag: true, I8: -8, I16: -16, I32: -32, I64: -64,
		U8: 8, U16: 16, U32: 32, U64: math.MaxUint64,
		F32: 1.5, F64: 0.25, Data: []byte{0xde, 0xad}, Text: "it's",
	}
	selectQuery := record.QueryFunc(func(w record.Writer) error {
		return errors.Join(w.WriteInt32("i32", -32), w.WriteString("text", "it's"))
	})
	deleteQuery := record.QueryFunc(func(w record.Writer) error {
		return w.WriteBytes("data", v.Data)
	})

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, d := range []*dialect.Dialect{dialect.MySQL, dialect.Postgres, dialect.SQLite} {
		t.Run(d.Name, func(t *testing.T) {
			v := v
			if d == dialect.SQLite {
				v.U64 = math.MaxInt64
			}
			create, err := sqlgen.CreateTable(d, allKindsDescriptor)
			require.NoError(t, err)
			insert, err := sqlgen.Insert(d, allKindsDescriptor, v)
			require.NoError(t, err)
			sel, err := sqlgen.Select(d, allKindsDescriptor, selectQuery)
			require.NoError(t, err)
			del, err := sqlgen.Delete(d, allKindsDescriptor.Table(), deleteQuery)
			require.NoError(t, err)

			var b strings.Builder
			for _, stmt := range []ast.Statement{create, insert, sel, del} {
				b.WriteString(stmt.String())
				b.WriteByte('\n')
			}
			g.Assert(t, "all_kinds_"+d.Name, []byte(b.String()))
		})
	}
}
