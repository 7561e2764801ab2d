package recorder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/satishbabariya/datastore/dialect"
	"github.com/satishbabariya/datastore/driver"
	"github.com/satishbabariya/datastore/driver/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriver_RecordsStatements(t *testing.T) {
	ctx := context.Background()
	rec := recorder.New(dialect.SQLite)
	assert.Same(t, dialect.SQLite, rec.Dialect())
	assert.Equal(t, "", rec.Last())

	rec.SetAffected(2)
	n, err := rec.Execute(ctx, "DELETE FROM t")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = rec.FetchOne(ctx, "SELECT a FROM t")
	assert.ErrorIs(t, err, driver.ErrNoRows)

	assert.Equal(t, []string{"DELETE FROM t", "SELECT a FROM t"}, rec.Statements())
	assert.Equal(t, "SELECT a FROM t", rec.Last())

	rec.Reset()
	assert.Empty(t, rec.Statements())
}

func TestDriver_Fetch(t *testing.T) {
	ctx := context.Background()
	rec := recorder.New(dialect.MySQL)
	rec.SetRows(driver.MapRow{"a": int64(1)}, driver.MapRow{"a": int64(2)})

	rows, err := rec.Fetch(ctx, "SELECT a FROM t")
	require.NoError(t, err)

	var got []int64
	for rows.Next() {
		var a int64
		require.NoError(t, rows.Row().Scan("a", &a))
		got = append(got, a)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int64{1, 2}, got)

	require.NoError(t, rows.Close())
	require.NoError(t, rows.Close())
	assert.Equal(t, 1, rec.ClosedCursors())
	assert.False(t, rows.Next())

	row, err := rec.FetchOne(ctx, "SELECT a FROM t")
	require.NoError(t, err)
	var a int64
	require.NoError(t, row.Scan("a", &a))
	assert.Equal(t, int64(1), a)
}

func TestDriver_SetError(t *testing.T) {
	ctx := context.Background()
	rec := recorder.New(dialect.Postgres)
	boom := errors.New("boom")
	rec.SetError(boom)

	_, err := rec.Execute(ctx, "CREATE TABLE IF NOT EXISTS t (a TEXT)")
	assert.Same(t, boom, err)
	_, err = rec.Fetch(ctx, "SELECT a FROM t")
	assert.Same(t, boom, err)
	_, err = rec.FetchOne(ctx, "SELECT a FROM t")
	assert.Same(t, boom, err)

	assert.Len(t, rec.Statements(), 3)
}
