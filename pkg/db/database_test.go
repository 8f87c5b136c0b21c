package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPostgres(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPostgres("postgres://u:p@localhost:5432/cellar"))
	assert.True(t, IsPostgres("postgresql://localhost/cellar"))
	assert.False(t, IsPostgres("file:cellar_society.db"))
	assert.False(t, IsPostgres(":memory:"))
}

func TestOpen_EmptyDSN(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "")
	require.Error(t, err)
}

func TestOpen_InMemorySQLite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gdb, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gdb) })

	require.NoError(t, gdb.Exec("CREATE TABLE probe (id INTEGER PRIMARY KEY, v TEXT)").Error)
	require.NoError(t, gdb.Exec("INSERT INTO probe (v) VALUES (?)", "x").Error)

	var n int64
	require.NoError(t, gdb.Table("probe").Count(&n).Error)
	assert.EqualValues(t, 1, n)

	require.NoError(t, Ping(ctx, gdb))
}
