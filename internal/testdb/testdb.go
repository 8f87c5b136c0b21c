// Package testdb opens migrated in-memory databases for tests.
package testdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cellar_society/internal/schema"
	"github.com/Skotchmaster/cellar_society/pkg/db"
)

func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	require.NoError(t, schema.Migrate(context.Background(), gdb))

	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}
