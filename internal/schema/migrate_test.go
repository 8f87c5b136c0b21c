package schema_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cellar_society/internal/models"
	"github.com/Skotchmaster/cellar_society/internal/schema"
	"github.com/Skotchmaster/cellar_society/pkg/db"
	"github.com/Skotchmaster/cellar_society/pkg/hash"
)

func openRaw(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func columns(t *testing.T, gdb *gorm.DB, table string) []string {
	t.Helper()
	types, err := gdb.Migrator().ColumnTypes(table)
	require.NoError(t, err)
	out := make([]string, 0, len(types))
	for _, ct := range types {
		out = append(out, ct.Name())
	}
	sort.Strings(out)
	return out
}

func TestMigrate_FreshDatabase(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gdb := openRaw(t)

	require.NoError(t, schema.Migrate(ctx, gdb))

	for _, table := range []string{"admins", "products", "customers", "orders", "messages", "schema_migrations"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
	assert.True(t, gdb.Migrator().HasColumn(&models.Order{}, "shipped_date"))
	assert.True(t, gdb.Migrator().HasColumn(&models.Order{}, "estimated_delivery_date"))
	assert.True(t, gdb.Migrator().HasIndex(&models.Message{}, "idx_messages_customer"))

	versions, err := schema.AppliedVersions(ctx, gdb)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, versions)
	assert.Equal(t, 3, schema.LatestVersion())
}

func TestMigrate_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gdb := openRaw(t)

	require.NoError(t, schema.Migrate(ctx, gdb))
	before := map[string][]string{}
	for _, table := range []string{"admins", "products", "customers", "orders", "messages"} {
		before[table] = columns(t, gdb, table)
	}

	require.NoError(t, schema.Migrate(ctx, gdb))
	require.NoError(t, schema.Migrate(ctx, gdb))

	for table, cols := range before {
		assert.Equal(t, cols, columns(t, gdb, table), table)
	}
	var n int64
	require.NoError(t, gdb.Model(&models.SchemaMigration{}).Count(&n).Error)
	assert.Equal(t, int64(3), n)
}

func TestMigrate_AdoptsLegacyDatabase(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gdb := openRaw(t)

	legacy := []string{
		`CREATE TABLE admins (id INTEGER PRIMARY KEY AUTOINCREMENT, username TEXT UNIQUE NOT NULL, password TEXT NOT NULL, created_at DATETIME)`,
		`CREATE TABLE products (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, type TEXT NOT NULL, region TEXT NOT NULL, vintage INTEGER NOT NULL, price DECIMAL(10,2) NOT NULL, alcohol REAL NOT NULL, stock INTEGER NOT NULL, description TEXT, image_url TEXT, created_at DATETIME)`,
		`CREATE TABLE customers (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL, email TEXT UNIQUE NOT NULL, password TEXT NOT NULL, phone TEXT, address TEXT, joined_at DATETIME)`,
		`CREATE TABLE orders (id INTEGER PRIMARY KEY AUTOINCREMENT, customer_id INTEGER NOT NULL, product_id INTEGER NOT NULL, quantity INTEGER NOT NULL, total_price DECIMAL(10,2) NOT NULL, status TEXT DEFAULT 'Pending', order_date DATETIME)`,
		`INSERT INTO customers (name, email, password) VALUES ('Old Timer', 'old@example.com', 'x')`,
		`INSERT INTO products (name, type, region, vintage, price, alcohol, stock) VALUES ('Rioja', 'Red', 'Spain', 2015, 20.00, 13.5, 3)`,
		`INSERT INTO orders (customer_id, product_id, quantity, total_price, status) VALUES (1, 1, 2, 40.00, 'Pending')`,
	}
	for _, stmt := range legacy {
		require.NoError(t, gdb.Exec(stmt).Error)
	}

	require.NoError(t, schema.Migrate(ctx, gdb))

	assert.True(t, gdb.Migrator().HasColumn(&models.Order{}, "shipped_date"))
	assert.True(t, gdb.Migrator().HasTable(&models.Message{}))

	var order models.Order
	require.NoError(t, gdb.First(&order).Error)
	assert.Equal(t, 2, order.Quantity)
	assert.Nil(t, order.ShippedDate)

	require.NoError(t, schema.Migrate(ctx, gdb))
}

func TestEnsureDefaultAdmin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	gdb := openRaw(t)
	require.NoError(t, schema.Migrate(ctx, gdb))

	created, err := schema.EnsureDefaultAdmin(ctx, gdb, "")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = schema.EnsureDefaultAdmin(ctx, gdb, "other")
	require.NoError(t, err)
	assert.False(t, created)

	var admins []models.Admin
	require.NoError(t, gdb.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin", admins[0].Username)
	assert.True(t, hash.CheckPassword(admins[0].PasswordHash, schema.DefaultAdminPassword))
}
