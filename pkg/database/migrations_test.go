package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var got string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&got)
	if err == sql.ErrNoRows {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestOpenAppliesAllMigrations(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"users", "products", "carts", "cart_items", "orders", "order_items", "order_events"} {
		assert.True(t, tableExists(t, db, table), "missing table %s", table)
	}

	v, err := CurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", v.String())
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, ApplyMigrations(ctx, db))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&n))
	assert.Equal(t, len(AllMigrations), n)
}

func columnExists(t *testing.T, db *sql.DB, table, column string) bool {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column).Scan(&n))
	return n > 0
}

func TestFailedMigrationLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	broken := append(append([]Migration{}, AllMigrations...), Migration{
		Version: "1.2.0",
		Up:      "ALTER TABLE orders ADD COLUMN note TEXT; CREATE TABLE broken (;",
		Down:    "ALTER TABLE orders DROP COLUMN note;",
	})

	err = applyMigrations(ctx, db, broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply migration 1.2.0")

	assert.False(t, columnExists(t, db, "orders", "note"))
	v, err := CurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", v.String())

	t.Run("a fixed step applies on the next run", func(t *testing.T) {
		broken[len(broken)-1].Up = "ALTER TABLE orders ADD COLUMN note TEXT;"
		require.NoError(t, applyMigrations(ctx, db, broken))
		assert.True(t, columnExists(t, db, "orders", "note"))

		v, err := CurrentVersion(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, "1.2.0", v.String())
	})
}

func TestRollbackMigration(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RollbackMigration(ctx, db))
	assert.False(t, tableExists(t, db, "order_events"))
	assert.True(t, tableExists(t, db, "orders"))

	v, err := CurrentVersion(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v.String())

	require.NoError(t, ApplyMigrations(ctx, db))
	assert.True(t, tableExists(t, db, "order_events"))
}

func TestViolationClassifiers(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	insert := `INSERT INTO users (id, name, email, password_hash, role, active, created_at, updated_at)
		VALUES (?, 'n', 'dup@example.com', 'h', 'CUSTOMER', 1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`
	_, err = db.ExecContext(ctx, insert, "u1")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, "u2")
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))

	_, err = db.ExecContext(ctx, `INSERT INTO carts (id, customer_id, created_at, updated_at)
		VALUES ('c1', 'nobody', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))
}
