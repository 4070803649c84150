package gormdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/novastore/internal/infrastructure/storage"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ storage.KV = (*KV)(nil)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, NewMigration(db).RunAutoMigrations())
	return db
}

func TestKV_RoundTrip(t *testing.T) {
	kv := NewKV(setupTestDB(t), "")
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, "nova_user")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "nova_user", "first"))
	require.NoError(t, kv.Set(ctx, "nova_user", "second"))

	val, ok, err := kv.Get(ctx, "nova_user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", val)

	require.NoError(t, kv.Delete(ctx, "nova_user"))
	_, ok, err = kv.Get(ctx, "nova_user")
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting an absent key is not an error
	assert.NoError(t, kv.Delete(ctx, "nova_user"))
}

func TestKV_Prefix(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	a := NewKV(db, "a:")
	b := NewKV(db, "b:")

	require.NoError(t, a.Set(ctx, "nova_cart", "from-a"))
	_, ok, err := b.Get(ctx, "nova_cart")
	require.NoError(t, err)
	assert.False(t, ok)

	var count int64
	require.NoError(t, db.Model(&Entry{}).Where("kv_key = ?", "a:nova_cart").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
