package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brightevents-backend/internal/config"
	"brightevents-backend/internal/model"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(config.Database{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestOpenMemory_MigratesAllTables(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	for _, m := range model.All() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
	assert.True(t, db.Migrator().HasIndex(&model.User{}, "Username"))
	assert.True(t, db.Migrator().HasIndex(&model.RevokedToken{}, "Token"))
}

func TestOpen_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.db")

	db, err := Open(config.Database{Driver: "sqlite", URL: path})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, db.Create(&model.User{Username: "chrisevans", Email: "test@example.com", Password: "x"}).Error)
	require.NoError(t, Close(db))

	reopened, err := Open(config.Database{Driver: "sqlite", URL: path})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(reopened) })

	var count int64
	require.NoError(t, reopened.Model(&model.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSqliteDSN_EnablesForeignKeys(t *testing.T) {
	assert.Equal(t, ":memory:?_pragma=foreign_keys(1)", sqliteDSN(":memory:"))
	assert.Equal(t, "events.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", sqliteDSN("events.db?_pragma=busy_timeout(5000)"))
	assert.Equal(t, "events.db?_pragma=foreign_keys(0)", sqliteDSN("events.db?_pragma=foreign_keys(0)"))

	db, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}
