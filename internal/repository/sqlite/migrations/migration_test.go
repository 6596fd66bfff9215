package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrate.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestRunMigrations_CreatesTasksTable(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))

	assert.True(t, tableExists(t, db, "tasks"))
	applied, err := AppliedVersions(db)
	require.NoError(t, err)
	assert.True(t, applied[1])
	assert.True(t, applied[2])
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))
	_, err := db.Exec(`INSERT INTO tasks (title, created_at, updated_at) VALUES ('keep me', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&count))
	assert.Equal(t, 1, count, "re-running migrations must not touch existing rows")
}

func TestLoadMigrations_Ordered(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, 2, migrations[1].Version)
	assert.Contains(t, migrations[0].Up, "CREATE TABLE")
	assert.Contains(t, migrations[1].Up, "CREATE INDEX")
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, 1, extractVersion("000001_create_tasks.up.sql"))
	assert.Equal(t, 12, extractVersion("000012_anything.up.sql"))
	assert.Equal(t, 0, extractVersion("readme.sql"))
}
