package sqlite

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNewDB_CreatesDirectory verifies that NewDB creates the parent directory if missing.
func TestNewDB_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "nested", "overrides.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err, "NewDB should succeed even with nested non-existent directories")
	defer db.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err, "Directory should exist after NewDB")
	require.True(t, info.IsDir(), "Should be a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0700), info.Mode().Perm(), "Directory should have 0700 permissions")
	}
}

// TestNewDB_RunsMigrations verifies the overrides schema exists after open.
func TestNewDB_RunsMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "overrides.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='overrides'`).Scan(&name)
	require.NoError(t, err, "overrides table should exist")
	require.Equal(t, "overrides", name)

	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='settings'`).Scan(&name)
	require.NoError(t, err, "settings table should exist")
}

// TestNewDB_ReopenIsIdempotent verifies migrations do not re-apply on a
// second open.
func TestNewDB_ReopenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "overrides.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO overrides (layer, token, value) VALUES ('user', 'text.primary', '#ffffff')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM overrides`).Scan(&count))
	require.Equal(t, 1, count, "data must survive reopen")
}
