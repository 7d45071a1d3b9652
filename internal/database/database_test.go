package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatshell/internal/models"
)

func TestInit_CreatesRecordTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	db, err := Init(Config{Path: path})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.True(t, db.Migrator().HasTable(&models.Record{}))
	assert.FileExists(t, path)
}

func TestPathIn_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	path, err := PathIn(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)
	assert.DirExists(t, dir)
}

func TestDefaultDataDir_IsAbsolute(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir, err := DefaultDataDir()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(dir))
	assert.NotEqual(t, ".", filepath.Dir(dir))
}
