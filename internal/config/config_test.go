package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatshell/internal/database"
)

// isolate keeps the test away from real .env files and CHATSHELL_* values.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	for _, key := range []string{EnvConfigFile, EnvTitle, EnvDataDir, EnvLogLevel, EnvLogFile,
		EnvServerURL, EnvShortcutMode, EnvHotkey, EnvPollInterval} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)

	defaultDir, err := database.DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, defaultDir, cfg.DataDir)

	cfg.DataDir = ""
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	content := `
title = "Team Chat"
data_dir = "~/chat-data"
shortcut_mode = "OS"
global_hotkey = "ctrl+shift+h"
geometry_poll_interval = "1s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Team Chat", cfg.Title)
	assert.Equal(t, filepath.Join(dir, "chat-data"), cfg.DataDir)
	assert.Equal(t, "os", cfg.ShortcutMode)
	assert.Equal(t, "ctrl+shift+h", cfg.GlobalHotkey)
	assert.Equal(t, time.Second, cfg.GeometryPollInterval)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`title = "From File"`), 0o644))
	t.Setenv(EnvTitle, "From Env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Title)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.Unsetenv(EnvLogLevel))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvLogLevel+"=debug\n"), 0o644))

	cfg, err := Load(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidShortcutMode(t *testing.T) {
	dir := isolate(t)
	t.Setenv(EnvShortcutMode, "telepathy")

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorContains(t, err, "shortcut_mode")
}

func TestLoad_InvalidToml(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("title = "), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestDBPath_UsesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	cfg := Default()
	cfg.DataDir = dir

	path, err := cfg.DBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "chatshell.db"), path)
	assert.DirExists(t, dir)
	assert.Equal(t, filepath.Join(dir, "chatshell.lock"), cfg.LockPath())
}
