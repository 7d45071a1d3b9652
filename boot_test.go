package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wailsapp/wails/v2/pkg/logger"

	"chatshell/internal/config"
	"chatshell/internal/database"
	"chatshell/internal/services"
	"chatshell/internal/tests/mocks"
)

func bootConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = filepath.Join(t.TempDir(), "profile")
	return cfg
}

func TestPrepare_LockedDataDirStopsBeforeDatabase(t *testing.T) {
	cfg := bootConfig(t)
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))

	held, err := services.AcquireDataDir(cfg.LockPath())
	require.NoError(t, err)
	defer held.Release()

	prompter := &mocks.PrompterMock{}
	app, err := prepare(cfg, logger.NewDefaultLogger(), services.LaunchFlags{}, prompter)

	require.ErrorIs(t, err, services.ErrInstanceRunning)
	assert.Nil(t, app)
	assert.Zero(t, prompter.Calls, "the second process must not prompt")
	assert.NoFileExists(t, filepath.Join(cfg.DataDir, database.FileName))
}

func TestPrepare_HoldsDataDirUntilClosed(t *testing.T) {
	cfg := bootConfig(t)
	prompter := &mocks.PrompterMock{
		PromptServerURLFunc: func(ctx context.Context, seed string) (string, error) {
			return "hipchat.example.com", nil
		},
	}

	app, err := prepare(cfg, logger.NewDefaultLogger(), services.LaunchFlags{}, prompter)
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, 1, prompter.Calls)
	assert.FileExists(t, filepath.Join(cfg.DataDir, database.FileName))
	assert.Equal(t, "hipchat.example.com/chat", app.Prefs.Current().ServerURL)

	_, err = services.AcquireDataDir(cfg.LockPath())
	assert.ErrorIs(t, err, services.ErrInstanceRunning)

	require.NoError(t, app.close())
	require.NoError(t, app.close())

	again, err := services.AcquireDataDir(cfg.LockPath())
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}

func TestPrepare_CancelledPromptKeepsAppForShutdown(t *testing.T) {
	cfg := bootConfig(t)
	prompter := &mocks.PrompterMock{
		PromptServerURLFunc: func(ctx context.Context, seed string) (string, error) {
			return "", services.ErrPromptCancelled
		},
	}

	app, err := prepare(cfg, logger.NewDefaultLogger(), services.LaunchFlags{}, prompter)
	require.ErrorIs(t, err, services.ErrServerURLRequired)
	require.NotNil(t, app)
	assert.NoError(t, app.close())
}
