package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/wailsapp/wails/v2/pkg/logger"

	"chatshell/internal/models"
	"chatshell/internal/tests/mocks"
)

var testLog = logger.NewDefaultLogger()

func newTestPrefs(t *testing.T, repo *mocks.RecordRepositoryMock) *PreferenceService {
	t.Helper()
	s := NewPreferenceService(repo, testLog)
	t.Cleanup(s.Close)
	return s
}

func storedRepo(t *testing.T, p models.Preferences) *mocks.RecordRepositoryMock {
	t.Helper()
	data, err := json.Marshal(p)
	require.NoError(t, err)
	return &mocks.RecordRepositoryMock{
		GetFunc: func(ctx context.Context, key string) ([]byte, error) {
			return data, nil
		},
	}
}

func decodePuts(t *testing.T, repo *mocks.RecordRepositoryMock) []models.Preferences {
	t.Helper()
	var out []models.Preferences
	for _, raw := range repo.Puts() {
		var p models.Preferences
		require.NoError(t, json.Unmarshal(raw, &p))
		out = append(out, p)
	}
	return out
}

func waitResult(t *testing.T, ch <-chan error) error {
	t.Helper()
	select {
	case err := <-ch:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for save")
		return nil
	}
}

// newTestHost starts a host on a fake window with polling effectively off.
func newTestHost(t *testing.T, prefs *PreferenceService, win *mocks.WindowMock) *WindowHost {
	t.Helper()
	host := NewWindowHost(prefs, testLog, HostOptions{
		Title:        "HipChat",
		PollInterval: time.Hour,
		NewWindow:    func(ctx context.Context) Window { return win },
	})
	ctx, cancel := context.WithCancel(context.Background())
	host.Startup(ctx)
	t.Cleanup(func() {
		host.Shutdown(ctx)
		cancel()
	})
	return host
}
