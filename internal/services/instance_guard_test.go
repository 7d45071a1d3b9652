package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wailsapp/wails/v2/pkg/options"
)

func TestParseLaunchFlags(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want LaunchFlags
	}{
		{"none", nil, LaunchFlags{}},
		{"logout", []string{"--logout"}, LaunchFlags{Logout: true}},
		{"new chat", []string{"--new-chat"}, LaunchFlags{NewChat: true}},
		{"single dash", []string{"-logout"}, LaunchFlags{Logout: true}},
		{"with value", []string{"--new-chat=1"}, LaunchFlags{NewChat: true}},
		{"unknown ignored", []string{"-psn_0_12345", "--foo", "--logout", "chat://x"}, LaunchFlags{Logout: true}},
		{"both", []string{"--new-chat", "--logout"}, LaunchFlags{Logout: true, NewChat: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLaunchFlags(tc.args))
		})
	}
}

func TestInstanceID(t *testing.T) {
	a := InstanceID("HipChat", "/home/u/.config/chatshell")
	b := InstanceID("HipChat", "/home/u/.config/chatshell")
	c := InstanceID("HipChat", "/tmp/other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Regexp(t, `^chatshell-[0-9a-f-]{36}$`, a)
}

func TestInstanceGuard_LockOptions(t *testing.T) {
	guard := NewInstanceGuard("chatshell-test", nil, testLog)

	lock := guard.LockOptions()
	require.NotNil(t, lock)
	assert.Equal(t, "chatshell-test", lock.UniqueId)
	assert.NotNil(t, lock.OnSecondInstanceLaunch)
	assert.Equal(t, "chatshell-test", guard.ID())
}

func TestInstanceGuard_SecondInstanceFocuses(t *testing.T) {
	f := newActionsFixture(t)
	guard := NewInstanceGuard("id", f.actions, testLog)
	f.host.Hide()

	guard.HandleSecondInstance(options.SecondInstanceData{Args: []string{"--foo"}})

	assert.True(t, f.host.Visible())
	assert.Empty(t, f.win.Scripts)
}

func TestInstanceGuard_SecondInstanceNewChat(t *testing.T) {
	f := newActionsFixture(t)
	guard := NewInstanceGuard("id", f.actions, testLog)

	guard.HandleSecondInstance(options.SecondInstanceData{Args: []string{"--new-chat"}})

	require.Len(t, f.win.Scripts, 1)
	assert.Contains(t, f.win.Scripts[0], `code: "KeyJ"`)
}

func TestAcquireDataDir_IsExclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatshell.lock")

	first, err := AcquireDataDir(path)
	require.NoError(t, err)

	_, err = AcquireDataDir(path)
	assert.ErrorIs(t, err, ErrInstanceRunning)

	require.NoError(t, first.Release())
	second, err := AcquireDataDir(path)
	require.NoError(t, err)
	assert.NoError(t, second.Release())
}

func TestAcquireDataDir_MissingDirectory(t *testing.T) {
	_, err := AcquireDataDir(filepath.Join(t.TempDir(), "missing", "chatshell.lock"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInstanceRunning)
}

func TestDataDirLock_ReleaseNil(t *testing.T) {
	var l *DataDirLock
	assert.NoError(t, l.Release())
}
