package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatshell/internal/models"
	"chatshell/internal/tests/mocks"
)

type actionsFixture struct {
	actions *Actions
	host    *WindowHost
	prefs   *PreferenceService
	repo    *mocks.RecordRepositoryMock
	win     *mocks.WindowMock
	quits   int
}

func newActionsFixture(t *testing.T) *actionsFixture {
	t.Helper()
	f := &actionsFixture{win: &mocks.WindowMock{}}
	f.prefs, f.repo = loadedPrefs(t, models.Preferences{ServerURL: testServerURL, Zoom: models.FloatPtr(1.2)})
	f.host = newTestHost(t, f.prefs, f.win)
	f.actions = NewActions(f.host, f.prefs, NewShortcutSender(ShortcutModePage, f.host), testLog, func() { f.quits++ })
	return f
}

func TestActions_NewChatForwardsShortcut(t *testing.T) {
	f := newActionsFixture(t)
	f.win.Minimised = true

	f.actions.NewChat()

	assert.False(t, f.win.Minimised)
	script := f.win.LastScript()
	assert.Contains(t, script, `key: "j"`)
	assert.Contains(t, script, `code: "KeyJ"`)
	assert.Contains(t, script, "ctrlKey: true")
	assert.Contains(t, script, "altKey: false")
}

func TestActions_RoomNavigation(t *testing.T) {
	f := newActionsFixture(t)

	f.actions.PreviousRoom()
	assert.Contains(t, f.win.LastScript(), `key: "ArrowUp"`)
	assert.Contains(t, f.win.LastScript(), "altKey: true")

	f.actions.NextRoom()
	assert.Contains(t, f.win.LastScript(), `key: "ArrowDown"`)

	f.actions.InviteToRoom()
	assert.Contains(t, f.win.LastScript(), `code: "KeyI"`)
}

func TestActions_GotoUnreadClicksUnreadRoom(t *testing.T) {
	f := newActionsFixture(t)
	f.host.Hide()

	f.actions.GotoUnread()

	require.Len(t, f.win.Scripts, 1)
	assert.Equal(t, clickScript(unreadRoomSelectors), f.win.Scripts[0])
	assert.Contains(t, f.win.Scripts[0], ".click()")
	assert.True(t, f.host.Visible(), "going to unread shows the window")
}

func TestActions_CloseRoomClicksCloseControl(t *testing.T) {
	f := newActionsFixture(t)

	f.actions.CloseRoom()

	require.Len(t, f.win.Scripts, 1)
	assert.Equal(t, clickScript(closeRoomSelectors), f.win.Scripts[0])
}

func TestActions_Zoom(t *testing.T) {
	f := newActionsFixture(t)

	f.actions.ResetZoom()
	assert.Equal(t, 1.0, f.prefs.Current().ZoomOrDefault())

	f.actions.ZoomIn()
	assert.Equal(t, 1.0+ZoomStep, f.prefs.Current().ZoomOrDefault())

	f.actions.ZoomOut()
	assert.InDelta(t, 1.0, f.prefs.Current().ZoomOrDefault(), 1e-9)
}

func TestActions_TrayClicked(t *testing.T) {
	f := newActionsFixture(t)

	f.actions.TrayClicked()
	assert.False(t, f.host.Visible(), "without mentions a click toggles the window")
	assert.Empty(t, f.win.Scripts)

	f.host.SetMentions(2)
	f.actions.TrayClicked()
	assert.True(t, f.host.Visible())
	require.Len(t, f.win.Scripts, 1)
	assert.Equal(t, clickScript(unreadRoomSelectors), f.win.Scripts[0])
}

func TestActions_LogoutClearsURLThenQuits(t *testing.T) {
	f := newActionsFixture(t)
	quit := make(chan error, 1)
	f.prefs.SetQuitHandler(func(cause error) { quit <- cause })

	require.NoError(t, waitResult(t, f.actions.Logout()))

	select {
	case cause := <-quit:
		assert.NoError(t, cause)
	case <-time.After(2 * time.Second):
		t.Fatal("logout did not quit")
	}

	assert.False(t, f.prefs.Current().HasServerURL())
	puts := decodePuts(t, f.repo)
	require.Len(t, puts, 1)
	assert.Empty(t, puts[0].ServerURL)
	assert.Equal(t, 1.2, *puts[0].Zoom, "other preferences survive logout")
}

func TestActions_WindowCommands(t *testing.T) {
	f := newActionsFixture(t)

	f.actions.Minimise()
	f.actions.Reload()
	f.actions.ToggleFullscreen()
	f.actions.Quit()

	assert.True(t, f.win.Minimised)
	assert.Equal(t, 1, f.win.Called("Reload"))
	assert.True(t, f.win.FullScreen)
	assert.Equal(t, 1, f.quits)
}
