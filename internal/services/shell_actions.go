package services

import (
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"chatshell/internal/models"
)

// Actions are the operations the menu, tray, hotkey and second-instance
// handler trigger. Most forward a shortcut into the page because the shell
// has no native implementation of the feature.
type Actions struct {
	host      *WindowHost
	prefs     *PreferenceService
	shortcuts ShortcutSender
	log       logger.Logger
	quit      func()
}

func NewActions(host *WindowHost, prefs *PreferenceService, shortcuts ShortcutSender, log logger.Logger, quit func()) *Actions {
	return &Actions{host: host, prefs: prefs, shortcuts: shortcuts, log: log, quit: quit}
}

func (a *Actions) sendShortcut(k KeyboardShortcut) {
	a.host.ShowAndFocus()
	if err := a.shortcuts.Send(k); err != nil {
		a.log.Error(fmt.Sprintf("Could not send %s: %v", k, err))
	}
}

func (a *Actions) NewChat()      { a.sendShortcut(ShortcutNewChat) }
func (a *Actions) InviteToRoom() { a.sendShortcut(ShortcutInviteToRoom) }
func (a *Actions) PreviousRoom() { a.sendShortcut(ShortcutPreviousRoom) }
func (a *Actions) NextRoom()     { a.sendShortcut(ShortcutNextRoom) }

// GotoUnread opens the first room with unread mentions.
func (a *Actions) GotoUnread() {
	a.host.ShowAndFocus()
	a.runInPage("go to unread", clickScript(unreadRoomSelectors))
}

// CloseRoom closes the active room.
func (a *Actions) CloseRoom() {
	a.runInPage("close room", clickScript(closeRoomSelectors))
}

func (a *Actions) runInPage(what, script string) {
	if err := a.host.ExecJS(script); err != nil {
		a.log.Error(fmt.Sprintf("Could not %s: %v", what, err))
	}
}

func (a *Actions) ShowAndFocus()     { a.host.ShowAndFocus() }
func (a *Actions) ToggleWindow()     { a.host.ToggleVisibility() }
func (a *Actions) Minimise()         { a.host.Minimise() }
func (a *Actions) Reload()           { a.host.Reload() }
func (a *Actions) ToggleFullscreen() { a.host.ToggleFullscreen() }
func (a *Actions) ZoomIn()           { a.host.Zoom(1) }
func (a *Actions) ZoomOut()          { a.host.Zoom(-1) }
func (a *Actions) ResetZoom()        { a.host.Zoom(0) }

// TrayClicked jumps to unread messages while there are mentions and
// otherwise toggles the window.
func (a *Actions) TrayClicked() {
	if a.host.Mentions() > 0 {
		a.GotoUnread()
		return
	}
	a.ToggleWindow()
}

// Logout forgets the server URL; the application quits once the write
// has landed.
func (a *Actions) Logout() <-chan error {
	a.log.Info("Logging out")
	_, result := a.prefs.Commit(func(p *models.Preferences) {
		p.ServerURL = ""
	}, SaveOptions{ExitOnSuccess: true})
	return result
}

func (a *Actions) Quit() {
	if a.quit != nil {
		a.quit()
	}
}
