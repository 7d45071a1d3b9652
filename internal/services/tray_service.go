package services

import (
	"fmt"
	"sync"

	"fyne.io/systray"
	"github.com/wailsapp/wails/v2/pkg/logger"
)

// TrayService runs the status icon next to the Wails event loop.
type TrayService struct {
	actions *Actions
	log     logger.Logger
	title   string
	icons   TrayIcons

	mu      sync.Mutex
	ready   bool
	alert   bool
	end     func()
	stopped bool
}

func NewTrayService(actions *Actions, log logger.Logger, title string, icons TrayIcons) *TrayService {
	return &TrayService{actions: actions, log: log, title: title, icons: icons}
}

// Start registers the tray without taking over the main thread.
func (t *TrayService) Start() {
	start, end := systray.RunWithExternalLoop(t.onReady, t.onExit)
	t.mu.Lock()
	t.end = end
	t.mu.Unlock()
	start()
}

// Stop removes the tray icon. Safe to call more than once.
func (t *TrayService) Stop() {
	t.mu.Lock()
	end := t.end
	already := t.stopped
	t.stopped = true
	t.mu.Unlock()
	if end != nil && !already {
		end()
	}
}

func (t *TrayService) onReady() {
	systray.SetIcon(t.icons.Normal)
	systray.SetTooltip(t.title)

	show := systray.AddMenuItem("Show "+t.title, "Show the chat window")
	systray.AddSeparator()
	join := systray.AddMenuItem("Join Chat", "Start a new chat")
	systray.AddSeparator()
	logout := systray.AddMenuItem("Logout", "Forget the server and quit")
	quit := systray.AddMenuItem("Quit "+t.title, "Quit the application")

	systray.SetOnTapped(t.actions.TrayClicked)

	go func() {
		for range show.ClickedCh {
			t.actions.ShowAndFocus()
		}
	}()
	go func() {
		for range join.ClickedCh {
			t.actions.NewChat()
		}
	}()
	go func() {
		for range logout.ClickedCh {
			t.actions.Logout()
		}
	}()
	go func() {
		for range quit.ClickedCh {
			t.actions.Quit()
		}
	}()

	t.mu.Lock()
	t.ready = true
	alert := t.alert
	t.mu.Unlock()
	if alert {
		systray.SetIcon(t.icons.Alert)
	}
	t.log.Debug("Tray ready")
}

func (t *TrayService) onExit() {
	t.log.Debug("Tray removed")
}

// SetMentionCount switches between the normal and alert icon.
func (t *TrayService) SetMentionCount(count int) {
	alert := count > 0
	t.mu.Lock()
	changed := alert != t.alert
	t.alert = alert
	ready := t.ready
	t.mu.Unlock()
	if !ready {
		return
	}
	if changed && alert {
		systray.SetIcon(t.icons.Alert)
	} else if changed {
		systray.SetIcon(t.icons.Normal)
	}
	if alert {
		systray.SetTooltip(fmt.Sprintf("%s (%d unread)", t.title, count))
	} else {
		systray.SetTooltip(t.title)
	}
}
