package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	goruntime "runtime"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"chatshell/internal/config"
	"chatshell/internal/events"
	"chatshell/internal/hotkeys"
	"chatshell/internal/services"
)

// App is the application context: every long-lived component hangs off it
// and is torn down with it.
type App struct {
	ctx      context.Context
	cfg      config.Config
	log      logger.Logger
	mu       sync.Mutex
	quit     sync.Once
	teardown sync.Once

	Prefs   *services.PreferenceService
	Host    *services.WindowHost
	Actions *services.Actions
	Bridge  *services.PageBridge
	Tray    *services.TrayService
	Hotkeys *hotkeys.Service
	Guard   *services.InstanceGuard

	// release closes the database and unlocks the data directory.
	release func() error
}

// NewApp wires the window, chrome and guard around the preference store.
func NewApp(cfg config.Config, log logger.Logger, prefs *services.PreferenceService, release func() error) *App {
	a := &App{cfg: cfg, log: log, Prefs: prefs, release: release}

	a.Host = services.NewWindowHost(prefs, log, services.HostOptions{
		Title:        cfg.Title,
		PollInterval: cfg.GeometryPollInterval,
	})
	a.Bridge = services.NewPageBridge(a.Host, log)
	shortcuts := services.NewShortcutSender(cfg.ShortcutMode, a.Host)
	a.Actions = services.NewActions(a.Host, prefs, shortcuts, log, func() { a.Quit(nil) })

	icons, err := services.LoadTrayIcons(goruntime.GOOS)
	if err != nil {
		log.Error(fmt.Sprintf("Tray disabled: %v", err))
	} else {
		a.Tray = services.NewTrayService(a.Actions, log, cfg.Title, icons)
		a.Host.OnMentionsChanged(a.Tray.SetMentionCount)
		// Closing the window ends the app; runtime.Quit also passes through
		// here, so only the tray is torn down.
		a.Host.OnClose(a.Tray.Stop)
	}

	a.Hotkeys = hotkeys.NewService(cfg.GlobalHotkey, a.Actions.ToggleWindow, log)
	a.Guard = services.NewInstanceGuard(services.InstanceID(cfg.Title, cfg.DataDir), a.Actions, log)

	prefs.SetQuitHandler(a.Quit)
	return a
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()

	events.EnableRuntimeSubscriber()
	a.Host.Startup(ctx)
	a.Bridge.Listen(ctx)

	if a.Tray != nil {
		a.Tray.Start()
	}
	if err := a.Hotkeys.Start(ctx); errors.Is(err, hotkeys.ErrUnavailable) {
		runtime.LogInfo(ctx, err.Error())
	} else if err != nil {
		runtime.LogError(ctx, fmt.Sprintf("global hotkey disabled: %v", err))
	}
}

func (a *App) domReady(ctx context.Context) {
	a.Host.DomReady(ctx)
}

func (a *App) beforeClose(ctx context.Context) bool {
	return a.Host.BeforeClose(ctx)
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	a.Host.Shutdown(ctx)
	if a.Tray != nil {
		a.Tray.Stop()
	}

	if err := a.close(); err != nil {
		runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
	} else {
		runtime.LogInfo(ctx, "database closed")
	}
}

// close flushes pending preference writes, then closes the database and
// gives up the data directory. Only the first call does anything.
func (a *App) close() error {
	var err error
	a.teardown.Do(func() {
		a.Prefs.Close()
		if a.release != nil {
			err = a.release()
		}
	})
	return err
}

// Quit ends the application. Before the window runtime is up there is
// nothing to shut down gracefully, so the process exits directly.
func (a *App) Quit(cause error) {
	a.quit.Do(func() {
		if cause != nil {
			a.log.Error(fmt.Sprintf("Quitting: %v", cause))
		}

		a.mu.Lock()
		ctx := a.ctx
		a.mu.Unlock()

		if ctx == nil {
			if err := a.close(); err != nil {
				a.log.Error(fmt.Sprintf("failed to close database: %v", err))
			}
			if cause != nil {
				os.Exit(1)
			}
			os.Exit(0)
		}
		runtime.Quit(ctx)
	})
}
