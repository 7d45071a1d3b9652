package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	goruntime "runtime"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/linux"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"chatshell/internal/config"
	"chatshell/internal/services"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Println("Error loading configuration:", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	level, err := logger.StringToLogLevel(cfg.LogLevel)
	if err != nil {
		log.Warning(fmt.Sprintf("Unknown log level %q, using info", cfg.LogLevel))
		level = logger.INFO
	}

	flags := services.ParseLaunchFlags(os.Args[1:])

	app, err := prepare(cfg, log, flags, services.NewDialogPrompter())
	switch {
	case errors.Is(err, services.ErrInstanceRunning):
		log.Info(fmt.Sprintf("%s is already running; handing over to it", cfg.Title))
		handOver(cfg, log, level)
		return
	case app == nil && err != nil:
		log.Error(fmt.Sprintf("Startup failed: %v", err))
		os.Exit(1)
	case err != nil:
		if !errors.Is(err, services.ErrServerURLRequired) {
			log.Error(fmt.Sprintf("First-run configuration failed: %v", err))
		}
		app.Quit(err)
		return
	}

	origin, err := services.PageOrigin(app.Prefs.Current().ServerURL)
	if err != nil {
		log.Error(fmt.Sprintf("Invalid server address: %v", err))
		app.Quit(err)
		return
	}

	width, height := app.Host.InitialSize()

	err = wails.Run(&options.App{
		Title:     cfg.Title,
		Width:     width,
		Height:    height,
		MinWidth:  400,
		MinHeight: 300,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Menu:               services.BuildApplicationMenu(app.Actions, cfg.Title, goruntime.GOOS),
		Logger:             log,
		LogLevel:           level,
		SingleInstanceLock: app.Guard.LockOptions(),
		Linux: &linux.Options{
			WindowIsTranslucent: false,
			WebviewGpuPolicy:    linux.WebviewGpuPolicyOnDemand,
			ProgramName:         cfg.Title,
		},
		Mac: &mac.Options{
			TitleBar: mac.TitleBarHiddenInset(),
		},
		Windows: &windows.Options{
			IsZoomControlEnabled: false,
		},
		BackgroundColour:       &options.RGBA{R: 255, G: 255, B: 255, A: 1},
		BindingsAllowedOrigins: origin,
		OnStartup:              app.startup,
		OnDomReady:             app.domReady,
		OnBeforeClose:          app.beforeClose,
		OnShutdown:             app.shutdown,
	})

	if err != nil {
		log.Error(fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

// handOver runs a hidden Wails instance so the single-instance lock passes
// our arguments to the running shell, which ends this process. If that
// shell has not created its window yet (it is still asking for the server
// address), there is nobody to hand over to and this process just quits.
func handOver(cfg config.Config, log logger.Logger, level logger.LogLevel) {
	err := wails.Run(&options.App{
		Title:       cfg.Title,
		StartHidden: true,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Logger:   log,
		LogLevel: level,
		SingleInstanceLock: &options.SingleInstanceLock{
			UniqueId:               services.InstanceID(cfg.Title, cfg.DataDir),
			OnSecondInstanceLaunch: func(options.SecondInstanceData) {},
		},
		OnStartup: func(ctx context.Context) {
			log.Info("No running window to hand over to")
			wailsruntime.Quit(ctx)
		},
	})
	if err != nil {
		log.Error(fmt.Sprintf("Error: %v", err))
	}
}

func newLogger(cfg config.Config) logger.Logger {
	if cfg.LogFile != "" {
		return logger.NewFileLogger(cfg.LogFile)
	}
	return logger.NewDefaultLogger()
}
