package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/logger"
	gormlogger "gorm.io/gorm/logger"

	"chatshell/internal/config"
	"chatshell/internal/database"
	"chatshell/internal/repositories"
	"chatshell/internal/services"
	"chatshell/internal/utils"
)

// prepare claims the data directory and brings up everything that reads
// or writes preferences, in that order: lock, database, load, first run.
// When another instance holds the lock it returns ErrInstanceRunning
// without touching the database or prompting. An App is returned with a
// first-run error so the caller can shut it down.
func prepare(cfg config.Config, log logger.Logger, flags services.LaunchFlags, prompter services.Prompter) (*App, error) {
	if err := utils.EnsureDir(cfg.DataDir); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	lock, err := services.AcquireDataDir(cfg.LockPath())
	if err != nil {
		return nil, err
	}

	dbPath, err := cfg.DBPath()
	if err != nil {
		_ = lock.Release()
		return nil, err
	}
	log.Debug(fmt.Sprintf("Preferences database %s (development build: %t)", dbPath, database.IsDevelopment()))
	db, err := database.Init(database.Config{
		Path:     dbPath,
		LogLevel: gormlogger.Warn,
	})
	if err != nil {
		_ = lock.Release()
		return nil, fmt.Errorf("open database: %w", err)
	}

	release := func() error {
		var errs []error
		if sqlDB, err := db.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
		errs = append(errs, lock.Release())
		return errors.Join(errs...)
	}

	prefs := services.NewPreferenceService(repositories.NewRecordRepository(db), log)
	app := NewApp(cfg, log, prefs, release)
	prefs.Load(context.Background())

	configurator := services.NewFirstRunConfigurator(prefs, prompter, log, cfg.DefaultServerURL)
	if _, err := configurator.Run(context.Background(), flags.Logout); err != nil {
		return app, err
	}
	return app, nil
}
