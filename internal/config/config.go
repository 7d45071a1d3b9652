// Package config loads shell settings from defaults, an optional TOML file
// and the environment, in that order of precedence (environment wins).
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"chatshell/internal/database"
	"chatshell/internal/utils"
)

// Config holds the shell settings.
type Config struct {
	Title                string
	DataDir              string
	LogLevel             string
	LogFile              string
	DefaultServerURL     string
	ShortcutMode         string
	GlobalHotkey         string
	GeometryPollInterval time.Duration
}

const (
	defaultTitle        = "HipChat"
	defaultLogLevel     = "info"
	defaultShortcutMode = "page"
	defaultPollInterval = 500 * time.Millisecond

	lockFileName = "chatshell.lock"
)

// Environment variable names.
const (
	EnvConfigFile   = "CHATSHELL_CONFIG"
	EnvTitle        = "CHATSHELL_TITLE"
	EnvDataDir      = "CHATSHELL_DATA_DIR"
	EnvLogLevel     = "CHATSHELL_LOG_LEVEL"
	EnvLogFile      = "CHATSHELL_LOG_FILE"
	EnvServerURL    = "CHATSHELL_DEFAULT_SERVER_URL"
	EnvShortcutMode = "CHATSHELL_SHORTCUT_MODE"
	EnvHotkey       = "CHATSHELL_GLOBAL_HOTKEY"
	EnvPollInterval = "CHATSHELL_GEOMETRY_POLL_INTERVAL"
)

type fileConfig struct {
	Title                string `toml:"title"`
	DataDir              string `toml:"data_dir"`
	LogLevel             string `toml:"log_level"`
	LogFile              string `toml:"log_file"`
	DefaultServerURL     string `toml:"default_server_url"`
	ShortcutMode         string `toml:"shortcut_mode"`
	GlobalHotkey         string `toml:"global_hotkey"`
	GeometryPollInterval string `toml:"geometry_poll_interval"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Title:                defaultTitle,
		LogLevel:             defaultLogLevel,
		ShortcutMode:         defaultShortcutMode,
		GeometryPollInterval: defaultPollInterval,
	}
}

// DefaultPath is <user config dir>/chatshell/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "chatshell", "config.toml")
}

// Load builds the configuration. path may be empty, in which case
// CHATSHELL_CONFIG or DefaultPath is used; a missing file is not an error.
func Load(path string) (Config, error) {
	if err := utils.LoadEnv(); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	resolved, err := utils.ExpandPath(path)
	if err != nil {
		return err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	setIfPresent(&c.Title, raw.Title)
	setIfPresent(&c.DataDir, raw.DataDir)
	setIfPresent(&c.LogLevel, raw.LogLevel)
	setIfPresent(&c.LogFile, raw.LogFile)
	setIfPresent(&c.DefaultServerURL, raw.DefaultServerURL)
	setIfPresent(&c.ShortcutMode, raw.ShortcutMode)
	setIfPresent(&c.GlobalHotkey, raw.GlobalHotkey)
	if strings.TrimSpace(raw.GeometryPollInterval) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(raw.GeometryPollInterval))
		if err != nil {
			return fmt.Errorf("parse geometry_poll_interval: %w", err)
		}
		c.GeometryPollInterval = d
	}
	return nil
}

func (c *Config) applyEnv() error {
	setIfPresent(&c.Title, os.Getenv(EnvTitle))
	setIfPresent(&c.DataDir, os.Getenv(EnvDataDir))
	setIfPresent(&c.LogLevel, os.Getenv(EnvLogLevel))
	setIfPresent(&c.LogFile, os.Getenv(EnvLogFile))
	setIfPresent(&c.DefaultServerURL, os.Getenv(EnvServerURL))
	setIfPresent(&c.ShortcutMode, os.Getenv(EnvShortcutMode))
	setIfPresent(&c.GlobalHotkey, os.Getenv(EnvHotkey))
	if v := strings.TrimSpace(os.Getenv(EnvPollInterval)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvPollInterval, err)
		}
		c.GeometryPollInterval = d
	}
	return nil
}

func (c *Config) normalize() error {
	c.ShortcutMode = strings.ToLower(c.ShortcutMode)
	if c.ShortcutMode != "page" && c.ShortcutMode != "os" {
		return fmt.Errorf("shortcut_mode must be 'page' or 'os', got %q", c.ShortcutMode)
	}
	if c.GeometryPollInterval <= 0 {
		return fmt.Errorf("geometry_poll_interval must be positive")
	}
	if c.DataDir == "" {
		dir, err := database.DefaultDataDir()
		if err != nil {
			return fmt.Errorf("default data_dir: %w", err)
		}
		c.DataDir = dir
	}
	dir, err := utils.ExpandPath(c.DataDir)
	if err != nil {
		return fmt.Errorf("data_dir: %w", err)
	}
	c.DataDir = dir
	if c.LogFile != "" {
		file, err := utils.ExpandPath(c.LogFile)
		if err != nil {
			return fmt.Errorf("log_file: %w", err)
		}
		c.LogFile = file
	}
	return nil
}

// DBPath is the preference database inside DataDir. The directory is
// created on demand.
func (c Config) DBPath() (string, error) {
	return database.PathIn(c.DataDir)
}

// LockPath is the file that marks DataDir as in use by a running shell.
func (c Config) LockPath() string {
	return filepath.Join(c.DataDir, lockFileName)
}

func setIfPresent(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}
