//go:build prod

package database

import (
	"os"
	"path/filepath"
)

// DefaultDataDir is <user config dir>/chatshell.
func DefaultDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "chatshell"), nil
}

func IsDevelopment() bool {
	return false
}
