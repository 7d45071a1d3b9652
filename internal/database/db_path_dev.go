//go:build !prod

package database

import (
	"os"
	"path/filepath"

	"chatshell/internal/utils"
)

// DefaultDataDir keeps development data next to the sources so it is easy
// to inspect and throw away. Outside a checkout it falls back to a
// separate per-user directory so dev builds never touch release data.
func DefaultDataDir() (string, error) {
	if root, err := utils.FindProjectRoot(); err == nil {
		return filepath.Join(root, ".chatshell-dev"), nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "chatshell-dev"), nil
}

func IsDevelopment() bool {
	return true
}
