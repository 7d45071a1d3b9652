// Package hotkeys toggles the shell from a system-wide key combination.
//
// The hotkey library talks to the display server as soon as it is
// linked (on Linux it opens X11 in init), so it is only compiled into
// builds tagged "hotkey". Default builds get a Service that reports
// ErrUnavailable when a combination is configured.
package hotkeys

import (
	"context"
	"errors"
	"strings"

	"github.com/wailsapp/wails/v2/pkg/logger"
)

// ErrUnavailable means this build has no global hotkey support.
var ErrUnavailable = errors.New("global hotkeys are not available in this build")

type Service struct {
	combo  string
	action func()
	log    logger.Logger
}

func NewService(combo string, action func(), log logger.Logger) *Service {
	return &Service{combo: strings.TrimSpace(combo), action: action, log: log}
}

// Enabled reports whether a combination is configured.
func (s *Service) Enabled() bool {
	return s.combo != ""
}

// Start registers the hotkey and listens until ctx is done. Without a
// configured combination it does nothing.
func (s *Service) Start(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.listen(ctx)
}
