package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
)

const (
	LogoutFlag  = "--logout"
	NewChatFlag = "--new-chat"
)

// LaunchFlags are the command line switches the shell understands.
type LaunchFlags struct {
	Logout  bool
	NewChat bool
}

// ParseLaunchFlags scans args for known switches. Unknown arguments are
// ignored: launchers and the OS add their own.
func ParseLaunchFlags(args []string) LaunchFlags {
	var f LaunchFlags
	for _, arg := range args {
		name, _, _ := strings.Cut(strings.TrimSpace(arg), "=")
		if !strings.HasPrefix(name, "--") && strings.HasPrefix(name, "-") {
			name = "-" + name
		}
		switch name {
		case LogoutFlag:
			f.Logout = true
		case NewChatFlag:
			f.NewChat = true
		}
	}
	return f
}

// InstanceID derives the single-instance lock id. Every data directory
// gets its own stable id, so separate profiles can run side by side.
func InstanceID(appName, dataDir string) string {
	name := fmt.Sprintf("chatshell:%s:%s", appName, dataDir)
	return "chatshell-" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(name)).String()
}

// ErrInstanceRunning means another process holds the data directory.
var ErrInstanceRunning = errors.New("another instance is already running")

// DataDirLock is an exclusive OS file lock on the data directory. It is
// taken before the preference database is opened, so only one process
// ever reads or writes preferences or shows the first-run prompt.
type DataDirLock struct {
	fl *flock.Flock
}

// AcquireDataDir takes the lock at path without blocking. The directory
// holding path must exist.
func AcquireDataDir(path string) (*DataDirLock, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, ErrInstanceRunning
	}
	return &DataDirLock{fl: fl}, nil
}

// Release unlocks the data directory.
func (l *DataDirLock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}

// InstanceGuard keeps one running instance. Wails refuses the lock to a
// second process and hands its arguments to this one.
type InstanceGuard struct {
	id      string
	actions *Actions
	log     logger.Logger
}

func NewInstanceGuard(id string, actions *Actions, log logger.Logger) *InstanceGuard {
	return &InstanceGuard{id: id, actions: actions, log: log}
}

func (g *InstanceGuard) ID() string {
	return g.id
}

// LockOptions is plugged into options.App.SingleInstanceLock.
func (g *InstanceGuard) LockOptions() *options.SingleInstanceLock {
	return &options.SingleInstanceLock{
		UniqueId:               g.id,
		OnSecondInstanceLaunch: g.HandleSecondInstance,
	}
}

// HandleSecondInstance brings the existing window forward and replays
// --new-chat from the second launch.
func (g *InstanceGuard) HandleSecondInstance(data options.SecondInstanceData) {
	g.log.Info(fmt.Sprintf("Another instance was launched with %v; focusing this one", data.Args))
	g.actions.ShowAndFocus()
	if ParseLaunchFlags(data.Args).NewChat {
		g.actions.NewChat()
	}
}
