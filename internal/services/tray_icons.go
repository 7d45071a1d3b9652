package services

import (
	"fmt"
	"io/fs"

	"chatshell/internal/assets"
)

// TrayIconPair names the icon shown normally and while mentions are unread.
type TrayIconPair struct {
	Normal string
	Alert  string
}

var trayIconPaths = map[string]TrayIconPair{
	"linux": {
		Normal: "images/64x64/hipchat-mono.png",
		Alert:  "images/64x64/hipchat-mono-alert.png",
	},
	"windows": {
		Normal: "images/16x16/hipchat.ico",
		Alert:  "images/16x16/hipchat-alert.ico",
	},
	"darwin": {
		Normal: "images/32x32/hipchat-mono@2x.png",
		Alert:  "images/32x32/hipchat-attention@2x.png",
	},
}

var defaultTrayIcons = TrayIconPair{
	Normal: "images/hipchat-default.png",
	Alert:  "images/hipchat-default.png",
}

// TrayIconPaths returns the icon pair for goos, or the default pair.
func TrayIconPaths(goos string) TrayIconPair {
	if pair, ok := trayIconPaths[goos]; ok {
		return pair
	}
	return defaultTrayIcons
}

// TrayIcons is a loaded icon pair.
type TrayIcons struct {
	Normal []byte
	Alert  []byte
}

// LoadTrayIcons reads the icon pair for goos from the embedded assets.
func LoadTrayIcons(goos string) (TrayIcons, error) {
	pair := TrayIconPaths(goos)
	normal, err := fs.ReadFile(assets.Images, pair.Normal)
	if err != nil {
		return TrayIcons{}, fmt.Errorf("read tray icon %s: %w", pair.Normal, err)
	}
	alert, err := fs.ReadFile(assets.Images, pair.Alert)
	if err != nil {
		return TrayIcons{}, fmt.Errorf("read tray icon %s: %w", pair.Alert, err)
	}
	return TrayIcons{Normal: normal, Alert: alert}, nil
}
