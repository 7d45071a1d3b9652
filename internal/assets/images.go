package assets

import "embed"

// Images holds the tray icons, keyed by path under images/.
//
//go:embed images
var Images embed.FS
