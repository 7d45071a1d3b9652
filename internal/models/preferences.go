package models

import "strings"

// ChatPathSuffix is the path every configured server URL ends with.
const ChatPathSuffix = "/chat"

// DefaultZoom is the zoom factor used when none has been stored.
const DefaultZoom = 1.0

// Preferences is the persisted user configuration. Pointer fields are
// optional: nil means the key was never written.
type Preferences struct {
	ServerURL    string   `json:"server_url,omitempty"`
	WindowWidth  *int     `json:"window_width,omitempty"`
	WindowHeight *int     `json:"window_height,omitempty"`
	WindowX      *int     `json:"window_x,omitempty"`
	WindowY      *int     `json:"window_y,omitempty"`
	Zoom         *float64 `json:"zoom,omitempty"`
}

// HasServerURL reports whether a usable server URL is configured.
func (p Preferences) HasServerURL() bool {
	return strings.TrimSpace(p.ServerURL) != ""
}

// HasSize reports whether both window dimensions were stored.
func (p Preferences) HasSize() bool {
	return p.WindowWidth != nil && p.WindowHeight != nil &&
		*p.WindowWidth > 0 && *p.WindowHeight > 0
}

// ZoomOrDefault returns the stored zoom or DefaultZoom. Stored values are
// returned as is, including zero and negative factors.
func (p Preferences) ZoomOrDefault() float64 {
	if p.Zoom == nil {
		return DefaultZoom
	}
	return *p.Zoom
}

// Clone returns a deep copy so snapshots can leave the owning goroutine.
func (p Preferences) Clone() Preferences {
	out := Preferences{ServerURL: p.ServerURL}
	out.WindowWidth = cloneInt(p.WindowWidth)
	out.WindowHeight = cloneInt(p.WindowHeight)
	out.WindowX = cloneInt(p.WindowX)
	out.WindowY = cloneInt(p.WindowY)
	if p.Zoom != nil {
		z := *p.Zoom
		out.Zoom = &z
	}
	return out
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// FloatPtr returns a pointer to v.
func FloatPtr(v float64) *float64 {
	return &v
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
