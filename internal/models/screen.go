package models

// Screen describes one display as reported by the window runtime.
type Screen struct {
	Width     int
	Height    int
	IsPrimary bool
	IsCurrent bool
}
