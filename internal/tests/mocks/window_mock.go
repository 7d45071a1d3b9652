package mocks

import (
	"sync"

	"chatshell/internal/models"
)

// WindowMock is an in-memory window. It records calls by name and keeps
// geometry so trackers can observe changes.
type WindowMock struct {
	mu         sync.Mutex
	Width      int
	Height     int
	X          int
	Y          int
	Visible    bool
	Minimised  bool
	FullScreen bool
	ScreenList []models.Screen
	ScreensErr error
	Scripts    []string
	Opened     []string
	Calls      []string
}

func (m *WindowMock) record(name string) {
	m.Calls = append(m.Calls, name)
}

func (m *WindowMock) Show() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Show")
	m.Visible = true
}

func (m *WindowMock) Hide() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Hide")
	m.Visible = false
}

func (m *WindowMock) Minimise() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Minimise")
	m.Minimised = true
}

func (m *WindowMock) Unminimise() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Unminimise")
	m.Minimised = false
}

func (m *WindowMock) IsMinimised() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Minimised
}

func (m *WindowMock) Size() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Width, m.Height
}

func (m *WindowMock) SetSize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SetSize")
	m.Width, m.Height = width, height
}

func (m *WindowMock) Position() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.X, m.Y
}

func (m *WindowMock) SetPosition(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SetPosition")
	m.X, m.Y = x, y
}

func (m *WindowMock) Center() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Center")
}

func (m *WindowMock) IsFullscreen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FullScreen
}

func (m *WindowMock) Fullscreen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Fullscreen")
	m.FullScreen = true
}

func (m *WindowMock) Unfullscreen() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Unfullscreen")
	m.FullScreen = false
}

func (m *WindowMock) Reload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Reload")
}

func (m *WindowMock) ExecJS(js string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("ExecJS")
	m.Scripts = append(m.Scripts, js)
}

func (m *WindowMock) OpenURL(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("OpenURL")
	m.Opened = append(m.Opened, url)
}

func (m *WindowMock) Screens() ([]models.Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ScreenList, m.ScreensErr
}

// Resize simulates the user dragging the window edge.
func (m *WindowMock) Resize(width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Width, m.Height = width, height
}

// Move simulates the user dragging the window.
func (m *WindowMock) Move(x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.X, m.Y = x, y
}

// Called reports how many times the named method ran.
func (m *WindowMock) Called(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// LastScript returns the most recent script passed to ExecJS.
func (m *WindowMock) LastScript() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Scripts) == 0 {
		return ""
	}
	return m.Scripts[len(m.Scripts)-1]
}
