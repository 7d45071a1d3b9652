package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"chatshell/internal/events"
	"chatshell/internal/models"
)

const (
	// ZoomStep is the amount a single zoom in/out changes the factor by.
	ZoomStep = 0.2

	defaultScreenFraction = 0.9
	fallbackWidth         = 1024
	fallbackHeight        = 768
)

var ErrWindowNotReady = errors.New("window is not ready")

type HostOptions struct {
	Title        string
	PollInterval time.Duration
	// NewWindow builds the Window for the startup context. Defaults to
	// NewRuntimeWindow.
	NewWindow func(ctx context.Context) Window
}

// WindowHost owns the native window: geometry restore, loading the chat
// server, page injection and persisting geometry and zoom changes.
type WindowHost struct {
	prefs *PreferenceService
	log   logger.Logger
	opts  HostOptions

	mu        sync.Mutex
	win       Window
	visible   bool
	navigated bool
	mentions  int
	cancel    context.CancelFunc
	tracker   *GeometryTracker

	onMentions func(count int)
	onClose    func()
}

func NewWindowHost(prefs *PreferenceService, log logger.Logger, opts HostOptions) *WindowHost {
	if opts.NewWindow == nil {
		opts.NewWindow = NewRuntimeWindow
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	return &WindowHost{prefs: prefs, log: log, opts: opts}
}

// OnMentionsChanged registers the listener for unread-count reports.
func (h *WindowHost) OnMentionsChanged(fn func(count int)) {
	h.mu.Lock()
	h.onMentions = fn
	h.mu.Unlock()
}

// OnClose registers what runs when the user closes the window.
func (h *WindowHost) OnClose(fn func()) {
	h.mu.Lock()
	h.onClose = fn
	h.mu.Unlock()
}

// InitialSize is the size the window is created with. Without stored
// geometry a placeholder is used until Startup can measure the screen.
func (h *WindowHost) InitialSize() (int, int) {
	p := h.prefs.Current()
	if p.HasSize() {
		return *p.WindowWidth, *p.WindowHeight
	}
	return fallbackWidth, fallbackHeight
}

// Startup restores geometry and starts tracking it. The chat server is
// loaded on the first DomReady.
func (h *WindowHost) Startup(ctx context.Context) {
	win := h.opts.NewWindow(ctx)
	trackCtx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	h.win = win
	h.visible = true
	h.cancel = cancel
	h.mu.Unlock()

	h.restoreGeometry(win)

	h.tracker = NewGeometryTracker(win, h.prefs, h.log, h.opts.PollInterval)
	h.tracker.Start(trackCtx)
}

func (h *WindowHost) restoreGeometry(win Window) {
	p := h.prefs.Current()

	if p.HasSize() {
		win.SetSize(*p.WindowWidth, *p.WindowHeight)
	} else if w, ht, ok := h.defaultSize(win); ok {
		win.SetSize(w, ht)
		win.Center()
	}

	if p.WindowX != nil && p.WindowY != nil {
		win.SetPosition(*p.WindowX, *p.WindowY)
	}
}

// defaultSize is 90% of the primary screen.
func (h *WindowHost) defaultSize(win Window) (int, int, bool) {
	screens, err := win.Screens()
	if err != nil {
		h.log.Warning(fmt.Sprintf("Could not read screens: %v", err))
		return 0, 0, false
	}
	var chosen *models.Screen
	for i := range screens {
		if screens[i].IsPrimary {
			chosen = &screens[i]
			break
		}
	}
	if chosen == nil && len(screens) > 0 {
		chosen = &screens[0]
	}
	if chosen == nil || chosen.Width <= 0 || chosen.Height <= 0 {
		return 0, 0, false
	}
	return int(float64(chosen.Width) * defaultScreenFraction),
		int(float64(chosen.Height) * defaultScreenFraction), true
}

// DomReady fires for the bundled loading page first, which navigates to
// the chat server, and then for every chat page load.
func (h *WindowHost) DomReady(ctx context.Context) {
	h.mu.Lock()
	win := h.win
	first := !h.navigated
	h.navigated = true
	h.mu.Unlock()
	if win == nil {
		return
	}

	p := h.prefs.Current()
	if first {
		if !p.HasServerURL() {
			h.log.Error("No HipChat server configured; nothing to load")
			return
		}
		target := LoadableURL(p.ServerURL)
		h.log.Info(fmt.Sprintf("Loading %s", target))
		win.ExecJS(navigateScript(target))
		return
	}

	win.ExecJS(insertCSSScript(ChatCSSOverride))
	win.ExecJS(zoomScript(p.ZoomOrDefault()))
	win.ExecJS(bridgeScript())
}

// BeforeClose quits the application instead of hiding to the tray.
func (h *WindowHost) BeforeClose(ctx context.Context) bool {
	h.mu.Lock()
	onClose := h.onClose
	h.mu.Unlock()
	if onClose != nil {
		onClose()
	}
	return false
}

// Shutdown stops the geometry tracker.
func (h *WindowHost) Shutdown(ctx context.Context) {
	h.mu.Lock()
	cancel := h.cancel
	h.cancel = nil
	h.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if h.tracker != nil {
		h.tracker.Wait()
	}
}

func (h *WindowHost) window() Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.win
}

func (h *WindowHost) ShowAndFocus() {
	win := h.window()
	if win == nil {
		return
	}
	if win.IsMinimised() {
		win.Unminimise()
	}
	win.Show()
	h.mu.Lock()
	h.visible = true
	h.mu.Unlock()
}

func (h *WindowHost) Hide() {
	win := h.window()
	if win == nil {
		return
	}
	win.Hide()
	h.mu.Lock()
	h.visible = false
	h.mu.Unlock()
}

// ToggleVisibility hides a visible window and shows a hidden one.
func (h *WindowHost) ToggleVisibility() {
	h.mu.Lock()
	visible := h.visible
	h.mu.Unlock()
	if visible {
		h.Hide()
		return
	}
	h.ShowAndFocus()
}

func (h *WindowHost) Visible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible
}

func (h *WindowHost) Minimise() {
	if win := h.window(); win != nil {
		win.Minimise()
	}
}

func (h *WindowHost) Reload() {
	if win := h.window(); win != nil {
		win.Reload()
	}
}

func (h *WindowHost) ToggleFullscreen() {
	win := h.window()
	if win == nil {
		return
	}
	if win.IsFullscreen() {
		win.Unfullscreen()
	} else {
		win.Fullscreen()
	}
}

// ExecJS runs script in the hosted page.
func (h *WindowHost) ExecJS(script string) error {
	win := h.window()
	if win == nil {
		return ErrWindowNotReady
	}
	win.ExecJS(script)
	return nil
}

// Zoom changes the page zoom: 0 resets to 1.0, positive and negative
// values step in and out by ZoomStep. The stored factor is not clamped;
// the page never renders below MinRenderedZoom. The new stored factor is
// returned.
func (h *WindowHost) Zoom(mode int) float64 {
	snapshot, _ := h.prefs.Commit(func(p *models.Preferences) {
		z := p.ZoomOrDefault()
		switch {
		case mode == 0:
			z = models.DefaultZoom
		case mode > 0:
			z += ZoomStep
		default:
			z -= ZoomStep
		}
		p.Zoom = &z
	}, SaveOptions{})

	z := snapshot.ZoomOrDefault()
	if win := h.window(); win != nil {
		win.ExecJS(zoomScript(z))
	}
	return z
}

// OpenExternal hands url to the OS default handler.
func (h *WindowHost) OpenExternal(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
	default:
		return fmt.Errorf("refusing to open %q: unsupported scheme", raw)
	}
	win := h.window()
	if win == nil {
		return ErrWindowNotReady
	}
	win.OpenURL(u.String())
	return nil
}

// SetMentions records the unread mention count reported by the page.
func (h *WindowHost) SetMentions(count int) {
	if count < 0 {
		count = 0
	}
	h.mu.Lock()
	changed := h.mentions != count
	h.mentions = count
	fn := h.onMentions
	h.mu.Unlock()
	if changed && fn != nil {
		fn(count)
	}
}

func (h *WindowHost) Mentions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mentions
}

// LoadableURL returns serverURL with https added when it has no scheme,
// so a bare host from the first-run prompt is not resolved relative to the
// bundled page.
func LoadableURL(serverURL string) string {
	trimmed := strings.TrimSpace(serverURL)
	if trimmed == "" || strings.Contains(trimmed, "://") {
		return trimmed
	}
	return "https://" + trimmed
}

// PageOrigin is the origin the chat server is served from. The webview
// only accepts bridge messages from this origin.
func PageOrigin(serverURL string) (string, error) {
	u, err := url.Parse(LoadableURL(serverURL))
	if err != nil {
		return "", fmt.Errorf("parse server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("server url %q has no host", serverURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// PageBridge receives the messages the bridge script posts from the page.
type PageBridge struct {
	host *WindowHost
	log  logger.Logger
}

func NewPageBridge(host *WindowHost, log logger.Logger) *PageBridge {
	return &PageBridge{host: host, log: log}
}

// Listen subscribes to every page channel until ctx is done.
func (b *PageBridge) Listen(ctx context.Context) {
	for _, name := range events.PageChannels {
		cancel := events.Subscribe(ctx, name, b.Handle)
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}
}

// Handle dispatches one page event.
func (b *PageBridge) Handle(evt events.PageEvent) {
	switch evt.Name {
	case events.PageOpenExternal:
		link, ok := evt.String()
		if !ok {
			b.log.Warning(fmt.Sprintf("Ignoring %s without a url", evt.Name))
			return
		}
		if err := b.host.OpenExternal(link); err != nil {
			b.log.Warning(fmt.Sprintf("Not opening %q: %v", link, err))
		}
	case events.PageMentions:
		count, ok := evt.Int()
		if !ok {
			b.log.Warning(fmt.Sprintf("Ignoring %s without a count", evt.Name))
			return
		}
		b.host.SetMentions(count)
	default:
		b.log.Debug(fmt.Sprintf("Unhandled page event %s", evt.Name))
	}
}
