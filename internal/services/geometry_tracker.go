package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wailsapp/wails/v2/pkg/logger"

	"chatshell/internal/models"
)

// DefaultPollInterval is how often window geometry is sampled.
const DefaultPollInterval = 500 * time.Millisecond

type geometry struct {
	width, height int
	x, y          int
}

// GeometryTracker samples window size and position and persists changes.
// The window runtime has no resize or move notifications, so a change
// between two samples stands in for the event.
type GeometryTracker struct {
	win      Window
	prefs    *PreferenceService
	log      logger.Logger
	interval time.Duration

	mu     sync.Mutex
	last   geometry
	seeded bool
	wg     sync.WaitGroup
}

func NewGeometryTracker(win Window, prefs *PreferenceService, log logger.Logger, interval time.Duration) *GeometryTracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &GeometryTracker{win: win, prefs: prefs, log: log, interval: interval}
}

// Seed records the current geometry as the baseline without saving.
func (t *GeometryTracker) Seed() {
	g := t.sample()
	t.mu.Lock()
	t.last = g
	t.seeded = true
	t.mu.Unlock()
}

// Start seeds the baseline and polls until ctx is done.
func (t *GeometryTracker) Start(ctx context.Context) {
	t.Seed()
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.Poll()
			}
		}
	}()
}

// Wait blocks until the polling goroutine has exited.
func (t *GeometryTracker) Wait() {
	t.wg.Wait()
}

func (t *GeometryTracker) sample() geometry {
	w, h := t.win.Size()
	x, y := t.win.Position()
	return geometry{width: w, height: h, x: x, y: y}
}

// Poll takes one sample. When size or position changed since the last
// sample the preferences are updated and one save is queued; its outcome
// channel is returned. Nil means nothing changed.
func (t *GeometryTracker) Poll() <-chan error {
	if t.win.IsMinimised() || t.win.IsFullscreen() {
		return nil
	}
	g := t.sample()

	t.mu.Lock()
	prev, seeded := t.last, t.seeded
	t.last, t.seeded = g, true
	t.mu.Unlock()

	if !seeded || g == prev {
		return nil
	}
	resized := g.width != prev.width || g.height != prev.height
	moved := g.x != prev.x || g.y != prev.y

	_, result := t.prefs.Commit(func(p *models.Preferences) {
		if resized && g.width > 0 && g.height > 0 {
			p.WindowWidth = models.IntPtr(g.width)
			p.WindowHeight = models.IntPtr(g.height)
		}
		if moved {
			p.WindowX = models.IntPtr(g.x)
			p.WindowY = models.IntPtr(g.y)
		}
	}, SaveOptions{})

	t.log.Debug(fmt.Sprintf("Window geometry now %dx%d at %d,%d", g.width, g.height, g.x, g.y))
	return result
}
