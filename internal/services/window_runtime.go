package services

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"chatshell/internal/models"
)

// Window is the slice of the native window the shell drives. The runtime
// implementation wraps the Wails runtime; tests substitute a fake.
type Window interface {
	Show()
	Hide()
	Minimise()
	Unminimise()
	IsMinimised() bool
	Size() (int, int)
	SetSize(width, height int)
	Position() (int, int)
	SetPosition(x, y int)
	Center()
	IsFullscreen() bool
	Fullscreen()
	Unfullscreen()
	Reload()
	ExecJS(js string)
	OpenURL(url string)
	Screens() ([]models.Screen, error)
}

type runtimeWindow struct {
	ctx context.Context
}

// NewRuntimeWindow binds the Wails window to the context handed to OnStartup.
func NewRuntimeWindow(ctx context.Context) Window {
	return &runtimeWindow{ctx: ctx}
}

func (w *runtimeWindow) Show()              { runtime.WindowShow(w.ctx) }
func (w *runtimeWindow) Hide()              { runtime.WindowHide(w.ctx) }
func (w *runtimeWindow) Minimise()          { runtime.WindowMinimise(w.ctx) }
func (w *runtimeWindow) Unminimise()        { runtime.WindowUnminimise(w.ctx) }
func (w *runtimeWindow) IsMinimised() bool  { return runtime.WindowIsMinimised(w.ctx) }
func (w *runtimeWindow) Size() (int, int)   { return runtime.WindowGetSize(w.ctx) }
func (w *runtimeWindow) SetSize(wd, ht int) { runtime.WindowSetSize(w.ctx, wd, ht) }
func (w *runtimeWindow) Position() (int, int) {
	return runtime.WindowGetPosition(w.ctx)
}
func (w *runtimeWindow) SetPosition(x, y int) { runtime.WindowSetPosition(w.ctx, x, y) }
func (w *runtimeWindow) Center()              { runtime.WindowCenter(w.ctx) }
func (w *runtimeWindow) IsFullscreen() bool   { return runtime.WindowIsFullscreen(w.ctx) }
func (w *runtimeWindow) Fullscreen()          { runtime.WindowFullscreen(w.ctx) }
func (w *runtimeWindow) Unfullscreen()        { runtime.WindowUnfullscreen(w.ctx) }
func (w *runtimeWindow) Reload()              { runtime.WindowReload(w.ctx) }
func (w *runtimeWindow) ExecJS(js string)     { runtime.WindowExecJS(w.ctx, js) }
func (w *runtimeWindow) OpenURL(url string)   { runtime.BrowserOpenURL(w.ctx, url) }

func (w *runtimeWindow) Screens() ([]models.Screen, error) {
	screens, err := runtime.ScreenGetAll(w.ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Screen, 0, len(screens))
	for _, s := range screens {
		out = append(out, models.Screen{
			Width:     s.Size.Width,
			Height:    s.Size.Height,
			IsPrimary: s.IsPrimary,
			IsCurrent: s.IsCurrent,
		})
	}
	return out, nil
}
