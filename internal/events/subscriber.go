package events

import (
	"context"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// Handler receives page events.
type Handler func(evt PageEvent)

// Subscribe registers h for the named channel and returns the function
// that removes it. It is a no-op until a subscriber is enabled.
var Subscribe = func(ctx context.Context, name string, h Handler) func() {
	return func() {}
}

// EnableRuntimeSubscriber routes subscriptions through the Wails event bus.
func EnableRuntimeSubscriber() {
	Subscribe = func(ctx context.Context, name string, h Handler) func() {
		return runtime.EventsOn(ctx, name, func(data ...interface{}) {
			evt := NewPageEvent(name, data)
			logRuntimeEvent(ctx, evt)
			h(evt)
		})
	}
}

// SetCustomSubscriber swaps the subscriber; nil restores the no-op.
func SetCustomSubscriber(f func(ctx context.Context, name string, h Handler) func()) {
	if f == nil {
		Subscribe = func(context.Context, string, Handler) func() { return func() {} }
		return
	}
	Subscribe = f
}
