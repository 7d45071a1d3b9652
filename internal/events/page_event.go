package events

import (
	"time"

	"github.com/google/uuid"
)

// Page channels. The bridge script posts these straight to the webview's
// native message handler, so they reach Go without the Wails runtime being
// loaded in the remote page.
const (
	PageOpenExternal = "chatshell:open-external"
	PageMentions     = "chatshell:mentions"
)

// PageChannels lists every channel the shell subscribes to.
var PageChannels = []string{PageOpenExternal, PageMentions}

// PageEvent is a message from the hosted page to the shell.
type PageEvent struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Data      []interface{} `json:"data,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewPageEvent creates a PageEvent with a fresh ID.
func NewPageEvent(name string, data []interface{}) PageEvent {
	return PageEvent{
		ID:        uuid.NewString(),
		Name:      name,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// String returns the first argument as a string.
func (e PageEvent) String() (string, bool) {
	if len(e.Data) == 0 {
		return "", false
	}
	s, ok := e.Data[0].(string)
	return s, ok
}

// Int returns the first argument as an int. JSON numbers arrive as float64.
func (e PageEvent) Int() (int, bool) {
	if len(e.Data) == 0 {
		return 0, false
	}
	switch v := e.Data[0].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}
