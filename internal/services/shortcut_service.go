package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"
)

const (
	ShortcutModePage = "page"
	ShortcutModeOS   = "os"
)

// KeyboardShortcut is a key press forwarded to the hosted page. Key uses
// accelerator names: a single letter, "Up", "Down", "Tab", "PageUp",
// "PageDown".
type KeyboardShortcut struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
}

func (k KeyboardShortcut) String() string {
	var parts []string
	if k.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if k.Alt {
		parts = append(parts, "Alt")
	}
	if k.Shift {
		parts = append(parts, "Shift")
	}
	return strings.Join(append(parts, k.Key), "+")
}

var (
	ShortcutNewChat      = KeyboardShortcut{Key: "J", Ctrl: true}
	ShortcutInviteToRoom = KeyboardShortcut{Key: "I", Ctrl: true}
	ShortcutPreviousRoom = KeyboardShortcut{Key: "Up", Ctrl: true, Alt: true}
	ShortcutNextRoom     = KeyboardShortcut{Key: "Down", Ctrl: true, Alt: true}
)

// ShortcutSender delivers a KeyboardShortcut to the hosted page.
type ShortcutSender interface {
	Send(k KeyboardShortcut) error
}

// NewShortcutSender picks the sender for mode; unknown modes fall back to
// page dispatch.
func NewShortcutSender(mode string, host *WindowHost) ShortcutSender {
	if strings.EqualFold(strings.TrimSpace(mode), ShortcutModeOS) {
		return &osShortcutSender{host: host}
	}
	return &pageShortcutSender{host: host}
}

type domKey struct {
	key     string
	code    string
	keyCode int
}

var namedDOMKeys = map[string]domKey{
	"up":       {"ArrowUp", "ArrowUp", 38},
	"down":     {"ArrowDown", "ArrowDown", 40},
	"left":     {"ArrowLeft", "ArrowLeft", 37},
	"right":    {"ArrowRight", "ArrowRight", 39},
	"tab":      {"Tab", "Tab", 9},
	"pageup":   {"PageUp", "PageUp", 33},
	"pagedown": {"PageDown", "PageDown", 34},
	"enter":    {"Enter", "Enter", 13},
	"escape":   {"Escape", "Escape", 27},
}

func lookupDOMKey(k KeyboardShortcut) (domKey, error) {
	name := strings.ToLower(strings.TrimSpace(k.Key))
	if dk, ok := namedDOMKeys[name]; ok {
		return dk, nil
	}
	if len(name) == 1 && name[0] >= 'a' && name[0] <= 'z' {
		upper := strings.ToUpper(name)
		key := name
		if k.Shift {
			key = upper
		}
		return domKey{key: key, code: "Key" + upper, keyCode: int(upper[0])}, nil
	}
	if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
		return domKey{key: name, code: "Digit" + name, keyCode: int(name[0])}, nil
	}
	return domKey{}, fmt.Errorf("unsupported shortcut key %q", k.Key)
}

// keyEventScript dispatches a synthetic keydown at the focused element.
// keyCode and which are legacy fields the constructor ignores, so they are
// defined on the event instance.
func keyEventScript(k KeyboardShortcut) (string, error) {
	dk, err := lookupDOMKey(k)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`(function () {
  var e = new KeyboardEvent("keydown", { key: %s, code: %s, ctrlKey: %t, altKey: %t, shiftKey: %t, bubbles: true, cancelable: true });
  Object.defineProperty(e, "keyCode", { get: function () { return %d; } });
  Object.defineProperty(e, "which", { get: function () { return %d; } });
  (document.activeElement || document.body || document).dispatchEvent(e);
})();`, jsString(dk.key), jsString(dk.code), k.Ctrl, k.Alt, k.Shift, dk.keyCode, dk.keyCode), nil
}

type pageShortcutSender struct {
	host *WindowHost
}

func (s *pageShortcutSender) Send(k KeyboardShortcut) error {
	script, err := keyEventScript(k)
	if err != nil {
		return err
	}
	return s.host.ExecJS(script)
}

// osSettleDelay gives a freshly created virtual keyboard time to register.
const osSettleDelay = 2 * time.Second

// osShortcutSender synthesises real key presses at OS level. The window is
// focused first so the presses land in the page.
type osShortcutSender struct {
	host *WindowHost

	once sync.Once
	kb   keybd_event.KeyBonding
	err  error
	mu   sync.Mutex
}

var osKeyCodes = map[string]int{
	"a": keybd_event.VK_A, "b": keybd_event.VK_B, "c": keybd_event.VK_C, "d": keybd_event.VK_D,
	"e": keybd_event.VK_E, "f": keybd_event.VK_F, "g": keybd_event.VK_G, "h": keybd_event.VK_H,
	"i": keybd_event.VK_I, "j": keybd_event.VK_J, "k": keybd_event.VK_K, "l": keybd_event.VK_L,
	"m": keybd_event.VK_M, "n": keybd_event.VK_N, "o": keybd_event.VK_O, "p": keybd_event.VK_P,
	"q": keybd_event.VK_Q, "r": keybd_event.VK_R, "s": keybd_event.VK_S, "t": keybd_event.VK_T,
	"u": keybd_event.VK_U, "v": keybd_event.VK_V, "w": keybd_event.VK_W, "x": keybd_event.VK_X,
	"y": keybd_event.VK_Y, "z": keybd_event.VK_Z,
	"up":   keybd_event.VK_UP,
	"down": keybd_event.VK_DOWN,
	"tab":  keybd_event.VK_TAB,
}

func (s *osShortcutSender) Send(k KeyboardShortcut) error {
	code, ok := osKeyCodes[strings.ToLower(strings.TrimSpace(k.Key))]
	if !ok {
		return fmt.Errorf("unsupported shortcut key %q", k.Key)
	}

	s.once.Do(func() {
		s.kb, s.err = keybd_event.NewKeyBonding()
		if s.err == nil {
			time.Sleep(osSettleDelay)
		}
	})
	if s.err != nil {
		return fmt.Errorf("create virtual keyboard: %w", s.err)
	}

	s.host.ShowAndFocus()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.kb.Clear()
	s.kb.SetKeys(code)
	s.kb.HasCTRL(k.Ctrl)
	s.kb.HasALT(k.Alt)
	s.kb.HasSHIFT(k.Shift)
	return s.kb.Launching()
}
