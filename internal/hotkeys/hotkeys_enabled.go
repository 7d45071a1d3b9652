//go:build hotkey

package hotkeys

import (
	"context"
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

var keys = map[string]hotkey.Key{
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD, "e": hotkey.KeyE,
	"f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH, "i": hotkey.KeyI, "j": hotkey.KeyJ,
	"k": hotkey.KeyK, "l": hotkey.KeyL, "m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO,
	"p": hotkey.KeyP, "q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX, "y": hotkey.KeyY,
	"z": hotkey.KeyZ,
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3, "4": hotkey.Key4,
	"5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7, "8": hotkey.Key8, "9": hotkey.Key9,
	"f1": hotkey.KeyF1, "f2": hotkey.KeyF2, "f3": hotkey.KeyF3, "f4": hotkey.KeyF4,
	"f5": hotkey.KeyF5, "f6": hotkey.KeyF6, "f7": hotkey.KeyF7, "f8": hotkey.KeyF8,
	"f9": hotkey.KeyF9, "f10": hotkey.KeyF10, "f11": hotkey.KeyF11, "f12": hotkey.KeyF12,
	"space": hotkey.KeySpace,
}

// Parse parses combinations such as "ctrl+shift+h". Modifier names are
// ctrl, shift, alt and super; cmd is accepted for super.
func Parse(combo string) ([]hotkey.Modifier, hotkey.Key, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(combo)), "+")
	if len(parts) < 2 {
		return nil, 0, fmt.Errorf("hotkey %q needs at least one modifier and a key", combo)
	}

	var mods []hotkey.Modifier
	for _, name := range parts[:len(parts)-1] {
		mod, ok := modifiers[strings.TrimSpace(name)]
		if !ok {
			return nil, 0, fmt.Errorf("hotkey %q: unknown modifier %q", combo, name)
		}
		mods = append(mods, mod)
	}

	keyName := strings.TrimSpace(parts[len(parts)-1])
	key, ok := keys[keyName]
	if !ok {
		return nil, 0, fmt.Errorf("hotkey %q: unknown key %q", combo, keyName)
	}
	return mods, key, nil
}

func (s *Service) listen(ctx context.Context) error {
	mods, key, err := Parse(s.combo)
	if err != nil {
		return err
	}

	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey %s: %w", s.combo, err)
	}
	s.log.Info(fmt.Sprintf("Global hotkey %s registered", s.combo))

	go func() {
		defer func() {
			if err := hk.Unregister(); err != nil {
				s.log.Warning(fmt.Sprintf("Unregister hotkey %s: %v", s.combo, err))
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case <-hk.Keydown():
				s.action()
			}
		}
	}()
	return nil
}
