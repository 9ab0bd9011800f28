// Package trigger turns a global hotkey into capture requests.
package trigger

import (
	"context"
	"fmt"
	"strings"

	"golang.design/x/hotkey"
)

// Source emits one signal per hotkey press.
type Source interface {
	// Run registers the hotkey and invokes fire on every press until ctx is
	// cancelled. fire may run on an OS event goroutine and must not block.
	Run(ctx context.Context, fire func()) error
}

// DefaultCombo is used when no hotkey is configured.
const DefaultCombo = "ctrl+shift+s"

// Combo is a parsed modifier+key chord.
type Combo struct {
	mods []hotkey.Modifier
	key  hotkey.Key
	name string
}

func (c Combo) String() string { return c.name }

// Parse converts a combo string like "ctrl+shift+s" into a Combo. Accepted
// modifiers are ctrl, shift and alt everywhere, cmd on macOS and win on
// Windows. The final element must be a single letter or digit.
func Parse(s string) (Combo, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")
	if len(parts) < 2 {
		return Combo{}, fmt.Errorf("hotkey %q: need at least one modifier and a key", s)
	}
	var mods []hotkey.Modifier
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifiers[p]
		if !ok {
			return Combo{}, fmt.Errorf("hotkey %q: unknown modifier %q", s, p)
		}
		mods = append(mods, m)
	}
	name := parts[len(parts)-1]
	k, ok := keys[name]
	if !ok {
		return Combo{}, fmt.Errorf("hotkey %q: unknown key %q", s, name)
	}
	return Combo{mods: mods, key: k, name: strings.Join(parts, "+")}, nil
}

type hotkeySource struct {
	combo Combo
}

// New returns a Source for the given combo.
func New(combo Combo) Source { return &hotkeySource{combo: combo} }

func (s *hotkeySource) Run(ctx context.Context, fire func()) error {
	hk := hotkey.New(s.combo.mods, s.combo.key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("register hotkey %s: %w", s.combo, err)
	}
	defer func() { _ = hk.Unregister() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hk.Keydown():
			fire()
		}
	}
}

// keys maps accepted key names to platform virtual keycodes.
var keys = map[string]hotkey.Key{
	"0": hotkey.Key0, "1": hotkey.Key1, "2": hotkey.Key2, "3": hotkey.Key3,
	"4": hotkey.Key4, "5": hotkey.Key5, "6": hotkey.Key6, "7": hotkey.Key7,
	"8": hotkey.Key8, "9": hotkey.Key9,
	"a": hotkey.KeyA, "b": hotkey.KeyB, "c": hotkey.KeyC, "d": hotkey.KeyD,
	"e": hotkey.KeyE, "f": hotkey.KeyF, "g": hotkey.KeyG, "h": hotkey.KeyH,
	"i": hotkey.KeyI, "j": hotkey.KeyJ, "k": hotkey.KeyK, "l": hotkey.KeyL,
	"m": hotkey.KeyM, "n": hotkey.KeyN, "o": hotkey.KeyO, "p": hotkey.KeyP,
	"q": hotkey.KeyQ, "r": hotkey.KeyR, "s": hotkey.KeyS, "t": hotkey.KeyT,
	"u": hotkey.KeyU, "v": hotkey.KeyV, "w": hotkey.KeyW, "x": hotkey.KeyX,
	"y": hotkey.KeyY, "z": hotkey.KeyZ,
}
