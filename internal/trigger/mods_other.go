//go:build !darwin && !windows

package trigger

import "golang.design/x/hotkey"

// X11 modifier masks: Mod1 is Alt, Mod4 is Super on stock layouts.
var modifiers = map[string]hotkey.Modifier{
	"ctrl":  hotkey.ModCtrl,
	"shift": hotkey.ModShift,
	"alt":   hotkey.Mod1,
	"super": hotkey.Mod4,
}
