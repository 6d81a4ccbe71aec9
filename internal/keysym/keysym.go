// Package keysym translates between configuration key names and X11
// keysyms/keycodes, the way marwind's own keysym package (consumed by
// its wm.go as keysym.Keymap / keysym.LoadKeyMapping) wraps the same
// lookup for its binding loader.
package keysym

import (
	"fmt"

	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil"
	"github.com/jezek/xgbutil/keybind"
)

// ParseName resolves a configuration key name ("Return", "a", "F1", ...)
// to its X11 keysym value, using the same name table the X server
// consults for XStringToKeysym.
func ParseName(name string) (uint32, bool) {
	syms := keybind.StringToKeysyms(name)
	if len(syms) == 0 {
		return 0, false
	}
	return uint32(syms[0]), true
}

// Keymap wraps the connection's current keyboard mapping, resolving
// keysyms to the keycodes GrabKey/GrabButton need.
type Keymap struct {
	xu *xgbutil.XUtil
}

// LoadKeyMapping reads the X server's current keyboard mapping.
func LoadKeyMapping(xu *xgbutil.XUtil) (Keymap, error) {
	if xu == nil {
		return Keymap{}, fmt.Errorf("keysym: nil X connection")
	}
	return Keymap{xu: xu}, nil
}

// KeycodesForKeysym returns every keycode the mapping assigns keysym,
// or nil if none.
func (k Keymap) KeycodesForKeysym(sym uint32) []xproto.Keycode {
	if k.xu == nil {
		return nil
	}
	return keybind.KeysymToKeycodes(k.xu, xproto.Keysym(sym))
}

// Refresh reloads the keyboard mapping after a MAPPING_NOTIFY event
// (spec §6 "Refresh keymap and regrab keys").
func (k *Keymap) Refresh() {
	if k.xu != nil {
		keybind.UpdateKeyMapIfNeeded(k.xu)
	}
}

// KeysymForKeycode resolves a KEY_PRESS event's keycode back to the
// base keysym (shift level/column 0) the binding matcher compares
// against, the inverse of KeycodesForKeysym. KeysymGet's third
// argument is a keysym-table column, not a modifier mask — the event's
// modifier state is matched separately by bind.Match.
func (k Keymap) KeysymForKeycode(code xproto.Keycode) uint32 {
	if k.xu == nil {
		return 0
	}
	return uint32(keybind.KeysymGet(k.xu, code, 0))
}
