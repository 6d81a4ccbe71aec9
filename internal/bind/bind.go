// Package bind implements the binding matcher (spec §4.8): matching an
// X key/button event against the configured bindings with
// ignore-modifier masking, and computing the grab-set power-set
// refresh.
package bind

import "github.com/JulianBMW/fensterchef/internal/action"

// Modifiers is the X11 modifier-key bitmask (ShiftMask, ControlMask,
// ...). Bit positions mirror the core X protocol's KeyButMask.
type Modifiers uint16

const (
	ShiftMask Modifiers = 1 << iota
	LockMask
	ControlMask
	Mod1Mask
	Mod2Mask
	Mod3Mask
	Mod4Mask
	Mod5Mask
)

// Flags are per-binding behavior switches (spec §3 "Binding flags").
type Flags uint8

const (
	// Release fires the binding on button/key release rather than press.
	Release Flags = 1 << iota
	// Transparent lets the event continue to other clients instead of
	// being grabbed/consumed.
	Transparent
)

// Binding is the (key-or-button, modifiers, flags) → actions triple
// (spec §3 "Binding").
type Binding struct {
	KeyOrButton uint32
	Modifiers   Modifiers
	Flags       Flags
	Actions     []action.Action
}

// IsTransparent reports whether b does not consume the matched event.
func (b Binding) IsTransparent() bool { return b.Flags&Transparent != 0 }

// IsRelease reports whether b fires on release rather than press.
func (b Binding) IsRelease() bool { return b.Flags&Release != 0 }

// matchFlags strips Transparent before comparison: whether a binding is
// transparent affects grabbing, not matching (spec §4.8 "strip
// ignore_modifiers and the TRANSPARENT flag ... compare exactly").
func matchFlags(f Flags) Flags { return f &^ Transparent }

// Match finds the first binding in bindings whose (key_or_button,
// modifiers, flags) equals the event's, after stripping ignore from
// both sides' modifiers and Transparent from both sides' flags.
func Match(bindings []Binding, keyOrButton uint32, eventMods Modifiers, eventFlags Flags, ignore Modifiers) *Binding {
	strippedEventMods := eventMods &^ ignore
	strippedEventFlags := matchFlags(eventFlags)
	for i := range bindings {
		b := &bindings[i]
		if b.KeyOrButton != keyOrButton {
			continue
		}
		if (b.Modifiers&^ignore) != strippedEventMods {
			continue
		}
		if matchFlags(b.Flags) != strippedEventFlags {
			continue
		}
		return b
	}
	return nil
}

// PowerSet enumerates every submask of mask (spec §4.8 "enumerate the
// power set of ignore_modifiers"), including the empty mask and mask
// itself. len(result) == 2^popcount(mask).
func PowerSet(mask Modifiers) []Modifiers {
	var bits []Modifiers
	for b := Modifiers(1); b != 0 && b <= mask; b <<= 1 {
		if mask&b != 0 {
			bits = append(bits, b)
		}
	}
	n := len(bits)
	result := make([]Modifiers, 0, 1<<n)
	for i := 0; i < (1 << n); i++ {
		var combo Modifiers
		for j, b := range bits {
			if i&(1<<uint(j)) != 0 {
				combo |= b
			}
		}
		result = append(result, combo)
	}
	return result
}

// GrabSpec is one concrete (key_or_button, modifiers) combination to
// issue an X grab for.
type GrabSpec struct {
	KeyOrButton uint32
	Modifiers   Modifiers
}

// GrabSet computes every grab combination for a set of non-transparent
// bindings: for each binding, its modifiers combined with every
// submask of ignore (so e.g. CapsLock/NumLock don't break the
// binding). Transparent bindings are not grabbed at all.
func GrabSet(bindings []Binding, ignore Modifiers) []GrabSpec {
	combos := PowerSet(ignore)
	var specs []GrabSpec
	for _, b := range bindings {
		if b.IsTransparent() {
			continue
		}
		for _, combo := range combos {
			specs = append(specs, GrabSpec{KeyOrButton: b.KeyOrButton, Modifiers: b.Modifiers | combo})
		}
	}
	return specs
}
