// Package mode implements the window-mode classifier and the
// set_window_mode mutator, including per-mode geometry derivation
// (spec §4.2).
package mode

import "github.com/JulianBMW/fensterchef/internal/window"

// Predict is a pure function of a window's cached properties,
// evaluated in the fixed priority order of spec §4.2: first match
// wins.
func Predict(w *window.Window) window.Mode {
	p := &w.Properties
	switch {
	case p.HasState(window.StateFullscreen):
		return window.ModeFullscreen
	case p.HasWindowType(window.WindowTypeDock):
		return window.ModeDock
	case !p.Strut.IsEmpty():
		return window.ModeDock
	case p.TransientFor != 0:
		return window.ModePopup
	case p.HasWindowType(window.WindowTypeNormal):
		return window.ModeTiling
	case hasEqualMinMaxSize(p):
		return window.ModePopup
	case len(p.WindowTypes) > 0:
		return window.ModePopup
	default:
		return window.ModeTiling
	}
}

func hasEqualMinMaxSize(p *window.Properties) bool {
	h := p.SizeHints
	if !h.HasMinSize || !h.HasMaxSize {
		return false
	}
	return h.MinWidth == h.MaxWidth || h.MinHeight == h.MaxHeight
}
