// Package focus implements the focus manager: selecting the focused
// window/frame, maintaining the focus chain, and the two traversal
// operations (spec §4.4).
package focus

import (
	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/window"
)

// Manager owns the single focus_frame and drives focus changes through
// the registry. Side effects that belong to the X11 transport layer
// (setting input focus, painting the border, reverting to the
// root-utility window) are injected as callbacks so this package stays
// independent of the transport.
type Manager struct {
	Registry *window.Registry

	// FocusFrame is the one frame_focus pointer of spec §4.4.
	FocusFrame *frame.Frame

	// OnFocusWindow is invoked with the newly focused window, or nil
	// when focus reverts to the root-utility window.
	OnFocusWindow func(w *window.Window)
}

// NewManager returns a Manager whose initial focus frame is root (the
// primary monitor's root frame, per spec §4.4 "Initial value after
// startup is the primary monitor's root frame").
func NewManager(registry *window.Registry, root *frame.Frame) *Manager {
	return &Manager{Registry: registry, FocusFrame: root}
}

// SetFocusWindow sets X input focus to w (or reverts to the root
// utility window when w is nil), and moves w to the front of the
// recency-ordered focus chain.
func (m *Manager) SetFocusWindow(w *window.Window) {
	if w != nil {
		m.Registry.SetFocusWindow(w)
	}
	if m.OnFocusWindow != nil {
		m.OnFocusWindow(w)
	}
}

// SetFocusFrame makes f the focus frame. If f holds a window, that
// window also receives input focus (set_focus_window_with_frame's
// counterpart, set_focus_frame).
func (m *Manager) SetFocusFrame(f *frame.Frame) {
	m.FocusFrame = f
	if f != nil && f.Window != nil {
		m.SetFocusWindow(f.Window)
	}
}

// SetFocusWindowWithFrame focuses w, and additionally selects its
// containing frame as the focus frame if it has one.
func (m *Manager) SetFocusWindowWithFrame(w *window.Window) {
	if leaf, ok := w.Frame.(*frame.Frame); ok && leaf != nil {
		m.SetFocusFrame(leaf)
		return
	}
	m.SetFocusWindow(w)
}

// TraverseFocus moves focus to the next visible window above the
// current focus in Z-order, wrapping to the bottom-most visible window
// if there is none above.
func (m *Manager) TraverseFocus() *window.Window {
	cur := m.Registry.FocusHead()
	if cur == nil {
		return nil
	}
	for above := window.ZAbove(cur); above != nil; above = window.ZAbove(above) {
		if above.IsVisible {
			m.SetFocusWindow(above)
			return above
		}
	}
	for w := m.Registry.ZBottom(); w != nil; w = window.ZAbove(w) {
		if w.IsVisible {
			m.SetFocusWindow(w)
			return w
		}
	}
	return nil
}

// TraverseFocusChain walks the cyclic MRU focus chain by dir (+1 for
// next, -1 for previous) from the current focus head and focuses the
// result.
func (m *Manager) TraverseFocusChain(dir int) *window.Window {
	cur := m.Registry.FocusHead()
	if cur == nil {
		return nil
	}
	var next *window.Window
	if dir >= 0 {
		next = window.FocusNext(cur)
	} else {
		next = window.FocusPrevious(cur)
	}
	if next == nil {
		return nil
	}
	m.SetFocusWindow(next)
	return next
}

// FrameAdjacent returns the frame whose rectangle contains the point
// one pixel beyond the given edge of the focus frame, used by the
// MOVE-UP/LEFT/RIGHT/DOWN actions.
func FrameAdjacent(root *frame.Frame, f *frame.Frame, dir Direction) *frame.Frame {
	var x, y int32
	switch dir {
	case Up:
		x, y = f.Rect.CenterX(), f.Rect.Y-1
	case Down:
		x, y = f.Rect.CenterX(), f.Rect.Bottom()
	case Left:
		x, y = f.Rect.X-1, f.Rect.CenterY()
	case Right:
		x, y = f.Rect.Right(), f.Rect.CenterY()
	}
	return frame.PointLookup(root, x, y)
}

// Direction names one of the four MOVE-* actions.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)
