// Package moveresize implements the interactive move/resize state
// machine (spec §4.6): exactly one active drag, directional edge/corner
// resize, and cancellation by press, unmap, or explicit cancel message.
package moveresize

import (
	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/monitor"
	"github.com/JulianBMW/fensterchef/internal/window"
)

// Direction names which edges/corners a drag affects. Move translates
// the window without changing its size.
type Direction uint8

const (
	Move Direction = iota
	North
	South
	East
	West
	NorthEast
	NorthWest
	SouthEast
	SouthWest
)

// MinimumVisibleSize is WINDOW_MINIMUM_VISIBLE_SIZE: the minimum pixel
// overlap a window's rectangle must keep with some monitor.
const MinimumVisibleSize = 8

// Machine holds the single idle/active move-resize state (spec §4.6).
// There is exactly one Machine per running instance; it has no
// collaborators of its own beyond what is passed into its methods.
type Machine struct {
	active      bool
	window      *window.Window
	direction   Direction
	initialGeom geom.Rect
	anchorX     int32
	anchorY     int32
}

// Active reports whether a drag is in progress.
func (m *Machine) Active() bool { return m.active }

// Window returns the drag's target, or nil if idle.
func (m *Machine) Window() *window.Window {
	if !m.active {
		return nil
	}
	return m.window
}

// Start transitions idle → active(w, dir, w.Position, anchor). It is a
// no-op if a drag is already active; callers must Cancel first (this
// mirrors the spec's "a new press while already active" transition,
// which restores and returns to idle rather than re-starting).
func (m *Machine) Start(w *window.Window, dir Direction, anchorX, anchorY int32) {
	if m.active {
		return
	}
	m.active = true
	m.window = w
	m.direction = dir
	m.initialGeom = w.Position
	m.anchorX = anchorX
	m.anchorY = anchorY
}

// Cancel restores the target's geometry to what it was when the drag
// started and returns to idle. Safe to call when already idle.
func (m *Machine) Cancel() {
	if !m.active {
		return
	}
	m.window.Position = m.initialGeom
	m.reset()
}

// Release commits the drag's current geometry (already applied by the
// most recent Motion) and returns to idle.
func (m *Machine) Release() {
	m.reset()
}

// CancelIfTarget cancels the active drag if w is its target; used by
// UNMAP_NOTIFY handling (spec §4.6 "unmap of the target window").
func (m *Machine) CancelIfTarget(w *window.Window) {
	if m.active && m.window == w {
		m.Cancel()
	}
}

func (m *Machine) reset() {
	m.active = false
	m.window = nil
}

// Motion computes the new geometry from the pointer's current position
// and applies it (clamped) to the target window. It is a no-op if no
// drag is active.
func (m *Machine) Motion(pointerX, pointerY int32, monitors *monitor.Set) {
	if !m.active {
		return
	}
	dx := pointerX - m.anchorX
	dy := pointerY - m.anchorY

	rect := m.initialGeom
	switch m.direction {
	case Move:
		rect.X += dx
		rect.Y += dy
	case North:
		rect.Y, rect.Height = adjustTop(rect, dy)
	case South:
		rect.Height = adjustHeight(rect.Height, dy)
	case West:
		rect.X, rect.Width = adjustLeft(rect, dx)
	case East:
		rect.Width = adjustWidth(rect.Width, dx)
	case NorthWest:
		rect.Y, rect.Height = adjustTop(rect, dy)
		rect.X, rect.Width = adjustLeft(rect, dx)
	case NorthEast:
		rect.Y, rect.Height = adjustTop(rect, dy)
		rect.Width = adjustWidth(rect.Width, dx)
	case SouthWest:
		rect.Height = adjustHeight(rect.Height, dy)
		rect.X, rect.Width = adjustLeft(rect, dx)
	case SouthEast:
		rect.Height = adjustHeight(rect.Height, dy)
		rect.Width = adjustWidth(rect.Width, dx)
	}

	SetWindowSize(m.window, rect, monitors)
}

func adjustTop(rect geom.Rect, dy int32) (int32, uint32) {
	return rect.Y + dy, adjustHeight(rect.Height, -dy)
}

func adjustLeft(rect geom.Rect, dx int32) (int32, uint32) {
	return rect.X + dx, adjustWidth(rect.Width, -dx)
}

func adjustHeight(h uint32, delta int32) uint32 {
	v := int32(h) + delta
	if v < 0 {
		v = 0
	}
	return uint32(v)
}

func adjustWidth(w uint32, delta int32) uint32 {
	v := int32(w) + delta
	if v < 0 {
		v = 0
	}
	return uint32(v)
}

// SetWindowSize is set_window_size (spec §4.6): clamps width/height to
// WINDOW_MINIMUM_SIZE..WINDOW_MAXIMUM_SIZE and nudges the position so
// the rectangle keeps at least MinimumVisibleSize pixels of overlap
// with some monitor, then applies the result to w.
func SetWindowSize(w *window.Window, rect geom.Rect, monitors *monitor.Set) geom.Rect {
	width, height := window.ClampSize(rect.Width, rect.Height)
	rect.Width, rect.Height = width, height
	rect = clampVisible(rect, monitors)
	w.Position = rect
	return rect
}

// clampVisible nudges rect's position, if necessary, so it overlaps its
// nearest monitor by at least MinimumVisibleSize pixels on each axis.
func clampVisible(rect geom.Rect, monitors *monitor.Set) geom.Rect {
	if monitors == nil {
		return rect
	}
	m := monitors.Containing(rect)
	if m == nil {
		return rect
	}
	minV := int32(MinimumVisibleSize)
	if rect.Right() < m.Rect.X+minV {
		rect.X = m.Rect.X + minV - int32(rect.Width)
	} else if rect.X > m.Rect.Right()-minV {
		rect.X = m.Rect.Right() - minV
	}
	if rect.Bottom() < m.Rect.Y+minV {
		rect.Y = m.Rect.Y + minV - int32(rect.Height)
	} else if rect.Y > m.Rect.Bottom()-minV {
		rect.Y = m.Rect.Bottom() - minV
	}
	return rect
}
