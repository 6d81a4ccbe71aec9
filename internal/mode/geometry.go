package mode

import (
	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/monitor"
	"github.com/JulianBMW/fensterchef/internal/window"
)

// setWindowSize clamps and applies a new rectangle to w.
func setWindowSize(w *window.Window, rect geom.Rect) {
	width, height := window.ClampSize(rect.Width, rect.Height)
	w.Position = geom.Rect{X: rect.X, Y: rect.Y, Width: width, Height: height}
}

// ConfigurePopupSize implements configure_popup_size: reuse the saved
// popup geometry if present, otherwise derive one from size hints
// (preferred size, min-clamp, max-clamp, centered-at-2/3 fallback),
// apply gravity, and remember the result as the new saved geometry.
func ConfigurePopupSize(w *window.Window, monitors *monitor.Set) {
	m := monitors.Containing(w.Position)
	if m == nil {
		return
	}
	hints := w.Properties.SizeHints

	if w.PopupPosition.Width == 0 {
		var width, height uint32
		if hints.HasSize {
			width, height = hints.Width, hints.Height
		} else {
			width = m.Rect.Width * 2 / 3
			height = m.Rect.Height * 2 / 3
		}
		if hints.HasMinSize {
			if hints.MinWidth > width {
				width = hints.MinWidth
			}
			if hints.MinHeight > height {
				height = hints.MinHeight
			}
		}
		if hints.HasMaxSize {
			if hints.MaxWidth < width {
				width = hints.MaxWidth
			}
			if hints.MaxHeight < height {
				height = hints.MaxHeight
			}
		}
		var x, y int32
		if hints.HasPosition {
			x, y = hints.X, hints.Y
		} else {
			x = m.Rect.X + (int32(m.Rect.Width)-int32(width))/2
			y = m.Rect.Y + (int32(m.Rect.Height)-int32(height))/2
		}
		w.PopupPosition = geom.Rect{X: x, Y: y, Width: width, Height: height}
	}

	x, y := w.PopupPosition.X, w.PopupPosition.Y
	width, height := w.PopupPosition.Width, w.PopupPosition.Height
	if hints.HasGravity {
		x, y = geom.AdjustForGravity(hints.Gravity, x, y, width, height, width, height)
	}
	setWindowSize(w, geom.Rect{X: x, Y: y, Width: width, Height: height})
}

// ConfigureFullscreenSize implements configure_fullscreen_size: use
// _NET_WM_FULLSCREEN_MONITORS when non-degenerate, else the rectangle
// of the monitor containing the window's current center.
func ConfigureFullscreenSize(w *window.Window, monitors *monitor.Set) {
	fm := w.Properties.FullscreenMonitors
	if fm.Valid && fm.Top != fm.Bottom && fm.Left != fm.Right {
		setWindowSize(w, geom.Rect{
			X:      fm.Left,
			Y:      fm.Top,
			Width:  uint32(fm.Right - fm.Left),
			Height: uint32(fm.Bottom - fm.Top),
		})
		return
	}
	m := monitors.Containing(w.Position)
	if m == nil {
		return
	}
	setWindowSize(w, m.Rect)
}

// ConfigureDockSize implements configure_dock_size: use size hints if
// given, else derive a rectangle from the first non-zero reserved
// strut side, falling back to 64x32.
func ConfigureDockSize(w *window.Window, monitors *monitor.Set) {
	hints := w.Properties.SizeHints
	var x, y int32
	var width, height uint32
	if hints.HasSize {
		width, height = hints.Width, hints.Height
	}
	if hints.HasPosition {
		x, y = hints.X, hints.Y
	} else {
		x, y = w.Position.X, w.Position.Y
	}

	m := monitors.AtPoint(x, y)
	if m == nil {
		m = monitors.Primary()
	}

	if width == 0 || height == 0 {
		strut := w.Properties.Strut
		if side, ok := strut.FirstNonZeroSide(); ok && m != nil {
			switch side {
			case geom.SideLeft:
				x = m.Rect.X
				y = strut.LeftStartY
				width = strut.Reserved.Left
				height = uint32(strut.LeftEndY-strut.LeftStartY) + 1
			case geom.SideTop:
				x = strut.TopStartX
				y = m.Rect.Y
				width = uint32(strut.TopEndX-strut.TopStartX) + 1
				height = strut.Reserved.Top
			case geom.SideRight:
				x = m.Rect.X + int32(m.Rect.Width) - int32(strut.Reserved.Right)
				y = strut.RightStartY
				width = strut.Reserved.Right
				height = uint32(strut.RightEndY-strut.RightStartY) + 1
			case geom.SideBottom:
				x = strut.BottomStartX
				y = m.Rect.Y + int32(m.Rect.Height) - int32(strut.Reserved.Bottom)
				width = uint32(strut.BottomEndX-strut.BottomStartX) + 1
				height = strut.Reserved.Bottom
			}
		} else {
			width, height = 64, 32
		}
	}
	setWindowSize(w, geom.Rect{X: x, Y: y, Width: width, Height: height})
}
