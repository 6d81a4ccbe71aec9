// Package geom provides the rectangle, extent and gravity primitives
// shared by the frame tree, monitor set and window-mode classifier.
package geom

// Rect is an axis aligned rectangle in root-window coordinates.
type Rect struct {
	X, Y          int32
	Width, Height uint32
}

// Right and Bottom return the exclusive edge coordinates of r.
func (r Rect) Right() int32  { return r.X + int32(r.Width) }
func (r Rect) Bottom() int32 { return r.Y + int32(r.Height) }

// CenterX and CenterY return the integer center of r.
func (r Rect) CenterX() int32 { return r.X + int32(r.Width)/2 }
func (r Rect) CenterY() int32 { return r.Y + int32(r.Height)/2 }

// Contains reports whether (x, y) lies within r, per the corrected
// intent of fensterchef's is_point_in_frame: x in [X, X+W), y in [Y, Y+H).
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && y >= r.Y && x < r.Right() && y < r.Bottom()
}

// Extents is a four-sided pixel extent, used for gaps, struts and borders.
type Extents struct {
	Left, Top, Right, Bottom uint32
}

// IsZero reports whether every side of e is zero.
func (e Extents) IsZero() bool {
	return e.Left == 0 && e.Top == 0 && e.Right == 0 && e.Bottom == 0
}

// Sum returns (Left+Right, Top+Bottom).
func (e Extents) Sum() (horizontal, vertical uint32) {
	return e.Left + e.Right, e.Top + e.Bottom
}

// Shrink returns r with e subtracted from each side; width/height never
// go negative, they clamp to 0.
func (r Rect) Shrink(e Extents) Rect {
	x := r.X + int32(e.Left)
	y := r.Y + int32(e.Top)
	w, h := r.Width, r.Height
	horiz, vert := e.Sum()
	if horiz > w {
		w = 0
	} else {
		w -= horiz
	}
	if vert > h {
		h = 0
	} else {
		h -= vert
	}
	return Rect{X: x, Y: y, Width: w, Height: h}
}

// Gravity is the ICCCM WM_NORMAL_HINTS win_gravity value: it names the
// anchor point of a window whose position is held fixed when the window
// is resized.
type Gravity uint8

const (
	GravityForget Gravity = iota
	GravityNorthWest
	GravityNorth
	GravityNorthEast
	GravityWest
	GravityCenter
	GravityEast
	GravitySouthWest
	GravitySouth
	GravitySouthEast
	GravityStatic
)

// AdjustForGravity recomputes (x, y) so that the anchor point implied by
// gravity stays fixed when a window's size changes from (oldW, oldH) to
// (newW, newH). Static and Forget leave the position untouched.
func AdjustForGravity(gravity Gravity, x, y int32, oldW, oldH, newW, newH uint32) (int32, int32) {
	dw := int32(newW) - int32(oldW)
	dh := int32(newH) - int32(oldH)
	switch gravity {
	case GravityNorthWest:
		// top-left is the anchor; nothing moves.
	case GravityNorth:
		x -= dw / 2
	case GravityNorthEast:
		x -= dw
	case GravityWest:
		y -= dh / 2
	case GravityCenter:
		x -= dw / 2
		y -= dh / 2
	case GravityEast:
		x -= dw
		y -= dh / 2
	case GravitySouthWest:
		y -= dh
	case GravitySouth:
		x -= dw / 2
		y -= dh
	case GravitySouthEast:
		x -= dw
		y -= dh
	case GravityStatic, GravityForget:
		// the client manages this itself; do not move the window.
	}
	return x, y
}

// Side names a screen edge a strut can reserve space on.
type Side uint8

const (
	SideLeft Side = iota
	SideTop
	SideRight
	SideBottom
)

// Strut is the _NET_WM_STRUT_PARTIAL reservation a dock window requests.
// The *_Start/*_End fields describe the perpendicular span the
// reservation applies to, per EWMH.
type Strut struct {
	Reserved                               Extents
	LeftStartY, LeftEndY                   int32
	RightStartY, RightEndY                 int32
	TopStartX, TopEndX                     int32
	BottomStartX, BottomEndX               int32
}

// IsEmpty reports whether the strut reserves no space on any side.
func (s Strut) IsEmpty() bool { return s.Reserved.IsZero() }

// FirstNonZeroSide returns the first reserved side in left/top/right/bottom
// order, and false if none is reserved. This ordering matches
// configure_dock_size's fallback chain.
func (s Strut) FirstNonZeroSide() (Side, bool) {
	switch {
	case s.Reserved.Left != 0:
		return SideLeft, true
	case s.Reserved.Top != 0:
		return SideTop, true
	case s.Reserved.Right != 0:
		return SideRight, true
	case s.Reserved.Bottom != 0:
		return SideBottom, true
	default:
		return 0, false
	}
}
