package action

import (
	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/geom"
)

// bumpFrameEdge grows (amount > 0) or shrinks (amount < 0) f along the
// named edge by reassigning size to f and its immediate sibling,
// clamped so neither collapses below minSize. It only acts when the
// edge in question is the shared boundary with f's sibling under f's
// parent split; other edges (monitor/frame-tree boundaries) are a
// no-op, matching the spec's "resizing the sibling accordingly".
func bumpFrameEdge(f *frame.Frame, side geom.Side, amount int32, minSize uint32, borderWidth uint32, gaps frame.Gaps) bool {
	p := f.Parent
	if p == nil {
		return false
	}
	switch {
	case p.SplitDirection == frame.Horizontal && side == geom.SideRight && p.Left == f:
		return resizeSplitAxis(p, true, amount, minSize, true, borderWidth, gaps)
	case p.SplitDirection == frame.Horizontal && side == geom.SideLeft && p.Right == f:
		return resizeSplitAxis(p, false, amount, minSize, true, borderWidth, gaps)
	case p.SplitDirection == frame.Vertical && side == geom.SideBottom && p.Left == f:
		return resizeSplitAxis(p, true, amount, minSize, false, borderWidth, gaps)
	case p.SplitDirection == frame.Vertical && side == geom.SideTop && p.Right == f:
		return resizeSplitAxis(p, false, amount, minSize, false, borderWidth, gaps)
	}
	return false
}

// resizeSplitAxis repartitions p's two children along one axis. It
// writes the desired new sizes directly into the children's rectangles
// and then calls frame.Resize on p, which reads those as the "old"
// ratio to preserve when partitioning p.Rect — reusing Resize's
// ratio-preserving partition to land on exactly the requested sizes.
func resizeSplitAxis(p *frame.Frame, growLeft bool, amount int32, minSize uint32, widthAxis bool, borderWidth uint32, gaps frame.Gaps) bool {
	var total, leftCur, rightCur uint32
	if widthAxis {
		total, leftCur, rightCur = p.Rect.Width, p.Left.Rect.Width, p.Right.Rect.Width
	} else {
		total, leftCur, rightCur = p.Rect.Height, p.Left.Rect.Height, p.Right.Rect.Height
	}

	var newLeft, newRight int32
	if growLeft {
		newLeft = int32(leftCur) + amount
		newRight = int32(total) - newLeft
	} else {
		newRight = int32(rightCur) + amount
		newLeft = int32(total) - newRight
	}
	if newLeft < int32(minSize) || newRight < int32(minSize) {
		return false
	}

	if widthAxis {
		p.Left.Rect.Width = uint32(newLeft)
		p.Right.Rect.Width = uint32(newRight)
	} else {
		p.Left.Rect.Height = uint32(newLeft)
		p.Right.Rect.Height = uint32(newRight)
	}
	frame.Resize(p, p.Rect, borderWidth, gaps)
	return true
}

// growRectEdges applies a (left, top, right, bottom) edge bump directly
// to rect, with an underflow guard so width/height never go negative.
func growRectEdges(rect geom.Rect, left, top, right, bottom int32) geom.Rect {
	rect.X -= left
	rect.Y -= top
	w := int32(rect.Width) + left + right
	h := int32(rect.Height) + top + bottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	rect.Width = uint32(w)
	rect.Height = uint32(h)
	return rect
}
