// Package frame implements the per-monitor binary frame tree: split,
// remove, resize, point lookup and gap computation (spec §4.3).
package frame

import (
	"errors"

	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/window"
)

// SplitDirection names the axis an internal frame node divides along.
type SplitDirection uint8

const (
	// Horizontal divides a frame into a left and a right child.
	Horizontal SplitDirection = iota
	// Vertical divides a frame into a top and a bottom child.
	Vertical
)

// ErrRemoveRoot is returned by Remove when asked to remove a monitor's
// root frame, which has no parent to collapse into.
var ErrRemoveRoot = errors.New("frame: cannot remove the root frame")

// Frame is a node of the per-monitor binary tree: either an internal
// node with exactly two children, or a leaf holding at most one
// tiling window (spec §3 "Frame").
type Frame struct {
	Rect geom.Rect

	Parent *Frame

	Left, Right    *Frame
	SplitDirection SplitDirection

	Window *window.Window
}

// Geometry implements window.FrameRef.
func (f *Frame) Geometry() geom.Rect { return f.Rect }

// IsLeaf reports whether f has no children.
func (f *Frame) IsLeaf() bool { return f.Left == nil && f.Right == nil }

// Root walks up to the frame with no parent: the monitor's root frame.
func (f *Frame) Root() *Frame {
	cur := f
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// NewRoot creates a fresh leaf frame covering rect, with no parent:
// suitable as a new monitor's root frame.
func NewRoot(rect geom.Rect) *Frame {
	return &Frame{Rect: rect}
}

// Contains reports whether (x, y) lies within f's rectangle, using the
// corrected intent of fensterchef's is_point_in_frame (spec §9).
func (f *Frame) Contains(x, y int32) bool { return f.Rect.Contains(x, y) }

// PointLookup descends from root to the leaf containing (x, y), or nil
// if the point is outside root's rectangle (or, in a malformed tree,
// inside neither child — "shouldn't happen for well-formed trees").
func PointLookup(root *Frame, x, y int32) *Frame {
	if root == nil || !root.Contains(x, y) {
		return nil
	}
	cur := root
	for !cur.IsLeaf() {
		switch {
		case cur.Left.Contains(x, y):
			cur = cur.Left
		case cur.Right.Contains(x, y):
			cur = cur.Right
		default:
			return nil
		}
	}
	return cur
}

// Gaps is the inner/outer extents configuration gap computation consults.
type Gaps struct {
	Inner geom.Extents
	Outer geom.Extents
}

// gapExtents computes the per-leaf gap, per spec §4.3: each side uses
// outer if that edge touches the root's edge, else inner.
func gapExtents(leaf, root geom.Rect, gaps Gaps) geom.Extents {
	var e geom.Extents
	if leaf.X == root.X {
		e.Left = gaps.Outer.Left
	} else {
		e.Left = gaps.Inner.Left
	}
	if leaf.Y == root.Y {
		e.Top = gaps.Outer.Top
	} else {
		e.Top = gaps.Inner.Top
	}
	if leaf.Right() == root.Right() {
		e.Right = gaps.Outer.Right
	} else {
		e.Right = gaps.Inner.Right
	}
	if leaf.Bottom() == root.Bottom() {
		e.Bottom = gaps.Outer.Bottom
	} else {
		e.Bottom = gaps.Inner.Bottom
	}
	return e
}

func safeSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}

// Reload recomputes the geometry of the window contained in leaf f (if
// any), applying gaps and border width. It is a no-op for internal
// frames and empty leaves.
func (f *Frame) Reload(borderWidth uint32, gaps Gaps) {
	if !f.IsLeaf() || f.Window == nil {
		return
	}
	ext := gapExtents(f.Rect, f.Root().Rect, gaps)
	inner := f.Rect.Shrink(ext)
	w := safeSub(inner.Width, borderWidth*2)
	h := safeSub(inner.Height, borderWidth*2)
	f.Window.Position = geom.Rect{X: inner.X, Y: inner.Y, Width: w, Height: h}
}

// Split turns leaf f into an internal node with two new leaf children
// along dir, moving f's window (if any) into the left/top child.
func Split(f *Frame, dir SplitDirection, borderWidth uint32, gaps Gaps) error {
	if !f.IsLeaf() {
		return errors.New("frame: split target must be a leaf")
	}
	left := &Frame{Parent: f, Window: f.Window}
	right := &Frame{Parent: f}
	if left.Window != nil {
		left.Window.Frame = left
	}
	f.Window = nil
	f.Left = left
	f.Right = right
	f.SplitDirection = dir
	Resize(f, f.Rect, borderWidth, gaps)
	return nil
}

// splitChildSizes partitions total into two sizes along the split
// axis, preserving the previous ratio between oldA and oldB; defaults
// to an even split if either child had zero extent.
func splitChildSizes(oldA, oldB, total uint32) (a, b uint32) {
	sum := oldA + oldB
	if sum == 0 {
		a = total / 2
		return a, total - a
	}
	a = uint32((uint64(oldA) * uint64(total)) / uint64(sum))
	return a, total - a
}

// Resize updates f's rectangle to rect and recurses: internal nodes
// repartition their children preserving the previous size ratio along
// the split axis; leaves reload their contained window.
func Resize(f *Frame, rect geom.Rect, borderWidth uint32, gaps Gaps) {
	f.Rect = rect
	if f.IsLeaf() {
		f.Reload(borderWidth, gaps)
		return
	}
	switch f.SplitDirection {
	case Horizontal:
		lw, rw := splitChildSizes(f.Left.Rect.Width, f.Right.Rect.Width, rect.Width)
		Resize(f.Left, geom.Rect{X: rect.X, Y: rect.Y, Width: lw, Height: rect.Height}, borderWidth, gaps)
		Resize(f.Right, geom.Rect{X: rect.X + int32(lw), Y: rect.Y, Width: rw, Height: rect.Height}, borderWidth, gaps)
	case Vertical:
		th, bh := splitChildSizes(f.Left.Rect.Height, f.Right.Rect.Height, rect.Height)
		Resize(f.Left, geom.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: th}, borderWidth, gaps)
		Resize(f.Right, geom.Rect{X: rect.X, Y: rect.Y + int32(th), Width: rect.Width, Height: bh}, borderWidth, gaps)
	}
}

// Replace transplants src's contents (children or window) into f,
// clearing src. Used by Remove and by the monitor-merge path.
func Replace(f, src *Frame) {
	f.Left = src.Left
	f.Right = src.Right
	f.SplitDirection = src.SplitDirection
	f.Window = src.Window
	if f.Window != nil {
		f.Window.Frame = f
	}
	if f.Left != nil {
		f.Left.Parent = f
	}
	if f.Right != nil {
		f.Right.Parent = f
	}
	src.Left = nil
	src.Right = nil
	src.Window = nil
}

// Remove collapses f's parent by transplanting f's sibling's content
// into the parent, then resizing. If f held a tiling window, it is
// handed to onEvicted (typically pushing it onto the taken-list)
// rather than destroyed. Returns ErrRemoveRoot if f is a monitor root.
func Remove(f *Frame, borderWidth uint32, gaps Gaps, onEvicted func(*window.Window)) error {
	parent := f.Parent
	if parent == nil {
		return ErrRemoveRoot
	}
	var sibling *Frame
	if parent.Left == f {
		sibling = parent.Right
	} else {
		sibling = parent.Left
	}

	if f.Window != nil && onEvicted != nil {
		f.Window.Frame = nil
		onEvicted(f.Window)
	}

	Replace(parent, sibling)
	Resize(parent, parent.Rect, borderWidth, gaps)
	return nil
}
