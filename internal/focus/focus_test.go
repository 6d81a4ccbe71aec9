package focus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/window"
)

func newVisible(reg *window.Registry, xid window.XID) *window.Window {
	w := window.New(xid)
	reg.Register(w)
	reg.Show(w)
	return w
}

// TestSetFocusWindowInvariant is invariant 7: after SetFocusWindow(w),
// the registry's focus head is w.
func TestSetFocusWindowInvariant(t *testing.T) {
	reg := window.NewRegistry()
	a := newVisible(reg, 1)
	b := newVisible(reg, 2)

	m := NewManager(reg, nil)
	var focused *window.Window
	m.OnFocusWindow = func(w *window.Window) { focused = w }

	m.SetFocusWindow(b)
	assert.Equal(t, b, reg.FocusHead())
	assert.Equal(t, b, focused)

	m.SetFocusWindow(a)
	assert.Equal(t, a, reg.FocusHead())
	assert.Equal(t, a, focused)
}

func TestSetFocusFrameFocusesContainedWindow(t *testing.T) {
	reg := window.NewRegistry()
	root := frame.NewRoot(geom.Rect{Width: 800, Height: 600})
	w := newVisible(reg, 1)
	w.Mode = window.ModeTiling
	root.Window = w
	w.Frame = root

	m := NewManager(reg, root)
	var focused *window.Window
	m.OnFocusWindow = func(fw *window.Window) { focused = fw }

	m.SetFocusFrame(root)
	assert.Equal(t, root, m.FocusFrame)
	assert.Equal(t, w, focused)
	assert.Equal(t, w, reg.FocusHead())
}

func TestSetFocusWindowWithFrameSelectsContainingFrame(t *testing.T) {
	reg := window.NewRegistry()
	root := frame.NewRoot(geom.Rect{Width: 800, Height: 600})
	require.NoError(t, frame.Split(root, frame.Horizontal, 0, frame.Gaps{}))

	w := newVisible(reg, 1)
	w.Mode = window.ModeTiling
	root.Left.Window = w
	w.Frame = root.Left

	m := NewManager(reg, root)
	m.SetFocusWindowWithFrame(w)
	assert.Equal(t, root.Left, m.FocusFrame)
	assert.Equal(t, w, reg.FocusHead())
}

func TestTraverseFocusMovesUpZOrderAndWraps(t *testing.T) {
	reg := window.NewRegistry()
	a := newVisible(reg, 1)
	b := newVisible(reg, 2)
	c := newVisible(reg, 3)
	// Z-order bottom to top: a, b, c.

	m := NewManager(reg, nil)
	m.SetFocusWindow(a)

	got := m.TraverseFocus()
	assert.Equal(t, b, got, "traverse should move to the next window above in Z-order")

	got = m.TraverseFocus()
	assert.Equal(t, c, got)

	got = m.TraverseFocus()
	assert.Equal(t, a, got, "traverse from the topmost window wraps to the bottom-most visible")
}

func TestTraverseFocusSkipsHiddenWindows(t *testing.T) {
	reg := window.NewRegistry()
	a := newVisible(reg, 1)
	b := newVisible(reg, 2)
	b.Mode = window.ModePopup
	reg.Hide(b)
	c := newVisible(reg, 3)

	m := NewManager(reg, nil)
	m.SetFocusWindow(a)

	got := m.TraverseFocus()
	assert.Equal(t, c, got, "hidden windows must be skipped when traversing Z-order")
}

func TestTraverseFocusChainWalksMRUOrder(t *testing.T) {
	reg := window.NewRegistry()
	a := newVisible(reg, 1)
	b := newVisible(reg, 2)
	c := newVisible(reg, 3)

	m := NewManager(reg, nil)
	m.SetFocusWindow(a)
	assert.Equal(t, a, reg.FocusHead())

	next := m.TraverseFocusChain(1)
	require.NotNil(t, next)
	assert.Equal(t, next, reg.FocusHead())

	prev := m.TraverseFocusChain(-1)
	require.NotNil(t, prev)
	assert.Equal(t, a, prev, "moving back from the newly-focused window returns to the previous focus")
	_ = b
	_ = c
}

func TestFrameAdjacentFindsNeighborAcrossSplit(t *testing.T) {
	root := frame.NewRoot(geom.Rect{Width: 800, Height: 600})
	require.NoError(t, frame.Split(root, frame.Horizontal, 0, frame.Gaps{}))

	got := FrameAdjacent(root, root.Left, Right)
	assert.Equal(t, root.Right, got)

	got = FrameAdjacent(root, root.Right, Left)
	assert.Equal(t, root.Left, got)
}
