package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/window"
)

var noGaps = Gaps{}

// TestSplitAndRemoveRoundTrip is scenario S1 from spec §8: one monitor
// 800x600, one tiling window filling the root frame; split
// horizontally, then remove the newly created empty child.
func TestSplitAndRemoveRoundTrip(t *testing.T) {
	root := NewRoot(geom.Rect{X: 0, Y: 0, Width: 800, Height: 600})
	w := window.New(1)
	root.Window = w
	Resize(root, root.Rect, 0, noGaps)

	require.NoError(t, Split(root, Horizontal, 0, noGaps))
	assert.False(t, root.IsLeaf())
	assert.Equal(t, w, root.Left.Window)
	assert.Nil(t, root.Right.Window)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 400, Height: 600}, root.Left.Rect)
	assert.Equal(t, geom.Rect{X: 400, Y: 0, Width: 400, Height: 600}, root.Right.Rect)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 400, Height: 600}, w.Position)

	var evicted *window.Window
	require.NoError(t, Remove(root.Right, 0, noGaps, func(w *window.Window) { evicted = w }))
	assert.Nil(t, evicted, "the removed frame held no window")
	assert.True(t, root.IsLeaf())
	assert.Equal(t, w, root.Window)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, root.Rect)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, Width: 800, Height: 600}, w.Position)
}

func TestRemoveRootFails(t *testing.T) {
	root := NewRoot(geom.Rect{Width: 100, Height: 100})
	err := Remove(root, 0, noGaps, nil)
	assert.ErrorIs(t, err, ErrRemoveRoot)
}

func TestRemoveEvictsWindowToCallback(t *testing.T) {
	root := NewRoot(geom.Rect{Width: 800, Height: 600})
	require.NoError(t, Split(root, Horizontal, 0, noGaps))
	w := window.New(9)
	root.Right.Window = w
	Resize(root, root.Rect, 0, noGaps)

	var evicted *window.Window
	require.NoError(t, Remove(root.Right, 0, noGaps, func(w *window.Window) { evicted = w }))
	assert.Equal(t, w, evicted)
}

func TestPointLookupDescends(t *testing.T) {
	root := NewRoot(geom.Rect{Width: 800, Height: 600})
	require.NoError(t, Split(root, Horizontal, 0, noGaps))
	require.NoError(t, Split(root.Right, Vertical, 0, noGaps))

	assert.Equal(t, root.Left, PointLookup(root, 10, 10))
	assert.Equal(t, root.Right.Left, PointLookup(root, 700, 10))
	assert.Equal(t, root.Right.Right, PointLookup(root, 700, 590))
	assert.Nil(t, PointLookup(root, 900, 10))
}

func TestResizePreservesRatio(t *testing.T) {
	root := NewRoot(geom.Rect{Width: 400, Height: 600})
	require.NoError(t, Split(root, Horizontal, 0, noGaps))
	// Manually skew the ratio: left 100, right 300 out of 400.
	Resize(root.Left, geom.Rect{X: 0, Y: 0, Width: 100, Height: 600}, 0, noGaps)
	Resize(root.Right, geom.Rect{X: 100, Y: 0, Width: 300, Height: 600}, 0, noGaps)

	Resize(root, geom.Rect{Width: 800, Height: 600}, 0, noGaps)
	assert.Equal(t, uint32(200), root.Left.Rect.Width)
	assert.Equal(t, uint32(600), root.Right.Rect.Width)
}

func TestGapComputationOuterVsInner(t *testing.T) {
	root := NewRoot(geom.Rect{Width: 800, Height: 600})
	require.NoError(t, Split(root, Horizontal, 0, noGaps))
	gaps := Gaps{
		Inner: geom.Extents{Left: 4, Top: 4, Right: 4, Bottom: 4},
		Outer: geom.Extents{Left: 10, Top: 10, Right: 10, Bottom: 10},
	}
	w := window.New(1)
	root.Left.Window = w
	Resize(root, root.Rect, 0, gaps)

	// Left frame touches root's left/top/bottom edges (outer) but not
	// its right edge (inner, since it's adjacent to root.Right).
	assert.Equal(t, int32(10), w.Position.X)
	assert.Equal(t, int32(10), w.Position.Y)
	assert.Equal(t, uint32(400-10-4), w.Position.Width)
}

func TestInvariantSubtreePartitionsAfterMutators(t *testing.T) {
	root := NewRoot(geom.Rect{Width: 800, Height: 600})
	require.NoError(t, Split(root, Horizontal, 0, noGaps))
	require.NoError(t, Split(root.Left, Vertical, 0, noGaps))
	assertPartitions(t, root)

	require.NoError(t, Remove(root.Left.Right, 0, noGaps, nil))
	assertPartitions(t, root)
}

// assertPartitions walks the tree summing leaf areas and checks they
// equal the root's area (invariant 3), and invariant 4 (binary-or-leaf).
func assertPartitions(t *testing.T, root *Frame) {
	t.Helper()
	var area uint64
	var walk func(f *Frame)
	walk = func(f *Frame) {
		if f.IsLeaf() {
			area += uint64(f.Rect.Width) * uint64(f.Rect.Height)
			return
		}
		require.NotNil(t, f.Left)
		require.NotNil(t, f.Right)
		walk(f.Left)
		walk(f.Right)
	}
	walk(root)
	assert.Equal(t, uint64(root.Rect.Width)*uint64(root.Rect.Height), area)
}
