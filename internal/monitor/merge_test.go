package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/window"
)

var noGaps = frame.Gaps{}

func twoMonitorSet(t *testing.T, reg *window.Registry) *Set {
	t.Helper()
	a := &Monitor{Name: "A", Rect: geom.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, Primary: true}
	a.Root = frame.NewRoot(a.Rect)
	require.NoError(t, frame.Split(a.Root, frame.Horizontal, 0, noGaps))

	b := &Monitor{Name: "B", Rect: geom.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}}
	b.Root = frame.NewRoot(b.Rect)
	require.NoError(t, frame.Split(b.Root, frame.Vertical, 0, noGaps))
	wB := window.New(2)
	b.Root.Left.Window = wB
	frame.Resize(b.Root, b.Root.Rect, 0, noGaps)
	reg.Register(wB)
	reg.Show(wB)

	return NewSet([]*Monitor{a, b})
}

// TestMonitorHotplugPreservesLayout is scenario S4 from spec §8.
func TestMonitorHotplugPreservesLayout(t *testing.T) {
	reg := window.NewRegistry()
	set := twoMonitorSet(t, reg)
	aRootBefore := set.ByName("A").Root

	// RandR now reports only "A".
	res := Merge(set, []Incoming{{Name: "A", Rect: geom.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, Primary: true}},
		geom.Rect{Width: 1920, Height: 1080}, reg, 0, noGaps)

	assert.Equal(t, aRootBefore, res.Set.ByName("A").Root, "A's tree must be unchanged")
	require.Len(t, res.AbandonedRoots, 1)
	assert.Equal(t, window.XID(2), reg.TakenHead().XID, "B's window must be in the taken list")

	// Now RandR reports "A" and a new "C".
	res2 := Merge(res.Set, []Incoming{
		{Name: "A", Rect: geom.Rect{X: 0, Y: 0, Width: 1920, Height: 1080}, Primary: true},
		{Name: "C", Rect: geom.Rect{X: 1920, Y: 0, Width: 1920, Height: 1080}},
	}, geom.Rect{}, reg, 0, noGaps)

	assert.Equal(t, aRootBefore, res2.Set.ByName("A").Root)
	assert.Empty(t, res2.AbandonedRoots)
	assert.NotNil(t, res2.Set.ByName("C").Root)
}

func TestMergeEmptySynthesizesVirtual(t *testing.T) {
	reg := window.NewRegistry()
	res := Merge(nil, nil, geom.Rect{Width: 1024, Height: 768}, reg, 0, noGaps)
	require.Len(t, res.Set.Monitors(), 1)
	assert.Equal(t, VirtualName, res.Set.Monitors()[0].Name)
	assert.True(t, res.Set.Primary().Primary)
}

func TestMergeNameSetInvariant(t *testing.T) {
	reg := window.NewRegistry()
	set := twoMonitorSet(t, reg)
	incoming := []Incoming{
		{Name: "A", Rect: geom.Rect{Width: 1920, Height: 1080}, Primary: true},
		{Name: "B", Rect: geom.Rect{X: 1920, Width: 1920, Height: 1080}},
	}
	res := Merge(set, incoming, geom.Rect{}, reg, 0, noGaps)
	names := map[string]bool{}
	for _, m := range res.Set.Monitors() {
		names[m.Name] = true
	}
	assert.Equal(t, map[string]bool{"A": true, "B": true}, names)
}

func TestReconfigureFrameSizesAccountsForStruts(t *testing.T) {
	reg := window.NewRegistry()
	m := &Monitor{Name: "A", Rect: geom.Rect{Width: 800, Height: 600}}
	m.Root = frame.NewRoot(m.Rect)
	set := NewSet([]*Monitor{m})

	dock := window.New(1)
	dock.Position = geom.Rect{X: 0, Y: 0, Width: 800, Height: 30}
	dock.Properties.Strut.Reserved.Top = 30
	dock.Mode = window.ModeDock
	reg.Register(dock)
	reg.Show(dock)

	ReconfigureFrameSizes(set, reg, 0, noGaps)
	assert.Equal(t, uint32(30), m.Struts.Top)
	assert.Equal(t, geom.Rect{X: 0, Y: 30, Width: 800, Height: 570}, m.Root.Rect)
}
