package monitor

import (
	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/window"
)

// Incoming describes one RandR-reported output, before it is matched
// against the current monitor set.
type Incoming struct {
	Name    string
	Rect    geom.Rect
	Primary bool
}

// MergeResult reports the monitors whose frame trees could not be
// adopted by any incoming output and were abandoned.
type MergeResult struct {
	Set             *Set
	AbandonedRoots  []*frame.Frame
}

// Merge runs the monitor-merge algorithm of spec §4.5: it produces a
// new Set from incoming RandR output snapshot, adopting root frames by
// name where possible, transplanting orphaned frames onto newly
// connected outputs, and abandoning (pushing to the taken-list) any
// frame that finds no home. screenRect is used only to synthesize the
// single virtual monitor when incoming is empty.
func Merge(old *Set, incoming []Incoming, screenRect geom.Rect, registry *window.Registry, borderWidth uint32, gaps frame.Gaps) MergeResult {
	if len(incoming) == 0 {
		incoming = []Incoming{{Name: VirtualName, Rect: screenRect, Primary: true}}
	}

	next := make([]*Monitor, len(incoming))
	for i, in := range incoming {
		next[i] = &Monitor{Name: in.Name, Rect: in.Rect, Primary: in.Primary}
	}

	adopted := make(map[string]bool, len(next))
	for _, nm := range next {
		if old != nil {
			if om := old.ByName(nm.Name); om != nil {
				nm.Root = om.Root
				om.Root = nil
				adopted[nm.Name] = true
			}
		}
	}

	var freeIdx []int
	for i, nm := range next {
		if nm.Root == nil {
			freeIdx = append(freeIdx, i)
		}
	}

	var abandoned []*frame.Frame
	if old != nil {
		for _, om := range old.Monitors() {
			if om.Root == nil {
				continue // already adopted above
			}
			if len(freeIdx) > 0 {
				i := freeIdx[0]
				freeIdx = freeIdx[1:]
				target := next[i]
				target.Root = om.Root
				frame.Resize(target.Root, target.Rect, borderWidth, gaps)
				om.Root = nil
			} else {
				evictSubtree(om.Root, registry)
				abandoned = append(abandoned, om.Root)
				om.Root = nil
			}
		}
	}

	for _, i := range freeIdx {
		nm := next[i]
		nm.Root = frame.NewRoot(nm.Rect)
	}

	newSet := NewSet(next)
	ReconfigureFrameSizes(newSet, registry, borderWidth, gaps)

	return MergeResult{Set: newSet, AbandonedRoots: abandoned}
}

// evictSubtree walks f's subtree, pushing every contained window onto
// the taken-list and marking it hidden, then lets the frame nodes
// themselves be released by the garbage collector (spec: "abandon the
// frame ... then release the tree").
func evictSubtree(f *frame.Frame, registry *window.Registry) {
	if f == nil {
		return
	}
	if f.IsLeaf() {
		if w := f.Window; w != nil {
			w.IsVisible = false
			registry.PushTaken(w)
			f.Window = nil
		}
		return
	}
	evictSubtree(f.Left, registry)
	evictSubtree(f.Right, registry)
}

// ReconfigureFrameSizes implements reconfigure_monitor_frame_sizes:
// zero all struts, accumulate every visible window's strut onto the
// monitor containing its rectangle, then resize each monitor's root
// frame to its (now known) work area.
func ReconfigureFrameSizes(s *Set, registry *window.Registry, borderWidth uint32, gaps frame.Gaps) {
	if s == nil {
		return
	}
	for _, m := range s.Monitors() {
		m.Struts = geom.Extents{}
	}
	for w := registry.First(); w != nil; w = w.Next() {
		if !w.IsVisible || w.Properties.Strut.IsEmpty() {
			continue
		}
		m := s.Containing(w.Position)
		if m == nil {
			continue
		}
		m.Struts = addExtents(m.Struts, w.Properties.Strut.Reserved)
	}
	for _, m := range s.Monitors() {
		frame.Resize(m.Root, m.WorkArea(), borderWidth, gaps)
	}
}

func addExtents(a, b geom.Extents) geom.Extents {
	return geom.Extents{
		Left:   a.Left + b.Left,
		Top:    a.Top + b.Top,
		Right:  a.Right + b.Right,
		Bottom: a.Bottom + b.Bottom,
	}
}
