// Package monitor implements named monitors with position/size/struts
// and the RandR-merge algorithm that migrates frame trees between
// monitor sets without losing layout (spec §3 "Monitor", §4.5).
package monitor

import (
	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/geom"
)

// VirtualName is the synthetic monitor synthesized when RandR reports
// no connected outputs at all.
const VirtualName = "#Virtual"

// Monitor is a named output with position+size+struts+primary flag,
// owning exactly one root frame.
type Monitor struct {
	Name    string
	Rect    geom.Rect
	Struts  geom.Extents
	Primary bool

	Root *frame.Frame
}

// WorkArea is the monitor's rectangle minus its accumulated struts.
func (m *Monitor) WorkArea() geom.Rect { return m.Rect.Shrink(m.Struts) }

// Set is the list of currently connected monitors (spec §3 "Monitor").
// A plain slice stands in for the spec's doubly-linked list: Go's
// garbage collector removes the need for the manual unlink-before-free
// discipline that motivates a linked list in the original C, and
// nothing in §8's testable properties depends on link order beyond the
// name set and per-monitor frame identity, both of which a slice
// preserves just as well.
type Set struct {
	monitors []*Monitor
}

// NewSet wraps a slice of monitors into a Set. The first monitor
// flagged Primary becomes Set.Primary(); if none is flagged, the first
// monitor in the slice is primary (spec §4.5).
func NewSet(monitors []*Monitor) *Set {
	s := &Set{monitors: monitors}
	if len(monitors) > 0 {
		hasPrimary := false
		for _, m := range monitors {
			if m.Primary {
				hasPrimary = true
				break
			}
		}
		if !hasPrimary {
			monitors[0].Primary = true
		}
	}
	return s
}

// Monitors returns the connected monitor list.
func (s *Set) Monitors() []*Monitor {
	if s == nil {
		return nil
	}
	return s.monitors
}

// Primary returns the primary monitor, or nil if the set is empty.
func (s *Set) Primary() *Monitor {
	if s == nil {
		return nil
	}
	for _, m := range s.monitors {
		if m.Primary {
			return m
		}
	}
	if len(s.monitors) > 0 {
		return s.monitors[0]
	}
	return nil
}

// ByName looks up a monitor by exact name.
func (s *Set) ByName(name string) *Monitor {
	if s == nil {
		return nil
	}
	for _, m := range s.monitors {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Containing returns the monitor whose rectangle contains the center
// of rect, falling back to the monitor with the largest overlap, and
// finally to the primary monitor if rect overlaps no monitor at all
// (can't happen with well-formed RandR geometry, but keeps the lookup
// total).
func (s *Set) Containing(rect geom.Rect) *Monitor {
	if s == nil || len(s.monitors) == 0 {
		return nil
	}
	cx, cy := rect.CenterX(), rect.CenterY()
	for _, m := range s.monitors {
		if m.Rect.Contains(cx, cy) {
			return m
		}
	}
	var best *Monitor
	var bestArea int64
	for _, m := range s.monitors {
		area := overlapArea(m.Rect, rect)
		if area > bestArea {
			bestArea = area
			best = m
		}
	}
	if best != nil {
		return best
	}
	return s.Primary()
}

// AtPoint returns the monitor whose rectangle contains (x, y), or nil.
func (s *Set) AtPoint(x, y int32) *Monitor {
	if s == nil {
		return nil
	}
	for _, m := range s.monitors {
		if m.Rect.Contains(x, y) {
			return m
		}
	}
	return nil
}

func overlapArea(a, b geom.Rect) int64 {
	left := a.X
	if b.X > left {
		left = b.X
	}
	top := a.Y
	if b.Y > top {
		top = b.Y
	}
	right := a.Right()
	if b.Right() < right {
		right = b.Right()
	}
	bottom := a.Bottom()
	if b.Bottom() < bottom {
		bottom = b.Bottom()
	}
	if right <= left || bottom <= top {
		return 0
	}
	return int64(right-left) * int64(bottom-top)
}
