// Package window implements the per-window entity and the global
// registry of cross-linked lists described in spec §3/§4.1: the
// ascending-id global list, the cyclic focus chain, the linear Z-order
// and the taken-list of hidden tiling windows.
package window

import (
	"time"

	"github.com/JulianBMW/fensterchef/internal/geom"
)

// XID is the opaque X11 window identifier. The registry never
// interprets it beyond equality/lookup; the wire protocol itself is the
// transport layer's concern (internal/x11), not the core's.
type XID uint32

// ID is the small positive integer fensterchef assigns a window at its
// first show: the smallest value >= 1 not already used by an earlier
// window in the global list.
type ID uint32

// Mode is one of the four window modes the classifier and mode-mutator
// operate over (spec §3, §4.2).
type Mode uint8

const (
	ModeTiling Mode = iota
	ModePopup
	ModeFullscreen
	ModeDock
)

func (m Mode) String() string {
	switch m {
	case ModeTiling:
		return "tiling"
	case ModePopup:
		return "popup"
	case ModeFullscreen:
		return "fullscreen"
	case ModeDock:
		return "dock"
	default:
		return "unknown"
	}
}

// SizeHints mirrors the subset of ICCCM WM_NORMAL_HINTS fensterchef's
// classifier and popup/dock geometry derivation consult.
type SizeHints struct {
	HasPosition bool
	X, Y        int32

	HasSize       bool
	Width, Height uint32

	HasMinSize         bool
	MinWidth, MinHeight uint32

	HasMaxSize         bool
	MaxWidth, MaxHeight uint32

	HasGravity bool
	Gravity    geom.Gravity
}

// MotifHints mirrors the _MOTIF_WM_HINTS decorations flag.
type MotifHints struct {
	HasDecorationsFlag bool
	NoDecorations      bool
}

// FullscreenMonitors is the decoded _NET_WM_FULLSCREEN_MONITORS hint.
type FullscreenMonitors struct {
	Valid                      bool
	Top, Bottom, Left, Right   int32
}

// Properties holds the cached X11 properties the classifier and mode
// geometry functions are pure functions of. The transport layer
// populates this on CREATE_NOTIFY/PROPERTY_NOTIFY; the core never
// queries X directly.
type Properties struct {
	Name, Class        string
	TransientFor       XID
	WindowTypes        []string // e.g. "_NET_WM_WINDOW_TYPE_DOCK"; order as advertised
	States              []string // e.g. "_NET_WM_STATE_FULLSCREEN"
	SizeHints           SizeHints
	Motif               MotifHints
	Strut               geom.Strut
	FullscreenMonitors  FullscreenMonitors
}

// HasWindowType reports whether atom is present in WindowTypes.
func (p *Properties) HasWindowType(atom string) bool {
	for _, t := range p.WindowTypes {
		if t == atom {
			return true
		}
	}
	return false
}

// HasState reports whether atom is present in States.
func (p *Properties) HasState(atom string) bool {
	for _, s := range p.States {
		if s == atom {
			return true
		}
	}
	return false
}

const (
	WindowTypeNormal = "_NET_WM_WINDOW_TYPE_NORMAL"
	WindowTypeDock   = "_NET_WM_WINDOW_TYPE_DOCK"

	StateFullscreen = "_NET_WM_STATE_FULLSCREEN"
)

// Window represents one managed client (spec §3 "Window").
type Window struct {
	XID XID
	Num ID // 0 until assigned at first show

	Properties Properties

	Mode           Mode
	PreviousMode   Mode
	IsModeForced   bool

	IsVisible     bool
	WasEverMapped bool

	Position geom.Rect

	// PopupPosition is the saved floating geometry, preserved across
	// mode transitions (spec §3, scenario S2). Width == 0 means "never
	// had a popup size yet".
	PopupPosition geom.Rect

	LastCloseRequest time.Time

	// BorderWidth is recomputed by set_window_mode on every mode
	// transition (spec §4.2).
	BorderWidth uint32

	// Cross-links. Every one of these is a reference, not ownership
	// (spec §5 "Lifetime rules"): the Window struct itself owns its
	// Properties and nothing else. Go's GC makes the arena+index
	// indirection spec §9 suggests unnecessary for memory safety, but
	// destruction still explicitly nils every inbound link (see
	// Registry.Destroy) so that invariants 1/2/5/6 remain verifiable
	// independent of GC timing.
	nextGlobal *Window

	focusPrev *Window
	focusNext *Window

	aboveZ *Window
	belowZ *Window

	previousTaken *Window

	// Frame is set by internal/frame when the window occupies a tiling
	// leaf; nil otherwise. It is a reference, the frame owns nothing
	// back (mirrors "a window participates in at most one frame").
	Frame FrameRef
}

// FrameRef is satisfied by *frame.Frame; kept as an interface here to
// avoid an import cycle between internal/window and internal/frame
// (the frame tree needs to store *Window, and Window needs to know
// which frame currently holds it, e.g. for RESIZE-BY).
type FrameRef interface {
	// Geometry returns the frame's current rectangle.
	Geometry() geom.Rect
}

// New creates a Window for a freshly observed X id. It is not yet part
// of any registry list; the caller must call Registry.Register.
func New(xid XID) *Window {
	return &Window{XID: xid, Mode: ModeTiling}
}

// AcceptsInput reports whether the window is eligible to receive X
// input focus: it must be visible. (Dock windows are visible but a
// real implementation would also exclude INPUT_HINT=false; that hint
// is not modeled since nothing in this spec reads it.)
func (w *Window) AcceptsInput() bool {
	return w.IsVisible
}

// Size bounds shared by the mode geometry functions (§4.2) and the
// move/resize state machine (§4.6 WINDOW_MINIMUM_SIZE/MAXIMUM_SIZE).
const (
	MinimumSize = 20
	MaximumSize = 1 << 20
)

// ClampSize enforces MinimumSize <= w,h <= MaximumSize.
func ClampSize(w, h uint32) (uint32, uint32) {
	if w < MinimumSize {
		w = MinimumSize
	} else if w > MaximumSize {
		w = MaximumSize
	}
	if h < MinimumSize {
		h = MinimumSize
	} else if h > MaximumSize {
		h = MaximumSize
	}
	return w, h
}
