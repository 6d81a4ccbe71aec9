package action

import (
	"time"

	"github.com/JulianBMW/fensterchef/internal/focus"
	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/mode"
	"github.com/JulianBMW/fensterchef/internal/monitor"
	"github.com/JulianBMW/fensterchef/internal/moveresize"
	"github.com/JulianBMW/fensterchef/internal/window"
)

// RequestCloseMaxDuration is REQUEST_CLOSE_MAX_DURATION (spec §5): a
// second CLOSE-WINDOW within this long of the first escalates from the
// polite WM_DELETE message to KillClient.
const RequestCloseMaxDuration = 3 * time.Second

// Dispatcher is do_action's collaborators (spec §4.7): the registry,
// monitor set, mode/focus/move-resize managers, and the X11-transport
// hooks (polite close, kill, shell exec, notification) it has no
// business importing directly.
type Dispatcher struct {
	Registry   *window.Registry
	Monitors   *monitor.Set
	ModeEnv    mode.Env
	Focus      *focus.Manager
	MoveResize *moveresize.Machine

	// FocusRoot is the root frame of the monitor the current focus
	// frame belongs to; used by MOVE-UP/LEFT/RIGHT/DOWN's adjacency
	// lookup.
	FocusRoot *frame.Frame

	// RequestClose sends the polite WM_DELETE client message.
	RequestClose func(w *window.Window)
	// KillClient forcibly terminates the client connection.
	KillClient func(w *window.Window)
	// RunDetached spawns cmd without waiting for it.
	RunDetached func(cmd string)
	// RunCaptureLine spawns cmd and returns its first line of output.
	RunCaptureLine func(cmd string) string
	// Notify surfaces a message to the user (spec's SHOW-MESSAGE family).
	Notify func(msg string)

	// ReloadRequested is set by RELOAD-CONFIGURATION; the event loop
	// consumes and clears it between events (spec §4.9).
	ReloadRequested *bool
	// Running is cleared by QUIT.
	Running *bool

	// Now is injectable for deterministic close-escalation tests;
	// the now method falls back to time.Now when it is nil.
	Now func() time.Time
}

func (d *Dispatcher) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Do performs the operation keyed by a.Code against target, per
// do_action (spec §4.7). target may be nil for actions that don't
// require one (e.g. RELOAD-CONFIGURATION, QUIT); such actions ignore it.
func (d *Dispatcher) Do(a Action, target *window.Window) {
	switch a.Code {
	case None:
		// no-op

	case ReloadConfiguration:
		if d.ReloadRequested != nil {
			*d.ReloadRequested = true
		}

	case Quit:
		if d.Running != nil {
			*d.Running = false
		}

	case CloseWindow:
		if target != nil {
			d.closeWindow(target)
		}

	case MinimizeWindow:
		if target != nil {
			d.Registry.Hide(target)
		}

	case FocusWindow:
		if target != nil && d.Focus != nil {
			d.Focus.SetFocusWindowWithFrame(target)
		}

	case InitiateMove:
		if target != nil && d.MoveResize != nil {
			d.MoveResize.Start(target, moveresize.Move, target.Position.CenterX(), target.Position.CenterY())
		}

	case InitiateResize:
		if target != nil && d.MoveResize != nil {
			d.MoveResize.Start(target, moveresize.SouthEast, target.Position.X, target.Position.Y)
		}

	case NextWindow:
		d.scanWindow(target, true)

	case PreviousWindow:
		d.scanWindow(target, false)

	case RemoveFrame:
		if d.Focus != nil && d.Focus.FocusFrame != nil {
			frame.Remove(d.Focus.FocusFrame, d.ModeEnv.Config.BorderSize, d.ModeEnv.Config.Gaps, func(w *window.Window) {
				d.Registry.Hide(w)
			})
		}

	case ToggleTiling:
		if target != nil {
			next := window.ModePopup
			if target.Mode != window.ModeTiling {
				next = window.ModeTiling
			}
			mode.Set(target, next, true, d.ModeEnv)
		}

	case TraverseFocus:
		if d.Focus != nil {
			d.Focus.TraverseFocus()
		}

	case ToggleFullscreen:
		if target != nil {
			if target.Mode == window.ModeFullscreen {
				mode.Set(target, target.PreviousMode, true, d.ModeEnv)
			} else {
				mode.Set(target, window.ModeFullscreen, true, d.ModeEnv)
			}
		}

	case SplitHorizontally:
		d.split(frame.Horizontal)

	case SplitVertically:
		d.split(frame.Vertical)

	case MoveUp:
		d.moveFocus(focus.Up)
	case MoveLeft:
		d.moveFocus(focus.Left)
	case MoveRight:
		d.moveFocus(focus.Right)
	case MoveDown:
		d.moveFocus(focus.Down)

	case ShowWindowList:
		if d.Notify != nil {
			d.Notify(d.windowListText())
		}

	case Run:
		if d.RunDetached != nil {
			d.RunDetached(a.Param.Str)
		}

	case ShowMessage:
		if d.Notify != nil {
			d.Notify(a.Param.Str)
		}

	case ShowMessageRun:
		if d.RunCaptureLine != nil && d.Notify != nil {
			d.Notify(d.RunCaptureLine(a.Param.Str))
		}

	case ResizeBy:
		if target != nil {
			d.resizeBy(target, a.Param.Quad)
		}
	}
}

func (d *Dispatcher) closeWindow(w *window.Window) {
	now := d.now()
	if !w.LastCloseRequest.IsZero() && now.Sub(w.LastCloseRequest) < RequestCloseMaxDuration {
		if d.KillClient != nil {
			d.KillClient(w)
		}
		return
	}
	w.LastCloseRequest = now
	if d.RequestClose != nil {
		d.RequestClose(w)
	}
}

func (d *Dispatcher) scanWindow(start *window.Window, forward bool) {
	if start == nil && d.Focus != nil {
		start = d.Registry.FocusHead()
	}
	if start == nil {
		return
	}
	var next *window.Window
	if forward {
		next = d.Registry.NextTiling(start)
	} else {
		next = d.Registry.PreviousTiling(start)
	}
	if next == nil {
		if d.Notify != nil {
			d.Notify("No other window")
		}
		return
	}
	d.Registry.Show(next)
	if d.Focus != nil {
		d.Focus.SetFocusWindowWithFrame(next)
	}
}

func (d *Dispatcher) split(dir frame.SplitDirection) {
	if d.Focus == nil || d.Focus.FocusFrame == nil {
		return
	}
	frame.Split(d.Focus.FocusFrame, dir, d.ModeEnv.Config.BorderSize, d.ModeEnv.Config.Gaps)
}

func (d *Dispatcher) moveFocus(dir focus.Direction) {
	if d.Focus == nil || d.Focus.FocusFrame == nil || d.FocusRoot == nil {
		return
	}
	if target := focus.FrameAdjacent(d.FocusRoot, d.Focus.FocusFrame, dir); target != nil {
		d.Focus.SetFocusFrame(target)
	}
}

func (d *Dispatcher) resizeBy(target *window.Window, q [4]int32) {
	left, top, right, bottom := q[0], q[1], q[2], q[3]
	if leaf, ok := target.Frame.(*frame.Frame); ok && leaf != nil {
		minSize := uint32(window.MinimumSize)
		border := d.ModeEnv.Config.BorderSize
		gaps := d.ModeEnv.Config.Gaps
		bumpFrameEdge(leaf, geom.SideLeft, left, minSize, border, gaps)
		bumpFrameEdge(leaf, geom.SideTop, top, minSize, border, gaps)
		bumpFrameEdge(leaf, geom.SideRight, right, minSize, border, gaps)
		bumpFrameEdge(leaf, geom.SideBottom, bottom, minSize, border, gaps)
		return
	}
	rect := growRectEdges(target.Position, left, top, right, bottom)
	w, h := window.ClampSize(rect.Width, rect.Height)
	rect.Width, rect.Height = w, h
	target.Position = rect
	target.PopupPosition = rect
}

func (d *Dispatcher) windowListText() string {
	text := ""
	for w := d.Registry.First(); w != nil; w = w.Next() {
		if text != "" {
			text += "\n"
		}
		text += w.Properties.Name
	}
	return text
}
