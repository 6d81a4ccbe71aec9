package wm

import (
	"github.com/jezek/xgb/xproto"

	"github.com/JulianBMW/fensterchef/internal/action"
	"github.com/JulianBMW/fensterchef/internal/bind"
	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/mode"
	"github.com/JulianBMW/fensterchef/internal/monitor"
	"github.com/JulianBMW/fensterchef/internal/moveresize"
	"github.com/JulianBMW/fensterchef/internal/window"
	"github.com/JulianBMW/fensterchef/internal/x11"
)

// Dispatch routes one drained X event to its handler (spec §6's event
// table). Handlers are synchronous and restore every data-model
// invariant before returning, per spec §4.9/§7: Dispatch itself never
// propagates an error upward.
func (s *WmState) Dispatch(ev x11.Event) {
	if ev.XGBError != nil {
		s.Log.WithError(ev.XGBError).Debug("wm: x11 protocol error")
		return
	}
	switch e := ev.XGBEvent.(type) {
	case xproto.CreateNotifyEvent:
		s.onCreateNotify(e)
	case xproto.MapRequestEvent:
		s.onMapRequest(e)
	case xproto.ConfigureRequestEvent:
		s.onConfigureRequest(e)
	case xproto.ConfigureNotifyEvent:
		s.onConfigureNotify(e)
	case xproto.UnmapNotifyEvent:
		s.onUnmapNotify(e)
	case xproto.DestroyNotifyEvent:
		s.onDestroyNotify(e)
	case xproto.PropertyNotifyEvent:
		s.onPropertyNotify(e)
	case xproto.KeyPressEvent:
		s.onKeyPress(e)
	case xproto.KeyReleaseEvent:
		s.onKeyRelease(e)
	case xproto.ButtonPressEvent:
		s.onButtonPress(e)
	case xproto.MotionNotifyEvent:
		s.onMotionNotify(e)
	case xproto.ButtonReleaseEvent:
		s.onButtonRelease(e)
	case xproto.MappingNotifyEvent:
		s.onMappingNotify(e)
	case xproto.ClientMessageEvent:
		s.onClientMessage(e)
	default:
		if _, ok := x11.IsScreenChangeNotify(ev.XGBEvent); ok {
			s.onScreenChange()
		}
	}
}

// onCreateNotify registers a new Window, unless it's a WM-owned
// utility window (the EWMH check window created by Advertise).
func (s *WmState) onCreateNotify(e xproto.CreateNotifyEvent) {
	if e.OverrideRedirect {
		return
	}
	if s.Registry.ByXID(window.XID(e.Window)) != nil {
		return
	}
	w := window.New(window.XID(e.Window))
	s.Registry.Register(w)
	s.Conn.Track(w)
	if err := s.Conn.SelectClientInput(e.Window); err != nil {
		s.Log.WithError(err).WithField("xid", w.XID).Debug("wm: select client input failed")
	}
}

// onMapRequest shows and focuses the requesting window, classifying
// its mode and deriving its geometry first (spec §4.2).
func (s *WmState) onMapRequest(e xproto.MapRequestEvent) {
	w := s.Registry.ByXID(window.XID(e.Window))
	if w == nil {
		w = window.New(window.XID(e.Window))
		s.Registry.Register(w)
		s.Conn.Track(w)
		if err := s.Conn.SelectClientInput(e.Window); err != nil {
			s.Log.WithError(err).WithField("xid", w.XID).Debug("wm: select client input failed")
		}
	}
	w.Properties = x11.DecodeProperties(s.Conn, e.Window)

	predicted := mode.Predict(w)
	s.Dispatcher.ModeEnv.FocusFrame = s.Focus.FocusFrame
	if !w.WasEverMapped {
		// window.New seeds Mode as ModeTiling, the same value Predict
		// returns for an ordinary top-level window; without forcing a
		// mismatch here Set's "already in that mode" guard would skip
		// the very frame placement that first map needs.
		w.Mode = sentinelUnlike(predicted)
	}
	mode.Set(w, predicted, false, s.Dispatcher.ModeEnv)
	w.WasEverMapped = true

	s.Registry.Show(w)
	if err := s.Conn.MapWindow(e.Window); err != nil {
		s.Log.WithError(err).WithField("xid", w.XID).Warn("wm: map window failed")
	}
	s.syncGeometry(w)
	s.Registry.SetWindowAbove(w)
	if err := s.Conn.Restack(e.Window); err != nil {
		s.Log.WithError(err).WithField("xid", w.XID).Debug("wm: restack failed")
	}

	if w.AcceptsInput() {
		s.Focus.SetFocusWindowWithFrame(w)
	}
	if err := s.publishClientList(); err != nil {
		s.Log.WithError(err).Warn("wm: publish client list failed")
	}
}

// onConfigureRequest proxies the requested configuration verbatim for
// any window the wm isn't actively tiling (spec §6): pre-map and
// popup/fullscreen/dock clients expect their own request honored.
// Tiling windows ignore the request outright — set_window_mode already
// owns their geometry.
func (s *WmState) onConfigureRequest(e xproto.ConfigureRequestEvent) {
	w := s.Registry.ByXID(window.XID(e.Window))
	if w != nil && w.Mode == window.ModeTiling {
		return
	}

	rect := geom.Rect{X: int32(e.X), Y: int32(e.Y), Width: uint32(e.Width), Height: uint32(e.Height)}
	borderWidth := uint32(e.BorderWidth)
	if w != nil {
		if e.ValueMask&xproto.ConfigWindowX == 0 {
			rect.X = w.Position.X
		}
		if e.ValueMask&xproto.ConfigWindowY == 0 {
			rect.Y = w.Position.Y
		}
		if e.ValueMask&xproto.ConfigWindowWidth == 0 {
			rect.Width = w.Position.Width
		}
		if e.ValueMask&xproto.ConfigWindowHeight == 0 {
			rect.Height = w.Position.Height
		}
		w.Position = rect
		w.PopupPosition = rect
		borderWidth = w.BorderWidth
	}
	if err := s.Conn.ConfigureWindow(e.Window, rect, borderWidth); err != nil {
		s.Log.WithError(err).Debug("wm: configure request proxy failed")
	}
}

// onConfigureNotify refreshes the cached geometry for windows the wm
// itself doesn't drive (override-redirect popups resizing themselves
// outside a move/resize drag).
func (s *WmState) onConfigureNotify(e xproto.ConfigureNotifyEvent) {
	w := s.Registry.ByXID(window.XID(e.Window))
	if w == nil || w.Mode == window.ModeTiling {
		return
	}
	w.Position.X = int32(e.X)
	w.Position.Y = int32(e.Y)
	w.Position.Width = uint32(e.Width)
	w.Position.Height = uint32(e.Height)
}

// onUnmapNotify hides the window and cancels an in-progress
// move/resize if it was the target (spec §5 "Cancellation").
func (s *WmState) onUnmapNotify(e xproto.UnmapNotifyEvent) {
	w := s.Registry.ByXID(window.XID(e.Window))
	if w == nil {
		return
	}
	s.MoveResize.CancelIfTarget(w)
	s.Registry.Hide(w)
	if s.Focus.FocusFrame != nil && s.Focus.FocusFrame.Window == w {
		s.Focus.SetFocusFrame(s.Focus.FocusFrame)
	}
	if err := s.publishClientList(); err != nil {
		s.Log.WithError(err).Warn("wm: publish client list failed")
	}
}

// onDestroyNotify unlinks and frees the Window entirely.
func (s *WmState) onDestroyNotify(e xproto.DestroyNotifyEvent) {
	w := s.Registry.ByXID(window.XID(e.Window))
	if w == nil {
		return
	}
	s.MoveResize.CancelIfTarget(w)
	if leaf, ok := w.Frame.(*frame.Frame); ok && leaf != nil {
		leaf.Window = nil
		if s.Config.Tiling.AutoRemoveVoid {
			frame.Remove(leaf, s.Config.Border.Size, s.Config.ModeGaps(), func(evicted *window.Window) {
				s.Registry.Hide(evicted)
			})
		}
	}
	s.Registry.Destroy(w)
	s.Conn.Forget(w.XID)
	if err := s.publishClientList(); err != nil {
		s.Log.WithError(err).Warn("wm: publish client list failed")
	}
}

// onPropertyNotify refreshes the cached property, re-predicts mode,
// and reconfigures monitor frames if the property was strut-related.
func (s *WmState) onPropertyNotify(e xproto.PropertyNotifyEvent) {
	w := s.Registry.ByXID(window.XID(e.Window))
	if w == nil {
		return
	}
	w.Properties = x11.DecodeProperties(s.Conn, e.Window)
	if !w.Properties.Strut.IsEmpty() {
		s.recomputeStruts()
	}
	if !w.IsModeForced {
		predicted := mode.Predict(w)
		s.Dispatcher.ModeEnv.FocusFrame = s.Focus.FocusFrame
		mode.Set(w, predicted, false, s.Dispatcher.ModeEnv)
		s.syncGeometry(w)
	}
}

// onKeyPress resolves the event's keycode back to a keysym, matches
// the binding table against press-flagged bindings, and runs its
// actions (spec §4.8, §6 KEY_PRESS).
func (s *WmState) onKeyPress(e xproto.KeyPressEvent) {
	s.matchKeyEvent(e.Detail, e.State, 0)
}

// onKeyRelease matches the binding table against Release-flagged
// bindings (spec §3 Binding flags), the grabbed key's matching release
// delivery for a binding bound to fire on release rather than press.
func (s *WmState) onKeyRelease(e xproto.KeyReleaseEvent) {
	s.matchKeyEvent(e.Detail, e.State, bind.Release)
}

func (s *WmState) matchKeyEvent(detail xproto.Keycode, state uint16, flags bind.Flags) {
	ignore, _ := s.Config.KeyIgnoreModifiers()
	sym := s.Keymap.KeysymForKeycode(detail)
	if sym == 0 {
		return
	}
	b := bind.Match(s.KeyBindings, sym, bind.Modifiers(state), flags, ignore)
	if b == nil {
		return
	}
	s.runBinding(b)
}

func (s *WmState) runBinding(b *bind.Binding) {
	target := s.Registry.FocusHead()
	for _, a := range b.Actions {
		s.Dispatcher.Do(a, target)
	}
}

// onButtonPress cancels an already-active move/resize drag; otherwise,
// on a popup window, it runs the actions of the matching button
// binding (an INITIATE-MOVE or INITIATE-RESIZE binding starts a drag).
// A press with no matching binding, or on a non-popup window, does
// nothing (spec §6 BUTTON_PRESS).
func (s *WmState) onButtonPress(e xproto.ButtonPressEvent) {
	if s.MoveResize.Active() {
		s.MoveResize.Cancel()
		return
	}
	w := s.Registry.ByXID(window.XID(e.Child))
	if w == nil || w.Mode != window.ModePopup {
		return
	}
	ignore, _ := s.Config.ButtonIgnoreModifiers()
	b := bind.Match(s.ButtonBindings, uint32(e.Detail), bind.Modifiers(e.State), 0, ignore)
	if b == nil {
		return
	}
	s.Focus.SetFocusWindowWithFrame(w)
	for _, a := range b.Actions {
		s.Dispatcher.Do(a, w)
	}
}

// onMotionNotify drives an active move/resize drag.
func (s *WmState) onMotionNotify(e xproto.MotionNotifyEvent) {
	if !s.MoveResize.Active() {
		return
	}
	s.MoveResize.Motion(int32(e.RootX), int32(e.RootY), s.Monitors)
	if w := s.MoveResize.Window(); w != nil {
		s.syncGeometry(w)
	}
}

// onButtonRelease ends the active move/resize drag.
func (s *WmState) onButtonRelease(e xproto.ButtonReleaseEvent) {
	if s.MoveResize.Active() {
		s.MoveResize.Release()
	}
}

// onMappingNotify refreshes the keymap and regrabs keys (spec §6).
func (s *WmState) onMappingNotify(e xproto.MappingNotifyEvent) {
	s.Keymap.Refresh()
	if err := s.refreshGrabs(); err != nil {
		s.Log.WithError(err).Warn("wm: regrab after mapping change failed")
	}
}

// onScreenChange re-runs the monitor merge after a RandR screen
// change notification.
func (s *WmState) onScreenChange() {
	incoming, err := s.Conn.QueryMonitors()
	if err != nil {
		s.Log.WithError(err).Warn("wm: query monitors failed")
		return
	}
	screenRect := geom.Rect{
		Width:  uint32(s.Conn.XU.Screen().WidthInPixels),
		Height: uint32(s.Conn.XU.Screen().HeightInPixels),
	}
	result := monitor.Merge(s.Monitors, incoming, screenRect, s.Registry, s.Config.Border.Size, s.Config.ModeGaps())
	s.Monitors = result.Set
	s.Dispatcher.Monitors = s.Monitors
	s.Dispatcher.ModeEnv.Monitors = s.Monitors
	for _, root := range result.AbandonedRoots {
		s.Log.WithField("rect", root.Rect).Warn("wm: abandoned monitor root frame on RandR merge")
	}
}

// onClientMessage handles the _NET_CLOSE_WINDOW / _NET_MOVERESIZE_WINDOW
// / _NET_WM_MOVERESIZE client messages (spec §6).
func (s *WmState) onClientMessage(e xproto.ClientMessageEvent) {
	w := s.Registry.ByXID(window.XID(e.Window))
	if w == nil {
		return
	}
	switch s.atomName(e.Type) {
	case "_NET_CLOSE_WINDOW":
		s.Dispatcher.Do(action.Action{Code: action.CloseWindow}, w)
	case "_NET_WM_MOVERESIZE", "_NET_MOVERESIZE_WINDOW":
		s.MoveResize.Start(w, moveresize.Move, w.Position.CenterX(), w.Position.CenterY())
	}
}

// atomName resolves an X atom id to its name, used to distinguish the
// handful of _NET_* client messages the wm acts on (spec §6
// CLIENT_MESSAGE). Unknown atoms resolve to "".
func (s *WmState) atomName(atom xproto.Atom) string {
	reply, err := xproto.GetAtomName(s.Conn.XU.Conn(), atom).Reply()
	if err != nil || reply == nil {
		return ""
	}
	return reply.Name
}

// syncGeometry pushes w's current Position/BorderWidth to the X
// server, the shared tail end of every handler that changes a
// window's geometry (map, property-driven reclassification, an active
// move/resize drag).
func (s *WmState) syncGeometry(w *window.Window) {
	if err := s.Conn.ConfigureWindow(xproto.Window(w.XID), w.Position, w.BorderWidth); err != nil {
		s.Log.WithError(err).WithField("xid", w.XID).Warn("wm: configure window failed")
	}
}

// recomputeStruts re-derives each monitor's accumulated strut from
// every currently visible dock window's cached _NET_WM_STRUT_PARTIAL,
// then reconfigures that monitor's root frame to the new work area
// (spec §6 PROPERTY_NOTIFY "if strut-related, reconfigure monitor
// frames").
func (s *WmState) recomputeStruts() {
	totals := make(map[*monitor.Monitor]geom.Extents)
	for w := s.Registry.First(); w != nil; w = w.Next() {
		if !w.IsVisible || w.Properties.Strut.IsEmpty() {
			continue
		}
		m := s.Monitors.Containing(w.Position)
		if m == nil {
			continue
		}
		cur := totals[m]
		add := w.Properties.Strut.Reserved
		cur.Left += add.Left
		cur.Top += add.Top
		cur.Right += add.Right
		cur.Bottom += add.Bottom
		totals[m] = cur
	}
	for _, m := range s.Monitors.Monitors() {
		m.Struts = totals[m]
		if m.Root != nil {
			frame.Resize(m.Root, m.WorkArea(), s.Config.Border.Size, s.Config.ModeGaps())
			s.syncSubtree(m.Root)
		}
	}
}

func (s *WmState) syncSubtree(f *frame.Frame) {
	if f == nil {
		return
	}
	if f.IsLeaf() {
		s.syncFrame(f, s.Config.Border.Size, s.Config.ModeGaps())
		return
	}
	s.syncSubtree(f.Left)
	s.syncSubtree(f.Right)
}

// sentinelUnlike returns any window.Mode distinct from m, used to force
// mode.Set's transition logic to run on a window's very first
// classification (see onMapRequest).
func sentinelUnlike(m window.Mode) window.Mode {
	if m == window.ModePopup {
		return window.ModeDock
	}
	return window.ModePopup
}
