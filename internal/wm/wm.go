// Package wm is WmState: the event dispatcher that wires every other
// package into the single-threaded main loop spec §4.9/§5 describes.
// It owns nothing the core packages don't already own — it only holds
// the references needed to route one X event into the right core-package
// call and push the result back out through internal/x11.
package wm

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/jezek/xgb/xproto"
	"github.com/sirupsen/logrus"

	"github.com/JulianBMW/fensterchef/internal/action"
	"github.com/JulianBMW/fensterchef/internal/bind"
	"github.com/JulianBMW/fensterchef/internal/config"
	"github.com/JulianBMW/fensterchef/internal/focus"
	"github.com/JulianBMW/fensterchef/internal/frame"
	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/keysym"
	"github.com/JulianBMW/fensterchef/internal/mode"
	"github.com/JulianBMW/fensterchef/internal/monitor"
	"github.com/JulianBMW/fensterchef/internal/moveresize"
	"github.com/JulianBMW/fensterchef/internal/shellexec"
	"github.com/JulianBMW/fensterchef/internal/window"
	"github.com/JulianBMW/fensterchef/internal/x11"
)

// WmState is the assembled window manager (spec §2 overview): every
// core-package collaborator plus the transport connection, reachable
// from the single dispatch goroutine only.
type WmState struct {
	Conn *x11.Conn
	Loop *x11.Loop
	Log  *logrus.Entry

	Registry   *window.Registry
	Monitors   *monitor.Set
	Focus      *focus.Manager
	MoveResize *moveresize.Machine
	Keymap     keysym.Keymap
	Shell      *shellexec.Runner

	Config        *config.Configuration
	KeyBindings   []bind.Binding
	ButtonBindings []bind.Binding
	ConfigPath    string

	Dispatcher *action.Dispatcher

	running         bool
	reloadRequested bool

	// lastNotification is the most recently shown message; cleared when
	// the SIGALRM scheduled by showing it fires (spec §5 "Notifications
	// are hidden by the SIGALRM handler's flag").
	lastNotification string
}

// notifyDuration is how long a notification (SHOW-MESSAGE family)
// stays visible before the scheduled SIGALRM hides it.
const notifyDuration = 3 * time.Second

// New assembles a WmState from an already-open, already-claimed
// connection. Init (which runs loadConfiguration) must be called
// before Run.
func New(conn *x11.Conn, log *logrus.Logger) *WmState {
	registry := window.NewRegistry()
	entry := log.WithField("system", "wm")

	s := &WmState{
		Conn:     conn,
		Log:      entry,
		Registry: registry,
		Shell:    shellexec.New(os.Getenv("SHELL"), entry),
		running:  true,
	}
	return s
}

// Init performs the one-time startup sequence: loads configuration,
// queries the initial RandR monitor layout, loads the keymap, grabs
// keys/buttons, and advertises EWMH support (spec §6 "Exit codes" —
// a failure here is fatal startup per spec §7).
func (s *WmState) Init(configPath string) error {
	s.ConfigPath = configPath

	if err := s.loadConfiguration(); err != nil {
		return fmt.Errorf("wm: init: %w", err)
	}

	if err := s.Conn.InitRandR(); err != nil {
		s.Log.WithError(err).Warn("wm: RandR unavailable, falling back to single virtual monitor")
	}
	incoming, err := s.Conn.QueryMonitors()
	if err != nil || len(incoming) == 0 {
		incoming = nil
	}
	screenRect := geom.Rect{
		Width:  uint32(s.Conn.XU.Screen().WidthInPixels),
		Height: uint32(s.Conn.XU.Screen().HeightInPixels),
	}
	result := monitor.Merge(nil, incoming, screenRect, s.Registry, s.Config.Border.Size, s.Config.ModeGaps())
	s.Monitors = result.Set
	for _, root := range result.AbandonedRoots {
		s.Log.WithField("rect", root.Rect).Warn("wm: abandoned monitor root frame at startup")
	}

	km, err := keysym.LoadKeyMapping(s.Conn.XU)
	if err != nil {
		return fmt.Errorf("wm: init: load key mapping: %w", err)
	}
	s.Keymap = km

	root := s.Monitors.Primary().Root
	s.Focus = focus.NewManager(s.Registry, root)
	s.Focus.OnFocusWindow = func(w *window.Window) {
		target := s.Conn.Root
		if w != nil {
			target = xproto.Window(w.XID)
		}
		if err := s.Conn.SetInputFocus(target, xproto.TimeCurrentTime); err != nil {
			s.Log.WithError(err).Warn("wm: set input focus failed")
		}
	}
	s.Focus.SetFocusFrame(root)
	s.MoveResize = &moveresize.Machine{}

	s.buildDispatcher()

	if err := s.refreshGrabs(); err != nil {
		return fmt.Errorf("wm: init: grab bindings: %w", err)
	}
	if err := s.Conn.Advertise("fensterchef"); err != nil {
		return fmt.Errorf("wm: init: advertise EWMH support: %w", err)
	}
	if err := s.publishClientList(); err != nil {
		s.Log.WithError(err).Warn("wm: failed to publish initial client list")
	}

	return nil
}

func (s *WmState) loadConfiguration() error {
	cfg, keys, buttons, err := config.Load(s.ConfigPath)
	if err != nil {
		if s.Config != nil {
			s.Log.WithError(err).Warn("wm: configuration reload failed, retaining previous configuration")
			return nil
		}
		s.Log.WithError(err).Warn("wm: configuration load failed, using defaults")
		cfg = config.Default()
		keys, buttons = nil, nil
	}
	s.Config = cfg
	s.KeyBindings = keys
	s.ButtonBindings = buttons
	return nil
}

func (s *WmState) buildDispatcher() {
	running := &s.running
	reload := &s.reloadRequested
	s.Dispatcher = &action.Dispatcher{
		Registry: s.Registry,
		Monitors: s.Monitors,
		ModeEnv: mode.Env{
			Registry: s.Registry,
			Monitors: s.Monitors,
			Config: mode.Config{
				BorderSize:   s.Config.Border.Size,
				Gaps:         s.Config.ModeGaps(),
				AutoFillVoid: s.Config.Tiling.AutoFillVoid,
			},
			FocusFrame: s.Focus.FocusFrame,
		},
		Focus:      s.Focus,
		MoveResize: s.MoveResize,
		FocusRoot:  s.Monitors.Primary().Root,
		RequestClose: func(w *window.Window) {
			if err := s.Conn.RequestClose(xproto.Window(w.XID)); err != nil {
				s.Log.WithError(err).WithField("xid", w.XID).Warn("wm: request close failed")
			}
		},
		KillClient: func(w *window.Window) {
			if err := s.Conn.KillClient(xproto.Window(w.XID)); err != nil {
				s.Log.WithError(err).WithField("xid", w.XID).Warn("wm: kill client failed")
			}
		},
		RunDetached:    s.Shell.RunDetached,
		RunCaptureLine: s.Shell.RunCaptureLine,
		Notify: func(msg string) {
			s.Log.Info("wm: notify: " + msg)
			s.lastNotification = msg
			syscall.Alarm(uint(notifyDuration.Seconds()))
		},
		ReloadRequested: reload,
		Running:         running,
	}
}

// refreshGrabs ungrabs every key/button on the root window and regrabs
// the current binding set expanded across the ignore-modifiers
// power-set (spec §4.8), called at startup, after configuration
// reload, and on MAPPING_NOTIFY.
func (s *WmState) refreshGrabs() error {
	if err := s.Conn.UngrabAllKeys(); err != nil {
		return err
	}
	if err := s.Conn.UngrabAllButtons(s.Conn.Root); err != nil {
		return err
	}

	keyIgnore, err := s.Config.KeyIgnoreModifiers()
	if err != nil {
		return err
	}
	buttonIgnore, err := s.Config.ButtonIgnoreModifiers()
	if err != nil {
		return err
	}

	keySpecs := bind.GrabSet(s.KeyBindings, keyIgnore)
	if err := s.Conn.GrabKeyboardBindings(s.Keymap, keySpecs); err != nil {
		return err
	}
	buttonSpecs := bind.GrabSet(s.ButtonBindings, buttonIgnore)
	return s.Conn.GrabButtonBindings(s.Conn.Root, buttonSpecs)
}

func (s *WmState) publishClientList() error {
	var xids []xproto.Window
	for w := s.Registry.First(); w != nil; w = w.Next() {
		xids = append(xids, xproto.Window(w.XID))
	}
	return s.Conn.PublishClientList(xids)
}

func (s *WmState) syncFrame(f *frame.Frame, borderWidth uint32, gaps frame.Gaps) {
	if f == nil || f.Window == nil {
		return
	}
	w := f.Window
	if err := s.Conn.ConfigureWindow(xproto.Window(w.XID), w.Position, borderWidth); err != nil {
		s.Log.WithError(err).WithField("xid", w.XID).Warn("wm: configure window failed")
	}
}

// Run is the single-threaded dispatch loop (spec §4.9/§5): drain one X
// event or signal at a time, handle it to completion, then optionally
// reload configuration, until QUIT clears s.running or the X connection
// closes.
func (s *WmState) Run() error {
	s.Loop = x11.NewLoop(s.Conn)
	go s.Loop.Pump()
	s.Loop.WatchAlarm()
	defer s.Loop.StopWatchingAlarm()

	for s.running {
		select {
		case ev, ok := <-s.Loop.Events():
			if !ok {
				s.running = false
			} else {
				s.Dispatch(ev)
			}

		case <-s.Loop.Alarms():
			s.onAlarm()

		case <-s.Loop.Notifications():
			// woken only to re-check reloadRequested below
		}

		if s.reloadRequested {
			s.reloadRequested = false
			s.reload()
		}
	}
	return nil
}

// onAlarm hides whatever notification scheduled the just-delivered
// SIGALRM (spec §5 "Notifications are hidden by the SIGALRM handler's
// flag"); this window manager surfaces notifications through the log,
// so "hiding" one is simply clearing the cached last message.
func (s *WmState) onAlarm() {
	if s.lastNotification == "" {
		return
	}
	s.Log.WithField("message", s.lastNotification).Debug("wm: notification hidden")
	s.lastNotification = ""
}

// reload re-reads configuration and regrabs keys/buttons (spec §4.9's
// per-iteration "optionally reloads configuration"; spec §7: a failed
// reload retains the previous configuration instead of aborting).
func (s *WmState) reload() {
	if err := s.loadConfiguration(); err != nil {
		s.Log.WithError(err).Warn("wm: configuration reload failed")
		return
	}
	s.buildDispatcher()
	if err := s.refreshGrabs(); err != nil {
		s.Log.WithError(err).Warn("wm: regrabbing bindings after reload failed")
	}
}
