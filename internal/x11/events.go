package x11

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jezek/xgb"
)

// Event wraps one dequeued X event alongside the xgb-level error xgb
// itself can report instead of an event (e.g. a bad reply id).
type Event struct {
	XGBEvent xgb.Event
	XGBError xgb.Error
}

// Loop is the single-threaded readiness-wait pump of spec §4.9/§5: the
// only blocking call in the whole process. It runs WaitForEvent in a
// goroutine feeding a channel so the main select can also observe
// SIGALRM, the one permitted source of extra concurrency (spec §5
// "the only concurrency is the OS signal... handled by setting a
// volatile flag"). Adapted from xgbutil's xevent main-loop shape
// (jezek/xgbutil/xevent) and termtile's blocking EventLoop wrapper,
// generalized into a select-driven pump instead of either's plain
// for-loop so SIGALRM can interrupt it.
type Loop struct {
	conn   *Conn
	events chan Event
	alarm  chan os.Signal
	notify chan struct{}
}

// NewLoop constructs a Loop over conn. Call Pump in a goroutine once,
// then range over Events()/Alarms()/Notifications() from the single
// dispatch goroutine.
func NewLoop(conn *Conn) *Loop {
	return &Loop{
		conn:   conn,
		events: make(chan Event, 64),
		alarm:  make(chan os.Signal, 1),
		notify: make(chan struct{}, 1),
	}
}

// Pump drains WaitForEvent into the events channel until the
// connection closes. Run it in exactly one goroutine.
func (l *Loop) Pump() {
	defer close(l.events)
	for {
		ev, err := l.conn.XU.Conn().WaitForEvent()
		if ev == nil && err == nil {
			return
		}
		l.events <- Event{XGBEvent: ev, XGBError: err}
	}
}

// WatchAlarm starts relaying SIGALRM onto Alarms(). A pending alarm
// additionally unblocks the readiness wait, exactly like the spec's
// flag-set-from-signal-handler description; here the flag is simply
// "a value is waiting on the channel".
func (l *Loop) WatchAlarm() {
	signal.Notify(l.alarm, syscall.SIGALRM)
}

// StopWatchingAlarm reverts WatchAlarm.
func (l *Loop) StopWatchingAlarm() {
	signal.Stop(l.alarm)
}

// Notify schedules a wakeup on Notifications() without a real X event
// or signal. Nothing in this module calls it: RELOAD-CONFIGURATION only
// sets a flag that internal/wm checks after the current event finishes.
func (l *Loop) Notify() {
	select {
	case l.notify <- struct{}{}:
	default:
	}
}

// Events returns the channel of drained X events.
func (l *Loop) Events() <-chan Event { return l.events }

// Alarms returns the channel SIGALRM deliveries arrive on.
func (l *Loop) Alarms() <-chan os.Signal { return l.alarm }

// Notifications returns the channel Notify posts to.
func (l *Loop) Notifications() <-chan struct{} { return l.notify }
