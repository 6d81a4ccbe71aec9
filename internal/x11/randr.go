package x11

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"

	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/monitor"
)

// InitRandR initializes the RandR extension and subscribes the root
// window to ScreenChangeNotify, so monitor.Merge gets re-run whenever
// an output is connected, disconnected, or moved (spec §4.5).
func (c *Conn) InitRandR() error {
	if err := randr.Init(c.XU.Conn()); err != nil {
		return fmt.Errorf("x11: randr: extension unavailable: %w", err)
	}
	err := randr.SelectInputChecked(c.XU.Conn(), c.Root,
		randr.NotifyMaskScreenChange).Check()
	if err != nil {
		return fmt.Errorf("x11: randr: select input: %w", err)
	}
	return nil
}

// QueryMonitors asks RandR for the current output layout and converts
// it into the []monitor.Incoming shape monitor.Merge consumes. Outputs
// with no current CRTC (disconnected) are skipped.
func (c *Conn) QueryMonitors() ([]monitor.Incoming, error) {
	conn := c.XU.Conn()
	res, err := randr.GetScreenResourcesCurrent(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: randr: get screen resources: %w", err)
	}

	primaryReply, err := randr.GetOutputPrimary(conn, c.Root).Reply()
	var primary randr.Output
	if err == nil && primaryReply != nil {
		primary = primaryReply.Output
	}

	incoming := make([]monitor.Incoming, 0, len(res.Outputs))
	for _, out := range res.Outputs {
		outInfo, err := randr.GetOutputInfo(conn, out, res.ConfigTimestamp).Reply()
		if err != nil || outInfo.Crtc == 0 {
			continue
		}
		crtcInfo, err := randr.GetCrtcInfo(conn, outInfo.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		incoming = append(incoming, monitor.Incoming{
			Name: string(outInfo.Name),
			Rect: geom.Rect{
				X:      int32(crtcInfo.X),
				Y:      int32(crtcInfo.Y),
				Width:  uint32(crtcInfo.Width),
				Height: uint32(crtcInfo.Height),
			},
			Primary: out == primary,
		})
	}
	return incoming, nil
}

// IsScreenChangeNotify reports whether ev is a RandR screen-change
// event, the trigger for re-running monitor.Merge. xgb decodes
// extension events into their concrete type before WaitForEvent
// returns, so this is a plain type switch.
func IsScreenChangeNotify(ev xgb.Event) (randr.ScreenChangeNotifyEvent, bool) {
	e, ok := ev.(randr.ScreenChangeNotifyEvent)
	return e, ok
}
