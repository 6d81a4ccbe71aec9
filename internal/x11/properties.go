package x11

import (
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgbutil/ewmh"
	"github.com/jezek/xgbutil/icccm"
	"github.com/jezek/xgbutil/motif"

	"github.com/JulianBMW/fensterchef/internal/geom"
	"github.com/JulianBMW/fensterchef/internal/window"
)

// ICCCM win_gravity values (X11 core protocol).
const (
	iccGravityForget     = 0
	iccGravityNorthWest  = 1
	iccGravityNorth      = 2
	iccGravityNorthEast  = 3
	iccGravityWest       = 4
	iccGravityCenter     = 5
	iccGravityEast       = 6
	iccGravitySouthWest  = 7
	iccGravitySouth      = 8
	iccGravitySouthEast  = 9
	iccGravityStatic     = 10
)

// gravityFromICCCM maps the WM_NORMAL_HINTS win_gravity value to
// geom.Gravity (spec §9 gravity table).
func gravityFromICCCM(g int) geom.Gravity {
	switch g {
	case iccGravityNorthWest:
		return geom.GravityNorthWest
	case iccGravityNorth:
		return geom.GravityNorth
	case iccGravityNorthEast:
		return geom.GravityNorthEast
	case iccGravityWest:
		return geom.GravityWest
	case iccGravityCenter:
		return geom.GravityCenter
	case iccGravityEast:
		return geom.GravityEast
	case iccGravitySouthWest:
		return geom.GravitySouthWest
	case iccGravitySouth:
		return geom.GravitySouth
	case iccGravitySouthEast:
		return geom.GravitySouthEast
	case iccGravityStatic:
		return geom.GravityStatic
	default:
		return geom.GravityForget
	}
}

// strutFromPartial converts the twelve _NET_WM_STRUT_PARTIAL fields
// into geom.Strut.
func strutFromPartial(left, right, top, bottom uint,
	leftStartY, leftEndY, rightStartY, rightEndY uint,
	topStartX, topEndX, bottomStartX, bottomEndX uint) geom.Strut {
	return geom.Strut{
		Reserved:     geom.Extents{Left: uint32(left), Top: uint32(top), Right: uint32(right), Bottom: uint32(bottom)},
		LeftStartY:   int32(leftStartY),
		LeftEndY:     int32(leftEndY),
		RightStartY:  int32(rightStartY),
		RightEndY:    int32(rightEndY),
		TopStartX:    int32(topStartX),
		TopEndX:      int32(topEndX),
		BottomStartX: int32(bottomStartX),
		BottomEndX:   int32(bottomEndX),
	}
}

// DecodeProperties queries every X property the classifier and mode
// geometry functions consult and assembles window.Properties. Missing
// properties decode to their zero value, matching cortile's GetInfo
// "error means absent, not fatal" pattern.
func DecodeProperties(c *Conn, win xproto.Window) window.Properties {
	xu := c.XU
	var p window.Properties

	if cls, err := icccm.WmClassGet(xu, win); err == nil && cls != nil {
		p.Class = cls.Class
	}
	if name, err := icccm.WmNameGet(xu, win); err == nil {
		p.Name = name
	} else {
		p.Name = p.Class
	}

	if transient, err := icccm.WmTransientForGet(xu, win); err == nil {
		p.TransientFor = window.XID(transient)
	}

	if types, err := ewmh.WmWindowTypeGet(xu, win); err == nil {
		p.WindowTypes = types
	}
	if states, err := ewmh.WmStateGet(xu, win); err == nil {
		p.States = states
	}

	if nh, err := icccm.WmNormalHintsGet(xu, win); err == nil && nh != nil {
		p.SizeHints = window.SizeHints{
			HasPosition: nh.Flags&icccm.SizeHintUSPosition != 0 || nh.Flags&icccm.SizeHintPPosition != 0,
			X:           int32(nh.X),
			Y:           int32(nh.Y),
			HasSize:     nh.Flags&icccm.SizeHintUSSize != 0 || nh.Flags&icccm.SizeHintPSize != 0,
			Width:       uint32(nh.Width),
			Height:      uint32(nh.Height),
			HasMinSize:  nh.Flags&icccm.SizeHintPMinSize != 0,
			MinWidth:    uint32(nh.MinWidth),
			MinHeight:   uint32(nh.MinHeight),
			HasMaxSize:  nh.Flags&icccm.SizeHintPMaxSize != 0,
			MaxWidth:    uint32(nh.MaxWidth),
			MaxHeight:   uint32(nh.MaxHeight),
			HasGravity:  nh.Flags&icccm.SizeHintPWinGravity != 0,
			Gravity:     gravityFromICCCM(nh.WinGravity),
		}
	}

	if mh, err := motif.WmHintsGet(xu, win); err == nil && mh != nil {
		p.Motif = window.MotifHints{
			HasDecorationsFlag: mh.Flags&motif.HintDecorations != 0,
			NoDecorations:      !motif.Decor(mh),
		}
	}

	if sp, err := ewmh.WmStrutPartialGet(xu, win); err == nil && sp != nil {
		p.Strut = strutFromPartial(sp.Left, sp.Right, sp.Top, sp.Bottom,
			sp.LeftStartY, sp.LeftEndY, sp.RightStartY, sp.RightEndY,
			sp.TopStartX, sp.TopEndX, sp.BottomStartX, sp.BottomEndX)
	}

	if fm, err := ewmh.WmFullscreenMonitorsGet(xu, win); err == nil {
		p.FullscreenMonitors = window.FullscreenMonitors{
			Valid:  true,
			Top:    int32(fm.Top),
			Bottom: int32(fm.Bottom),
			Left:   int32(fm.Left),
			Right:  int32(fm.Right),
		}
	}

	return p
}
