// Package action implements the action vocabulary (spec §3 "Action",
// §4.7 do_action) and the dispatcher that performs each action against
// the core data structures.
package action

import "fmt"

// ParamType is the tagged union discriminant an Action's parameter
// carries. The action Code fixes which type is legal; binding load
// validates this (spec §4.8).
type ParamType uint8

const (
	Void ParamType = iota
	String
	Quad
)

// Value is the tagged union {void, string, quad = (i32,i32,i32,i32)}.
type Value struct {
	Type ParamType
	Str  string
	Quad [4]int32
}

// Clone deep-copies v. Strings are immutable in Go so this is a plain
// value copy; kept as a named operation because the spec calls out
// deep-copy/destroy as a required pair on Action (the destroy half has
// no Go equivalent — the GC reclaims Value's fields with no explicit
// free).
func (v Value) Clone() Value { return v }

// Code enumerates the named operations bindings can invoke (spec §6
// action enumeration).
type Code uint8

const (
	None Code = iota
	ReloadConfiguration
	CloseWindow
	MinimizeWindow
	FocusWindow
	InitiateMove
	InitiateResize
	NextWindow
	PreviousWindow
	RemoveFrame
	ToggleTiling
	TraverseFocus
	ToggleFullscreen
	SplitHorizontally
	SplitVertically
	MoveUp
	MoveLeft
	MoveRight
	MoveDown
	ShowWindowList
	Run
	ShowMessage
	ShowMessageRun
	ResizeBy
	Quit
)

var paramTypeByCode = map[Code]ParamType{
	None:                Void,
	ReloadConfiguration: Void,
	CloseWindow:         Void,
	MinimizeWindow:      Void,
	FocusWindow:         Void,
	InitiateMove:        Void,
	InitiateResize:      Void,
	NextWindow:          Void,
	PreviousWindow:      Void,
	RemoveFrame:         Void,
	ToggleTiling:        Void,
	TraverseFocus:       Void,
	ToggleFullscreen:    Void,
	SplitHorizontally:   Void,
	SplitVertically:     Void,
	MoveUp:              Void,
	MoveLeft:            Void,
	MoveRight:           Void,
	MoveDown:            Void,
	ShowWindowList:      Void,
	Run:                 String,
	ShowMessage:         String,
	ShowMessageRun:      String,
	ResizeBy:            Quad,
	Quit:                Void,
}

// ParamTypeFor returns the fixed parameter type for code.
func ParamTypeFor(code Code) ParamType { return paramTypeByCode[code] }

// Action is {code, parameter} (spec §3).
type Action struct {
	Code  Code
	Param Value
}

// Clone deep-copies a, including its parameter.
func (a Action) Clone() Action { return Action{Code: a.Code, Param: a.Param.Clone()} }

// Validate reports an error if a's parameter tag does not match the
// type fixed for its code — the check the binding loader performs
// before accepting a configuration-file action line (spec §4.7 "fixed
// parameter type ... validation occurs at binding load").
func Validate(a Action) error {
	want := ParamTypeFor(a.Code)
	if a.Param.Type != want {
		return fmt.Errorf("action: code %d requires parameter type %d, got %d", a.Code, want, a.Param.Type)
	}
	return nil
}
