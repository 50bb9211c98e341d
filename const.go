//Package fizzmatrix counts from 1 to 100 on a 5x5 LED matrix, showing crackle and pop animations instead of multiples of 3 and 5.
/*
The core is the frame planner: Plan turns a number and a time budget into the frames to show.
Everything else (pattern table, matrix, display and renderers) plays those frames on a WS281x
matrix driven by the Raspberry Pi or on a terminal.
*/
package fizzmatrix

import (
	"errors"

	logxi "github.com/mgutz/logxi/v1"
)

// Reference timing, in milliseconds
const (
	DisplayMS   uint32 = 1000 // How long each number is shown
	PauseMS     uint32 = 300  // Blank screen between numbers
	AnimationMS uint32 = 100  // Step of the crackle and pop animations
)

// Range of numbers shown by Run
const (
	FirstNumber uint32 = 1
	LastNumber  uint32 = 100
)

// Errors
var (
	ErrUnknownPattern    = errors.New("unknown pattern")
	ErrUnknownLayout     = errors.New("unknown matrix layout")
	ErrUnknownOutput     = errors.New("unknown output")
	ErrInvalidColor      = errors.New("invalid color")
	ErrInvalidConfig     = errors.New("invalid config")
	ErrSequenceExhausted = errors.New("sequence exhausted")
)

//Debug enables output of every frame shown
var Debug bool

//Logger receives the debug output of this package
var Logger = logxi.New("fizzmatrix")

func logOutput(msg string, args ...interface{}) {
	if Debug {
		Logger.Debug(msg, args...)
	}
}
