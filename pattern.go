package fizzmatrix

import "strconv"

//Pattern selects what is shown on the matrix. Values 0 to 9 are digits.
type Pattern uint8

//Named patterns
const (
	Blank Pattern = iota + 10
	Crackle
	Pop
)

//Digit returns the pattern of the last decimal digit of d.
func Digit(d uint32) Pattern {
	return Pattern(d % 10)
}

//IsDigit reports whether p shows a digit.
func (p Pattern) IsDigit() bool {
	return p <= 9
}

func (p Pattern) String() string {
	switch {
	case p.IsDigit():
		return strconv.Itoa(int(p))
	case p == Blank:
		return "blank"
	case p == Crackle:
		return "crackle"
	case p == Pop:
		return "pop"
	}
	return "pattern(" + strconv.Itoa(int(p)) + ")"
}

//Frame is a pattern shown for Duration time units.
type Frame struct {
	Pattern  Pattern
	Duration uint32
}

//Frames is an ordered sequence of frames shown back to back.
type Frames []Frame

//Total returns the summed duration of all frames.
func (f Frames) Total() uint64 {
	var total uint64
	for _, fr := range f {
		total += uint64(fr.Duration)
	}
	return total
}
