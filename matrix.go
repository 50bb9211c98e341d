package fizzmatrix

import (
	"strings"

	"github.com/DerLukas15/fizzmatrix/internal/ws281x"
	"github.com/pkg/errors"
)

//Layout describes how the matrix cells are wired along the strip.
type Layout uint8

//Valid Layouts
const (
	// Every row runs left to right
	LayoutRows Layout = iota
	// Odd rows run right to left, as when the strip zigzags
	LayoutSerpentine
)

//ParseLayout returns the Layout for "rows" or "serpentine".
func ParseLayout(name string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rows", "":
		return LayoutRows, nil
	case "serpentine", "zigzag":
		return LayoutSerpentine, nil
	}
	return 0, errors.Wrap(ErrUnknownLayout, name)
}

//Matrix is a 5x5 grid of LEDs laid out on one strip. It satisfies ws281x.LEDs.
type Matrix struct {
	leds   [Size * Size]LED
	layout Layout
}

var _ ws281x.LEDs = (*Matrix)(nil)

//NewMatrix returns a dark Matrix wired with layout.
func NewMatrix(layout Layout) *Matrix {
	return &Matrix{layout: layout}
}

//Index returns the strip position of row and col, or -1 if outside the matrix.
func (m *Matrix) Index(row, col int) int {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return -1
	}
	if m.layout == LayoutSerpentine && row%2 == 1 {
		col = Size - 1 - col
	}
	return row*Size + col
}

//Paint lights the LEDs set in b with on and turns all others off.
func (m *Matrix) Paint(b Bitmap, on LED) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			led := Off
			if b.Lit(row, col) {
				led = on
			}
			m.leds[m.Index(row, col)] = led
		}
	}
}

//Clear turns all LEDs off.
func (m *Matrix) Clear() {
	m.leds = [Size * Size]LED{}
}

//At returns the LED at row and col.
func (m *Matrix) At(row, col int) LED {
	i := m.Index(row, col)
	if i < 0 {
		return Off
	}
	return m.leds[i]
}

//TotalCount returns the number of LEDs in the matrix.
func (m *Matrix) TotalCount() int {
	return len(m.leds)
}

//Red returns the red color amount at position.
func (m *Matrix) Red(position int) uint8 {
	return m.led(position).Red()
}

//Green returns the green color amount at position.
func (m *Matrix) Green(position int) uint8 {
	return m.led(position).Green()
}

//Blue returns the blue color amount at position.
func (m *Matrix) Blue(position int) uint8 {
	return m.led(position).Blue()
}

//White returns the white color amount at position.
func (m *Matrix) White(position int) uint8 {
	return m.led(position).White()
}

//UInt32 returns the color at position. Format 0xWWRRGGBB
func (m *Matrix) UInt32(position int) uint32 {
	return uint32(m.led(position))
}

func (m *Matrix) led(position int) LED {
	if position < 0 || position >= len(m.leds) {
		return Off
	}
	return m.leds[position]
}
