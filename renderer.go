package fizzmatrix

import (
	"fmt"
	"io"
	"strings"

	"github.com/DerLukas15/fizzmatrix/internal/ws281x"
	"github.com/pkg/errors"
)

//TerminalRenderer prints the matrix as text, '#' for a lit LED and '.' for a dark one.
type TerminalRenderer struct {
	w      io.Writer
	matrix *Matrix
	color  bool // Print lit LEDs in their color using 24 bit ANSI escapes
}

//NewTerminalRenderer returns a TerminalRenderer writing m to w.
func NewTerminalRenderer(w io.Writer, m *Matrix, color bool) *TerminalRenderer {
	return &TerminalRenderer{w: w, matrix: m, color: color}
}

//Render writes one line per row followed by an empty line.
func (t *TerminalRenderer) Render() error {
	var b strings.Builder
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			led := t.matrix.At(row, col)
			switch {
			case led == Off:
				b.WriteByte('.')
			case t.color:
				fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm#\x1b[0m", led.Red(), led.Green(), led.Blue())
			default:
				b.WriteByte('#')
			}
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(t.w, b.String()); err != nil {
		return errors.Wrap(err, "terminal render")
	}
	return nil
}

//Close does nothing.
func (t *TerminalRenderer) Close() error {
	return nil
}

//StripRenderer sends the matrix to a WS281x strip on the PWM output of a Raspberry Pi.
type StripRenderer struct {
	config *ws281x.Config
}

//NewStripRenderer initializes the PWM driver with the strip settings s and m as its LEDs.
func NewStripRenderer(m *Matrix, s StripConfig) (*StripRenderer, error) {
	stripType, err := ws281x.ParseStripType(s.Type)
	if err != nil {
		return nil, errors.Wrap(err, "strip renderer")
	}
	c, err := ws281x.New(ws281x.DriverPWM)
	if err != nil {
		return nil, errors.Wrap(err, "strip renderer")
	}
	if err := c.SetFrequency(s.Frequency); err != nil {
		return nil, errors.Wrap(err, "strip renderer")
	}
	if err := c.SetDMAChannel(s.DMAChannel); err != nil {
		return nil, errors.Wrap(err, "strip renderer")
	}
	if err := c.SetGamma(s.Gamma); err != nil {
		return nil, errors.Wrap(err, "strip renderer")
	}
	c.SetBrightness(s.Brightness)
	if err := c.SetStrip(m, s.Pin, stripType, s.Invert); err != nil {
		return nil, errors.Wrap(err, "strip renderer")
	}
	if err := c.Initialize(); err != nil {
		return nil, errors.Wrap(err, "strip renderer")
	}
	return &StripRenderer{config: c}, nil
}

//Render sends the current colors of the matrix.
func (s *StripRenderer) Render() error {
	return s.config.Render()
}

//Close stops the driver.
func (s *StripRenderer) Close() error {
	return s.config.Stop()
}
