package fizzmatrix

import (
	"image/color"
	"time"

	"github.com/pkg/errors"
)

//Sink shows a pattern for duration time units and returns once that time has passed.
type Sink interface {
	Show(p Pattern, duration uint32) error
}

//Renderer pushes the current state of a Matrix to an output.
type Renderer interface {
	Render() error
	Close() error
}

//Display is a Sink which paints patterns on a Matrix and renders them.
type Display struct {
	matrix   *Matrix
	renderer Renderer
	table    PatternTable
	on       LED
	step     uint32
	unit     time.Duration
	sleep    func(time.Duration)
}

var _ Sink = (*Display)(nil)

//Option changes the defaults of a Display.
type Option func(*Display)

//WithColor sets the color of lit LEDs. Default is red.
func WithColor(c color.Color) Option {
	return func(d *Display) {
		d.on = ColorToLED(c)
	}
}

//WithPatterns replaces the built-in pattern table.
func WithPatterns(t PatternTable) Option {
	return func(d *Display) {
		d.table = t
	}
}

//WithAnimationStep sets how long each bitmap of an animated pattern is shown. 0 disables animation.
func WithAnimationStep(step uint32) Option {
	return func(d *Display) {
		d.step = step
	}
}

//WithUnit sets the length of one time unit. Default is a millisecond.
func WithUnit(unit time.Duration) Option {
	return func(d *Display) {
		d.unit = unit
	}
}

//WithSleep replaces time.Sleep, which blocks while a frame is on screen.
func WithSleep(sleep func(time.Duration)) Option {
	return func(d *Display) {
		d.sleep = sleep
	}
}

//NewDisplay returns a Display painting on m and rendering with r.
func NewDisplay(m *Matrix, r Renderer, opts ...Option) *Display {
	d := &Display{
		matrix:   m,
		renderer: r,
		table:    DefaultPatterns(),
		on:       0x00ff0000,
		step:     AnimationMS,
		unit:     time.Millisecond,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

//Show paints p and blocks for duration units. Animated patterns advance every animation step,
//the last step is cut short so the pattern is shown for exactly duration units.
func (d *Display) Show(p Pattern, duration uint32) error {
	bitmaps, err := d.table.Frames(p)
	if err != nil {
		return errors.Wrap(err, "show")
	}
	logOutput("show", "pattern", p, "duration", duration)

	step := duration
	if len(bitmaps) > 1 && d.step > 0 {
		step = d.step
	}
	remaining := duration
	for i := 0; ; i++ {
		chunk := step
		if remaining < chunk {
			chunk = remaining
		}
		d.matrix.Paint(bitmaps[i%len(bitmaps)], d.on)
		if err := d.renderer.Render(); err != nil {
			return errors.Wrapf(err, "render %s", p)
		}
		d.sleep(time.Duration(chunk) * d.unit)
		remaining -= chunk
		if remaining == 0 {
			return nil
		}
	}
}

//Close blanks the matrix and releases the renderer. The renderer is closed even if the blank frame fails.
func (d *Display) Close() error {
	d.matrix.Clear()
	if err := d.renderer.Render(); err != nil {
		if cerr := d.renderer.Close(); cerr != nil {
			return errors.Wrapf(err, "close (renderer close: %v)", cerr)
		}
		return errors.Wrap(err, "close")
	}
	return d.renderer.Close()
}
