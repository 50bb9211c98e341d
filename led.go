package fizzmatrix

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

//LED is the color of one LED as 0xWWRRGGBB.
type LED uint32

//Off is a dark LED.
const Off LED = 0

//ColorToLED turns a color.Color into an LED. The white channel stays off.
func ColorToLED(c color.Color) LED {
	// A color's RGBA method returns values in the range [0, 65535]
	red, green, blue, _ := c.RGBA()
	return LED((red>>8)<<16 | (green>>8)<<8 | blue>>8)
}

//ParseColor parses a hex color like "#ff8800" into an LED.
func ParseColor(hex string) (LED, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Off, errors.Wrap(ErrInvalidColor, hex)
	}
	r, g, b := c.RGB255()
	return LED(uint32(r)<<16 | uint32(g)<<8 | uint32(b)), nil
}

//Red returns the red color amount.
func (l LED) Red() uint8 {
	return uint8(l >> 16)
}

//Green returns the green color amount.
func (l LED) Green() uint8 {
	return uint8(l >> 8)
}

//Blue returns the blue color amount.
func (l LED) Blue() uint8 {
	return uint8(l)
}

//RGBA implements color.Color. LEDs are always opaque.
func (l LED) RGBA() (r, g, b, a uint32) {
	r = uint32(l.Red())
	g = uint32(l.Green())
	b = uint32(l.Blue())
	return r | r<<8, g | g<<8, b | b<<8, 0xffff
}

//White returns the white color amount.
func (l LED) White() uint8 {
	return uint8(l >> 24)
}
