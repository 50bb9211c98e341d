//Package ws281x drives one WS281x strip from the PWM peripheral of the Raspberry Pi using DMA.
package ws281x

import (
	"errors"
	"math"

	logxi "github.com/mgutz/logxi/v1"
)

// Errors
var (
	ErrDriverAlreadyUsed  = errors.New("driver already initialized")
	ErrConfigInitialized  = errors.New("config already initialized")
	ErrDriverNotSupported = errors.New("driver not supported")
	ErrPinNotAllowed      = errors.New("selected pin not allowed")
	ErrNoActiveChannel    = errors.New("no active channel")
	ErrWrongFrequency     = errors.New("wrong frequency")
	ErrWrongGamma         = errors.New("gamma must be greater than zero")
	ErrUnknownStripType   = errors.New("unknown strip type")
)

var pwmActive bool // Set once a config with PWM as driver is active

//DriverType defines the hardware type (PWM, PCM, SPI) which is used for communication.
//Only PWM is implemented.
type DriverType uint8

//Valid DriverTypes
const (
	DriverPWM DriverType = 1 << iota
	DriverPCM
	DriverSPI
)

//StripType is the byte layout of the connected strip. Each byte holds the shift of one color inside a 0xWWRRGGBB value.
type StripType uint

const sk6812ShiftMask uint = 0xf0000000

//Valid StripTypes
const (
	SK6812StripRGBW StripType = 0x18100800
	SK6812StripGRBW StripType = 0x18081000

	WS2811StripRGB StripType = 0x00100800
	WS2811StripRBG StripType = 0x00100008
	WS2811StripGRB StripType = 0x00081000
	WS2811StripGBR StripType = 0x00080010
	WS2811StripBRG StripType = 0x00001008
	WS2811StripBGR StripType = 0x00000810

	WS2812Strip  = WS2811StripGRB
	SK6812Strip  = WS2811StripGRB
	SK6812WStrip = SK6812StripGRBW
)

var stripTypeNames = map[string]StripType{
	"rgb":     WS2811StripRGB,
	"rbg":     WS2811StripRBG,
	"grb":     WS2811StripGRB,
	"gbr":     WS2811StripGBR,
	"brg":     WS2811StripBRG,
	"bgr":     WS2811StripBGR,
	"rgbw":    SK6812StripRGBW,
	"grbw":    SK6812StripGRBW,
	"ws2812":  WS2812Strip,
	"sk6812":  SK6812Strip,
	"sk6812w": SK6812WStrip,
}

//colors returns the number of color bytes sent per LED.
func (st StripType) colors() int {
	// If our shift mask includes the highest nibble, then we have 4 colors, RGBW.
	if (uint(st) & sk6812ShiftMask) != 0 {
		return 4
	}
	return 3
}

//LEDs is the source of colors for a strip. Position defines the physical position on the strip starting at 0.
type LEDs interface {
	Red(position int) uint8
	Green(position int) uint8
	Blue(position int) uint8
	White(position int) uint8
	UInt32(position int) uint32 //Format 0xWWRRGGBB
	TotalCount() int
}

//gammaTable maps a color value to its corrected output value.
type gammaTable [256]uint8

func newGammaTable(gamma float64) gammaTable {
	var t gammaTable
	for x := 0; x < 256; x++ {
		if gamma == 1 {
			t[x] = uint8(x)
			continue
		}
		t[x] = uint8(math.Pow(float64(x)/255, gamma)*255 + 0.5)
	}
	return t
}

//Debug enables progress output of the hardware setup
var Debug bool

//Logger receives the debug output of this package
var Logger = logxi.New("ws281x")

func logOutput(msg string, args ...interface{}) {
	if Debug {
		Logger.Debug(msg, args...)
	}
}
