package ws281x

import (
	"strings"
	"time"

	"github.com/DerLukas15/rpigpio"
	"github.com/DerLukas15/rpihardware"
	"github.com/pkg/errors"
)

//Config holds the settings and hardware state of one strip output.
/*
Only one initialized Config per driverType is allowed at a time. Setters which change the
hardware setup are rejected once the Config is initialized; call Stop first.
*/
type Config struct {
	driverType DriverType
	// DMA channel to use. Channels may be shared as long as renders don't overlap.
	dmaChannel uint32
	//Frequency for communication
	frequency uint32
	channel   ledChannel
	gamma     gammaTable

	dev         device
	words       []uint32
	initialized bool

	// Timing for next render
	renderWaitTime     int64
	previousRenderTime time.Time
}

//device is the hardware an initialized Config sends to.
type device interface {
	write(words []uint32)
	transfer(channel uint32)
	close() error
}

type ledChannel struct {
	stripType  StripType    // StripType
	strip      LEDs         // Actual LEDs
	pin        *rpigpio.Pin // Pin to use for the strip
	pinNum     uint32
	invert     bool   // Set output inverse
	active     bool   // Set when a strip is attached
	brightness uint32 // Brightness of the strip

	wshift uint8 //White shift value
	rshift uint8 //Red shift value
	gshift uint8 //Green shift value
	bshift uint8 //Blue shift value
}

//New returns a new Config for driverType.
/*
Default Frequency: 800 kHz

Default DMAChannel: 10

Default Brightness: 255
*/
func New(driverType DriverType) (*Config, error) {
	if driverType != DriverPWM {
		return nil, errors.Wrap(ErrDriverNotSupported, "New")
	}
	c := &Config{
		driverType: driverType,
		dmaChannel: 10,
		frequency:  800000,
		gamma:      newGammaTable(1),
	}
	c.channel.brightness = 255
	return c, nil
}

//Initialize maps the peripherals and starts the PWM output. If another PWM Config is active, an error is returned.
func (c *Config) Initialize() error {
	if c.initialized {
		return nil
	}
	if !c.channel.active {
		return errors.Wrap(ErrNoActiveChannel, "config initialize")
	}
	if pwmActive {
		return errors.Wrap(ErrDriverAlreadyUsed, "pwm")
	}
	//Initialize GPIO. Does not matter if already done.
	logOutput("Initializing GPIO package")
	if err := rpigpio.Initialize(); err != nil {
		return errors.Wrap(err, "config initialize")
	}
	hw, err := rpihardware.Check()
	if err != nil {
		return errors.Wrap(err, "config initialize")
	}
	dev, err := openPWMDevice(hw)
	if err != nil {
		return errors.Wrap(err, "config initialize")
	}
	dev.enableDMA(c.dmaChannel)
	logOutput("Enabled DMA channel", "channel", c.dmaChannel)
	if err := dev.start(&c.channel, c.frequency); err != nil {
		dev.close()
		return errors.Wrap(err, "config initialize")
	}
	//err was checked during SetStrip
	altMode, _ := pwmAltMode(c.channel.pinNum)
	c.channel.pin.Mode(altMode)

	c.dev = dev
	c.words = make([]uint32, dev.words)
	pwmActive = true
	c.initialized = true
	return nil
}

//Stop releases the hardware so that another Config can be initialized. The pin is driven low.
func (c *Config) Stop() error {
	if !c.initialized {
		return nil
	}
	if err := c.dev.close(); err != nil {
		return errors.Wrap(err, "config Stop")
	}
	c.dev = nil
	pwmActive = false
	c.initialized = false
	if c.channel.pin != nil {
		c.channel.pin.Mode(rpigpio.ModeOut)
		c.channel.pin.Set(0)
	}
	return nil
}

//SetDMAChannel sets the DMA channel to use. Default is 10.
func (c *Config) SetDMAChannel(channel uint32) error {
	if c.initialized {
		return errors.Wrap(ErrConfigInitialized, "config SetDMAChannel")
	}
	c.dmaChannel = channel
	return nil
}

//SetFrequency sets the output frequency to use. Valid values are 400000 and 800000
func (c *Config) SetFrequency(frequency uint32) error {
	if c.initialized {
		return errors.Wrap(ErrConfigInitialized, "config SetFrequency")
	}
	if frequency != 400000 && frequency != 800000 {
		return errors.Wrap(ErrWrongFrequency, "config SetFrequency")
	}
	c.frequency = frequency
	return nil
}

//SetBrightness sets the output brightness between 0 and 255. Can be called once the Config is initialized.
func (c *Config) SetBrightness(brightness uint8) {
	c.channel.brightness = uint32(brightness)
	logOutput("Setting brightness of strip", "brightness", brightness)
}

//SetGamma sets the gamma correction exponent. 1 disables correction. Can be called once the Config is initialized.
func (c *Config) SetGamma(gamma float64) error {
	if gamma <= 0 {
		return errors.Wrap(ErrWrongGamma, "config SetGamma")
	}
	c.gamma = newGammaTable(gamma)
	return nil
}

//SetStrip attaches LEDs to the Config. The pin must route PWM channel 0 (GPIO 12, 18 or 40).
func (c *Config) SetStrip(leds LEDs, pin uint32, stripType StripType, invertSignal bool) error {
	if c.initialized {
		return errors.Wrap(ErrConfigInitialized, "config SetStrip")
	}
	if _, err := pwmAltMode(pin); err != nil {
		return errors.Wrap(err, "config SetStrip")
	}
	p, err := rpigpio.NewPin(pin)
	if err != nil {
		return errors.Wrap(err, "config SetStrip")
	}
	c.channel.attach(leds, stripType, invertSignal)
	c.channel.pin = p
	c.channel.pinNum = pin
	return nil
}

//ParseStripType returns the StripType for a name like "ws2812" or "grbw".
func ParseStripType(name string) (StripType, error) {
	st, ok := stripTypeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Wrap(ErrUnknownStripType, name)
	}
	return st, nil
}

func (ch *ledChannel) attach(leds LEDs, stripType StripType, invert bool) {
	ch.strip = leds
	ch.stripType = stripType
	ch.invert = invert
	ch.active = true
	ch.wshift = uint8((stripType >> 24) & 0xff)
	ch.rshift = uint8((stripType >> 16) & 0xff)
	ch.gshift = uint8((stripType >> 8) & 0xff)
	ch.bshift = uint8((stripType >> 0) & 0xff)
}

//Render sends the current colors of the strip. It waits until the previous transfer has latched.
func (c *Config) Render() error {
	if !c.initialized {
		return errors.Wrap(ErrNoActiveChannel, "config Render")
	}
	if c.renderWaitTime != 0 && !c.previousRenderTime.IsZero() {
		timeDiff := time.Since(c.previousRenderTime)
		if timeDiff.Microseconds() < c.renderWaitTime {
			time.Sleep(time.Duration(c.renderWaitTime-timeDiff.Microseconds()) * time.Microsecond)
		}
	}
	encode(&c.channel, &c.gamma, c.words)
	c.dev.write(c.words)
	c.dev.transfer(c.dmaChannel)
	c.renderWaitTime = protocolTime(c.channel.strip.TotalCount(), c.channel.stripType, c.frequency) + resetTimeUs
	c.previousRenderTime = time.Now()
	return nil
}
