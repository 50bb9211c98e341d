package fizzmatrix

import (
	"io"
	"os"
	"strings"

	"github.com/DerLukas15/fizzmatrix/internal/ws281x"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//Valid outputs
const (
	OutputTerminal = "terminal"
	OutputWS281x   = "ws281x"
)

//Config holds the settings of a run. Durations are in milliseconds.
type Config struct {
	BudgetMS    uint32      `yaml:"budget_ms"`    // How long each number is shown
	PauseMS     uint32      `yaml:"pause_ms"`     // Blank pause after each number
	AnimationMS uint32      `yaml:"animation_ms"` // Step of animated patterns, 0 disables animation
	First       uint32      `yaml:"first"`
	Last        uint32      `yaml:"last"`
	Color       string      `yaml:"color"`      // Hex color of lit LEDs
	Layout      string      `yaml:"layout"`     // rows or serpentine
	Output      string      `yaml:"output"`     // terminal or ws281x
	ANSIColor   bool        `yaml:"ansi_color"` // Terminal output in color
	Strip       StripConfig `yaml:"strip"`
}

//StripConfig holds the hardware settings of the ws281x output.
type StripConfig struct {
	Pin        uint32  `yaml:"pin"` // GPIO 12, 18 or 40
	DMAChannel uint32  `yaml:"dma_channel"`
	Frequency  uint32  `yaml:"frequency"` // 400000 or 800000
	Type       string  `yaml:"type"`      // e.g. ws2812, grb, sk6812w
	Invert     bool    `yaml:"invert"`
	Brightness uint8   `yaml:"brightness"`
	Gamma      float64 `yaml:"gamma"`
}

//DefaultConfig returns the reference settings: 1 to 100, one second per number, 300ms pause.
func DefaultConfig() Config {
	return Config{
		BudgetMS:    DisplayMS,
		PauseMS:     PauseMS,
		AnimationMS: AnimationMS,
		First:       FirstNumber,
		Last:        LastNumber,
		Color:       "#ff0000",
		Layout:      "rows",
		Output:      OutputTerminal,
		Strip: StripConfig{
			Pin:        18,
			DMAChannel: 10,
			Frequency:  800000,
			Type:       "ws2812",
			Brightness: 64,
			Gamma:      1,
		},
	}
}

//LoadConfig reads a YAML config file. Missing keys keep their default value.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	c, err := ParseConfig(data)
	if err != nil {
		return Config{}, errors.Wrap(err, path)
	}
	return c, nil
}

//ParseConfig decodes YAML on top of DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

//Validate checks the settings for values that cannot be shown.
func (c Config) Validate() error {
	if c.BudgetMS == 0 {
		return errors.Wrap(ErrInvalidConfig, "budget_ms must be greater than zero")
	}
	if c.First > c.Last {
		return errors.Wrapf(ErrInvalidConfig, "first %d is after last %d", c.First, c.Last)
	}
	if _, err := ParseColor(c.Color); err != nil {
		return errors.Wrap(err, "color")
	}
	if _, err := ParseLayout(c.Layout); err != nil {
		return errors.Wrap(err, "layout")
	}
	switch strings.ToLower(c.Output) {
	case OutputTerminal:
	case OutputWS281x:
		return c.Strip.validate()
	default:
		return errors.Wrap(ErrUnknownOutput, c.Output)
	}
	return nil
}

func (s StripConfig) validate() error {
	if _, err := ws281x.ParseStripType(s.Type); err != nil {
		return errors.Wrap(err, "strip type")
	}
	if s.Frequency != 400000 && s.Frequency != 800000 {
		return errors.Wrapf(ErrInvalidConfig, "strip frequency %d", s.Frequency)
	}
	if s.Gamma <= 0 {
		return errors.Wrap(ErrInvalidConfig, "strip gamma must be greater than zero")
	}
	return nil
}

//Open builds a Display for c. Terminal output is written to w.
func Open(c Config, w io.Writer) (*Display, error) {
	on, err := ParseColor(c.Color)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	layout, err := ParseLayout(c.Layout)
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	m := NewMatrix(layout)

	var r Renderer
	switch strings.ToLower(c.Output) {
	case OutputTerminal:
		r = NewTerminalRenderer(w, m, c.ANSIColor)
	case OutputWS281x:
		if r, err = NewStripRenderer(m, c.Strip); err != nil {
			return nil, errors.Wrap(err, "open")
		}
	default:
		return nil, errors.Wrap(ErrUnknownOutput, c.Output)
	}
	return NewDisplay(m, r, WithColor(on), WithAnimationStep(c.AnimationMS)), nil
}
