package ws281x

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStrip []uint32

func (f fakeStrip) Red(i int) uint8 { return uint8(f[i] >> 16) }
func (f fakeStrip) Green(i int) uint8 { return uint8(f[i] >> 8) }
func (f fakeStrip) Blue(i int) uint8 { return uint8(f[i]) }
func (f fakeStrip) White(i int) uint8 { return uint8(f[i] >> 24) }
func (f fakeStrip) UInt32(i int) uint32 { return f[i] }
func (f fakeStrip) TotalCount() int { return len(f) }

// symbols reads the serialized words back as a sequence of 3 bit symbols.
func symbols(words []uint32, count int) []uint8 {
	out := make([]uint8, count)
	for s := 0; s < count; s++ {
		var sym uint8
		for b := 0; b < 3; b++ {
			pos := s*3 + b
			bit := (words[pos/32] >> (31 - pos%32)) & 1
			sym = sym<<1 | uint8(bit)
		}
		out[s] = sym
	}
	return out
}

func expectSymbols(bytes ...uint8) []uint8 {
	var out []uint8
	for _, v := range bytes {
		for k := 7; k >= 0; k-- {
			if v&(1<<k) != 0 {
				out = append(out, symbolHigh)
			} else {
				out = append(out, symbolLow)
			}
		}
	}
	return out
}

func TestEncodeRGB(t *testing.T) {
	var ch ledChannel
	ch.brightness = 255
	ch.attach(fakeStrip{0x00ff0081}, WS2811StripRGB, false)
	gamma := newGammaTable(1)

	words := make([]uint32, dataWords(1, WS2811StripRGB))
	encode(&ch, &gamma, words)

	assert.Equal(t, expectSymbols(0xff, 0x00, 0x81), symbols(words, 24))
}

func TestEncodeWireOrderFollowsStripType(t *testing.T) {
	var ch ledChannel
	ch.brightness = 255
	ch.attach(fakeStrip{0x00112233}, WS2812Strip, false)
	gamma := newGammaTable(1)

	words := make([]uint32, dataWords(1, WS2812Strip))
	encode(&ch, &gamma, words)

	// green first on GRB strips
	assert.Equal(t, expectSymbols(0x22, 0x11, 0x33), symbols(words, 24))
}

func TestEncodeRGBWSendsFourBytes(t *testing.T) {
	var ch ledChannel
	ch.brightness = 255
	ch.attach(fakeStrip{0x44112233}, SK6812StripRGBW, false)
	gamma := newGammaTable(1)

	words := make([]uint32, dataWords(1, SK6812StripRGBW))
	encode(&ch, &gamma, words)

	assert.Equal(t, expectSymbols(0x11, 0x22, 0x33, 0x44), symbols(words, 32))
}

func TestEncodeBrightnessZeroIsDark(t *testing.T) {
	var ch ledChannel
	ch.brightness = 0
	ch.attach(fakeStrip{0x00ffffff, 0x00ffffff}, WS2811StripRGB, false)
	gamma := newGammaTable(1)

	words := make([]uint32, dataWords(2, WS2811StripRGB))
	encode(&ch, &gamma, words)

	for _, sym := range symbols(words, 48) {
		require.Equal(t, symbolLow, sym)
	}
}

func TestEncodeClearsStaleWords(t *testing.T) {
	var ch ledChannel
	ch.brightness = 255
	ch.attach(fakeStrip{0}, WS2811StripRGB, false)
	gamma := newGammaTable(1)

	words := make([]uint32, dataWords(1, WS2811StripRGB))
	for i := range words {
		words[i] = 0xffffffff
	}
	encode(&ch, &gamma, words)

	assert.Equal(t, expectSymbols(0, 0, 0), symbols(words, 24))
	assert.Zero(t, words[len(words)-1])
}

func TestDataWords(t *testing.T) {
	// 25 RGB LEDs: 1800 bits, 225 bytes, rounded down to 224, plus 8 and 32 bytes of spacing
	assert.Equal(t, uint32(66), dataWords(25, WS2812Strip))
	assert.Equal(t, int64(750), protocolTime(25, WS2812Strip, 800000))
	assert.Equal(t, int64(1500), protocolTime(25, WS2812Strip, 400000))
}

func TestGammaTable(t *testing.T) {
	linear := newGammaTable(1)
	for x := 0; x < 256; x++ {
		require.Equal(t, uint8(x), linear[x])
	}

	curved := newGammaTable(2.2)
	assert.Equal(t, uint8(0), curved[0])
	assert.Equal(t, uint8(255), curved[255])
	assert.Less(t, curved[128], uint8(128))
}

func TestParseStripType(t *testing.T) {
	st, err := ParseStripType(" WS2812 ")
	require.NoError(t, err)
	assert.Equal(t, WS2811StripGRB, st)
	assert.Equal(t, 3, st.colors())

	st, err = ParseStripType("sk6812w")
	require.NoError(t, err)
	assert.Equal(t, 4, st.colors())

	_, err = ParseStripType("apa102")
	assert.ErrorIs(t, err, ErrUnknownStripType)
}
