package fizzmatrix

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPatternsCoverEverySelector(t *testing.T) {
	table := DefaultPatterns()
	for d := uint32(0); d <= 9; d++ {
		bitmaps, err := table.Frames(Digit(d))
		require.NoError(t, err, "digit %d", d)
		assert.Len(t, bitmaps, 1)
	}
	blank, err := table.Frames(Blank)
	require.NoError(t, err)
	assert.Equal(t, []Bitmap{{}}, blank)

	for _, p := range []Pattern{Crackle, Pop} {
		bitmaps, err := table.Frames(p)
		require.NoError(t, err)
		assert.Len(t, bitmaps, 2, "%s is animated", p)
		assert.NotEqual(t, bitmaps[0], bitmaps[1])
	}

	_, err = table.Frames(Pattern(42))
	assert.ErrorIs(t, err, ErrUnknownPattern)
}

func TestDigitGlyphsAreDistinct(t *testing.T) {
	seen := map[Bitmap]int{}
	for d, g := range digitGlyphs {
		if other, ok := seen[g]; ok {
			t.Errorf("digit %d has the glyph of %d", d, other)
		}
		seen[g] = d
	}
}

func TestBitmapLit(t *testing.T) {
	b := Bitmap{0b10000, 0, 0, 0, 0b00001}
	assert.True(t, b.Lit(0, 0))
	assert.False(t, b.Lit(0, 1))
	assert.True(t, b.Lit(4, 4))
	assert.False(t, b.Lit(-1, 0))
	assert.False(t, b.Lit(0, 5))
}

func TestMatrixIndex(t *testing.T) {
	rows := NewMatrix(LayoutRows)
	assert.Equal(t, 0, rows.Index(0, 0))
	assert.Equal(t, 7, rows.Index(1, 2))
	assert.Equal(t, 24, rows.Index(4, 4))
	assert.Equal(t, -1, rows.Index(5, 0))

	zigzag := NewMatrix(LayoutSerpentine)
	assert.Equal(t, 2, zigzag.Index(0, 2))
	assert.Equal(t, 9, zigzag.Index(1, 0))
	assert.Equal(t, 5, zigzag.Index(1, 4))
	assert.Equal(t, 20, zigzag.Index(4, 0))
}

func TestMatrixPaint(t *testing.T) {
	m := NewMatrix(LayoutSerpentine)
	on := LED(0x00123456)
	m.Paint(Bitmap{0b10000, 0b10000, 0, 0, 0}, on)

	assert.Equal(t, 25, m.TotalCount())
	assert.Equal(t, uint32(on), m.UInt32(0))
	// row 1 runs backwards, its first column is the last LED of the row
	assert.Equal(t, uint32(on), m.UInt32(9))
	assert.Equal(t, uint8(0x12), m.Red(9))
	assert.Equal(t, uint8(0x34), m.Green(9))
	assert.Equal(t, uint8(0x56), m.Blue(9))
	assert.Equal(t, uint8(0), m.White(9))
	assert.Equal(t, Off, m.At(1, 1))

	lit := 0
	for i := 0; i < m.TotalCount(); i++ {
		if m.UInt32(i) != 0 {
			lit++
		}
	}
	assert.Equal(t, 2, lit)

	m.Paint(Bitmap{}, on)
	assert.Equal(t, Off, m.At(0, 0))

	m.Paint(Bitmap{0b11111}, on)
	m.Clear()
	assert.Equal(t, uint32(0), m.UInt32(3))
	assert.Equal(t, uint32(0), m.UInt32(-1))
	assert.Equal(t, uint32(0), m.UInt32(25))
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout("Serpentine")
	require.NoError(t, err)
	assert.Equal(t, LayoutSerpentine, l)

	l, err = ParseLayout("")
	require.NoError(t, err)
	assert.Equal(t, LayoutRows, l)

	_, err = ParseLayout("spiral")
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestLEDColors(t *testing.T) {
	led, err := ParseColor("#ff8800")
	require.NoError(t, err)
	assert.Equal(t, LED(0x00ff8800), led)

	_, err = ParseColor("orange")
	assert.ErrorIs(t, err, ErrInvalidColor)

	assert.Equal(t, LED(0x000a0b0c), ColorToLED(color.RGBA{0x0a, 0x0b, 0x0c, 0xff}))
	assert.Equal(t, led, ColorToLED(led))

	r, g, b, a := led.RGBA()
	assert.Equal(t, []uint32{0xffff, 0x8888, 0, 0xffff}, []uint32{r, g, b, a})
}
