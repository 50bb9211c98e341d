package fizzmatrix

import "github.com/pkg/errors"

//Size is the edge length of the square matrix.
const Size = 5

//Bitmap is one 5x5 image. Row 0 is the top row, bit 4 of a row is the leftmost column.
type Bitmap [Size]uint8

//Lit reports whether the LED at row and col is on.
func (b Bitmap) Lit(row, col int) bool {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return false
	}
	return b[row]&(1<<(Size-1-col)) != 0
}

//PatternTable resolves patterns to the bitmaps showing them.
//Animated patterns return more than one bitmap, which are shown in turn.
type PatternTable interface {
	Frames(p Pattern) ([]Bitmap, error)
}

//StaticTable is a PatternTable backed by a map.
type StaticTable map[Pattern][]Bitmap

//Frames returns the bitmaps of p.
func (t StaticTable) Frames(p Pattern) ([]Bitmap, error) {
	bitmaps, ok := t[p]
	if !ok || len(bitmaps) == 0 {
		return nil, errors.Wrap(ErrUnknownPattern, p.String())
	}
	return bitmaps, nil
}

var digitGlyphs = [10]Bitmap{
	{0b01110, 0b10001, 0b10001, 0b10001, 0b01110},
	{0b00100, 0b01100, 0b00100, 0b00100, 0b01110},
	{0b11110, 0b00001, 0b01110, 0b10000, 0b11111},
	{0b11110, 0b00001, 0b00110, 0b00001, 0b11110},
	{0b10010, 0b10010, 0b11111, 0b00010, 0b00010},
	{0b11111, 0b10000, 0b11110, 0b00001, 0b11110},
	{0b01111, 0b10000, 0b11110, 0b10001, 0b01110},
	{0b11111, 0b00010, 0b00100, 0b01000, 0b10000},
	{0b01110, 0b10001, 0b01110, 0b10001, 0b01110},
	{0b01110, 0b10001, 0b01111, 0b00001, 0b11110},
}

var (
	blankGlyph    = Bitmap{}
	crackleGlyphs = []Bitmap{
		{0b10101, 0b01010, 0b10101, 0b01010, 0b10101},
		{0b01010, 0b10101, 0b01010, 0b10101, 0b01010},
	}
	popGlyphs = []Bitmap{
		{0b00000, 0b01110, 0b01010, 0b01110, 0b00000},
		{0b11111, 0b10001, 0b10001, 0b10001, 0b11111},
	}
)

//DefaultPatterns returns the built-in glyphs for digits, blank, crackle and pop.
func DefaultPatterns() StaticTable {
	t := StaticTable{
		Blank:   {blankGlyph},
		Crackle: crackleGlyphs,
		Pop:     popGlyphs,
	}
	for d := range digitGlyphs {
		t[Digit(uint32(d))] = []Bitmap{digitGlyphs[d]}
	}
	return t
}
