package ws281x

const (
	pwmBitsPerOutputBit = 3

	symbolHigh uint8 = 0b110
	symbolLow  uint8 = 0b100

	// Minimum time to wait for the strip to latch, in microseconds
	resetTimeUs = 300
)

//dataWords returns the number of 32 bit words needed to serialize count LEDs of stripType.
func dataWords(count int, stripType StripType) uint32 {
	ledBitCount := count * stripType.colors() * 8 * pwmBitsPerOutputBit
	byteCount := (uint32(ledBitCount>>3) & ^uint32(0x7)) + 8
	byteCount += 32 //Idle spacing after the data so the strip latches
	return byteCount / 4
}

//protocolTime returns the transfer time of the strip in microseconds.
func protocolTime(count int, stripType StripType, frequency uint32) int64 {
	//2.5 uS per bit to led @ 400000
	//1.25 uS per bit to led @ 800000
	bitTime := 2.5
	if frequency == 800000 {
		bitTime = 1.25
	}
	return int64(float64(count*stripType.colors()*8) * bitTime)
}

//encode serializes the colors of ch into PWM symbol words. Every data bit becomes
//one 3 bit symbol, most significant bit first. Inversion is done by the PWM hardware.
func encode(ch *ledChannel, gamma *gammaTable, words []uint32) {
	for i := range words {
		words[i] = 0
	}
	scale := (ch.brightness & 0xff) + 1
	colors := ch.stripType.colors()

	wordPos := 0
	bitPos := 31
	for i := 0; i < ch.strip.TotalCount(); i++ {
		val := ch.strip.UInt32(i)
		color := [4]uint8{
			gamma[(((val>>ch.rshift)&0xff)*scale)>>8],
			gamma[(((val>>ch.gshift)&0xff)*scale)>>8],
			gamma[(((val>>ch.bshift)&0xff)*scale)>>8],
			gamma[(((val>>ch.wshift)&0xff)*scale)>>8],
		}
		for j := 0; j < colors; j++ {
			for k := 7; k >= 0; k-- {
				symbol := symbolLow
				if (color[j] & (1 << k)) != 0 {
					symbol = symbolHigh
				}
				for l := 2; l >= 0; l-- {
					if wordPos >= len(words) {
						return
					}
					if (symbol & (1 << l)) != 0 {
						words[wordPos] |= 1 << bitPos
					}
					bitPos--
					if bitPos < 0 {
						wordPos++
						bitPos = 31
					}
				}
			}
		}
	}
}
