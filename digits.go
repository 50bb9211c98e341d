package fizzmatrix

//maxDigitIndex is the largest index for which 10^index fits in a uint32.
const maxDigitIndex = 9

//DigitCount returns how many digits the base-10 representation of n has. 0 has one digit.
func DigitCount(n uint32) uint32 {
	if n == 0 {
		return 1
	}
	var count uint32
	for n != 0 {
		count++
		n /= 10
	}
	return count
}

//DigitAt returns the digit of n at index, counting from the least significant digit at 0.
//Indices beyond the range of uint32 return 0.
func DigitAt(n, index uint32) uint32 {
	if index > maxDigitIndex {
		return 0
	}
	pow := uint32(1)
	for i := uint32(0); i < index; i++ {
		pow *= 10
	}
	return n / pow % 10
}
