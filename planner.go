package fizzmatrix

//Plan returns the frames showing n for budget time units.
/*
Multiples of both 3 and 5 show crackle and then pop, splitting the budget in two halves where pop
takes the odd unit. Other multiples of 3 show crackle, other multiples of 5 show pop. All remaining
numbers are shown digit by digit, see RenderNumber.
*/
func Plan(n, budget uint32) Frames {
	switch {
	case n%3 == 0 && n%5 == 0:
		return Frames{
			{Crackle, budget / 2},
			{Pop, ceilDiv(budget, 2)},
		}
	case n%3 == 0:
		return Frames{{Crackle, budget}}
	case n%5 == 0:
		return Frames{{Pop, budget}}
	}
	return RenderNumber(n, budget)
}

//RenderNumber returns the frames showing the digits of n, most significant first.
/*
The budget is divided evenly between the digits and the least significant digit takes whatever the
integer division left over, so the frames always add up to budget. When a digit repeats the one
before it, a blank of a quarter of its slice is shown first, cut from the digit's own slice.
*/
func RenderNumber(n, budget uint32) Frames {
	count := DigitCount(n)
	frames := make(Frames, 0, count*2)
	remaining := budget

	var prev Pattern
	havePrev := false
	for i := count; i > 0; i-- {
		digit := Digit(DigitAt(n, i-1))

		slice := budget / count
		if i == 1 {
			slice = remaining
		}
		remaining -= slice

		if havePrev && digit == prev {
			pause := slice / 4
			slice -= pause
			frames = append(frames, Frame{Blank, pause})
		}

		frames = append(frames, Frame{digit, slice})
		prev, havePrev = digit, true
	}
	return frames
}

//ceilDiv returns a divided by b, rounded up.
func ceilDiv(a, b uint32) uint32 {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
