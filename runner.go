package fizzmatrix

import "github.com/pkg/errors"

//Play shows frames in order on s and stops at the first error.
func Play(s Sink, frames Frames) error {
	for _, f := range frames {
		if err := s.Show(f.Pattern, f.Duration); err != nil {
			return err
		}
	}
	return nil
}

//Run shows every number from c.First to c.Last for c.BudgetMS, each followed by a blank pause of c.PauseMS.
//It always returns an error: ErrSequenceExhausted once the last number was shown, or the first error of s.
func Run(s Sink, c Config) error {
	for n := c.First; ; n++ {
		if err := Play(s, Plan(n, c.BudgetMS)); err != nil {
			return errors.Wrapf(err, "number %d", n)
		}
		if err := s.Show(Blank, c.PauseMS); err != nil {
			return errors.Wrapf(err, "pause after %d", n)
		}
		if n >= c.Last {
			break
		}
	}
	return errors.Wrapf(ErrSequenceExhausted, "after %d", c.Last)
}
