//go:build go1.18
// +build go1.18

package calc_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzEval(f *testing.F) {
	f.Add("sin(30)")
	f.Add("factorial(171)")
	f.Add("(-8)**(1/3)")
	f.Add("1/0")
	f.Fuzz(func(t *testing.T, s string) {
		for _, mode := range []calc.AngleMode{calc.Degrees, calc.Radians} {
			r, err := calc.EvalString(s, mode)
			if err == nil {
				continue
			}
			if r != 0 {
				t.Errorf("%q in %v: nonzero result %g with error %v", s, mode, r, err)
			}
			if !errors.Is(err, calc.ErrSyntax) && !errors.Is(err, calc.ErrEvaluation) {
				t.Errorf("%q in %v: error %#v is neither ErrSyntax nor ErrEvaluation", s, mode, err)
			}
		}
	})
}
