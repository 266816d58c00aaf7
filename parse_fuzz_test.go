//go:build go1.18
// +build go1.18

package calc_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/calc"
)

func FuzzParse(f *testing.F) {
	f.Add("1+2*3")
	f.Add("-2^2")
	f.Add("ln(8, 2,)")
	f.Add("open('x')")
	f.Fuzz(func(t *testing.T, s string) {
		a, err := calc.ParseString(s)
		if err != nil {
			if !errors.Is(err, calc.ErrSyntax) {
				t.Errorf("%q: parse error %#v is not ErrSyntax", s, err)
			}
			return
		}
		// Formatting adds parentheses, so deep expressions can exceed the
		// nesting limit on the second parse.
		b, err := calc.ParseString(a.String())
		if err != nil {
			if !errors.As(err, new(*calc.DepthError)) {
				t.Errorf("%q formats to %q which does not parse: %v", s, a.String(), err)
			}
			return
		}
		if a.String() != b.String() {
			t.Errorf("%q does not round trip:\n\t%s\n\t%s", s, a, b)
		}
	})
}
