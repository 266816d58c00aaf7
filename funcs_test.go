package calc

import (
	"errors"
	"math"
	"math/big"
	"testing"
)

func TestFunctionArity(t *testing.T) {
	cases := []struct {
		name     string
		min, max int
	}{
		{"sin", 1, 1},
		{"cos", 1, 1},
		{"tan", 1, 1},
		{"log", 1, 1},
		{"ln", 1, 2},
		{"sqrt", 1, 1},
		{"abs", 1, 1},
		{"floor", 1, 1},
		{"ceil", 1, 1},
		{"factorial", 1, 1},
	}
	if len(functions) != len(cases) {
		t.Errorf("want %d functions, have %d", len(cases), len(functions))
	}
	for _, c := range cases {
		f := functions[c.name]
		if f == nil {
			t.Errorf("no function %s", c.name)
			continue
		}
		min, max := f.arity()
		if min != c.min || max != c.max {
			t.Errorf("%s: want arity %d to %d, got %d to %d", c.name, c.min, c.max, min, max)
		}
		if canCall(f, c.min-1) || canCall(f, c.max+1) {
			t.Errorf("%s can be called outside its arity", c.name)
		}
	}
}

func TestTrigIsDegreeConverted(t *testing.T) {
	for name, f := range functions {
		_, isTrig := f.(trig)
		want := name == "sin" || name == "cos" || name == "tan"
		if isTrig != want {
			t.Errorf("%s: trig is %t", name, isTrig)
		}
	}
}

func TestLogExact(t *testing.T) {
	p := 1.0
	for k := 0; k <= 22; k++ {
		r, err := log10(p)
		if err != nil {
			t.Fatalf("log10(%g): %v", p, err)
		}
		if r != float64(k) {
			t.Errorf("log10(%g): want %d, got %g", p, k, r)
		}
		p *= 10
	}
	for k := 1; k < 64; k++ {
		x := math.Ldexp(1, k)
		r, err := ln([]float64{x, 2})
		if err != nil {
			t.Fatalf("ln(%g, 2): %v", x, err)
		}
		if r != float64(k) {
			t.Errorf("ln(%g, 2): want %d, got %g", x, k, r)
		}
	}
}

func TestLogInf(t *testing.T) {
	if r, err := log10(math.Inf(1)); err != nil || !math.IsInf(r, 1) {
		t.Errorf("log10(inf): want inf, got %g, %v", r, err)
	}
	if r, err := ln([]float64{math.Inf(1)}); err != nil || !math.IsInf(r, 1) {
		t.Errorf("ln(inf): want inf, got %g, %v", r, err)
	}
	if r, err := ln([]float64{math.Inf(1), math.Inf(1)}); err != nil || !math.IsNaN(r) {
		t.Errorf("ln(inf, inf): want nan, got %g, %v", r, err)
	}
}

func TestFactorial(t *testing.T) {
	want := big.NewInt(1)
	for n := int64(0); n <= maxFactorial; n++ {
		if n > 0 {
			want.Mul(want, big.NewInt(n))
		}
		w, _ := new(big.Float).SetInt(want).Float64()
		r, err := factorial(float64(n))
		if err != nil {
			t.Fatalf("factorial(%d): %v", n, err)
		}
		if r != w {
			t.Errorf("factorial(%d): want %g, got %g", n, w, r)
		}
	}
	if r, _ := factorial(maxFactorial); math.IsInf(r, 0) {
		t.Errorf("factorial(%d) is infinite", maxFactorial)
	}
}

func TestDomainErrors(t *testing.T) {
	cases := []struct {
		name string
		f    function
		args []float64
		arg  int
	}{
		{"sqrt-neg", functions["sqrt"], []float64{-1}, 1},
		{"log-nan", functions["log"], []float64{math.NaN()}, 1},
		{"log-neg-inf", functions["log"], []float64{math.Inf(-1)}, 1},
		{"ln-zero", functions["ln"], []float64{0}, 1},
		{"ln-base-zero", functions["ln"], []float64{2, 0}, 2},
		{"ln-base-one", functions["ln"], []float64{2, 1}, 2},
		{"floor-inf", functions["floor"], []float64{math.Inf(1)}, 1},
		{"ceil-nan", functions["ceil"], []float64{math.NaN()}, 1},
		{"factorial-nan", functions["factorial"], []float64{math.NaN()}, 1},
		{"factorial-inf", functions["factorial"], []float64{math.Inf(1)}, 1},
		{"cos-inf", functions["cos"], []float64{math.Inf(-1)}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.f.call(c.args)
			var ae *ArgumentError
			if !errors.As(err, &ae) {
				t.Fatalf("want ArgumentError, got %#v", err)
			}
			if ae.Arg != c.arg {
				t.Errorf("want error on argument %d, got %d", c.arg, ae.Arg)
			}
		})
	}
}

func TestNaNPassesThrough(t *testing.T) {
	for _, name := range []string{"sin", "cos", "tan", "sqrt", "abs"} {
		r, err := functions[name].call([]float64{math.NaN()})
		if err != nil {
			t.Errorf("%s(nan): %v", name, err)
		}
		if !math.IsNaN(r) {
			t.Errorf("%s(nan): want nan, got %g", name, r)
		}
	}
}

func TestFloorMod(t *testing.T) {
	cases := []struct {
		x, y, r float64
	}{
		{7, 3, 1},
		{-7, 3, 2},
		{7, -3, -2},
		{-7, -3, -1},
		{6, 3, 0},
		{-6, 3, 0},
		{6, -3, math.Copysign(0, -1)},
		{5.5, 2, 1.5},
		{-5.5, 2, 0.5},
	}
	for _, c := range cases {
		r := floormod(c.x, c.y)
		if r != c.r || math.Signbit(r) != math.Signbit(c.r) {
			t.Errorf("floormod(%g, %g): want %g, got %g", c.x, c.y, c.r, r)
		}
	}
}

func TestDisallowedConstruct(t *testing.T) {
	bad := &node{kind: nodeNone}
	cases := []struct {
		name string
		err  func() error
	}{
		{"eval", func() error { _, err := bad.eval(Radians); return err }},
		{"validate", func() error { return (&Expr{n: bad}).Validate() }},
		{"nested-eval", func() error {
			n := &node{kind: nodeAdd, left: &node{kind: nodeNum, num: 1, name: "1"}, right: bad}
			_, err := n.eval(Degrees)
			return err
		}},
		{"call-arg", func() error {
			n := &node{kind: nodeCall, name: "sqrt", args: []*node{bad}}
			return n.check()
		}},
		{"arith", func() error { _, err := arith(nodeCall, 1, 2); return err }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.err()
			if !errors.As(err, new(*DisallowedConstructError)) {
				t.Fatalf("want DisallowedConstructError, got %#v", err)
			}
			if !errors.Is(err, ErrEvaluation) {
				t.Errorf("%v is not ErrEvaluation", err)
			}
		})
	}
}
