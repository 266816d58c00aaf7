package calc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"
)

// function is an allow-listed function from reals to reals.
type function interface {
	// call evaluates the function. args has a length within arity. The
	// function returns an *ArgumentError for arguments outside its domain;
	// the evaluator fills in the function name.
	call(args []float64) (float64, error)
	// arity returns the minimum and maximum number of arguments.
	arity() (min, max int)
}

// constants is the allow-list of names. It is never modified.
var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

// functions is the allow-list of function names. It is never modified.
var functions = map[string]function{
	"sin": trig(math.Sin),
	"cos": trig(math.Cos),
	"tan": trig(math.Tan),

	"log":  monadic(log10),
	"ln":   variadic{1, 2, ln},
	"sqrt": monadic(sqrt),
	"abs": monadic(func(x float64) (float64, error) {
		return math.Abs(x), nil
	}),
	"floor":     monadic(integral(math.Floor)),
	"ceil":      monadic(integral(math.Ceil)),
	"factorial": monadic(factorial),
}

// degree is the size of one degree in radians.
const degree = math.Pi / 180

// canCall returns whether f can be called with n arguments.
func canCall(f function, n int) bool {
	min, max := f.arity()
	return min <= n && n <= max
}

// arityError describes the arguments f accepts.
func arityError(f function, n int) *ArgumentError {
	min, max := f.arity()
	var want string
	switch {
	case min == max && min == 1:
		want = "1 argument"
	case min == max:
		want = strconv.Itoa(min) + " arguments"
	default:
		want = strconv.Itoa(min) + " to " + strconv.Itoa(max) + " arguments"
	}
	return &ArgumentError{Reason: "takes " + want + ", got " + strconv.Itoa(n)}
}

// domain creates an error for the 1-based argument k with value x.
func domain(k int, x float64, reason string) error {
	return &ArgumentError{Arg: k, X: x, Reason: reason}
}

type monadic func(x float64) (float64, error)

func (f monadic) call(args []float64) (float64, error) {
	return f(args[0])
}

func (monadic) arity() (int, int) {
	return 1, 1
}

// trig is a trigonometric function. Its argument is converted from degrees
// when evaluating in Degrees mode.
type trig func(x float64) float64

func (f trig) call(args []float64) (float64, error) {
	x := args[0]
	if math.IsInf(x, 0) {
		return 0, domain(1, x, "must be finite")
	}
	return f(x), nil
}

func (trig) arity() (int, int) {
	return 1, 1
}

type variadic struct {
	min, max int
	f        func(args []float64) (float64, error)
}

func (v variadic) call(args []float64) (float64, error) {
	return v.f(args)
}

func (v variadic) arity() (int, int) {
	return v.min, v.max
}

// logprec is the precision in bits of intermediate logarithms. It is enough
// that rounding the result to float64 is almost always correct.
const logprec = 128

// biglog computes the natural logarithm of finite x > 0 to logprec bits.
func biglog(x float64) *big.Float {
	in := new(big.Float).SetPrec(logprec).SetFloat64(x)
	out := new(big.Float).SetPrec(logprec)
	return bigfloat.Log(out, in)
}

// logb computes the logarithm of x in base b, both positive.
func logb(x, b float64) float64 {
	if math.IsInf(x, 0) || math.IsInf(b, 0) {
		return math.Log(x) / math.Log(b)
	}
	if x == 1 {
		return 0
	}
	var q big.Float
	q.SetPrec(logprec).Quo(biglog(x), biglog(b))
	r, _ := q.Float64()
	return r
}

func logdomain(k int, x float64) error {
	switch {
	case math.IsNaN(x):
		return domain(k, x, "must be a number")
	case x <= 0:
		return domain(k, x, "must be positive")
	}
	return nil
}

func log10(x float64) (float64, error) {
	if err := logdomain(1, x); err != nil {
		return 0, err
	}
	return logb(x, 10), nil
}

func ln(args []float64) (float64, error) {
	x := args[0]
	if err := logdomain(1, x); err != nil {
		return 0, err
	}
	if len(args) == 2 {
		b := args[1]
		if err := logdomain(2, b); err != nil {
			return 0, err
		}
		if b == 1 {
			return 0, domain(2, b, "must not be 1")
		}
		return logb(x, b), nil
	}
	switch {
	case math.IsInf(x, 1):
		return x, nil
	case x == 1:
		return 0, nil
	}
	r, _ := biglog(x).Float64()
	return r, nil
}

func sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, domain(1, x, "must not be negative")
	}
	return math.Sqrt(x), nil
}

// integral wraps a rounding function so that it rejects values with no
// integer result.
func integral(f func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, domain(1, x, "must be finite")
		}
		return f(x), nil
	}
}

// maxFactorial is the largest n for which n! is a finite float64.
const maxFactorial = 170

func factorial(x float64) (float64, error) {
	switch {
	case math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x):
		return 0, domain(1, x, "must be an integer")
	case x < 0:
		return 0, domain(1, x, "must not be negative")
	case x > maxFactorial:
		return 0, domain(1, x, "must be at most "+strconv.Itoa(maxFactorial))
	}
	// Compute exactly, then round once.
	n := new(big.Int).MulRange(1, int64(x))
	r, _ := new(big.Float).SetInt(n).Float64()
	return r, nil
}
