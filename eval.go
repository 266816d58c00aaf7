package calc

import (
	"errors"
	"io"
	"math"
	"strings"
)

// AngleMode selects how trigonometric functions interpret their arguments.
type AngleMode bool

const (
	// Radians passes arguments to sin, cos, and tan unchanged.
	Radians AngleMode = false
	// Degrees converts arguments to sin, cos, and tan from degrees.
	Degrees AngleMode = true
)

func (m AngleMode) String() string {
	if m == Degrees {
		return "degrees"
	}
	return "radians"
}

// Eval evaluates the expression. The result is the same for the same mode
// every time. If an error occurs, e.g. an unknown name or an argument to a
// function outside the function's domain, the result is 0 and the error is
// the first one encountered evaluating left to right.
func (e *Expr) Eval(mode AngleMode) (float64, error) {
	return e.n.eval(mode)
}

// Validate reports the first unknown name, unknown function, or call with the
// wrong number of arguments in the expression, without evaluating it. An
// expression that passes Validate can still fail to evaluate because of its
// values, e.g. 1/0 or sqrt(-1).
func (e *Expr) Validate() error {
	return e.n.check()
}

// eval computes the node's value.
func (n *node) eval(mode AngleMode) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeName:
		v, ok := constants[n.name]
		if !ok {
			return 0, &UnknownIdentifierError{Name: n.name}
		}
		return v, nil
	case nodeCall:
		args := make([]float64, len(n.args))
		for i, a := range n.args {
			v, err := a.eval(mode)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		f := functions[n.name]
		if f == nil {
			return 0, &UnknownFunctionError{Name: n.name}
		}
		if !canCall(f, len(args)) {
			err := arityError(f, len(args))
			err.Func = n.name
			return 0, err
		}
		if _, ok := f.(trig); ok && mode == Degrees {
			for i := range args {
				args[i] *= degree
			}
		}
		r, err := f.call(args)
		if err != nil {
			var ae *ArgumentError
			if errors.As(err, &ae) {
				ae.Func = n.name
			}
			return 0, err
		}
		return r, nil
	case nodePlus:
		return n.left.eval(mode)
	case nodeNeg:
		v, err := n.left.eval(mode)
		if err != nil {
			return 0, err
		}
		return -v, nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		l, err := n.left.eval(mode)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(mode)
		if err != nil {
			return 0, err
		}
		return arith(n.kind, l, r)
	default:
		return 0, &DisallowedConstructError{Kind: n.kind.String()}
	}
}

// arith applies a binary operator.
func arith(op nodeKind, l, r float64) (float64, error) {
	switch op {
	case nodeAdd:
		return l + r, nil
	case nodeSub:
		return l - r, nil
	case nodeMul:
		return l * r, nil
	case nodeDiv:
		if r == 0 {
			return 0, &ArithmeticError{Op: "/", X: l, Y: r, Reason: "division by zero"}
		}
		return l / r, nil
	case nodeMod:
		if r == 0 {
			return 0, &ArithmeticError{Op: "%", X: l, Y: r, Reason: "modulo by zero"}
		}
		return floormod(l, r), nil
	case nodePow:
		v := math.Pow(l, r)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &ArithmeticError{Op: "**", X: l, Y: r, Reason: "no finite real result"}
		}
		return v, nil
	default:
		return 0, &DisallowedConstructError{Kind: op.String()}
	}
}

// floormod computes the remainder of x/y rounded toward negative infinity, so
// that a nonzero result has the sign of y. A zero result also takes the sign
// of y.
func floormod(x, y float64) float64 {
	m := math.Mod(x, y)
	if m == 0 {
		return math.Copysign(0, y)
	}
	if (m < 0) != (y < 0) {
		m += y
	}
	return m
}

// check reports the errors from names and arities that eval would report,
// in the same order, without evaluating anything.
func (n *node) check() error {
	switch n.kind {
	case nodeNum:
		return nil
	case nodeName:
		if _, ok := constants[n.name]; !ok {
			return &UnknownIdentifierError{Name: n.name}
		}
		return nil
	case nodeCall:
		for _, a := range n.args {
			if err := a.check(); err != nil {
				return err
			}
		}
		f := functions[n.name]
		if f == nil {
			return &UnknownFunctionError{Name: n.name}
		}
		if !canCall(f, len(n.args)) {
			err := arityError(f, len(n.args))
			err.Func = n.name
			return err
		}
		return nil
	case nodePlus, nodeNeg:
		return n.left.check()
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeMod, nodePow:
		if err := n.left.check(); err != nil {
			return err
		}
		return n.right.check()
	default:
		return &DisallowedConstructError{Kind: n.kind.String()}
	}
}

// Eval is a shortcut to parse an expression and return its result.
func Eval(src io.RuneScanner, mode AngleMode) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return a.Eval(mode)
}

// EvalString is a shortcut to parse and evaluate a string expression.
func EvalString(src string, mode AngleMode) (float64, error) {
	return Eval(strings.NewReader(src), mode)
}
