package calc

import (
	"errors"
	"strconv"
)

// ErrEvaluation is the kind of every error returned while evaluating a parsed
// expression. Test for it with errors.Is.
var ErrEvaluation = errors.New("evaluation error")

// UnknownIdentifierError is an error from a reference to a name that is not an
// allowed constant.
type UnknownIdentifierError struct {
	// Name is the name that was referenced.
	Name string
}

func (err *UnknownIdentifierError) Error() string {
	return "unknown name: " + strconv.Quote(err.Name)
}

// UnknownFunctionError is an error from a call to a function that is not
// allowed.
type UnknownFunctionError struct {
	// Name is the function name that was called.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return "unknown function: " + strconv.Quote(err.Name)
}

// DisallowedConstructError is an error from an expression tree node that the
// evaluator does not permit. Trees produced by Parse never contain one.
type DisallowedConstructError struct {
	// Kind names the kind of node.
	Kind string
}

func (err *DisallowedConstructError) Error() string {
	return "disallowed construct: " + err.Kind
}

// ArithmeticError is an error from an operator applied to operands for which
// it has no finite real result, such as division by zero.
type ArithmeticError struct {
	// Op is the operator.
	Op string
	// X and Y are the left and right operands.
	X, Y float64
	// Reason describes the problem.
	Reason string
}

func (err *ArithmeticError) Error() string {
	return FormatResult(err.X) + " " + err.Op + " " + FormatResult(err.Y) + ": " + err.Reason
}

// ArgumentError is an error from calling an allowed function with the wrong
// number of arguments or with an argument outside the function's domain.
type ArgumentError struct {
	// Func is the name of the function.
	Func string
	// Arg is the 1-based index of the out-of-domain argument, or 0 if the
	// error is about the number of arguments.
	Arg int
	// X is the out-of-domain argument.
	X float64
	// Reason describes the problem.
	Reason string
}

func (err *ArgumentError) Error() string {
	if err.Arg == 0 {
		return err.Func + " " + err.Reason
	}
	return FormatResult(err.X) + " outside domain of " + err.Func + " (argument " + strconv.Itoa(err.Arg) + "): " + err.Reason
}

func (err *UnknownIdentifierError) Is(target error) bool   { return target == ErrEvaluation }
func (err *UnknownFunctionError) Is(target error) bool     { return target == ErrEvaluation }
func (err *DisallowedConstructError) Is(target error) bool { return target == ErrEvaluation }
func (err *ArithmeticError) Is(target error) bool          { return target == ErrEvaluation }
func (err *ArgumentError) Is(target error) bool            { return target == ErrEvaluation }
