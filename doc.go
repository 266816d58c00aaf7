// Package calc implements a safe calculator for arithmetic and trigonometric
// expressions.
//
// The grammar is the usual one for arithmetic: + - * / % with the standard
// precedence, unary signs, right-associative exponentiation written either
// "**" or "^", parentheses, and calls like "sqrt(16)". Nothing else is
// representable, so there is no way to express comparisons, assignments,
// attribute access, strings, or any other general-purpose construct.
//
// Parsing does not look at names. The only names that evaluate are the
// constants pi and e and the functions sin, cos, tan, log (base 10), ln,
// sqrt, abs, floor, ceil, and factorial; anything else is an evaluation error.
// Trigonometric functions take radians or degrees depending on the AngleMode
// given to Eval.
//
// Parse and Eval share no mutable state, so they are safe to call
// concurrently.
package calc
