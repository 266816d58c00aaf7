package calc

import (
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
)

// Expr = num | name | Call | Plus | Neg | Add | Sub | Mul | Div | Mod | Pow | '(' Expr ')'
// Call = name '(' [ Expr { ',' Expr } [ ',' ] ] ')'
// Plus = '+' Expr
// Neg = '-' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Mod = Expr '%' Expr
// Pow = Expr '**' Expr | Expr '^' Expr

// Expr is a parsed expression. An Expr is immutable, so it is safe to
// evaluate concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// names is the sorted list of identifiers used in the expression.
	names []string
}

// MaxDepth is the most terms Parse allows to be open at once. Each
// parenthesized group, unary operand, binary right operand, and function
// argument opens a term inside the enclosing one, so MaxDepth-1 nested
// parentheses around a number are accepted and MaxDepth are not.
const MaxDepth = 200

// parsectx holds general data for parsing.
type parsectx struct {
	// depth is the current subexpression nesting depth.
	depth int
}

// Parse parses a single expression, reading src to EOF. Names of constants
// and functions are not checked against the allow-lists; that happens during
// evaluation or with Validate.
func Parse(src io.RuneScanner) (*Expr, error) {
	scan := lex(src)
	var p parsectx
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	if tok := scan.must(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, false)
	}
	ex := Expr{n: n}
	seen := make(map[string]bool)
	n.walk(func(n *node) {
		if n.kind == nodeName && !seen[n.name] {
			seen[n.name] = true
			ex.names = append(ex.names, n.name)
		}
	})
	slices.Sort(ex.names)
	return &ex, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string) (*Expr, error) {
	return Parse(strings.NewReader(src))
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, which is always a close bracket, separator, or EOF.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxDepth {
		return nil, &DepthError{Col: scan.rune, Max: MaxDepth}
	}
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			n = &node{kind: prec.op, left: n, right: rhs}
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		case tokenNum, tokenIdent, tokenOpen:
			// Juxtaposition is not multiplication.
			return nil, &TrailingError{Col: tok.pos, Text: tok.text}
		default:
			panic("calc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		return parsenum(tok)
	case tokenIdent:
		peek, err := scan.next()
		if err != nil {
			return nil, err
		}
		if peek.kind != tokenOpen {
			scan.push(peek)
			return &node{kind: nodeName, name: tok.text}, nil
		}
		args, err := parsearglist(scan, p)
		if err != nil {
			return nil, err
		}
		return &node{kind: nodeCall, name: tok.text, args: args}, nil
	case tokenOp:
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x**-y -> x**(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		return &node{kind: prec.op, left: rhs}, nil
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		if end := scan.must(); end.kind != tokenClose {
			return nil, itShouldNotHaveEndedThisWay(end, true)
		}
		return rhs, nil
	case tokenClose:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("calc: unknown token: " + tok.String())
	}
}

// parsenum converts a number token to a literal node. Literals too large for
// a float64 become infinities.
func parsenum(tok lexToken) (*node, error) {
	v, err := strconv.ParseFloat(tok.text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
	}
	return &node{kind: nodeNum, num: v, name: tok.text}, nil
}

// parsearglist parses a list of zero or more args following the open
// parenthesis of a call, through the close parenthesis. A trailing comma after
// at least one argument is allowed.
func parsearglist(scan *lexer, p *parsectx) ([]*node, error) {
	var args []*node
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenClose {
			// f() or f(a,)
			return args, nil
		}
		scan.push(tok)
		arg, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		end := scan.must()
		switch end.kind {
		case tokenClose:
			return args, nil
		case tokenSep:
			continue
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: "(", Right: ""}
		default:
			panic("calc: parseterm ended on non-end token " + end.String())
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is whether the subexpression
// began with an open bracket.
func itShouldNotHaveEndedThisWay(tok lexToken, open bool) error {
	left := ""
	if open {
		left = "("
	}
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: left, Right: ""}
	case tokenClose:
		return &BracketError{Col: tok.pos, Left: left, Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("calc: it really should not have ended this way: " + tok.String())
	}
}

// Names returns the identifiers used in the expression, sorted.
func (e *Expr) Names() []string {
	return append(([]string)(nil), e.names...)
}

// String creates a fully parenthesized representation of the parsed
// expression. The result parses to the same expression.
func (e *Expr) String() string {
	return e.n.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an op of nodeNone.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, nodeAdd}
	case "-":
		return operator{1, false, nodeSub}
	case "*":
		return operator{5, false, nodeMul}
	case "/":
		return operator{5, false, nodeDiv}
	case "%":
		return operator{5, false, nodeMod}
	case powtext:
		return operator{15, true, nodePow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an op of nodeNone.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{10, true, nodePlus}
	case "-":
		return operator{10, true, nodeNeg}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
