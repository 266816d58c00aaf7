package calc

import (
	"strings"
)

// node is a node in the abstract syntax tree of an expression. The parser
// only ever produces the kinds listed below; evaluation rejects anything else.
type node struct {
	kind nodeKind

	// num is the value of a nodeNum.
	num float64
	// name is the source text of a nodeNum, or the name of a nodeName or
	// nodeCall.
	name string

	left  *node
	right *node
	// args are the arguments of a nodeCall in source order.
	args []*node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // literal num
	nodeName // lookup(name) in constants
	nodeCall // name is function to call with args

	nodePlus // evaluate left
	nodeNeg  // evaluate left, then negate
	nodeAdd  // evaluate left, add right
	nodeSub  // evaluate left, sub right
	nodeMul  // evaluate left, mul right
	nodeDiv  // evaluate left, div by right
	nodeMod  // evaluate left, floored mod by right
	nodePow  // evaluate left, exp by right
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

// fmt writes n fully parenthesized. The output parses back to the same tree.
func (n *node) fmt(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b)
		}
		b.WriteByte('$')
	case nodeNum, nodeName:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.fmtargs(b)
	case nodePlus:
		b.WriteByte('+')
		n.left.fmt(b)
	case nodeNeg:
		b.WriteByte('-')
		n.left.fmt(b)
	case nodeAdd:
		n.fmtbin(b, " + ")
	case nodeSub:
		n.fmtbin(b, " - ")
	case nodeMul:
		n.fmtbin(b, " * ")
	case nodeDiv:
		n.fmtbin(b, " / ")
	case nodeMod:
		n.fmtbin(b, " % ")
	case nodePow:
		n.fmtbin(b, " ** ")
	default:
		b.WriteString("$" + n.kind.String() + "$")
	}
}

func (n *node) fmtbin(b *strings.Builder, op string) {
	n.left.fmt(b)
	b.WriteString(op)
	n.right.fmt(b)
}

func (n *node) fmtargs(b *strings.Builder) {
	b.WriteByte('(')
	defer b.WriteByte(')')
	for i, arg := range n.args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.fmt(b)
	}
}

// walk calls f on n, then on each of its descendants left to right.
func (n *node) walk(f func(*node)) {
	if n == nil {
		return
	}
	f(n)
	n.left.walk(f)
	n.right.walk(f)
	for _, arg := range n.args {
		arg.walk(f)
	}
}
