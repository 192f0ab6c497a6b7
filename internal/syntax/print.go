package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ----------------------------------------------------------------------------
// Canonical one-line form
//
// Describe renders an expression compactly, for tests and diagnostics:
//
//	42            number
//	x             variable
//	+(x,*(y,2))   binary operation
//	f(1,x)        call
//
// Positions are not part of the output.

// Describe returns the canonical textual form of x.
func Describe(x Expr) string {
	var b strings.Builder
	describe(&b, x)
	return b.String()
}

func describe(b *strings.Builder, x Expr) {
	switch n := x.(type) {
	case nil:
		b.WriteString("<nil>")
	case *NumberLit:
		b.WriteString(formatNumber(n.Value))
	case *VariableRef:
		b.WriteString(n.Name)
	case *BinaryOp:
		b.WriteRune(n.Op)
		b.WriteByte('(')
		describe(b, n.X)
		b.WriteByte(',')
		describe(b, n.Y)
		b.WriteByte(')')
	case *Call:
		b.WriteString(n.Callee)
		b.WriteByte('(')
		for i, a := range n.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			describe(b, a)
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "<%T>", x)
	}
}

// formatNumber formats v in the shortest form that reads back exactly.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (n *NumberLit) String() string   { return Describe(n) }
func (n *VariableRef) String() string { return Describe(n) }
func (n *BinaryOp) String() string    { return Describe(n) }
func (n *Call) String() string        { return Describe(n) }

// String renders the prototype as name(p1 p2 ...).
func (n *Prototype) String() string {
	return n.Name + "(" + strings.Join(n.Params, " ") + ")"
}

// String renders the definition as def name(p1 ...) body. A top-level
// expression renders as its body alone.
func (n *Definition) String() string {
	if n.Proto.IsAnonymous() {
		return Describe(n.Body)
	}
	return "def " + n.Proto.String() + " " + Describe(n.Body)
}

// ----------------------------------------------------------------------------
// Tree form

// Fprint writes an indented, positioned dump of the AST to w.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Definition:
		p.printf("Definition %s\n", n.pos)
		p.indent++
		p.print(n.Proto)
		p.printf("Body:\n")
		p.indent++
		p.print(n.Body)
		p.indent--
		p.indent--

	case *Prototype:
		name := n.Name
		if n.IsAnonymous() {
			name = "<anonymous>"
		}
		p.printf("Prototype %s %s\n", n.pos, name)
		if len(n.Params) > 0 {
			p.indent++
			p.printf("Params: %s\n", strings.Join(n.Params, " "))
			p.indent--
		}

	case *NumberLit:
		p.printf("NumberLit %s %s\n", n.pos, formatNumber(n.Value))

	case *VariableRef:
		p.printf("VariableRef %s %q\n", n.pos, n.Name)

	case *BinaryOp:
		p.printf("BinaryOp %s %c\n", n.pos, n.Op)
		p.indent++
		p.printf("X:\n")
		p.indent++
		p.print(n.X)
		p.indent--
		p.printf("Y:\n")
		p.indent++
		p.print(n.Y)
		p.indent--
		p.indent--

	case *Call:
		p.printf("Call %s %q\n", n.pos, n.Callee)
		if len(n.Args) > 0 {
			p.indent++
			p.printf("Args:\n")
			p.indent++
			for _, a := range n.Args {
				p.print(a)
			}
			p.indent--
			p.indent--
		}

	default:
		p.printf("<%T>\n", node)
	}
}
