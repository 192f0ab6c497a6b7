package syntax

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 classes of nodes: Expressions and Declarations. The set of
// node types is closed: the marker methods keep implementations inside
// this package, so a type switch over the types below is exhaustive.
// Nodes are built bottom-up by the parser and never modified afterwards.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	aNode()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	String() string
	aExpr()
}

// Decl is the interface for the declaration nodes, *Prototype and
// *Definition.
type Decl interface {
	Node
	String() string
	aDecl()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) aNode()   {}

type expr struct{ node }

func (*expr) aExpr() {}

type decl struct{ node }

func (*decl) aDecl() {}

// ----------------------------------------------------------------------------
// Expressions

// NumberLit represents a numeric literal.
type NumberLit struct {
	expr
	Value float64
}

// VariableRef represents a reference to a named value (a parameter).
type VariableRef struct {
	expr
	Name string
}

// BinaryOp represents a binary operation: X Op Y.
// Op is one of '<', '+', '-', '*' for trees produced by the parser.
type BinaryOp struct {
	expr
	Op rune
	X  Expr
	Y  Expr
}

// Call represents a function call: Callee(Args...)
type Call struct {
	expr
	Callee string
	Args   []Expr
}

// ----------------------------------------------------------------------------
// Declarations

// Prototype represents a function signature: its name and the names of
// its parameters, which also fixes its arity. An empty Name marks the
// anonymous wrapper of a top-level expression. Parameter names are not
// checked for uniqueness here.
type Prototype struct {
	decl
	Name   string
	Params []string
}

// IsAnonymous reports whether p wraps a top-level expression.
func (p *Prototype) IsAnonymous() bool { return p.Name == "" }

// Definition represents a function definition: def Proto Body.
type Definition struct {
	decl
	Proto *Prototype
	Body  Expr
}

// ----------------------------------------------------------------------------
// Constructors, for building trees outside the parser (tests, tools).

// NewNumberLit returns a NumberLit at pos.
func NewNumberLit(pos Pos, v float64) *NumberLit {
	n := &NumberLit{Value: v}
	n.pos = pos
	return n
}

// NewVariableRef returns a VariableRef at pos.
func NewVariableRef(pos Pos, name string) *VariableRef {
	n := &VariableRef{Name: name}
	n.pos = pos
	return n
}

// NewBinaryOp returns a BinaryOp positioned at its left operand.
func NewBinaryOp(op rune, x, y Expr) *BinaryOp {
	n := &BinaryOp{Op: op, X: x, Y: y}
	n.pos = x.Pos()
	return n
}

// NewCall returns a Call at pos.
func NewCall(pos Pos, callee string, args []Expr) *Call {
	n := &Call{Callee: callee, Args: args}
	n.pos = pos
	return n
}

// NewPrototype returns a Prototype at pos.
func NewPrototype(pos Pos, name string, params []string) *Prototype {
	n := &Prototype{Name: name, Params: params}
	n.pos = pos
	return n
}

// NewDefinition returns a Definition positioned at its prototype.
func NewDefinition(proto *Prototype, body Expr) *Definition {
	n := &Definition{Proto: proto, Body: body}
	n.pos = proto.Pos()
	return n
}
