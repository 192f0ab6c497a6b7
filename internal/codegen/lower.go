package codegen

import (
	"errors"

	"github.com/you-not-fish/kaleido/internal/syntax"
)

// Context lowers syntax trees through a Backend. It holds the parameter
// bindings of the function being lowered; they are replaced at the start
// of every definition.
//
// A Context is not safe for concurrent use.
type Context struct {
	backend Backend
	named   map[string]Value
}

// NewContext returns a Context that emits through b.
func NewContext(b Backend) *Context {
	return &Context{
		backend: b,
		named:   make(map[string]Value),
	}
}

// Backend returns the backend c emits through.
func (c *Context) Backend() Backend { return c.backend }

// ----------------------------------------------------------------------------
// Expressions

// Expr lowers x in the current function and returns its value.
func (c *Context) Expr(x syntax.Expr) (Value, error) {
	switch n := x.(type) {
	case *syntax.NumberLit:
		return c.backend.Const(n.Value), nil

	case *syntax.VariableRef:
		v, ok := c.named[n.Name]
		if !ok {
			return nil, errorf(n.Pos(), ErrUnboundVariable, n.Name, "unknown variable name %q", n.Name)
		}
		return v, nil

	case *syntax.BinaryOp:
		return c.binary(n)

	case *syntax.Call:
		return c.call(n)
	}
	return nil, errorf(x.Pos(), ErrUnsupportedOperator, "", "cannot lower %T", x)
}

func (c *Context) binary(n *syntax.BinaryOp) (Value, error) {
	x, err := c.Expr(n.X)
	if err != nil {
		return nil, err
	}
	y, err := c.Expr(n.Y)
	if err != nil {
		return nil, err
	}

	v, err := c.backend.Binary(n.Op, x, y)
	if err != nil {
		if errors.Is(err, ErrUnsupportedOperator) {
			return nil, errorf(n.Pos(), ErrUnsupportedOperator, string(n.Op), "invalid binary operator %q", n.Op)
		}
		return nil, err
	}
	return v, nil
}

func (c *Context) call(n *syntax.Call) (Value, error) {
	fn := c.backend.Lookup(n.Callee)
	if fn == nil {
		return nil, errorf(n.Pos(), ErrUnknownFunction, n.Callee, "unknown function referenced: %s", n.Callee)
	}
	if fn.NumParams() != len(n.Args) {
		return nil, errorf(n.Pos(), ErrArityMismatch, n.Callee,
			"incorrect number of arguments passed to %s: got %d, want %d", n.Callee, len(n.Args), fn.NumParams())
	}

	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := c.Expr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return c.backend.Call(fn, args), nil
}

// ----------------------------------------------------------------------------
// Declarations

// Prototype declares the function p describes, or reuses an existing
// declaration of the same name and arity. A reused body-less declaration
// takes the parameter names of p.
func (c *Context) Prototype(p *syntax.Prototype) (Function, error) {
	fn, err := c.declare(p)
	if err != nil {
		return nil, err
	}
	if !fn.HasBody() {
		renameParams(fn, p.Params)
	}
	return fn, nil
}

// declare finds or creates the function p describes without touching the
// parameter names of an existing one.
func (c *Context) declare(p *syntax.Prototype) (Function, error) {
	seen := make(map[string]bool, len(p.Params))
	for _, name := range p.Params {
		if seen[name] {
			return nil, errorf(p.Pos(), ErrDuplicateParameter, name, "duplicate parameter %q in prototype %s", name, p.Name)
		}
		seen[name] = true
	}

	fn := c.backend.Lookup(p.Name)
	if fn == nil {
		return c.backend.Declare(p.Name, p.Params), nil
	}

	if fn.NumParams() != len(p.Params) {
		return nil, errorf(p.Pos(), ErrArityMismatch, p.Name,
			"redefinition of function %s with different number of parameters: got %d, want %d",
			p.Name, len(p.Params), fn.NumParams())
	}
	return fn, nil
}

func renameParams(fn Function, names []string) {
	for i, name := range names {
		fn.SetParamName(i, name)
	}
}

// Definition lowers d into a function with a body. On failure no trace of
// the definition remains: a function it created is erased, and a prior
// declaration it reused is left body-less with its old parameter names.
func (c *Context) Definition(d *syntax.Definition) (Function, error) {
	proto := d.Proto

	prev := c.backend.Lookup(proto.Name)
	if prev != nil && prev.HasBody() {
		return nil, errorf(proto.Pos(), ErrDuplicateDefinition, proto.Name, "function %s cannot be redefined", proto.Name)
	}

	fn, err := c.declare(proto)
	if err != nil {
		return nil, err
	}

	c.backend.Begin(fn)

	c.named = make(map[string]Value, len(proto.Params))
	for i, name := range proto.Params {
		c.named[name] = fn.Param(i)
	}

	body, err := c.Expr(d.Body)
	if err == nil {
		err = c.backend.Return(fn, body)
	}
	if err != nil {
		if prev == nil {
			c.backend.Erase(fn)
		} else {
			c.backend.Reset(fn)
		}
		return nil, err
	}
	renameParams(fn, proto.Params)
	return fn, nil
}
