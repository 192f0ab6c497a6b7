package codegen

import (
	"fmt"

	"github.com/you-not-fish/kaleido/internal/ir"
)

// irBackend emits into an ir.Module.
type irBackend struct {
	m     *ir.Module
	fn    *ir.Func
	block *ir.Block
}

// NewIRBackend returns a Backend whose function table is m.
func NewIRBackend(m *ir.Module) Backend {
	return &irBackend{m: m}
}

// irFunction adapts an *ir.Func to Function.
type irFunction struct {
	f *ir.Func
}

func (fn irFunction) Name() string                    { return fn.f.Name }
func (fn irFunction) NumParams() int                  { return fn.f.NumParams() }
func (fn irFunction) Param(i int) Value               { return fn.f.Param(i) }
func (fn irFunction) SetParamName(i int, name string) { fn.f.SetParamName(i, name) }
func (fn irFunction) HasBody() bool                   { return !fn.f.IsDeclaration() }

// IRFunc returns the ir.Func behind a Function produced by an IR backend,
// or nil.
func IRFunc(fn Function) *ir.Func {
	if f, ok := fn.(irFunction); ok {
		return f.f
	}
	return nil
}

func mustIRFunc(fn Function) *ir.Func {
	f := IRFunc(fn)
	if f == nil {
		panic(fmt.Sprintf("codegen: %T is not an IR function", fn))
	}
	return f
}

func (b *irBackend) Lookup(name string) Function {
	if f := b.m.Lookup(name); f != nil {
		return irFunction{f}
	}
	return nil
}

func (b *irBackend) Declare(name string, params []string) Function {
	return irFunction{b.m.NewFunc(name, params)}
}

func (b *irBackend) Begin(fn Function) {
	b.fn = mustIRFunc(fn)
	b.block = b.fn.StartBody()
}

func (b *irBackend) Const(x float64) Value {
	v := b.fn.NewValue(b.block, ir.OpConstFloat, ir.Float)
	v.AuxFloat = x
	return v
}

func (b *irBackend) Binary(op rune, x, y Value) (Value, error) {
	l, r := x.(*ir.Value), y.(*ir.Value)
	switch op {
	case '+':
		return b.fn.NewValue(b.block, ir.OpAddF64, ir.Float, l, r), nil
	case '-':
		return b.fn.NewValue(b.block, ir.OpSubF64, ir.Float, l, r), nil
	case '*':
		return b.fn.NewValue(b.block, ir.OpMulF64, ir.Float, l, r), nil
	case '<':
		cmp := b.fn.NewValue(b.block, ir.OpLtF64, ir.Bool, l, r)
		return b.fn.NewValue(b.block, ir.OpBoolToFloat, ir.Float, cmp), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnsupportedOperator, op)
}

func (b *irBackend) Call(fn Function, args []Value) Value {
	vals := make([]*ir.Value, len(args))
	for i, a := range args {
		vals[i] = a.(*ir.Value)
	}
	v := b.fn.NewValue(b.block, ir.OpCall, ir.Float, vals...)
	v.Aux = mustIRFunc(fn)
	return v
}

func (b *irBackend) Return(fn Function, v Value) error {
	f := mustIRFunc(fn)
	f.Entry.Kind = ir.BlockReturn
	f.Entry.SetControl(v.(*ir.Value))
	b.fn, b.block = nil, nil
	return ir.Verify(f)
}

func (b *irBackend) Erase(fn Function) {
	f := mustIRFunc(fn)
	if b.fn == f {
		b.fn, b.block = nil, nil
	}
	b.m.Remove(f)
}

func (b *irBackend) Reset(fn Function) {
	f := mustIRFunc(fn)
	if b.fn == f {
		b.fn, b.block = nil, nil
	}
	f.ClearBody()
}
