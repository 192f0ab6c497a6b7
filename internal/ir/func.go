package ir

import "strconv"

// Func represents an IR function. A Func without blocks is a declaration
// (an extern, or a function whose definition failed); a Func with blocks
// has a body.
type Func struct {
	Name   string // empty for the wrapper of a top-level expression
	Module *Module
	Params []*Value // one OpArg per parameter
	Blocks []*Block // Blocks[0] is the entry
	Entry  *Block   // nil for a declaration

	anon int // display index when Name is empty

	nextValueID ID
	nextBlockID ID
}

func newFunc(m *Module, name string, params []string) *Func {
	f := &Func{Name: name, Module: m}
	for i, p := range params {
		v := &Value{
			ID:     f.nextValueID,
			Op:     OpArg,
			Type:   Float,
			Func:   f,
			AuxInt: int64(i),
			Aux:    p,
		}
		f.nextValueID++
		f.Params = append(f.Params, v)
	}
	return f
}

// DisplayName returns the name used when printing the function: its own
// name, or its index among the module's anonymous functions.
func (f *Func) DisplayName() string {
	if f.Name == "" {
		return strconv.Itoa(f.anon)
	}
	return f.Name
}

// NumParams returns the number of parameters.
func (f *Func) NumParams() int { return len(f.Params) }

// Param returns the i'th parameter value.
func (f *Func) Param(i int) *Value { return f.Params[i] }

// SetParamName renames the i'th parameter.
func (f *Func) SetParamName(i int, name string) {
	f.Params[i].Aux = name
}

// IsDeclaration reports whether f has no body.
func (f *Func) IsDeclaration() bool { return len(f.Blocks) == 0 }

// ClearBody discards all blocks, turning f back into a declaration.
func (f *Func) ClearBody() {
	f.Blocks = nil
	f.Entry = nil
	f.nextBlockID = 0
	f.nextValueID = ID(len(f.Params))
	for _, p := range f.Params {
		p.Uses = 0
	}
}

// StartBody discards any existing body and creates a fresh, unterminated
// entry block.
func (f *Func) StartBody() *Block {
	f.ClearBody()
	f.Entry = f.NewBlock(BlockInvalid)
	return f.Entry
}

// NewBlock appends an empty block of the given kind.
func (f *Func) NewBlock(kind BlockKind) *Block {
	b := &Block{
		ID:   f.nextBlockID,
		Kind: kind,
		Func: f,
	}
	f.nextBlockID++
	f.Blocks = append(f.Blocks, b)
	return b
}

// NewValue appends op(args...) to b and returns it.
func (f *Func) NewValue(b *Block, op Op, typ Type, args ...*Value) *Value {
	v := &Value{
		ID:    f.nextValueID,
		Op:    op,
		Type:  typ,
		Block: b,
		Func:  f,
	}
	f.nextValueID++
	for _, arg := range args {
		v.AddArg(arg)
	}
	b.Values = append(b.Values, v)
	return v
}

func (f *Func) NumBlocks() int { return len(f.Blocks) }

// NumValues returns the total number of values across all blocks,
// parameters excluded.
func (f *Func) NumValues() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Values)
	}
	return n
}
