// Package codegen lowers Kaleido syntax trees into instructions for an
// execution backend.
//
// Lowering is backend-agnostic: a Context walks the tree and drives a
// Backend, which owns the function table and emits the instructions.
// NewIRBackend provides a Backend over package ir, and EmitLLVM renders
// an ir.Module as textual LLVM IR.
package codegen

// Value is an opaque backend value. Every value the lowering sees is a
// double.
type Value interface{}

// Function is a backend function: a declaration, optionally with a body.
type Function interface {
	Name() string
	NumParams() int
	Param(i int) Value
	SetParamName(i int, name string)
	HasBody() bool
}

// Backend is the instruction emission capability injected into a Context.
//
// Begin selects the function that subsequent Const, Binary and Call
// instructions are appended to. Return terminates it and may verify it.
type Backend interface {
	// Lookup returns the named function, or nil. Anonymous functions
	// (empty name) are never found.
	Lookup(name string) Function

	// Declare adds a body-less function taking and returning doubles.
	Declare(name string, params []string) Function

	// Begin discards any body fn has and opens a fresh entry block.
	Begin(fn Function)

	Const(x float64) Value

	// Binary emits x op y for op in + - * and <. The comparison is
	// unordered less-than widened to 0.0 or 1.0. Other operators fail
	// with ErrUnsupportedOperator.
	Binary(op rune, x, y Value) (Value, error)

	Call(fn Function, args []Value) Value

	// Return emits the return of v from fn and completes the body.
	Return(fn Function, v Value) error

	// Erase removes fn from the function table.
	Erase(fn Function)

	// Reset turns fn back into a body-less declaration.
	Reset(fn Function)
}
