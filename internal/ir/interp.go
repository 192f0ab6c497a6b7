package ir

import (
	"errors"
	"fmt"
	"io"
	"math"
)

// Interpreter errors.
var (
	ErrNoBody        = errors.New("function has no body")
	ErrArgCount      = errors.New("wrong number of arguments")
	ErrCallDepth     = errors.New("call depth exceeded")
	ErrInvalidOp     = errors.New("invalid operation")
	ErrUnknownExtern = errors.New("unresolved external function")
)

// DefaultMaxDepth bounds the call stack of an Interp. Without control
// flow a recursive function never terminates.
const DefaultMaxDepth = 10000

// Builtin is a native function that an extern declaration can resolve to.
type Builtin struct {
	NumParams int
	Fn        func(out io.Writer, args []float64) float64
}

func unary(f func(float64) float64) Builtin {
	return Builtin{NumParams: 1, Fn: func(_ io.Writer, a []float64) float64 { return f(a[0]) }}
}

func binary(f func(float64, float64) float64) Builtin {
	return Builtin{NumParams: 2, Fn: func(_ io.Writer, a []float64) float64 { return f(a[0], a[1]) }}
}

func putchard(out io.Writer, a []float64) float64 {
	out.Write([]byte{byte(a[0])})
	return 0
}

func printd(out io.Writer, a []float64) float64 {
	fmt.Fprintf(out, "%f\n", a[0])
	return 0
}

// Builtins returns the default table of native functions.
func Builtins() map[string]Builtin {
	return map[string]Builtin{
		"sin":      unary(math.Sin),
		"cos":      unary(math.Cos),
		"sqrt":     unary(math.Sqrt),
		"exp":      unary(math.Exp),
		"log":      unary(math.Log),
		"fabs":     unary(math.Abs),
		"floor":    unary(math.Floor),
		"ceil":     unary(math.Ceil),
		"pow":      binary(math.Pow),
		"putchard": {NumParams: 1, Fn: putchard},
		"printd":   {NumParams: 1, Fn: printd},
	}
}

// Interp evaluates IR functions with float64 semantics. Declarations
// resolve to builtins by name.
type Interp struct {
	Builtins map[string]Builtin
	MaxDepth int

	out   io.Writer
	depth int
}

// NewInterp returns an interpreter with the default builtins. Output of
// putchard and printd goes to out.
func NewInterp(out io.Writer) *Interp {
	if out == nil {
		out = io.Discard
	}
	return &Interp{
		Builtins: Builtins(),
		MaxDepth: DefaultMaxDepth,
		out:      out,
	}
}

// Call evaluates f with the given arguments.
func (in *Interp) Call(f *Func, args ...float64) (float64, error) {
	if len(args) != f.NumParams() {
		return 0, fmt.Errorf("%s: %w: got %d, want %d", f.DisplayName(), ErrArgCount, len(args), f.NumParams())
	}

	if f.IsDeclaration() {
		b, ok := in.Builtins[f.Name]
		if !ok {
			return 0, fmt.Errorf("%s: %w", f.DisplayName(), ErrUnknownExtern)
		}
		if b.NumParams != len(args) {
			return 0, fmt.Errorf("%s: %w: builtin takes %d", f.DisplayName(), ErrArgCount, b.NumParams)
		}
		return b.Fn(in.out, args), nil
	}

	if in.depth >= in.MaxDepth {
		return 0, fmt.Errorf("%s: %w (%d)", f.DisplayName(), ErrCallDepth, in.MaxDepth)
	}
	in.depth++
	defer func() { in.depth-- }()

	vals := make(map[*Value]float64, len(f.Params)+f.NumValues())
	for i, p := range f.Params {
		vals[p] = args[i]
	}

	b := f.Entry
	for _, v := range b.Values {
		x, err := in.eval(v, vals)
		if err != nil {
			return 0, err
		}
		vals[v] = x
	}

	if b.Kind != BlockReturn || len(b.Controls) != 1 {
		return 0, fmt.Errorf("%s: %w: %s is not terminated", f.DisplayName(), ErrNoBody, b)
	}
	return vals[b.Controls[0]], nil
}

func (in *Interp) eval(v *Value, vals map[*Value]float64) (float64, error) {
	arg := func(i int) float64 { return vals[v.Args[i]] }

	switch v.Op {
	case OpConstFloat:
		return v.AuxFloat, nil
	case OpAddF64:
		return arg(0) + arg(1), nil
	case OpSubF64:
		return arg(0) - arg(1), nil
	case OpMulF64:
		return arg(0) * arg(1), nil
	case OpLtF64:
		// Unordered: NaN compares less.
		if !(arg(0) >= arg(1)) {
			return 1, nil
		}
		return 0, nil
	case OpBoolToFloat:
		return arg(0), nil
	case OpCall:
		callee := v.Callee()
		if callee == nil {
			return 0, fmt.Errorf("%s: %w: call without callee", v, ErrInvalidOp)
		}
		args := make([]float64, len(v.Args))
		for i := range v.Args {
			args[i] = arg(i)
		}
		return in.Call(callee, args...)
	}
	return 0, fmt.Errorf("%s: %w: %s", v, ErrInvalidOp, v.Op)
}
