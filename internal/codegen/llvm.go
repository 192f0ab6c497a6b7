package codegen

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/you-not-fish/kaleido/internal/ir"
)

// EmitLLVM writes m to w as textual LLVM IR: a header, the declarations
// of body-less functions, then every function with a body in module
// order.
func EmitLLVM(w io.Writer, m *ir.Module) error {
	e := &emitter{w: w}

	name := escapeString(m.Name)
	e.top("; ModuleID = '%s'", name)
	e.top("; uuid %s", m.ID)
	e.top("source_filename = \"%s\"", name)

	for _, f := range m.Funcs {
		e.blank()
		lowerFunc(e, f)
	}
	return e.err
}

// EmitFunc writes a single function to w: a declare line for a
// declaration, a define block otherwise.
func EmitFunc(w io.Writer, f *ir.Func) error {
	e := &emitter{w: w}
	lowerFunc(e, f)
	return e.err
}

func lowerFunc(e *emitter, f *ir.Func) {
	if f.IsDeclaration() {
		types := make([]string, f.NumParams())
		for i := range types {
			types[i] = llvmDouble
		}
		e.top("declare %s @%s(%s)", llvmDouble, globalName(f), strings.Join(types, ", "))
		return
	}

	e.beginFunc()
	params := make([]string, f.NumParams())
	for i, p := range f.Params {
		params[i] = llvmDouble + " " + e.bindParam(p)
	}

	e.top("define %s @%s(%s) {", llvmDouble, globalName(f), strings.Join(params, ", "))
	for _, b := range f.Blocks {
		e.top("%s:", e.label(b))
		for _, v := range b.Values {
			lowerValue(e, v)
		}
		lowerTerminator(e, b)
	}
	e.top("}")
}

func lowerValue(e *emitter, v *ir.Value) {
	switch v.Op {
	// Constants are inlined at use sites.
	case ir.OpConstFloat:
		return

	case ir.OpAddF64:
		emitBinOp(e, "fadd", v)
	case ir.OpSubF64:
		emitBinOp(e, "fsub", v)
	case ir.OpMulF64:
		emitBinOp(e, "fmul", v)

	case ir.OpLtF64:
		x, y := operand(e, v.Args[0]), operand(e, v.Args[1])
		e.inst("%s = fcmp ult %s %s, %s", e.temp(v), llvmDouble, x, y)

	case ir.OpBoolToFloat:
		x := operand(e, v.Args[0])
		e.inst("%s = uitofp %s %s to %s", e.temp(v), llvmBool, x, llvmDouble)

	case ir.OpCall:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = llvmType(a.Type) + " " + operand(e, a)
		}
		e.inst("%s = call %s @%s(%s)", e.temp(v), llvmDouble, globalName(v.Callee()), strings.Join(args, ", "))

	default:
		e.inst("; unhandled op %s", v.Op)
	}
}

func emitBinOp(e *emitter, inst string, v *ir.Value) {
	x, y := operand(e, v.Args[0]), operand(e, v.Args[1])
	e.inst("%s = %s %s %s, %s", e.temp(v), inst, llvmType(v.Type), x, y)
}

func lowerTerminator(e *emitter, b *ir.Block) {
	switch b.Kind {
	case ir.BlockReturn:
		ret := b.Controls[0]
		e.inst("ret %s %s", llvmType(ret.Type), operand(e, ret))
	default:
		e.inst("unreachable")
	}
}

// operand returns the LLVM IR operand string for an IR value.
// Constants are inlined; parameters and results use their bound names.
func operand(e *emitter, v *ir.Value) string {
	if v.Op == ir.OpConstFloat {
		return formatFloat(v.AuxFloat)
	}
	if name, ok := e.temps[v]; ok {
		return name
	}
	return "undef"
}

// escapeString escapes s for an LLVM string literal: printable ASCII
// other than the quote and backslash is kept, every other byte becomes
// \XX.
func escapeString(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c < 0x7F && c != '"' && c != '\\' {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "\\%02X", c)
	}
	return b.String()
}

// globalName returns the symbol of f. Anonymous functions use their
// index in the module, as LLVM does for unnamed globals.
func globalName(f *ir.Func) string {
	return f.DisplayName()
}

// formatFloat formats a float64 as an LLVM IR floating-point literal.
// Values that survive a round trip through %e are written in decimal;
// everything else, including non-finite values, as exact hex.
func formatFloat(f float64) string {
	if !math.IsInf(f, 0) && !math.IsNaN(f) {
		s := strconv.FormatFloat(f, 'e', 6, 64)
		if back, err := strconv.ParseFloat(s, 64); err == nil && back == f {
			return s
		}
	}
	return fmt.Sprintf("0x%016X", math.Float64bits(f))
}
