package ir

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes the IR of a function to w.
//
// Format:
//
//	func add(x, y):
//	  b0: (entry)
//	    v0 = Arg <float> {x}
//	    v1 = Arg <float> [1] {y}
//	    v2 = AddF64 <float> v0 v1
//	    Return v2
//
// A declaration prints as a single line: extern name(params).
func Fprint(w io.Writer, f *Func) {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Name()
	}

	if f.IsDeclaration() {
		fmt.Fprintf(w, "extern %s(%s)\n", f.DisplayName(), strings.Join(names, ", "))
		return
	}

	fmt.Fprintf(w, "func %s(%s):\n", f.DisplayName(), strings.Join(names, ", "))
	for _, b := range f.Blocks {
		fprintBlock(w, b, f)
	}
}

func fprintBlock(w io.Writer, b *Block, f *Func) {
	label := ""
	if b == f.Entry {
		label = " (entry)"
	}
	fmt.Fprintf(w, "  %s:%s\n", b, label)

	if b == f.Entry {
		for _, p := range f.Params {
			fmt.Fprintf(w, "    %s\n", p.LongString())
		}
	}
	for _, v := range b.Values {
		fmt.Fprintf(w, "    %s\n", v.LongString())
	}

	fmt.Fprintf(w, "    %s\n", formatTerminator(b))
}

func formatTerminator(b *Block) string {
	switch b.Kind {
	case BlockReturn:
		if len(b.Controls) > 0 && b.Controls[0] != nil {
			return fmt.Sprintf("Return %s", b.Controls[0])
		}
		return "Return"
	default:
		return "???"
	}
}

// Sprint returns the IR of a function as a string.
func Sprint(f *Func) string {
	var sb strings.Builder
	Fprint(&sb, f)
	return sb.String()
}

// FprintModule writes every function of m to w, separated by blank lines.
func FprintModule(w io.Writer, m *Module) {
	fmt.Fprintf(w, "; module %s %s\n", m.Name, m.ID)
	for _, f := range m.Funcs {
		fmt.Fprintln(w)
		Fprint(w, f)
	}
}

func formatAux(aux interface{}) string {
	switch a := aux.(type) {
	case *Func:
		return a.DisplayName()
	case string:
		return a
	default:
		return fmt.Sprintf("%v", aux)
	}
}
