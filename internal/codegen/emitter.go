package codegen

import (
	"fmt"
	"io"
	"strconv"

	"github.com/you-not-fish/kaleido/internal/ir"
)

// emitter writes LLVM assembly one line at a time and remembers the
// first write error; later writes are dropped. It also names the locals
// of the function being written: named values and labels share one
// namespace, unnamed temporaries are numbered.
type emitter struct {
	w   io.Writer
	err error

	next   int
	temps  map[*ir.Value]string
	labels map[*ir.Block]string
	locals map[string]bool
	unique int
}

func (e *emitter) line(indent bool, format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	if indent {
		format = "  " + format
	}
	_, e.err = fmt.Fprintf(e.w, format+"\n", args...)
}

// top writes a line at column 0: headers, signatures, labels.
func (e *emitter) top(format string, args ...interface{}) { e.line(false, format, args...) }

// inst writes an instruction line.
func (e *emitter) inst(format string, args ...interface{}) { e.line(true, format, args...) }

func (e *emitter) blank() { e.top("") }

// beginFunc forgets the previous function's locals and restarts
// temporary numbering at %0.
func (e *emitter) beginFunc() {
	e.next = 0
	e.temps = make(map[*ir.Value]string)
	e.labels = make(map[*ir.Block]string)
	e.locals = make(map[string]bool)
	e.unique = 0
}

// temp binds v to the next temporary and returns its name.
func (e *emitter) temp(v *ir.Value) string {
	name := "%" + strconv.Itoa(e.next)
	e.next++
	e.temps[v] = name
	return name
}

// local reserves name in the function, appending a number when it is
// taken, and returns the reserved name.
func (e *emitter) local(name string) string {
	unique := name
	for e.locals[unique] {
		e.unique++
		unique = name + strconv.Itoa(e.unique)
	}
	e.locals[unique] = true
	return unique
}

// bindParam names parameter v.
func (e *emitter) bindParam(v *ir.Value) string {
	name := v.Name()
	if name == "" {
		name = "arg" + strconv.FormatInt(v.AuxInt, 10)
	}
	e.temps[v] = "%" + e.local(name)
	return e.temps[v]
}

// label returns the name of b, reserving one on first use. The entry
// block is "entry".
func (e *emitter) label(b *ir.Block) string {
	if name, ok := e.labels[b]; ok {
		return name
	}
	base := "entry"
	if b.ID != 0 {
		base = "b" + strconv.Itoa(int(b.ID))
	}
	e.labels[b] = e.local(base)
	return e.labels[b]
}
