package ir

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

// makeAddFunc builds: def add(x y) x + y
func makeAddFunc(m *Module) *Func {
	f := m.NewFunc("add", []string{"x", "y"})
	entry := f.StartBody()

	// v2 = AddF64 <float> v0 v1
	v2 := f.NewValue(entry, OpAddF64, Float, f.Param(0), f.Param(1))

	entry.Kind = BlockReturn
	entry.SetControl(v2)
	return f
}

func newConst(f *Func, b *Block, x float64) *Value {
	v := f.NewValue(b, OpConstFloat, Float)
	v.AuxFloat = x
	return v
}

func TestManualConstruct(t *testing.T) {
	m := NewModule("test")
	f := makeAddFunc(m)

	if f.Name != "add" {
		t.Errorf("Name = %q, want %q", f.Name, "add")
	}
	if f.NumBlocks() != 1 {
		t.Errorf("NumBlocks = %d, want 1", f.NumBlocks())
	}
	if f.NumValues() != 1 {
		t.Errorf("NumValues = %d, want 1", f.NumValues())
	}
	if f.NumParams() != 2 {
		t.Errorf("NumParams = %d, want 2", f.NumParams())
	}
	if f.IsDeclaration() {
		t.Error("function with a body reported as declaration")
	}

	addVal := f.Entry.Values[0]
	if addVal.Op != OpAddF64 {
		t.Errorf("value[0].Op = %v, want OpAddF64", addVal.Op)
	}
	if f.Param(0).Uses != 1 || f.Param(1).Uses != 1 {
		t.Errorf("param uses = %d, %d; want 1, 1", f.Param(0).Uses, f.Param(1).Uses)
	}

	if err := Verify(f); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}

func TestPrintFormat(t *testing.T) {
	f := makeAddFunc(NewModule("test"))
	got := Sprint(f)

	want := `func add(x, y):
  b0: (entry)
    v0 = Arg <float> {x}
    v1 = Arg <float> [1] {y}
    v2 = AddF64 <float> v0 v1
    Return v2
`
	if got != want {
		t.Errorf("Sprint output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrintCallAndCompare(t *testing.T) {
	m := NewModule("test")
	add := makeAddFunc(m)

	// def lt(a) add(a, 2.5) < a
	f := m.NewFunc("lt", []string{"a"})
	b := f.StartBody()
	c := newConst(f, b, 2.5)
	call := f.NewValue(b, OpCall, Float, f.Param(0), c)
	call.Aux = add
	cmp := f.NewValue(b, OpLtF64, Bool, call, f.Param(0))
	res := f.NewValue(b, OpBoolToFloat, Float, cmp)
	b.Kind = BlockReturn
	b.SetControl(res)

	want := `func lt(a):
  b0: (entry)
    v0 = Arg <float> {a}
    v1 = ConstFloat <float> [2.5]
    v2 = Call <float> {add} v0 v1
    v3 = LtF64 <bool> v2 v0
    v4 = BoolToFloat <float> v3
    Return v4
`
	if got := Sprint(f); got != want {
		t.Errorf("Sprint output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if err := Verify(f); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}

func TestPrintDeclaration(t *testing.T) {
	m := NewModule("test")
	f := m.NewFunc("sin", []string{"x"})
	if !f.IsDeclaration() {
		t.Fatal("new function is not a declaration")
	}
	if got, want := Sprint(f), "extern sin(x)\n"; got != want {
		t.Errorf("Sprint = %q, want %q", got, want)
	}
	if err := Verify(f); err != nil {
		t.Errorf("Verify failed: %v", err)
	}
}

func TestPrintModule(t *testing.T) {
	m := NewModule("demo")
	m.NewFunc("sin", []string{"x"})
	makeAddFunc(m)

	var sb strings.Builder
	FprintModule(&sb, m)
	got := sb.String()

	if !strings.HasPrefix(got, "; module demo "+m.ID.String()+"\n") {
		t.Errorf("missing module header:\n%s", got)
	}
	if !strings.Contains(got, "\nextern sin(x)\n\nfunc add(x, y):\n") {
		t.Errorf("functions not printed in order:\n%s", got)
	}
}

func TestModuleIdentity(t *testing.T) {
	a, b := NewModule("a"), NewModule("b")
	if a.ID == uuid.Nil {
		t.Error("module ID is nil")
	}
	if a.ID == b.ID {
		t.Error("two modules share an ID")
	}
}

func TestModuleLookup(t *testing.T) {
	m := NewModule("test")
	add := makeAddFunc(m)
	anon := m.NewFunc("", nil)

	if got := m.Lookup("add"); got != add {
		t.Errorf("Lookup(add) = %v", got)
	}
	if got := m.Lookup("missing"); got != nil {
		t.Errorf("Lookup(missing) = %v, want nil", got)
	}
	if got := m.Lookup(""); got != nil {
		t.Errorf("Lookup(\"\") = %v, want nil", got)
	}
	if !m.Contains(anon) {
		t.Error("anonymous function not in module")
	}
}

func TestModuleAnonymousNames(t *testing.T) {
	m := NewModule("test")
	a0 := m.NewFunc("", nil)
	named := m.NewFunc("f", nil)
	a1 := m.NewFunc("", nil)

	if got := a1.DisplayName(); got != "1" {
		t.Fatalf("second anonymous function = %q, want 1", got)
	}

	m.Remove(a0)
	a2 := m.NewFunc("", nil)

	tests := []struct {
		f    *Func
		want string
	}{
		{named, "f"},
		{a1, "0"},
		{a2, "1"},
	}
	for _, tt := range tests {
		if got := tt.f.DisplayName(); got != tt.want {
			t.Errorf("DisplayName = %q, want %q", got, tt.want)
		}
	}
}

func TestModuleRemove(t *testing.T) {
	m := NewModule("test")
	f := m.NewFunc("f", []string{"x"})
	g := m.NewFunc("g", nil)

	m.Remove(f)
	if m.Lookup("f") != nil || m.Contains(f) {
		t.Error("removed function still present")
	}
	if f.Module != nil {
		t.Error("removed function still points at module")
	}
	if len(m.Funcs) != 1 || m.Funcs[0] != g {
		t.Errorf("Funcs = %v, want [g]", m.Funcs)
	}

	// Removing twice is harmless.
	m.Remove(f)
	if len(m.Funcs) != 1 {
		t.Errorf("len(Funcs) = %d after second Remove", len(m.Funcs))
	}
}

func TestClearBody(t *testing.T) {
	m := NewModule("test")
	f := makeAddFunc(m)

	f.ClearBody()
	if !f.IsDeclaration() || f.Entry != nil {
		t.Fatal("ClearBody left a body")
	}
	if f.Param(0).Uses != 0 {
		t.Errorf("param uses = %d after ClearBody", f.Param(0).Uses)
	}

	// Value numbering restarts after the parameters.
	b := f.StartBody()
	v := newConst(f, b, 1)
	if v.ID != 2 {
		t.Errorf("first body value ID = %d, want 2", v.ID)
	}
	if len(m.Declarations()) != 0 {
		t.Errorf("Declarations = %v, want none", m.Declarations())
	}
}

func TestSetParamName(t *testing.T) {
	m := NewModule("test")
	f := m.NewFunc("f", []string{"a", "b"})
	f.SetParamName(1, "z")
	if got := f.Param(1).Name(); got != "z" {
		t.Errorf("Name = %q, want z", got)
	}
	if got := Sprint(f); got != "extern f(a, z)\n" {
		t.Errorf("Sprint = %q", got)
	}
}

func TestVerifyErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(m *Module) *Func
		want  string
	}{
		{
			name: "unterminated",
			build: func(m *Module) *Func {
				f := m.NewFunc("f", nil)
				newConst(f, f.StartBody(), 1)
				return f
			},
			want: "block has no terminator",
		},
		{
			name: "wrong_result_type",
			build: func(m *Module) *Func {
				f := m.NewFunc("f", []string{"x"})
				b := f.StartBody()
				v := f.NewValue(b, OpAddF64, Bool, f.Param(0), f.Param(0))
				b.Kind = BlockReturn
				b.SetControl(v)
				return f
			},
			want: "type is bool, want float",
		},
		{
			name: "returns_bool",
			build: func(m *Module) *Func {
				f := m.NewFunc("f", []string{"x"})
				b := f.StartBody()
				v := f.NewValue(b, OpLtF64, Bool, f.Param(0), f.Param(0))
				b.Kind = BlockReturn
				b.SetControl(v)
				return f
			},
			want: "returns bool, want float",
		},
		{
			name: "widen_float",
			build: func(m *Module) *Func {
				f := m.NewFunc("f", []string{"x"})
				b := f.StartBody()
				v := f.NewValue(b, OpBoolToFloat, Float, f.Param(0))
				b.Kind = BlockReturn
				b.SetControl(v)
				return f
			},
			want: "is float, want bool",
		},
		{
			name: "foreign_value",
			build: func(m *Module) *Func {
				other := makeAddFunc(m)
				f := m.NewFunc("f", nil)
				b := f.StartBody()
				v := f.NewValue(b, OpMulF64, Float, other.Param(0), other.Param(1))
				b.Kind = BlockReturn
				b.SetControl(v)
				return f
			},
			want: "used before definition",
		},
		{
			name: "missing_operand",
			build: func(m *Module) *Func {
				f := m.NewFunc("f", []string{"x"})
				b := f.StartBody()
				v := f.NewValue(b, OpSubF64, Float, f.Param(0))
				b.Kind = BlockReturn
				b.SetControl(v)
				return f
			},
			want: "has 1 args, want 2",
		},
		{
			name: "call_arity",
			build: func(m *Module) *Func {
				add := makeAddFunc(m)
				f := m.NewFunc("f", []string{"x"})
				b := f.StartBody()
				v := f.NewValue(b, OpCall, Float, f.Param(0))
				v.Aux = add
				b.Kind = BlockReturn
				b.SetControl(v)
				return f
			},
			want: "call to add has 1 args, want 2",
		},
		{
			name: "callee_removed",
			build: func(m *Module) *Func {
				g := m.NewFunc("g", nil)
				f := m.NewFunc("f", nil)
				b := f.StartBody()
				v := f.NewValue(b, OpCall, Float)
				v.Aux = g
				b.Kind = BlockReturn
				b.SetControl(v)
				m.Remove(g)
				return f
			},
			want: "callee g not in module",
		},
		{
			name: "duplicate_param",
			build: func(m *Module) *Func {
				f := m.NewFunc("f", []string{"x", "y"})
				f.SetParamName(1, "x")
				return f
			},
			want: `duplicate parameter name "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.build(NewModule("test"))
			err := Verify(f)
			if err == nil {
				t.Fatalf("Verify passed, want error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Verify error = %v\nwant substring %q", err, tt.want)
			}
		})
	}
}

func TestVerifyModule(t *testing.T) {
	m := NewModule("test")
	makeAddFunc(m)
	m.NewFunc("sin", []string{"x"})
	if err := VerifyModule(m); err != nil {
		t.Fatalf("VerifyModule: %v", err)
	}

	bad := m.NewFunc("bad", nil)
	bad.StartBody()
	if err := VerifyModule(m); err == nil || !strings.Contains(err.Error(), "func bad") {
		t.Errorf("VerifyModule error = %v, want one naming bad", err)
	}
}

func TestOpInfo(t *testing.T) {
	tests := []struct {
		op     Op
		name   string
		pure   bool
		result Type
	}{
		{OpConstFloat, "ConstFloat", true, Float},
		{OpAddF64, "AddF64", true, Float},
		{OpLtF64, "LtF64", true, Bool},
		{OpBoolToFloat, "BoolToFloat", true, Float},
		{OpCall, "Call", false, Float},
		{Op(99), "unknown", false, TypeInvalid},
	}
	for _, tt := range tests {
		info := tt.op.Info()
		if tt.op.String() != tt.name || tt.op.IsPure() != tt.pure || info.Result != tt.result {
			t.Errorf("%d: got %s pure=%v result=%s", tt.op, tt.op, tt.op.IsPure(), info.Result)
		}
	}
}
