package ir

import (
	"fmt"
	"strings"
)

// Verify checks the structural integrity of a function.
// It returns an error describing all violations found, or nil if valid.
func Verify(f *Func) error {
	var errs []string

	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	name := f.DisplayName()

	// Parameters
	seen := make(map[string]bool, len(f.Params))
	for i, p := range f.Params {
		if p.Op != OpArg || p.Type != Float {
			add("func %s: param %d is %s <%s>, want Arg <float>", name, i, p.Op, p.Type)
		}
		if p.AuxInt != int64(i) {
			add("func %s: param %d has index %d", name, i, p.AuxInt)
		}
		if p.Func != f || p.Block != nil {
			add("func %s: param %d is not owned by the function", name, i)
		}
		if n := p.Name(); n != "" {
			if seen[n] {
				add("func %s: duplicate parameter name %q", name, n)
			}
			seen[n] = true
		}
	}

	if f.IsDeclaration() {
		if f.Entry != nil {
			add("func %s: declaration has an entry block", name)
		}
		return combineErrors(errs)
	}

	if f.Entry == nil || f.Blocks[0] != f.Entry {
		add("func %s: Blocks[0] is not the entry block", name)
	}

	// Values defined so far, in order; a value may only use values
	// defined before it.
	defined := make(map[*Value]bool)
	for _, p := range f.Params {
		defined[p] = true
	}

	for _, b := range f.Blocks {
		if b.Func != f {
			add("func %s, %s: block Func pointer mismatch", name, b)
		}

		for _, v := range b.Values {
			info := v.Op.Info()

			if v.Block != b || v.Func != f {
				add("func %s, %s, %s: value is not owned by its block", name, b, v)
			}
			if v.Op == OpInvalid || v.Op == OpArg || v.Op >= opCount {
				add("func %s, %s, %s: op %s not allowed in a block", name, b, v, v.Op)
				continue
			}
			if v.Type != info.Result {
				add("func %s, %s, %s (%s): type is %s, want %s", name, b, v, v.Op, v.Type, info.Result)
			}
			if info.NArgs >= 0 && len(v.Args) != info.NArgs {
				add("func %s, %s, %s (%s): has %d args, want %d", name, b, v, v.Op, len(v.Args), info.NArgs)
			}

			for i, arg := range v.Args {
				switch {
				case arg == nil:
					add("func %s, %s, %s: arg[%d] is nil", name, b, v, i)
					continue
				case !defined[arg]:
					add("func %s, %s, %s: arg[%d] (%s) used before definition", name, b, v, i, arg)
				}
				want := Float
				if v.Op == OpBoolToFloat {
					want = Bool
				}
				if arg.Type != want {
					add("func %s, %s, %s: arg[%d] (%s) is %s, want %s", name, b, v, i, arg, arg.Type, want)
				}
			}

			if v.Op == OpCall {
				verifyCall(f, v, add)
			}

			defined[v] = true
		}

		switch b.Kind {
		case BlockReturn:
			if len(b.Controls) != 1 || b.Controls[0] == nil {
				add("func %s, %s: return block has %d controls, want 1", name, b, len(b.Controls))
			} else if c := b.Controls[0]; !defined[c] {
				add("func %s, %s: control %s not found in function", name, b, c)
			} else if c.Type != Float {
				add("func %s, %s: returns %s, want float", name, b, c.Type)
			}
		default:
			add("func %s, %s: block has no terminator", name, b)
		}
	}

	return combineErrors(errs)
}

func verifyCall(f *Func, v *Value, add func(string, ...interface{})) {
	callee := v.Callee()
	if callee == nil {
		add("func %s, %s: call has no callee", f.DisplayName(), v)
		return
	}
	if f.Module != nil && !f.Module.Contains(callee) {
		add("func %s, %s: callee %s not in module", f.DisplayName(), v, callee.DisplayName())
	}
	if len(v.Args) != callee.NumParams() {
		add("func %s, %s: call to %s has %d args, want %d",
			f.DisplayName(), v, callee.DisplayName(), len(v.Args), callee.NumParams())
	}
}

// VerifyModule verifies every function of m.
func VerifyModule(m *Module) error {
	var errs []string
	for _, f := range m.Funcs {
		if f.Module != m {
			errs = append(errs, fmt.Sprintf("func %s: Module pointer mismatch", f.DisplayName()))
		}
		if err := Verify(f); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("module %s: %s", m.Name, strings.Join(errs, "\n"))
}

// combineErrors creates an error from a list of error strings, or returns nil.
func combineErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("IR verification failed:\n  %s", strings.Join(errs, "\n  "))
}
