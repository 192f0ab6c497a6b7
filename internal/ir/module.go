package ir

import "github.com/google/uuid"

// Module is a collection of functions, in declaration order. Named
// functions are unique within a module; anonymous ones are numbered
// densely from 0 in module order.
type Module struct {
	Name  string
	ID    uuid.UUID
	Funcs []*Func

	nextAnon int
}

// NewModule returns an empty module with a fresh identity.
func NewModule(name string) *Module {
	return &Module{Name: name, ID: uuid.New()}
}

// Lookup returns the named function, or nil. Anonymous functions are
// never found.
func (m *Module) Lookup(name string) *Func {
	if name == "" {
		return nil
	}
	for _, f := range m.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// NewFunc adds a body-less function with the given parameter names.
// The caller must ensure a named function is not already present.
func (m *Module) NewFunc(name string, params []string) *Func {
	f := newFunc(m, name, params)
	if name == "" {
		f.anon = m.nextAnon
		m.nextAnon++
	}
	m.Funcs = append(m.Funcs, f)
	return f
}

// Remove deletes f from the module and renumbers the anonymous
// functions that remain. It is a no-op if f is not present.
func (m *Module) Remove(f *Func) {
	for i, g := range m.Funcs {
		if g == f {
			m.Funcs = append(m.Funcs[:i], m.Funcs[i+1:]...)
			f.Module = nil
			m.renumber()
			return
		}
	}
}

func (m *Module) renumber() {
	m.nextAnon = 0
	for _, f := range m.Funcs {
		if f.Name == "" {
			f.anon = m.nextAnon
			m.nextAnon++
		}
	}
}

// Contains reports whether f belongs to m.
func (m *Module) Contains(f *Func) bool {
	for _, g := range m.Funcs {
		if g == f {
			return true
		}
	}
	return false
}

// Declarations returns the body-less functions of m.
func (m *Module) Declarations() []*Func {
	var decls []*Func
	for _, f := range m.Funcs {
		if f.IsDeclaration() {
			decls = append(decls, f)
		}
	}
	return decls
}
