package codegen

import (
	"errors"
	"fmt"

	"github.com/you-not-fish/kaleido/internal/syntax"
)

// Semantic error kinds. Match them with errors.Is.
var (
	ErrUnboundVariable     = errors.New("unbound variable")
	ErrUnsupportedOperator = errors.New("unsupported operator")
	ErrUnknownFunction     = errors.New("unknown function")
	ErrArityMismatch       = errors.New("arity mismatch")
	ErrDuplicateDefinition = errors.New("duplicate definition")
	ErrDuplicateParameter  = errors.New("duplicate parameter")
)

// Error is a semantic error found while lowering. It aborts the current
// definition only.
type Error struct {
	Pos  syntax.Pos
	Kind error  // one of the Err* kinds above
	Name string // the offending variable, function or operator
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos.IsKnown() {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Kind }

func errorf(pos syntax.Pos, kind error, name, format string, args ...interface{}) *Error {
	return &Error{
		Pos:  pos,
		Kind: kind,
		Name: name,
		Msg:  fmt.Sprintf(format, args...),
	}
}
