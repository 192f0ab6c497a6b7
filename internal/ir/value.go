package ir

import (
	"fmt"
	"strings"
)

// ID numbers the values and blocks of a Func.
type ID int32

// Value is one SSA definition: the result of applying Op to Args.
//
// Parameters are values too (OpArg). They belong to the Func rather than
// a block and keep IDs 0 through NumParams()-1 across body rebuilds.
type Value struct {
	ID    ID
	Op    Op
	Type  Type
	Args  []*Value
	Block *Block // nil for parameters
	Func  *Func

	AuxInt   int64       // OpArg: parameter index
	AuxFloat float64     // OpConstFloat: the constant
	Aux      interface{} // OpArg: name (string); OpCall: callee (*Func)

	Uses int32 // references from Args and block controls
}

func (v *Value) String() string {
	return fmt.Sprintf("v%d", v.ID)
}

// LongString formats v as a full definition, for example
//
//	v2 = AddF64 <float> v0 v1
func (v *Value) LongString() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s = %s <%s>", v, v.Op, v.Type)
	switch {
	case v.Op == OpConstFloat:
		fmt.Fprintf(&sb, " [%g]", v.AuxFloat)
	case v.Op == OpArg && v.AuxInt != 0:
		fmt.Fprintf(&sb, " [%d]", v.AuxInt)
	}
	if v.Aux != nil {
		sb.WriteString(" {" + formatAux(v.Aux) + "}")
	}
	for _, a := range v.Args {
		sb.WriteString(" " + a.String())
	}
	return sb.String()
}

// AddArg appends arg as an operand of v.
func (v *Value) AddArg(arg *Value) {
	v.Args = append(v.Args, arg)
	arg.Uses++
}

// Name is the parameter name of an OpArg value.
func (v *Value) Name() string {
	s, _ := v.Aux.(string)
	return s
}

// Callee is the function an OpCall value calls.
func (v *Value) Callee() *Func {
	f, _ := v.Aux.(*Func)
	return f
}
