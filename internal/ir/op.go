// Package ir implements the intermediate representation that Kaleido
// functions are lowered into: a module of functions, each a list of
// blocks holding values in SSA form. Every value is a double except the
// result of a comparison, which is a one-bit boolean until it is widened.
package ir

// Op represents an IR operation code.
type Op int

const (
	OpInvalid Op = iota

	// Constants
	OpConstFloat // float constant; AuxFloat = value

	// Parameters
	OpArg // function parameter; AuxInt = index; Aux = name

	// Float arithmetic
	OpAddF64 // float + float
	OpSubF64 // float - float
	OpMulF64 // float * float

	// Float comparison
	OpLtF64 // float < float, unordered: true if either operand is NaN

	// Conversion
	OpBoolToFloat // bool → 0.0 or 1.0

	// Calls
	OpCall // direct call; Aux = *Func; Args = arguments

	opCount // sentinel; must be last
)

// OpInfo holds metadata about an IR operation.
type OpInfo struct {
	Name   string // human-readable name
	IsPure bool   // true if the op has no side effects
	NArgs  int    // fixed operand count, or -1 if variadic
	Result Type   // result type
}

var opInfoTable = [opCount]OpInfo{
	OpInvalid: {Name: "Invalid"},

	OpConstFloat: {Name: "ConstFloat", IsPure: true, NArgs: 0, Result: Float},
	OpArg:        {Name: "Arg", IsPure: true, NArgs: 0, Result: Float},

	OpAddF64: {Name: "AddF64", IsPure: true, NArgs: 2, Result: Float},
	OpSubF64: {Name: "SubF64", IsPure: true, NArgs: 2, Result: Float},
	OpMulF64: {Name: "MulF64", IsPure: true, NArgs: 2, Result: Float},

	OpLtF64: {Name: "LtF64", IsPure: true, NArgs: 2, Result: Bool},

	OpBoolToFloat: {Name: "BoolToFloat", IsPure: true, NArgs: 1, Result: Float},

	// Calls may reach externs with side effects (putchard).
	OpCall: {Name: "Call", NArgs: -1, Result: Float},
}

// String returns the human-readable name of the op.
func (o Op) String() string {
	return o.Info().Name
}

// Info returns the OpInfo for this op.
func (o Op) Info() OpInfo {
	if o >= 0 && int(o) < len(opInfoTable) {
		return opInfoTable[o]
	}
	return OpInfo{Name: "unknown"}
}

// IsPure returns true if this op has no side effects.
func (o Op) IsPure() bool {
	return o.Info().IsPure
}

// Type is the type of an IR value.
type Type int

const (
	TypeInvalid Type = iota
	Float            // 64-bit IEEE 754 double
	Bool             // one-bit comparison result
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	Float:       "float",
	Bool:        "bool",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}
