package codegen

import "github.com/you-not-fish/kaleido/internal/ir"

// LLVM type names.
const (
	llvmDouble = "double"
	llvmBool   = "i1"
)

// llvmType maps an IR type to its LLVM IR type string.
func llvmType(t ir.Type) string {
	switch t {
	case ir.Float:
		return llvmDouble
	case ir.Bool:
		return llvmBool
	}
	return "void"
}
