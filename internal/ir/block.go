package ir

import "fmt"

// BlockKind says how a block ends.
type BlockKind int

const (
	BlockInvalid BlockKind = iota // body still being built
	BlockReturn                   // returns Controls[0]
)

func (k BlockKind) String() string {
	switch k {
	case BlockInvalid:
		return "invalid"
	case BlockReturn:
		return "ret"
	}
	return "unknown"
}

// Block is a straight-line run of values followed by a terminator.
// Without control flow every body is exactly one block, the entry.
type Block struct {
	ID       ID
	Kind     BlockKind
	Controls []*Value // operands of the terminator
	Values   []*Value // in evaluation order
	Func     *Func
}

func (b *Block) String() string {
	return fmt.Sprintf("b%d", b.ID)
}

// SetControl makes v the value the block returns.
func (b *Block) SetControl(v *Value) {
	b.Controls = []*Value{v}
	if v != nil {
		v.Uses++
	}
}
