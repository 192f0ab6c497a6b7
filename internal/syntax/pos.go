package syntax

import "fmt"

// Pos is a source position. The zero value is an unknown position.
type Pos struct {
	filename string
	line     uint32 // 1-based
	col      uint32 // 1-based, counted in runes
}

// NewPos returns the position line:col in filename.
func NewPos(filename string, line, col uint32) Pos {
	return Pos{filename: filename, line: line, col: col}
}

// String formats the position as "filename:line:col", or "line:col"
// when there is no filename, or "-" for an unknown position.
func (p Pos) String() string {
	if !p.IsKnown() {
		return "-"
	}
	if p.filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.filename, p.line, p.col)
	}
	return fmt.Sprintf("%d:%d", p.line, p.col)
}

// IsKnown reports whether p refers to an actual source location.
func (p Pos) IsKnown() bool { return p.line > 0 }

// Line returns the 1-based line number.
func (p Pos) Line() uint32 { return p.line }

// Col returns the 1-based column number.
func (p Pos) Col() uint32 { return p.col }

// Filename returns the source name the position belongs to.
func (p Pos) Filename() string { return p.filename }
