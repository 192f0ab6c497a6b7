package syntax

import (
	"bufio"
	"errors"
	"io"
	"unicode"
	"unicode/utf8"
)

// source reads runes one at a time from an io.Reader and tracks the
// position of the current rune. Input is consumed lazily so that an
// interactive reader (a terminal) is never asked for more than the
// scanner actually needs.
type source struct {
	r *bufio.Reader

	filename string
	line     uint32
	col      uint32

	// ch is the current (not yet consumed) rune, or -1 at end of input.
	// It doubles as the scanner's single character of pushback.
	ch rune

	errh func(line, col uint32, msg string)
}

// newSource wraps src. The first rune is not read until nextch is called,
// which matches the scanner's convention of starting on a blank.
func newSource(filename string, src io.Reader, errh func(line, col uint32, msg string)) *source {
	return &source{
		r:        bufio.NewReader(src),
		filename: filename,
		line:     1,
		col:      0,
		ch:       ' ',
		errh:     errh,
	}
}

// nextch advances to the next rune. The position is updated based on the
// rune being left behind, so (line, col) always describes s.ch.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	r, size, err := s.r.ReadRune()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.error("read error: " + err.Error())
		}
		s.ch = -1
		return
	}
	if r == utf8.RuneError && size == 1 {
		s.error("invalid UTF-8 encoding")
	}
	s.ch = r
}

func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

func (s *source) error(msg string) {
	if s.errh != nil {
		s.errh(s.line, s.col, msg)
	}
}

// Character classes. Identifiers are ASCII letters followed by ASCII
// letters and digits; underscores are not part of the language.

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isWhitespace(r rune) bool {
	return r >= 0 && unicode.IsSpace(r)
}

// isNumberChar reports whether r may appear in a numeric literal.
// Literals are a greedy run of digits and dots; see parseNumber.
func isNumberChar(r rune) bool {
	return isDigit(r) || r == '.'
}
