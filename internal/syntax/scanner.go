package syntax

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Scanner performs lexical analysis on Kaleido source.
type Scanner struct {
	source // embedded character reader

	// Current token info
	tok    Token
	lit    string  // identifier text, number text, or the operator character
	val    float64 // numeric value (only valid when tok == _Number)
	op     rune    // the character (only valid when tok == _Char)
	tokPos Pos

	litBuf strings.Builder
}

// NewScanner creates a new Scanner reading from src.
// The errh function is called for read and encoding errors; if nil,
// errors are silently ignored. Malformed literals are never reported.
func NewScanner(filename string, src io.Reader, errh func(line, col uint32, msg string)) *Scanner {
	return &Scanner{source: *newSource(filename, src, errh)}
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	for isWhitespace(s.ch) {
		s.nextch()
	}

	s.tokPos = s.pos()

	switch {
	case s.ch < 0:
		// End of input is not consumed: every later call returns EOF again.
		s.tok = _EOF
		s.lit = ""

	case isLetter(s.ch):
		s.scanIdent()

	case isNumberChar(s.ch):
		s.scanNumber()

	case s.ch == '#':
		s.skipComment()
		goto redo

	default:
		s.tok = _Char
		s.op = s.ch
		s.lit = string(s.ch)
		s.nextch()
	}
}

// Token returns the current token type.
func (s *Scanner) Token() Token { return s.tok }

// Literal returns the source text of the current token.
func (s *Scanner) Literal() string { return s.lit }

// Value returns the numeric value of the current _Number token.
func (s *Scanner) Value() float64 { return s.val }

// Char returns the character of the current _Char token.
func (s *Scanner) Char() rune { return s.op }

// Pos returns the current token's start position.
func (s *Scanner) Pos() Pos { return s.tokPos }

// scanIdent scans an identifier or keyword: [a-zA-Z][a-zA-Z0-9]*
func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.tok = LookupKeyword(s.lit)
}

// scanNumber scans a numeric literal: [0-9.]+
func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	for isNumberChar(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()
	s.val = parseNumber(s.lit)
	s.tok = _Number
}

// skipComment skips a '#' comment up to (not including) the end of the
// line, or to the end of input.
func (s *Scanner) skipComment() {
	for s.ch >= 0 && s.ch != '\n' && s.ch != '\r' {
		s.nextch()
	}
}

// parseNumber converts a greedily scanned literal to a float64.
//
// The literal may contain several dots ("1.2.3"). Such input is accepted
// rather than rejected: the value is that of the longest leading prefix
// that is a well-formed decimal ("1.2"), and a literal with no such prefix
// (".") is zero. Out-of-range values saturate to ±Inf.
func parseNumber(lit string) float64 {
	if v, err := strconv.ParseFloat(lit, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return v
	}

	end, dot := 0, false
	for end < len(lit) {
		if lit[end] == '.' {
			if dot {
				break
			}
			dot = true
		}
		end++
	}

	v, err := strconv.ParseFloat(lit[:end], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}
