// Package syntax implements the scanner and parser for the Kaleido
// expression language.
package syntax

import "fmt"

// Token is the class of a lexical token. Identifier text, numeric values
// and operator characters are carried alongside by the Scanner.
type Token uint

const (
	_EOF Token = iota // end of input

	// Keywords
	_Def    // def
	_Extern // extern

	// Values
	_Name   // identifier: foo, x1
	_Number // numeric literal: 1, 2.5, .5

	// _Char is any other single character: operators, parentheses,
	// commas, semicolons. The character itself is available from
	// Scanner.Char.
	_Char

	tokenCount
)

var tokenNames = [...]string{
	_EOF:    "EOF",
	_Def:    "def",
	_Extern: "extern",
	_Name:   "NAME",
	_Number: "NUMBER",
	_Char:   "CHAR",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t == _Def || t == _Extern
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// Exported tokens for the top-level driver, which dispatches on the
// class of the lookahead token.
const (
	EOF    Token = _EOF
	Def    Token = _Def
	Extern Token = _Extern
	Name   Token = _Name
	Number Token = _Number
	Char   Token = _Char
)

var keywords = map[string]Token{
	"def":    _Def,
	"extern": _Extern,
}

// LookupKeyword returns the keyword token for ident, or _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}

// binopPrecedence holds the binding power of each binary operator.
// Higher binds tighter.
var binopPrecedence = map[rune]int{
	'<': 10,
	'+': 20,
	'-': 20,
	'*': 40,
}

// Precedence returns the binary-operator precedence of ch, or -1 if ch
// is not a binary operator.
func Precedence(ch rune) int {
	if prec, ok := binopPrecedence[ch]; ok {
		return prec
	}
	return -1
}
