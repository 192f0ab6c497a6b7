package syntax

import "io"

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser performs syntax analysis on Kaleido source. It keeps exactly one
// token of lookahead, cached from the scanner.
//
// A parse function either returns a complete node and leaves the
// lookahead on the first token after it, or returns an error and leaves
// the lookahead on the token that caused it. Recovery is the caller's
// job: skip one token with Next and try again at the top level.
type Parser struct {
	scanner *Scanner

	// Current token info (cached from scanner)
	tok Token
	lit string
	val float64
	ch  rune
	pos Pos

	// Error handling
	errh   func(pos Pos, msg string)
	errcnt int
	first  error
}

// NewParser creates a new Parser for the given source and primes it with
// the first token.
func NewParser(filename string, src io.Reader, errh func(pos Pos, msg string)) *Parser {
	scanErrh := func(line, col uint32, msg string) {
		if errh != nil {
			errh(NewPos(filename, line, col), msg)
		}
	}

	p := &Parser{
		scanner: NewScanner(filename, src, scanErrh),
		errh:    errh,
	}
	p.Next()
	return p
}

// ----------------------------------------------------------------------------
// Token navigation

// Next discards the lookahead token and reads the next one.
func (p *Parser) Next() {
	p.scanner.Next()
	p.tok = p.scanner.Token()
	p.lit = p.scanner.Literal()
	p.val = p.scanner.Value()
	p.ch = p.scanner.Char()
	p.pos = p.scanner.Pos()
}

// Token returns the class of the lookahead token.
func (p *Parser) Token() Token { return p.tok }

// Char returns the character of the lookahead token if it is a Char
// token, and 0 otherwise.
func (p *Parser) Char() rune {
	if p.tok != _Char {
		return 0
	}
	return p.ch
}

// Literal returns the source text of the lookahead token.
func (p *Parser) Literal() string { return p.lit }

// Pos returns the position of the lookahead token.
func (p *Parser) Pos() Pos { return p.pos }

// is reports whether the lookahead is the character ch.
func (p *Parser) is(ch rune) bool {
	return p.tok == _Char && p.ch == ch
}

// tokPrec returns the precedence of the lookahead token as a binary
// operator, or -1.
func (p *Parser) tokPrec() int {
	if p.tok != _Char {
		return -1
	}
	return Precedence(p.ch)
}

// ----------------------------------------------------------------------------
// Error handling

// syntaxError records a syntax error at the lookahead position and
// returns it.
func (p *Parser) syntaxError(msg string) error {
	err := &SyntaxError{Pos: p.pos, Msg: msg}
	if p.errcnt == 0 {
		p.first = err
	}
	p.errcnt++

	if p.errh != nil {
		p.errh(err.Pos, err.Msg)
	}
	return err
}

// Errors returns the number of syntax errors encountered so far.
func (p *Parser) Errors() int {
	return p.errcnt
}

// FirstError returns the first syntax error encountered, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// ----------------------------------------------------------------------------
// Entry points

// ParseExpression parses an expression.
//
//	expression ::= primary binoprhs
func (p *Parser) ParseExpression() (Expr, error) {
	lhs, err := p.primary()
	if err != nil {
		return nil, err
	}
	return p.binOpRHS(0, lhs)
}

// ParseDefinition parses a function definition. The lookahead must be
// the def keyword.
//
//	definition ::= 'def' prototype expression
func (p *Parser) ParseDefinition() (*Definition, error) {
	p.Next() // eat def

	proto, err := p.prototype()
	if err != nil {
		return nil, err
	}

	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return NewDefinition(proto, body), nil
}

// ParseExtern parses an external declaration. The lookahead must be the
// extern keyword.
//
//	external ::= 'extern' prototype
func (p *Parser) ParseExtern() (*Prototype, error) {
	p.Next() // eat extern
	return p.prototype()
}

// ParseTopLevelExpr parses a bare expression and wraps it in an
// anonymous, parameterless definition.
//
//	toplevelexpr ::= expression
func (p *Parser) ParseTopLevelExpr() (*Definition, error) {
	pos := p.pos
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return NewDefinition(NewPrototype(pos, "", nil), body), nil
}

// ParseProgram parses the rest of the input as a sequence of top-level
// constructs and returns those that parsed. Semicolons between them are
// skipped. After a syntax error the offending token is dropped and
// parsing resumes, so one call can report several errors.
func (p *Parser) ParseProgram() []Decl {
	var decls []Decl
	for p.tok != _EOF {
		var (
			d   Decl
			err error
		)
		switch {
		case p.is(';'):
			p.Next()
			continue
		case p.tok == _Def:
			d, err = p.ParseDefinition()
		case p.tok == _Extern:
			d, err = p.ParseExtern()
		default:
			d, err = p.ParseTopLevelExpr()
		}

		if err != nil {
			p.Next() // skip for error recovery
			continue
		}
		decls = append(decls, d)
	}
	return decls
}

// ----------------------------------------------------------------------------
// Expressions

// primary dispatches on the lookahead token.
//
//	primary ::= identifierexpr | numberexpr | parenexpr
func (p *Parser) primary() (Expr, error) {
	switch {
	case p.tok == _Name:
		return p.identifierExpr()
	case p.tok == _Number:
		return p.numberExpr(), nil
	case p.is('('):
		return p.parenExpr()
	default:
		return nil, p.syntaxError("unknown token when expecting an expression")
	}
}

// numberExpr parses a numeric literal.
//
//	numberexpr ::= number
func (p *Parser) numberExpr() Expr {
	n := NewNumberLit(p.pos, p.val)
	p.Next()
	return n
}

// parenExpr parses a parenthesized expression. The parentheses do not
// appear in the tree.
//
//	parenexpr ::= '(' expression ')'
func (p *Parser) parenExpr() (Expr, error) {
	p.Next() // eat (

	x, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if !p.is(')') {
		return nil, p.syntaxError("expected ')'")
	}
	p.Next() // eat )
	return x, nil
}

// identifierExpr parses a variable reference or a call.
//
//	identifierexpr ::= identifier
//	               |   identifier '(' [expression (',' expression)*] ')'
func (p *Parser) identifierExpr() (Expr, error) {
	pos, name := p.pos, p.lit
	p.Next() // eat identifier

	if !p.is('(') {
		return NewVariableRef(pos, name), nil
	}

	p.Next() // eat (
	args := []Expr{}
	if !p.is(')') {
		for {
			arg, err := p.ParseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if p.is(')') {
				break
			}
			if !p.is(',') {
				return nil, p.syntaxError("expected ')' or ',' in argument list")
			}
			p.Next() // eat ,
		}
	}
	p.Next() // eat )

	return NewCall(pos, name, args), nil
}

// binOpRHS folds binary operators onto lhs by precedence climbing. Only
// operators that bind at least as tightly as minPrec are consumed.
//
//	binoprhs ::= (binop primary)*
func (p *Parser) binOpRHS(minPrec int, lhs Expr) (Expr, error) {
	for {
		prec := p.tokPrec()
		if prec < minPrec {
			return lhs, nil
		}

		op := p.ch
		p.Next() // eat binop

		rhs, err := p.primary()
		if err != nil {
			return nil, err
		}

		// If the next operator binds tighter than op, it takes rhs as
		// its left operand first. Equal precedence falls through, which
		// makes chains of one precedence left-associative.
		if prec < p.tokPrec() {
			rhs, err = p.binOpRHS(prec+1, rhs)
			if err != nil {
				return nil, err
			}
		}

		lhs = NewBinaryOp(op, lhs, rhs)
	}
}

// ----------------------------------------------------------------------------
// Declarations

// prototype parses a function name and its parameter names.
//
//	prototype ::= identifier '(' identifier* ')'
func (p *Parser) prototype() (*Prototype, error) {
	if p.tok != _Name {
		return nil, p.syntaxError("expected function name in prototype")
	}
	pos, name := p.pos, p.lit
	p.Next()

	if !p.is('(') {
		return nil, p.syntaxError("expected '(' in prototype")
	}

	params := []string{}
	for p.Next(); p.tok == _Name; p.Next() {
		params = append(params, p.lit)
	}

	if !p.is(')') {
		return nil, p.syntaxError("expected ')' in prototype")
	}
	p.Next() // eat )

	return NewPrototype(pos, name, params), nil
}
