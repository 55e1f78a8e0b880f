// Package parser: core Parser type, token cursor, and the top-level Parse
// entry point. The Pratt (precedence-climbing) expression machinery lives
// in parser_expressions.go; statement grammar lives in parser_statements.go
// and friends.
package parser

import (
	"fmt"

	"github.com/arjunmenon/ecmalite/lexer"
)

// SyntaxError records a single parse failure with enough position context
// to point a user at the offending token.
type SyntaxError struct {
	Message string
	Token   lexer.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s (near %q)", e.Token.Line, e.Token.Column, e.Message, e.Token.Text)
}

type prefixParseFn func() Expression
type infixParseFn func(left Expression) Expression

// maxParseDepth bounds expression/statement recursion so a deeply nested or
// adversarial input fails with a RecursionLimitError-shaped SyntaxError
// instead of blowing the Go call stack.
const maxParseDepth = 256

// Parser is a two-cursor (cur/peek) recursive-descent parser over a
// pre-scanned, trivia-filtered token slice. Pre-scanning (rather than
// pulling tokens from the lexer one at a time) lets the parser look
// ahead freely (lparenStartsArrow scans to the matching ")" for "=>")
// and gives it a mark/reset checkpoint, which tryParseForInOfTarget
// uses to rewind when a speculative for-in/for-of target is not
// followed by "in"/"of".
type Parser struct {
	toks []lexer.Token
	pos  int

	errors []*SyntaxError
	depth  int

	unaryFuncs  map[lexer.TokenKind]prefixParseFn
	binaryFuncs map[lexer.TokenKind]infixParseFn
}

// New tokenizes src in full and prepares a Parser positioned at the first
// significant token.
func New(src string) *Parser {
	lx := lexer.New(src)
	all := lx.ConsumeTokens()
	toks := make([]lexer.Token, 0, len(all))
	for _, t := range all {
		if !lexer.IsTrivia(t.Kind) {
			toks = append(toks, t)
		}
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != lexer.EOF {
		last := lexer.Token{Kind: lexer.EOF, Line: 1, Column: 1}
		if len(toks) > 0 {
			last.Line, last.Column = toks[len(toks)-1].Line, toks[len(toks)-1].Column
		}
		toks = append(toks, last)
	}
	p := &Parser{toks: toks}
	p.registerUnaryFuncs()
	p.registerBinaryFuncs()
	return p
}

// Errors returns every SyntaxError accumulated during Parse.
func (p *Parser) Errors() []*SyntaxError { return p.errors }

func (p *Parser) errorf(tok lexer.Token, format string, args ...interface{}) {
	p.errors = append(p.errors, &SyntaxError{Message: fmt.Sprintf(format, args...), Token: tok})
}

// ---- cursor ----

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+1]
}

func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) curIs(k lexer.TokenKind) bool  { return p.cur().Kind == k }
func (p *Parser) peekIs(k lexer.TokenKind) bool { return p.peek().Kind == k }

// expect advances past the current token if it has the expected kind,
// recording an error and leaving the cursor in place otherwise.
func (p *Parser) expect(k lexer.TokenKind) (lexer.Token, bool) {
	if p.curIs(k) {
		return p.advance(), true
	}
	p.errorf(p.cur(), "expected %s, got %s", k, p.cur().Kind)
	return p.cur(), false
}

// skipSemi consumes an optional trailing ";" — the language requires them
// in source but the parser tolerates their absence at block/EOF boundaries
// rather than implementing full automatic-semicolon-insertion edge cases.
func (p *Parser) skipSemi() {
	if p.curIs(lexer.SEMI) {
		p.advance()
	}
}

// mark/reset implement the backtracking checkpoint used by for-in/for-of
// target detection: parse tentatively, and on failure rewind as if
// nothing ran.
func (p *Parser) mark() int        { return p.pos }
func (p *Parser) reset(mark int)   { p.pos = mark }

// enterDepth increments the recursion counter and always pairs with
// exitDepth via the caller's defer, even when the limit is tripped — the
// counter must come back down on the way out, or one pathological input
// near the limit would leave every later parseExpression/parseStatement
// call in the same parse permanently refusing to descend.
func (p *Parser) enterDepth() bool {
	p.depth++
	return p.depth <= maxParseDepth
}

func (p *Parser) exitDepth() { p.depth-- }

// Parse consumes the entire token stream and returns the resulting Program.
// Partial results are returned alongside accumulated Errors() even when the
// input is malformed, so callers can report all problems at once.
func Parse(src string) (*Program, []*SyntaxError) {
	p := New(src)
	prog := p.ParseProgram()
	return prog, p.errors
}

func (p *Parser) ParseProgram() *Program {
	prog := &Program{}
	for !p.curIs(lexer.EOF) {
		start := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.pos == start {
			// Safety valve: parseStatement must always advance the cursor;
			// if it didn't (an unhandled token), force progress so Parse
			// terminates instead of looping forever.
			p.advance()
		}
	}
	return prog
}
