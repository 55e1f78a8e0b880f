package parser

import "github.com/arjunmenon/ecmalite/lexer"

// parseReturnStatement treats "return" followed directly by ";", "}", or
// EOF as a bare return with no value. Unlike full ECMAScript, this does
// not consult line-terminator position — the trivia-filtered token stream
// the parser works from doesn't retain line-break info, so "return\n5" and
// "return 5" parse the same way, a documented scope cut.
func (p *Parser) parseReturnStatement() Statement {
	p.advance() // "return"
	if !canStartExpression(p.cur().Kind) {
		p.skipSemi()
		return &ReturnStatement{}
	}
	value := p.parseExpression(LOWEST)
	p.skipSemi()
	return &ReturnStatement{Value: value}
}

func (p *Parser) parseThrowStatement() Statement {
	p.advance() // "throw"
	value := p.parseExpression(LOWEST)
	p.skipSemi()
	return &ThrowStatement{Value: value}
}

// parseDeleteStatement is reachable only when "delete" starts a statement;
// "delete" nested in a larger expression goes through the UnaryExpression
// prefix parser registered in parser_expressions.go instead.
func (p *Parser) parseDeleteStatement() Statement {
	p.advance() // "delete"
	target := p.parseExpression(UNARY)
	p.skipSemi()
	return &DeleteStatement{Target: target}
}

func (p *Parser) parseTryStatement() Statement {
	p.advance() // "try"
	block := p.parseBlockStatement()
	stmt := &TryStatement{Block: block}

	if p.curIs(lexer.CATCH) {
		p.advance()
		clause := &CatchClause{}
		if p.curIs(lexer.LPAREN) {
			p.advance()
			clause.Param = p.parseBindingTarget()
			p.expect(lexer.RPAREN)
		}
		clause.Body = p.parseBlockStatement()
		stmt.Catch = clause
	}
	if p.curIs(lexer.FINALLY) {
		p.advance()
		stmt.Finally = p.parseBlockStatement()
	}
	if stmt.Catch == nil && stmt.Finally == nil {
		p.errorf(p.cur(), "try statement requires a catch or finally clause")
	}
	return stmt
}
