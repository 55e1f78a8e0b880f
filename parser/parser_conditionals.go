package parser

import "github.com/arjunmenon/ecmalite/lexer"

func (p *Parser) parseIfStatement() Statement {
	p.advance() // "if"
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	then := p.parseStatement()

	var els Statement
	if p.curIs(lexer.ELSE) {
		p.advance()
		els = p.parseStatement()
	}
	return &IfStatement{Cond: cond, Then: then, Else: els}
}

// parseSwitchStatement treats "default" as a SwitchCase with a nil Test,
// matching the semantics of falling-through-until-break cases the
// interpreter implements regardless of case order in source.
func (p *Parser) parseSwitchStatement() Statement {
	p.advance() // "switch"
	p.expect(lexer.LPAREN)
	disc := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	p.expect(lexer.LBRACE)

	stmt := &SwitchStatement{Discriminant: disc}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		var c SwitchCase
		switch p.cur().Kind {
		case lexer.CASE:
			p.advance()
			c.Test = p.parseExpression(LOWEST)
			p.expect(lexer.COLON)
		case lexer.DEFAULT:
			p.advance()
			p.expect(lexer.COLON)
		default:
			p.errorf(p.cur(), "expected 'case' or 'default' in switch body")
			p.advance()
			continue
		}
		for !p.curIs(lexer.CASE) && !p.curIs(lexer.DEFAULT) && !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
			start := p.pos
			s := p.parseStatement()
			if s != nil {
				c.Statements = append(c.Statements, s)
			}
			if p.pos == start {
				p.advance()
			}
		}
		stmt.Cases = append(stmt.Cases, c)
	}
	p.expect(lexer.RBRACE)
	return stmt
}
