package parser

import "github.com/arjunmenon/ecmalite/lexer"

func (p *Parser) parseWhileStatement() Statement {
	p.advance() // "while"
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	body := p.parseStatement()
	return &WhileStatement{Cond: cond, Body: body}
}

func (p *Parser) parseDoWhileStatement() Statement {
	p.advance() // "do"
	body := p.parseStatement()
	p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	p.skipSemi()
	return &DoWhileStatement{Body: body, Cond: cond}
}

// parseExprListAsExpression parses a single assignment-level expression,
// folding any further comma-separated expressions into a SequenceExpression
// — used for the classic for-loop's init/update clauses, which allow commas
// without the surrounding parentheses a grouped expression would need.
func (p *Parser) parseExprListAsExpression() Expression {
	expr := p.parseExpression(COMMA)
	if !p.curIs(lexer.COMMA) {
		return expr
	}
	exprs := []Expression{expr}
	for p.curIs(lexer.COMMA) {
		p.advance()
		exprs = append(exprs, p.parseExpression(COMMA))
	}
	return &SequenceExpression{Exprs: exprs}
}

// parseForStatement covers all three for-loop shapes: classic C-style
// for(init; cond; step), for-in, and for-of. The decl and bare-target
// forms are disambiguated by trying to parse a binding target and
// checking for a following "in"/"of" before committing.
func (p *Parser) parseForStatement() Statement {
	p.advance() // "for"
	p.expect(lexer.LPAREN)

	if p.curIs(lexer.VAR) || p.curIs(lexer.LET) || p.curIs(lexer.CONST) {
		kind := declKindOf(p.advance().Kind)
		target := p.parseBindingTarget()

		if p.curIs(lexer.IN) {
			p.advance()
			obj := p.parseExpression(LOWEST)
			p.expect(lexer.RPAREN)
			body := p.parseStatement()
			return &ForInStatement{Kind: kind, IsDecl: true, Target: target, Object: obj, Body: body}
		}
		if p.curIs(lexer.OF) {
			p.advance()
			obj := p.parseExpression(ASSIGN - 1)
			p.expect(lexer.RPAREN)
			body := p.parseStatement()
			return &ForOfStatement{Kind: kind, IsDecl: true, Target: target, Object: obj, Body: body}
		}

		var init Expression
		if p.curIs(lexer.ASSIGN) {
			p.advance()
			init = p.parseExpression(COMMA)
		}
		p.expect(lexer.SEMI)
		return p.finishClassicFor(&VarStatement{Kind: kind, Target: target, Init: init})
	}

	if !p.curIs(lexer.SEMI) {
		if target := p.tryParseForInOfTarget(); target != nil {
			if p.curIs(lexer.IN) {
				p.advance()
				obj := p.parseExpression(LOWEST)
				p.expect(lexer.RPAREN)
				body := p.parseStatement()
				return &ForInStatement{Target: target, Object: obj, Body: body}
			}
			p.advance() // "of"
			obj := p.parseExpression(ASSIGN - 1)
			p.expect(lexer.RPAREN)
			body := p.parseStatement()
			return &ForOfStatement{Target: target, Object: obj, Body: body}
		}
	}

	if p.curIs(lexer.SEMI) {
		p.advance()
		return p.finishClassicFor(nil)
	}
	init := &ExpressionStatement{Expr: p.parseExprListAsExpression()}
	p.expect(lexer.SEMI)
	return p.finishClassicFor(init)
}

// tryParseForInOfTarget speculatively parses a binding target (no var/let/
// const keyword) and reports it only if "in"/"of" immediately follows;
// otherwise it rewinds the cursor and discards any errors the attempt
// recorded, since the caller falls back to parsing a plain expression.
func (p *Parser) tryParseForInOfTarget() Pattern {
	if !p.curIs(lexer.IDENT) && !p.curIs(lexer.LBRACKET) && !p.curIs(lexer.LBRACE) {
		return nil
	}
	mark := p.mark()
	errLen := len(p.errors)
	target := p.parseBindingTarget()
	if p.curIs(lexer.IN) || p.curIs(lexer.OF) {
		return target
	}
	p.reset(mark)
	p.errors = p.errors[:errLen]
	return nil
}

func (p *Parser) finishClassicFor(init Statement) Statement {
	var cond Expression
	if !p.curIs(lexer.SEMI) {
		cond = p.parseExpression(LOWEST)
	}
	p.expect(lexer.SEMI)
	var step Expression
	if !p.curIs(lexer.RPAREN) {
		step = p.parseExprListAsExpression()
	}
	p.expect(lexer.RPAREN)
	body := p.parseStatement()
	return &ForStatement{Init: init, Cond: cond, Step: step, Body: body}
}
