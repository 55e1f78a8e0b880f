package parser

import "github.com/arjunmenon/ecmalite/lexer"

// parseStatement dispatches on the current token's kind to the matching
// statement-grammar production, falling back to an expression statement
// for anything that isn't a dedicated keyword.
func (p *Parser) parseStatement() Statement {
	ok := p.enterDepth()
	defer p.exitDepth()
	if !ok {
		p.errorf(p.cur(), "too much recursion")
		p.advance()
		return nil
	}

	switch p.cur().Kind {
	case lexer.VAR, lexer.LET, lexer.CONST:
		return p.parseVarStatement()
	case lexer.LBRACE:
		return p.parseBlockStatement()
	case lexer.SEMI:
		p.advance()
		return &EmptyStatement{}
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.DO:
		return p.parseDoWhileStatement()
	case lexer.FOR:
		return p.parseForStatement()
	case lexer.SWITCH:
		return p.parseSwitchStatement()
	case lexer.BREAK:
		p.advance()
		p.skipSemi()
		return &BreakStatement{}
	case lexer.CONTINUE:
		p.advance()
		p.skipSemi()
		return &ContinueStatement{}
	case lexer.RETURN:
		return p.parseReturnStatement()
	case lexer.THROW:
		return p.parseThrowStatement()
	case lexer.TRY:
		return p.parseTryStatement()
	case lexer.DELETE:
		return p.parseDeleteStatement()
	case lexer.FUNCTION:
		return p.parseFunctionDeclaration()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseBlockStatement() *BlockStatement {
	p.expect(lexer.LBRACE)
	block := &BlockStatement{}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		start := p.pos
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if p.pos == start {
			p.advance()
		}
	}
	p.expect(lexer.RBRACE)
	return block
}

func declKindOf(k lexer.TokenKind) DeclKind {
	switch k {
	case lexer.LET:
		return DeclLet
	case lexer.CONST:
		return DeclConst
	default:
		return DeclVar
	}
}

func (p *Parser) parseVarStatement() Statement {
	kind := declKindOf(p.advance().Kind)
	target := p.parseBindingTarget()

	var init Expression
	if p.curIs(lexer.ASSIGN) {
		p.advance()
		init = p.parseExpression(COMMA)
	} else if kind == DeclConst {
		p.errorf(p.cur(), "missing initializer in const declaration")
	}
	p.skipSemi()
	return &VarStatement{Kind: kind, Target: target, Init: init}
}

func (p *Parser) parseExpressionStatement() Statement {
	expr := p.parseExpression(LOWEST)
	if p.curIs(lexer.COMMA) {
		exprs := []Expression{expr}
		for p.curIs(lexer.COMMA) {
			p.advance()
			exprs = append(exprs, p.parseExpression(COMMA))
		}
		expr = &SequenceExpression{Exprs: exprs}
	}
	p.skipSemi()
	return &ExpressionStatement{Expr: expr}
}
