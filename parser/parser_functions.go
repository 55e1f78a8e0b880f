package parser

import "github.com/arjunmenon/ecmalite/lexer"

func (p *Parser) parseFunctionLiteral() *FunctionLiteral {
	p.expect(lexer.FUNCTION)
	name := ""
	if p.curIs(lexer.IDENT) {
		name = p.advance().Text
	}
	params := p.parseParamList()
	body := p.parseBlockStatement()
	return &FunctionLiteral{Name: name, Params: params, Body: body}
}

func (p *Parser) parseFunctionExpression() Expression {
	return p.parseFunctionLiteral()
}

func (p *Parser) parseFunctionDeclaration() Statement {
	fn := p.parseFunctionLiteral()
	if fn.Name == "" {
		p.errorf(p.cur(), "function declaration requires a name")
	}
	return &FunctionDeclaration{Fn: fn}
}

// parseParamList parses a "(" ... ")" parameter list: plain bindings,
// destructuring patterns, defaults, and a single trailing rest parameter.
func (p *Parser) parseParamList() []Pattern {
	p.expect(lexer.LPAREN)
	var params []Pattern
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SPREAD) {
			p.advance()
			params = append(params, &RestPattern{Target: p.parseBindingTarget()})
			break
		}
		params = append(params, p.parseBindingTargetWithDefault())
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return params
}

func (p *Parser) parseBindingTargetWithDefault() Pattern {
	target := p.parseBindingTarget()
	if p.curIs(lexer.ASSIGN) {
		p.advance()
		def := p.parseExpression(COMMA)
		return &DefaultPattern{Target: target, Default: def}
	}
	return target
}

func (p *Parser) parseBindingTarget() Pattern {
	switch p.cur().Kind {
	case lexer.IDENT:
		return &IdentifierPattern{Name: p.advance().Text}
	case lexer.LBRACKET:
		return p.parseArrayPattern()
	case lexer.LBRACE:
		return p.parseObjectPattern()
	default:
		p.errorf(p.cur(), "expected a binding target, got %s", p.cur().Kind)
		p.advance()
		return &IdentifierPattern{Name: "<error>"}
	}
}

func (p *Parser) parseArrayPattern() Pattern {
	p.expect(lexer.LBRACKET)
	pat := &ArrayPattern{}
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.COMMA) {
			pat.Elements = append(pat.Elements, nil) // elision: [a, , b]
			p.advance()
			continue
		}
		if p.curIs(lexer.SPREAD) {
			p.advance()
			pat.Rest = p.parseBindingTarget()
			break
		}
		pat.Elements = append(pat.Elements, p.parseBindingTargetWithDefault())
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return pat
}

func (p *Parser) parseObjectPattern() Pattern {
	p.expect(lexer.LBRACE)
	pat := &ObjectPattern{}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SPREAD) {
			p.advance()
			pat.Rest = p.parseBindingTarget()
			break
		}

		computed := false
		var key Expression
		if p.curIs(lexer.LBRACKET) {
			p.advance()
			key = p.parseExpression(COMMA)
			p.expect(lexer.RBRACKET)
			computed = true
		} else {
			key = &Identifier{Name: p.advance().Text}
		}

		var value Pattern
		if p.curIs(lexer.COLON) {
			p.advance()
			value = p.parseBindingTargetWithDefault()
		} else if ident, ok := key.(*Identifier); ok {
			if p.curIs(lexer.ASSIGN) {
				p.advance()
				def := p.parseExpression(COMMA)
				value = &DefaultPattern{Target: &IdentifierPattern{Name: ident.Name}, Default: def}
			} else {
				value = &IdentifierPattern{Name: ident.Name}
			}
		} else {
			p.errorf(p.cur(), "computed object pattern key requires an explicit value")
			value = &IdentifierPattern{Name: "<error>"}
		}

		pat.Properties = append(pat.Properties, ObjectPatternProperty{Key: key, Computed: computed, Value: value})
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return pat
}
