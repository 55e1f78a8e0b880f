package parser

import "github.com/arjunmenon/ecmalite/lexer"

// parseArrayLiteral handles plain elements, elisions ([a, , b]), and
// spreads ([a, ...b]) — the VALUE form, as distinct from ArrayPattern's
// destructuring-target form parsed in parser_functions.go.
func (p *Parser) parseArrayLiteral() Expression {
	p.expect(lexer.LBRACKET)
	lit := &ArrayLiteral{}
	for !p.curIs(lexer.RBRACKET) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.COMMA) {
			lit.Elements = append(lit.Elements, ArrayElement{})
			p.advance()
			continue
		}
		if p.curIs(lexer.SPREAD) {
			p.advance()
			lit.Elements = append(lit.Elements, ArrayElement{Expr: p.parseExpression(COMMA), Spread: true})
		} else {
			lit.Elements = append(lit.Elements, ArrayElement{Expr: p.parseExpression(COMMA)})
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACKET)
	return lit
}

// parseObjectLiteral handles {key: value}, shorthand {x}, computed keys
// {[expr]: value}, and spreads {...obj}.
func (p *Parser) parseObjectLiteral() Expression {
	p.expect(lexer.LBRACE)
	lit := &ObjectLiteral{}
	for !p.curIs(lexer.RBRACE) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SPREAD) {
			p.advance()
			lit.Properties = append(lit.Properties, ObjectProperty{Value: p.parseExpression(COMMA), Spread: true})
			if p.curIs(lexer.COMMA) {
				p.advance()
			} else {
				break
			}
			continue
		}

		prop := ObjectProperty{}
		switch {
		case p.curIs(lexer.LBRACKET):
			p.advance()
			prop.Key = p.parseExpression(COMMA)
			p.expect(lexer.RBRACKET)
			prop.Computed = true
		case p.curIs(lexer.D_STRING) || p.curIs(lexer.S_STRING):
			prop.Key = p.parseStringLiteral()
		case p.curIs(lexer.NUMBER):
			prop.Key = p.parseNumberLiteral()
		default:
			name := p.advance().Text
			prop.Key = &Identifier{Name: name}
		}

		if p.curIs(lexer.COLON) {
			p.advance()
			prop.Value = p.parseExpression(COMMA)
		} else {
			// Shorthand {x}: only valid when the key is a bare identifier.
			ident, ok := prop.Key.(*Identifier)
			if !ok {
				p.errorf(p.cur(), "expected ':' after object property key")
				prop.Value = &BadExpression{}
			} else {
				prop.Shorthand = true
				prop.Value = &Identifier{Name: ident.Name}
			}
		}

		lit.Properties = append(lit.Properties, prop)
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return lit
}
