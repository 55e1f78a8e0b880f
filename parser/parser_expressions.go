package parser

import (
	"strconv"
	"strings"

	"github.com/arjunmenon/ecmalite/lexer"
)

// parseExpression is the Pratt loop: parse one prefix ("primary") form,
// then keep folding it into infix forms (binary/logical/assignment/
// ternary/call/member/update) as long as the next operator binds tighter
// than the precedence floor the caller passed in.
func (p *Parser) parseExpression(precedence Precedence) Expression {
	ok := p.enterDepth()
	defer p.exitDepth()
	if !ok {
		p.errorf(p.cur(), "too much recursion")
		return &BadExpression{}
	}

	left := p.parsePrefix()
	for precedence < p.curPrecedence() {
		infix, ok := p.binaryFuncs[p.cur().Kind]
		if !ok {
			break
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parsePrefix() Expression {
	tok := p.cur()
	fn, ok := p.unaryFuncs[tok.Kind]
	if !ok {
		p.errorf(tok, "unexpected token %s in expression", tok.Kind)
		p.advance()
		return &BadExpression{}
	}
	return fn()
}

func (p *Parser) registerUnaryFuncs() {
	p.unaryFuncs = map[lexer.TokenKind]prefixParseFn{
		lexer.IDENT:    p.parseIdentifierOrArrow,
		lexer.NUMBER:   p.parseNumberLiteral,
		lexer.D_STRING: p.parseStringLiteral,
		lexer.S_STRING: p.parseStringLiteral,
		lexer.BACKTICK: p.parseTemplateLiteral,
		lexer.REGEX:    p.parseRegexLiteral,
		lexer.TRUE:     p.parseBooleanLiteral,
		lexer.FALSE:    p.parseBooleanLiteral,
		lexer.NULL:     p.parseNullLiteral,
		lexer.LPAREN:   p.parseParenOrArrow,
		lexer.LBRACKET: p.parseArrayLiteral,
		lexer.LBRACE:   p.parseObjectLiteral,
		lexer.FUNCTION: p.parseFunctionExpression,
		lexer.NEW:      p.parseNewExpression,
		lexer.SPREAD:   p.parseSpreadExpression,

		lexer.NOT:    p.parseUnaryPrefix,
		lexer.BITNOT: p.parseUnaryPrefix,
		lexer.PLUS:   p.parseUnaryPrefix,
		lexer.MINUS:  p.parseUnaryPrefix,
		lexer.TYPEOF: p.parseUnaryPrefix,
		lexer.DELETE: p.parseUnaryPrefix,

		lexer.INC: p.parseUpdatePrefix,
		lexer.DEC: p.parseUpdatePrefix,
	}
}

func (p *Parser) registerBinaryFuncs() {
	p.binaryFuncs = map[lexer.TokenKind]infixParseFn{
		lexer.QUESTION: p.parseConditional,

		lexer.NULLISH: p.parseLogical,
		lexer.AND:     p.parseLogical,
		lexer.OR:      p.parseLogical,

		lexer.BITOR: p.parseBinary, lexer.BITXOR: p.parseBinary, lexer.BITAND: p.parseBinary,
		lexer.EQ: p.parseBinary, lexer.NEQ: p.parseBinary, lexer.SEQ: p.parseBinary, lexer.SNEQ: p.parseBinary,
		lexer.LT: p.parseBinary, lexer.GT: p.parseBinary, lexer.LE: p.parseBinary, lexer.GE: p.parseBinary,
		lexer.INSTANCEOF: p.parseBinary, lexer.IN: p.parseBinary,
		lexer.SHL: p.parseBinary, lexer.SHR: p.parseBinary, lexer.USHR: p.parseBinary,
		lexer.PLUS: p.parseBinary, lexer.MINUS: p.parseBinary,
		lexer.STAR: p.parseBinary, lexer.SLASH: p.parseBinary, lexer.PERCENT: p.parseBinary,
		lexer.STARSTAR: p.parseBinary,

		lexer.ASSIGN: p.parseAssignment, lexer.PLUS_ASSIGN: p.parseAssignment,
		lexer.MINUS_ASSIGN: p.parseAssignment, lexer.STAR_ASSIGN: p.parseAssignment,
		lexer.SLASH_ASSIGN: p.parseAssignment, lexer.PERCENT_ASSIGN: p.parseAssignment,
		lexer.STARSTAR_ASSIGN: p.parseAssignment, lexer.AND_ASSIGN: p.parseAssignment,
		lexer.OR_ASSIGN: p.parseAssignment, lexer.NULLISH_ASSIGN: p.parseAssignment,
		lexer.BITOR_ASSIGN: p.parseAssignment, lexer.BITAND_ASSIGN: p.parseAssignment,
		lexer.BITXOR_ASSIGN: p.parseAssignment, lexer.SHL_ASSIGN: p.parseAssignment,
		lexer.SHR_ASSIGN: p.parseAssignment, lexer.USHR_ASSIGN: p.parseAssignment,

		lexer.LPAREN:       p.parseCallExpression,
		lexer.DOT:          p.parseMemberExpression,
		lexer.LBRACKET:     p.parseComputedMemberExpression,
		lexer.QUESTION_DOT: p.parseOptionalMemberOrCall,

		lexer.INC: p.parseUpdatePostfix,
		lexer.DEC: p.parseUpdatePostfix,
	}
}

// ---- primary literals ----

func (p *Parser) parseNumberLiteral() Expression {
	tok := p.advance()
	val, err := parseJSNumber(tok.Text)
	if err != nil {
		p.errorf(tok, "invalid number literal %q", tok.Text)
	}
	return &NumberLiteral{Raw: tok.Text, Value: val}
}

// parseJSNumber handles decimal, fractional, exponent, and 0x/0o/0b
// integer forms; Go's strconv.ParseFloat covers decimal/exponent/hex-float
// forms but not 0o/0b, which get normalized by hand first.
func parseJSNumber(raw string) (float64, error) {
	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "0x"):
		n, err := strconv.ParseUint(lower[2:], 16, 64)
		return float64(n), err
	case strings.HasPrefix(lower, "0o"):
		n, err := strconv.ParseUint(lower[2:], 8, 64)
		return float64(n), err
	case strings.HasPrefix(lower, "0b"):
		n, err := strconv.ParseUint(lower[2:], 2, 64)
		return float64(n), err
	default:
		return strconv.ParseFloat(raw, 64)
	}
}

func (p *Parser) parseStringLiteral() Expression {
	tok := p.advance()
	return &StringLiteral{Value: unquoteJSString(tok.Text)}
}

// unquoteJSString strips the surrounding quote characters and resolves the
// escape sequences spec.md §6 commits to (\n \r \t \b \f \0 \\ \' \" \uXXXX);
// any other escape preserves its backslash rather than silently dropping it,
// per spec.md §6's explicit note that the engine does not match full
// ECMAScript string-escape handling.
func unquoteJSString(raw string) string {
	if len(raw) < 2 {
		return raw
	}
	body := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i == len(body)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '\\', '\'', '"':
			b.WriteByte(body[i])
		case '\n':
			// line continuation: escaped newline contributes nothing
		case 'u':
			if i+4 < len(body) {
				if code, err := strconv.ParseUint(body[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(code))
					i += 4
					continue
				}
			}
			b.WriteByte('\\')
			b.WriteByte('u')
		default:
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}
	return b.String()
}

func (p *Parser) parseBooleanLiteral() Expression {
	tok := p.advance()
	return &BooleanLiteral{Value: tok.Kind == lexer.TRUE}
}

func (p *Parser) parseNullLiteral() Expression {
	p.advance()
	return &NullLiteral{}
}

func (p *Parser) parseRegexLiteral() Expression {
	tok := p.advance()
	body := tok.Text
	last := strings.LastIndexByte(body, '/')
	return &RegexLiteral{Pattern: body[1:last], Flags: body[last+1:]}
}

func (p *Parser) parseIdentifierOrArrow() Expression {
	tok := p.advance()
	if tok.Text == "void" {
		arg := p.parseExpression(UNARY)
		return &UnaryExpression{Operator: lexer.TokenKind("void"), Argument: arg}
	}
	if p.curIs(lexer.ARROW) {
		p.advance()
		return p.finishArrowBody([]Pattern{&IdentifierPattern{Name: tok.Text}})
	}
	return &Identifier{Name: tok.Text}
}

// parseParenOrArrow resolves the "(" ambiguity between a grouped/sequence
// expression and an arrow function's parameter list by scanning ahead to
// the matching ")" and checking for a following "=>" before committing.
func (p *Parser) parseParenOrArrow() Expression {
	if p.lparenStartsArrow() {
		params := p.parseParamList()
		p.expect(lexer.ARROW)
		return p.finishArrowBody(params)
	}

	p.advance() // "("
	if p.curIs(lexer.RPAREN) {
		p.errorf(p.cur(), "unexpected empty parentheses")
		p.advance()
		return &BadExpression{}
	}
	expr := p.parseExpression(COMMA)
	if p.curIs(lexer.COMMA) {
		exprs := []Expression{expr}
		for p.curIs(lexer.COMMA) {
			p.advance()
			exprs = append(exprs, p.parseExpression(COMMA))
		}
		expr = &SequenceExpression{Exprs: exprs}
	}
	p.expect(lexer.RPAREN)
	return expr
}

// lparenStartsArrow scans forward from the current "(" to its matching
// ")" and reports whether "=>" follows it — pure token matching, no AST
// construction, so it never needs to unwind speculative parse state.
func (p *Parser) lparenStartsArrow() bool {
	depth := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.toks) && p.toks[i+1].Kind == lexer.ARROW
			}
		case lexer.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) finishArrowBody(params []Pattern) Expression {
	if p.curIs(lexer.LBRACE) {
		body := p.parseBlockStatement()
		return &FunctionLiteral{Params: params, Body: body, IsArrow: true}
	}
	expr := p.parseExpression(COMMA)
	return &FunctionLiteral{Params: params, IsArrow: true, ExprBody: expr}
}

func (p *Parser) parseTemplateLiteral() Expression {
	p.advance() // "`"
	tpl := &TemplateLiteral{}
	for {
		if p.curIs(lexer.T_STRING) {
			tpl.Quasis = append(tpl.Quasis, unquoteTemplateChunk(p.advance().Text))
		} else {
			tpl.Quasis = append(tpl.Quasis, "")
		}
		if p.curIs(lexer.BACKTICK) {
			p.advance()
			break
		}
		if !p.curIs(lexer.DOLLAR_L_CURLY) {
			p.errorf(p.cur(), "unterminated template literal")
			break
		}
		p.advance() // "${"
		tpl.Exprs = append(tpl.Exprs, p.parseExpression(LOWEST))
		p.expect(lexer.RBRACE)
	}
	return tpl
}

// unquoteTemplateChunk resolves escapes in a template literal quasi the
// same way unquoteJSString does for ordinary strings, plus the two extra
// escapes only a backtick string needs (\` and \$, to embed a literal
// backtick or placeholder opener).
func unquoteTemplateChunk(raw string) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i == len(raw)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case '`', '$', '\\', '\'', '"':
			b.WriteByte(raw[i])
		case 'u':
			if i+4 < len(raw) {
				if code, err := strconv.ParseUint(raw[i+1:i+5], 16, 32); err == nil {
					b.WriteRune(rune(code))
					i += 4
					continue
				}
			}
			b.WriteByte('\\')
			b.WriteByte('u')
		default:
			b.WriteByte('\\')
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

func (p *Parser) parseSpreadExpression() Expression {
	p.advance()
	return &SpreadExpression{Argument: p.parseExpression(COMMA)}
}

// ---- unary / update ----

func (p *Parser) parseUnaryPrefix() Expression {
	tok := p.advance()
	arg := p.parseExpression(UNARY)
	return &UnaryExpression{Operator: tok.Kind, Argument: arg}
}

func (p *Parser) parseUpdatePrefix() Expression {
	tok := p.advance()
	arg := p.parseExpression(UNARY)
	return &UpdateExpression{Operator: tok.Kind, Argument: arg, Prefix: true}
}

func (p *Parser) parseUpdatePostfix(left Expression) Expression {
	tok := p.advance()
	return &UpdateExpression{Operator: tok.Kind, Argument: left, Prefix: false}
}

// ---- binary / logical / conditional / assignment ----

func (p *Parser) parseBinary(left Expression) Expression {
	tok := p.advance()
	prec := precedences[tok.Kind]
	if rightAssociative[tok.Kind] {
		prec--
	}
	right := p.parseExpression(prec)
	return &BinaryExpression{Operator: tok.Kind, Left: left, Right: right}
}

func (p *Parser) parseLogical(left Expression) Expression {
	tok := p.advance()
	right := p.parseExpression(precedences[tok.Kind])
	return &LogicalExpression{Operator: tok.Kind, Left: left, Right: right}
}

func (p *Parser) parseConditional(left Expression) Expression {
	p.advance() // "?"
	then := p.parseExpression(COMMA)
	p.expect(lexer.COLON)
	alt := p.parseExpression(TERNARY - 1)
	return &ConditionalExpression{Cond: left, Then: then, Else: alt}
}

func (p *Parser) parseAssignment(left Expression) Expression {
	tok := p.advance()
	right := p.parseExpression(ASSIGN - 1)
	return &AssignmentExpression{Operator: tok.Kind, Target: left, Value: right}
}

// ---- call / new / member ----

func (p *Parser) parseCallArguments() []CallArgument {
	p.expect(lexer.LPAREN)
	var args []CallArgument
	for !p.curIs(lexer.RPAREN) && !p.curIs(lexer.EOF) {
		if p.curIs(lexer.SPREAD) {
			p.advance()
			args = append(args, CallArgument{Expr: p.parseExpression(COMMA), Spread: true})
		} else {
			args = append(args, CallArgument{Expr: p.parseExpression(COMMA)})
		}
		if p.curIs(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	return args
}

func (p *Parser) parseCallExpression(left Expression) Expression {
	args := p.parseCallArguments()
	return &CallExpression{Callee: left, Args: args}
}

func (p *Parser) parseMemberExpression(left Expression) Expression {
	p.advance() // "."
	name, ok := p.expect(lexer.IDENT)
	if !ok {
		return &MemberExpression{Object: left, Property: &Identifier{Name: "<error>"}}
	}
	return &MemberExpression{Object: left, Property: &Identifier{Name: name.Text}}
}

func (p *Parser) parseComputedMemberExpression(left Expression) Expression {
	p.advance() // "["
	prop := p.parseExpression(LOWEST)
	p.expect(lexer.RBRACKET)
	return &MemberExpression{Object: left, Property: prop, Computed: true}
}

// parseOptionalMemberOrCall handles every form "?." can introduce:
// a?.b, a?.[b], and a?.(args).
func (p *Parser) parseOptionalMemberOrCall(left Expression) Expression {
	p.advance() // "?."
	switch p.cur().Kind {
	case lexer.LPAREN:
		args := p.parseCallArguments()
		return &CallExpression{Callee: left, Args: args, Optional: true}
	case lexer.LBRACKET:
		p.advance()
		prop := p.parseExpression(LOWEST)
		p.expect(lexer.RBRACKET)
		return &MemberExpression{Object: left, Property: prop, Computed: true, Optional: true}
	default:
		name, _ := p.expect(lexer.IDENT)
		return &MemberExpression{Object: left, Property: &Identifier{Name: name.Text}, Optional: true}
	}
}

func (p *Parser) parseNewExpression() Expression {
	p.advance() // "new"
	if p.curIs(lexer.NEW) {
		// "new new Foo()" - nested constructor call used as the callee.
		callee := p.parseNewExpression()
		return p.finishNewArgs(callee)
	}
	callee := p.parseNewCallee()
	return p.finishNewArgs(callee)
}

func (p *Parser) finishNewArgs(callee Expression) Expression {
	var args []CallArgument
	if p.curIs(lexer.LPAREN) {
		args = p.parseCallArguments()
	}
	return &NewExpression{Callee: callee, Args: args}
}

// parseNewCallee parses a primary expression followed by "." and "["
// member accesses only, stopping before any "(" so the constructor's own
// argument list is parsed by finishNewArgs rather than swallowed here.
func (p *Parser) parseNewCallee() Expression {
	left := p.parsePrefix()
	for {
		switch p.cur().Kind {
		case lexer.DOT:
			left = p.parseMemberExpression(left)
		case lexer.LBRACKET:
			left = p.parseComputedMemberExpression(left)
		default:
			return left
		}
	}
}
