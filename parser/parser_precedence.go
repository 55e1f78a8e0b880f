package parser

import "github.com/arjunmenon/ecmalite/lexer"

// Precedence levels, lowest to highest. Comma sits below assignment;
// assignment and the ternary/nullish/logical tiers above it are all
// right-associative or short-circuiting and get special handling in
// parseExpression/parseAssignment rather than pure table lookup.
const (
	LOWEST Precedence = iota
	COMMA
	ASSIGN
	TERNARY
	NULLISH
	LOGIC_OR
	LOGIC_AND
	BIT_OR
	BIT_XOR
	BIT_AND
	EQUALITY
	RELATIONAL
	SHIFT
	ADDITIVE
	MULTIPLICATIVE
	EXPONENT
	UNARY
	POSTFIX
	CALL
)

type Precedence int

var precedences = map[lexer.TokenKind]Precedence{
	lexer.COMMA: COMMA,

	lexer.ASSIGN: ASSIGN, lexer.PLUS_ASSIGN: ASSIGN, lexer.MINUS_ASSIGN: ASSIGN,
	lexer.STAR_ASSIGN: ASSIGN, lexer.SLASH_ASSIGN: ASSIGN, lexer.PERCENT_ASSIGN: ASSIGN,
	lexer.STARSTAR_ASSIGN: ASSIGN, lexer.AND_ASSIGN: ASSIGN, lexer.OR_ASSIGN: ASSIGN,
	lexer.NULLISH_ASSIGN: ASSIGN, lexer.BITOR_ASSIGN: ASSIGN, lexer.BITAND_ASSIGN: ASSIGN,
	lexer.BITXOR_ASSIGN: ASSIGN, lexer.SHL_ASSIGN: ASSIGN, lexer.SHR_ASSIGN: ASSIGN,
	lexer.USHR_ASSIGN: ASSIGN,

	lexer.QUESTION: TERNARY,

	lexer.NULLISH: NULLISH,

	lexer.OR: LOGIC_OR,

	lexer.AND: LOGIC_AND,

	lexer.BITOR:  BIT_OR,
	lexer.BITXOR: BIT_XOR,
	lexer.BITAND: BIT_AND,

	lexer.EQ: EQUALITY, lexer.NEQ: EQUALITY, lexer.SEQ: EQUALITY, lexer.SNEQ: EQUALITY,

	lexer.LT: RELATIONAL, lexer.GT: RELATIONAL, lexer.LE: RELATIONAL, lexer.GE: RELATIONAL,
	lexer.INSTANCEOF: RELATIONAL, lexer.IN: RELATIONAL,

	lexer.SHL: SHIFT, lexer.SHR: SHIFT, lexer.USHR: SHIFT,

	lexer.PLUS: ADDITIVE, lexer.MINUS: ADDITIVE,

	lexer.STAR: MULTIPLICATIVE, lexer.SLASH: MULTIPLICATIVE, lexer.PERCENT: MULTIPLICATIVE,

	lexer.STARSTAR: EXPONENT,

	lexer.INC: POSTFIX, lexer.DEC: POSTFIX,

	lexer.LPAREN: CALL, lexer.DOT: CALL, lexer.LBRACKET: CALL,
	lexer.QUESTION_DOT: CALL,
}

// rightAssociative marks the operators whose infix parse function recurses
// at one less than its own precedence on the right-hand side, so chains
// like "a ** b ** c" and "a = b = c" group to the right.
var rightAssociative = map[lexer.TokenKind]bool{
	lexer.STARSTAR: true,

	lexer.ASSIGN: true, lexer.PLUS_ASSIGN: true, lexer.MINUS_ASSIGN: true,
	lexer.STAR_ASSIGN: true, lexer.SLASH_ASSIGN: true, lexer.PERCENT_ASSIGN: true,
	lexer.STARSTAR_ASSIGN: true, lexer.AND_ASSIGN: true, lexer.OR_ASSIGN: true,
	lexer.NULLISH_ASSIGN: true, lexer.BITOR_ASSIGN: true, lexer.BITAND_ASSIGN: true,
	lexer.BITXOR_ASSIGN: true, lexer.SHL_ASSIGN: true, lexer.SHR_ASSIGN: true,
	lexer.USHR_ASSIGN: true,
}

// curPrecedence reports the precedence of the token currently under the
// cursor. Callers invoke this right after parsePrefix returns, when cur()
// is positioned at the operator that would extend the expression just
// parsed — not at the token after it, despite the two-token-lookahead
// parsers this is modeled on calling the equivalent method "peek".
func (p *Parser) curPrecedence() Precedence {
	if pr, ok := precedences[p.cur().Kind]; ok {
		return pr
	}
	return LOWEST
}
