package parser

import "github.com/arjunmenon/ecmalite/lexer"

// canStartExpression reports whether a token of this kind can begin an
// expression, used by callers that need to decide whether an optional
// clause (e.g. a return statement's value) is present without committing to
// a full parse attempt.
func canStartExpression(k lexer.TokenKind) bool {
	switch k {
	case lexer.SEMI, lexer.RPAREN, lexer.RBRACE, lexer.RBRACKET, lexer.COLON, lexer.COMMA, lexer.EOF:
		return false
	default:
		return true
	}
}
