package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// significant filters trivia out of a token slice for tests that only
// care about the meaningful tokens.
func significant(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for _, t := range toks {
		if !IsTrivia(t.Kind) {
			out = append(out, t)
		}
	}
	return out
}

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

type tokenCase struct {
	input    string
	expected []TokenKind
}

func TestLexer_Operators(t *testing.T) {
	tests := []tokenCase{
		{"1 + 2 - 3", []TokenKind{NUMBER, PLUS, NUMBER, MINUS, NUMBER}},
		{"a === b !== c", []TokenKind{IDENT, SEQ, IDENT, SNEQ, IDENT}},
		{"x ??= y", []TokenKind{IDENT, NULLISH_ASSIGN, IDENT}},
		{"a?.b?.()", []TokenKind{IDENT, QUESTION_DOT, IDENT, QUESTION_DOT, LPAREN, RPAREN}},
		{"2 ** 3 **= 4", []TokenKind{NUMBER, STARSTAR, NUMBER, STARSTAR_ASSIGN, NUMBER}},
		{"a >>> b >>>= c", []TokenKind{IDENT, USHR, IDENT, USHR_ASSIGN, IDENT}},
		{"...rest", []TokenKind{SPREAD, IDENT}},
		{"x => x + 1", []TokenKind{IDENT, ARROW, IDENT, PLUS, NUMBER}},
	}
	for _, tc := range tests {
		lex := New(tc.input)
		got := kinds(significant(lex.ConsumeTokens()))
		assert.Equal(t, tc.expected, got, "input: %s", tc.input)
	}
}

func TestLexer_Keywords(t *testing.T) {
	lex := New("var let const function return if else while for")
	got := kinds(significant(lex.ConsumeTokens()))
	assert.Equal(t, []TokenKind{VAR, LET, CONST, FUNCTION, RETURN, IF, ELSE, WHILE, FOR}, got)
}

func TestLexer_ThisAndVoidAreIdentifiers(t *testing.T) {
	lex := New("this.x; void 0")
	got := kinds(significant(lex.ConsumeTokens()))
	assert.Equal(t, []TokenKind{IDENT, DOT, IDENT, SEMI, IDENT, NUMBER}, got)
}

func TestLexer_Numbers(t *testing.T) {
	tests := []tokenCase{
		{"42", []TokenKind{NUMBER}},
		{"3.14", []TokenKind{NUMBER}},
		{".5", []TokenKind{NUMBER}},
		{"1e10", []TokenKind{NUMBER}},
		{"1.5e-3", []TokenKind{NUMBER}},
		{"0xFF", []TokenKind{NUMBER}},
	}
	for _, tc := range tests {
		lex := New(tc.input)
		toks := significant(lex.ConsumeTokens())
		assert.Len(t, toks, 1, "input: %s", tc.input)
		assert.Equal(t, tc.input, toks[0].Text)
	}
}

func TestLexer_Strings(t *testing.T) {
	lex := New(`"hello \"world\"" + 'it''s'`)
	toks := significant(lex.ConsumeTokens())
	assert.Equal(t, []TokenKind{D_STRING, PLUS, S_STRING, S_STRING}, kinds(toks))
	assert.Equal(t, `"hello \"world\""`, toks[0].Text)
}

func TestLexer_UnterminatedStringDoesNotThrow(t *testing.T) {
	lex := New(`"never closed`)
	toks := significant(lex.ConsumeTokens())
	assert.Len(t, toks, 1)
	assert.Equal(t, D_STRING, toks[0].Kind)
}

func TestLexer_TemplateLiteral(t *testing.T) {
	lex := New("`hi ${name}!`")
	toks := significant(lex.ConsumeTokens())
	assert.Equal(t, []TokenKind{BACKTICK, T_STRING, DOLLAR_L_CURLY, IDENT, RBRACE, T_STRING, BACKTICK}, kinds(toks))
}

func TestLexer_TemplateLiteralNestedObjectInPlaceholder(t *testing.T) {
	lex := New("`${ ({a: 1}).a }`")
	toks := significant(lex.ConsumeTokens())
	// Ensure the placeholder's own '{' '}' pair does not terminate the
	// placeholder prematurely; the outer closing '}' does.
	assert.Equal(t, BACKTICK, toks[0].Kind)
	assert.Equal(t, DOLLAR_L_CURLY, toks[1].Kind)
	assert.Contains(t, kinds(toks), LBRACE)
	assert.Equal(t, BACKTICK, toks[len(toks)-1].Kind)
}

func TestLexer_RegexVsDivide(t *testing.T) {
	// After an identifier (value position), '/' is division.
	lex := New("a / b")
	assert.Equal(t, []TokenKind{IDENT, SLASH, IDENT}, kinds(significant(lex.ConsumeTokens())))

	// After '=' (expression position), '/' starts a regex literal.
	lex2 := New("x = /ab+c/gi")
	toks := significant(lex2.ConsumeTokens())
	assert.Equal(t, []TokenKind{IDENT, ASSIGN, REGEX}, kinds(toks))
	assert.Equal(t, "/ab+c/gi", toks[2].Text)
}

func TestLexer_RegexWithEscapedSlashInCharClass(t *testing.T) {
	lex := New(`return /[a\/b]/;`)
	toks := significant(lex.ConsumeTokens())
	assert.Equal(t, []TokenKind{RETURN, REGEX, SEMI}, kinds(toks))
	assert.Equal(t, `/[a\/b]/`, toks[1].Text)
}

func TestLexer_Comments(t *testing.T) {
	lex := New("1 // line comment\n/* block\ncomment */ 2")
	toks := significant(lex.ConsumeTokens())
	assert.Equal(t, []TokenKind{NUMBER, NUMBER}, kinds(toks))
}

func TestLexer_RoundTrip(t *testing.T) {
	src := "var x = 1 + 2; // comment\nfunction f(a, b) { return a /* mid */ + b; }\n`t${x}`"
	lex := New(src)
	toks := lex.ConsumeTokens()
	rebuilt := ""
	for _, tok := range toks {
		rebuilt += tok.Text
	}
	assert.Equal(t, src, rebuilt)
}

func TestLexer_LineAndColumnTracking(t *testing.T) {
	lex := New("var x\n  = 1")
	toks := significant(lex.ConsumeTokens())
	// "=" is on line 2, column 3.
	var eq Token
	for _, tok := range toks {
		if tok.Kind == ASSIGN {
			eq = tok
		}
	}
	assert.Equal(t, 2, eq.Line)
	assert.Equal(t, 3, eq.Column)
}
