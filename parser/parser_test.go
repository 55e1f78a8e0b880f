package parser

import (
	"strings"
	"testing"

	"github.com/arjunmenon/ecmalite/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, errs := Parse(src)
	require.Empty(t, errs, "unexpected parse errors for %q: %v", src, errs)
	return prog
}

func singleExprStmt(t *testing.T, prog *Program) Expression {
	t.Helper()
	require.Len(t, prog.Statements, 1)
	es, ok := prog.Statements[0].(*ExpressionStatement)
	require.True(t, ok, "expected ExpressionStatement, got %T", prog.Statements[0])
	return es.Expr
}

func TestParser_VarDeclarations(t *testing.T) {
	prog := mustParse(t, "var a = 1; let b; const c = 2;")
	require.Len(t, prog.Statements, 3)

	a := prog.Statements[0].(*VarStatement)
	assert.Equal(t, DeclVar, a.Kind)
	assert.Equal(t, "a", a.Target.(*IdentifierPattern).Name)
	assert.Equal(t, float64(1), a.Init.(*NumberLiteral).Value)

	b := prog.Statements[1].(*VarStatement)
	assert.Equal(t, DeclLet, b.Kind)
	assert.Nil(t, b.Init)

	c := prog.Statements[2].(*VarStatement)
	assert.Equal(t, DeclConst, c.Kind)
	assert.NotNil(t, c.Init)
}

func TestParser_ConstWithoutInitializerIsAnError(t *testing.T) {
	_, errs := Parse("const x;")
	assert.NotEmpty(t, errs)
}

func TestParser_DestructuringDeclarations(t *testing.T) {
	prog := mustParse(t, "let [a, , b, ...rest] = arr; let {x, y: z, ...others} = obj;")
	require.Len(t, prog.Statements, 2)

	arrPat := prog.Statements[0].(*VarStatement).Target.(*ArrayPattern)
	require.Len(t, arrPat.Elements, 3)
	assert.Nil(t, arrPat.Elements[1])
	assert.Equal(t, "a", arrPat.Elements[0].(*IdentifierPattern).Name)
	assert.Equal(t, "b", arrPat.Elements[2].(*IdentifierPattern).Name)
	require.NotNil(t, arrPat.Rest)
	assert.Equal(t, "rest", arrPat.Rest.(*IdentifierPattern).Name)

	objPat := prog.Statements[1].(*VarStatement).Target.(*ObjectPattern)
	require.Len(t, objPat.Properties, 2)
	assert.Equal(t, "x", objPat.Properties[0].Key.(*Identifier).Name)
	assert.Equal(t, "z", objPat.Properties[1].Value.(*IdentifierPattern).Name)
	require.NotNil(t, objPat.Rest)
}

func TestParser_IfElse(t *testing.T) {
	prog := mustParse(t, "if (a) { b; } else if (c) { d; } else { e; }")
	stmt := prog.Statements[0].(*IfStatement)
	assert.IsType(t, &BlockStatement{}, stmt.Then)
	elseIf, ok := stmt.Else.(*IfStatement)
	require.True(t, ok)
	assert.NotNil(t, elseIf.Else)
}

func TestParser_WhileAndDoWhile(t *testing.T) {
	prog := mustParse(t, "while (x < 10) { x++; } do { y--; } while (y > 0);")
	require.Len(t, prog.Statements, 2)
	assert.IsType(t, &WhileStatement{}, prog.Statements[0])
	assert.IsType(t, &DoWhileStatement{}, prog.Statements[1])
}

func TestParser_ClassicForLoop(t *testing.T) {
	prog := mustParse(t, "for (var i = 0; i < 10; i = i + 1) { sum = sum + i; }")
	f := prog.Statements[0].(*ForStatement)
	require.NotNil(t, f.Init)
	require.NotNil(t, f.Cond)
	require.NotNil(t, f.Step)
	varInit := f.Init.(*VarStatement)
	assert.Equal(t, "i", varInit.Target.(*IdentifierPattern).Name)
}

func TestParser_ForOfAndForIn(t *testing.T) {
	prog := mustParse(t, "for (let item of items) { x; } for (const key in obj) { y; }")
	forOf := prog.Statements[0].(*ForOfStatement)
	assert.True(t, forOf.IsDecl)
	assert.Equal(t, DeclLet, forOf.Kind)
	assert.Equal(t, "item", forOf.Target.(*IdentifierPattern).Name)

	forIn := prog.Statements[1].(*ForInStatement)
	assert.True(t, forIn.IsDecl)
	assert.Equal(t, DeclConst, forIn.Kind)
}

func TestParser_ForOfWithDestructuringTarget(t *testing.T) {
	prog := mustParse(t, "for (const [k, v] of entries) { use(k, v); }")
	forOf := prog.Statements[0].(*ForOfStatement)
	_, ok := forOf.Target.(*ArrayPattern)
	assert.True(t, ok)
}

func TestParser_SwitchStatement(t *testing.T) {
	prog := mustParse(t, `switch (x) {
		case 1:
			a;
			break;
		case 2:
		default:
			b;
	}`)
	sw := prog.Statements[0].(*SwitchStatement)
	require.Len(t, sw.Cases, 3)
	assert.NotNil(t, sw.Cases[0].Test)
	assert.NotNil(t, sw.Cases[1].Test)
	assert.Nil(t, sw.Cases[2].Test)
	assert.Empty(t, sw.Cases[1].Statements) // falls through to default
}

func TestParser_TryCatchFinally(t *testing.T) {
	prog := mustParse(t, `try { risky(); } catch (e) { handle(e); } finally { cleanup(); }`)
	try := prog.Statements[0].(*TryStatement)
	require.NotNil(t, try.Catch)
	require.NotNil(t, try.Finally)
	assert.Equal(t, "e", try.Catch.Param.(*IdentifierPattern).Name)
}

func TestParser_TryCatchWithoutBinding(t *testing.T) {
	prog := mustParse(t, `try { a(); } catch { b(); }`)
	try := prog.Statements[0].(*TryStatement)
	assert.Nil(t, try.Catch.Param)
}

func TestParser_TryRequiresCatchOrFinally(t *testing.T) {
	_, errs := Parse("try { a(); }")
	assert.NotEmpty(t, errs)
}

func TestParser_ThrowAndDelete(t *testing.T) {
	prog := mustParse(t, `throw new Error("bad"); delete obj.key;`)
	assert.IsType(t, &ThrowStatement{}, prog.Statements[0])
	del := prog.Statements[1].(*DeleteStatement)
	assert.IsType(t, &MemberExpression{}, del.Target)
}

func TestParser_FunctionDeclaration(t *testing.T) {
	prog := mustParse(t, "function add(a, b) { return a + b; }")
	fn := prog.Statements[0].(*FunctionDeclaration).Fn
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.False(t, fn.IsArrow)
}

func TestParser_FunctionWithDefaultsAndRest(t *testing.T) {
	prog := mustParse(t, "function f(a, b = 1, ...rest) { return a; }")
	fn := prog.Statements[0].(*FunctionDeclaration).Fn
	require.Len(t, fn.Params, 3)
	def, ok := fn.Params[1].(*DefaultPattern)
	require.True(t, ok)
	assert.Equal(t, "b", def.Target.(*IdentifierPattern).Name)
	rest, ok := fn.Params[2].(*RestPattern)
	require.True(t, ok)
	assert.Equal(t, "rest", rest.Target.(*IdentifierPattern).Name)
}

func TestParser_FunctionWithDestructuredParam(t *testing.T) {
	prog := mustParse(t, "function f({x, y}) { return x; }")
	fn := prog.Statements[0].(*FunctionDeclaration).Fn
	require.Len(t, fn.Params, 1)
	_, ok := fn.Params[0].(*ObjectPattern)
	assert.True(t, ok)
}

func TestParser_ArrowFunctions(t *testing.T) {
	prog := mustParse(t, "var id = x => x; var add = (a, b) => a + b; var thunk = () => { return 1; };")

	id := prog.Statements[0].(*VarStatement).Init.(*FunctionLiteral)
	assert.True(t, id.IsArrow)
	require.Len(t, id.Params, 1)
	assert.NotNil(t, id.ExprBody)

	add := prog.Statements[1].(*VarStatement).Init.(*FunctionLiteral)
	require.Len(t, add.Params, 2)
	assert.NotNil(t, add.ExprBody)

	thunk := prog.Statements[2].(*VarStatement).Init.(*FunctionLiteral)
	assert.Nil(t, thunk.ExprBody)
	assert.NotNil(t, thunk.Body)
}

func TestParser_ArrowVsParenthesizedExpressionDisambiguation(t *testing.T) {
	prog := mustParse(t, "var x = (1 + 2) * 3; var y = (a, b) => a;")
	grouped := prog.Statements[0].(*VarStatement).Init.(*BinaryExpression)
	assert.Equal(t, lexer.STAR, grouped.Operator)

	arrow := prog.Statements[1].(*VarStatement).Init.(*FunctionLiteral)
	assert.True(t, arrow.IsArrow)
	assert.Len(t, arrow.Params, 2)
}

func TestParser_SequenceExpressionInParens(t *testing.T) {
	prog := mustParse(t, "var x = (a, b, c);")
	seq := prog.Statements[0].(*VarStatement).Init.(*SequenceExpression)
	assert.Len(t, seq.Exprs, 3)
}

func TestParser_OperatorPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"a = b = c", "(a = (b = c))"},
		{"a || b && c", "(a || (b && c))"},
		{"a ?? b || c", "(a ?? (b || c))"},
		{"!a && b", "((!a) && b)"},
		{"a < b == c < d", "((a < b) == (c < d))"},
	}
	for _, tc := range tests {
		expr := singleExprStmt(t, mustParse(t, tc.src+";"))
		assert.Equal(t, tc.want, sexpr(expr), "source: %s", tc.src)
	}
}

func TestParser_TernaryIsRightAssociative(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, "a ? b : c ? d : e;"))
	cond := expr.(*ConditionalExpression)
	assert.Equal(t, "a", cond.Cond.(*Identifier).Name)
	_, nestedElse := cond.Else.(*ConditionalExpression)
	assert.True(t, nestedElse)
}

func TestParser_UpdateExpressions(t *testing.T) {
	prog := mustParse(t, "x++; --y;")
	post := prog.Statements[0].(*ExpressionStatement).Expr.(*UpdateExpression)
	assert.False(t, post.Prefix)
	assert.Equal(t, lexer.INC, post.Operator)

	pre := prog.Statements[1].(*ExpressionStatement).Expr.(*UpdateExpression)
	assert.True(t, pre.Prefix)
	assert.Equal(t, lexer.DEC, pre.Operator)
}

func TestParser_MemberAndCallChains(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, "a.b[c].d(1, 2).e;"))
	outer, ok := expr.(*MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "e", outer.Property.(*Identifier).Name)
	call, ok := outer.Object.(*CallExpression)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)
}

func TestParser_OptionalChaining(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, "a?.b?.[c]?.();"))
	call, ok := expr.(*CallExpression)
	require.True(t, ok)
	assert.True(t, call.Optional)
	idx, ok := call.Callee.(*MemberExpression)
	require.True(t, ok)
	assert.True(t, idx.Optional)
	assert.True(t, idx.Computed)
}

func TestParser_NewExpression(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, "new Foo.Bar(1, 2).baz;"))
	member, ok := expr.(*MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "baz", member.Property.(*Identifier).Name)
	newExpr, ok := member.Object.(*NewExpression)
	require.True(t, ok)
	require.Len(t, newExpr.Args, 2)
	callee, ok := newExpr.Callee.(*MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "Bar", callee.Property.(*Identifier).Name)
}

func TestParser_NewWithoutArgs(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, "new Date;"))
	newExpr, ok := expr.(*NewExpression)
	require.True(t, ok)
	assert.Nil(t, newExpr.Args)
}

func TestParser_ArrayLiteral(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, "[1, , 2, ...rest];"))
	arr := expr.(*ArrayLiteral)
	require.Len(t, arr.Elements, 4)
	assert.Nil(t, arr.Elements[1].Expr)
	assert.True(t, arr.Elements[3].Spread)
}

func TestParser_ObjectLiteral(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, `({a: 1, b, [c]: 2, ...rest});`))
	obj := expr.(*ObjectLiteral)
	require.Len(t, obj.Properties, 4)
	assert.False(t, obj.Properties[0].Shorthand)
	assert.True(t, obj.Properties[1].Shorthand)
	assert.True(t, obj.Properties[2].Computed)
	assert.True(t, obj.Properties[3].Spread)
}

func TestParser_TemplateLiteral(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, "`a ${x + 1} b ${y}`;"))
	tpl := expr.(*TemplateLiteral)
	require.Len(t, tpl.Quasis, 3)
	require.Len(t, tpl.Exprs, 2)
	assert.Equal(t, "a ", tpl.Quasis[0])
}

func TestParser_RegexLiteral(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, "/ab+c/gi;"))
	re := expr.(*RegexLiteral)
	assert.Equal(t, "ab+c", re.Pattern)
	assert.Equal(t, "gi", re.Flags)
}

func TestParser_StringEscapes(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, `"a\nb\tc";`))
	str := expr.(*StringLiteral)
	assert.Equal(t, "a\nb\tc", str.Value)
}

func TestParser_DestructuringAssignment(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, "[a, b] = [b, a];"))
	assign := expr.(*AssignmentExpression)
	assert.Equal(t, lexer.ASSIGN, assign.Operator)
	pattern := ExprToPattern(assign.Target)
	_, ok := pattern.(*ArrayPattern)
	assert.True(t, ok)
}

func TestParser_CompoundAssignmentOperators(t *testing.T) {
	ops := []string{"+=", "-=", "*=", "/=", "%=", "**=", "&&=", "||=", "??="}
	for _, op := range ops {
		expr := singleExprStmt(t, mustParse(t, "x "+op+" 1;"))
		assign, ok := expr.(*AssignmentExpression)
		require.True(t, ok, op)
		assert.Equal(t, lexer.TokenKind(op), assign.Operator)
	}
}

func TestParser_CommaOperatorAtStatementLevel(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, "a, b, c;"))
	seq, ok := expr.(*SequenceExpression)
	require.True(t, ok)
	assert.Len(t, seq.Exprs, 3)
}

func TestParser_IsDeterministic(t *testing.T) {
	src := `
		function fib(n) {
			if (n < 2) return n;
			return fib(n - 1) + fib(n - 2);
		}
		let results = [];
		for (let i = 0; i < 5; i++) {
			results.push(() => i);
		}
		const { a, b = 2, ...rest } = obj;
		obj?.method?.(a, ...rest);
	`
	first, errs1 := Parse(src)
	second, errs2 := Parse(src)
	assert.Equal(t, len(errs1), len(errs2))
	assert.Equal(t, Dump(first), Dump(second))
}

func TestParser_RecursionLimitProducesAnErrorInsteadOfPanicking(t *testing.T) {
	var b strings.Builder
	b.WriteString("var x = ")
	for i := 0; i < maxParseDepth+50; i++ {
		b.WriteString("(")
	}
	b.WriteString("1")
	for i := 0; i < maxParseDepth+50; i++ {
		b.WriteString(")")
	}
	b.WriteString(";")

	assert.NotPanics(t, func() {
		_, errs := Parse(b.String())
		assert.NotEmpty(t, errs)
	})
}

func TestParser_VoidIsAUnaryOperator(t *testing.T) {
	expr := singleExprStmt(t, mustParse(t, "void 0;"))
	un, ok := expr.(*UnaryExpression)
	require.True(t, ok)
	assert.Equal(t, lexer.TokenKind("void"), un.Operator)
}

func TestParser_TypeofAndInstanceofAndIn(t *testing.T) {
	prog := mustParse(t, "typeof x; a instanceof B; k in obj;")
	_, ok := prog.Statements[0].(*ExpressionStatement).Expr.(*UnaryExpression)
	assert.True(t, ok)
	bin := prog.Statements[1].(*ExpressionStatement).Expr.(*BinaryExpression)
	assert.Equal(t, lexer.INSTANCEOF, bin.Operator)
	bin2 := prog.Statements[2].(*ExpressionStatement).Expr.(*BinaryExpression)
	assert.Equal(t, lexer.IN, bin2.Operator)
}

// sexpr renders a small subset of expression kinds as a fully-parenthesized
// s-expression so operator precedence/associativity tests can assert on
// tree shape without hand-walking every node.
func sexpr(e Expression) string {
	switch n := e.(type) {
	case *BinaryExpression:
		return "(" + sexpr(n.Left) + " " + string(n.Operator) + " " + sexpr(n.Right) + ")"
	case *LogicalExpression:
		return "(" + sexpr(n.Left) + " " + string(n.Operator) + " " + sexpr(n.Right) + ")"
	case *AssignmentExpression:
		return "(" + sexpr(n.Target) + " " + string(n.Operator) + " " + sexpr(n.Value) + ")"
	case *UnaryExpression:
		return "(" + string(n.Operator) + sexpr(n.Argument) + ")"
	case *Identifier:
		return n.Name
	case *NumberLiteral:
		return n.Raw
	default:
		return e.Literal()
	}
}
