package interp

import (
	"strconv"
	"strings"

	"github.com/arjunmenon/ecmalite/lexer"
	"github.com/arjunmenon/ecmalite/parser"
	"github.com/arjunmenon/ecmalite/scope"
	"github.com/arjunmenon/ecmalite/value"
)

// evalExpr dispatches a single expression node. Every branch checks
// i.exit after evaluating a sub-expression and bails out immediately
// if it's no longer Running, so a throw/return raised three levels
// down an expression tree unwinds without every intermediate frame
// needing its own explicit propagation logic.
func (i *Interpreter) evalExpr(env *scope.Environment, expr parser.Expression) value.Value {
	if i.Listener != nil {
		i.Listener.ExpressionEnter(expr)
		defer i.Listener.ExpressionExit(expr)
	}

	switch n := expr.(type) {
	case *parser.NumberLiteral:
		return value.Number(n.Value)
	case *parser.StringLiteral:
		return value.String(n.Value)
	case *parser.BooleanLiteral:
		return value.BoolOf(n.Value)
	case *parser.NullLiteral:
		return value.Null{}
	case *parser.Identifier:
		return i.evalIdentifier(env, n)
	case *parser.TemplateLiteral:
		return i.evalTemplateLiteral(env, n)
	case *parser.RegexLiteral:
		return i.makeRegex(n.Pattern, n.Flags)
	case *parser.ArrayLiteral:
		return i.evalArrayLiteral(env, n)
	case *parser.ObjectLiteral:
		return i.evalObjectLiteral(env, n)
	case *parser.FunctionLiteral:
		return i.makeFunction(n, env)
	case *parser.SequenceExpression:
		return i.evalSequence(env, n)
	case *parser.ConditionalExpression:
		return i.evalConditional(env, n)
	case *parser.LogicalExpression:
		return i.evalLogical(env, n)
	case *parser.BinaryExpression:
		return i.evalBinary(env, n)
	case *parser.UnaryExpression:
		return i.evalUnary(env, n)
	case *parser.UpdateExpression:
		return i.evalUpdate(env, n)
	case *parser.AssignmentExpression:
		return i.evalAssignment(env, n)
	case *parser.CallExpression:
		return i.evalCallExpression(env, n)
	case *parser.NewExpression:
		return i.evalNewExpression(env, n)
	case *parser.MemberExpression:
		return i.evalMemberExpression(env, n)
	case *parser.SpreadExpression:
		return i.evalExpr(env, n.Argument)
	case *parser.BadExpression:
		return value.Undefined{}
	default:
		return value.Undefined{}
	}
}

func (i *Interpreter) evalIdentifier(env *scope.Environment, n *parser.Identifier) value.Value {
	v, err := env.Get(n.Name)
	if err != nil {
		return i.throwError(translateScopeErr(err))
	}
	if _, ok := v.(scope.Undefined); ok {
		return value.Undefined{}
	}
	return v.(value.Value)
}

func translateScopeErr(err error) error {
	switch e := err.(type) {
	case *scope.TDZError:
		return &TDZError{Name: e.Name}
	case *scope.ConstReassignError:
		return &ConstReassignError{Name: e.Name}
	case *scope.RedeclarationError:
		return &RedeclarationError{Name: e.Name}
	case *scope.ReferenceError:
		return &ReferenceError{Name: e.Name}
	default:
		return err
	}
}

func (i *Interpreter) evalTemplateLiteral(env *scope.Environment, n *parser.TemplateLiteral) value.Value {
	var b strings.Builder
	for idx, quasi := range n.Quasis {
		b.WriteString(quasi)
		if idx < len(n.Exprs) {
			v := i.evalExpr(env, n.Exprs[idx])
			if !i.exit.running() {
				return value.Undefined{}
			}
			b.WriteString(v.String())
		}
	}
	return value.String(b.String())
}

func (i *Interpreter) evalArrayLiteral(env *scope.Environment, n *parser.ArrayLiteral) value.Value {
	var elements []value.Value
	for _, el := range n.Elements {
		if el.Expr == nil {
			elements = append(elements, value.Undefined{}) // elision
			continue
		}
		v := i.evalExpr(env, el.Expr)
		if !i.exit.running() {
			return value.Undefined{}
		}
		if el.Spread {
			spread, err := iterableValues(v)
			if err != nil {
				return i.throwError(err)
			}
			elements = append(elements, spread...)
			continue
		}
		elements = append(elements, v)
	}
	return i.NewArray(elements)
}

func (i *Interpreter) evalObjectLiteral(env *scope.Environment, n *parser.ObjectLiteral) value.Value {
	obj := i.NewObject()
	for _, prop := range n.Properties {
		if prop.Spread {
			v := i.evalExpr(env, prop.Value)
			if !i.exit.running() {
				return value.Undefined{}
			}
			if src, ok := v.(*value.Object); ok {
				for _, k := range src.OwnKeys() {
					sv, _ := src.Get(k)
					obj.Set(k, sv)
				}
			}
			continue
		}
		key := i.propertyKey(env, prop.Key, prop.Computed)
		if !i.exit.running() {
			return value.Undefined{}
		}
		v := i.evalExpr(env, prop.Value)
		if !i.exit.running() {
			return value.Undefined{}
		}
		obj.Set(key, v)
	}
	return obj
}

// propertyKey evaluates an object-literal or member-expression key to
// its string property name: computed keys run as expressions and
// ToString-convert; literal identifier/string/number keys use their
// source text/value directly.
func (i *Interpreter) propertyKey(env *scope.Environment, key parser.Expression, computed bool) string {
	if computed {
		v := i.evalExpr(env, key)
		if !i.exit.running() {
			return ""
		}
		return v.String()
	}
	switch k := key.(type) {
	case *parser.Identifier:
		return k.Name
	case *parser.StringLiteral:
		return k.Value
	case *parser.NumberLiteral:
		return value.Number(k.Value).String()
	default:
		v := i.evalExpr(env, key)
		return v.String()
	}
}

func (i *Interpreter) evalSequence(env *scope.Environment, n *parser.SequenceExpression) value.Value {
	var last value.Value = value.Undefined{}
	for _, e := range n.Exprs {
		last = i.evalExpr(env, e)
		if !i.exit.running() {
			return value.Undefined{}
		}
	}
	return last
}

func (i *Interpreter) evalConditional(env *scope.Environment, n *parser.ConditionalExpression) value.Value {
	cond := i.evalExpr(env, n.Cond)
	if !i.exit.running() {
		return value.Undefined{}
	}
	if value.ToBoolean(cond) {
		return i.evalExpr(env, n.Then)
	}
	return i.evalExpr(env, n.Else)
}

func (i *Interpreter) evalLogical(env *scope.Environment, n *parser.LogicalExpression) value.Value {
	left := i.evalExpr(env, n.Left)
	if !i.exit.running() {
		return value.Undefined{}
	}
	switch n.Operator {
	case lexer.AND:
		if !value.ToBoolean(left) {
			return left
		}
		return i.evalExpr(env, n.Right)
	case lexer.OR:
		if value.ToBoolean(left) {
			return left
		}
		return i.evalExpr(env, n.Right)
	case lexer.NULLISH:
		switch left.(type) {
		case value.Undefined, value.Null:
			return i.evalExpr(env, n.Right)
		default:
			return left
		}
	default:
		return value.Undefined{}
	}
}

func (i *Interpreter) evalUnary(env *scope.Environment, n *parser.UnaryExpression) value.Value {
	if n.Operator == lexer.TYPEOF {
		if id, ok := n.Argument.(*parser.Identifier); ok {
			if _, _, found := env.Lookup(id.Name); !found {
				return value.String("undefined")
			}
		}
	}
	if n.Operator == lexer.DELETE {
		return i.evalDelete(env, n.Argument)
	}

	v := i.evalExpr(env, n.Argument)
	if !i.exit.running() {
		return value.Undefined{}
	}
	switch n.Operator {
	case lexer.MINUS:
		return value.Negate(v)
	case lexer.PLUS:
		return value.Number(value.ToNumber(v))
	case lexer.NOT:
		return value.BoolOf(!value.ToBoolean(v))
	case lexer.BITNOT:
		return value.BitNot(v)
	case lexer.TYPEOF:
		return value.String(value.TypeOf(v))
	default:
		return value.Undefined{}
	}
}

// evalUpdate implements prefix/postfix ++/--. It resolves the target
// to an assignRef first so a member target's base expression
// ("arr[i()]++") is evaluated exactly once, per spec.
func (i *Interpreter) evalUpdate(env *scope.Environment, n *parser.UpdateExpression) value.Value {
	ref, ok := i.resolveRef(env, n.Argument)
	if !ok {
		return i.throwError(&TypeError{Message: "invalid assignment target"})
	}
	if !i.exit.running() {
		return value.Undefined{}
	}
	old := ref.get(i)
	if !i.exit.running() {
		return value.Undefined{}
	}
	oldNum := value.ToNumber(old)
	var newNum value.Number
	if n.Operator == lexer.INC {
		newNum = oldNum + 1
	} else {
		newNum = oldNum - 1
	}
	ref.set(i, newNum)
	if !i.exit.running() {
		return value.Undefined{}
	}
	if n.Prefix {
		return newNum
	}
	return oldNum
}

func (i *Interpreter) evalBinary(env *scope.Environment, n *parser.BinaryExpression) value.Value {
	if n.Operator == lexer.IN {
		return i.evalInOperator(env, n)
	}
	if n.Operator == lexer.INSTANCEOF {
		return i.evalInstanceOf(env, n)
	}
	left := i.evalExpr(env, n.Left)
	if !i.exit.running() {
		return value.Undefined{}
	}
	right := i.evalExpr(env, n.Right)
	if !i.exit.running() {
		return value.Undefined{}
	}
	return applyBinaryOp(n.Operator, left, right)
}

func applyBinaryOp(op lexer.TokenKind, left, right value.Value) value.Value {
	switch op {
	case lexer.PLUS:
		return value.Add(left, right)
	case lexer.MINUS:
		return value.Sub(left, right)
	case lexer.STAR:
		return value.Mul(left, right)
	case lexer.SLASH:
		return value.Div(left, right)
	case lexer.PERCENT:
		return value.Mod(left, right)
	case lexer.STARSTAR:
		return value.Pow(left, right)
	case lexer.BITAND:
		return value.BitAnd(left, right)
	case lexer.BITOR:
		return value.BitOr(left, right)
	case lexer.BITXOR:
		return value.BitXor(left, right)
	case lexer.SHL:
		return value.Shl(left, right)
	case lexer.SHR:
		return value.Shr(left, right)
	case lexer.USHR:
		return value.Ushr(left, right)
	case lexer.EQ:
		return value.BoolOf(value.LooseEquals(left, right))
	case lexer.NEQ:
		return value.BoolOf(!value.LooseEquals(left, right))
	case lexer.SEQ:
		return value.BoolOf(value.StrictEquals(left, right))
	case lexer.SNEQ:
		return value.BoolOf(!value.StrictEquals(left, right))
	case lexer.LT:
		return value.BoolOf(value.Compare(left, right, "<"))
	case lexer.LE:
		return value.BoolOf(value.Compare(left, right, "<="))
	case lexer.GT:
		return value.BoolOf(value.Compare(left, right, ">"))
	case lexer.GE:
		return value.BoolOf(value.Compare(left, right, ">="))
	default:
		return value.Undefined{}
	}
}

func (i *Interpreter) evalInOperator(env *scope.Environment, n *parser.BinaryExpression) value.Value {
	key := i.evalExpr(env, n.Left)
	if !i.exit.running() {
		return value.Undefined{}
	}
	obj := i.evalExpr(env, n.Right)
	if !i.exit.running() {
		return value.Undefined{}
	}
	name := key.String()
	switch t := obj.(type) {
	case *value.Object:
		return value.BoolOf(t.Has(name))
	case *value.Array:
		if idx, err := strconv.Atoi(name); err == nil {
			return value.BoolOf(idx >= 0 && idx < t.Length())
		}
		return value.BoolOf(t.Has(name))
	default:
		return value.BoolOf(false)
	}
}

func (i *Interpreter) evalInstanceOf(env *scope.Environment, n *parser.BinaryExpression) value.Value {
	left := i.evalExpr(env, n.Left)
	if !i.exit.running() {
		return value.Undefined{}
	}
	right := i.evalExpr(env, n.Right)
	if !i.exit.running() {
		return value.Undefined{}
	}
	ctor, ok := right.(*value.Function)
	if !ok {
		return i.throwError(&TypeError{Message: "right-hand side of 'instanceof' is not callable"})
	}
	return value.BoolOf(value.InstanceOf(left, ctor))
}
