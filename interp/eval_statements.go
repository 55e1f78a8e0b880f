package interp

import (
	"github.com/arjunmenon/ecmalite/parser"
	"github.com/arjunmenon/ecmalite/scope"
	"github.com/arjunmenon/ecmalite/value"
)

// Run hoists and executes a whole program against the interpreter's
// Global environment, returning the value of its last expression
// statement (REPL-style) or a wrapped error if an exception escaped
// uncaught.
func (i *Interpreter) Run(prog *parser.Program) (value.Value, error) {
	return i.RunIn(prog, i.Global)
}

// RunIn executes prog's statements against env directly, letting
// callers (e.g. the engine's evalWith) supply a pre-populated child
// environment instead of the interpreter's own global.
func (i *Interpreter) RunIn(prog *parser.Program, env *scope.Environment) (value.Value, error) {
	i.resetExit()
	i.prepareBlockScope(env, prog.Statements)
	if i.exit.Kind == Throwing {
		return value.Undefined{}, &ThrownError{Value: i.exit.Value}
	}

	var last value.Value = value.Undefined{}
	for _, stmt := range prog.Statements {
		v := i.evalStatement(env, stmt)
		if i.exit.Kind == Throwing {
			return value.Undefined{}, &ThrownError{Value: i.exit.Value}
		}
		if !i.exit.running() {
			break
		}
		last = v
	}
	return last, nil
}

// evalStatement dispatches a single statement, returning the value an
// ExpressionStatement produced (used for REPL last-value semantics)
// or Undefined for statements with no value. It never returns while
// i.exit is non-Running without the caller checking it first.
func (i *Interpreter) evalStatement(env *scope.Environment, stmt parser.Statement) value.Value {
	if i.Listener != nil {
		i.Listener.StatementEnter(stmt)
		defer i.Listener.StatementExit(stmt)
	}

	switch n := stmt.(type) {
	case *parser.ExpressionStatement:
		return i.evalExpr(env, n.Expr)
	case *parser.VarStatement:
		return i.evalVarStatement(env, n)
	case *parser.BlockStatement:
		child := env.NewChild(scope.Block)
		return i.evalBlockIn(child, n.Statements)
	case *parser.EmptyStatement:
		return value.Undefined{}
	case *parser.IfStatement:
		return i.evalIfStatement(env, n)
	case *parser.WhileStatement:
		return i.evalWhileStatement(env, n)
	case *parser.DoWhileStatement:
		return i.evalDoWhileStatement(env, n)
	case *parser.ForStatement:
		return i.evalForStatement(env, n)
	case *parser.ForInStatement:
		return i.evalForInStatement(env, n)
	case *parser.ForOfStatement:
		return i.evalForOfStatement(env, n)
	case *parser.SwitchStatement:
		return i.evalSwitchStatement(env, n)
	case *parser.BreakStatement:
		i.exit = ExitState{Kind: Breaking}
		return value.Undefined{}
	case *parser.ContinueStatement:
		i.exit = ExitState{Kind: Continuing}
		return value.Undefined{}
	case *parser.ReturnStatement:
		var v value.Value = value.Undefined{}
		if n.Value != nil {
			v = i.evalExpr(env, n.Value)
			if !i.exit.running() {
				return value.Undefined{}
			}
		}
		i.exit = ExitState{Kind: Returning, Value: v}
		return value.Undefined{}
	case *parser.ThrowStatement:
		v := i.evalExpr(env, n.Value)
		if !i.exit.running() {
			return value.Undefined{}
		}
		return i.throwValue(v)
	case *parser.TryStatement:
		return i.evalTryStatement(env, n)
	case *parser.DeleteStatement:
		return i.evalDelete(env, n.Target)
	case *parser.FunctionDeclaration:
		// Already bound during hoisting; nothing to do at statement
		// execution time.
		return value.Undefined{}
	default:
		return value.Undefined{}
	}
}

// evalBlockIn runs a pre-scoped block (the caller has already created
// the child Environment), hoisting its own lexical/function
// declarations first.
func (i *Interpreter) evalBlockIn(env *scope.Environment, stmts []parser.Statement) value.Value {
	i.prepareBlockScope(env, stmts)
	var last value.Value = value.Undefined{}
	if !i.exit.running() {
		return last
	}
	for _, stmt := range stmts {
		last = i.evalStatement(env, stmt)
		if !i.exit.running() {
			break
		}
	}
	return last
}

func (i *Interpreter) evalVarStatement(env *scope.Environment, n *parser.VarStatement) value.Value {
	var v value.Value = value.Undefined{}
	if n.Init != nil {
		v = i.evalExpr(env, n.Init)
		if !i.exit.running() {
			return value.Undefined{}
		}
	}
	if err := i.bindPattern(env, n.Target, n.Kind, v, n.Init == nil); err != nil {
		return i.throwError(translateScopeErr(err))
	}
	return value.Undefined{}
}

func (i *Interpreter) evalIfStatement(env *scope.Environment, n *parser.IfStatement) value.Value {
	cond := i.evalExpr(env, n.Cond)
	if !i.exit.running() {
		return value.Undefined{}
	}
	if value.ToBoolean(cond) {
		return i.evalStatement(env, n.Then)
	}
	if n.Else != nil {
		return i.evalStatement(env, n.Else)
	}
	return value.Undefined{}
}

func (i *Interpreter) evalDelete(env *scope.Environment, target parser.Expression) value.Value {
	member, ok := target.(*parser.MemberExpression)
	if !ok {
		// Deleting a bare variable is a no-op that reports false,
		// per spec: "deleting a variable returns false".
		return value.BoolOf(false)
	}
	obj := i.evalExpr(env, member.Object)
	if !i.exit.running() {
		return value.Undefined{}
	}
	key := i.memberKey(env, member)
	if !i.exit.running() {
		return value.Undefined{}
	}
	if o, ok := asDeletable(obj); ok {
		return value.BoolOf(o.Delete(key))
	}
	return value.BoolOf(false)
}

func asDeletable(v value.Value) (*value.Object, bool) {
	switch t := v.(type) {
	case *value.Object:
		return t, true
	case *value.Array:
		return t.Object, true
	case *value.Function:
		return t.Object, true
	}
	return nil, false
}
