package interp

import (
	"github.com/arjunmenon/ecmalite/parser"
	"github.com/arjunmenon/ecmalite/scope"
	"github.com/arjunmenon/ecmalite/value"
)

// makeFunction wraps a parsed function literal into a callable value
// closing over env, the environment active at the point the literal is
// evaluated (a function expression each time it's reached, a function
// declaration once during hoisting).
func (i *Interpreter) makeFunction(lit *parser.FunctionLiteral, env *scope.Environment) value.Value {
	return value.NewUserFunction(i.Protos.Function, lit.Name, lit.Params, lit.Body, lit.ExprBody, lit.IsArrow, env)
}

// evalCallExpression implements the unified call protocol: resolve
// callee/receiver, evaluate and flatten arguments, then dispatch to
// either a native or user function body.
func (i *Interpreter) evalCallExpression(env *scope.Environment, n *parser.CallExpression) value.Value {
	callee, this := i.evalCallee(env, n.Callee)
	if !i.exit.running() {
		return value.Undefined{}
	}
	if n.Optional && isNullishValue(callee) {
		return value.Undefined{}
	}
	args, err := i.evalArguments(env, n.Args)
	if err != nil {
		return i.throwError(err)
	}
	if !i.exit.running() {
		return value.Undefined{}
	}
	fn, ok := callee.(*value.Function)
	if !ok {
		return i.throwError(&TypeError{Message: "value is not a function"})
	}
	if i.Listener != nil {
		i.Listener.OnFunctionCall(fn, args)
	}
	return i.callFunction(fn, this, args, CallInfo{Callee: fn})
}

// evalCallee resolves a call expression's callee and implicit receiver:
// a member-expression callee ("obj.method(...)") binds the receiver to
// the object the method was read off; any other callee form calls with
// an Undefined receiver.
func (i *Interpreter) evalCallee(env *scope.Environment, calleeExpr parser.Expression) (value.Value, value.Value) {
	m, ok := calleeExpr.(*parser.MemberExpression)
	if !ok {
		return i.evalExpr(env, calleeExpr), value.Undefined{}
	}
	obj := i.evalExpr(env, m.Object)
	if !i.exit.running() {
		return value.Undefined{}, value.Undefined{}
	}
	if m.Optional && isNullishValue(obj) {
		return value.Undefined{}, value.Undefined{}
	}
	key := i.memberKey(env, m)
	if !i.exit.running() {
		return value.Undefined{}, value.Undefined{}
	}
	if isNullishValue(obj) {
		i.throwError(&MemberAccessError{Base: nullishName(obj), Name: key})
		return value.Undefined{}, value.Undefined{}
	}
	return i.getMember(obj, key), obj
}

// evalArguments evaluates a call/new argument list left-to-right,
// flattening any spread arguments in place.
func (i *Interpreter) evalArguments(env *scope.Environment, args []parser.CallArgument) ([]value.Value, error) {
	var out []value.Value
	for _, a := range args {
		v := i.evalExpr(env, a.Expr)
		if !i.exit.running() {
			return nil, nil
		}
		if a.Spread {
			spread, err := iterableValues(v)
			if err != nil {
				return nil, err
			}
			out = append(out, spread...)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// callFunction dispatches a resolved callee to its native Go
// implementation or its user-defined body. info.IsConstructor lets a
// native built-in (which has no other way to see the call site, since
// value.NativeFunc's signature is fixed to (this, args)) consult
// i.CallInfo() to tell "new Foo()" apart from "Foo()".
func (i *Interpreter) callFunction(fn *value.Function, this value.Value, args []value.Value, info CallInfo) value.Value {
	if fn.Native != nil {
		prev := i.callInfo
		i.callInfo = info
		result, err := fn.Native(this, args)
		i.callInfo = prev
		if err != nil {
			return i.throwNative(err)
		}
		return result
	}
	return i.callUserFunction(fn, this, args, info)
}

// callUserFunction runs a closure's body in a fresh Function scope,
// binding "this"/"arguments" (classical functions only — arrows inherit
// both lexically per spec) and the parameter list against args.
func (i *Interpreter) callUserFunction(fn *value.Function, this value.Value, args []value.Value, info CallInfo) value.Value {
	i.callDepth++
	if i.callDepth > maxCallDepth {
		i.callDepth--
		return i.throwError(&RecursionLimitError{})
	}
	defer func() { i.callDepth-- }()

	callEnv := fn.Closure.NewChild(scope.Function)
	if !fn.IsArrow {
		callEnv.DeclareLoopBinding("this", parser.DeclConst, this)
		argsCopy := make([]value.Value, len(args))
		copy(argsCopy, args)
		callEnv.DeclareLoopBinding("arguments", parser.DeclConst, i.NewArray(argsCopy))
	}

	if err := i.bindParams(callEnv, fn.Params, args); err != nil {
		return i.throwError(err)
	}
	if !i.exit.running() {
		return value.Undefined{}
	}

	saved := i.exit
	i.resetExit()

	var result value.Value = value.Undefined{}
	if fn.ExprBody != nil {
		result = i.evalExpr(callEnv, fn.ExprBody)
	} else {
		i.evalBlockIn(callEnv, fn.Body.Statements)
	}

	switch i.exit.Kind {
	case Returning:
		result = i.exit.Value
		i.exit = saved
	case Throwing:
		// Propagate to the caller untouched.
	default:
		i.exit = saved
	}
	return result
}

// bindParams binds a user function's parameter list against the call's
// actual arguments: defaults fill missing/undefined positions, a
// trailing rest parameter collects everything from its position on,
// and destructuring parameters recurse through the same pattern-binding
// logic a "let"/"const" declaration uses.
func (i *Interpreter) bindParams(env *scope.Environment, params []parser.Pattern, args []value.Value) error {
	for idx, p := range params {
		if rp, ok := p.(*parser.RestPattern); ok {
			var rest []value.Value
			if idx < len(args) {
				rest = append(rest, args[idx:]...)
			}
			return i.bindPatternValue(env, rp.Target, parser.DeclLet, i.NewArray(rest))
		}
		var v value.Value = value.Undefined{}
		if idx < len(args) {
			v = args[idx]
		}
		if err := i.bindPatternValue(env, p, parser.DeclLet, v); err != nil {
			return err
		}
	}
	return nil
}

// evalNewExpression implements "new Callee(args)" per spec: a native
// constructor inspects CallInfo.IsConstructor itself and returns
// whatever boxed value it sees fit; a user constructor gets a fresh
// plain object (prototype-linked to Callee.prototype) as "this", and
// that object is returned unless the body itself returns another
// object (per spec's "absorb the function's return if it is an
// object" rule).
func (i *Interpreter) evalNewExpression(env *scope.Environment, n *parser.NewExpression) value.Value {
	callee := i.evalExpr(env, n.Callee)
	if !i.exit.running() {
		return value.Undefined{}
	}
	fn, ok := callee.(*value.Function)
	if !ok {
		return i.throwError(&TypeError{Message: "value is not a constructor"})
	}
	args, err := i.evalArguments(env, n.Args)
	if err != nil {
		return i.throwError(err)
	}
	if !i.exit.running() {
		return value.Undefined{}
	}
	if !fn.IsCtor {
		return i.throwError(&TypeError{Message: fn.Name + " is not a constructor"})
	}

	info := CallInfo{IsConstructor: true, Callee: fn}

	if fn.Native != nil {
		prev := i.callInfo
		i.callInfo = info
		result, err := fn.Native(value.Undefined{}, args)
		i.callInfo = prev
		if err != nil {
			return i.throwNative(err)
		}
		return result
	}

	protoVal := i.getMember(fn, "prototype")
	protoObj, ok := protoVal.(*value.Object)
	if !ok {
		protoObj = i.Protos.Object
	}
	instance := value.NewObject(protoObj)

	result := i.callUserFunction(fn, instance, args, info)
	if !i.exit.running() {
		return value.Undefined{}
	}
	if isObjectLike(result) {
		return result
	}
	return instance
}

func isObjectLike(v value.Value) bool {
	switch v.(type) {
	case *value.Object, *value.Array, *value.Function, *value.Date, *value.Regexp, *value.Uint8Array, *value.HostOpaque:
		return true
	default:
		return false
	}
}

// CallInfo reports the context of the native built-in currently
// executing, letting a constructor-capable built-in distinguish
// "new X()" from a bare "X()" call.
func (i *Interpreter) CallInfo() CallInfo { return i.callInfo }
