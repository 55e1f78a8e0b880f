package value

import (
	"fmt"

	"github.com/arjunmenon/ecmalite/parser"
	"github.com/arjunmenon/ecmalite/scope"
)

// NativeFunc is the signature a built-in method or constructor
// implements. this is Undefined for a bare call with no receiver.
type NativeFunc func(this Value, args []Value) (Value, error)

// Function represents both user-defined closures (Params/Body/Closure
// populated) and built-in functions (Native populated). Unifying the
// two under one struct — rather than a Function interface with two
// implementations — keeps the evaluator's call-dispatch switch small,
// following the teacher's preference for one concrete struct per
// runtime kind over interface-heavy polymorphism (function/function.go).
type Function struct {
	*Object
	Name     string
	Params   []parser.Pattern
	Body     *parser.BlockStatement
	ExprBody parser.Expression // set instead of Body for concise-arrow bodies
	Closure  *scope.Environment
	IsArrow  bool
	Native   NativeFunc
	IsCtor   bool // callable with "new" and allocates a fresh instance
}

// NewUserFunction wraps a parsed function literal's pieces into a
// callable Function value closing over env.
func NewUserFunction(proto *Object, name string, params []parser.Pattern, body *parser.BlockStatement, exprBody parser.Expression, isArrow bool, env *scope.Environment) *Function {
	fn := &Function{
		Object:   NewObjectWithClass(proto, "Function"),
		Name:     name,
		Params:   params,
		Body:     body,
		ExprBody: exprBody,
		IsArrow:  isArrow,
		Closure:  env,
		IsCtor:   !isArrow,
	}
	return fn
}

// NewNativeFunction wraps a Go function as a callable built-in.
func NewNativeFunction(proto *Object, name string, fn NativeFunc) *Function {
	return &Function{
		Object: NewObjectWithClass(proto, "Function"),
		Name:   name,
		Native: fn,
	}
}

func (f *Function) Type() Type { return TypeFunction }

func (f *Function) String() string {
	if f.Native != nil {
		return fmt.Sprintf("function %s() { [native code] }", f.Name)
	}
	return fmt.Sprintf("function %s() { ... }", f.Name)
}

func (f *Function) Inspect() string { return f.String() }

// ParamCount mirrors Function.prototype.length: the count of params
// before the first default-valued or rest parameter.
func (f *Function) ParamCount() int {
	n := 0
	for _, p := range f.Params {
		switch p.(type) {
		case *parser.DefaultPattern, *parser.RestPattern:
			return n
		}
		n++
	}
	return n
}
