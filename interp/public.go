package interp

import (
	"regexp"

	"github.com/arjunmenon/ecmalite/value"
)

// CompileRegex exposes compileJSRegex for the builtin package's RegExp
// constructor, which needs the same flag translation the lexer's regex
// literals get without duplicating it.
func CompileRegex(pattern, flags string) (*regexp.Regexp, error) {
	return compileJSRegex(pattern, flags)
}

// GetMember exposes getMember for the builtin package, which needs to
// read properties (e.g. Object.values walking an arbitrary value's own
// keys) without duplicating the per-kind dispatch eval_members.go
// already implements.
func (i *Interpreter) GetMember(base value.Value, name string) value.Value {
	return i.getMember(base, name)
}

// PutMember exposes putMember for the builtin package.
func (i *Interpreter) PutMember(base value.Value, name string, v value.Value) error {
	return i.putMember(base, name, v)
}

// IterableValues exposes iterableValues (for-of's iteration source) so
// built-ins like Array.from and Object.fromEntries can consume any
// iterable the language defines, not just arrays.
func IterableValues(v value.Value) ([]value.Value, error) {
	return iterableValues(v)
}

// EnumerableKeys exposes enumerableKeys (for-in's iteration source),
// used by Object.keys/values/entries.
func EnumerableKeys(v value.Value) []string {
	return enumerableKeys(v)
}

// CallFunction exposes callFunction so built-ins that accept a
// callback (Array.prototype.map, sort's comparator, JSON.stringify's
// replacer) can invoke user-supplied functions the same way the
// evaluator calls them from a CallExpression.
func (i *Interpreter) CallFunction(fn *value.Function, this value.Value, args []value.Value) (value.Value, error) {
	result := i.callFunction(fn, this, args, CallInfo{Callee: fn})
	if i.exit.Kind == Throwing {
		err := &ThrownError{Value: i.exit.Value}
		i.resetExit()
		return value.Undefined{}, err
	}
	return result, nil
}

// Throwing reports whether the interpreter's exit state is currently
// Throwing, letting a built-in that just invoked a user callback via
// CallFunction tell a propagating exception apart from a normal
// result without reaching into unexported state.
func (i *Interpreter) Throwing() bool {
	return i.exit.Kind == Throwing
}
