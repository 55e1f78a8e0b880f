// Package interp is the tree-walking evaluator: Eval dispatch over the
// parser AST, the ExitState machine for return/break/continue/throw,
// and the unified call protocol for user and native functions. It is
// grounded on the teacher's eval package (eval_expressions.go,
// eval_controls.go), generalized from GoMix's flat statement set to
// the full control-flow and function-call surface this subset needs.
package interp

import (
	"fmt"

	"github.com/arjunmenon/ecmalite/value"
)

// ParseError wraps a parser.SyntaxError as a runtime-visible error when
// an embedder asks the engine to evaluate source text directly.
type ParseError struct{ Message string }

func (e *ParseError) Error() string { return e.Message }

// TDZError reports a read reaching a let/const binding before it is
// initialized, or a write reaching a const binding before its
// declaring statement has run.
type TDZError struct{ Name string }

func (e *TDZError) Error() string {
	return fmt.Sprintf("cannot access '%s' before initialization", e.Name)
}

// ConstReassignError reports an assignment to a const binding.
type ConstReassignError struct{ Name string }

func (e *ConstReassignError) Error() string {
	return fmt.Sprintf("assignment to constant: %s", e.Name)
}

// RedeclarationError reports a let/const declaration whose name is
// already declared in the same scope level.
type RedeclarationError struct{ Name string }

func (e *RedeclarationError) Error() string {
	return fmt.Sprintf("identifier '%s' has already been declared", e.Name)
}

// ReferenceError reports a read of a name with no binding anywhere in
// the environment chain.
type ReferenceError struct{ Name string }

func (e *ReferenceError) Error() string { return fmt.Sprintf("%s is not defined", e.Name) }

// MemberAccessError reports a property read/write on null/undefined
// outside of optional chaining.
type MemberAccessError struct {
	Base string // "null" or "undefined"
	Name string
}

func (e *MemberAccessError) Error() string {
	return fmt.Sprintf("cannot read properties of %s (reading '%s')", e.Base, e.Name)
}

// TypeError reports calling a non-callable value, or writing to an
// immutable built-in prototype.
type TypeError struct{ Message string }

func (e *TypeError) Error() string { return e.Message }

// ThrownError wraps an arbitrary user "throw expr" value so it can
// travel as a Go error through the call stack until a try/catch
// absorbs it or it reaches the top uncaught. When the value is an
// object carrying a "message" property (an engine error boxed by
// throwError, or a user Error), Error reports its name and message.
type ThrownError struct{ Value value.Value }

func (e *ThrownError) Error() string {
	if e.Value == nil {
		return "uncaught exception"
	}
	if obj, ok := e.Value.(*value.Object); ok {
		if msg, ok := obj.Get("message"); ok {
			if name, ok := obj.Get("name"); ok {
				return "uncaught exception: " + name.String() + ": " + msg.String()
			}
			return "uncaught exception: " + msg.String()
		}
	}
	return "uncaught exception: " + e.Value.String()
}

// RecursionLimitError reports the evaluator's call-depth guard
// tripping, distinct from the parser's own recursion guard over raw
// syntax depth.
type RecursionLimitError struct{}

func (e *RecursionLimitError) Error() string { return "maximum call stack size exceeded" }
