package interp

import (
	"io"
	"os"

	"github.com/arjunmenon/ecmalite/scope"
	"github.com/arjunmenon/ecmalite/value"
)

// ExitKind distinguishes why evaluation of a statement sequence
// stopped early, implementing return/break/continue/throw as an
// explicit state check rather than Go panics/exceptions.
type ExitKind int

const (
	Running ExitKind = iota
	Returning
	Breaking
	Continuing
	Throwing
)

// ExitState is checked after every statement and at expression
// sub-boundaries that could have triggered one (function calls,
// nested blocks). It lives on the Interpreter rather than per
// Environment — this interpreter evaluates one call stack at a time,
// so a single field serves the same purpose the spec's
// per-environment exit_state does, with less plumbing to thread
// through every eval call.
type ExitState struct {
	Kind  ExitKind
	Value value.Value // meaningful for Returning and Throwing
}

func (s ExitState) running() bool { return s.Kind == Running }

// CallInfo records the context of an in-flight function call, used by
// native built-ins that need to distinguish a "new Foo()" invocation
// from a bare call.
type CallInfo struct {
	IsConstructor bool
	Callee        value.Value
}

// Prototypes holds the process-wide built-in prototype singletons the
// evaluator consults when constructing fresh objects, arrays,
// functions, and boxed values (object/array literals, "new", the
// arguments object, thrown plain-object errors). The builtin package
// populates this once at engine setup.
type Prototypes struct {
	Object     *value.Object
	Array      *value.Object
	Function   *value.Object
	String     *value.Object
	Number     *value.Object
	Boolean    *value.Object
	Date       *value.Object
	RegExp     *value.Object
	Uint8Array *value.Object
	Error      *value.Object
}

// maxCallDepth bounds user-function call recursion so a runaway
// recursive script fails with RecursionLimitError instead of
// exhausting the Go goroutine stack.
const maxCallDepth = 2000

// Interpreter walks one parsed Program (or REPL statement) against a
// root Environment, dispatching each node by type switch. It is the
// generalization of the teacher's Evaluator: same single-dispatch
// eval entry point and Writer-backed console, expanded to the
// ExitState machine and full call protocol this subset's function/
// closure/try-catch semantics need.
type Interpreter struct {
	Global *scope.Environment
	Protos *Prototypes
	Out    io.Writer

	Listener     Listener
	Bridge       ExternalBridge
	Interceptor  RunInterceptor
	PointFactory DebugPointFactory

	// ConsoleSink, when set, receives every console.log/info/warn/
	// error/debug call's arguments instead of them being formatted to
	// Out, letting an embedder capture console output as structured
	// values (engine.SetOnConsoleLog) rather than parsing a writer.
	ConsoleSink func(args []value.Value)

	exit      ExitState
	callDepth int
	callInfo  CallInfo
}

// New creates an Interpreter rooted at a fresh global environment.
// Protos must be populated by the caller (normally via the builtin
// package's registry) before evaluating any program that touches
// object/array/function literals or throws.
func New(protos *Prototypes) *Interpreter {
	return &Interpreter{
		Global: scope.NewGlobal(),
		Protos: protos,
		Out:    os.Stdout,
	}
}

// NewObject allocates a plain object linked to the Object prototype.
func (i *Interpreter) NewObject() *value.Object {
	return value.NewObject(i.Protos.Object)
}

// NewArray allocates an array linked to the Array prototype.
func (i *Interpreter) NewArray(elements []value.Value) *value.Array {
	return value.NewArray(i.Protos.Array, elements)
}

func (i *Interpreter) resetExit() { i.exit = ExitState{Kind: Running} }

// throwError wraps a Go error as a thrown exception value. Typed
// engine errors (TypeError, ReferenceError, ...) are surfaced as
// plain Error-prototype objects carrying a "message" property, the
// same shape a user "throw new Error(...)" would produce, so catch
// blocks can't tell host errors from user-thrown ones by shape alone.
func (i *Interpreter) throwError(err error) value.Value {
	obj := value.NewObject(i.Protos.Error)
	obj.Set("message", value.String(err.Error()))
	obj.Set("name", value.String(errorName(err)))
	i.exit = ExitState{Kind: Throwing, Value: obj}
	return value.Undefined{}
}

// throwNative dispatches a native built-in's returned error: a
// *ThrownError carries a user-level value a propagating user callback
// already threw (e.g. Array.prototype.map's callback throwing a plain
// object) and must resurface as that exact value rather than being
// re-wrapped into a new Error object; every other error type goes
// through the usual engine-error boxing.
func (i *Interpreter) throwNative(err error) value.Value {
	if te, ok := err.(*ThrownError); ok {
		return i.throwValue(te.Value)
	}
	return i.throwError(err)
}

func errorName(err error) string {
	switch err.(type) {
	case *TDZError, *ReferenceError:
		return "ReferenceError"
	case *ConstReassignError, *RedeclarationError:
		return "SyntaxError"
	case *TypeError, *MemberAccessError:
		return "TypeError"
	case *RecursionLimitError:
		return "RangeError"
	default:
		return "Error"
	}
}

// throwValue sets the exit state directly to an already-built value,
// used for "throw expr" where expr's value is exactly what propagates.
func (i *Interpreter) throwValue(v value.Value) value.Value {
	i.exit = ExitState{Kind: Throwing, Value: v}
	return value.Undefined{}
}
