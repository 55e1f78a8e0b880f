// Package engine is the embedder-facing surface of ecmalite: the
// Engine type wraps an interp.Interpreter with the bindings map,
// observation hooks (Listener, ExternalBridge, RunInterceptor), and
// host-value conversion spec.md §6 specifies, generalized from the
// teacher's *eval.Evaluator + fluent SetWriter/SetReader/SetParser
// setters (main/main.go, repl/repl.go) into an explicit constructor-
// plus-functional-options API a library caller, not just the
// teacher's own REPL, can drive.
package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/arjunmenon/ecmalite/builtin"
	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/parser"
	"github.com/arjunmenon/ecmalite/scope"
	"github.com/arjunmenon/ecmalite/value"
	"golang.org/x/sync/singleflight"
)

// Engine is one embeddable evaluation context: a root environment
// that persists across Eval calls (so a `putRootBinding` or a `var`
// at the top level is visible to the next Eval), the prototype
// singletons, and whatever Listener/ExternalBridge/RunInterceptor the
// embedder has wired in.
//
// Per spec.md §5, one Engine serves one logical caller at a time; Eval
// takes an internal mutex so concurrent callers sharing one *Engine
// observe calls one-at-a-time rather than interleaving tree-walks,
// and routes through a singleflight.Group keyed on a monotonic call
// counter purely so that guarantee is visible in the call graph
// (every key is unique, so Do never actually coalesces two distinct
// Eval calls into one result) rather than introducing a second,
// competing notion of "the same work".
type Engine struct {
	interp *interp.Interpreter

	mu    sync.Mutex
	group singleflight.Group
	calls uint64
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithBindings installs bindings as durable root bindings before any
// source is evaluated, equivalent to calling PutRootBinding once per
// entry. This is the Go-native analogue of "new Engine(externalBindings)"
// from spec.md §6.
func WithBindings(bindings map[string]any) Option {
	return func(e *Engine) {
		for name, v := range bindings {
			e.PutRootBinding(name, v)
		}
	}
}

// WithWriter redirects console.log/info/warn/error/debug output (when
// no ConsoleSink is installed via SetOnConsoleLog) to w instead of
// os.Stdout.
func WithWriter(w interface{ Write([]byte) (int, error) }) Option {
	return func(e *Engine) { e.interp.Out = w }
}

// New creates an Engine with a fresh global environment and the full
// standard library installed (builtin.New), applying opts in order.
func New(opts ...Option) *Engine {
	e := &Engine{interp: builtin.New()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewWithBindings is shorthand for New(WithBindings(bindings)), the
// form spec.md §6 calls out explicitly ("new Engine(externalBindings)").
func NewWithBindings(bindings map[string]any) *Engine {
	return New(WithBindings(bindings))
}

// Eval parses and evaluates source against the engine's persistent
// root environment, converting the resulting value (or the last
// expression statement's value, REPL-style) to an idiomatic host type
// via value.ToHost.
func (e *Engine) Eval(source string) (any, error) {
	prog, perr := e.parse(source)
	if perr != nil {
		return nil, perr
	}
	return e.runLocked(prog, e.interp.Global)
}

// EvalProgram evaluates an already-parsed Program, letting a caller
// reuse one parse across repeated evaluations (spec.md §5's "the
// syntax tree is immutable after parsing; multiple evaluations may
// share it").
func (e *Engine) EvalProgram(prog *parser.Program) (any, error) {
	return e.runLocked(prog, e.interp.Global)
}

// EvalWith evaluates source against a fresh child scope seeded with
// locals. The locals and the script's top-level let/const bindings
// live only in that child scope and are dropped once EvalWith returns;
// var and function declarations and implicit globals from bare
// assignment still land in the engine's root environment and persist.
func (e *Engine) EvalWith(source string, locals map[string]any) (any, error) {
	prog, perr := e.parse(source)
	if perr != nil {
		return nil, perr
	}
	child := e.interp.Global.NewChild(scope.Block)
	for name, v := range locals {
		child.DeclareLoopBinding(name, parser.DeclVar, e.fromHost(v))
	}
	return e.runLocked(prog, child)
}

func (e *Engine) parse(source string) (*parser.Program, error) {
	prog, errs := parser.Parse(source)
	if len(errs) > 0 {
		return nil, &interp.ParseError{Message: errs[0].Error()}
	}
	return prog, nil
}

// runLocked serializes execution through a monotonic-keyed
// singleflight.Group under e.mu: the mutex is what actually makes
// concurrent Eval/EvalWith/EvalProgram calls observe one-at-a-time
// semantics; the singleflight key is per-call-unique so the group
// never coalesces two callers' distinct results together.
func (e *Engine) runLocked(prog *parser.Program, env *scope.Environment) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	key := fmt.Sprintf("%d", atomic.AddUint64(&e.calls, 1))
	v, err, _ := e.group.Do(key, func() (interface{}, error) {
		return e.interp.RunIn(prog, env)
	})
	if err != nil {
		return nil, err
	}
	return value.ToHost(v.(value.Value)), nil
}

// Get reads a root binding, auto-unwrapping it to a host type (spec.md
// §6: "get auto-unwraps").
func (e *Engine) Get(name string) (any, error) {
	v, err := e.interp.Global.Get(name)
	if err != nil {
		return nil, err
	}
	jv, ok := v.(value.Value)
	if !ok {
		return nil, nil
	}
	return value.ToHost(jv), nil
}

// Put writes a root binding, creating it if absent (non-strict
// assignment semantics, matching scope.Environment.Assign).
func (e *Engine) Put(name string, v any) {
	e.interp.Global.Assign(name, e.fromHost(v))
}

// Remove deletes a binding held directly in the root environment,
// whether the embedder installed it via Put/PutRootBinding or a script
// declared it there at top level with var/let/const/function.
func (e *Engine) Remove(name string) {
	e.interp.Global.Delete(name)
}

// PutRootBinding installs a durable global reachable as a normal
// identifier during evaluation, the form spec.md §6 specifies for
// bindings an embedder wants visible from the very first statement.
func (e *Engine) PutRootBinding(name string, v any) {
	b := e.interp.Global.DeclareVar(name)
	e.interp.Global.Initialize(b, e.fromHost(v))
}

func (e *Engine) fromHost(v any) value.Value {
	return value.FromHost(e.interp.Protos.Object, e.interp.Protos.Array, v)
}

// SetOnConsoleLog redirects every console.log/info/warn/error/debug
// call's arguments (converted to host types) to fn instead of writing
// formatted text to the engine's output writer.
func (e *Engine) SetOnConsoleLog(fn func(args ...any)) {
	if fn == nil {
		e.interp.ConsoleSink = nil
		return
	}
	e.interp.ConsoleSink = func(args []value.Value) {
		hostArgs := make([]any, len(args))
		for i, a := range args {
			hostArgs[i] = value.ToHost(a)
		}
		fn(hostArgs...)
	}
}

// SetListener wires l to receive STATEMENT/EXPRESSION enter/exit
// events and function calls. The evaluator emits no CONTEXT events and
// never calls l's OnVariableWrite or OnError.
func (e *Engine) SetListener(l interp.Listener) { e.interp.Listener = l }

// SetExternalBridge wires b as the host-interop fallback for member
// access the value model itself can't resolve (spec.md §6's
// ExternalBridge contract).
func (e *Engine) SetExternalBridge(b interp.ExternalBridge) { e.interp.Bridge = b }

// SetDebugSupport stores an interceptor and point factory on the
// interpreter. The evaluator does not consult them: no statement is
// paused, skipped or reported through them.
func (e *Engine) SetDebugSupport(interceptor interp.RunInterceptor, factory interp.DebugPointFactory) {
	e.interp.Interceptor = interceptor
	e.interp.PointFactory = factory
}

// CallFunction invokes a *value.Function (e.g. one previously fetched
// via Get and type-asserted) with host-type arguments, converting the
// result back to a host type. Useful for an embedder that got a
// callback from script code and now wants to call it from Go.
func (e *Engine) CallFunction(fn *value.Function, this any, args []any) (any, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	jsArgs := make([]value.Value, len(args))
	for i, a := range args {
		jsArgs[i] = e.fromHost(a)
	}
	result, err := e.interp.CallFunction(fn, e.fromHost(this), jsArgs)
	if err != nil {
		return nil, err
	}
	return value.ToHost(result), nil
}

// Interpreter exposes the underlying *interp.Interpreter for advanced
// embedders that want raw value.Value results rather than
// host-converted ones, without requiring a second construction path.
func (e *Engine) Interpreter() *interp.Interpreter { return e.interp }
