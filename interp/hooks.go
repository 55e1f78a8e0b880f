package interp

import (
	"github.com/arjunmenon/ecmalite/parser"
	"github.com/arjunmenon/ecmalite/value"
)

// Listener receives evaluation lifecycle events. Every method is
// optional in spirit — the engine only ever calls through a non-nil
// Listener, and an embedder can leave hooks as no-ops by embedding
// NopListener. The evaluator calls StatementEnter/Exit,
// ExpressionEnter/Exit and OnFunctionCall; it never calls
// OnVariableWrite or OnError.
type Listener interface {
	StatementEnter(stmt parser.Statement)
	StatementExit(stmt parser.Statement)
	ExpressionEnter(expr parser.Expression)
	ExpressionExit(expr parser.Expression)
	OnVariableWrite(kind parser.DeclKind, name string, v value.Value)
	OnFunctionCall(callee value.Value, args []value.Value)
	// OnError's contract is (substitute, true) to suppress an error
	// and (nil, false) to let it propagate; the evaluator does not
	// invoke it, so errors always propagate.
	OnError(err error) (value.Value, bool)
}

// NopListener implements Listener with every method a no-op, so a
// concrete Listener only needs to override the events it cares about.
type NopListener struct{}

func (NopListener) StatementEnter(parser.Statement)                      {}
func (NopListener) StatementExit(parser.Statement)                       {}
func (NopListener) ExpressionEnter(parser.Expression)                    {}
func (NopListener) ExpressionExit(parser.Expression)                     {}
func (NopListener) OnVariableWrite(parser.DeclKind, string, value.Value) {}
func (NopListener) OnFunctionCall(value.Value, []value.Value)            {}
func (NopListener) OnError(error) (value.Value, bool)                    { return nil, false }

// ExternalAccess is the per-type/per-instance capability surface a
// host bridge exposes for a value the engine doesn't otherwise know
// how to read/write/call members on.
type ExternalAccess interface {
	Read(name string) (value.Value, bool)
	Update(name string, v value.Value) error
	Call(method string, args []value.Value) (value.Value, error)
	GetMethod(name string) (value.Value, bool)
	GetProperty(name string) (value.Value, bool)
	Construct(args []value.Value) (value.Value, error)
	Invoke(args []value.Value) (value.Value, error)
}

// ExternalBridge resolves host interop for member access that member
// lookup on the value model itself couldn't satisfy.
type ExternalBridge interface {
	ForType(dottedName string) (ExternalAccess, bool)
	ForInstance(v value.Value) (ExternalAccess, bool)
}

// ResumeAction is what beforeExecute/waitForResume tell the evaluator
// to do next.
type ResumeAction int

const (
	Continue ResumeAction = iota
	Skip
	Wait
)

// DebugPoint is an opaque token identifying a pause location, built by
// a DebugPointFactory and handed back to RunInterceptor.
type DebugPoint struct {
	Kind string
	Line int
	Node parser.Node
}

// DebugPointFactory constructs DebugPoints for the interceptor.
type DebugPointFactory interface {
	NewPoint(kind string, line int, node parser.Node) DebugPoint
}

// RunInterceptor is the pause/step surface for an external debugger.
// Interpreter.Interceptor holds one, but the evaluator never calls
// its methods.
type RunInterceptor interface {
	BeforeExecute(point DebugPoint) ResumeAction
	WaitForResume() ResumeAction
	AfterExecute(point DebugPoint, result value.Value, err error)
}
