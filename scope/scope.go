// Package scope implements the lexical-environment chain the evaluator
// walks for every identifier reference, declaration, and assignment.
// Values are stored as `any` rather than a concrete value type so this
// package stays below the value/interp layers in the import graph — it
// knows nothing about what a "JS value" looks like.
package scope

import "github.com/arjunmenon/ecmalite/parser"

// Kind classifies why an Environment exists, which controls where a
// "var" declaration actually lands and whether a name can be
// re-declared in the same environment.
type Kind int

const (
	Global Kind = iota
	Function
	Block
	LoopInit
	LoopBody
	Catch
)

// Binding is a single mutable cell a closure can capture by pointer.
// Re-declaring a loop variable each iteration allocates a fresh
// Binding rather than mutating an existing one, which is what gives
// closures created in different iterations distinct values to close
// over.
type Binding struct {
	Name        string
	Value       any
	Kind        parser.DeclKind
	Initialized bool // false between scope entry and the declaration executing (TDZ)
	Level       int
}

// Environment is one lexical scope: a flat map of names declared
// directly in it, plus a link to the enclosing scope. Each block,
// function body, and loop iteration gets its own Environment — there's
// no need for a stack of levels within a single Environment, since the
// parent chain already is that stack.
type Environment struct {
	Parent *Environment
	Kind   Kind
	level  int
	names  map[string]*Binding
}

// NewGlobal creates the outermost environment.
func NewGlobal() *Environment {
	return &Environment{Kind: Global, names: make(map[string]*Binding)}
}

// NewChild creates a nested environment whose lookups fall through to e.
func (e *Environment) NewChild(kind Kind) *Environment {
	return &Environment{Parent: e, Kind: kind, level: e.level + 1, names: make(map[string]*Binding)}
}

// FunctionScope walks up the chain to the nearest Function or Global
// environment, which is where "var" declarations and classic function
// declarations actually bind regardless of how many blocks they're
// nested inside.
func (e *Environment) FunctionScope() *Environment {
	env := e
	for env.Kind != Function && env.Kind != Global && env.Parent != nil {
		env = env.Parent
	}
	return env
}

// own reports whether name is declared directly in e (not an ancestor).
func (e *Environment) own(name string) (*Binding, bool) {
	b, ok := e.names[name]
	return b, ok
}

// OwnBinding exposes own to callers outside the package (the
// evaluator's destructuring-bind path needs to tell "re-initialize
// this block's pre-hoisted let/const placeholder" apart from
// "declare a brand new binding in a fresh scope" — function
// parameters, catch clauses, and for-of/in loop variables never go
// through the lexical pre-hoisting pass, so their first bind has
// nothing to find here).
func (e *Environment) OwnBinding(name string) (*Binding, bool) {
	return e.own(name)
}

// Lookup walks the parent chain looking for name, returning the
// Binding and the Environment that owns it.
func (e *Environment) Lookup(name string) (*Binding, *Environment, bool) {
	for env := e; env != nil; env = env.Parent {
		if b, ok := env.own(name); ok {
			return b, env, true
		}
	}
	return nil, nil, false
}

// DeclareVar hoists a "var" binding to the nearest function/global
// scope. Re-declaring an existing var is not an error — it just keeps
// the original binding (and its current value) in place, matching the
// language's var semantics.
func (e *Environment) DeclareVar(name string) *Binding {
	fnScope := e.FunctionScope()
	if b, ok := fnScope.own(name); ok {
		return b
	}
	b := &Binding{Name: name, Kind: parser.DeclVar, Initialized: true, Value: Undefined{}, Level: fnScope.level}
	fnScope.names[name] = b
	return b
}

// DeclareTDZ pre-registers a let/const binding as uninitialized, ahead
// of the statement that will actually initialize it. The evaluator
// runs this during a lexical-hoisting pre-pass over a block's own
// (non-nested) statements so that referencing the name earlier in the
// block resolves to this placeholder and reports TDZ rather than
// "not defined".
func (e *Environment) DeclareTDZ(name string, kind parser.DeclKind) (*Binding, error) {
	if _, ok := e.own(name); ok {
		return nil, &RedeclarationError{Name: name}
	}
	b := &Binding{Name: name, Kind: kind, Initialized: false, Level: e.level}
	e.names[name] = b
	return b, nil
}

// Initialize turns a TDZ placeholder into a live binding in place, so
// closures capturing the Binding pointer before and after the
// initializing statement see consistent state.
func (e *Environment) Initialize(b *Binding, value any) {
	b.Value = value
	b.Initialized = true
}

// DeclareLoopBinding allocates a fresh, already-initialized Binding
// directly in e, replacing any own binding of that name without a
// redeclaration check. The evaluator uses it for a for-loop's
// per-iteration variable and for bindings created in a fresh
// environment (parameters, this, arguments, catch and for-in/of
// variables).
func (e *Environment) DeclareLoopBinding(name string, kind parser.DeclKind, value any) *Binding {
	b := &Binding{Name: name, Kind: kind, Initialized: true, Value: value, Level: e.level}
	e.names[name] = b
	return b
}

// Get resolves name for a read, translating TDZ and not-found into
// their respective sentinel errors.
func (e *Environment) Get(name string) (any, error) {
	b, _, ok := e.Lookup(name)
	if !ok {
		return nil, &ReferenceError{Name: name}
	}
	if !b.Initialized {
		return nil, &TDZError{Name: name}
	}
	return b.Value, nil
}

// Assign resolves name for a write. Writing to a name nowhere in the
// chain creates an implicit global binding (non-strict assignment
// semantics), matching most embeddable-interpreter behavior for bare
// assignment to an undeclared name. Writing to a let binding still in
// its TDZ initializes it; writing to an uninitialized const fails.
func (e *Environment) Assign(name string, value any) error {
	b, _, ok := e.Lookup(name)
	if !ok {
		global := e
		for global.Parent != nil {
			global = global.Parent
		}
		global.names[name] = &Binding{Name: name, Kind: parser.DeclVar, Initialized: true, Value: value, Level: global.level}
		return nil
	}
	if !b.Initialized && b.Kind != parser.DeclLet {
		return &TDZError{Name: name}
	}
	if b.Kind == parser.DeclConst {
		return &ConstReassignError{Name: name}
	}
	b.Value = value
	b.Initialized = true
	return nil
}

// Delete removes an own binding from e directly (not the parent
// chain), reporting whether one was present. Used by the embedder
// surface to drop a root binding installed via Put/PutRootBinding;
// ordinary script execution never deletes a variable this way
// (JS has no "delete" for identifiers, only for object properties).
func (e *Environment) Delete(name string) bool {
	if _, ok := e.names[name]; !ok {
		return false
	}
	delete(e.names, name)
	return true
}

// Undefined is scope's own zero-dependency stand-in for the
// language's undefined value, used only for a freshly hoisted "var"
// binding before its declaration (if any) runs. The value package
// defines the real Undefined used everywhere else; interp treats the
// two as interchangeable when it first reads a hoisted var.
type Undefined struct{}
