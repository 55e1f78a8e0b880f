// Package builtin populates an interp.Interpreter's prototype
// singletons and global bindings: Object, Array, String, Number,
// Boolean, Function, Date, RegExp, Error, JSON, Uint8Array, and
// console. It is grounded on the teacher's std package, generalized
// from GoMix's flat Builtins-slice-plus-Package-registry pattern
// (std/builtins.go, std/arrays.go) to ES2020's prototype-chained
// method dispatch: here, a method is installed once onto a shared
// prototype object rather than looked up by name out of a global
// table on every call.
package builtin

import (
	"math"

	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// NewPrototypes allocates the process-wide prototype singletons and
// wires their own prototype links (everything but Object.prototype
// itself descends from it), without yet installing any methods. It is
// split from Install so the interp.Interpreter can exist (for the
// CallInfo plumbing method closures capture) before method bodies are
// registered.
func NewPrototypes() *interp.Prototypes {
	objectProto := value.NewObject(nil)
	return &interp.Prototypes{
		Object:     objectProto,
		Array:      value.NewObjectWithClass(objectProto, "Array"),
		Function:   value.NewObjectWithClass(objectProto, "Function"),
		String:     value.NewObjectWithClass(objectProto, "String"),
		Number:     value.NewObjectWithClass(objectProto, "Number"),
		Boolean:    value.NewObjectWithClass(objectProto, "Boolean"),
		Date:       value.NewObjectWithClass(objectProto, "Date"),
		RegExp:     value.NewObjectWithClass(objectProto, "RegExp"),
		Uint8Array: value.NewObjectWithClass(objectProto, "Uint8Array"),
		Error:      value.NewObjectWithClass(objectProto, "Error"),
	}
}

// New creates a fully wired Interpreter: prototype methods installed
// and the standard globals (console, Object, Array, String, Number,
// Boolean, Date, RegExp, Error, JSON, Uint8Array, parseInt, parseFloat,
// isNaN, isFinite, globalThis) bound on its root environment.
func New() *interp.Interpreter {
	protos := NewPrototypes()
	i := interp.New(protos)
	Install(i)
	return i
}

// Install populates i's prototype singletons with their methods and
// binds the global constructors/functions onto i.Global. Exported
// separately from New so an embedder that built its own Interpreter
// (engine.Engine does, to wire Listener/Bridge before first eval) can
// still get the standard library.
func Install(i *interp.Interpreter) {
	installObject(i)
	installFunction(i)
	installArray(i)
	installString(i)
	installNumber(i)
	installBoolean(i)
	installDate(i)
	installRegExp(i)
	installError(i)
	installJSON(i)
	installUint8Array(i)
	installConsole(i)
	installGlobals(i)

	for _, proto := range []*value.Object{
		i.Protos.Object, i.Protos.Array, i.Protos.Function, i.Protos.String,
		i.Protos.Number, i.Protos.Boolean, i.Protos.Date, i.Protos.RegExp,
		i.Protos.Uint8Array, i.Protos.Error,
	} {
		proto.PreventExtensions()
	}
}

// method installs a non-writable/non-enumerable/non-configurable
// native method on proto, the shape spec.md §4.3 requires of every
// built-in prototype member so "Array.prototype.push = ..." and
// "for (k in [])" both behave like a real engine's frozen built-ins.
func method(proto *value.Object, name string, fn value.NativeFunc) {
	f := value.NewNativeFunction(proto, name, fn)
	proto.DefineOwn(name, value.Property{Value: f, Writable: false, Enumerable: false, Configurable: false})
}

// newCtor builds a native constructor function: callable both as
// "Name(...)" and "new Name(...)", with its own "prototype" property
// pointing at protoObj (and protoObj's "constructor" pointing back).
func newCtor(funcProto, protoObj *value.Object, name string, fn value.NativeFunc) *value.Function {
	ctor := value.NewNativeFunction(funcProto, name, fn)
	ctor.IsCtor = true
	protoObj.DefineOwn("constructor", value.Property{Value: ctor, Writable: true, Enumerable: false, Configurable: true})
	ctor.DefineOwn("prototype", value.Property{Value: protoObj, Writable: false, Enumerable: false, Configurable: false})
	return ctor
}

// static installs a non-writable/non-enumerable native function or
// value directly on a constructor object (e.g. Array.isArray,
// Number.EPSILON).
func static(ctor *value.Object, name string, v value.Value) {
	ctor.DefineOwn(name, value.Property{Value: v, Writable: false, Enumerable: false, Configurable: false})
}

func staticFunc(i *interp.Interpreter, ctor *value.Object, name string, fn value.NativeFunc) {
	static(ctor, name, value.NewNativeFunction(i.Protos.Function, name, fn))
}

// installGlobals binds the root identifiers every script sees without
// an explicit import: the prototype-bearing constructors plus a
// handful of free functions spec.md's conversion tables imply
// (parseInt/parseFloat/isNaN/isFinite) and a globalThis binding
// holding a fresh empty object, matching the teacher's convention of registering
// everything through one init-time pass (std/builtins.go's global
// Builtins slice) generalized to per-identifier global bindings
// instead of a flat name->callback table.
func installGlobals(i *interp.Interpreter) {
	global := func(name string, v value.Value) { i.Global.Assign(name, v) }

	global("undefined", value.Undefined{})
	global("NaN", value.Number(math.NaN()))
	global("Infinity", value.Number(math.Inf(1)))

	objectCtor := newCtor(i.Protos.Function, i.Protos.Object, "Object", objectConstructor(i))
	installObjectStatics(i, objectCtor)
	global("Object", objectCtor)

	arrayCtor := newCtor(i.Protos.Function, i.Protos.Array, "Array", arrayConstructor(i))
	installArrayStatics(i, arrayCtor)
	global("Array", arrayCtor)

	global("String", newCtor(i.Protos.Function, i.Protos.String, "String", stringConstructor(i)))
	numberCtor := newCtor(i.Protos.Function, i.Protos.Number, "Number", numberConstructor(i))
	installNumberStatics(i, numberCtor)
	global("Number", numberCtor)
	global("Boolean", newCtor(i.Protos.Function, i.Protos.Boolean, "Boolean", booleanConstructor(i)))
	dateCtor := newCtor(i.Protos.Function, i.Protos.Date, "Date", dateConstructor(i))
	installDateStatics(i, dateCtor)
	global("Date", dateCtor)
	global("RegExp", newCtor(i.Protos.Function, i.Protos.RegExp, "RegExp", regexpConstructor(i)))
	global("Error", newCtor(i.Protos.Function, i.Protos.Error, "Error", errorConstructor(i)))
	global("Uint8Array", newCtor(i.Protos.Function, i.Protos.Uint8Array, "Uint8Array", uint8ArrayConstructor(i)))

	jsonObj := i.NewObject()
	installJSONMethods(i, jsonObj)
	global("JSON", jsonObj)

	global("console", consoleObject(i))

	global("parseInt", value.NewNativeFunction(i.Protos.Function, "parseInt", parseIntFn))
	global("parseFloat", value.NewNativeFunction(i.Protos.Function, "parseFloat", parseFloatFn))
	global("isNaN", value.NewNativeFunction(i.Protos.Function, "isNaN", isNaNFn))
	global("isFinite", value.NewNativeFunction(i.Protos.Function, "isFinite", isFiniteFn))

	globalThis := i.NewObject()
	global("globalThis", globalThis)
}

// argAt returns args[idx] or Undefined if the call didn't supply that
// many arguments — every built-in method indexes into args this way
// rather than bounds-checking inline.
func argAt(args []value.Value, idx int) value.Value {
	if idx < 0 || idx >= len(args) {
		return value.Undefined{}
	}
	return args[idx]
}
