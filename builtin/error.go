package builtin

import (
	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// installError installs Error.prototype.toString, the one method the
// prototype itself needs; "message"/"name" are plain own properties
// set by the constructor, not prototype methods, matching the shape
// interp.throwError's host errors already produce.
func installError(i *interp.Interpreter) {
	proto := i.Protos.Error
	proto.DefineOwn("name", value.Property{Value: value.String("Error"), Writable: true, Enumerable: false, Configurable: true})
	proto.DefineOwn("message", value.Property{Value: value.String(""), Writable: true, Enumerable: false, Configurable: true})

	method(proto, "toString", func(this value.Value, args []value.Value) (value.Value, error) {
		obj, ok := asObject(this)
		if !ok {
			return value.String("Error"), nil
		}
		name := "Error"
		if n, ok := obj.Get("name"); ok {
			name = n.String()
		}
		msg := ""
		if m, ok := obj.Get("message"); ok {
			msg = m.String()
		}
		if msg == "" {
			return value.String(name), nil
		}
		return value.String(name + ": " + msg), nil
	})
}

// errorConstructor implements "new Error(message)"/"Error(message)":
// always allocates a fresh Error-prototype object (built-in errors and
// user "throw new Error(...)" both go through the same shape).
func errorConstructor(i *interp.Interpreter) value.NativeFunc {
	return func(this value.Value, args []value.Value) (value.Value, error) {
		obj := value.NewObject(i.Protos.Error)
		if len(args) > 0 && !isUndefined(args[0]) {
			obj.Set("message", value.String(args[0].String()))
		} else {
			obj.Set("message", value.String(""))
		}
		return obj, nil
	}
}
