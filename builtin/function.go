package builtin

import (
	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// installFunction installs Function.prototype's call/apply/bind, the
// trio every classical-function value needs for explicit receiver
// binding even though this subset has no "class" syntax of its own.
func installFunction(i *interp.Interpreter) {
	proto := i.Protos.Function

	method(proto, "call", func(this value.Value, args []value.Value) (value.Value, error) {
		fn, ok := this.(*value.Function)
		if !ok {
			return nil, &interp.TypeError{Message: "Function.prototype.call called on non-function"}
		}
		newThis := argAt(args, 0)
		var rest []value.Value
		if len(args) > 1 {
			rest = args[1:]
		}
		return i.CallFunction(fn, newThis, rest)
	})

	method(proto, "apply", func(this value.Value, args []value.Value) (value.Value, error) {
		fn, ok := this.(*value.Function)
		if !ok {
			return nil, &interp.TypeError{Message: "Function.prototype.apply called on non-function"}
		}
		newThis := argAt(args, 0)
		var rest []value.Value
		if arr, ok := argAt(args, 1).(*value.Array); ok {
			rest = append(rest, arr.Elements...)
		}
		return i.CallFunction(fn, newThis, rest)
	})

	method(proto, "bind", func(this value.Value, args []value.Value) (value.Value, error) {
		fn, ok := this.(*value.Function)
		if !ok {
			return nil, &interp.TypeError{Message: "Function.prototype.bind called on non-function"}
		}
		boundThis := argAt(args, 0)
		var bound []value.Value
		if len(args) > 1 {
			bound = append(bound, args[1:]...)
		}
		name := "bound " + fn.Name
		wrapped := value.NewNativeFunction(i.Protos.Function, name, func(_ value.Value, callArgs []value.Value) (value.Value, error) {
			full := append(append([]value.Value{}, bound...), callArgs...)
			return i.CallFunction(fn, boundThis, full)
		})
		return wrapped, nil
	})

	method(proto, "toString", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(this.String()), nil
	})
}
