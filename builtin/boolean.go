package builtin

import (
	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// installBoolean installs Boolean.prototype's valueOf/toString, the
// pair every primitive wrapper prototype in this subset carries (see
// installString/installNumber).
func installBoolean(i *interp.Interpreter) {
	proto := i.Protos.Boolean

	method(proto, "valueOf", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.BoolOf(value.ToBoolean(this)), nil
	})
	method(proto, "toString", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(value.BoolOf(value.ToBoolean(this)).String()), nil
	})
}

// booleanConstructor implements "Boolean(x)"/"new Boolean(x)": coerces
// to a primitive boolean via ToBoolean.
func booleanConstructor(i *interp.Interpreter) value.NativeFunc {
	return func(this value.Value, args []value.Value) (value.Value, error) {
		return value.BoolOf(value.ToBoolean(argAt(args, 0))), nil
	}
}
