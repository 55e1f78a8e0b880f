package builtin

import (
	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// installUint8Array installs Uint8Array.prototype's instance methods.
// Indexed reads/writes and "length" are handled directly by the
// evaluator's member-access dispatch (eval_members.go), so the
// prototype only needs the handful of methods spec.md calls a "fixed-
// size byte buffer exposing unsigned byte reads" (fill/slice/toString
// being the practical minimum a script can observe through console.log
// or string conversion).
func installUint8Array(i *interp.Interpreter) {
	proto := i.Protos.Uint8Array

	needBuf := func(this value.Value) (*value.Uint8Array, error) {
		u, ok := this.(*value.Uint8Array)
		if !ok {
			return nil, &interp.TypeError{Message: "method called on non-Uint8Array"}
		}
		return u, nil
	}

	method(proto, "fill", func(this value.Value, args []value.Value) (value.Value, error) {
		u, err := needBuf(this)
		if err != nil {
			return nil, err
		}
		v := toInt(argAt(args, 0))
		start, end := 0, u.Length()
		if len(args) > 1 {
			start = clampIndex(toInt(args[1]), u.Length())
		}
		if len(args) > 2 {
			end = clampIndex(toInt(args[2]), u.Length())
		}
		for idx := start; idx < end; idx++ {
			u.SetAt(idx, float64(v))
		}
		return u, nil
	})
	method(proto, "slice", func(this value.Value, args []value.Value) (value.Value, error) {
		u, err := needBuf(this)
		if err != nil {
			return nil, err
		}
		n := u.Length()
		start, end := 0, n
		if len(args) > 0 {
			start = clampIndex(toInt(args[0]), n)
		}
		if len(args) > 1 && !isUndefined(args[1]) {
			end = clampIndex(toInt(args[1]), n)
		}
		if start > end {
			start = end
		}
		return value.NewUint8ArrayFrom(i.Protos.Uint8Array, u.Bytes[start:end]), nil
	})
	method(proto, "set", func(this value.Value, args []value.Value) (value.Value, error) {
		u, err := needBuf(this)
		if err != nil {
			return nil, err
		}
		offset := toInt(argAt(args, 1))
		switch src := argAt(args, 0).(type) {
		case *value.Uint8Array:
			for idx, b := range src.Bytes {
				u.SetAt(offset+idx, float64(b))
			}
		case *value.Array:
			for idx, e := range src.Elements {
				u.SetAt(offset+idx, float64(toInt(e)))
			}
		}
		return value.Undefined{}, nil
	})
	method(proto, "toString", func(this value.Value, args []value.Value) (value.Value, error) {
		u, err := needBuf(this)
		if err != nil {
			return nil, err
		}
		return value.String(u.String()), nil
	})
}

// uint8ArrayConstructor implements "new Uint8Array(n | array | other)".
func uint8ArrayConstructor(i *interp.Interpreter) value.NativeFunc {
	return func(this value.Value, args []value.Value) (value.Value, error) {
		switch arg := argAt(args, 0).(type) {
		case value.Undefined:
			return value.NewUint8Array(i.Protos.Uint8Array, 0), nil
		case value.Number:
			return value.NewUint8Array(i.Protos.Uint8Array, int(arg)), nil
		case *value.Array:
			bytes := make([]byte, len(arg.Elements))
			for idx, e := range arg.Elements {
				bytes[idx] = byte(toInt(e))
			}
			return value.NewUint8ArrayFrom(i.Protos.Uint8Array, bytes), nil
		case *value.Uint8Array:
			return value.NewUint8ArrayFrom(i.Protos.Uint8Array, arg.Bytes), nil
		default:
			return nil, &interp.TypeError{Message: "invalid Uint8Array argument"}
		}
	}
}
