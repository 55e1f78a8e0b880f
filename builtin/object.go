package builtin

import (
	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// installObject installs Object.prototype's instance methods:
// toString/valueOf/hasOwnProperty/isPrototypeOf, grounded on the
// teacher's objects.BaseObject default-method pattern generalized from
// a single stringer method to the handful ES2020 plain objects expose.
func installObject(i *interp.Interpreter) {
	proto := i.Protos.Object

	method(proto, "toString", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(this.String()), nil
	})
	method(proto, "valueOf", func(this value.Value, args []value.Value) (value.Value, error) {
		return this, nil
	})
	method(proto, "hasOwnProperty", func(this value.Value, args []value.Value) (value.Value, error) {
		name := argAt(args, 0).String()
		obj, ok := asObject(this)
		if !ok {
			return value.False, nil
		}
		return value.BoolOf(obj.HasOwn(name)), nil
	})
	method(proto, "isPrototypeOf", func(this value.Value, args []value.Value) (value.Value, error) {
		target, ok := asObject(argAt(args, 0))
		self, selfOK := asObject(this)
		if !ok || !selfOK {
			return value.False, nil
		}
		for cur := target.Prototype(); cur != nil; cur = cur.Prototype() {
			if cur == self {
				return value.True, nil
			}
		}
		return value.False, nil
	})
}

// objectConstructor implements "Object(...)"/"new Object(...)": with
// no argument (or a nullish one) it allocates a fresh plain object;
// otherwise it returns the argument as-is (this subset has no boxed
// primitive wrapper objects distinct from the primitives themselves).
func objectConstructor(i *interp.Interpreter) value.NativeFunc {
	return func(this value.Value, args []value.Value) (value.Value, error) {
		arg := argAt(args, 0)
		switch arg.(type) {
		case value.Undefined, value.Null:
			return i.NewObject(), nil
		default:
			if _, ok := asObject(arg); ok {
				return arg, nil
			}
			return i.NewObject(), nil
		}
	}
}

// installObjectStatics installs Object.keys/values/entries/assign/
// fromEntries/is/create/getPrototypeOf/setPrototypeOf per spec.md §4.6.
func installObjectStatics(i *interp.Interpreter, ctor *value.Function) {
	c := ctor.Object

	staticFunc(i, c, "keys", func(this value.Value, args []value.Value) (value.Value, error) {
		keys := ownKeysOf(argAt(args, 0))
		out := make([]value.Value, len(keys))
		for idx, k := range keys {
			out[idx] = value.String(k)
		}
		return i.NewArray(out), nil
	})
	staticFunc(i, c, "values", func(this value.Value, args []value.Value) (value.Value, error) {
		obj := argAt(args, 0)
		keys := ownKeysOf(obj)
		out := make([]value.Value, len(keys))
		for idx, k := range keys {
			out[idx] = i.GetMember(obj, k)
		}
		return i.NewArray(out), nil
	})
	staticFunc(i, c, "entries", func(this value.Value, args []value.Value) (value.Value, error) {
		obj := argAt(args, 0)
		keys := ownKeysOf(obj)
		out := make([]value.Value, len(keys))
		for idx, k := range keys {
			out[idx] = i.NewArray([]value.Value{value.String(k), i.GetMember(obj, k)})
		}
		return i.NewArray(out), nil
	})
	staticFunc(i, c, "assign", func(this value.Value, args []value.Value) (value.Value, error) {
		target, ok := asObject(argAt(args, 0))
		if !ok {
			return nil, &interp.TypeError{Message: "Object.assign target must be an object"}
		}
		for _, src := range args[1:] {
			for _, k := range ownKeysOf(src) {
				if err := target.Set(k, i.GetMember(src, k)); err != nil {
					return nil, err
				}
			}
		}
		return target, nil
	})
	staticFunc(i, c, "fromEntries", func(this value.Value, args []value.Value) (value.Value, error) {
		entries, err := interp.IterableValues(argAt(args, 0))
		if err != nil {
			return nil, err
		}
		out := i.NewObject()
		for _, e := range entries {
			pair, err := interp.IterableValues(e)
			if err != nil {
				return nil, err
			}
			key := argAt(pair, 0).String()
			var val value.Value = value.Undefined{}
			if len(pair) > 1 {
				val = pair[1]
			}
			out.Set(key, val)
		}
		return out, nil
	})
	staticFunc(i, c, "is", func(this value.Value, args []value.Value) (value.Value, error) {
		a, b := argAt(args, 0), argAt(args, 1)
		an, aIsNum := a.(value.Number)
		bn, bIsNum := b.(value.Number)
		if aIsNum && bIsNum {
			if isNaNNumber(an) && isNaNNumber(bn) {
				return value.True, nil
			}
		}
		return value.BoolOf(value.StrictEquals(a, b)), nil
	})
	staticFunc(i, c, "create", func(this value.Value, args []value.Value) (value.Value, error) {
		var proto *value.Object
		switch p := argAt(args, 0).(type) {
		case *value.Object:
			proto = p
		case value.Null:
			proto = nil
		default:
			return nil, &interp.TypeError{Message: "Object prototype may only be an Object or null"}
		}
		return value.NewObject(proto), nil
	})
	staticFunc(i, c, "getPrototypeOf", func(this value.Value, args []value.Value) (value.Value, error) {
		obj, ok := asObject(argAt(args, 0))
		if !ok || obj.Prototype() == nil {
			return value.Null{}, nil
		}
		return obj.Prototype(), nil
	})
	staticFunc(i, c, "setPrototypeOf", func(this value.Value, args []value.Value) (value.Value, error) {
		obj, ok := asObject(argAt(args, 0))
		if !ok {
			return argAt(args, 0), nil
		}
		switch p := argAt(args, 1).(type) {
		case *value.Object:
			if err := obj.SetPrototype(p); err != nil {
				return nil, err
			}
		case value.Null:
			if err := obj.SetPrototype(nil); err != nil {
				return nil, err
			}
		}
		return argAt(args, 0), nil
	})
}

func isNaNNumber(n value.Number) bool {
	f := float64(n)
	return f != f
}
