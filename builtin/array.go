package builtin

import (
	"sort"
	"strings"

	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// installArray installs Array.prototype's instance methods per
// spec.md §4.6, grounded on the teacher's std/arrays.go free-function
// style (pushArray/popArray/mapArray/...) generalized from functions
// taking the array explicitly to methods dispatched through "this".
func installArray(i *interp.Interpreter) {
	proto := i.Protos.Array

	needArray := func(this value.Value) (*value.Array, error) {
		a, ok := this.(*value.Array)
		if !ok {
			return nil, &interp.TypeError{Message: "method called on non-array"}
		}
		return a, nil
	}

	method(proto, "push", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		a.Elements = append(a.Elements, args...)
		return value.Number(a.Length()), nil
	})
	method(proto, "pop", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		if a.Length() == 0 {
			return value.Undefined{}, nil
		}
		last := a.Elements[len(a.Elements)-1]
		a.Elements = a.Elements[:len(a.Elements)-1]
		return last, nil
	})
	method(proto, "shift", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		if a.Length() == 0 {
			return value.Undefined{}, nil
		}
		first := a.Elements[0]
		a.Elements = a.Elements[1:]
		return first, nil
	})
	method(proto, "unshift", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		a.Elements = append(append([]value.Value{}, args...), a.Elements...)
		return value.Number(a.Length()), nil
	})
	method(proto, "at", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		idx := toInt(argAt(args, 0))
		if idx < 0 {
			idx += a.Length()
		}
		return a.At(idx), nil
	})
	method(proto, "concat", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		out := append([]value.Value{}, a.Elements...)
		for _, arg := range args {
			if other, ok := arg.(*value.Array); ok {
				out = append(out, other.Elements...)
			} else {
				out = append(out, arg)
			}
		}
		return i.NewArray(out), nil
	})
	method(proto, "join", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		sep := ","
		if s := argAt(args, 0); !isUndefined(s) {
			sep = s.String()
		}
		parts := make([]string, len(a.Elements))
		for idx, e := range a.Elements {
			switch e.(type) {
			case value.Undefined, value.Null:
				parts[idx] = ""
			default:
				parts[idx] = e.String()
			}
		}
		return value.String(strings.Join(parts, sep)), nil
	})
	method(proto, "slice", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		n := a.Length()
		start := 0
		end := n
		if len(args) > 0 {
			start = clampIndex(toInt(args[0]), n)
		}
		if len(args) > 1 && !isUndefined(args[1]) {
			end = clampIndex(toInt(args[1]), n)
		}
		if start > end {
			start = end
		}
		out := append([]value.Value{}, a.Elements[start:end]...)
		return i.NewArray(out), nil
	})
	method(proto, "splice", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		n := a.Length()
		start := 0
		if len(args) > 0 {
			start = clampIndex(toInt(args[0]), n)
		}
		deleteCount := n - start
		if len(args) > 1 {
			deleteCount = toInt(args[1])
			if deleteCount < 0 {
				deleteCount = 0
			}
			if start+deleteCount > n {
				deleteCount = n - start
			}
		}
		removed := append([]value.Value{}, a.Elements[start:start+deleteCount]...)
		var inserted []value.Value
		if len(args) > 2 {
			inserted = args[2:]
		}
		tail := append([]value.Value{}, a.Elements[start+deleteCount:]...)
		a.Elements = append(append(a.Elements[:start:start], inserted...), tail...)
		return i.NewArray(removed), nil
	})
	method(proto, "reverse", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		for l, r := 0, len(a.Elements)-1; l < r; l, r = l+1, r-1 {
			a.Elements[l], a.Elements[r] = a.Elements[r], a.Elements[l]
		}
		return a, nil
	})
	method(proto, "fill", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		n := a.Length()
		v := argAt(args, 0)
		start, end := 0, n
		if len(args) > 1 {
			start = clampIndex(toInt(args[1]), n)
		}
		if len(args) > 2 {
			end = clampIndex(toInt(args[2]), n)
		}
		for idx := start; idx < end; idx++ {
			a.Elements[idx] = v
		}
		return a, nil
	})
	method(proto, "copyWithin", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		n := a.Length()
		target := clampIndex(toInt(argAt(args, 0)), n)
		start := 0
		if len(args) > 1 {
			start = clampIndex(toInt(args[1]), n)
		}
		end := n
		if len(args) > 2 {
			end = clampIndex(toInt(args[2]), n)
		}
		chunk := append([]value.Value{}, a.Elements[start:end]...)
		for idx, v := range chunk {
			if target+idx >= n {
				break
			}
			a.Elements[target+idx] = v
		}
		return a, nil
	})
	method(proto, "includes", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		target := argAt(args, 0)
		for _, e := range a.Elements {
			if value.StrictEquals(e, target) {
				return value.True, nil
			}
			if tn, ok := target.(value.Number); ok && isNaNFloat(float64(tn)) {
				if en, ok := e.(value.Number); ok && isNaNFloat(float64(en)) {
					return value.True, nil
				}
			}
		}
		return value.False, nil
	})
	method(proto, "indexOf", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		target := argAt(args, 0)
		for idx, e := range a.Elements {
			if value.StrictEquals(e, target) {
				return value.Number(idx), nil
			}
		}
		return value.Number(-1), nil
	})
	method(proto, "lastIndexOf", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		target := argAt(args, 0)
		for idx := len(a.Elements) - 1; idx >= 0; idx-- {
			if value.StrictEquals(a.Elements[idx], target) {
				return value.Number(idx), nil
			}
		}
		return value.Number(-1), nil
	})

	callback := func(args []value.Value) (*value.Function, error) {
		fn, ok := argAt(args, 0).(*value.Function)
		if !ok {
			return nil, &interp.TypeError{Message: "callback is not a function"}
		}
		return fn, nil
	}

	method(proto, "forEach", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		for idx, e := range a.Elements {
			if _, err := i.CallFunction(fn, value.Undefined{}, []value.Value{e, value.Number(idx), a}); err != nil {
				return nil, err
			}
		}
		return value.Undefined{}, nil
	})
	method(proto, "map", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		out := make([]value.Value, len(a.Elements))
		for idx, e := range a.Elements {
			v, err := i.CallFunction(fn, value.Undefined{}, []value.Value{e, value.Number(idx), a})
			if err != nil {
				return nil, err
			}
			out[idx] = v
		}
		return i.NewArray(out), nil
	})
	method(proto, "filter", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		var out []value.Value
		for idx, e := range a.Elements {
			keep, err := i.CallFunction(fn, value.Undefined{}, []value.Value{e, value.Number(idx), a})
			if err != nil {
				return nil, err
			}
			if value.ToBoolean(keep) {
				out = append(out, e)
			}
		}
		return i.NewArray(out), nil
	})
	method(proto, "find", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		for idx, e := range a.Elements {
			hit, err := i.CallFunction(fn, value.Undefined{}, []value.Value{e, value.Number(idx), a})
			if err != nil {
				return nil, err
			}
			if value.ToBoolean(hit) {
				return e, nil
			}
		}
		return value.Undefined{}, nil
	})
	method(proto, "findIndex", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		for idx, e := range a.Elements {
			hit, err := i.CallFunction(fn, value.Undefined{}, []value.Value{e, value.Number(idx), a})
			if err != nil {
				return nil, err
			}
			if value.ToBoolean(hit) {
				return value.Number(idx), nil
			}
		}
		return value.Number(-1), nil
	})
	method(proto, "findLast", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		for idx := len(a.Elements) - 1; idx >= 0; idx-- {
			e := a.Elements[idx]
			hit, err := i.CallFunction(fn, value.Undefined{}, []value.Value{e, value.Number(idx), a})
			if err != nil {
				return nil, err
			}
			if value.ToBoolean(hit) {
				return e, nil
			}
		}
		return value.Undefined{}, nil
	})
	method(proto, "findLastIndex", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		for idx := len(a.Elements) - 1; idx >= 0; idx-- {
			hit, err := i.CallFunction(fn, value.Undefined{}, []value.Value{a.Elements[idx], value.Number(idx), a})
			if err != nil {
				return nil, err
			}
			if value.ToBoolean(hit) {
				return value.Number(idx), nil
			}
		}
		return value.Number(-1), nil
	})
	method(proto, "some", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		for idx, e := range a.Elements {
			hit, err := i.CallFunction(fn, value.Undefined{}, []value.Value{e, value.Number(idx), a})
			if err != nil {
				return nil, err
			}
			if value.ToBoolean(hit) {
				return value.True, nil
			}
		}
		return value.False, nil
	})
	method(proto, "every", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		for idx, e := range a.Elements {
			hit, err := i.CallFunction(fn, value.Undefined{}, []value.Value{e, value.Number(idx), a})
			if err != nil {
				return nil, err
			}
			if !value.ToBoolean(hit) {
				return value.False, nil
			}
		}
		return value.True, nil
	})
	method(proto, "reduce", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		return reduceArray(i, fn, a.Elements, args, false)
	})
	method(proto, "reduceRight", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		reversed := make([]value.Value, len(a.Elements))
		for idx, e := range a.Elements {
			reversed[len(a.Elements)-1-idx] = e
		}
		return reduceArray(i, fn, reversed, args, true)
	})
	method(proto, "flat", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		depth := 1
		if len(args) > 0 {
			depth = toInt(args[0])
		}
		return i.NewArray(flatten(a.Elements, depth)), nil
	})
	method(proto, "flatMap", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		var mapped []value.Value
		for idx, e := range a.Elements {
			v, err := i.CallFunction(fn, value.Undefined{}, []value.Value{e, value.Number(idx), a})
			if err != nil {
				return nil, err
			}
			mapped = append(mapped, v)
		}
		return i.NewArray(flatten(mapped, 1)), nil
	})
	method(proto, "sort", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		cmp, _ := argAt(args, 0).(*value.Function)
		var sortErr error
		sort.SliceStable(a.Elements, func(x, y int) bool {
			if sortErr != nil {
				return false
			}
			if cmp != nil {
				r, err := i.CallFunction(cmp, value.Undefined{}, []value.Value{a.Elements[x], a.Elements[y]})
				if err != nil {
					sortErr = err
					return false
				}
				return float64(value.ToNumber(r)) < 0
			}
			return a.Elements[x].String() < a.Elements[y].String()
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return a, nil
	})
	method(proto, "with", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		idx := toInt(argAt(args, 0))
		if idx < 0 {
			idx += a.Length()
		}
		if idx < 0 || idx >= a.Length() {
			return nil, &interp.TypeError{Message: "invalid index"}
		}
		out := append([]value.Value{}, a.Elements...)
		out[idx] = argAt(args, 1)
		return i.NewArray(out), nil
	})
	method(proto, "group", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		fn, err := callback(args)
		if err != nil {
			return nil, err
		}
		out := i.NewObject()
		for idx, e := range a.Elements {
			keyVal, err := i.CallFunction(fn, value.Undefined{}, []value.Value{e, value.Number(idx), a})
			if err != nil {
				return nil, err
			}
			key := keyVal.String()
			if existing, ok := out.Get(key); ok {
				arr := existing.(*value.Array)
				arr.Elements = append(arr.Elements, e)
			} else {
				out.Set(key, i.NewArray([]value.Value{e}))
			}
		}
		return out, nil
	})
	method(proto, "keys", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		out := make([]value.Value, a.Length())
		for idx := range out {
			out[idx] = value.Number(idx)
		}
		return i.NewArray(out), nil
	})
	method(proto, "values", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		return i.NewArray(append([]value.Value{}, a.Elements...)), nil
	})
	method(proto, "entries", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		out := make([]value.Value, a.Length())
		for idx, e := range a.Elements {
			out[idx] = i.NewArray([]value.Value{value.Number(idx), e})
		}
		return i.NewArray(out), nil
	})
	method(proto, "toString", func(this value.Value, args []value.Value) (value.Value, error) {
		a, err := needArray(this)
		if err != nil {
			return nil, err
		}
		return value.String(a.String()), nil
	})
}

// reduceArray implements the shared walk reduce/reduceRight use: seed
// from the call's second argument if given, else the sequence's first
// element (erroring on an empty array with neither).
func reduceArray(i *interp.Interpreter, fn *value.Function, elems []value.Value, args []value.Value, fromRight bool) (value.Value, error) {
	idxOf := func(pos int) int {
		if fromRight {
			return len(elems) - 1 - pos
		}
		return pos
	}
	start := 0
	var acc value.Value
	if len(args) > 1 {
		acc = args[1]
	} else {
		if len(elems) == 0 {
			return nil, &interp.TypeError{Message: "Reduce of empty array with no initial value"}
		}
		acc = elems[0]
		start = 1
	}
	for pos := start; pos < len(elems); pos++ {
		v, err := i.CallFunction(fn, value.Undefined{}, []value.Value{acc, elems[pos], value.Number(idxOf(pos))})
		if err != nil {
			return nil, err
		}
		acc = v
	}
	return acc, nil
}

// flatten implements Array.prototype.flat's recursive depth-limited
// spread of nested arrays into a new flat slice.
func flatten(elems []value.Value, depth int) []value.Value {
	var out []value.Value
	for _, e := range elems {
		if arr, ok := e.(*value.Array); ok && depth > 0 {
			out = append(out, flatten(arr.Elements, depth-1)...)
		} else {
			out = append(out, e)
		}
	}
	return out
}

func isUndefined(v value.Value) bool {
	_, ok := v.(value.Undefined)
	return ok
}

// arrayConstructor implements "Array(...)"/"new Array(...)": a single
// numeric argument allocates a sparse array of that length; any other
// argument list becomes the array's elements, matching the ES
// constructor's well-known special case.
func arrayConstructor(i *interp.Interpreter) value.NativeFunc {
	return func(this value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 1 {
			if n, ok := args[0].(value.Number); ok {
				length := int(n)
				if float64(length) != float64(n) || length < 0 {
					return nil, &interp.TypeError{Message: "Invalid array length"}
				}
				elems := make([]value.Value, length)
				for idx := range elems {
					elems[idx] = value.Undefined{}
				}
				return i.NewArray(elems), nil
			}
		}
		return i.NewArray(append([]value.Value{}, args...)), nil
	}
}

// installArrayStatics installs Array.isArray/from/of.
func installArrayStatics(i *interp.Interpreter, ctor *value.Function) {
	c := ctor.Object
	staticFunc(i, c, "isArray", func(this value.Value, args []value.Value) (value.Value, error) {
		_, ok := argAt(args, 0).(*value.Array)
		return value.BoolOf(ok), nil
	})
	staticFunc(i, c, "of", func(this value.Value, args []value.Value) (value.Value, error) {
		return i.NewArray(append([]value.Value{}, args...)), nil
	})
	staticFunc(i, c, "from", func(this value.Value, args []value.Value) (value.Value, error) {
		elems, err := interp.IterableValues(argAt(args, 0))
		if err != nil {
			if a, ok := asObject(argAt(args, 0)); ok {
				lengthVal, hasLen := a.Get("length")
				if !hasLen {
					return nil, err
				}
				n := toInt(lengthVal)
				elems = make([]value.Value, n)
				for idx := 0; idx < n; idx++ {
					v, _ := a.Get(itoaArr(idx))
					if v == nil {
						v = value.Undefined{}
					}
					elems[idx] = v
				}
			} else {
				return nil, err
			}
		}
		if fn, ok := argAt(args, 1).(*value.Function); ok {
			out := make([]value.Value, len(elems))
			for idx, e := range elems {
				v, err := i.CallFunction(fn, value.Undefined{}, []value.Value{e, value.Number(idx)})
				if err != nil {
					return nil, err
				}
				out[idx] = v
			}
			elems = out
		}
		return i.NewArray(elems), nil
	})
}

func itoaArr(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	pos := len(digits)
	for n > 0 {
		pos--
		digits[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[pos:])
}
