package builtin

import (
	"math"
	"strconv"

	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// installNumber installs Number.prototype's formatting methods,
// grounded on the teacher's use of strconv for numeric-to-string
// conversion (std/numbers.go) generalized to the fixed/precision/
// locale variants spec.md calls for.
func installNumber(i *interp.Interpreter) {
	proto := i.Protos.Number

	num := func(this value.Value) float64 { return float64(value.ToNumber(this)) }

	method(proto, "toString", func(this value.Value, args []value.Value) (value.Value, error) {
		radix := 10
		if len(args) > 0 && !isUndefined(args[0]) {
			radix = toInt(args[0])
		}
		n := num(this)
		if radix == 10 {
			return value.String(value.Number(n).String()), nil
		}
		if n != math.Trunc(n) {
			return value.String(strconv.FormatFloat(n, 'g', -1, 64)), nil
		}
		return value.String(strconv.FormatInt(int64(n), radix)), nil
	})
	method(proto, "valueOf", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.Number(num(this)), nil
	})
	method(proto, "toFixed", func(this value.Value, args []value.Value) (value.Value, error) {
		digits := 0
		if len(args) > 0 {
			digits = toInt(args[0])
		}
		n := num(this)
		if math.IsNaN(n) {
			return value.String("NaN"), nil
		}
		return value.String(strconv.FormatFloat(n, 'f', digits, 64)), nil
	})
	method(proto, "toPrecision", func(this value.Value, args []value.Value) (value.Value, error) {
		n := num(this)
		if len(args) == 0 || isUndefined(args[0]) {
			return value.String(value.Number(n).String()), nil
		}
		precision := toInt(args[0])
		return value.String(strconv.FormatFloat(n, 'g', precision, 64)), nil
	})
	method(proto, "toLocaleString", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(groupThousands(num(this))), nil
	})
}

// groupThousands renders a float with comma thousands separators, the
// common case toLocaleString's default locale produces.
func groupThousands(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return value.Number(n).String()
	}
	neg := n < 0
	if neg {
		n = -n
	}
	whole := int64(n)
	frac := n - math.Trunc(n)
	s := strconv.FormatInt(whole, 10)
	var grouped string
	for idx, c := range reverseString(s) {
		if idx > 0 && idx%3 == 0 {
			grouped = string(c) + "," + grouped
		} else {
			grouped = string(c) + grouped
		}
	}
	if frac > 0 {
		grouped += strconv.FormatFloat(frac, 'f', 3, 64)[1:]
	}
	if neg {
		grouped = "-" + grouped
	}
	return grouped
}

func reverseString(s string) string {
	r := []rune(s)
	for l, rr := 0, len(r)-1; l < rr; l, rr = l+1, rr-1 {
		r[l], r[rr] = r[rr], r[l]
	}
	return string(r)
}

// numberConstructor implements "Number(x)"/"new Number(x)": coerces to
// a primitive number (no boxed wrapper identity, same simplification
// String's constructor makes).
func numberConstructor(i *interp.Interpreter) value.NativeFunc {
	return func(this value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.Number(0), nil
		}
		return value.ToNumber(args[0]), nil
	}
}

// installNumberStatics installs Number's static predicates and
// constants per spec.md §4.6.
func installNumberStatics(i *interp.Interpreter, ctor *value.Function) {
	c := ctor.Object
	staticFunc(i, c, "isFinite", func(this value.Value, args []value.Value) (value.Value, error) {
		n, ok := argAt(args, 0).(value.Number)
		if !ok {
			return value.False, nil
		}
		return value.BoolOf(!math.IsNaN(float64(n)) && !math.IsInf(float64(n), 0)), nil
	})
	staticFunc(i, c, "isInteger", func(this value.Value, args []value.Value) (value.Value, error) {
		n, ok := argAt(args, 0).(value.Number)
		if !ok {
			return value.False, nil
		}
		f := float64(n)
		return value.BoolOf(!math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f)), nil
	})
	staticFunc(i, c, "isNaN", func(this value.Value, args []value.Value) (value.Value, error) {
		n, ok := argAt(args, 0).(value.Number)
		if !ok {
			return value.False, nil
		}
		return value.BoolOf(math.IsNaN(float64(n))), nil
	})
	staticFunc(i, c, "isSafeInteger", func(this value.Value, args []value.Value) (value.Value, error) {
		n, ok := argAt(args, 0).(value.Number)
		if !ok {
			return value.False, nil
		}
		f := float64(n)
		return value.BoolOf(!math.IsNaN(f) && f == math.Trunc(f) && math.Abs(f) <= 9007199254740991), nil
	})
	static(c, "EPSILON", value.Number(2.220446049250313e-16))
	static(c, "MAX_VALUE", value.Number(math.MaxFloat64))
	static(c, "MIN_VALUE", value.Number(5e-324))
	static(c, "MAX_SAFE_INTEGER", value.Number(9007199254740991))
	static(c, "MIN_SAFE_INTEGER", value.Number(-9007199254740991))
	static(c, "POSITIVE_INFINITY", value.Number(math.Inf(1)))
	static(c, "NEGATIVE_INFINITY", value.Number(math.Inf(-1)))
	static(c, "NaN", value.Number(math.NaN()))
}
