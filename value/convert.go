package value

import (
	"math"
	"strconv"
	"strings"
)

// ToNumber implements the abstract ToNumber conversion used by
// arithmetic, comparisons, and explicit Number() calls.
func ToNumber(v Value) Number {
	switch t := v.(type) {
	case Number:
		return t
	case Boolean:
		if t {
			return 1
		}
		return 0
	case Undefined:
		return Number(math.NaN())
	case Null:
		return 0
	case String:
		s := strings.TrimSpace(string(t))
		if s == "" {
			return 0
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Number(f)
		}
		return Number(math.NaN())
	case *Array:
		if len(t.Elements) == 0 {
			return 0
		}
		if len(t.Elements) == 1 {
			return ToNumber(t.Elements[0])
		}
		return Number(math.NaN())
	default:
		return Number(math.NaN())
	}
}

// ToBoolean implements the abstract ToBoolean conversion used by
// if/while/ternary/logical-operator short-circuiting.
func ToBoolean(v Value) bool {
	switch t := v.(type) {
	case Undefined, Null:
		return false
	case Boolean:
		return bool(t)
	case Number:
		f := float64(t)
		return f != 0 && !math.IsNaN(f)
	case String:
		return len(t) > 0
	default:
		return true // every object, array, function is truthy
	}
}

// ToStringValue implements the abstract ToString conversion, the same
// primitive-conversion rules String() already gives every Value
// except that arrays/objects/functions route through their own
// String() which this simply forwards to for symmetry with
// ToNumber/ToBoolean's naming.
func ToStringValue(v Value) string { return v.String() }

// TypeOf implements the "typeof" operator's result string.
func TypeOf(v Value) string {
	switch v.(type) {
	case Undefined:
		return "undefined"
	case Null:
		return "object" // famous JS wart, preserved intentionally
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case *Function:
		return "function"
	default:
		return "object"
	}
}

func isNullish(v Value) bool {
	switch v.(type) {
	case Undefined, Null:
		return true
	}
	return false
}

// StrictEquals implements "===": same type, same value, no coercion;
// reference identity for objects/arrays/functions.
func StrictEquals(a, b Value) bool {
	switch av := a.(type) {
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case Null:
		_, ok := b.(Null)
		return ok
	case Boolean:
		bv, ok := b.(Boolean)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && float64(av) == float64(bv)
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	default:
		return sameReference(a, b)
	}
}

// sameReference reports pointer identity for every reference type.
// Routing all engine-level "is this the same object" checks through
// here (rather than through a host-level equals method on the Go
// struct) keeps object identity a property of the value model itself.
func sameReference(a, b Value) bool {
	ao, aok := asObjectPointer(a)
	bo, bok := asObjectPointer(b)
	if aok && bok {
		return ao == bo
	}
	return false
}

func asObjectPointer(v Value) (*Object, bool) {
	switch t := v.(type) {
	case *Object:
		return t, true
	case *Array:
		return t.Object, true
	case *Function:
		return t.Object, true
	case *Regexp:
		return t.Object, true
	case *Date:
		return t.Object, true
	case *Uint8Array:
		return t.Object, true
	case *HostOpaque:
		return t.Object, true
	}
	return nil, false
}

// LooseEquals implements "==", including the coercions that make it
// differ from StrictEquals: null/undefined are mutually (and only
// mutually) equal, number/string comparisons coerce the string side,
// booleans coerce to number, and an object compared to a primitive
// coerces via ToPrimitive (here: ToNumber of its ToString, since this
// subset has no valueOf hook on plain objects beyond Date/Number
// wrapper objects which don't exist as boxed primitives here).
func LooseEquals(a, b Value) bool {
	if isNullish(a) || isNullish(b) {
		return isNullish(a) && isNullish(b)
	}
	ta, tb := a.Type(), b.Type()
	if ta == tb {
		return StrictEquals(a, b)
	}
	switch {
	case ta == TypeNumber && tb == TypeString:
		return float64(ToNumber(a)) == float64(ToNumber(b))
	case ta == TypeString && tb == TypeNumber:
		return float64(ToNumber(a)) == float64(ToNumber(b))
	case ta == TypeBoolean:
		return LooseEquals(ToNumber(a), b)
	case tb == TypeBoolean:
		return LooseEquals(a, ToNumber(b))
	case (ta == TypeNumber || ta == TypeString) && tb == TypeObject:
		return LooseEquals(a, Number(ToNumber(String(b.String()))))
	case ta == TypeObject && (tb == TypeNumber || tb == TypeString):
		return LooseEquals(Number(ToNumber(String(a.String()))), b)
	default:
		return false
	}
}

// Compare implements the abstract relational-comparison operator
// underlying </<=/>/>=. It returns the comparison's result, and false
// whenever either side converts to NaN, which is how ECMAScript makes
// every NaN comparison false.
func Compare(a, b Value, op string) bool {
	as, aIsStr := a.(String)
	bs, bIsStr := b.(String)
	if aIsStr && bIsStr {
		return compareOp(strings.Compare(string(as), string(bs)), op)
	}
	an, bn := float64(ToNumber(a)), float64(ToNumber(b))
	if math.IsNaN(an) || math.IsNaN(bn) {
		return false
	}
	switch {
	case an < bn:
		return compareOp(-1, op)
	case an > bn:
		return compareOp(1, op)
	default:
		return compareOp(0, op)
	}
}

func compareOp(cmp int, op string) bool {
	switch op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	default:
		return false
	}
}

// InstanceOf walks ctor's "prototype" property against v's own
// prototype chain.
func InstanceOf(v Value, ctor *Function) bool {
	protoVal, ok := ctor.Get("prototype")
	if !ok {
		return false
	}
	target, ok := protoVal.(*Object)
	if !ok {
		return false
	}
	obj, ok := asObjectPointer(v)
	if !ok {
		return false
	}
	for cur := obj.Prototype(); cur != nil; cur = cur.Prototype() {
		if cur == target {
			return true
		}
	}
	return false
}
