package builtin

import (
	"math"

	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// asObject recovers the plain *value.Object backing any reference
// value (arrays, functions, dates, ... all embed one), the way
// built-ins that walk the prototype chain or own-property map need
// regardless of the concrete wrapper kind.
func asObject(v value.Value) (*value.Object, bool) {
	switch t := v.(type) {
	case *value.Object:
		return t, true
	case *value.Array:
		return t.Object, true
	case *value.Function:
		return t.Object, true
	case *value.Date:
		return t.Object, true
	case *value.Regexp:
		return t.Object, true
	case *value.Uint8Array:
		return t.Object, true
	case *value.HostOpaque:
		return t.Object, true
	default:
		return nil, false
	}
}

// ownKeysOf lists a value's enumerable own keys the way Object.keys/
// values/entries/assign all need: array indices for arrays, the own
// property map's insertion order for everything else.
func ownKeysOf(v value.Value) []string {
	return interp.EnumerableKeys(v)
}

func isNaNFloat(f float64) bool { return math.IsNaN(f) }

// toInt clamps a Value's ToNumber conversion to a Go int, treating
// NaN as 0, following the abstract ToIntegerOrInfinity rule's common
// case (the infinities are handled by each call site that needs them,
// since clamping them to an int here would lose the sign information
// slice/splice-style methods rely on).
func toInt(v value.Value) int {
	f := float64(value.ToNumber(v))
	if math.IsNaN(f) {
		return 0
	}
	return int(f)
}

// clampIndex implements Array.prototype.slice/splice's index-clamping
// rule: negative counts back from length, and the result is clamped
// into [0, length].
func clampIndex(raw, length int) int {
	if raw < 0 {
		raw += length
	}
	if raw < 0 {
		return 0
	}
	if raw > length {
		return length
	}
	return raw
}
