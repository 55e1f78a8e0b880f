package value

import "math"

// FromHost converts an arbitrary Go value into the engine's value
// representation, the inverse of ToHost. objProto/arrProto supply the
// prototype links new Objects/Arrays need; nested maps/slices reuse
// the same protos. A value that is already a Value passes through
// unchanged, letting an embedder hand back a Value it previously got
// from ToHost without a round-trip through a Go-native shape.
func FromHost(objProto, arrProto *Object, v any) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Value:
		return t
	case bool:
		return BoolOf(t)
	case string:
		return String(t)
	case int:
		return Number(t)
	case int32:
		return Number(t)
	case int64:
		return Number(t)
	case uint:
		return Number(t)
	case float32:
		return Number(t)
	case float64:
		return Number(t)
	case []any:
		elems := make([]Value, len(t))
		for idx, e := range t {
			elems[idx] = FromHost(objProto, arrProto, e)
		}
		return NewArray(arrProto, elems)
	case map[string]any:
		obj := NewObject(objProto)
		for k, val := range t {
			obj.Set(k, FromHost(objProto, arrProto, val))
		}
		return obj
	default:
		return NewHostOpaque(objProto, v)
	}
}

// ToHost converts a Value back to idiomatic Go types for the
// embedder: Undefined/Null become nil, Number narrows to int64 when
// mathematically integral (spec.md §3's Value note) and otherwise
// stays float64, String/Boolean become their Go equivalents,
// Array/plain Object become []any/map[string]any recursively, and a
// HostOpaque unwraps back to the Go value it was wrapping. Anything
// else (Function, Regexp, Date, Uint8Array) is returned as-is so the
// embedder can type-switch on the underlying engine value if it needs
// callable or engine-specific behavior ToHost can't flatten.
func ToHost(v Value) any {
	switch t := v.(type) {
	case Undefined:
		return nil
	case Null:
		return nil
	case Boolean:
		return bool(t)
	case Number:
		f := float64(t)
		if !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f) {
			return int64(f)
		}
		return f
	case String:
		return string(t)
	case *Array:
		out := make([]any, t.Length())
		for idx := 0; idx < t.Length(); idx++ {
			out[idx] = ToHost(t.At(idx))
		}
		return out
	case *HostOpaque:
		return t.Host
	case *Object:
		keys := t.OwnKeys()
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			if pv, ok := t.Get(k); ok {
				out[k] = ToHost(pv)
			}
		}
		return out
	default:
		return v
	}
}
