package value

import "math"

// Add implements "+", which uniquely among the binary operators
// branches on whether either operand should be treated as a string
// (ToPrimitive then string-concatenation) instead of always coercing
// to numbers.
func Add(a, b Value) Value {
	if shouldConcat(a) || shouldConcat(b) {
		return String(a.String() + b.String())
	}
	return Number(float64(ToNumber(a)) + float64(ToNumber(b)))
}

func shouldConcat(v Value) bool {
	switch v.(type) {
	case String:
		return true
	case *Array, *Object, *Function, *Date, *Regexp, *Uint8Array, *HostOpaque:
		return true
	default:
		return false
	}
}

func Sub(a, b Value) Value { return Number(float64(ToNumber(a)) - float64(ToNumber(b))) }
func Mul(a, b Value) Value { return Number(float64(ToNumber(a)) * float64(ToNumber(b))) }

// Div follows IEEE-754 float division, so x/0 and x/-0 produce signed
// infinities rather than a runtime division-by-zero error.
func Div(a, b Value) Value { return Number(float64(ToNumber(a)) / float64(ToNumber(b))) }

func Mod(a, b Value) Value { return Number(math.Mod(float64(ToNumber(a)), float64(ToNumber(b)))) }
func Pow(a, b Value) Value { return Number(math.Pow(float64(ToNumber(a)), float64(ToNumber(b)))) }

// ToInt32 implements the abstract ToInt32 conversion bitwise operators
// use: NaN/±Infinity become 0, everything else truncates through a
// 32-bit wraparound.
func ToInt32(v Value) int32 {
	f := float64(ToNumber(v))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int32(uint32(int64(math.Trunc(f))))
}

// ToUint32 is ToInt32 reinterpreted as unsigned, used by ">>>".
func ToUint32(v Value) uint32 {
	f := float64(ToNumber(v))
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return uint32(int64(math.Trunc(f)))
}

func BitAnd(a, b Value) Value { return Number(float64(ToInt32(a) & ToInt32(b))) }
func BitOr(a, b Value) Value  { return Number(float64(ToInt32(a) | ToInt32(b))) }
func BitXor(a, b Value) Value { return Number(float64(ToInt32(a) ^ ToInt32(b))) }
func BitNot(a Value) Value    { return Number(float64(^ToInt32(a))) }

func Shl(a, b Value) Value { return Number(float64(ToInt32(a) << (ToUint32(b) & 31))) }
func Shr(a, b Value) Value { return Number(float64(ToInt32(a) >> (ToUint32(b) & 31))) }
func Ushr(a, b Value) Value { return Number(float64(ToUint32(a) >> (ToUint32(b) & 31))) }

// Negate implements unary "-".
func Negate(v Value) Value { return Number(-float64(ToNumber(v))) }
