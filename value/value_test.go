package value

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumber_Table(t *testing.T) {
	cases := []struct {
		name string
		in   Value
		want float64
	}{
		{"true", Boolean(true), 1},
		{"false", Boolean(false), 0},
		{"null", Null{}, 0},
		{"empty string", String(""), 0},
		{"numeric string", String("  42  "), 42},
		{"non-numeric string", String("abc"), math.NaN()},
		{"empty array", NewArray(nil, nil), 0},
		{"single-element array", NewArray(nil, []Value{String("7")}), 7},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := float64(ToNumber(c.in))
			if math.IsNaN(c.want) {
				assert.True(t, math.IsNaN(got))
				return
			}
			assert.Equal(t, c.want, got)
		})
	}
	assert.True(t, math.IsNaN(float64(ToNumber(Undefined{}))))
}

func TestToBoolean_Table(t *testing.T) {
	assert.False(t, ToBoolean(Undefined{}))
	assert.False(t, ToBoolean(Null{}))
	assert.False(t, ToBoolean(Number(0)))
	assert.False(t, ToBoolean(Number(math.NaN())))
	assert.False(t, ToBoolean(String("")))
	assert.True(t, ToBoolean(String("0")))
	assert.True(t, ToBoolean(NewArray(nil, nil)))
}

func TestStrictEquals_TypeSensitive(t *testing.T) {
	assert.True(t, StrictEquals(Number(1), Number(1)))
	assert.False(t, StrictEquals(Number(1), String("1")))
	assert.False(t, StrictEquals(Undefined{}, Null{}))

	arr := NewArray(nil, nil)
	assert.True(t, StrictEquals(arr, arr))
	assert.False(t, StrictEquals(arr, NewArray(nil, nil)))
}

func TestLooseEquals_Coercions(t *testing.T) {
	assert.True(t, LooseEquals(Number(1), String("1")))
	assert.True(t, LooseEquals(Null{}, Undefined{}))
	assert.False(t, LooseEquals(Null{}, Number(0)))
	assert.True(t, LooseEquals(Boolean(true), Number(1)))
}

func TestCompare_NaNAlwaysFalse(t *testing.T) {
	assert.False(t, Compare(String("abc"), Number(1), "<"))
	assert.False(t, Compare(Number(1), String("abc"), "<"))
	assert.False(t, Compare(Number(1), String("abc"), ">="))
}

func TestAdd_StringConcatVsNumericAdd(t *testing.T) {
	assert.Equal(t, Number(3), Add(Number(1), Number(2)))
	assert.Equal(t, String("12"), Add(Number(1), String("2")))
	assert.Equal(t, String("12"), Add(NewArray(nil, []Value{Number(1)}), NewArray(nil, []Value{Number(2)})))
}

func TestDiv_SignedInfinities(t *testing.T) {
	pos := Div(Number(1), Number(0)).(Number)
	neg := Div(Number(1), Number(math.Copysign(0, -1))).(Number)
	assert.True(t, math.IsInf(float64(pos), 1))
	assert.True(t, math.IsInf(float64(neg), -1))
}

func TestBitwiseOps_32BitTruncation(t *testing.T) {
	got := BitOr(Number(0xFFFFFFFF), Number(0)).(Number)
	assert.Equal(t, Number(-1), got)

	shr := Ushr(Number(-1), Number(0)).(Number)
	assert.Equal(t, Number(4294967295), shr)
}

func TestObject_PrototypeChainLookup(t *testing.T) {
	proto := NewObject(nil)
	require.NoError(t, proto.Set("greeting", String("hi")))

	child := NewObject(proto)
	v, ok := child.Get("greeting")
	require.True(t, ok)
	assert.Equal(t, String("hi"), v)

	_, ownOk := child.GetOwn("greeting")
	assert.False(t, ownOk)
}

func TestObject_PrototypeAcyclicity(t *testing.T) {
	a := NewObject(nil)
	b := NewObject(a)
	err := a.SetPrototype(b)
	var cyclic *CyclicPrototypeError
	assert.ErrorAs(t, err, &cyclic)
}

func TestObject_BuiltInPrototypeMethodIsNotWritable(t *testing.T) {
	arrayProto := NewObject(nil)
	arrayProto.DefineOwn("map", Property{Value: String("native"), Writable: false, Enumerable: false, Configurable: false})

	instance := NewObject(arrayProto)
	err := instance.Set("map", String("overwritten"))
	var notWritable *NotWritableError
	assert.ErrorAs(t, err, &notWritable)
}

func TestObject_DeleteRespectsConfigurable(t *testing.T) {
	o := NewObject(nil)
	o.DefineOwn("locked", Property{Value: Number(1), Writable: true, Enumerable: true, Configurable: false})
	assert.False(t, o.Delete("locked"))

	require.NoError(t, o.Set("free", Number(2)))
	assert.True(t, o.Delete("free"))
}

func TestArray_RoundTripsThroughGoCmp(t *testing.T) {
	a := NewArray(nil, []Value{Number(1), String("x"), Boolean(true)})
	b := NewArray(nil, []Value{Number(1), String("x"), Boolean(true)})

	diff := cmp.Diff(a.Elements, b.Elements, cmp.Comparer(func(x, y Value) bool {
		return StrictEquals(x, y)
	}))
	assert.Empty(t, diff)
}

func TestInstanceOf_WalksPrototypeChain(t *testing.T) {
	ctorProto := NewObject(nil)
	ctor := NewNativeFunction(nil, "Widget", func(this Value, args []Value) (Value, error) { return Undefined{}, nil })
	require.NoError(t, ctor.Set("prototype", ctorProto))

	instance := NewObject(ctorProto)
	assert.True(t, InstanceOf(instance, ctor))

	other := NewObject(nil)
	assert.False(t, InstanceOf(other, ctor))
}

func TestTypeOf_Table(t *testing.T) {
	assert.Equal(t, "undefined", TypeOf(Undefined{}))
	assert.Equal(t, "object", TypeOf(Null{}))
	assert.Equal(t, "number", TypeOf(Number(1)))
	assert.Equal(t, "function", TypeOf(NewNativeFunction(nil, "f", nil)))
}
