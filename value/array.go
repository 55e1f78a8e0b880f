package value

import "strings"

// Array is a dense, growable sequence of Values. Index properties are
// stored in Elements rather than in the embedded Object's own
// property map — "length" is derived, not stored, and numeric
// property access goes through Get/Set below instead of the generic
// Object.Get/Set path the prototype methods still use for non-index
// properties.
type Array struct {
	*Object
	Elements []Value
}

// NewArray creates an array with the given elements, linked to proto
// (the shared Array.prototype object).
func NewArray(proto *Object, elements []Value) *Array {
	return &Array{Object: NewObjectWithClass(proto, "Array"), Elements: elements}
}

func (a *Array) Length() int { return len(a.Elements) }

// At returns the element at index, or Undefined if out of range.
func (a *Array) At(index int) Value {
	if index < 0 || index >= len(a.Elements) {
		return Undefined{}
	}
	return a.Elements[index]
}

// SetAt writes index, growing the array with Undefined holes if
// index is past the current end.
func (a *Array) SetAt(index int, v Value) {
	if index < 0 {
		return
	}
	if index >= len(a.Elements) {
		grown := make([]Value, index+1)
		copy(grown, a.Elements)
		for i := len(a.Elements); i < index; i++ {
			grown[i] = Undefined{}
		}
		a.Elements = grown
	}
	a.Elements[index] = v
}

func (a *Array) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		if _, isUndef := e.(Undefined); isUndef {
			parts[i] = ""
			continue
		}
		parts[i] = e.String()
	}
	return strings.Join(parts, ",")
}

func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.Inspect()
	}
	return "[ " + strings.Join(parts, ", ") + " ]"
}
