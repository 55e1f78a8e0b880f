package value

import "fmt"

// Uint8Array is a fixed-length buffer of unsigned bytes. Unlike
// Array, indexed writes never grow the backing storage — an
// out-of-range index is simply a no-op, matching typed-array
// semantics.
type Uint8Array struct {
	*Object
	Bytes []byte
}

func NewUint8Array(proto *Object, length int) *Uint8Array {
	return &Uint8Array{Object: NewObjectWithClass(proto, "Uint8Array"), Bytes: make([]byte, length)}
}

func NewUint8ArrayFrom(proto *Object, data []byte) *Uint8Array {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Uint8Array{Object: NewObjectWithClass(proto, "Uint8Array"), Bytes: buf}
}

func (u *Uint8Array) Length() int { return len(u.Bytes) }

func (u *Uint8Array) At(index int) (Value, bool) {
	if index < 0 || index >= len(u.Bytes) {
		return Undefined{}, false
	}
	return Number(u.Bytes[index]), true
}

// SetAt clamps the written value into an unsigned byte (modulo 256,
// truncating toward zero first) and is a no-op outside the buffer's
// fixed length.
func (u *Uint8Array) SetAt(index int, v float64) {
	if index < 0 || index >= len(u.Bytes) {
		return
	}
	n := int64(v)
	u.Bytes[index] = byte(((n % 256) + 256) % 256)
}

func (u *Uint8Array) String() string {
	return fmt.Sprintf("Uint8Array(%d)", len(u.Bytes))
}

func (u *Uint8Array) Inspect() string {
	out := u.String() + " [ "
	for i, b := range u.Bytes {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", b)
	}
	return out + " ]"
}
