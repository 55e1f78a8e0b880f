package value

import "fmt"

// Property is a single own-property slot. Built-in prototype methods
// are installed as non-writable/non-enumerable/non-configurable so
// that ordinary property writes to Array.prototype/Object.prototype/
// etc. fail the way spec'd, rather than silently shadowing the method
// for every instance.
type Property struct {
	Value        Value
	Writable     bool
	Enumerable   bool
	Configurable bool
}

// Object is the shared backbone for every reference type in the
// language: plain objects, arrays, functions, dates, regexes, and
// typed arrays all embed *Object and add their own storage on top,
// mirroring the teacher's GoMixObjectInstance{Struct, Fields} shape
// generalized from a single struct-instance kind to a full prototype
// chain with a class tag per concrete kind.
type Object struct {
	class      string
	proto      *Object
	props      map[string]*Property
	keys       []string // insertion order of own enumerable-or-not keys
	extensible bool
}

// NewObject creates an empty, extensible object with the given
// prototype (nil for a prototype-less object such as Object.prototype
// itself).
func NewObject(proto *Object) *Object {
	return &Object{class: "Object", proto: proto, props: make(map[string]*Property), extensible: true}
}

// NewObjectWithClass is NewObject but tags the object with a class
// name other than "Object" — used by Array/Function/Date/etc.
// constructors so Object.prototype.toString()-style introspection
// ("[object Array]") and internal dispatch can tell kinds apart
// without type-asserting every caller.
func NewObjectWithClass(proto *Object, class string) *Object {
	o := NewObject(proto)
	o.class = class
	return o
}

func (o *Object) Type() Type      { return TypeObject }
func (o *Object) Class() string    { return o.class }
func (o *Object) Prototype() *Object { return o.proto }
func (o *Object) Extensible() bool { return o.extensible }
func (o *Object) PreventExtensions() { o.extensible = false }

// SetPrototype rewires the prototype link, rejecting an assignment
// that would make the chain cyclic (spec's prototype-acyclicity
// invariant).
func (o *Object) SetPrototype(p *Object) error {
	for cur := p; cur != nil; cur = cur.proto {
		if cur == o {
			return &CyclicPrototypeError{}
		}
	}
	o.proto = p
	return nil
}

// GetOwn looks up name only among o's own properties, ignoring the
// prototype chain.
func (o *Object) GetOwn(name string) (*Property, bool) {
	p, ok := o.props[name]
	return p, ok
}

// Get resolves name by walking the prototype chain, stopping at the
// first owner. Callers needing the "this"-bound getter semantics for
// accessor-like built-ins (none in this subset use real accessors)
// can use GetOwn directly.
func (o *Object) Get(name string) (Value, bool) {
	for cur := o; cur != nil; cur = cur.proto {
		if p, ok := cur.props[name]; ok {
			return p.Value, true
		}
	}
	return nil, false
}

// Has reports whether name resolves anywhere in the chain.
func (o *Object) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// HasOwn reports whether name is an own property.
func (o *Object) HasOwn(name string) bool {
	_, ok := o.props[name]
	return ok
}

// Set assigns an own property. Writing to a name that exists further
// up the chain as non-writable (e.g. a built-in prototype method)
// fails rather than silently creating a same-named own shadow — this
// enforces the "built-in prototypes are immutable" rule from the
// value model.
func (o *Object) Set(name string, v Value) error {
	if existing, ok := o.props[name]; ok {
		if !existing.Writable {
			return &NotWritableError{Name: name}
		}
		existing.Value = v
		return nil
	}
	for cur := o.proto; cur != nil; cur = cur.proto {
		if p, ok := cur.props[name]; ok && !p.Writable {
			return &NotWritableError{Name: name}
		}
	}
	if !o.extensible {
		return &NotExtensibleError{Name: name}
	}
	o.props[name] = &Property{Value: v, Writable: true, Enumerable: true, Configurable: true}
	o.keys = append(o.keys, name)
	return nil
}

// DefineOwn installs name with explicit attribute flags, used by
// prototype setup code and Object.defineProperty-style built-ins.
func (o *Object) DefineOwn(name string, prop Property) {
	if _, exists := o.props[name]; !exists {
		o.keys = append(o.keys, name)
	}
	p := prop
	o.props[name] = &p
}

// Delete removes an own property, returning false if it was
// non-configurable.
func (o *Object) Delete(name string) bool {
	p, ok := o.props[name]
	if !ok {
		return true
	}
	if !p.Configurable {
		return false
	}
	delete(o.props, name)
	for i, k := range o.keys {
		if k == name {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// OwnKeys returns own enumerable keys in insertion order.
func (o *Object) OwnKeys() []string {
	out := make([]string, 0, len(o.keys))
	for _, k := range o.keys {
		if o.props[k].Enumerable {
			out = append(out, k)
		}
	}
	return out
}

// AllOwnKeys returns every own key (enumerable or not) in insertion order.
func (o *Object) AllOwnKeys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o *Object) String() string  { return "[object " + o.class + "]" }
func (o *Object) Inspect() string { return fmt.Sprintf("[object %s]", o.class) }
