package value

// CyclicPrototypeError reports an attempt to set an object's prototype
// to itself or to an object that already descends from it.
type CyclicPrototypeError struct{}

func (e *CyclicPrototypeError) Error() string { return "cyclic prototype chain" }

// NotWritableError reports a write to a non-writable property, most
// commonly a built-in prototype method.
type NotWritableError struct{ Name string }

func (e *NotWritableError) Error() string { return "cannot assign to read only property " + e.Name }

// NotExtensibleError reports adding a new own property to an object
// that has had PreventExtensions called on it.
type NotExtensibleError struct{ Name string }

func (e *NotExtensibleError) Error() string {
	return "cannot add property " + e.Name + ", object is not extensible"
}
