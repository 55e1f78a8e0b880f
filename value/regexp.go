package value

import (
	"fmt"
	"regexp"
)

// Regexp wraps a compiled Go regexp.Regexp alongside the original
// source/flags text, so Source/Flags stay available for .toString()
// and re-exec even though Go's RE2 engine doesn't support every
// ECMAScript regex feature (backreferences, lookbehind) — divergences
// interp/regex.go documents rather than works around.
type Regexp struct {
	*Object
	Source     string
	Flags      string
	Compiled   *regexp.Regexp
	Global     bool
	IgnoreCase bool
	Multiline  bool
	DotAll     bool
	LastIndex  int // stateful index used by exec()/test() when Global is set
}

func NewRegexp(proto *Object, source, flags string, compiled *regexp.Regexp) *Regexp {
	r := &Regexp{Object: NewObjectWithClass(proto, "RegExp"), Source: source, Flags: flags, Compiled: compiled}
	for _, f := range flags {
		switch f {
		case 'g':
			r.Global = true
		case 'i':
			r.IgnoreCase = true
		case 'm':
			r.Multiline = true
		case 's':
			r.DotAll = true
		}
	}
	return r
}

func (r *Regexp) String() string  { return fmt.Sprintf("/%s/%s", r.Source, r.Flags) }
func (r *Regexp) Inspect() string { return r.String() }
