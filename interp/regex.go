package interp

import (
	"regexp"

	"github.com/arjunmenon/ecmalite/value"
)

// makeRegex compiles a regex literal's pattern/flags into a
// value.Regexp. Go's regexp package (RE2) doesn't support every
// ECMAScript regex feature — backreferences and lookaround groups in
// particular — so a pattern using them fails to compile here rather
// than silently misbehaving; the builtin package's RegExp.prototype
// methods document this divergence rather than work around it.
func (i *Interpreter) makeRegex(pattern, flags string) value.Value {
	compiled, err := compileJSRegex(pattern, flags)
	if err != nil {
		return i.throwError(&TypeError{Message: "Invalid regular expression: /" + pattern + "/: " + err.Error()})
	}
	return value.NewRegexp(i.Protos.RegExp, pattern, flags, compiled)
}

// compileJSRegex translates the handful of JS regex flags this subset
// recognizes into Go's inline flag syntax and compiles the pattern
// as-is otherwise.
func compileJSRegex(pattern, flags string) (*regexp.Regexp, error) {
	var inline string
	for _, f := range flags {
		switch f {
		case 'i':
			inline += "i"
		case 's':
			inline += "s"
		case 'm':
			inline += "m"
		}
	}
	expr := pattern
	if inline != "" {
		expr = "(?" + inline + ")" + expr
	}
	return regexp.Compile(expr)
}
