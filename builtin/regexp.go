package builtin

import (
	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// installRegExp installs RegExp.prototype's test/exec and the
// String.prototype methods that delegate to a regex (match/search/
// replace-with-pattern), grounded on the teacher's use of Go's
// regexp package for its own string-matching helpers (std/strings.go)
// generalized to hold compiled patterns and stateful lastIndex per
// spec.md's RegExp section.
func installRegExp(i *interp.Interpreter) {
	proto := i.Protos.RegExp

	needRegexp := func(this value.Value) (*value.Regexp, error) {
		r, ok := this.(*value.Regexp)
		if !ok {
			return nil, &interp.TypeError{Message: "method called on non-regexp"}
		}
		return r, nil
	}

	method(proto, "test", func(this value.Value, args []value.Value) (value.Value, error) {
		r, err := needRegexp(this)
		if err != nil {
			return nil, err
		}
		s := argAt(args, 0).String()
		loc := execAt(r, s)
		return value.BoolOf(loc != nil), nil
	})
	method(proto, "exec", func(this value.Value, args []value.Value) (value.Value, error) {
		r, err := needRegexp(this)
		if err != nil {
			return nil, err
		}
		s := argAt(args, 0).String()
		loc := execAt(r, s)
		if loc == nil {
			return value.Null{}, nil
		}
		return execResult(i, r, s, loc), nil
	})
	method(proto, "toString", func(this value.Value, args []value.Value) (value.Value, error) {
		r, err := needRegexp(this)
		if err != nil {
			return nil, err
		}
		return value.String(r.String()), nil
	})

	stringProto := i.Protos.String
	method(stringProto, "match", func(this value.Value, args []value.Value) (value.Value, error) {
		s := this.String()
		r, ok := argAt(args, 0).(*value.Regexp)
		if !ok {
			return value.Null{}, nil
		}
		if !r.Global {
			loc := r.Compiled.FindStringSubmatchIndex(s)
			if loc == nil {
				return value.Null{}, nil
			}
			return execResult(i, r, s, loc), nil
		}
		matches := r.Compiled.FindAllString(s, -1)
		if matches == nil {
			return value.Null{}, nil
		}
		out := make([]value.Value, len(matches))
		for idx, m := range matches {
			out[idx] = value.String(m)
		}
		return i.NewArray(out), nil
	})
	method(stringProto, "search", func(this value.Value, args []value.Value) (value.Value, error) {
		s := this.String()
		r, ok := argAt(args, 0).(*value.Regexp)
		if !ok {
			return value.Number(-1), nil
		}
		loc := r.Compiled.FindStringIndex(s)
		if loc == nil {
			return value.Number(-1), nil
		}
		return value.Number(loc[0]), nil
	})
}

// execAt finds the next match, consulting and advancing lastIndex for
// a global regex the way RegExp.prototype.exec/test's stateful search
// cursor works.
func execAt(r *value.Regexp, s string) []int {
	start := 0
	if r.Global {
		start = r.LastIndex
	}
	if start < 0 || start > len(s) {
		r.LastIndex = 0
		return nil
	}
	loc := r.Compiled.FindStringSubmatchIndex(s[start:])
	if loc == nil {
		if r.Global {
			r.LastIndex = 0
		}
		return nil
	}
	for idx := range loc {
		if loc[idx] >= 0 {
			loc[idx] += start
		}
	}
	if r.Global {
		if loc[1] == loc[0] {
			r.LastIndex = loc[1] + 1
		} else {
			r.LastIndex = loc[1]
		}
	}
	return loc
}

// execResult builds the match array exec()/match() return: element 0
// is the whole match, followed by each capture group, with an "index"
// and "input" property per spec.
func execResult(i *interp.Interpreter, r *value.Regexp, s string, loc []int) *value.Array {
	n := len(loc) / 2
	elems := make([]value.Value, n)
	for g := 0; g < n; g++ {
		if loc[2*g] < 0 {
			elems[g] = value.Undefined{}
			continue
		}
		elems[g] = value.String(s[loc[2*g]:loc[2*g+1]])
	}
	arr := i.NewArray(elems)
	arr.Set("index", value.Number(loc[0]))
	arr.Set("input", value.String(s))
	return arr
}

// regexpConstructor implements "RegExp(pattern, flags)"/"new
// RegExp(pattern, flags)": passing an existing RegExp with no flags
// argument clones it, matching the ES constructor's re-wrap behavior.
func regexpConstructor(i *interp.Interpreter) value.NativeFunc {
	return func(this value.Value, args []value.Value) (value.Value, error) {
		pattern := ""
		flags := ""
		if r, ok := argAt(args, 0).(*value.Regexp); ok {
			pattern = r.Source
			flags = r.Flags
		} else {
			pattern = argAt(args, 0).String()
		}
		if len(args) > 1 && !isUndefined(args[1]) {
			flags = args[1].String()
		}
		compiled, err := interp.CompileRegex(pattern, flags)
		if err != nil {
			return nil, &interp.TypeError{Message: "Invalid regular expression: /" + pattern + "/: " + err.Error()}
		}
		return value.NewRegexp(i.Protos.RegExp, pattern, flags, compiled), nil
	}
}
