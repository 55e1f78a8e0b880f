package builtin

import (
	"strings"

	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// installString installs String.prototype's instance methods per
// spec.md §4.6, grounded on the teacher's std/strings.go free
// functions (splitString/trimString/...), generalized to operate on
// "this" (boxed or primitive) instead of a slice of call arguments.
func installString(i *interp.Interpreter) {
	proto := i.Protos.String

	str := func(this value.Value) string { return this.String() }

	method(proto, "toString", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(str(this)), nil
	})
	method(proto, "valueOf", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(str(this)), nil
	})
	method(proto, "charAt", func(this value.Value, args []value.Value) (value.Value, error) {
		s := []rune(str(this))
		idx := toInt(argAt(args, 0))
		if idx < 0 || idx >= len(s) {
			return value.String(""), nil
		}
		return value.String(string(s[idx])), nil
	})
	method(proto, "charCodeAt", func(this value.Value, args []value.Value) (value.Value, error) {
		s := []rune(str(this))
		idx := toInt(argAt(args, 0))
		if idx < 0 || idx >= len(s) {
			return value.Number(float64Nan()), nil
		}
		return value.Number(float64(s[idx])), nil
	})
	method(proto, "codePointAt", func(this value.Value, args []value.Value) (value.Value, error) {
		s := []rune(str(this))
		idx := toInt(argAt(args, 0))
		if idx < 0 || idx >= len(s) {
			return value.Undefined{}, nil
		}
		return value.Number(float64(s[idx])), nil
	})
	method(proto, "indexOf", func(this value.Value, args []value.Value) (value.Value, error) {
		s := str(this)
		sub := argAt(args, 0).String()
		start := 0
		if len(args) > 1 {
			start = toInt(args[1])
		}
		if start < 0 {
			start = 0
		}
		if start > len(s) {
			if sub == "" {
				return value.Number(len(s)), nil
			}
			return value.Number(-1), nil
		}
		idx := strings.Index(s[start:], sub)
		if idx < 0 {
			return value.Number(-1), nil
		}
		return value.Number(idx + start), nil
	})
	method(proto, "lastIndexOf", func(this value.Value, args []value.Value) (value.Value, error) {
		s := str(this)
		sub := argAt(args, 0).String()
		return value.Number(strings.LastIndex(s, sub)), nil
	})
	method(proto, "includes", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.BoolOf(strings.Contains(str(this), argAt(args, 0).String())), nil
	})
	method(proto, "startsWith", func(this value.Value, args []value.Value) (value.Value, error) {
		s := str(this)
		if len(args) > 1 {
			start := clampIndex(toInt(args[1]), len(s))
			s = s[start:]
		}
		return value.BoolOf(strings.HasPrefix(s, argAt(args, 0).String())), nil
	})
	method(proto, "endsWith", func(this value.Value, args []value.Value) (value.Value, error) {
		s := str(this)
		if len(args) > 1 {
			end := clampIndex(toInt(args[1]), len(s))
			s = s[:end]
		}
		return value.BoolOf(strings.HasSuffix(s, argAt(args, 0).String())), nil
	})
	method(proto, "slice", func(this value.Value, args []value.Value) (value.Value, error) {
		s := []rune(str(this))
		n := len(s)
		start, end := 0, n
		if len(args) > 0 {
			start = clampIndex(toInt(args[0]), n)
		}
		if len(args) > 1 && !isUndefined(args[1]) {
			end = clampIndex(toInt(args[1]), n)
		}
		if start > end {
			start = end
		}
		return value.String(string(s[start:end])), nil
	})
	method(proto, "substring", func(this value.Value, args []value.Value) (value.Value, error) {
		s := []rune(str(this))
		n := len(s)
		start, end := 0, n
		if len(args) > 0 {
			start = boundSubstring(toInt(args[0]), n)
		}
		if len(args) > 1 && !isUndefined(args[1]) {
			end = boundSubstring(toInt(args[1]), n)
		}
		if start > end {
			start, end = end, start
		}
		return value.String(string(s[start:end])), nil
	})
	method(proto, "concat", func(this value.Value, args []value.Value) (value.Value, error) {
		var b strings.Builder
		b.WriteString(str(this))
		for _, a := range args {
			b.WriteString(a.String())
		}
		return value.String(b.String()), nil
	})
	method(proto, "toUpperCase", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(strings.ToUpper(str(this))), nil
	})
	method(proto, "toLowerCase", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(strings.ToLower(str(this))), nil
	})
	method(proto, "trim", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(strings.TrimSpace(str(this))), nil
	})
	method(proto, "trimStart", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(strings.TrimLeft(str(this), " \t\n\r\v\f")), nil
	})
	method(proto, "trimEnd", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(strings.TrimRight(str(this), " \t\n\r\v\f")), nil
	})
	method(proto, "padStart", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(pad(str(this), args, true)), nil
	})
	method(proto, "padEnd", func(this value.Value, args []value.Value) (value.Value, error) {
		return value.String(pad(str(this), args, false)), nil
	})
	method(proto, "repeat", func(this value.Value, args []value.Value) (value.Value, error) {
		n := toInt(argAt(args, 0))
		if n < 0 {
			return nil, &interp.TypeError{Message: "Invalid count value"}
		}
		return value.String(strings.Repeat(str(this), n)), nil
	})
	method(proto, "split", func(this value.Value, args []value.Value) (value.Value, error) {
		s := str(this)
		sep := argAt(args, 0)
		if isUndefined(sep) {
			return i.NewArray([]value.Value{value.String(s)}), nil
		}
		parts := strings.Split(s, sep.String())
		out := make([]value.Value, len(parts))
		for idx, p := range parts {
			out[idx] = value.String(p)
		}
		return i.NewArray(out), nil
	})
	method(proto, "replace", func(this value.Value, args []value.Value) (value.Value, error) {
		return replaceString(i, str(this), args, false)
	})
	method(proto, "replaceAll", func(this value.Value, args []value.Value) (value.Value, error) {
		return replaceString(i, str(this), args, true)
	})
	method(proto, "at", func(this value.Value, args []value.Value) (value.Value, error) {
		s := []rune(str(this))
		idx := toInt(argAt(args, 0))
		if idx < 0 {
			idx += len(s)
		}
		if idx < 0 || idx >= len(s) {
			return value.Undefined{}, nil
		}
		return value.String(string(s[idx])), nil
	})
}

func float64Nan() float64 {
	var f float64
	return f / f // NaN without importing math twice over
}

func boundSubstring(raw, length int) int {
	if raw < 0 {
		return 0
	}
	if raw > length {
		return length
	}
	return raw
}

func pad(s string, args []value.Value, start bool) string {
	target := toInt(argAt(args, 0))
	filler := " "
	if len(args) > 1 && !isUndefined(args[1]) {
		filler = args[1].String()
	}
	if filler == "" || len([]rune(s)) >= target {
		return s
	}
	need := target - len([]rune(s))
	fillRunes := []rune(filler)
	var b strings.Builder
	for b.Len() < need*4 && len([]rune(b.String())) < need {
		b.WriteString(string(fillRunes))
	}
	padding := []rune(b.String())
	if len(padding) > need {
		padding = padding[:need]
	}
	if start {
		return string(padding) + s
	}
	return s + string(padding)
}

// replaceString implements String.prototype.replace/replaceAll: a
// RegExp search replaces its first match, or every match when it has
// the g flag; any other search is matched as a literal string. The
// replacement argument may be a literal string (with "$&"/"$1"-style
// patterns left un-expanded, since this subset has no capture-group
// regex replace) or a callback invoked per match.
func replaceString(i *interp.Interpreter, s string, args []value.Value, all bool) (value.Value, error) {
	search := argAt(args, 0)
	replacement := argAt(args, 1)

	doReplace := func(match string) (string, error) {
		if fn, ok := replacement.(*value.Function); ok {
			idx := strings.Index(s, match)
			v, err := i.CallFunction(fn, value.Undefined{}, []value.Value{value.String(match), value.Number(idx), value.String(s)})
			if err != nil {
				return "", err
			}
			return v.String(), nil
		}
		return replacement.String(), nil
	}

	if re, ok := search.(*value.Regexp); ok {
		var rerr error
		n := 0
		out := re.Compiled.ReplaceAllStringFunc(s, func(m string) string {
			if n++; rerr != nil || (n > 1 && !re.Global) {
				return m
			}
			rep, err := doReplace(m)
			rerr = err
			return rep
		})
		return value.String(out), rerr
	}

	pattern := search.String()
	if pattern == "" {
		return value.String(s), nil
	}
	if !all {
		idx := strings.Index(s, pattern)
		if idx < 0 {
			return value.String(s), nil
		}
		rep, err := doReplace(pattern)
		if err != nil {
			return nil, err
		}
		return value.String(s[:idx] + rep + s[idx+len(pattern):]), nil
	}
	var b strings.Builder
	rest := s
	for {
		idx := strings.Index(rest, pattern)
		if idx < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:idx])
		rep, err := doReplace(pattern)
		if err != nil {
			return nil, err
		}
		b.WriteString(rep)
		rest = rest[idx+len(pattern):]
	}
	return value.String(b.String()), nil
}

// stringConstructor implements "String(x)"/"new String(x)": called
// without "new" it coerces x to a primitive string; this subset has no
// boxed String wrapper object, so "new String(x)" also just returns
// the primitive (spec.md's Non-goals exclude wrapper-object identity).
func stringConstructor(i *interp.Interpreter) value.NativeFunc {
	return func(this value.Value, args []value.Value) (value.Value, error) {
		if len(args) == 0 {
			return value.String(""), nil
		}
		return value.String(argAt(args, 0).String()), nil
	}
}
