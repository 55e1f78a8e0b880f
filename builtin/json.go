package builtin

import (
	"strconv"
	"strings"

	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// installJSON installs JSON.stringify/parse onto jsonObj, grounded on
// the teacher's own use of encoding/json in its file package, here
// hand-walked against the value model instead of Go's json package
// since JSON.stringify's replacer/space options operate on Values, not
// Go structs.
func installJSON(i *interp.Interpreter) {}

func installJSONMethods(i *interp.Interpreter, jsonObj *value.Object) {
	staticFunc(i, jsonObj, "stringify", func(this value.Value, args []value.Value) (value.Value, error) {
		v := argAt(args, 0)
		var replacerFn *value.Function
		var allow map[string]bool
		if fn, ok := argAt(args, 1).(*value.Function); ok {
			replacerFn = fn
		} else if arr, ok := argAt(args, 1).(*value.Array); ok {
			allow = map[string]bool{}
			for _, e := range arr.Elements {
				allow[e.String()] = true
			}
		}
		indent := ""
		switch sp := argAt(args, 2).(type) {
		case value.Number:
			n := toInt(sp)
			if n > 10 {
				n = 10
			}
			if n > 0 {
				indent = strings.Repeat(" ", n)
			}
		case value.String:
			indent = string(sp)
		}
		out, ok, err := stringifyValue(i, v, replacerFn, allow, indent, "")
		if err != nil {
			return nil, err
		}
		if !ok {
			return value.Undefined{}, nil
		}
		return value.String(out), nil
	})
	staticFunc(i, jsonObj, "parse", func(this value.Value, args []value.Value) (value.Value, error) {
		s := argAt(args, 0).String()
		p := &jsonParser{i: i, s: s}
		p.skipSpace()
		v, err := p.parseValue()
		if err != nil {
			return nil, &interp.TypeError{Message: "Unexpected token in JSON: " + err.Error()}
		}
		p.skipSpace()
		if p.pos != len(p.s) {
			return nil, &interp.TypeError{Message: "Unexpected non-whitespace character after JSON"}
		}
		return v, nil
	})
}

// stringifyValue implements the recursive serialize-Value-to-JSON-text
// walk. The second return reports whether v serializes at all
// (undefined/functions/symbols are omitted entirely, matching
// JSON.stringify's "return undefined" rule for those).
func stringifyValue(i *interp.Interpreter, v value.Value, replacer *value.Function, allow map[string]bool, indent, curIndent string) (string, bool, error) {
	if replacer != nil {
		r, err := i.CallFunction(replacer, value.Undefined{}, []value.Value{value.String(""), v})
		if err != nil {
			return "", false, err
		}
		v = r
	}
	switch t := v.(type) {
	case value.Undefined:
		return "", false, nil
	case *value.Function:
		return "", false, nil
	case value.Null:
		return "null", true, nil
	case value.Boolean:
		return t.String(), true, nil
	case value.Number:
		f := float64(t)
		if f != f || f-f != 0 {
			return "null", true, nil
		}
		return t.String(), true, nil
	case value.String:
		return strconv.Quote(string(t)), true, nil
	case *value.Array:
		nextIndent := curIndent + indent
		var parts []string
		for _, e := range t.Elements {
			s, ok, err := stringifyValue(i, e, replacer, allow, indent, nextIndent)
			if err != nil {
				return "", false, err
			}
			if !ok {
				s = "null"
			}
			parts = append(parts, s)
		}
		return joinJSON(parts, "[", "]", indent, curIndent), true, nil
	default:
		obj, ok := asObject(v)
		if !ok {
			return "", false, nil
		}
		nextIndent := curIndent + indent
		keys := ownKeysOf(v)
		var parts []string
		for _, k := range keys {
			if allow != nil && !allow[k] {
				continue
			}
			fv, _ := obj.Get(k)
			s, ok, err := stringifyValue(i, fv, replacer, allow, indent, nextIndent)
			if err != nil {
				return "", false, err
			}
			if !ok {
				continue
			}
			sep := ":"
			if indent != "" {
				sep = ": "
			}
			parts = append(parts, strconv.Quote(k)+sep+s)
		}
		return joinJSON(parts, "{", "}", indent, curIndent), true, nil
	}
}

func joinJSON(parts []string, open, close, indent, curIndent string) string {
	if len(parts) == 0 {
		return open + close
	}
	if indent == "" {
		return open + strings.Join(parts, ",") + close
	}
	nextIndent := curIndent + indent
	return open + "\n" + nextIndent + strings.Join(parts, ",\n"+nextIndent) + "\n" + curIndent + close
}

// jsonParser is a small hand-rolled recursive-descent JSON reader,
// grounded on the teacher's own hand-written lexer/parser pattern
// (lexer/lexer.go, parser/parser.go) scaled down to JSON's grammar
// rather than reaching for encoding/json, since JSON.parse must
// produce this engine's own value.Value tree, not Go structs.
type jsonParser struct {
	i   *interp.Interpreter
	s   string
	pos int
}

func (p *jsonParser) skipSpace() {
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *jsonParser) parseValue() (value.Value, error) {
	p.skipSpace()
	if p.pos >= len(p.s) {
		return nil, errUnexpectedEnd
	}
	switch c := p.s[p.pos]; {
	case c == '{':
		return p.parseObject()
	case c == '[':
		return p.parseArray()
	case c == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	case c == 't':
		return p.expect("true", value.True)
	case c == 'f':
		return p.expect("false", value.False)
	case c == 'n':
		return p.expect("null", value.Null{})
	default:
		return p.parseNumber()
	}
}

func (p *jsonParser) expect(lit string, v value.Value) (value.Value, error) {
	if p.pos+len(lit) > len(p.s) || p.s[p.pos:p.pos+len(lit)] != lit {
		return nil, errUnexpectedEnd
	}
	p.pos += len(lit)
	return v, nil
}

func (p *jsonParser) parseNumber() (value.Value, error) {
	start := p.pos
	for p.pos < len(p.s) && strings.ContainsRune("+-0123456789.eE", rune(p.s[p.pos])) {
		p.pos++
	}
	if start == p.pos {
		return nil, errUnexpectedEnd
	}
	f, err := strconv.ParseFloat(p.s[start:p.pos], 64)
	if err != nil {
		return nil, err
	}
	return value.Number(f), nil
}

func (p *jsonParser) parseString() (string, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == '"' {
			p.pos++
			return b.String(), nil
		}
		if c == '\\' {
			p.pos++
			if p.pos >= len(p.s) {
				break
			}
			switch p.s[p.pos] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '"', '\\', '/':
				b.WriteByte(p.s[p.pos])
			case 'u':
				if p.pos+4 < len(p.s) {
					n, err := strconv.ParseInt(p.s[p.pos+1:p.pos+5], 16, 32)
					if err == nil {
						b.WriteRune(rune(n))
					}
					p.pos += 4
				}
			}
			p.pos++
			continue
		}
		b.WriteByte(c)
		p.pos++
	}
	return "", errUnexpectedEnd
}

func (p *jsonParser) parseArray() (value.Value, error) {
	p.pos++ // '['
	var elems []value.Value
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == ']' {
		p.pos++
		return p.i.NewArray(elems), nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil, errUnexpectedEnd
		}
		if p.s[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.s[p.pos] == ']' {
			p.pos++
			return p.i.NewArray(elems), nil
		}
		return nil, errUnexpectedEnd
	}
}

func (p *jsonParser) parseObject() (value.Value, error) {
	p.pos++ // '{'
	obj := p.i.NewObject()
	p.skipSpace()
	if p.pos < len(p.s) && p.s[p.pos] == '}' {
		p.pos++
		return obj, nil
	}
	for {
		p.skipSpace()
		if p.pos >= len(p.s) || p.s[p.pos] != '"' {
			return nil, errUnexpectedEnd
		}
		key, err := p.parseString()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos >= len(p.s) || p.s[p.pos] != ':' {
			return nil, errUnexpectedEnd
		}
		p.pos++
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj.Set(key, v)
		p.skipSpace()
		if p.pos >= len(p.s) {
			return nil, errUnexpectedEnd
		}
		if p.s[p.pos] == ',' {
			p.pos++
			continue
		}
		if p.s[p.pos] == '}' {
			p.pos++
			return obj, nil
		}
		return nil, errUnexpectedEnd
	}
}

var errUnexpectedEnd = &jsonSyntaxError{"unexpected end of JSON input"}

type jsonSyntaxError struct{ msg string }

func (e *jsonSyntaxError) Error() string { return e.msg }
