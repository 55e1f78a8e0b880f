package interp

import (
	"strconv"

	"github.com/arjunmenon/ecmalite/lexer"
	"github.com/arjunmenon/ecmalite/parser"
	"github.com/arjunmenon/ecmalite/scope"
	"github.com/arjunmenon/ecmalite/value"
)

// evalMemberExpression implements obj.x / obj?.x / obj[expr] / obj?.[expr]:
// the optional forms short-circuit to Undefined on a nullish base instead
// of raising MemberAccessError.
func (i *Interpreter) evalMemberExpression(env *scope.Environment, n *parser.MemberExpression) value.Value {
	obj := i.evalExpr(env, n.Object)
	if !i.exit.running() {
		return value.Undefined{}
	}
	if n.Optional && isNullishValue(obj) {
		return value.Undefined{}
	}
	key := i.memberKey(env, n)
	if !i.exit.running() {
		return value.Undefined{}
	}
	if isNullishValue(obj) {
		return i.throwError(&MemberAccessError{Base: nullishName(obj), Name: key})
	}
	return i.getMember(obj, key)
}

// memberKey resolves a member expression's property name, reusing the
// same literal/computed rules an object-literal key uses.
func (i *Interpreter) memberKey(env *scope.Environment, n *parser.MemberExpression) string {
	return i.propertyKey(env, n.Property, n.Computed)
}

func isNullishValue(v value.Value) bool {
	switch v.(type) {
	case value.Undefined, value.Null:
		return true
	default:
		return false
	}
}

func nullishName(v value.Value) string {
	if _, ok := v.(value.Null); ok {
		return "null"
	}
	return "undefined"
}

// parseIndex reports whether name is a canonical non-negative integer
// string, the form array/string/typed-array indexing recognizes;
// anything else (including "01" or "-1") falls through to plain
// property lookup instead.
func parseIndex(name string) (int, bool) {
	if name == "" {
		return 0, false
	}
	for _, r := range name {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	if len(name) > 1 && name[0] == '0' {
		return 0, false
	}
	idx, err := strconv.Atoi(name)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// getMember reads a named property off any runtime value, dispatching
// to each concrete kind's own synthesized properties (length, numeric
// index, regex/function reflection slots) before falling back to the
// generic prototype-chain walk every reference type shares through its
// embedded *value.Object.
func (i *Interpreter) getMember(base value.Value, name string) value.Value {
	switch t := base.(type) {
	case value.String:
		return i.getStringMember(t, name)
	case value.Number:
		return i.getFromProto(i.Protos.Number, name)
	case value.Boolean:
		return i.getFromProto(i.Protos.Boolean, name)
	case *value.Array:
		return i.getArrayMember(t, name)
	case *value.Function:
		return i.getFunctionMember(t, name)
	case *value.Regexp:
		return i.getRegexMember(t, name)
	case *value.Uint8Array:
		return i.getUint8ArrayMember(t, name)
	case *value.Date:
		return i.objectGetMember(t.Object, name)
	case *value.HostOpaque:
		return i.getHostOpaqueMember(t, name)
	case *value.Object:
		return i.objectGetMember(t, name)
	default:
		return value.Undefined{}
	}
}

func (i *Interpreter) getFromProto(proto *value.Object, name string) value.Value {
	if proto == nil {
		return value.Undefined{}
	}
	if v, ok := proto.Get(name); ok {
		return v
	}
	return value.Undefined{}
}

func (i *Interpreter) getStringMember(s value.String, name string) value.Value {
	runes := []rune(string(s))
	if name == "length" {
		return value.Number(len(runes))
	}
	if idx, ok := parseIndex(name); ok {
		if idx >= 0 && idx < len(runes) {
			return value.String(string(runes[idx]))
		}
		return value.Undefined{}
	}
	return i.getFromProto(i.Protos.String, name)
}

func (i *Interpreter) getArrayMember(a *value.Array, name string) value.Value {
	if name == "length" {
		return value.Number(a.Length())
	}
	if idx, ok := parseIndex(name); ok {
		return a.At(idx)
	}
	return i.objectGetMember(a.Object, name)
}

// getFunctionMember lazily materializes "prototype" on first access for
// a constructible function, with a back-reference "constructor" so
// "new F().constructor === F" holds without eagerly allocating a
// prototype object for every function literal evaluated.
func (i *Interpreter) getFunctionMember(f *value.Function, name string) value.Value {
	switch name {
	case "name":
		return value.String(f.Name)
	case "length":
		return value.Number(f.ParamCount())
	case "prototype":
		if !f.HasOwn("prototype") {
			if !f.IsCtor {
				return value.Undefined{}
			}
			protoObj := i.NewObject()
			protoObj.Set("constructor", f)
			f.DefineOwn("prototype", value.Property{Value: protoObj, Writable: true, Enumerable: false, Configurable: false})
		}
		v, _ := f.Get("prototype")
		return v
	}
	return i.objectGetMember(f.Object, name)
}

func (i *Interpreter) getRegexMember(r *value.Regexp, name string) value.Value {
	switch name {
	case "source":
		return value.String(r.Source)
	case "flags":
		return value.String(r.Flags)
	case "lastIndex":
		return value.Number(r.LastIndex)
	case "global":
		return value.BoolOf(r.Global)
	case "ignoreCase":
		return value.BoolOf(r.IgnoreCase)
	case "multiline":
		return value.BoolOf(r.Multiline)
	}
	return i.objectGetMember(r.Object, name)
}

func (i *Interpreter) getUint8ArrayMember(u *value.Uint8Array, name string) value.Value {
	if name == "length" {
		return value.Number(u.Length())
	}
	if idx, ok := parseIndex(name); ok {
		v, _ := u.At(idx)
		return v
	}
	return i.objectGetMember(u.Object, name)
}

func (i *Interpreter) getHostOpaqueMember(h *value.HostOpaque, name string) value.Value {
	if i.Bridge != nil {
		if access, ok := i.Bridge.ForInstance(h); ok {
			if v, ok := access.GetProperty(name); ok {
				return v
			}
			if v, ok := access.GetMethod(name); ok {
				return v
			}
		}
	}
	return i.objectGetMember(h.Object, name)
}

// objectGetMember is the fallback every reference kind shares: "__proto__"
// reads the prototype link directly, everything else walks the chain
// through the embedded Object.
func (i *Interpreter) objectGetMember(o *value.Object, name string) value.Value {
	if name == "__proto__" {
		if p := o.Prototype(); p != nil {
			return p
		}
		return value.Null{}
	}
	if v, ok := o.Get(name); ok {
		return v
	}
	return value.Undefined{}
}

// putMember is getMember's write-side counterpart.
func (i *Interpreter) putMember(base value.Value, name string, v value.Value) error {
	switch t := base.(type) {
	case *value.Array:
		if name == "length" {
			n := int(value.ToNumber(v))
			if n < 0 {
				n = 0
			}
			if n < t.Length() {
				t.Elements = t.Elements[:n]
			} else {
				for t.Length() < n {
					t.SetAt(t.Length(), value.Undefined{})
				}
			}
			return nil
		}
		if idx, ok := parseIndex(name); ok {
			t.SetAt(idx, v)
			return nil
		}
		return i.objectSetMember(t.Object, name, v)
	case *value.Function:
		return i.objectSetMember(t.Object, name, v)
	case *value.Regexp:
		if name == "lastIndex" {
			t.LastIndex = int(value.ToNumber(v))
			return nil
		}
		return i.objectSetMember(t.Object, name, v)
	case *value.Uint8Array:
		if idx, ok := parseIndex(name); ok {
			t.SetAt(idx, float64(value.ToNumber(v)))
			return nil
		}
		return i.objectSetMember(t.Object, name, v)
	case *value.Date:
		return i.objectSetMember(t.Object, name, v)
	case *value.HostOpaque:
		if i.Bridge != nil {
			if access, ok := i.Bridge.ForInstance(t); ok {
				return access.Update(name, v)
			}
		}
		return i.objectSetMember(t.Object, name, v)
	case *value.Object:
		return i.objectSetMember(t, name, v)
	case value.Undefined, value.Null:
		return &MemberAccessError{Base: nullishName(base), Name: name}
	default:
		// Writing a property onto a primitive string/number/boolean is a
		// silent no-op in non-strict mode.
		return nil
	}
}

func (i *Interpreter) objectSetMember(o *value.Object, name string, v value.Value) error {
	if name == "__proto__" {
		switch p := v.(type) {
		case value.Null:
			return o.SetPrototype(nil)
		case *value.Object:
			return o.SetPrototype(p)
		default:
			return nil
		}
	}
	return o.Set(name, v)
}

// assignRef is a resolved, write-once reference to an assignment
// target: a scope binding or a (base, key) member slot. Resolving it
// ahead of get/set is what lets compound assignment and update
// expressions evaluate a member base exactly once.
type assignRef struct {
	member bool
	env    *scope.Environment
	name   string
	obj    value.Value
	key    string
}

func (i *Interpreter) resolveRef(env *scope.Environment, target parser.Expression) (assignRef, bool) {
	switch t := target.(type) {
	case *parser.Identifier:
		return assignRef{env: env, name: t.Name}, true
	case *parser.MemberExpression:
		obj := i.evalExpr(env, t.Object)
		if !i.exit.running() {
			return assignRef{}, true
		}
		key := i.memberKey(env, t)
		if !i.exit.running() {
			return assignRef{}, true
		}
		return assignRef{member: true, obj: obj, key: key}, true
	default:
		return assignRef{}, false
	}
}

func (r assignRef) get(i *Interpreter) value.Value {
	if !r.member {
		v, err := r.env.Get(r.name)
		if err != nil {
			return i.throwError(translateScopeErr(err))
		}
		if _, ok := v.(scope.Undefined); ok {
			return value.Undefined{}
		}
		return v.(value.Value)
	}
	if isNullishValue(r.obj) {
		return i.throwError(&MemberAccessError{Base: nullishName(r.obj), Name: r.key})
	}
	return i.getMember(r.obj, r.key)
}

func (r assignRef) set(i *Interpreter, v value.Value) value.Value {
	if !r.member {
		if err := r.env.Assign(r.name, v); err != nil {
			return i.throwError(translateScopeErr(err))
		}
		return v
	}
	if isNullishValue(r.obj) {
		return i.throwError(&MemberAccessError{Base: nullishName(r.obj), Name: r.key})
	}
	if err := i.putMember(r.obj, r.key, v); err != nil {
		return i.throwError(err)
	}
	return v
}

// evalAssignment implements "=" and every compound/logical assignment
// operator.
func (i *Interpreter) evalAssignment(env *scope.Environment, n *parser.AssignmentExpression) value.Value {
	if n.Operator == lexer.ASSIGN {
		v := i.evalExpr(env, n.Value)
		if !i.exit.running() {
			return value.Undefined{}
		}
		if err := i.assignTo(env, n.Target, v); err != nil {
			return i.throwError(translateScopeErr(err))
		}
		return v
	}
	switch n.Operator {
	case lexer.AND_ASSIGN, lexer.OR_ASSIGN, lexer.NULLISH_ASSIGN:
		return i.evalLogicalAssignment(env, n)
	default:
		return i.evalCompoundAssignment(env, n)
	}
}

func (i *Interpreter) evalCompoundAssignment(env *scope.Environment, n *parser.AssignmentExpression) value.Value {
	ref, ok := i.resolveRef(env, n.Target)
	if !ok {
		return i.throwError(&TypeError{Message: "invalid assignment target"})
	}
	if !i.exit.running() {
		return value.Undefined{}
	}
	old := ref.get(i)
	if !i.exit.running() {
		return value.Undefined{}
	}
	rhs := i.evalExpr(env, n.Value)
	if !i.exit.running() {
		return value.Undefined{}
	}
	result := applyBinaryOp(compoundBaseOp(n.Operator), old, rhs)
	return ref.set(i, result)
}

func (i *Interpreter) evalLogicalAssignment(env *scope.Environment, n *parser.AssignmentExpression) value.Value {
	ref, ok := i.resolveRef(env, n.Target)
	if !ok {
		return i.throwError(&TypeError{Message: "invalid assignment target"})
	}
	if !i.exit.running() {
		return value.Undefined{}
	}
	old := ref.get(i)
	if !i.exit.running() {
		return value.Undefined{}
	}
	switch n.Operator {
	case lexer.AND_ASSIGN:
		if !value.ToBoolean(old) {
			return old
		}
	case lexer.OR_ASSIGN:
		if value.ToBoolean(old) {
			return old
		}
	case lexer.NULLISH_ASSIGN:
		if !isNullishValue(old) {
			return old
		}
	}
	rhs := i.evalExpr(env, n.Value)
	if !i.exit.running() {
		return value.Undefined{}
	}
	return ref.set(i, rhs)
}

func compoundBaseOp(op lexer.TokenKind) lexer.TokenKind {
	switch op {
	case lexer.PLUS_ASSIGN:
		return lexer.PLUS
	case lexer.MINUS_ASSIGN:
		return lexer.MINUS
	case lexer.STAR_ASSIGN:
		return lexer.STAR
	case lexer.SLASH_ASSIGN:
		return lexer.SLASH
	case lexer.PERCENT_ASSIGN:
		return lexer.PERCENT
	case lexer.STARSTAR_ASSIGN:
		return lexer.STARSTAR
	case lexer.BITOR_ASSIGN:
		return lexer.BITOR
	case lexer.BITAND_ASSIGN:
		return lexer.BITAND
	case lexer.BITXOR_ASSIGN:
		return lexer.BITXOR
	case lexer.SHL_ASSIGN:
		return lexer.SHL
	case lexer.SHR_ASSIGN:
		return lexer.SHR
	case lexer.USHR_ASSIGN:
		return lexer.USHR
	default:
		return lexer.ILLEGAL
	}
}

// assignTo implements simple "=" against every target shape the
// grammar allows: a plain name, a member expression, or an array/object
// literal used as a destructuring target.
func (i *Interpreter) assignTo(env *scope.Environment, target parser.Expression, val value.Value) error {
	switch t := target.(type) {
	case *parser.Identifier:
		return env.Assign(t.Name, val)
	case *parser.MemberExpression:
		obj := i.evalExpr(env, t.Object)
		if !i.exit.running() {
			return nil
		}
		key := i.memberKey(env, t)
		if !i.exit.running() {
			return nil
		}
		if isNullishValue(obj) {
			return &MemberAccessError{Base: nullishName(obj), Name: key}
		}
		return i.putMember(obj, key, val)
	case *parser.ArrayLiteral:
		return i.assignArrayLiteral(env, t, val)
	case *parser.ObjectLiteral:
		return i.assignObjectLiteral(env, t, val)
	default:
		return &TypeError{Message: "invalid assignment target"}
	}
}

func (i *Interpreter) assignToMaybeDefault(env *scope.Environment, expr parser.Expression, val value.Value) error {
	if assign, ok := expr.(*parser.AssignmentExpression); ok && assign.Operator == lexer.ASSIGN {
		if isUndefined(val) {
			def := i.evalExpr(env, assign.Value)
			if !i.exit.running() {
				return nil
			}
			val = def
		}
		return i.assignTo(env, assign.Target, val)
	}
	return i.assignTo(env, expr, val)
}

func (i *Interpreter) assignArrayLiteral(env *scope.Environment, lit *parser.ArrayLiteral, val value.Value) error {
	elems, err := iterableValues(val)
	if err != nil {
		return err
	}
	for idx, el := range lit.Elements {
		if el.Expr == nil {
			continue // elision
		}
		if el.Spread {
			var rest []value.Value
			if idx < len(elems) {
				rest = append(rest, elems[idx:]...)
			}
			return i.assignToMaybeDefault(env, el.Expr, i.NewArray(rest))
		}
		var v value.Value = value.Undefined{}
		if idx < len(elems) {
			v = elems[idx]
		}
		if err := i.assignToMaybeDefault(env, el.Expr, v); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) assignObjectLiteral(env *scope.Environment, lit *parser.ObjectLiteral, val value.Value) error {
	taken := make(map[string]bool, len(lit.Properties))
	for _, prop := range lit.Properties {
		if prop.Spread {
			continue
		}
		key := i.propertyKey(env, prop.Key, prop.Computed)
		if !i.exit.running() {
			return nil
		}
		taken[key] = true
		v := i.getMember(val, key)
		if err := i.assignToMaybeDefault(env, prop.Value, v); err != nil {
			return err
		}
	}
	for _, prop := range lit.Properties {
		if !prop.Spread {
			continue
		}
		rest := i.NewObject()
		if src, ok := val.(*value.Object); ok {
			for _, k := range src.OwnKeys() {
				if taken[k] {
					continue
				}
				sv, _ := src.Get(k)
				rest.Set(k, sv)
			}
		}
		return i.assignTo(env, prop.Value, rest)
	}
	return nil
}
