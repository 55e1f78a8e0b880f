package interp

import (
	"github.com/arjunmenon/ecmalite/parser"
	"github.com/arjunmenon/ecmalite/scope"
	"github.com/arjunmenon/ecmalite/value"
)

// bindPattern binds a var/let/const declaration's target pattern against
// val, recursing through array/object destructuring and defaults. noInit
// reports that the declaration had no initializer at all ("let x;" rather
// than "let x = 1;") — per spec, a const in that shape is an error and a
// let is left in TDZ until its first write, rather than eagerly becoming
// undefined.
func (i *Interpreter) bindPattern(env *scope.Environment, pat parser.Pattern, kind parser.DeclKind, val value.Value, noInit bool) error {
	if noInit {
		if kind == parser.DeclConst {
			return &TypeError{Message: "Missing initializer in const declaration"}
		}
		return nil
	}
	return i.bindPatternValue(env, pat, kind, val)
}

func (i *Interpreter) bindPatternValue(env *scope.Environment, pat parser.Pattern, kind parser.DeclKind, val value.Value) error {
	switch p := pat.(type) {
	case *parser.IdentifierPattern:
		return i.bindIdentifier(env, p.Name, kind, val)

	case *parser.DefaultPattern:
		if isUndefined(val) {
			def := i.evalExpr(env, p.Default)
			if !i.exit.running() {
				return nil
			}
			val = def
		}
		return i.bindPatternValue(env, p.Target, kind, val)

	case *parser.RestPattern:
		return i.bindPatternValue(env, p.Target, kind, val)

	case *parser.ArrayPattern:
		elems, err := iterableValues(val)
		if err != nil {
			return err
		}
		for idx, elPat := range p.Elements {
			if elPat == nil {
				continue // elision
			}
			var v value.Value = value.Undefined{}
			if idx < len(elems) {
				v = elems[idx]
			}
			if err := i.bindPatternValue(env, elPat, kind, v); err != nil {
				return err
			}
		}
		if p.Rest != nil {
			var rest []value.Value
			if len(elems) > len(p.Elements) {
				rest = append(rest, elems[len(p.Elements):]...)
			}
			if err := i.bindPatternValue(env, p.Rest, kind, i.NewArray(rest)); err != nil {
				return err
			}
		}
		return nil

	case *parser.ObjectPattern:
		taken := make(map[string]bool, len(p.Properties))
		for _, prop := range p.Properties {
			key := i.propertyKey(env, prop.Key, prop.Computed)
			if !i.exit.running() {
				return nil
			}
			taken[key] = true
			v := i.getMember(val, key)
			if err := i.bindPatternValue(env, prop.Value, kind, v); err != nil {
				return err
			}
		}
		if p.Rest != nil {
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
			if err := i.bindPatternValue(env, p.Rest, kind, rest); err != nil {
				return err
			}
		}
		return nil

	default:
		return nil
	}
}

// bindIdentifier is the leaf of bindPattern's recursion: a var
// reuses its hoisted function-scope cell; a let/const reuses the
// block's own pre-hoisted TDZ placeholder if one is already sitting
// in env (the common case for top-level block declarations), or
// allocates a fresh already-initialized cell when none exists yet
// (function parameters, catch bindings, for-of/in loop variables —
// none of those go through the lexical-hoisting pre-pass).
func (i *Interpreter) bindIdentifier(env *scope.Environment, name string, kind parser.DeclKind, val value.Value) error {
	if kind == parser.DeclVar {
		return env.Assign(name, val)
	}
	if b, ok := env.OwnBinding(name); ok {
		env.Initialize(b, val)
		return nil
	}
	env.DeclareLoopBinding(name, kind, val)
	return nil
}

// assignPattern implements the non-declaring form of for-in/for-of's
// loop target ("for (x of arr)" reusing an existing binding/implicit
// global rather than introducing a new one). The grammar only allows a
// bare identifier or destructuring pattern here — never a member
// expression — so plain scope.Assign covers every leaf.
func (i *Interpreter) assignPattern(env *scope.Environment, pat parser.Pattern, val value.Value) error {
	switch p := pat.(type) {
	case *parser.IdentifierPattern:
		return env.Assign(p.Name, val)
	case *parser.DefaultPattern:
		if isUndefined(val) {
			def := i.evalExpr(env, p.Default)
			if !i.exit.running() {
				return nil
			}
			val = def
		}
		return i.assignPattern(env, p.Target, val)
	case *parser.RestPattern:
		return i.assignPattern(env, p.Target, val)
	case *parser.ArrayPattern:
		elems, err := iterableValues(val)
		if err != nil {
			return err
		}
		for idx, elPat := range p.Elements {
			if elPat == nil {
				continue
			}
			var v value.Value = value.Undefined{}
			if idx < len(elems) {
				v = elems[idx]
			}
			if err := i.assignPattern(env, elPat, v); err != nil {
				return err
			}
		}
		if p.Rest != nil {
			var rest []value.Value
			if len(elems) > len(p.Elements) {
				rest = append(rest, elems[len(p.Elements):]...)
			}
			if err := i.assignPattern(env, p.Rest, i.NewArray(rest)); err != nil {
				return err
			}
		}
		return nil
	case *parser.ObjectPattern:
		for _, prop := range p.Properties {
			key := i.propertyKey(env, prop.Key, prop.Computed)
			if !i.exit.running() {
				return nil
			}
			v := i.getMember(val, key)
			if err := i.assignPattern(env, prop.Value, v); err != nil {
				return err
			}
		}
		return nil
	case *parser.ExpressionPattern:
		// The opaque wrapper parser.ExprToPattern builds for a member
		// expression target. Loop targets come from parseBindingTarget,
		// which never produces one, so for-in/for-of do not reach here.
		return i.assignTo(env, p.Expr, val)
	default:
		return nil
	}
}

func isUndefined(v value.Value) bool {
	_, ok := v.(value.Undefined)
	return ok
}
