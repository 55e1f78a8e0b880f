package interp

import (
	"github.com/arjunmenon/ecmalite/parser"
	"github.com/arjunmenon/ecmalite/scope"
	"github.com/arjunmenon/ecmalite/value"
)

func (i *Interpreter) evalWhileStatement(env *scope.Environment, n *parser.WhileStatement) value.Value {
	for {
		cond := i.evalExpr(env, n.Cond)
		if !i.exit.running() {
			return value.Undefined{}
		}
		if !value.ToBoolean(cond) {
			return value.Undefined{}
		}
		i.evalStatement(env, n.Body)
		if !i.consumeLoopSignal() {
			return value.Undefined{}
		}
	}
}

func (i *Interpreter) evalDoWhileStatement(env *scope.Environment, n *parser.DoWhileStatement) value.Value {
	for {
		i.evalStatement(env, n.Body)
		if !i.consumeLoopSignal() {
			return value.Undefined{}
		}
		cond := i.evalExpr(env, n.Cond)
		if !i.exit.running() {
			return value.Undefined{}
		}
		if !value.ToBoolean(cond) {
			return value.Undefined{}
		}
	}
}

// consumeLoopSignal absorbs a pending Break/Continue after one loop
// iteration: Break stops the loop, Continue resets to Running so the
// next iteration proceeds, Returning/Throwing propagate untouched.
// Reports whether the loop should continue iterating.
func (i *Interpreter) consumeLoopSignal() bool {
	switch i.exit.Kind {
	case Breaking:
		i.resetExit()
		return false
	case Continuing:
		i.resetExit()
		return true
	case Returning, Throwing:
		return false
	default:
		return true
	}
}

// evalForStatement implements the per-iteration binding rule: when the
// init clause declares with let/const, every iteration's body runs in
// a fresh LoopBody environment seeded from the previous iteration's
// loop-variable value, so closures created in different iterations
// close over distinct Binding cells.
func (i *Interpreter) evalForStatement(env *scope.Environment, n *parser.ForStatement) value.Value {
	loopInit := env.NewChild(scope.LoopInit)
	var loopVarNames []string

	if n.Init != nil {
		if v, ok := n.Init.(*parser.VarStatement); ok && v.Kind != parser.DeclVar {
			loopVarNames = patternNames(v.Target)
			i.evalStatement(loopInit, n.Init)
		} else {
			i.evalStatement(loopInit, n.Init)
		}
		if !i.exit.running() {
			return value.Undefined{}
		}
	}

	current := loopInit
	for {
		if n.Cond != nil {
			cond := i.evalExpr(current, n.Cond)
			if !i.exit.running() {
				return value.Undefined{}
			}
			if !value.ToBoolean(cond) {
				return value.Undefined{}
			}
		}

		iterEnv := current
		if len(loopVarNames) > 0 {
			iterEnv = current.NewChild(scope.LoopBody)
			for _, name := range loopVarNames {
				val, _ := current.Get(name)
				iterEnv.DeclareLoopBinding(name, parser.DeclLet, val)
			}
		}

		i.evalStatement(iterEnv, n.Body)
		if !i.consumeLoopSignal() {
			return value.Undefined{}
		}

		if len(loopVarNames) > 0 {
			// Carry this iteration's (possibly step-mutated) values
			// forward as the seed for the next iteration's fresh cell.
			next := loopInit.NewChild(scope.LoopInit)
			for _, name := range loopVarNames {
				val, _ := iterEnv.Get(name)
				next.DeclareLoopBinding(name, parser.DeclLet, val)
			}
			current = next
		}

		if n.Step != nil {
			i.evalExpr(current, n.Step)
			if !i.exit.running() {
				return value.Undefined{}
			}
		}
	}
}

func (i *Interpreter) evalForInStatement(env *scope.Environment, n *parser.ForInStatement) value.Value {
	obj := i.evalExpr(env, n.Object)
	if !i.exit.running() {
		return value.Undefined{}
	}
	keys := enumerableKeys(obj)
	for _, key := range keys {
		iterEnv := env.NewChild(scope.LoopBody)
		if err := i.bindLoopTarget(iterEnv, n.Target, n.IsDecl, n.Kind, value.String(key)); err != nil {
			return i.throwError(err)
		}
		i.evalStatement(iterEnv, n.Body)
		if !i.consumeLoopSignal() {
			return value.Undefined{}
		}
	}
	return value.Undefined{}
}

func (i *Interpreter) evalForOfStatement(env *scope.Environment, n *parser.ForOfStatement) value.Value {
	iterable := i.evalExpr(env, n.Object)
	if !i.exit.running() {
		return value.Undefined{}
	}
	values, err := iterableValues(iterable)
	if err != nil {
		return i.throwError(err)
	}
	for _, v := range values {
		iterEnv := env.NewChild(scope.LoopBody)
		if err := i.bindLoopTarget(iterEnv, n.Target, n.IsDecl, n.Kind, v); err != nil {
			return i.throwError(err)
		}
		i.evalStatement(iterEnv, n.Body)
		if !i.consumeLoopSignal() {
			return value.Undefined{}
		}
	}
	return value.Undefined{}
}

func (i *Interpreter) bindLoopTarget(env *scope.Environment, target parser.Pattern, isDecl bool, kind parser.DeclKind, v value.Value) error {
	if isDecl {
		return i.bindPattern(env, target, kind, v, false)
	}
	return i.assignPattern(env, target, v)
}

// enumerableKeys implements for-in's iteration source: own string
// keys for plain objects, index strings for arrays.
func enumerableKeys(v value.Value) []string {
	switch t := v.(type) {
	case *value.Array:
		keys := make([]string, t.Length())
		for idx := range keys {
			keys[idx] = itoa(idx)
		}
		return keys
	case *value.Object:
		return t.OwnKeys()
	default:
		return nil
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// iterableValues implements for-of's iteration source: array elements
// in order, a string's UTF-16-ish characters (here: runes), or an
// object's own values by the "iterate entries by value" convention
// spec.md §4.5 specifies for this subset.
func iterableValues(v value.Value) ([]value.Value, error) {
	switch t := v.(type) {
	case *value.Array:
		out := make([]value.Value, len(t.Elements))
		copy(out, t.Elements)
		return out, nil
	case value.String:
		runes := []rune(string(t))
		out := make([]value.Value, len(runes))
		for idx, r := range runes {
			out[idx] = value.String(string(r))
		}
		return out, nil
	case *value.Object:
		keys := t.OwnKeys()
		out := make([]value.Value, len(keys))
		for idx, k := range keys {
			val, _ := t.Get(k)
			out[idx] = val
		}
		return out, nil
	default:
		return nil, &TypeError{Message: "value is not iterable"}
	}
}

func (i *Interpreter) evalSwitchStatement(env *scope.Environment, n *parser.SwitchStatement) value.Value {
	disc := i.evalExpr(env, n.Discriminant)
	if !i.exit.running() {
		return value.Undefined{}
	}

	switchEnv := env.NewChild(scope.Block)
	matchedIndex := -1
	defaultIndex := -1
	for idx, c := range n.Cases {
		if c.Test == nil {
			defaultIndex = idx
			continue
		}
		testVal := i.evalExpr(switchEnv, c.Test)
		if !i.exit.running() {
			return value.Undefined{}
		}
		if value.StrictEquals(disc, testVal) {
			matchedIndex = idx
			break
		}
	}
	start := matchedIndex
	if start == -1 {
		start = defaultIndex
	}
	if start == -1 {
		return value.Undefined{}
	}
	for idx := start; idx < len(n.Cases); idx++ {
		for _, stmt := range n.Cases[idx].Statements {
			i.evalStatement(switchEnv, stmt)
			if i.exit.Kind == Breaking {
				i.resetExit()
				return value.Undefined{}
			}
			if !i.exit.running() {
				return value.Undefined{}
			}
		}
	}
	return value.Undefined{}
}
