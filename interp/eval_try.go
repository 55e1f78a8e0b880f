package interp

import (
	"github.com/arjunmenon/ecmalite/parser"
	"github.com/arjunmenon/ecmalite/scope"
	"github.com/arjunmenon/ecmalite/value"
)

// evalTryStatement implements try/catch/finally per the exit-state
// handoff rule: finally always runs, temporarily suspending whatever
// exit state try/catch left behind; if finally itself produces a new
// exit state (its own return/throw/break), that one wins and replaces
// the pending one, otherwise the pre-finally state is restored.
func (i *Interpreter) evalTryStatement(env *scope.Environment, n *parser.TryStatement) value.Value {
	blockEnv := env.NewChild(scope.Block)
	result := i.evalBlockIn(blockEnv, n.Block.Statements)

	if i.exit.Kind == Throwing && n.Catch != nil {
		thrown := i.exit.Value
		i.resetExit()
		catchEnv := env.NewChild(scope.Catch)
		if n.Catch.Param != nil {
			if err := i.bindPattern(catchEnv, n.Catch.Param, parser.DeclLet, thrown, false); err != nil {
				return i.throwError(err)
			}
		}
		result = i.evalBlockIn(catchEnv, n.Catch.Body.Statements)
	}

	if n.Finally != nil {
		pending := i.exit
		i.resetExit()
		finallyEnv := env.NewChild(scope.Block)
		i.evalBlockIn(finallyEnv, n.Finally.Statements)
		if i.exit.running() {
			// finally produced no new exit state of its own: restore
			// whatever try/catch left pending.
			i.exit = pending
		}
		// else: finally's own return/throw/break replaces pending.
	}

	return result
}
