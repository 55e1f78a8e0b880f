package interp

import (
	"github.com/arjunmenon/ecmalite/parser"
	"github.com/arjunmenon/ecmalite/scope"
)

// prepareBlockScope runs the two hoisting passes a block (or function/
// program body) needs before its statements execute: "var"s anywhere
// inside it (but not inside nested function bodies) get hoisted to the
// enclosing function/global scope, this block's own immediate
// let/const declarations get pre-registered in the block, and its
// immediate function declarations get bound in the enclosing
// function/global scope, so out-of-order or recursive reference among
// them behaves correctly (TDZ for let/const, immediate binding for
// function declarations).
func (i *Interpreter) prepareBlockScope(env *scope.Environment, stmts []parser.Statement) {
	i.hoistVars(env, stmts)
	i.hoistLexicalAndFunctions(env, stmts)
}

// hoistVars recursively collects every "var" name reachable from stmts
// without crossing into a nested function body, and declares each in
// the nearest function/global scope with value Undefined (or leaves
// it alone if already declared, matching var's overwrite-tolerant
// redeclaration rule).
func (i *Interpreter) hoistVars(env *scope.Environment, stmts []parser.Statement) {
	for _, s := range stmts {
		i.hoistVarsStmt(env, s)
	}
}

func (i *Interpreter) hoistVarsStmt(env *scope.Environment, s parser.Statement) {
	switch n := s.(type) {
	case *parser.VarStatement:
		if n.Kind == parser.DeclVar {
			for _, name := range patternNames(n.Target) {
				env.DeclareVar(name)
			}
		}
	case *parser.BlockStatement:
		i.hoistVars(env, n.Statements)
	case *parser.IfStatement:
		if n.Then != nil {
			i.hoistVarsStmt(env, n.Then)
		}
		if n.Else != nil {
			i.hoistVarsStmt(env, n.Else)
		}
	case *parser.WhileStatement:
		i.hoistVarsStmt(env, n.Body)
	case *parser.DoWhileStatement:
		i.hoistVarsStmt(env, n.Body)
	case *parser.ForStatement:
		if n.Init != nil {
			i.hoistVarsStmt(env, n.Init)
		}
		i.hoistVarsStmt(env, n.Body)
	case *parser.ForInStatement:
		if n.IsDecl && n.Kind == parser.DeclVar {
			for _, name := range patternNames(n.Target) {
				env.DeclareVar(name)
			}
		}
		i.hoistVarsStmt(env, n.Body)
	case *parser.ForOfStatement:
		if n.IsDecl && n.Kind == parser.DeclVar {
			for _, name := range patternNames(n.Target) {
				env.DeclareVar(name)
			}
		}
		i.hoistVarsStmt(env, n.Body)
	case *parser.SwitchStatement:
		for _, c := range n.Cases {
			i.hoistVars(env, c.Statements)
		}
	case *parser.TryStatement:
		if n.Block != nil {
			i.hoistVars(env, n.Block.Statements)
		}
		if n.Catch != nil && n.Catch.Body != nil {
			i.hoistVars(env, n.Catch.Body.Statements)
		}
		if n.Finally != nil {
			i.hoistVars(env, n.Finally.Statements)
		}
	}
}

// hoistLexicalAndFunctions pre-registers this block's own immediate
// let/const declarations as TDZ placeholders and binds its immediate
// function declarations to callable values in the nearest function/
// global scope, both ahead of executing any statement in the block.
func (i *Interpreter) hoistLexicalAndFunctions(env *scope.Environment, stmts []parser.Statement) {
	for _, s := range stmts {
		switch n := s.(type) {
		case *parser.VarStatement:
			if n.Kind != parser.DeclVar {
				for _, name := range patternNames(n.Target) {
					if _, err := env.DeclareTDZ(name, n.Kind); err != nil {
						i.throwError(translateScopeErr(err))
						return
					}
				}
			}
		case *parser.FunctionDeclaration:
			fn := i.makeFunction(n.Fn, env)
			env.Initialize(env.DeclareVar(n.Fn.Name), fn)
		}
	}
}

// patternNames flattens a binding pattern (identifier, array/object
// destructuring, defaults, rest) into the list of names it introduces.
func patternNames(p parser.Pattern) []string {
	switch t := p.(type) {
	case *parser.IdentifierPattern:
		return []string{t.Name}
	case *parser.DefaultPattern:
		return patternNames(t.Target)
	case *parser.RestPattern:
		return patternNames(t.Target)
	case *parser.ArrayPattern:
		var names []string
		for _, el := range t.Elements {
			if el != nil {
				names = append(names, patternNames(el)...)
			}
		}
		if t.Rest != nil {
			names = append(names, patternNames(t.Rest)...)
		}
		return names
	case *parser.ObjectPattern:
		var names []string
		for _, prop := range t.Properties {
			names = append(names, patternNames(prop.Value)...)
		}
		if t.Rest != nil {
			names = append(names, patternNames(t.Rest)...)
		}
		return names
	default:
		return nil
	}
}
