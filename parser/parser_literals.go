package parser

import (
	"fmt"
	"strings"
)

// Dump renders a syntax tree as an indented, s-expression-flavored string,
// for debugging — not a lossless
// pretty-printer, just enough structure to see what the parser produced.
func Dump(prog *Program) string {
	var b strings.Builder
	for _, s := range prog.Statements {
		dumpStatement(&b, s, 0)
	}
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpStatement(b *strings.Builder, s Statement, depth int) {
	indent(b, depth)
	switch n := s.(type) {
	case *VarStatement:
		fmt.Fprintf(b, "(var %s", n.Target.Literal())
		if n.Init != nil {
			b.WriteString(" = ")
			b.WriteString(n.Init.Literal())
		}
		b.WriteString(")\n")
	case *BlockStatement:
		b.WriteString("(block\n")
		for _, st := range n.Statements {
			dumpStatement(b, st, depth+1)
		}
		indent(b, depth)
		b.WriteString(")\n")
	case *IfStatement:
		fmt.Fprintf(b, "(if %s\n", n.Cond.Literal())
		dumpStatement(b, n.Then, depth+1)
		if n.Else != nil {
			indent(b, depth)
			b.WriteString("else\n")
			dumpStatement(b, n.Else, depth+1)
		}
		indent(b, depth)
		b.WriteString(")\n")
	case *WhileStatement:
		fmt.Fprintf(b, "(while %s\n", n.Cond.Literal())
		dumpStatement(b, n.Body, depth+1)
		indent(b, depth)
		b.WriteString(")\n")
	case *ForStatement:
		b.WriteString("(for\n")
		dumpStatement(b, n.Body, depth+1)
		indent(b, depth)
		b.WriteString(")\n")
	case *ReturnStatement:
		if n.Value != nil {
			fmt.Fprintf(b, "(return %s)\n", n.Value.Literal())
		} else {
			b.WriteString("(return)\n")
		}
	case *FunctionDeclaration:
		fmt.Fprintf(b, "(function %s\n", n.Fn.Name)
		dumpStatement(b, n.Fn.Body, depth+1)
		indent(b, depth)
		b.WriteString(")\n")
	case *ExpressionStatement:
		fmt.Fprintf(b, "%s\n", n.Expr.Literal())
	default:
		fmt.Fprintf(b, "%s\n", s.Literal())
	}
}
