package main

import (
	"fmt"
	"os"

	"github.com/arjunmenon/ecmalite/parser"
	"github.com/spf13/cobra"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [file]",
		Short: "parse a source file and print its top-level statements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			return dumpParse(string(src))
		},
	}
}

// dumpParse parses src and prints one line per top-level statement's
// approximate source text (Node.Literal()), or every accumulated
// SyntaxError if parsing failed. It exists for debugging the grammar
// interactively without wiring a full AST pretty-printer, the same
// spirit as the teacher's parser exposing par.HasErrors()/GetErrors()
// for the REPL to surface directly rather than panicking.
func dumpParse(src string) error {
	prog, errs := parser.Parse(src)
	if len(errs) > 0 {
		for _, e := range errs {
			redColor.Fprintf(os.Stderr, "%s\n", e.Error())
		}
		return fmt.Errorf("%d syntax error(s)", len(errs))
	}
	for i, stmt := range prog.Statements {
		cyanColor.Printf("%3d: ", i)
		fmt.Println(stmt.Literal())
	}
	return nil
}
