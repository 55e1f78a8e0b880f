// Command ecmalite is the interpreter's CLI: a file runner, a
// parse-only dumper, and an interactive REPL. It is adapted from the
// teacher's main/main.go, restructured on Cobra subcommands (the
// convention the rest of the retrieval pack converges on for CLI
// entry points, e.g. opal-lang-opal's cli/main.go) instead of the
// teacher's hand-rolled os.Args switch.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version/author/license mirror the teacher's package-level vars
// (main/main.go's VERSION/AUTHOR/LICENCE), kept as the same kind of
// plain string constants rather than promoted to build-time ldflags
// the teacher never used either.
const (
	version = "v1.0.0"
	author  = "ecmalite contributors"
	license = "MIT"
)

var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

func main() {
	root := &cobra.Command{
		Use:           "ecmalite",
		Short:         "ecmalite - an embeddable ECMAScript-subset interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return newReplCommand().RunE(cmd, args)
			}
			return runFile(args[0])
		},
	}
	root.AddCommand(newEvalCommand())
	root.AddCommand(newParseCommand())
	root.AddCommand(newReplCommand())
	root.AddCommand(newVersionCommand())

	if err := root.Execute(); err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			cyanColor.Printf("ecmalite %s (%s, %s)\n", version, license, author)
			return nil
		},
	}
}

func newEvalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval [file]",
		Short: "evaluate a source file and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0])
		},
	}
}

func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return runSourceWithRecovery(string(src))
}
