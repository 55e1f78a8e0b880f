package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arjunmenon/ecmalite/engine"
	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var blueColor = color.New(color.FgBlue)

// banner mirrors the teacher's main.go BANNER var: ASCII art shown on
// REPL startup. Kept short here rather than reproducing the
// original's full logo.
const banner = `
  ___ ___ _ __ ___   __ _| (_) |_ ___
 / _ \ __/ '_ ' _ \ / _' | | | __/ _ \
|  __/ (_| | | | | | (_| | | | ||  __/
 \___\___|_| |_| |_|\__,_|_|_|\__\___|
`

const prompt = "ecmalite> "

func newReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "start an interactive read-eval-print loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(os.Stdout)
		},
	}
}

// runRepl is the teacher's repl.Start (repl/repl.go), generalized from
// *eval.Evaluator to *engine.Engine: one Engine persists for the whole
// session so variables declared on one line stay visible on the next,
// readline supplies line editing and history exactly as the teacher
// wires it, and colored output keeps the same red/yellow/cyan
// convention (errors/results/info).
func runRepl(w *os.File) error {
	printBanner(w)

	rl, err := readline.New(prompt)
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	e := engine.New()
	e.SetOnConsoleLog(func(args ...any) {
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = fmt.Sprint(a)
		}
		fmt.Fprintln(w, strings.Join(parts, " "))
	})

	for {
		line, err := rl.Readline()
		if err != nil {
			fmt.Fprintln(w, "Good bye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			fmt.Fprintln(w, "Good bye!")
			return nil
		}
		rl.SaveHistory(line)

		executeReplLine(w, e, line)
	}
}

// executeReplLine mirrors the teacher's executeWithRecovery: parse
// errors and runtime errors are both displayed in red without ending
// the session, successful results print in yellow, and a panic that
// escapes the evaluator is caught so one bad line can't kill the REPL.
func executeReplLine(w *os.File, e *engine.Engine, line string) {
	defer func() {
		if r := recover(); r != nil {
			redColor.Fprintf(w, "[runtime error] %v\n", r)
		}
	}()

	result, err := e.Eval(line)
	if err != nil {
		redColor.Fprintf(w, "%v\n", err)
		return
	}
	if result != nil {
		yellowColor.Fprintf(w, "%v\n", result)
	}
}

func printBanner(w *os.File) {
	fmt.Fprintln(w, strings.Repeat("-", 60))
	blueColor.Fprintln(w, banner)
	fmt.Fprintln(w, strings.Repeat("-", 60))
	cyanColor.Fprintf(w, "ecmalite %s | %s license\n", version, license)
	cyanColor.Fprintln(w, "Type JS expressions and press enter. Type '.exit' to quit.")
	fmt.Fprintln(w, strings.Repeat("-", 60))
}
