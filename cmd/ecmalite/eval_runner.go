package main

import (
	"fmt"
	"os"

	"github.com/arjunmenon/ecmalite/engine"
)

// runSourceWithRecovery evaluates src against a fresh Engine, printing
// the result in yellow on success and returning the error on failure
// (the caller prints it), and recovering from any panic the evaluator
// itself didn't turn into an error — the same belt-and-suspenders the
// teacher's executeFileWithRecovery (main/main.go) applies. It serves
// the one-shot file runner; the REPL executes its lines through its
// own executeReplLine.
func runSourceWithRecovery(src string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("runtime error: %v", r)
		}
	}()

	e := engine.New()
	e.SetOnConsoleLog(func(args ...any) {
		for i, a := range args {
			if i > 0 {
				fmt.Print(" ")
			}
			fmt.Print(a)
		}
		fmt.Println()
	})

	result, evalErr := e.Eval(src)
	if evalErr != nil {
		return evalErr
	}
	if result != nil {
		yellowColor.Fprintf(os.Stdout, "%v\n", result)
	}
	return nil
}
