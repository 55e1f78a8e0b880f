package builtin

import (
	"fmt"
	"strings"

	"github.com/arjunmenon/ecmalite/interp"
	"github.com/arjunmenon/ecmalite/value"
)

// installConsole is a no-op placeholder kept symmetric with the other
// installX functions Install calls in sequence; console has no shared
// prototype to populate ahead of time since consoleObject builds a
// fresh object with its own methods when installGlobals binds it.
func installConsole(i *interp.Interpreter) {}

// consoleObject builds the "console" global, grounded on the
// teacher's std/io.go writer-backed print helpers (println/eprintln)
// generalized to a method table instead of flat global functions, and
// routed through i.Out the way the teacher routes every output builtin
// through an explicit io.Writer rather than bare fmt.Println.
func consoleObject(i *interp.Interpreter) *value.Object {
	obj := i.NewObject()

	logFn := func(this value.Value, args []value.Value) (value.Value, error) {
		if i.ConsoleSink != nil {
			i.ConsoleSink(args)
			return value.Undefined{}, nil
		}
		fmt.Fprintln(i.Out, formatConsoleArgs(args))
		return value.Undefined{}, nil
	}
	for _, name := range []string{"log", "info", "warn", "error", "debug"} {
		obj.Set(name, value.NewNativeFunction(i.Protos.Function, name, logFn))
	}
	return obj
}

// formatConsoleArgs renders a console.log call's arguments the way a
// real engine's console does: each argument space-separated, strings
// printed bare and everything else via Inspect.
func formatConsoleArgs(args []value.Value) string {
	parts := make([]string, len(args))
	for idx, a := range args {
		if s, ok := a.(value.String); ok {
			parts[idx] = string(s)
		} else {
			parts[idx] = a.Inspect()
		}
	}
	return strings.Join(parts, " ")
}
