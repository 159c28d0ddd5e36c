package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// command is one REPL verb. Guarded commands need a signed-in user.
type command struct {
	usage   string
	minArgs int
	guarded bool
	run     func(ctx context.Context, args []string) error
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	lookup(name string) (command, bool)
	requireAuth(ctx context.Context) bool
	help() string
	report(err error)
	flush()
}

// runREPL reads a line from reader, parses the first token as the command
// and dispatches it through a. The loop exits on EOF, on context
// cancellation, or when the user types "exit" or "quit".
//
// Guarded commands first pass through requireAuth, which may run the
// sign-in prompt. Handler errors are reported and the loop goes on;
// pending notifications are flushed after every line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "technai %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			fmt.Fprintln(w, a.help())
			continue
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		cmd, ok := a.lookup(name)
		if !ok {
			fmt.Fprintln(w, "Unknown command:", name)
			continue
		}
		if len(args) < cmd.minArgs {
			fmt.Fprintln(w, "Usage:", cmd.usage)
			continue
		}

		if !cmd.guarded || a.requireAuth(ctx) {
			if err := cmd.run(ctx, args); err != nil {
				a.report(err)
			}
		}
		a.flush()
	}
}
