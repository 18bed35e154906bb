package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// Banner is printed when an interactive REPL starts.
const Banner = "Library Management System\nType help for the list of operations, quit to leave."

// RunREPL reads lines from in and dispatches each until quit, end of input or
// ctx is done. prompt is written before every line; pass "" for
// non-interactive input or JSON output. Failed operations do not stop the loop.
func (d *Dispatcher) RunREPL(ctx context.Context, in io.Reader, prompt string) error {
	if prompt != "" {
		fmt.Fprintln(d.out, Banner)
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if prompt != "" {
			fmt.Fprint(d.out, prompt)
		}
		if !scanner.Scan() {
			return scanner.Err()
		}

		if err := d.Line(ctx, scanner.Text()); errors.Is(err, ErrQuit) {
			return nil
		}
	}
}
