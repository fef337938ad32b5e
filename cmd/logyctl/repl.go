package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/shlex"
	"github.com/jangala-dev/logy/core/circuit"
	"github.com/jangala-dev/logy/core/engine"
	"github.com/jangala-dev/logy/core/scheduler"
	"github.com/jangala-dev/logy/internal/obsbus"
	"golang.org/x/term"
)

// stdio combines stdin/stdout into the single io.ReadWriter
// term.NewTerminal wants; term.NewTerminal owns line editing once the
// file descriptor is in raw mode, so reads and writes both have to go
// through it rather than bufio.Scanner on os.Stdin directly.
type stdio struct {
	io.Reader
	io.Writer
}

// runRepl drives the circuit from an interactive prompt, one line at a
// time, through the same grammar runLine implements for scripts.
func runRepl(e *engine.Engine, pins map[string]*circuit.Pin) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Not a real terminal (e.g. piped input in a test): fall back
		// to line-buffered reading without raw mode.
		return runScript(e, pins, os.Stdin, os.Stdout)
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(stdio{os.Stdin, os.Stdout}, "logy> ")
	unsubscribe := e.Trace().Subscribe(scheduler.TraceTopic, func(m obsbus.Message) {
		fmt.Fprintln(t, m.Payload)
	})
	defer unsubscribe()

	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return nil
		}
		tokens, err := shlex.Split(line)
		if err != nil {
			fmt.Fprintf(t, "parse error: %v\n", err)
			continue
		}
		if err := runLine(e, pins, tokens, t); err != nil {
			fmt.Fprintf(t, "error: %v\n", err)
		}
	}
}
