package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/jangala-dev/logy/core/circuit"
	"github.com/jangala-dev/logy/core/engine"
)

// runLine executes one tokenized script/REPL line against the circuit:
//
//	write <pin> <value>          write value onto pin at the current time
//	write <pin> <value> @<time>  advance the scheduler to time, then write
//	advance <dt>                 advance the scheduler by dt
//	print <pin>                  print a pin's current value
//
// This is the one grammar both `logyctl run` (reading a file) and
// `logyctl repl` (reading a terminal line at a time) share.
func runLine(e *engine.Engine, pins map[string]*circuit.Pin, tokens []string, out io.Writer) error {
	if len(tokens) == 0 {
		return nil
	}
	switch tokens[0] {
	case "write":
		if len(tokens) < 3 {
			return fmt.Errorf("write requires <pin> <value> [@<time>]")
		}
		pin, ok := pins[tokens[1]]
		if !ok {
			return fmt.Errorf("unknown pin %q", tokens[1])
		}
		value, err := strconv.Atoi(tokens[2])
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", tokens[2], err)
		}
		if len(tokens) >= 4 && len(tokens[3]) > 1 && tokens[3][0] == '@' {
			t, err := strconv.ParseInt(tokens[3][1:], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid time %q: %w", tokens[3], err)
			}
			dt := t - e.Scheduler().Now()
			if dt < 0 {
				return fmt.Errorf("write scheduled in the past: now=%d, requested=%d", e.Scheduler().Now(), t)
			}
			e.Scheduler().Advance(dt)
		}
		return pin.Write(value, nil)
	case "advance":
		if len(tokens) != 2 {
			return fmt.Errorf("advance requires <dt>")
		}
		dt, err := strconv.ParseInt(tokens[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid dt %q: %w", tokens[1], err)
		}
		e.Scheduler().Advance(dt)
		return nil
	case "print":
		if len(tokens) != 2 {
			return fmt.Errorf("print requires <pin>")
		}
		pin, ok := pins[tokens[1]]
		if !ok {
			return fmt.Errorf("unknown pin %q", tokens[1])
		}
		fmt.Fprintf(out, "%s = %s\n", pin.FullName(), pin.Data())
		return nil
	default:
		return fmt.Errorf("unknown command %q", tokens[0])
	}
}

// runScript reads one command per line from r, tokenizing each with
// shlex (so quoted pin names and values work the same as in the REPL).
func runScript(e *engine.Engine, pins map[string]*circuit.Pin, r io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		tokens, err := shlex.Split(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := runLine(e, pins, tokens, out); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return scanner.Err()
}
