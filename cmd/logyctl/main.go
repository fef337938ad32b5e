// Command logyctl is a thin driver over core/engine and builder: it
// builds the sample daisy-chain circuit (see circuit.go) and either
// replays a script file against it (`run`) or drives it interactively
// (`repl`). No simulation logic lives here; every subcommand just
// parses a line into runLine (script.go) and lets the engine do the
// work.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/jangala-dev/logy/core/circuit"
	"github.com/jangala-dev/logy/core/engine"
	"github.com/jangala-dev/logy/core/scheduler"
	"github.com/jangala-dev/logy/internal/obsbus"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "logyctl",
		Short: "Drive a discrete-event digital logic circuit",
	}
	root.AddCommand(newRunCmd(), newReplCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var maxQueue int
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Build the sample circuit and replay a script file against it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			e := engine.New(engine.WithMaxQueue(maxQueue))
			pins, err := sampleCircuit(e)
			if err != nil {
				return err
			}
			unsubscribe := e.Trace().Subscribe(scheduler.TraceTopic, func(m obsbus.Message) {
				fmt.Fprintln(cmd.OutOrStdout(), m.Payload)
			})
			defer unsubscribe()

			if err := runScript(e, pins, f, cmd.OutOrStdout()); err != nil {
				return err
			}
			return printFinalState(cmd, pins)
		},
	}
	cmd.Flags().IntVar(&maxQueue, "max-queue", 1024, "scheduler queue capacity")
	return cmd
}

func newReplCmd() *cobra.Command {
	var maxQueue int
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Build the sample circuit and drive it from an interactive prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := engine.New(engine.WithMaxQueue(maxQueue))
			pins, err := sampleCircuit(e)
			if err != nil {
				return err
			}
			return runRepl(e, pins)
		},
	}
	cmd.Flags().IntVar(&maxQueue, "max-queue", 1024, "scheduler queue capacity")
	return cmd
}

// printFinalState prints every pin's value once the script has
// finished, sorted by name so a run's output is reproducible.
func printFinalState(cmd *cobra.Command, pins map[string]*circuit.Pin) error {
	names := make([]string, 0, len(pins))
	for name := range pins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", name, pins[name].Data())
	}
	return nil
}
