// Command callscan reports constant-argument call sites in a compiled
// unit tree, for use by dependency-discovery tooling. Unit trees are read
// from the JSON fixture format understood by the bytecode package.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cloudcmds/callscan/bytecode"
	"github.com/cloudcmds/callscan/op"
	"github.com/cloudcmds/callscan/scan"
)

var (
	logger = zerolog.Nop()

	verbose   bool
	tableName string
	failFast  bool
)

func main() {
	root := &cobra.Command{
		Use:          "callscan",
		Short:        "Scan compiled bytecode units for constant-argument call sites",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	scanCmd := &cobra.Command{
		Use:   "scan <unit.json>",
		Short: "Report every constant-argument call site in a unit tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runScan,
	}
	scanCmd.Flags().StringVar(&tableName, "table", "python3.7",
		"instruction set revision (python3.6 or python3.7)")
	scanCmd.Flags().BoolVar(&failFast, "fail-fast", false,
		"exit nonzero if any unit fails to scan")
	root.AddCommand(scanCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func lookupTable(name string) (*op.Table, error) {
	switch name {
	case "python3.6":
		return op.Python36(), nil
	case "python3.7":
		return op.Python37(), nil
	default:
		return nil, fmt.Errorf("unknown instruction set %q", name)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	table, err := lookupTable(tableName)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	unit, err := bytecode.Unmarshal(data)
	if err != nil {
		return err
	}
	scanner, err := scan.New(table)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("table", table.Name()).
		Str("unit", unit.Label()).
		Msg("scanning unit tree")

	arena := bytecode.NewArena()
	results := scan.RecursiveCalls(scanner, arena, unit)

	heading := color.New(color.Bold)
	callee := color.New(color.FgGreen)
	out := cmd.OutOrStdout()
	for h := bytecode.Handle(0); int(h) < arena.Len(); h++ {
		outcome := results[h]
		heading.Fprintf(out, "%s:\n", arena.At(h).Label())
		if outcome.Err != nil {
			logger.Error().Err(outcome.Err).Msg("unit scan failed")
			fmt.Fprintf(out, "  scan failed: %v\n", outcome.Err)
			continue
		}
		if len(outcome.Value) == 0 {
			fmt.Fprintln(out, "  no constant-argument calls")
			continue
		}
		for _, call := range outcome.Value {
			fmt.Fprintf(out, "  %s(%s)\n", callee.Sprint(call.Function), formatArgs(call.Args))
		}
	}

	if failFast {
		return scan.CombineErrors(results)
	}
	return nil
}

func formatArgs(args []any) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, formatArg(arg))
	}
	return strings.Join(parts, ", ")
}

// formatArg renders a constant the way the scanned language would spell it.
func formatArg(arg any) string {
	switch v := arg.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "True"
		}
		return "False"
	case string:
		return fmt.Sprintf("%q", v)
	case []any:
		return "(" + formatArgs(v) + ")"
	case *bytecode.Code:
		return fmt.Sprintf("<code %s>", v.Label())
	default:
		return fmt.Sprint(v)
	}
}
