// Package cmd implements the command-line entry point, grounded on
// cmd/run.go: cobra.Command.Flags() wiring BoolVarP/StringVarP/IntVarP
// onto package-level variables consumed by a single Run function.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrysalisp-go/lisp/lisp"
	"github.com/chrysalisp-go/lisp/parser"
	"github.com/chrysalisp-go/lisp/repl"
)

const defaultBootPath = "boot.lisp"

var (
	verbosity int
	bootPath  string
)

// RootCmd implements spec.md §6's CLI contract: load the boot file, then
// feed queued files to the read-eval loop in order, then standard input.
var RootCmd = &cobra.Command{
	Use:   "lisp [files...]",
	Short: "Run a small Lisp interpreter",
	Long:  "Run a small Lisp interpreter: load a boot script, then evaluate any files given, then read from standard input.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, lerr := lisp.NewEnv(lisp.WithReader(parser.New()))
		if lerr != nil {
			fmt.Fprintln(os.Stderr, lerr.String())
			os.Exit(1)
		}
		env.Insert(env.Intern("*verbosity*"), lisp.Int64(int64(verbosity)))

		bootIn, berr := lisp.NewFileInStream(bootPath)
		if berr != nil {
			fmt.Fprintf(os.Stderr, "cannot open boot file %s: %s\n", bootPath, berr.String())
			os.Exit(1)
		}
		defer bootIn.Close()
		if fatal := repl.RunStream(env, bootIn); fatal != nil {
			os.Exit(1)
		}

		for _, path := range args {
			fileIn, ferr := lisp.NewFileInStream(path)
			if ferr != nil {
				fmt.Fprintln(os.Stderr, ferr.String())
				continue
			}
			repl.RunStream(env, fileIn)
			fileIn.Close()
		}

		if isTerminal(os.Stdin) {
			return repl.Run(env, "> ")
		}
		repl.RunStream(env, lisp.NewInStream("*stdin*", os.Stdin))
		return nil
	},
}

func init() {
	RootCmd.Flags().IntVarP(&verbosity, "verbosity", "v", 0, "verbosity level")
	RootCmd.Flags().StringVarP(&bootPath, "boot", "b", defaultBootPath, "boot file path")
	RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(os.Stderr, cmd.UsageString())
		os.Exit(0)
		return nil
	})
}

// isTerminal reports whether f looks like an interactive terminal, used
// to decide between the readline REPL and a plain non-interactive feed
// of standard input.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
