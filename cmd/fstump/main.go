// Package main implements the fstump CLI.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fstump/internal/version"
)

var rootCmd = newRootCmd()

// errReported означает, что диагностики уже напечатаны и cobra не должна
// печатать ошибку повторно.
var errReported = errors.New("compilation failed")

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fstump <input> <output>",
		Short: "FStump code generator for the stump target",
		Long: `fstump lowers a structured program (TOML or MessagePack interchange file)
to stump assembly and reports how much of the instruction memory it uses.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          compileExecution,
	}
	cmd.Version = version.Version

	cmd.Flags().String("org", "0", "origin address of the image")
	cmd.Flags().Int("capacity", 8000, "instruction memory capacity in words")
	cmd.Flags().String("entry", "main", "function the bootstrap branches to")
	cmd.Flags().Bool("emit", false, "also print the generated assembly to stdout")

	// Глобальные флаги
	cmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	cmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	cmd.PersistentFlags().Bool("timings", false, "show timing information")
	cmd.PersistentFlags().String("format", "pretty", "diagnostics format (pretty|json)")
	cmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	cmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	cmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	cmd.PersistentFlags().String("trace-mode", "ring", "trace storage (stream|ring|both)")
	cmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in memory in ring mode")
	cmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	cmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file")
	cmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newPackCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// main executes the root command. Any error ends the process with status 1.
func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			rootCmd.PrintErrln("error:", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// stdoutFile returns the command's stdout when it is a real file.
func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return nil
}
