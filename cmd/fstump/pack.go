package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"fstump/internal/progfile"
)

func newPackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pack <in> <out>",
		Short: "Convert a program between TOML and MessagePack",
		Long: `Convert an interchange file. Formats are picked from the extensions
(.toml, .mp, .msgpack); the program is validated before it is written.`,
		Args: cobra.ExactArgs(2),
		RunE: packExecution,
	}
}

func packExecution(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	f, err := progfile.ReadFile(in)
	if err != nil {
		return err
	}
	if _, err := f.Program(); err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	format, err := progfile.FormatFor(out)
	if err != nil {
		return err
	}
	data, err := progfile.Encode(f, format)
	if err != nil {
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (%s, %d bytes)\n", in, out, format, len(data))
	}
	return nil
}
