package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fstump/internal/driver"
)

func compileExecution(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		// usage goes to stdout and is not an error
		cmd.SetOut(cmd.OutOrStdout())
		return cmd.Usage()
	}
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	org, err := cmd.Flags().GetString("org")
	if err != nil {
		return err
	}
	capacity, err := cmd.Flags().GetInt("capacity")
	if err != nil {
		return err
	}
	if capacity <= 0 {
		return fmt.Errorf("--capacity must be positive, got %d", capacity)
	}
	entry, err := cmd.Flags().GetString("entry")
	if err != nil {
		return err
	}
	emit, err := cmd.Flags().GetBool("emit")
	if err != nil {
		return err
	}

	req := driver.Request{
		Input:          args[0],
		Output:         args[1],
		Org:            org,
		Entry:          entry,
		Capacity:       capacity,
		MaxDiagnostics: out.maxDiagnostics,
		Timings:        out.timings,
	}
	if emit {
		req.Emit = cmd.OutOrStdout()
	}

	var res *driver.Result
	err = runInstrumented(cmd, func(cmd *cobra.Command) error {
		var cerr error
		res, cerr = driver.Compile(cmd.Context(), req)
		return cerr
	})
	if res == nil {
		return err
	}
	if rerr := out.report(cmd, res); rerr != nil {
		return rerr
	}
	if err != nil {
		return errReported
	}
	return nil
}
