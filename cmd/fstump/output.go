package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fstump/internal/diag"
	"fstump/internal/diagfmt"
	"fstump/internal/driver"
)

type outputOptions struct {
	format         string
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	root := cmd.Root().PersistentFlags()
	var opts outputOptions
	colorValue, err := root.GetString("color")
	if err != nil {
		return opts, err
	}
	if opts.color, err = colorEnabled(colorValue, os.Stderr); err != nil {
		return opts, err
	}
	color.NoColor = !opts.color

	format, err := root.GetString("format")
	if err != nil {
		return opts, err
	}
	opts.format = strings.ToLower(strings.TrimSpace(format))
	switch opts.format {
	case "pretty", "json":
	default:
		return opts, fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
	if opts.quiet, err = root.GetBool("quiet"); err != nil {
		return opts, err
	}
	if opts.timings, err = root.GetBool("timings"); err != nil {
		return opts, err
	}
	if opts.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return opts, err
	}
	return opts, nil
}

func colorEnabled(value string, f *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "always":
		return true, nil
	case "off", "never":
		return false, nil
	case "", "auto":
		return os.Getenv("NO_COLOR") == "" && isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}

// report печатает диагностики одной компиляции. В pretty-режиме сводка и
// тайминги выводятся отдельно от ошибок; --quiet оставляет только ошибки и
// предупреждения.
func (o outputOptions) report(cmd *cobra.Command, res *driver.Result) error {
	bag := res.Bag
	bag.Sort()
	base := workingDir()
	if o.format == "json" {
		shown := bag
		if o.quiet {
			shown = filterBag(bag, func(d diag.Diagnostic) bool { return d.Severity.AtLeast(diag.SevWarning) })
		}
		return diagfmt.JSON(cmd.OutOrStdout(), shown, diagfmt.JSONOpts{
			PathMode:     diagfmt.PathModeAuto,
			BaseDir:      base,
			Max:          o.maxDiagnostics,
			IncludeNotes: true,
		})
	}

	problems := filterBag(bag, func(d diag.Diagnostic) bool { return d.Severity.AtLeast(diag.SevWarning) })
	if err := diagfmt.Pretty(cmd.ErrOrStderr(), problems, diagfmt.PrettyOpts{
		Color:     o.color,
		PathMode:  diagfmt.PathModeAuto,
		BaseDir:   base,
		ShowNotes: true,
	}); err != nil {
		return err
	}
	if o.quiet {
		return nil
	}
	for _, d := range bag.Items() {
		file := diagfmt.DisplayPath(d.Primary.File, diagfmt.PathModeAuto, base)
		switch d.Code {
		case diag.ObsSummary:
			if err := diagfmt.Summary(cmd.OutOrStdout(), file, res.Stats, o.color); err != nil {
				return err
			}
		case diag.ObsTimings:
			printUnitTimings(cmd.ErrOrStderr(), file, res.Timer)
		}
	}
	return nil
}

func filterBag(bag *diag.Bag, keep func(diag.Diagnostic) bool) *diag.Bag {
	out := diag.NewBag(int(bag.Cap()))
	for _, d := range bag.Items() {
		if keep(d) {
			out.Add(d)
		}
	}
	return out
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
