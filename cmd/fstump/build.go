package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"fstump/internal/buildpipeline"
	"fstump/internal/project"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] [dir]",
		Short: "Build every unit of an fstump project",
		Long:  "Build every unit listed in fstump.toml. The manifest is looked up from dir (default: current directory) upwards.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  buildExecution,
	}
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Int("jobs", 0, "max parallel units (0=auto)")
	cmd.Flags().Bool("force", false, "rebuild units even when their output is up to date")
	return cmd
}

func buildExecution(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	uiModeValue, err := uiModeFlag(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	manifestPath, found, err := project.FindManifest(dir)
	if err != nil {
		return err
	}
	if !found {
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			abs = dir
		}
		return fmt.Errorf("no %s found in %s or its parents", project.ManifestName, abs)
	}
	manifest, err := project.Load(manifestPath)
	if err != nil {
		return err
	}

	req := &buildpipeline.BuildRequest{
		Manifest:       manifest,
		Jobs:           jobs,
		MaxDiagnostics: out.maxDiagnostics,
		Timings:        out.timings,
		Force:          force,
	}

	var result buildpipeline.BuildResult
	buildErr := runInstrumented(cmd, func(cmd *cobra.Command) error {
		var berr error
		if uiModeValue.useTUI(cmd, out.quiet) {
			files := make([]string, 0, len(manifest.Units))
			for _, u := range manifest.Units {
				files = append(files, manifest.Rel(u.Input))
			}
			result, berr = runBuildWithUI(cmd.Context(), "fstump build", files, req)
		} else {
			result, berr = buildpipeline.Build(cmd.Context(), req)
		}
		return berr
	})
	if buildErr != nil && !errors.Is(buildErr, buildpipeline.ErrUnitsFailed) && len(result.Units) == 0 {
		return buildErr
	}

	for _, unit := range result.Units {
		if unit.Result == nil {
			continue
		}
		if err := out.report(cmd, unit.Result); err != nil {
			return err
		}
	}
	if out.timings && !out.quiet {
		printStageTimings(cmd.ErrOrStderr(), result.Timings)
	}

	switch {
	case errors.Is(buildErr, buildpipeline.ErrUnitsFailed):
		if !out.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d units failed\n", result.Failed(), len(result.Units))
		}
		return errReported
	case buildErr != nil:
		return buildErr
	}
	return nil
}
