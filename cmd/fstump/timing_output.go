package main

import (
	"fmt"
	"io"
	"time"

	"fstump/internal/buildpipeline"
	"fstump/internal/observ"
)

func printUnitTimings(out io.Writer, file string, timer *observ.Timer) {
	if out == nil || timer == nil {
		return
	}
	if file != "" {
		fmt.Fprintf(out, "%s ", file)
	}
	fmt.Fprint(out, timer.Summary())
}

// printStageTimings prints stage durations summed over all units.
func printStageTimings(out io.Writer, timings *buildpipeline.Timings) {
	if out == nil || timings == nil {
		return
	}
	labels := map[buildpipeline.Stage]string{
		buildpipeline.StageLoad:    "loaded",
		buildpipeline.StageCodegen: "generated",
		buildpipeline.StageWrite:   "written",
	}
	for _, stage := range buildpipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", labels[stage], toMillis(timings.Duration(stage))); err != nil {
			panic(err)
		}
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
