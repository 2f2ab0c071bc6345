package driver

import (
	"encoding/json"
	"fmt"

	"fstump/internal/asm"
	"fstump/internal/diag"
	"fstump/internal/observ"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// appendTimingDiagnostic adds the timer report as an info diagnostic whose
// note carries the JSON form.
func appendTimingDiagnostic(bag *diag.Bag, path string, timer *observ.Timer) {
	if bag == nil || timer == nil {
		return
	}
	report := timer.Report()
	payload := timingPayload{Kind: "unit", Path: path, TotalMS: report.TotalMS, Phases: report.Phases}
	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	d := diag.New(diag.ObsTimings.Severity(), diag.ObsTimings, diag.Location{File: path}, msg)
	d.Notes = []diag.Note{{Msg: string(data)}}
	bag.Add(d)
}

// SummaryLine renders the instruction count against the capacity.
func SummaryLine(stats asm.Stats) string {
	return fmt.Sprintf("%d instructions (%.1f%% of %d)", stats.Instructions, stats.Utilization(), stats.Capacity)
}

func appendSummaryDiagnostic(bag *diag.Bag, path string, stats asm.Stats) {
	if bag == nil {
		return
	}
	bag.Add(diag.New(diag.ObsSummary.Severity(), diag.ObsSummary, diag.Location{File: path}, SummaryLine(stats)))
}
