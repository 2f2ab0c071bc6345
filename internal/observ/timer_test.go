package observ

import (
	"errors"
	"strings"
	"testing"
)

func TestTimerMeasure(t *testing.T) {
	tm := NewTimer()
	if err := tm.Measure("load", func() error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	boom := errors.New("boom")
	if err := tm.Measure("codegen", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected measured error to pass through, got %v", err)
	}

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[1].Note != "failed" {
		t.Fatalf("expected failed note, got %q", report.Phases[1].Note)
	}
	summary := tm.Summary()
	for _, want := range []string{"load", "codegen", "total", "// failed"} {
		if !strings.Contains(summary, want) {
			t.Fatalf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestEmptyReport(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("expected zero report, got %+v", r)
	}
	NewTimer().End(3, "") // out of range is ignored
}
