// Package buildpipeline builds every unit of a project manifest.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"fstump/internal/driver"
	"fstump/internal/project"
)

// BuildRequest configures a batch build.
type BuildRequest struct {
	Manifest       *project.Manifest
	Jobs           int
	MaxDiagnostics int
	Timings        bool
	// Force ignores the fingerprint cache.
	Force    bool
	Progress ProgressSink
}

// UnitResult is the outcome of one unit. Result is never nil.
type UnitResult struct {
	Unit   project.Unit
	Result *driver.Result
	Err    error
}

// BuildResult captures per-unit results and stage timings.
type BuildResult struct {
	Units   []UnitResult
	Timings *Timings
}

// Failed counts units that ended with an error.
func (r BuildResult) Failed() int {
	n := 0
	for _, u := range r.Units {
		if u.Err != nil {
			n++
		}
	}
	return n
}

// ErrUnitsFailed is returned when at least one unit did not compile.
var ErrUnitsFailed = errors.New("build failed")

// Build compiles every unit independently. A failing unit does not stop the
// others; only cancellation of ctx does.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	result := BuildResult{Timings: &Timings{}}
	if req == nil || req.Manifest == nil {
		return result, fmt.Errorf("missing build request")
	}
	m := req.Manifest

	var cache *driver.Cache
	if !req.Force {
		c, err := driver.OpenCache(m.CacheDir())
		if err != nil {
			return result, fmt.Errorf("open build cache: %w", err)
		}
		cache = c
	}

	for _, u := range m.Units {
		emit(req.Progress, Event{File: m.Rel(u.Input), Status: StatusQueued})
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	result.Units = make([]UnitResult, len(m.Units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(m.Units))))

	for i, u := range m.Units {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			result.Units[i] = buildUnit(gctx, req, m, u, cache, result.Timings)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	for i := range result.Units {
		if result.Units[i].Result == nil {
			// skipped after cancellation
			result.Units[i].Unit = m.Units[i]
		}
	}
	if result.Failed() > 0 {
		return result, ErrUnitsFailed
	}
	return result, nil
}

func buildUnit(ctx context.Context, req *BuildRequest, m *project.Manifest, u project.Unit, cache *driver.Cache, timings *Timings) UnitResult {
	file := m.Rel(u.Input)
	var elapsed time.Duration
	observer := func(ev driver.PhaseEvent) {
		stage := Stage(ev.Name)
		if ev.Status == driver.PhaseStart {
			emit(req.Progress, Event{File: file, Stage: stage, Status: StatusWorking})
			return
		}
		elapsed += ev.Elapsed
		timings.Add(stage, ev.Elapsed)
	}

	res, err := driver.Compile(ctx, driver.Request{
		Input:          u.Input,
		Output:         u.Output,
		Org:            m.Target.Org,
		Entry:          m.EntryFor(u),
		Capacity:       m.Target.Capacity,
		MaxDiagnostics: req.MaxDiagnostics,
		Timings:        req.Timings,
		Cache:          cache,
		Observer:       observer,
	})

	evt := Event{File: file, Stage: StageWrite, Status: StatusDone, Elapsed: elapsed}
	switch {
	case err != nil:
		evt.Status = StatusError
		evt.Err = err
	case res.Cached:
		evt.Status = StatusCached
	}
	emit(req.Progress, evt)
	return UnitResult{Unit: u, Result: res, Err: err}
}
