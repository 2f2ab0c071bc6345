// Package driver runs one compilation unit end to end: read the program,
// generate code, write the assembly.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"fstump/internal/asm"
	"fstump/internal/ast"
	"fstump/internal/codegen"
	"fstump/internal/diag"
	"fstump/internal/observ"
	"fstump/internal/progfile"
	"fstump/internal/project"
	"fstump/internal/trace"
)

// Request configures one compilation.
type Request struct {
	Input  string
	Output string

	Org      string
	Entry    string
	Capacity int

	MaxDiagnostics int
	// Emit, when set, also receives the generated text.
	Emit io.Writer
	// Timings adds an info diagnostic with the phase report.
	Timings bool
	// Cache skips the unit when its fingerprint matches. May be nil.
	Cache *Cache
	// Observer receives phase boundaries. May be nil.
	Observer PhaseObserver
}

func (r Request) options(reporter diag.Reporter) codegen.Options {
	return codegen.Options{Org: r.Org, Entry: r.Entry, Capacity: r.Capacity, Reporter: reporter}
}

// Result is what Compile leaves behind. Bag holds every diagnostic,
// including the fatal one.
type Result struct {
	Bag    *diag.Bag
	Stats  asm.Stats
	Timer  *observ.Timer
	Cached bool
}

// Compile loads req.Input, lowers it and writes req.Output. Once code
// generation has started the output is written even on failure, with
// whatever was generated. The returned error is the first fatal condition.
func Compile(ctx context.Context, req Request) (res *Result, err error) {
	res = &Result{Bag: diag.NewBag(req.MaxDiagnostics), Timer: observ.NewTimer()}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "compile", trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	defer func() {
		detail := "ok"
		if err != nil {
			detail = "failed"
			res.Bag.Add(diagnosticOf(err))
		}
		span.WithExtra("file", req.Input).End(detail)
		if req.Timings {
			appendTimingDiagnostic(res.Bag, req.Input, res.Timer)
		}
	}()

	var data []byte
	var prog *ast.Program
	err = phase(req.Observer, res.Timer, PhaseLoad, func() error {
		var lerr error
		data, prog, lerr = load(req.Input)
		return lerr
	})
	if err != nil {
		return res, err
	}

	fingerprint := project.Combine(project.DigestOf(data), project.DigestOf([]byte(req.fingerprintKey())))
	if entry, ok := req.Cache.Fresh(req.Output, fingerprint); ok {
		res.Cached = true
		res.Stats = asm.Stats{Instructions: entry.Words, Capacity: entry.Capacity}
		appendSummaryDiagnostic(res.Bag, req.Input, res.Stats)
		return res, nil
	}

	var out *codegen.Output
	genErr := phase(req.Observer, res.Timer, PhaseCodegen, func() error {
		var cerr error
		out, cerr = codegen.Compile(ctx, prog, req.options(diag.BagReporter{Bag: res.Bag}))
		return cerr
	})
	res.Stats = out.Stats

	writeErr := phase(req.Observer, res.Timer, PhaseWrite, func() error {
		return writeOutput(req, out.Text)
	})
	if genErr != nil {
		return res, diag.Locate(genErr, diag.Location{File: req.Input})
	}
	if writeErr != nil {
		return res, writeErr
	}

	appendSummaryDiagnostic(res.Bag, req.Input, res.Stats)
	if err := req.Cache.Put(&CacheEntry{
		Output:      req.Output,
		Fingerprint: fingerprint,
		Words:       res.Stats.Instructions,
		Capacity:    res.Stats.Capacity,
	}); err != nil {
		trace.Point(tracer, trace.ScopeDriver, "cache", err.Error(), span.ID())
	}
	return res, nil
}

func load(path string) ([]byte, *ast.Program, error) {
	format, err := progfile.FormatFor(path)
	if err != nil {
		return nil, nil, diag.Locate(err, diag.Location{File: path})
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, diag.Errorf(diag.IOError, "read %s: %v", path, err).At(diag.Location{File: path})
	}
	f, err := progfile.Decode(data, format)
	if err != nil {
		return nil, nil, diag.Locate(err, diag.Location{File: path})
	}
	prog, err := f.Program()
	if err != nil {
		return nil, nil, diag.Locate(err, diag.Location{File: path})
	}
	return data, prog, nil
}

func (r Request) fingerprintKey() string {
	return fmt.Sprintf("org=%s entry=%s capacity=%d", r.Org, r.Entry, r.Capacity)
}

func writeOutput(req Request, text string) error {
	if req.Emit != nil {
		if _, err := io.WriteString(req.Emit, text); err != nil {
			return diag.Errorf(diag.IOError, "emit: %v", err)
		}
	}
	if req.Output == "" {
		return nil
	}
	if dir := filepath.Dir(req.Output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return diag.Errorf(diag.IOError, "create %s: %v", dir, err).At(diag.Location{File: req.Output})
		}
	}
	if err := os.WriteFile(req.Output, []byte(text), 0o644); err != nil {
		return diag.Errorf(diag.IOError, "write %s: %v", req.Output, err).At(diag.Location{File: req.Output})
	}
	return nil
}

func phase(obs PhaseObserver, timer *observ.Timer, name string, fn func() error) error {
	obs.emit(PhaseEvent{Name: name, Status: PhaseStart})
	start := time.Now()
	err := timer.Measure(name, fn)
	obs.emit(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start), Err: err})
	return err
}

// diagnosticOf turns a fatal error into a diagnostic; errors without a code
// are reported as I/O failures.
func diagnosticOf(err error) diag.Diagnostic {
	var de *diag.Error
	if errors.As(err, &de) {
		return de.Diagnostic()
	}
	return diag.NewError(diag.IOError, diag.Location{}, err.Error())
}
