// Package trace records what the fstump compiler is doing while it runs.
//
// Спаны открываются на границах единицы компиляции, проходов и функций;
// внутри функции (ScopeStmt) события пишутся только на уровне debug.
//
//	fstump build --trace=- --trace-level=detail
//
// Implementations:
//
//   - Nop: no-op when disabled
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: circular buffer dumped on failure
//   - MultiTracer: fan-out to several tracers
//
// Tracers travel through the pipeline inside a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "collect", trace.CurrentSpan(ctx))
//	defer span.End("")
package trace
