package codegen

import (
	"context"
	"fmt"
	"strconv"

	"fstump/internal/asm"
	"fstump/internal/ast"
	"fstump/internal/diag"
	"fstump/internal/trace"
)

// Output is the generated assembly and its size. On failure it still holds
// everything emitted before the error.
type Output struct {
	Text  string
	Stats asm.Stats
}

// Compile lowers prog to assembly text. The returned Output is never nil.
func Compile(ctx context.Context, prog *ast.Program, opts Options) (*Output, error) {
	cc := NewContext(opts)
	out := &Output{}
	err := compileInto(ctx, cc, prog)
	out.Text = cc.W.String()
	out.Stats = cc.Stats()
	return out, err
}

func compileInto(ctx context.Context, cc *Context, prog *ast.Program) error {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)
	opts := cc.Options()
	writePrologue(cc.W, opts)

	span := trace.Begin(tracer, trace.ScopePass, "collect", parent)
	err := collect(cc, prog)
	span.WithExtra("globals", strconv.Itoa(len(cc.Globals))).
		WithExtra("functions", strconv.Itoa(len(cc.Funcs))).End("")
	if err != nil {
		return err
	}
	if _, ok := cc.Funcs[opts.Entry]; !ok {
		diag.ReportWarning(opts.Reporter, diag.EntryNotFound, diag.Location{Func: opts.Entry},
			fmt.Sprintf("entry function %s is not defined; the bootstrap jumps to an undefined label", opts.Entry))
	}

	span = trace.Begin(tracer, trace.ScopePass, "generate", parent)
	err = generate(trace.WithSpan(ctx, span), cc, prog)
	span.WithExtra("words", strconv.Itoa(cc.W.Count())).End("")
	if err != nil {
		return err
	}

	writeEpilogue(cc.W)
	if stats := cc.Stats(); stats.Exceeded() {
		diag.ReportWarning(opts.Reporter, diag.CapacityExceeded, diag.Location{},
			fmt.Sprintf("program uses %d words of %d (%.1f%%)", stats.Instructions, stats.Capacity, stats.Utilization()))
	}
	return nil
}

// writePrologue sets lr to the halt loop and sf to the stack, then enters
// the program.
func writePrologue(w *asm.Writer, opts Options) {
	w.Comment("Autogenerated program using fstump")
	w.BlankLine()
	w.Comment("Setup and jump")
	w.Org(opts.Org)
	w.MovLabel(asm.LR, exitLabel)
	w.MovLabel(asm.SF, stackPtrLabel)
	w.Load(asm.SF, asm.At(asm.SF))
	w.Branch(asm.Always, funcLabel(opts.Entry))
	w.Label(stackPtrLabel)
	w.DataLabel(stackStartLabel)
	w.Comment("Loop based noop exit")
	w.Label(exitLabel)
	w.Nop()
	w.Branch(asm.Always, exitLabel)
}

// writeEpilogue marks the start of the stack, which grows upward past the
// end of the image.
func writeEpilogue(w *asm.Writer) {
	w.BlankLine()
	w.Comment("Stack")
	w.Label(stackStartLabel)
	w.Data(0)
}
