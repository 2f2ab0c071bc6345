package codegen

import (
	"fstump/internal/asm"
	"fstump/internal/diag"
)

// Immediate operand range of the target.
const (
	MinImm = -16
	MaxImm = 15
)

// spillSlots is how many registers a call saves: r1..r4 and lr.
const spillSlots = 5

// spillOrder lists the saved registers by slot.
var spillOrder = [spillSlots]asm.Reg{asm.G1, asm.G2, asm.G3, asm.G4, asm.LR}

// Options tune a compilation.
type Options struct {
	// Org is the origin operand of the bootstrap, "0" when empty.
	Org string
	// Entry is the function the bootstrap jumps to, "main" when empty.
	Entry string
	// Capacity is the instruction memory in words; asm.DefaultCapacity when 0.
	Capacity int
	// Reporter receives warnings. May be nil.
	Reporter diag.Reporter
}

func (o Options) withDefaults() Options {
	if o.Org == "" {
		o.Org = "0"
	}
	if o.Entry == "" {
		o.Entry = "main"
	}
	if o.Capacity <= 0 {
		o.Capacity = asm.DefaultCapacity
	}
	if o.Reporter == nil {
		o.Reporter = diag.NopReporter{}
	}
	return o
}

// Context is the state of one compilation, threaded through both passes.
type Context struct {
	W      *asm.Writer
	Labels Labels

	// Globals holds every declared global name; filled by the collect pass.
	Globals map[string]struct{}
	// Funcs maps a function name to its arity; filled by the collect pass.
	Funcs map[string]int

	opts Options
}

// NewContext prepares an empty compilation.
func NewContext(opts Options) *Context {
	return &Context{
		W:       asm.NewWriter(),
		Globals: make(map[string]struct{}),
		Funcs:   make(map[string]int),
		opts:    opts.withDefaults(),
	}
}

// Options returns the effective options.
func (c *Context) Options() Options { return c.opts }

// Stats reports the emitted size against the capacity.
func (c *Context) Stats() asm.Stats {
	return asm.Stats{Instructions: c.W.Count(), Capacity: c.opts.Capacity}
}

func (c *Context) isGlobal(name string) bool {
	_, ok := c.Globals[name]
	return ok
}
