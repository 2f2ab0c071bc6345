package codegen

import (
	"context"
	"fmt"
	"strconv"

	"fstump/internal/asm"
	"fstump/internal/ast"
	"fstump/internal/diag"
	"fstump/internal/literal"
	"fstump/internal/trace"
)

// generator is the second pass: it lowers every function in declaration order.
type generator struct {
	ctx context.Context
	cc  *Context
}

func generate(ctx context.Context, cc *Context, prog *ast.Program) error {
	g := &generator{ctx: ctx, cc: cc}
	for _, el := range prog.Elements {
		if err := el.AcceptElement(g); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) VisitGlobal(ast.Global) error { return nil }

func (g *generator) VisitFunction(f *ast.Function) error {
	tracer := trace.FromContext(g.ctx)
	span := trace.Begin(tracer, trace.ScopeFunction, "func:"+f.Name, trace.CurrentSpan(g.ctx))
	start := g.cc.W.Count()
	defer func() {
		span.WithExtra("words", strconv.Itoa(g.cc.W.Count()-start)).End("")
	}()

	fg := newFuncGen(g.cc, f)
	w := g.cc.W
	w.BlankLine()
	w.BlankLine()
	w.Comment(fmt.Sprintf("--- Function %s Start ---", f.Name))
	w.Label(funcLabel(f.Name))

	for i, st := range f.Body {
		if !fg.afterLocal {
			w.BlankLine()
		}
		fg.afterLocal = false
		if tracer.Level().ShouldEmit(trace.ScopeStmt) {
			trace.Point(tracer, trace.ScopeStmt, fmt.Sprintf("stmt#%d", i+1), fmt.Sprintf("%T", st), span.ID())
		}
		if err := st.Accept(fg); err != nil {
			return diag.Locate(err, diag.Location{Func: f.Name, Stmt: i + 1})
		}
	}

	w.Comment("Jumping back")
	w.MovReg(asm.PC, asm.LR)
	w.Comment(fmt.Sprintf("--- Function %s End ---", f.Name))
	return nil
}

// funcGen lowers the statements of one function.
type funcGen struct {
	cc *Context
	w  *asm.Writer
	fn *ast.Function

	// locals lists parameters then local declarations; a name's frame index
	// is its first position.
	locals     []string
	index      map[string]int
	afterLocal bool
}

func newFuncGen(cc *Context, f *ast.Function) *funcGen {
	fg := &funcGen{cc: cc, w: cc.W, fn: f, index: make(map[string]int)}
	for _, p := range f.Params {
		fg.declare(p)
	}
	for _, st := range f.Body {
		if l, ok := st.(*ast.Local); ok {
			fg.declare(l.Name)
		}
	}
	return fg
}

func (g *funcGen) declare(name string) {
	if _, ok := g.index[name]; !ok {
		g.index[name] = len(g.locals)
	}
	g.locals = append(g.locals, name)
}

// frameSize is the number of frame words a call must skip.
func (g *funcGen) frameSize() int { return len(g.locals) }

func machineReg(r ast.Register) (asm.Reg, error) {
	switch r {
	case ast.RegZero:
		return asm.Zero, nil
	case ast.RegR1:
		return asm.G1, nil
	case ast.RegR2:
		return asm.G2, nil
	case ast.RegR3:
		return asm.G3, nil
	case ast.RegR4:
		return asm.G4, nil
	case ast.RegLR:
		return asm.LR, nil
	case ast.RegSF:
		return asm.SF, nil
	case ast.RegPC:
		return asm.PC, nil
	default:
		return 0, diag.Errorf(diag.BadInput, "invalid register %s", r)
	}
}

func machineRegs(rs ...ast.Register) ([]asm.Reg, error) {
	out := make([]asm.Reg, len(rs))
	for i, r := range rs {
		m, err := machineReg(r)
		if err != nil {
			return nil, err
		}
		out[i] = m
	}
	return out, nil
}

// smallImm parses lit and checks it against the immediate field.
func smallImm(lit literal.Literal) (int64, error) {
	v, err := literal.Parse(lit)
	if err != nil {
		return 0, err
	}
	if v < MinImm || v > MaxImm {
		return 0, diag.Errorf(diag.UnsupportedConstant,
			"immediate %s is outside [%d, %d]; only small immediates are supported here", lit.Text, MinImm, MaxImm)
	}
	return v, nil
}

func unimplemented(what string) error {
	return diag.Errorf(diag.UnimplementedFeature, "%s is not implemented", what)
}

func (g *funcGen) VisitAddAssignImm(s *ast.AddAssignImm) error {
	dest, err := machineReg(s.Dest)
	if err != nil {
		return err
	}
	v, err := smallImm(s.Value)
	if err != nil {
		return err
	}
	g.w.Comment(fmt.Sprintf("Adding %d to %s", v, dest))
	g.w.AddImm(dest, dest, v)
	return nil
}

func (g *funcGen) VisitAddAssignReg(s *ast.AddAssignReg) error {
	r, err := machineRegs(s.Dest, s.Src)
	if err != nil {
		return err
	}
	g.w.Comment(fmt.Sprintf("Adding %s to %s", r[1], r[0]))
	g.w.AddReg(r[0], r[0], r[1])
	return nil
}

func (g *funcGen) VisitAddImm(*ast.AddImm) error { return unimplemented("three-operand add") }

func (g *funcGen) VisitAddReg(*ast.AddReg) error { return unimplemented("three-operand add") }

func (g *funcGen) VisitAndImm(s *ast.AndImm) error {
	r, err := machineRegs(s.Dest, s.Left)
	if err != nil {
		return err
	}
	v, err := smallImm(s.Value)
	if err != nil {
		return err
	}
	g.w.Comment(fmt.Sprintf("Anding %s with %d to %s", r[1], v, r[0]))
	g.w.AndImm(r[0], r[1], v)
	return nil
}

func (g *funcGen) VisitAndReg(s *ast.AndReg) error {
	r, err := machineRegs(s.Dest, s.Left, s.Right)
	if err != nil {
		return err
	}
	g.w.Comment(fmt.Sprintf("Anding %s with %s to %s", r[1], r[2], r[0]))
	g.w.AndReg(r[0], r[1], r[2])
	return nil
}

func (g *funcGen) VisitCmpImm(s *ast.CmpImm) error {
	left, err := machineReg(s.Left)
	if err != nil {
		return err
	}
	v, err := smallImm(s.Value)
	if err != nil {
		return err
	}
	g.w.Comment(fmt.Sprintf("Comparing %s with %d", left, v))
	g.w.CmpImm(left, v)
	return nil
}

func (g *funcGen) VisitCmpReg(s *ast.CmpReg) error {
	r, err := machineRegs(s.Left, s.Right)
	if err != nil {
		return err
	}
	g.w.Comment(fmt.Sprintf("Comparing %s with %s", r[0], r[1]))
	g.w.CmpReg(r[0], r[1], asm.ShiftNone)
	return nil
}

func (g *funcGen) VisitTestImm(*ast.TestImm) error { return unimplemented("test") }

func (g *funcGen) VisitTestReg(*ast.TestReg) error { return unimplemented("test") }

func (g *funcGen) VisitGoto(s *ast.Goto) error {
	g.w.Branch(asm.Always, userLabel(g.fn.Name, s.Label))
	return nil
}

func (g *funcGen) VisitGotoCond(s *ast.GotoCond) error {
	if s.Cond == "" {
		return diag.Errorf(diag.BadInput, "conditional goto %s has no condition", s.Label)
	}
	g.w.Branch(asm.Cond(s.Cond), userLabel(g.fn.Name, s.Label))
	return nil
}

func (g *funcGen) VisitLabel(s *ast.Label) error {
	g.w.Comment("User label " + s.Name)
	g.w.Label(userLabel(g.fn.Name, s.Name))
	g.w.Nop()
	return nil
}

func (g *funcGen) VisitLoad(s *ast.Load) error {
	dest, err := machineReg(s.Dest)
	if err != nil {
		return err
	}
	return g.loadVar(dest, s.Name)
}

func (g *funcGen) VisitLoadAddr(s *ast.LoadAddr) error {
	dest, err := machineReg(s.Dest)
	if err != nil {
		return err
	}
	return g.loadVarAddr(dest, s.Name)
}

func (g *funcGen) VisitLoadReg(s *ast.LoadReg) error {
	r, err := machineRegs(s.Dest, s.Src)
	if err != nil {
		return err
	}
	g.w.Comment(fmt.Sprintf("Loading address %s to %s", r[1], r[0]))
	g.w.Load(r[0], asm.At(r[1]))
	return nil
}

func (g *funcGen) VisitLoadOffset(s *ast.LoadOffset) error {
	r, err := machineRegs(s.Dest, s.Base, s.Offset)
	if err != nil {
		return err
	}
	g.w.Comment(fmt.Sprintf("Loading from %s offset by %s to %s", r[1], r[2], r[0]))
	g.w.Load(r[0], asm.AtReg(r[1], r[2]))
	return nil
}

func (g *funcGen) VisitStore(s *ast.Store) error {
	src, err := machineReg(s.Src)
	if err != nil {
		return err
	}
	return g.storeVar(s.Name, src)
}

func (g *funcGen) VisitStoreReg(s *ast.StoreReg) error {
	r, err := machineRegs(s.Addr, s.Src)
	if err != nil {
		return err
	}
	g.w.Comment(fmt.Sprintf("Storing %s to addr in %s", r[1], r[0]))
	g.w.Store(r[1], asm.At(r[0]))
	return nil
}

func (g *funcGen) VisitStoreOffset(s *ast.StoreOffset) error {
	r, err := machineRegs(s.Base, s.Offset, s.Value)
	if err != nil {
		return err
	}
	g.w.Comment(fmt.Sprintf("Storing %s to %s offset by %s", r[2], r[0], r[1]))
	g.w.Store(r[2], asm.AtReg(r[0], r[1]))
	return nil
}

func (g *funcGen) VisitSet(s *ast.Set) error {
	dest, err := machineReg(s.Dest)
	if err != nil {
		return err
	}
	v, err := literal.Parse(s.Value)
	if err != nil {
		return err
	}
	g.w.Comment(fmt.Sprintf("Setting %s to %d", dest, v))
	return g.setImm(dest, v)
}

// VisitLShift doubles the value k times; a shift by zero is a move.
func (g *funcGen) VisitLShift(s *ast.LShift) error {
	r, err := machineRegs(s.Dest, s.Src)
	if err != nil {
		return err
	}
	dest, src := r[0], r[1]
	k, err := literal.Parse(s.Amount)
	if err != nil {
		return err
	}
	if k < 0 || k > MaxImm {
		return diag.Errorf(diag.UnsupportedConstant, "shift amount %s is outside [0, %d]", s.Amount.Text, MaxImm)
	}
	g.w.Comment(fmt.Sprintf("Left shifting %s by %d into %s", src, k, dest))
	if k == 0 {
		g.w.MovReg(dest, src)
		return nil
	}
	g.w.AddReg(dest, src, src)
	for range k - 1 {
		g.w.AddReg(dest, dest, dest)
	}
	return nil
}

func (g *funcGen) VisitNop(*ast.Nop) error {
	g.w.Nop()
	return nil
}

func (g *funcGen) VisitLocal(*ast.Local) error {
	g.afterLocal = true
	return nil
}

func (g *funcGen) VisitReturn(*ast.Return) error { return unimplemented("return") }
