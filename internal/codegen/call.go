package codegen

import (
	"fmt"

	"fstump/internal/asm"
	"fstump/internal/ast"
	"fstump/internal/diag"
	"fstump/internal/literal"
)

// VisitCall lowers a call. The caller frame of n words is followed by the
// spill area and then the callee frame, whose first words are the arguments:
//
//	sf+0 .. sf+n-1   caller locals
//	sf+n .. sf+n+4   r1..r4, lr
//	sf+n+5 ..        callee frame (arguments first)
func (g *funcGen) VisitCall(s *ast.Call) error {
	arity, ok := g.cc.Funcs[s.Func]
	if !ok {
		return diag.Errorf(diag.UnknownIdentifier, "invalid call to %s: unknown function", s.Func)
	}
	// Checked before any argument is resolved so a bad call emits no code.
	if len(s.Args) != arity {
		return diag.Errorf(diag.ArityMismatch, "invalid call to %s: expected %d arguments, got %d",
			s.Func, arity, len(s.Args))
	}
	if len(s.Args) > MaxImm+1 {
		return diag.Errorf(diag.UnsupportedConstant, "call to %s passes %d arguments; at most %d are supported",
			s.Func, len(s.Args), MaxImm+1)
	}
	n := g.frameSize()
	if n > MaxImm {
		return diag.Errorf(diag.UnsupportedConstant, "frame of %s has %d words; calls need at most %d",
			g.fn.Name, n, MaxImm)
	}
	var out asm.Reg
	hasOut := s.Out != ast.RegNone
	if hasOut {
		r, err := machineReg(s.Out)
		if err != nil {
			return err
		}
		out = r
	}

	w := g.w
	w.Comment("Calling function " + s.Func)
	w.Comment("Saving registers")
	w.AddImm(asm.SF, asm.SF, int64(n))
	for slot, r := range spillOrder {
		w.Store(r, asm.AtImm(asm.SF, int64(slot)))
	}
	w.AddImm(asm.SF, asm.SF, spillSlots)

	if len(s.Args) > 0 {
		w.Comment("Copying arguments")
	}
	m := &argMarshal{g: g, frame: n}
	for k, a := range s.Args {
		if err := a.Accept(m); err != nil {
			return err
		}
		w.Store(asm.G1, asm.AtImm(asm.SF, int64(k)))
	}

	w.Comment("Jumping")
	target := g.cc.Labels.Next()
	resume := g.cc.Labels.Next()
	retAddr := g.cc.Labels.Next()
	w.LoadLabel(asm.LR, retAddr)
	w.LoadLabel(asm.G1, target)
	w.MovReg(asm.PC, asm.G1)
	w.Label(target)
	w.DataLabel(funcLabel(s.Func))
	w.Label(retAddr)
	w.DataLabel(resume)

	w.Comment("Restoring registers")
	w.Label(resume)
	w.AddImm(asm.SF, asm.SF, -spillSlots)
	for slot, r := range spillOrder {
		if hasOut && r == out {
			continue
		}
		w.Load(r, asm.AtImm(asm.SF, int64(slot)))
	}
	w.AddImm(asm.SF, asm.SF, -int64(n))
	return nil
}

// argMarshal loads one argument into r1 while sf points at the callee frame.
type argMarshal struct {
	g     *funcGen
	frame int
}

func (m *argMarshal) VisitIdentArg(a *ast.IdentArg) error {
	g := m.g
	kind, i, err := g.resolve(a.Name)
	if err != nil {
		return err
	}
	if kind == varGlobal {
		g.globalAddr(asm.G1, a.Name)
		g.w.Load(asm.G1, asm.At(asm.G1))
		return nil
	}
	// step back over the spill area and the caller frame, then return
	g.w.AddImm(asm.SF, asm.SF, -spillSlots)
	if m.frame > 0 {
		g.w.AddImm(asm.SF, asm.SF, -int64(m.frame))
	}
	g.w.Load(asm.G1, asm.AtImm(asm.SF, int64(i)))
	if m.frame > 0 {
		g.w.AddImm(asm.SF, asm.SF, int64(m.frame))
	}
	g.w.AddImm(asm.SF, asm.SF, spillSlots)
	return nil
}

func (m *argMarshal) VisitLitArg(a *ast.LitArg) error {
	v, err := literal.Parse(a.Value)
	if err != nil {
		return err
	}
	return m.g.setImm(asm.G1, v)
}

// VisitRegArg reads the caller's value back from its spill slot, since r1 is
// clobbered by earlier arguments.
func (m *argMarshal) VisitRegArg(a *ast.RegArg) error {
	r, err := machineReg(a.Reg)
	if err != nil {
		return err
	}
	slot := -1
	for i, sr := range spillOrder {
		if sr == r {
			slot = i
		}
	}
	if slot < 0 {
		return unimplemented(fmt.Sprintf("passing %s as an argument", a.Reg))
	}
	m.g.w.Load(asm.G1, asm.AtImm(asm.SF, int64(slot-spillSlots)))
	return nil
}
