package codegen

import (
	"fmt"

	"fstump/internal/asm"
	"fstump/internal/diag"
	"fstump/internal/literal"
)

type varKind uint8

const (
	varGlobal varKind = iota + 1
	varLocal
)

// resolve finds name among the globals first, then the frame.
func (g *funcGen) resolve(name string) (varKind, int, error) {
	if g.cc.isGlobal(name) {
		return varGlobal, 0, nil
	}
	if i, ok := g.index[name]; ok {
		if i > MaxImm {
			return 0, 0, diag.Errorf(diag.UnsupportedConstant,
				"local %s sits at frame index %d; at most %d locals and parameters are addressable", name, i, MaxImm+1)
		}
		return varLocal, i, nil
	}
	return 0, 0, diag.Errorf(diag.UnknownIdentifier, "unknown variable %s", name)
}

// embed branches over an inline data word and loads it into dest:
//
//	bal L1
//	L2 <word>
//	L1 ld dest, L2
func (g *funcGen) embed(dest asm.Reg, word func()) {
	over := g.cc.Labels.Next()
	g.w.Branch(asm.Always, over)
	slot := g.cc.Labels.Next()
	g.w.Label(slot)
	word()
	g.w.Label(over)
	g.w.LoadLabel(dest, slot)
}

// setImm materialises v in dest, through an inline word when it does not fit
// the immediate field.
func (g *funcGen) setImm(dest asm.Reg, v int64) error {
	if v >= MinImm && v <= MaxImm {
		g.w.MovImm(dest, v)
		return nil
	}
	if _, err := literal.Word(v); err != nil {
		return err
	}
	g.embed(dest, func() { g.w.Data(v) })
	return nil
}

func (g *funcGen) globalAddr(dest asm.Reg, name string) {
	g.embed(dest, func() { g.w.DataLabel(globalLabel(name)) })
}

func (g *funcGen) loadVar(dest asm.Reg, name string) error {
	kind, i, err := g.resolve(name)
	if err != nil {
		return err
	}
	switch kind {
	case varGlobal:
		g.w.Comment(fmt.Sprintf("Loading global %s into %s", name, dest))
		g.globalAddr(dest, name)
		g.w.Load(dest, asm.At(dest))
	case varLocal:
		g.w.Comment(fmt.Sprintf("Loading local %s into %s", name, dest))
		g.w.Load(dest, asm.AtImm(asm.SF, int64(i)))
	}
	return nil
}

func (g *funcGen) loadVarAddr(dest asm.Reg, name string) error {
	kind, i, err := g.resolve(name)
	if err != nil {
		return err
	}
	switch kind {
	case varGlobal:
		g.w.Comment(fmt.Sprintf("Loading address of global %s into %s", name, dest))
		g.globalAddr(dest, name)
	case varLocal:
		g.w.Comment(fmt.Sprintf("Loading address of local %s into %s", name, dest))
		g.w.AddImm(dest, asm.SF, int64(i))
	}
	return nil
}

// storeVar writes src into a variable. A global store borrows a scratch
// register (lr, or r1 when the value itself is in lr) and parks its old
// value in an inline word:
//
//	bal L1
//	L2 DEFW GLOBAL_x
//	L3 DEFW 0
//	L1 st s, L3
//	ld s, L2
//	st src, [s]
//	ld s, L3
func (g *funcGen) storeVar(name string, src asm.Reg) error {
	kind, i, err := g.resolve(name)
	if err != nil {
		return err
	}
	if kind == varLocal {
		g.w.Comment(fmt.Sprintf("Storing %s into local %s", src, name))
		g.w.Store(src, asm.AtImm(asm.SF, int64(i)))
		return nil
	}

	g.w.Comment(fmt.Sprintf("Storing %s to global %s", src, name))
	scratch := asm.LR
	if src == asm.LR {
		scratch = asm.G1
	}
	over := g.cc.Labels.Next()
	g.w.Branch(asm.Always, over)
	addr := g.cc.Labels.Next()
	g.w.Label(addr)
	g.w.DataLabel(globalLabel(name))
	saved := g.cc.Labels.Next()
	g.w.Label(saved)
	g.w.Data(0)
	g.w.Label(over)
	g.w.StoreLabel(scratch, saved)
	g.w.LoadLabel(scratch, addr)
	g.w.Store(src, asm.At(scratch))
	g.w.LoadLabel(scratch, saved)
	return nil
}
