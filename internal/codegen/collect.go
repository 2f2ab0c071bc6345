package codegen

import (
	"golang.org/x/text/unicode/norm"

	"fstump/internal/ast"
	"fstump/internal/diag"
	"fstump/internal/literal"
)

// collector is the first pass: it registers every function with its arity
// and emits every global's data block.
type collector struct {
	cc *Context
}

func collect(cc *Context, prog *ast.Program) error {
	c := &collector{cc: cc}
	for _, el := range prog.Elements {
		if err := el.AcceptElement(c); err != nil {
			return err
		}
	}
	return nil
}

func (c *collector) VisitFunction(f *ast.Function) error {
	if _, dup := c.cc.Funcs[f.Name]; dup {
		return diag.Errorf(diag.DuplicateDefinition, "function %s is defined more than once", f.Name).
			At(diag.Location{Func: f.Name})
	}
	c.cc.Funcs[f.Name] = f.Arity()
	return nil
}

func (c *collector) VisitGlobal(g ast.Global) error {
	name := g.GlobalName()
	if c.cc.isGlobal(name) {
		return diag.Errorf(diag.DuplicateDefinition, "global %s is defined more than once", name)
	}
	c.cc.Globals[name] = struct{}{}

	w := c.cc.W
	w.BlankLine()
	w.Comment("Global " + name)
	w.Label(globalLabel(name))
	if err := g.Accept(c); err != nil {
		return diag.Locate(err, diag.Location{Func: name})
	}
	return nil
}

func (c *collector) VisitArray(g *ast.ArrayGlobal) error {
	for _, lit := range g.Values {
		v, err := wordOf(lit)
		if err != nil {
			return err
		}
		c.cc.W.Data(v)
	}
	return nil
}

func (c *collector) VisitBlock(g *ast.BlockGlobal) error {
	size, err := wordOf(g.Size)
	if err != nil {
		return err
	}
	if size < 0 {
		return diag.Errorf(diag.UnsupportedConstant, "block %s has negative size %d", g.Name, size)
	}
	for range size {
		c.cc.W.Data(0)
	}
	return nil
}

func (c *collector) VisitLiteral(g *ast.LiteralGlobal) error {
	v, err := wordOf(g.Value)
	if err != nil {
		return err
	}
	c.cc.W.Data(v)
	return nil
}

// VisitString emits one word per code point of the NFC form, then a zero.
func (c *collector) VisitString(g *ast.StringGlobal) error {
	text := norm.NFC.String(g.Text)
	for _, r := range text {
		v, err := literal.Word(int64(r))
		if err != nil {
			return diag.Errorf(diag.UnsupportedConstant, "character %q of string %s does not fit a word", r, g.Name)
		}
		c.cc.W.Data(v)
	}
	c.cc.W.Data(0)
	return nil
}

// wordOf parses lit and checks that it fits a data word.
func wordOf(lit literal.Literal) (int64, error) {
	v, err := literal.Parse(lit)
	if err != nil {
		return 0, err
	}
	return literal.Word(v)
}
