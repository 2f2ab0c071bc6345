package progfile

import (
	"fmt"

	"fstump/internal/ast"
	"fstump/internal/diag"
	"fstump/internal/literal"
)

// Program converts the document into the closed AST. Every problem is a
// BadInput error located at the offending element and statement.
func (f *File) Program() (*ast.Program, error) {
	prog := &ast.Program{Elements: make([]ast.Element, 0, len(f.Elements))}
	for i := range f.Elements {
		el := &f.Elements[i]
		if el.Name == "" {
			return nil, badInput(diag.Location{}, "element %d has no name", i+1)
		}
		if !ast.ValidName(el.Name) {
			return nil, badInput(diag.Location{}, "element name %q is not a valid identifier", el.Name)
		}
		node, err := el.node()
		if err != nil {
			return nil, diag.Locate(err, diag.Location{Func: el.Name})
		}
		prog.Elements = append(prog.Elements, node)
	}
	return prog, nil
}

func badInput(where diag.Location, format string, args ...any) error {
	return diag.Errorf(diag.BadInput, format, args...).At(where)
}

func (el *Element) node() (ast.Element, error) {
	switch el.Kind {
	case "literal":
		v, err := el.Value.require("value")
		if err != nil {
			return nil, err
		}
		return &ast.LiteralGlobal{Name: el.Name, Value: v}, nil
	case "array":
		vals := make([]literal.Literal, len(el.Values))
		for i, v := range el.Values {
			lit, err := v.require(fmt.Sprintf("values[%d]", i))
			if err != nil {
				return nil, err
			}
			vals[i] = lit
		}
		return &ast.ArrayGlobal{Name: el.Name, Values: vals}, nil
	case "block":
		size, err := el.Size.require("size")
		if err != nil {
			return nil, err
		}
		return &ast.BlockGlobal{Name: el.Name, Size: size}, nil
	case "string":
		return &ast.StringGlobal{Name: el.Name, Text: el.Text}, nil
	case "function":
		for _, p := range el.Params {
			if !ast.ValidName(p) {
				return nil, badInput(diag.Location{}, "parameter %q is not a valid identifier", p)
			}
		}
		fn := &ast.Function{Name: el.Name, Params: el.Params, Body: make([]ast.Stmt, 0, len(el.Body))}
		for i := range el.Body {
			st, err := el.Body[i].node()
			if err != nil {
				return nil, diag.Locate(err, diag.Location{Stmt: i + 1})
			}
			fn.Body = append(fn.Body, st)
		}
		return fn, nil
	case "":
		return nil, badInput(diag.Location{}, "element %s has no kind", el.Name)
	default:
		return nil, badInput(diag.Location{}, "element %s has unknown kind %q (expected array|block|literal|string|function)", el.Name, el.Kind)
	}
}

func (l Lit) require(field string) (literal.Literal, error) {
	if l == "" {
		return literal.Literal{}, badInput(diag.Location{}, "missing %s", field)
	}
	return literal.FromToken(string(l)), nil
}

// regReader reads statement fields and keeps the first problem.
type regReader struct {
	err error
}

func (r *regReader) reg(field, name string) ast.Register {
	if r.err != nil {
		return ast.RegNone
	}
	if name == "" {
		r.err = badInput(diag.Location{}, "missing %s", field)
		return ast.RegNone
	}
	reg, err := ast.ParseRegister(name)
	if err != nil {
		r.err = badInput(diag.Location{}, "%s: %v", field, err)
	}
	return reg
}

func (r *regReader) lit(field string, l Lit) literal.Literal {
	if r.err != nil {
		return literal.Literal{}
	}
	v, err := l.require(field)
	if err != nil {
		r.err = err
	}
	return v
}

func (r *regReader) ident(field, name string) string {
	if r.err != nil {
		return name
	}
	switch {
	case name == "":
		r.err = badInput(diag.Location{}, "missing %s", field)
	case !ast.ValidName(name):
		r.err = badInput(diag.Location{}, "%s %q is not a valid identifier", field, name)
	}
	return name
}

func (s *Stmt) node() (ast.Stmt, error) {
	var r regReader
	var st ast.Stmt
	switch s.Op {
	case "add":
		switch {
		case s.Left != "" && s.Right != "":
			st = &ast.AddReg{Dest: r.reg("dest", s.Dest), Left: r.reg("left", s.Left), Right: r.reg("right", s.Right)}
		case s.Left != "":
			st = &ast.AddImm{Dest: r.reg("dest", s.Dest), Left: r.reg("left", s.Left), Value: r.lit("value", s.Value)}
		case s.Src != "":
			st = &ast.AddAssignReg{Dest: r.reg("dest", s.Dest), Src: r.reg("src", s.Src)}
		default:
			st = &ast.AddAssignImm{Dest: r.reg("dest", s.Dest), Value: r.lit("value", s.Value)}
		}
	case "and":
		if s.Right != "" {
			st = &ast.AndReg{Dest: r.reg("dest", s.Dest), Left: r.reg("left", s.Left), Right: r.reg("right", s.Right)}
		} else {
			st = &ast.AndImm{Dest: r.reg("dest", s.Dest), Left: r.reg("left", s.Left), Value: r.lit("value", s.Value)}
		}
	case "cmp":
		if s.Right != "" {
			st = &ast.CmpReg{Left: r.reg("left", s.Left), Right: r.reg("right", s.Right)}
		} else {
			st = &ast.CmpImm{Left: r.reg("left", s.Left), Value: r.lit("value", s.Value)}
		}
	case "test":
		if s.Right != "" {
			st = &ast.TestReg{Left: r.reg("left", s.Left), Right: r.reg("right", s.Right)}
		} else {
			st = &ast.TestImm{Left: r.reg("left", s.Left), Value: r.lit("value", s.Value)}
		}
	case "goto":
		label := r.ident("label", s.Label)
		if s.Cond != "" {
			st = &ast.GotoCond{Cond: s.Cond, Label: label}
		} else {
			st = &ast.Goto{Label: label}
		}
	case "label":
		st = &ast.Label{Name: r.ident("name", s.Name)}
	case "load":
		switch {
		case s.Name != "":
			st = &ast.Load{Dest: r.reg("dest", s.Dest), Name: r.ident("name", s.Name)}
		case s.Base != "":
			st = &ast.LoadOffset{Dest: r.reg("dest", s.Dest), Base: r.reg("base", s.Base), Offset: r.reg("offset", s.Offset)}
		default:
			st = &ast.LoadReg{Dest: r.reg("dest", s.Dest), Src: r.reg("src", s.Src)}
		}
	case "loadaddr":
		st = &ast.LoadAddr{Dest: r.reg("dest", s.Dest), Name: r.ident("name", s.Name)}
	case "store":
		switch {
		case s.Name != "":
			st = &ast.Store{Name: r.ident("name", s.Name), Src: r.reg("src", s.Src)}
		case s.Base != "":
			st = &ast.StoreOffset{Base: r.reg("base", s.Base), Offset: r.reg("offset", s.Offset), Value: r.reg("src", s.Src)}
		default:
			st = &ast.StoreReg{Addr: r.reg("addr", s.Addr), Src: r.reg("src", s.Src)}
		}
	case "set":
		st = &ast.Set{Dest: r.reg("dest", s.Dest), Value: r.lit("value", s.Value)}
	case "lshift":
		st = &ast.LShift{Dest: r.reg("dest", s.Dest), Src: r.reg("src", s.Src), Amount: r.lit("amount", s.Amount)}
	case "call":
		call := &ast.Call{Func: r.ident("func", s.Func), Args: make([]ast.CallArg, 0, len(s.Args))}
		if s.Out != "" {
			call.Out = r.reg("out", s.Out)
		}
		for i, a := range s.Args {
			arg, err := a.node(i + 1)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
		}
		st = call
	case "nop":
		st = &ast.Nop{}
	case "local":
		st = &ast.Local{Name: r.ident("name", s.Name)}
	case "return":
		st = &ast.Return{}
	case "":
		return nil, badInput(diag.Location{}, "statement has no op")
	default:
		return nil, badInput(diag.Location{}, "unknown op %q", s.Op)
	}
	if r.err != nil {
		return nil, r.err
	}
	return st, nil
}

func (a Arg) node(pos int) (ast.CallArg, error) {
	set := 0
	for _, ok := range []bool{a.Ident != "", a.Lit != "", a.Reg != ""} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, badInput(diag.Location{}, "argument %d must set exactly one of ident, lit, reg", pos)
	}
	switch {
	case a.Ident != "":
		if !ast.ValidName(a.Ident) {
			return nil, badInput(diag.Location{}, "argument %d: %q is not a valid identifier", pos, a.Ident)
		}
		return &ast.IdentArg{Name: a.Ident}, nil
	case a.Lit != "":
		return &ast.LitArg{Value: literal.FromToken(string(a.Lit))}, nil
	default:
		reg, err := ast.ParseRegister(a.Reg)
		if err != nil {
			return nil, badInput(diag.Location{}, "argument %d: %v", pos, err)
		}
		return &ast.RegArg{Reg: reg}, nil
	}
}
