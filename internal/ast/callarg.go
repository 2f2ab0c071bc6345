package ast

import "fstump/internal/literal"

// CallArg is one argument of a call statement.
type CallArg interface {
	Accept(v CallArgVisitor) error
}

type CallArgVisitor interface {
	VisitIdentArg(a *IdentArg) error
	VisitLitArg(a *LitArg) error
	VisitRegArg(a *RegArg) error
}

// IdentArg passes the value of a global or local variable.
type IdentArg struct {
	Name string
}

// LitArg passes a constant.
type LitArg struct {
	Value literal.Literal
}

// RegArg passes the caller's value of a register.
type RegArg struct {
	Reg Register
}

func (a *IdentArg) Accept(v CallArgVisitor) error { return v.VisitIdentArg(a) }
func (a *LitArg) Accept(v CallArgVisitor) error   { return v.VisitLitArg(a) }
func (a *RegArg) Accept(v CallArgVisitor) error   { return v.VisitRegArg(a) }
