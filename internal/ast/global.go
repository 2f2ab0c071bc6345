package ast

import "fstump/internal/literal"

// Global is a global data declaration.
type Global interface {
	Element
	GlobalName() string
	Accept(v GlobalVisitor) error
}

type GlobalVisitor interface {
	VisitArray(g *ArrayGlobal) error
	VisitBlock(g *BlockGlobal) error
	VisitLiteral(g *LiteralGlobal) error
	VisitString(g *StringGlobal) error
}

// ArrayGlobal is emitted as consecutive data words.
type ArrayGlobal struct {
	Name   string
	Values []literal.Literal
}

// BlockGlobal reserves Size zero words.
type BlockGlobal struct {
	Name string
	Size literal.Literal
}

// LiteralGlobal is a single data word.
type LiteralGlobal struct {
	Name  string
	Value literal.Literal
}

// StringGlobal is one word per character plus a zero terminator.
type StringGlobal struct {
	Name string
	Text string
}

func (g *ArrayGlobal) GlobalName() string   { return g.Name }
func (g *BlockGlobal) GlobalName() string   { return g.Name }
func (g *LiteralGlobal) GlobalName() string { return g.Name }
func (g *StringGlobal) GlobalName() string  { return g.Name }

func (g *ArrayGlobal) Accept(v GlobalVisitor) error   { return v.VisitArray(g) }
func (g *BlockGlobal) Accept(v GlobalVisitor) error   { return v.VisitBlock(g) }
func (g *LiteralGlobal) Accept(v GlobalVisitor) error { return v.VisitLiteral(g) }
func (g *StringGlobal) Accept(v GlobalVisitor) error  { return v.VisitString(g) }

func (g *ArrayGlobal) AcceptElement(v ElementVisitor) error   { return v.VisitGlobal(g) }
func (g *BlockGlobal) AcceptElement(v ElementVisitor) error   { return v.VisitGlobal(g) }
func (g *LiteralGlobal) AcceptElement(v ElementVisitor) error { return v.VisitGlobal(g) }
func (g *StringGlobal) AcceptElement(v ElementVisitor) error  { return v.VisitGlobal(g) }
