// Package ast is the structured program consumed by the code generator.
//
// Every grammar category is a closed union: each variant implements the
// category's Accept method against a visitor interface that carries one
// method per variant. A consumer is a visitor, so adding a variant is a
// compile error in every consumer until it handles the new case.
package ast

import "fstump/internal/literal"

// Program is the ordered list of top-level declarations.
type Program struct {
	Elements []Element
}

// Element is a top-level declaration: a global or a function.
type Element interface {
	AcceptElement(v ElementVisitor) error
}

type ElementVisitor interface {
	VisitGlobal(g Global) error
	VisitFunction(f *Function) error
}

// Function is a function declaration.
type Function struct {
	Name   string
	Params []string
	Body   []Stmt
}

func (f *Function) AcceptElement(v ElementVisitor) error { return v.VisitFunction(f) }

// Arity returns the declared parameter count.
func (f *Function) Arity() int { return len(f.Params) }

// Functions returns the function declarations in order.
func (p *Program) Functions() []*Function {
	var out []*Function
	for _, el := range p.Elements {
		if f, ok := el.(*Function); ok {
			out = append(out, f)
		}
	}
	return out
}

// Lit classifies a raw literal token.
func Lit(text string) literal.Literal {
	return literal.FromToken(text)
}

// ValidName reports whether name can appear in assembly text: a letter or
// underscore followed by letters, digits or underscores.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
