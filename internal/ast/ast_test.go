package ast

import (
	"testing"

	"fstump/internal/literal"
)

func TestParseRegister(t *testing.T) {
	cases := []struct {
		in   string
		want Register
	}{
		{"zero", RegZero},
		{"r1", RegR1},
		{"R4", RegR4},
		{" lr ", RegLR},
		{"sf", RegSF},
		{"pc", RegPC},
	}
	for _, tc := range cases {
		got, err := ParseRegister(tc.in)
		if err != nil {
			t.Fatalf("ParseRegister(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRegister(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if got.String() != tc.want.String() || !got.Valid() {
			t.Fatalf("register %v does not round-trip", got)
		}
	}
	if _, err := ParseRegister("r5"); err == nil {
		t.Fatalf("expected r5 to be rejected in source syntax")
	}
	if RegNone.Valid() {
		t.Fatalf("RegNone must not be valid")
	}
}

type elementCounter struct {
	globals, funcs int
}

func (c *elementCounter) VisitGlobal(Global) error      { c.globals++; return nil }
func (c *elementCounter) VisitFunction(*Function) error { c.funcs++; return nil }

func TestProgramElements(t *testing.T) {
	prog := &Program{Elements: []Element{
		&LiteralGlobal{Name: "x", Value: Lit("1")},
		&Function{Name: "main", Params: []string{"a", "b"}},
		&StringGlobal{Name: "s", Text: "hi"},
		&Function{Name: "f"},
	}}
	c := &elementCounter{}
	for _, el := range prog.Elements {
		if err := el.AcceptElement(c); err != nil {
			t.Fatalf("AcceptElement: %v", err)
		}
	}
	if c.globals != 2 || c.funcs != 2 {
		t.Fatalf("globals=%d funcs=%d, want 2/2", c.globals, c.funcs)
	}
	fns := prog.Functions()
	if len(fns) != 2 || fns[0].Name != "main" || fns[0].Arity() != 2 {
		t.Fatalf("unexpected functions: %+v", fns)
	}
	if Lit("0x10").Kind != literal.Hex {
		t.Fatalf("Lit did not classify hex token")
	}
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"x", "main", "_tmp", "a_b", "L2"} {
		if !ValidName(name) {
			t.Fatalf("ValidName(%q) = false", name)
		}
	}
	for _, name := range []string{"", "2x", "a b", "l;oops", "a\nb", "a-b", "ü"} {
		if ValidName(name) {
			t.Fatalf("ValidName(%q) = true", name)
		}
	}
}
