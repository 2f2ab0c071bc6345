package codegen

import (
	"context"
	"testing"

	"fstump/internal/ast"
	"fstump/internal/literal"
	"fstump/internal/testkit"
)

func TestListingInvariants(t *testing.T) {
	prog := program(
		&ast.LiteralGlobal{Name: "counter", Value: ast.Lit("0x10")},
		&ast.ArrayGlobal{Name: "table", Values: []literal.Literal{ast.Lit("1"), ast.Lit("40000")}},
		&ast.BlockGlobal{Name: "buf", Size: ast.Lit("4")},
		&ast.StringGlobal{Name: "msg", Text: "ok"},
		&ast.Function{Name: "f", Params: []string{"a", "b"}, Body: []ast.Stmt{
			&ast.Load{Dest: ast.RegR2, Name: "a"},
			&ast.Store{Name: "counter", Src: ast.RegR2},
		}},
		mainFn(
			&ast.Local{Name: "x"},
			&ast.Set{Dest: ast.RegR1, Value: ast.Lit("1000")},
			&ast.Store{Name: "x", Src: ast.RegR1},
			&ast.Label{Name: "again"},
			&ast.Call{Func: "f", Out: ast.RegR3, Args: []ast.CallArg{
				&ast.IdentArg{Name: "x"},
				&ast.LitArg{Value: ast.Lit("-300")},
			}},
			&ast.LShift{Dest: ast.RegR3, Src: ast.RegR3, Amount: ast.Lit("2")},
			&ast.GotoCond{Cond: "eq", Label: "again"},
		),
	)
	out, err := Compile(context.Background(), prog, Options{})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	listing, err := testkit.CheckListing(out.Text)
	if err != nil {
		t.Fatalf("listing invariants violated: %v\n%s", err, out.Text)
	}
	if undefined := listing.Undefined(); len(undefined) != 0 {
		t.Fatalf("undefined labels %v", undefined)
	}
	if listing.Instructions != out.Stats.Instructions {
		t.Fatalf("listing has %d instructions, stats say %d", listing.Instructions, out.Stats.Instructions)
	}
	if listing.Org != "0" {
		t.Fatalf("org = %q", listing.Org)
	}
}

func TestListingReportsMissingEntry(t *testing.T) {
	out, err := Compile(context.Background(), program(&ast.Function{Name: "helper"}), Options{})
	if err != nil {
		t.Fatalf("missing entry is a warning, got %v", err)
	}
	listing, err := testkit.CheckListing(out.Text)
	if err != nil {
		t.Fatal(err)
	}
	if got := listing.Undefined(); len(got) != 1 || got[0] != "FUNC_main" {
		t.Fatalf("Undefined() = %v", got)
	}
}

func TestUserLabelsAcrossUnderscoredFunctions(t *testing.T) {
	prog := program(
		&ast.Function{Name: "a", Body: []ast.Stmt{
			&ast.Label{Name: "b_c"},
			&ast.Goto{Label: "b_c"},
		}},
		&ast.Function{Name: "a_b", Body: []ast.Stmt{
			&ast.Label{Name: "c"},
			&ast.Goto{Label: "c"},
		}},
		mainFn(&ast.Nop{}),
	)
	out, err := Compile(context.Background(), prog, Options{})
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	listing, err := testkit.CheckListing(out.Text)
	if err != nil {
		t.Fatalf("listing invariants violated: %v\n%s", err, out.Text)
	}
	for _, want := range []string{"LABEL_a_b_c", "LABEL_3_a_b_c"} {
		if _, ok := listing.Labels[want]; !ok {
			t.Fatalf("label %s not defined:\n%s", want, out.Text)
		}
	}
	expectContains(t, out.Text, "\nbal LABEL_a_b_c\n")
	expectContains(t, out.Text, "\nbal LABEL_3_a_b_c\n")
}

func TestUserLabelEncodingIsInjective(t *testing.T) {
	names := []string{"a", "b", "a_b", "b_c", "c", "_a", "a_", "x_y_z", "x_y", "y_z", "z"}
	seen := map[string][2]string{}
	for _, fn := range names {
		for _, l := range names {
			got := userLabel(fn, l)
			if prev, dup := seen[got]; dup {
				t.Fatalf("%s produced by (%s, %s) and (%s, %s)", got, prev[0], prev[1], fn, l)
			}
			seen[got] = [2]string{fn, l}
		}
	}
}
