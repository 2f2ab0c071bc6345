package diagfmt

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"fstump/internal/asm"
	"fstump/internal/diag"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.ArityMismatch, diag.Location{File: "/proj/src/a.toml", Func: "main", Stmt: 3}, "invalid call to f").
		WithNote(diag.Location{Func: "f"}, "declared here"))
	bag.Add(diag.New(diag.SevWarning, diag.CapacityExceeded, diag.Location{}, "program uses 9000 words of 8000"))
	return bag
}

func TestPrettyPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{PathMode: PathModeRelative, BaseDir: "/proj", ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join("src", "a.toml") + ": main#3: ERROR E1003: invalid call to f\n" +
		"  note: f: declared here\n" +
		"WARNING W2001: program uses 9000 words of 8000\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestPrettyColor(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes are hidden unless requested")
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), JSONOpts{PathMode: PathModeBasename, IncludeNotes: true, Max: 1}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("Max not applied: %+v", out)
	}
	d := out.Diagnostics[0]
	if d.Code != "E1003" || d.Severity != "ERROR" || d.Location.File != "a.toml" || d.Location.Stmt != 3 {
		t.Fatalf("unexpected diagnostic: %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.Func != "f" {
		t.Fatalf("unexpected notes: %+v", d.Notes)
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := Summary(&buf, "a.toml", asm.Stats{Instructions: 400, Capacity: 8000}, false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a.toml: 400 instructions (5.0% of 8000)\n" {
		t.Fatalf("unexpected summary %q", buf.String())
	}
}
