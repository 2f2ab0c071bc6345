package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fstump/internal/diag"
)

const okProgram = `
[[element]]
kind = "function"
name = "main"

  [[element.body]]
  op = "set"
  dest = "r1"
  value = "3"
`

const failingProgram = okProgram + `
  [[element.body]]
  op = "load"
  dest = "r2"
  name = "ghost"
`

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompileWritesOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "prog.toml", okProgram)
	out := filepath.Join(dir, "build", "nested", "prog.s")
	var emitted bytes.Buffer

	res, err := Compile(context.Background(), Request{Input: in, Output: out, Emit: &emitted})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if !strings.Contains(string(data), "FUNC_main mov r1, #3\n") {
		t.Fatalf("unexpected output:\n%s", data)
	}
	if emitted.String() != string(data) {
		t.Fatalf("emitted text differs from the written file")
	}
	if res.Stats.Instructions != 10 || res.Stats.Capacity != 8000 {
		t.Fatalf("unexpected stats %+v", res.Stats)
	}
	var summary bool
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ObsSummary && strings.HasPrefix(d.Message, "10 instructions") {
			summary = true
		}
	}
	if !summary {
		t.Fatalf("expected a summary diagnostic, got %+v", res.Bag.Items())
	}
}

func TestCompileFailureFlushesPartialOutput(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "prog.toml", failingProgram)
	out := filepath.Join(dir, "prog.s")

	res, err := Compile(context.Background(), Request{Input: in, Output: out})
	if diag.CodeOf(err) != diag.UnknownIdentifier {
		t.Fatalf("expected UnknownIdentifier, got %v", err)
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("the fatal error must be in the bag")
	}
	item := res.Bag.Items()[len(res.Bag.Items())-1]
	if item.Primary.File != in || item.Primary.Func != "main" || item.Primary.Stmt != 2 {
		t.Fatalf("unexpected location %s", item.Primary)
	}
	data, readErr := os.ReadFile(out)
	if readErr != nil {
		t.Fatalf("partial output not written: %v", readErr)
	}
	if !strings.Contains(string(data), "FUNC_main mov r1, #3") || strings.Contains(string(data), "; Stack") {
		t.Fatalf("unexpected partial output:\n%s", data)
	}
}

func TestCompileInputErrors(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "x.s")
	if _, err := Compile(context.Background(), Request{Input: filepath.Join(dir, "none.toml"), Output: out}); diag.CodeOf(err) != diag.IOError {
		t.Fatalf("expected IOError, got %v", err)
	}
	bad := writeInput(t, dir, "bad.toml", "[[element]]\nkind = \"function\"\n")
	if _, err := Compile(context.Background(), Request{Input: bad, Output: out}); diag.CodeOf(err) != diag.BadInput {
		t.Fatalf("expected BadInput, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("no output expected when the input cannot be read")
	}
}

func TestCompileCacheSkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenCache(filepath.Join(dir, ".cache"))
	if err != nil {
		t.Fatal(err)
	}
	in := writeInput(t, dir, "prog.toml", okProgram)
	req := Request{Input: in, Output: filepath.Join(dir, "prog.s"), Cache: cache}

	first, err := Compile(context.Background(), req)
	if err != nil || first.Cached {
		t.Fatalf("first build must compile: cached=%v err=%v", first.Cached, err)
	}
	second, err := Compile(context.Background(), req)
	if err != nil || !second.Cached {
		t.Fatalf("second build must hit the cache: cached=%v err=%v", second.Cached, err)
	}
	if second.Stats != first.Stats {
		t.Fatalf("cached stats differ: %+v vs %+v", second.Stats, first.Stats)
	}

	req.Entry = "start"
	third, _ := Compile(context.Background(), req)
	if third.Cached {
		t.Fatalf("changed options must invalidate the cache")
	}
}

func TestCompileReportsPhases(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "prog.toml", okProgram)
	var names []string
	res, err := Compile(context.Background(), Request{
		Input:   in,
		Output:  filepath.Join(dir, "prog.s"),
		Timings: true,
		Observer: func(ev PhaseEvent) {
			if ev.Status == PhaseEnd {
				names = append(names, ev.Name)
			}
		},
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if strings.Join(names, ",") != "load,codegen,write" {
		t.Fatalf("unexpected phases %v", names)
	}
	var timing bool
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ObsTimings && len(d.Notes) == 1 && strings.Contains(d.Notes[0].Msg, `"phases"`) {
			timing = true
		}
	}
	if !timing {
		t.Fatalf("expected a timings diagnostic")
	}
}
