package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fstump/internal/diagfmt"
)

const cliProgram = `
[[element]]
kind = "literal"
name = "counter"
value = "0x10"

[[element]]
kind = "function"
name = "main"

  [[element.body]]
  op = "load"
  dest = "r1"
  name = "counter"
`

const cliBrokenProgram = `
[[element]]
kind = "function"
name = "main"

  [[element.body]]
  op = "load"
  dest = "r1"
  name = "ghost"
`

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--color", "off"))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootWrongArgCountPrintsUsage(t *testing.T) {
	for _, args := range [][]string{{}, {"only.toml"}, {"a.toml", "b.s", "c"}} {
		stdout, _, err := run(t, args...)
		if err != nil {
			t.Fatalf("%v: unexpected error %v", args, err)
		}
		if !strings.Contains(stdout, "Usage:") {
			t.Fatalf("%v: expected usage, got %q", args, stdout)
		}
	}
}

func TestRootCompiles(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "prog.toml"), cliProgram)
	out := filepath.Join(dir, "prog.s")

	stdout, stderr, err := run(t, in, out, "--org", "0x100", "--emit")
	if err != nil {
		t.Fatalf("compile failed: %v\n%s", err, stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("output missing: %v", err)
	}
	if !strings.Contains(string(data), "org 0x100") {
		t.Fatalf("org flag not applied:\n%s", data)
	}
	if !strings.Contains(stdout, string(data)) {
		t.Fatalf("--emit should echo the assembly")
	}
	if !strings.Contains(stdout, "instructions (") {
		t.Fatalf("expected a summary line, got %q", stdout)
	}
}

func TestRootQuietHidesSummary(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "prog.toml"), cliProgram)
	stdout, _, err := run(t, in, filepath.Join(dir, "prog.s"), "--quiet")
	if err != nil {
		t.Fatal(err)
	}
	if stdout != "" {
		t.Fatalf("quiet run printed %q", stdout)
	}
}

func TestRootReportsFailure(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "bad.toml"), cliBrokenProgram)
	out := filepath.Join(dir, "bad.s")

	_, stderr, err := run(t, in, out)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(stderr, "ERROR E1002") || !strings.Contains(stderr, "ghost") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("partial output should still be written: %v", err)
	}
}

func TestRootJSONDiagnostics(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "bad.toml"), cliBrokenProgram)

	stdout, _, _ := run(t, in, filepath.Join(dir, "bad.s"), "--format", "json")
	var payload diagfmt.DiagnosticsOutput
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", stdout, err)
	}
	var found bool
	for _, d := range payload.Diagnostics {
		if d.Code == "E1002" && d.Location.Func == "main" && d.Location.Stmt == 1 {
			found = true
		}
	}
	if !found {
		t.Fatalf("E1002 not reported: %+v", payload.Diagnostics)
	}
}

func TestRootRejectsBadFlags(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "prog.toml"), cliProgram)
	if _, _, err := run(t, in, filepath.Join(dir, "p.s"), "--capacity", "0"); err == nil {
		t.Fatalf("expected capacity error")
	}
	if _, _, err := run(t, in, filepath.Join(dir, "p.s"), "--format", "xml"); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestPackRoundTripCompiles(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "prog.toml"), cliProgram)
	packed := filepath.Join(dir, "bin", "prog.mp")

	if _, stderr, err := run(t, "pack", in, packed); err != nil {
		t.Fatalf("pack failed: %v\n%s", err, stderr)
	}
	fromTOML := filepath.Join(dir, "a.s")
	fromMP := filepath.Join(dir, "b.s")
	if _, _, err := run(t, in, fromTOML); err != nil {
		t.Fatal(err)
	}
	if _, _, err := run(t, packed, fromMP); err != nil {
		t.Fatal(err)
	}
	a, _ := os.ReadFile(fromTOML)
	b, _ := os.ReadFile(fromMP)
	if len(a) == 0 || !bytes.Equal(a, b) {
		t.Fatalf("packed program compiles differently:\n%s\n---\n%s", a, b)
	}
}

func TestPackRejectsInvalidProgram(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "prog.toml"), "[[element]]\nkind = \"function\"\n")
	if _, _, err := run(t, "pack", in, filepath.Join(dir, "prog.mp")); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestBuildProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "a.toml"), cliProgram)
	writeFile(t, filepath.Join(root, "src", "b.toml"), cliProgram)
	writeFile(t, filepath.Join(root, "fstump.toml"), `
[target]
org = "0"
capacity = 1000

[[unit]]
input = "src/a.toml"
output = "out/a.s"

[[unit]]
input = "src/b.toml"
output = "out/b.s"
`)
	nested := filepath.Join(root, "src")
	stdout, stderr, err := run(t, "build", nested, "--ui", "off", "--jobs", "2")
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, stderr)
	}
	for _, name := range []string{"a.s", "b.s"} {
		if _, err := os.Stat(filepath.Join(root, "out", name)); err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
	}
	if strings.Count(stdout, "instructions (") != 2 {
		t.Fatalf("expected two summaries, got %q", stdout)
	}
}

func TestBuildReportsFailedUnits(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.toml"), cliProgram)
	writeFile(t, filepath.Join(root, "bad.toml"), cliBrokenProgram)
	writeFile(t, filepath.Join(root, "fstump.toml"), `
[[unit]]
input = "good.toml"
output = "good.s"

[[unit]]
input = "bad.toml"
output = "bad.s"
`)
	_, stderr, err := run(t, "build", root, "--ui", "off", "--force")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(stderr, "1 of 2 units failed") {
		t.Fatalf("unexpected stderr %q", stderr)
	}
	if _, err := os.Stat(filepath.Join(root, "good.s")); err != nil {
		t.Fatalf("good unit should still be built: %v", err)
	}
}

func TestBuildWithoutManifest(t *testing.T) {
	if _, _, err := run(t, "build", t.TempDir(), "--ui", "off"); err == nil {
		t.Fatalf("expected missing manifest error")
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := run(t, "version", "--format", "json", "--full")
	if err != nil {
		t.Fatal(err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("invalid json %q: %v", stdout, err)
	}
	if payload.Tool != "fstump" || payload.Version == "" || payload.GitCommit == "" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestReadUIMode(t *testing.T) {
	cases := map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff}
	for in, want := range cases {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatalf("expected error")
	}
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	if uiModeOff.useTUI(cmd, false) || !uiModeOn.useTUI(cmd, false) {
		t.Fatalf("explicit modes ignored")
	}
	if uiModeOn.useTUI(cmd, true) {
		t.Fatalf("--quiet must suppress the TUI")
	}
	if uiModeAuto.useTUI(cmd, false) {
		t.Fatalf("auto mode must not start the TUI when stdout is a buffer")
	}
}

func TestRootTraceAndProfileFlags(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "prog.toml"), cliProgram)
	tracePath := filepath.Join(dir, "trace.ndjson")
	cpuPath := filepath.Join(dir, "cpu.pprof")

	_, stderr, err := run(t, in, filepath.Join(dir, "prog.s"),
		"--trace", tracePath, "--trace-level", "detail", "--cpu-profile", cpuPath)
	if err != nil {
		t.Fatalf("compile failed: %v\n%s", err, stderr)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatalf("trace not written: %v", err)
	}
	for _, name := range []string{`"name":"compile"`, `"name":"generate"`} {
		if !strings.Contains(string(data), name) {
			t.Fatalf("trace lacks %s:\n%s", name, data)
		}
	}
	if _, err := os.Stat(cpuPath); err != nil {
		t.Fatalf("cpu profile not written: %v", err)
	}
}

func TestRootDumpsRingOnFailure(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, filepath.Join(dir, "bad.toml"), cliBrokenProgram)
	_, stderr, err := run(t, in, filepath.Join(dir, "bad.s"), "--trace-level", "phase")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected errReported, got %v", err)
	}
	if !strings.Contains(stderr, "trace: last events before failure") || !strings.Contains(stderr, "compile") {
		t.Fatalf("ring buffer not dumped:\n%s", stderr)
	}
}
