package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ManifestName), "")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("expected manifest, got ok=%v err=%v", ok, err)
	}
	want, _ := filepath.EvalSymlinks(filepath.Join(root, ManifestName))
	got, _ := filepath.EvalSymlinks(path)
	if got != want {
		t.Fatalf("found %s, want %s", got, want)
	}
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ManifestName)
	writeFile(t, path, `
[target]
org = "0x100"
capacity = 4000
entry = "start"

[[unit]]
input = "src/a.toml"
output = "out/a.s"

[[unit]]
input = "src/b.mp"
output = "out/b.s"
entry = "boot"
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Target.Org != "0x100" || m.Target.Capacity != 4000 {
		t.Fatalf("unexpected target: %+v", m.Target)
	}
	if len(m.Units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(m.Units))
	}
	if m.Units[0].Input != filepath.Join(root, "src", "a.toml") {
		t.Fatalf("input not resolved against root: %s", m.Units[0].Input)
	}
	if m.EntryFor(m.Units[0]) != "start" || m.EntryFor(m.Units[1]) != "boot" {
		t.Fatalf("unexpected entries")
	}
	if m.Rel(m.Units[1].Output) != filepath.Join("out", "b.s") {
		t.Fatalf("unexpected rel path %s", m.Rel(m.Units[1].Output))
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name, doc, want string
	}{
		{"no units", "[target]\norg = \"0\"\n", "no [[unit]]"},
		{"missing input", "[[unit]]\noutput = \"a.s\"\n", "missing input"},
		{"missing output", "[[unit]]\ninput = \"a.toml\"\n", "missing output"},
		{"duplicate output", "[[unit]]\ninput = \"a.toml\"\noutput = \"x.s\"\n[[unit]]\ninput = \"b.toml\"\noutput = \"x.s\"\n", "already written"},
		{"bad capacity", "[target]\ncapacity = 0\n[[unit]]\ninput = \"a\"\noutput = \"b\"\n", "capacity"},
		{"unknown key", "[target]\nspeed = 3\n[[unit]]\ninput = \"a\"\noutput = \"b\"\n", "speed"},
		{"syntax", "[target\n", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ManifestName)
			writeFile(t, path, tt.doc)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
			if !strings.Contains(err.Error(), path) {
				t.Fatalf("error must name the manifest: %v", err)
			}
		})
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	a, b := DigestOf([]byte("a")), DigestOf([]byte("b"))
	if Combine(a, b) == Combine(b, a) {
		t.Fatalf("combine must depend on order")
	}
	if Combine(a).IsZero() || len(a.String()) != 64 {
		t.Fatalf("unexpected digest form")
	}
}
