package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a parsed fstump.toml.
type Manifest struct {
	Path   string
	Root   string
	Target Target
	Units  []Unit
}

// Target holds the settings shared by every unit.
type Target struct {
	Org      string `toml:"org"`
	Capacity int    `toml:"capacity"`
	Entry    string `toml:"entry"`
}

// Unit is one input program and the assembly file it produces. After Load
// both paths are absolute.
type Unit struct {
	Input  string `toml:"input"`
	Output string `toml:"output"`
	// Entry overrides Target.Entry for this unit.
	Entry string `toml:"entry"`
}

type manifestFile struct {
	Target Target `toml:"target"`
	Units  []Unit `toml:"unit"`
}

// Load parses and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if meta.IsDefined("target", "capacity") && cfg.Target.Capacity <= 0 {
		return nil, fmt.Errorf("%s: [target].capacity must be positive", path)
	}
	if len(cfg.Units) == 0 {
		return nil, fmt.Errorf("%s: no [[unit]] entries", path)
	}

	m := &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Target: cfg.Target,
		Units:  make([]Unit, 0, len(cfg.Units)),
	}
	outputs := make(map[string]int, len(cfg.Units))
	for i, u := range cfg.Units {
		if strings.TrimSpace(u.Input) == "" {
			return nil, fmt.Errorf("%s: [[unit]] #%d: missing input", path, i+1)
		}
		if strings.TrimSpace(u.Output) == "" {
			return nil, fmt.Errorf("%s: [[unit]] #%d: missing output", path, i+1)
		}
		u.Input = m.resolve(u.Input)
		u.Output = m.resolve(u.Output)
		if prev, dup := outputs[u.Output]; dup {
			return nil, fmt.Errorf("%s: [[unit]] #%d writes %s, already written by #%d", path, i+1, u.Output, prev)
		}
		outputs[u.Output] = i + 1
		m.Units = append(m.Units, u)
	}
	return m, nil
}

func (m *Manifest) resolve(p string) string {
	p = filepath.FromSlash(strings.TrimSpace(p))
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Root, p)
}

// EntryFor returns the entry function of u.
func (m *Manifest) EntryFor(u Unit) string {
	if u.Entry != "" {
		return u.Entry
	}
	return m.Target.Entry
}

// Rel returns p relative to the project root when possible.
func (m *Manifest) Rel(p string) string {
	if rel, err := filepath.Rel(m.Root, p); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return p
}

// CacheDir is where batch builds keep their fingerprints.
func (m *Manifest) CacheDir() string {
	return filepath.Join(m.Root, ".fstump", "cache")
}
