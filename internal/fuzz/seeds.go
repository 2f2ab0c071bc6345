package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

// programSeeds are well-formed programs; each must compile to a listing
// that passes testkit.CheckListing.
var programSeeds = []string{
	`[[element]]
kind = "function"
name = "main"
`,
	`[[element]]
kind = "literal"
name = "counter"
value = "0x10"

[[element]]
kind = "array"
name = "table"
values = ["1", "-2", "'z'", "40000"]

[[element]]
kind = "block"
name = "buf"
size = 3

[[element]]
kind = "string"
name = "msg"
text = "hello"

[[element]]
kind = "function"
name = "main"

  [[element.body]]
  op = "load"
  dest = "r1"
  name = "counter"

  [[element.body]]
  op = "add"
  dest = "r1"
  src = "r1"

  [[element.body]]
  op = "store"
  name = "counter"
  src = "r1"
`,
	`[[element]]
kind = "function"
name = "f"
params = ["a", "b"]

  [[element.body]]
  op = "load"
  dest = "r2"
  name = "b"

[[element]]
kind = "function"
name = "main"

  [[element.body]]
  op = "local"
  name = "x"

  [[element.body]]
  op = "set"
  dest = "r1"
  value = "1000"

  [[element.body]]
  op = "label"
  name = "loop"

  [[element.body]]
  op = "call"
  func = "f"
  out = "r3"
  args = [{ ident = "x" }, { lit = "-7" }]

  [[element.body]]
  op = "lshift"
  dest = "r3"
  src = "r3"
  amount = 2

  [[element.body]]
  op = "goto"
  label = "loop"
  cond = "ne"
`,
}

func addCorpusSeeds(f *testing.F) {
	for _, seed := range programSeeds {
		f.Add([]byte(seed))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.toml файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() || filepath.Ext(path) != ".toml" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
