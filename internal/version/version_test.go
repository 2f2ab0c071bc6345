package version

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestString_OptionalFields(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := String(false); got != "fstump 1.2.3" {
		t.Errorf("String() = %q", got)
	}

	GitCommit, BuildDate = "abc123", "2024-01-15T10:30:00Z"
	if got := String(false); got != "fstump 1.2.3 (abc123, 2024-01-15T10:30:00Z)" {
		t.Errorf("String() = %q", got)
	}

	GitCommit = ""
	if got := String(false); got != "fstump 1.2.3 (2024-01-15T10:30:00Z)" {
		t.Errorf("String() = %q", got)
	}
}

func TestColored_KeepsSuffix(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()
	color.NoColor = true

	Version = "0.1.0-dev"
	if got := Colored(); got != "0.1.0-dev" {
		t.Errorf("Colored() = %q", got)
	}

	Version = "nightly"
	if got := Colored(); got != "nightly" {
		t.Errorf("non-semver should pass through, got %q", got)
	}
}

func TestColored_EmitsEscapes(t *testing.T) {
	if os.Getenv("NO_COLOR") != "" {
		t.Skip("NO_COLOR is set")
	}
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()
	color.NoColor = false

	Version = "1.2.3"
	got := Colored()
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", got)
	}
	if !strings.HasPrefix(String(true), "fstump ") {
		t.Errorf("unexpected String(true) prefix")
	}
}

func BenchmarkString(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = String(false)
	}
}
