package version

import (
	"testing"

	"github.com/fatih/color"
)

func withPlainColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestColoredWithoutTerminal(t *testing.T) {
	withPlainColor(t)
	orig := Version
	t.Cleanup(func() { Version = orig })

	for _, v := range []string{"0.3.0-dev", "1.2.3", "1.0.0-beta.1", "weird"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestInfo(t *testing.T) {
	withPlainColor(t)
	origV, origC, origD := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origV, origC, origD })

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := Info(); got != "phpfix 1.2.3" {
		t.Fatalf("Info() = %q", got)
	}
	GitCommit, BuildDate = "abc123", "2026-01-15"
	if got := Info(); got != "phpfix 1.2.3 (commit abc123, built 2026-01-15)" {
		t.Fatalf("Info() = %q", got)
	}
}
