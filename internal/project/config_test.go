package project_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phpfix/internal/fix"
	"phpfix/internal/project"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, project.ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "")
	nested := filepath.Join(root, "src", "Domain")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	path, ok, err := project.FindConfig(nested)
	if err != nil || !ok {
		t.Fatalf("FindConfig: ok=%v err=%v", ok, err)
	}
	if path != filepath.Join(root, project.ConfigFileName) {
		t.Fatalf("path = %s", path)
	}
	got, ok, err := project.FindProjectRoot(nested)
	if err != nil || !ok || got != root {
		t.Fatalf("FindProjectRoot = %q %v %v", got, ok, err)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := project.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "" || cfg.Root != dir {
		t.Fatalf("path=%q root=%q", cfg.Path, cfg.Root)
	}
	if cfg.Runner.MaxPasses != fix.DefaultMaxPasses || !cfg.Runner.Cache {
		t.Fatalf("runner defaults: %+v", cfg.Runner)
	}
	want := []string{"native_function_casing", "nullable_type_default_null", "single_line_throw", "types_spaces"}
	if got := cfg.EnabledRules(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("rules = %v", got)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[finder]
paths = ["src", "tests"]
exclude = ["src/Generated/**"]
extensions = ["php", ".phtml"]

[runner]
jobs = 4
max_passes = 3
cache = false

[rules]
types_spaces = { space = "single" }
single_line_throw = true
native_function_casing = false

[rules.nullable_type_default_null]
use_nullable_type_declaration = false
`)
	cfg, err := project.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Runner.Jobs != 4 || cfg.Runner.MaxPasses != 3 || cfg.Runner.Cache {
		t.Fatalf("runner = %+v", cfg.Runner)
	}
	// не заданный ключ сохраняет значение по умолчанию
	if cfg.Runner.CacheFile != ".phpfix.cache" {
		t.Fatalf("cache_file = %q", cfg.Runner.CacheFile)
	}
	if got := strings.Join(cfg.Finder.Extensions, ","); got != ".php,.phtml" {
		t.Fatalf("extensions = %s", got)
	}
	if got := cfg.SearchPaths(); got[0] != filepath.Join(dir, "src") || got[1] != filepath.Join(dir, "tests") {
		t.Fatalf("search paths = %v", got)
	}
	if cfg.CachePath() != filepath.Join(dir, ".phpfix.cache") {
		t.Fatalf("cache path = %s", cfg.CachePath())
	}

	want := []string{"types_spaces", "single_line_throw", "nullable_type_default_null"}
	if got := cfg.EnabledRules(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("enabled rules = %v", got)
	}
	if cfg.Rules[0].Options["space"] != "single" {
		t.Fatalf("types_spaces options = %v", cfg.Rules[0].Options)
	}
	rules, err := cfg.BuildRules()
	if err != nil {
		t.Fatalf("BuildRules: %v", err)
	}
	if len(rules) != 3 || rules[0].Name != "types_spaces" {
		t.Fatalf("built rules = %v", rules)
	}
}

func TestLoadFileErrors(t *testing.T) {
	cases := map[string]string{
		"unknown rule":    "[rules]\nno_such_rule = true\n",
		"bad option":      "[rules]\ntypes_spaces = { space = \"double\" }\n",
		"unknown option":  "[rules]\ntypes_spaces = { width = 2 }\n",
		"bad rule value":  "[rules]\ntypes_spaces = \"yes\"\n",
		"bad passes":      "[runner]\nmax_passes = 0\n",
		"negative jobs":   "[runner]\njobs = -1\n",
		"bad glob":        "[finder]\nexclude = [\"src/[\"]\n",
		"unknown section": "[finders]\npaths = []\n",
		"syntax":          "[rules\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), body)
			if _, err := project.LoadFile(path); err == nil {
				t.Fatalf("expected an error for %q", body)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[rules]\ntypes_spaces = { space = \"single\" }\n")
	cfg, err := project.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Select([]string{"single_line_throw", " types_spaces", ""}); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if got := strings.Join(cfg.EnabledRules(), ","); got != "single_line_throw,types_spaces" {
		t.Fatalf("selected = %s", got)
	}
	if cfg.Rules[1].Options["space"] != "single" {
		t.Fatalf("options lost: %v", cfg.Rules[1].Options)
	}
	if err := cfg.Select([]string{"nope"}); err == nil {
		t.Fatal("unknown rule must fail")
	}
}

func TestSignatureTracksRulesAndOptions(t *testing.T) {
	a := project.Default("/p")
	b := project.Default("/p")
	if a.Signature() != b.Signature() {
		t.Fatal("equal configs must share a signature")
	}
	if err := b.Select([]string{"types_spaces"}); err != nil {
		t.Fatal(err)
	}
	if a.Signature() == b.Signature() {
		t.Fatal("rule set change must change the signature")
	}
	c := project.Default("/p")
	if err := c.Select([]string{"types_spaces"}); err != nil {
		t.Fatal(err)
	}
	c.Rules[0].Options = map[string]any{"space": "single"}
	if b.Signature() == c.Signature() {
		t.Fatal("option change must change the signature")
	}
}

func TestCombine(t *testing.T) {
	x, y := project.Sum("x"), project.Sum("y")
	if project.Combine(x, y) == project.Combine(y, x) {
		t.Fatal("Combine must depend on order")
	}
	if len(x.String()) != 64 {
		t.Fatalf("hex digest length = %d", len(x.String()))
	}
}
