package fixer_test

import (
	"errors"
	"testing"

	"phpfix/internal/fixer"
	"phpfix/internal/tokens"
)

type fixCase struct {
	name     string
	expected string
	input    string // empty: expected must stay untouched
}

// doTest runs the rule on input (or expected) and checks the output, then
// runs it again to check that the result is stable.
func doTest(t *testing.T, f fixer.Fixer, tc fixCase) {
	t.Helper()
	input := tc.input
	if input == "" {
		input = tc.expected
	}
	s, err := tokens.FromCode(input)
	if err != nil {
		t.Fatalf("%s: FromCode: %v", tc.name, err)
	}
	if f.IsCandidate(s) {
		if err := f.ApplyFix(s); err != nil {
			t.Fatalf("%s: ApplyFix: %v", tc.name, err)
		}
	}
	if got := s.Code(); got != tc.expected {
		t.Fatalf("%s:\n got %q\nwant %q", tc.name, got, tc.expected)
	}
	if tc.input == "" && s.Changed() {
		t.Fatalf("%s: unchanged source must not bump the revision", tc.name)
	}

	s.Compact()
	rev := s.Revision()
	if f.IsCandidate(s) {
		if err := f.ApplyFix(s); err != nil {
			t.Fatalf("%s: second ApplyFix: %v", tc.name, err)
		}
	}
	if s.Revision() != rev || s.Code() != tc.expected {
		t.Fatalf("%s: second run is not a no-op: %q", tc.name, s.Code())
	}
}

func build(t *testing.T, name string, opts fixer.Options) fixer.Fixer {
	t.Helper()
	f, err := fixer.Build(name, opts)
	if err != nil {
		t.Fatalf("Build(%s): %v", name, err)
	}
	return f
}

func TestRegistry(t *testing.T) {
	defs := fixer.All()
	want := []string{"native_function_casing", "nullable_type_default_null", "single_line_throw", "types_spaces"}
	if len(defs) != len(want) {
		t.Fatalf("All() = %d rules, want %d", len(defs), len(want))
	}
	for i, d := range defs {
		if d.Name != want[i] {
			t.Fatalf("All()[%d] = %s, want %s", i, d.Name, want[i])
		}
		if d.Summary == "" || d.Sample[0] == "" {
			t.Fatalf("%s: definition is incomplete", d.Name)
		}
	}
	if _, ok := fixer.Lookup("types_spaces"); !ok {
		t.Fatalf("Lookup(types_spaces) failed")
	}
	if _, ok := fixer.Lookup("no_such_rule"); ok {
		t.Fatalf("Lookup must fail for unknown rules")
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := fixer.Build("no_such_rule", nil); err == nil {
		t.Fatalf("unknown rule must fail")
	}

	var optErr *fixer.OptionError
	_, err := fixer.Build("types_spaces", fixer.Options{"space": "double"})
	if !errors.As(err, &optErr) || optErr.Option != "space" {
		t.Fatalf("bad value: got %v", err)
	}
	_, err = fixer.Build("types_spaces", fixer.Options{"space": 1})
	if !errors.As(err, &optErr) {
		t.Fatalf("bad type: got %v", err)
	}
	_, err = fixer.Build("single_line_throw", fixer.Options{"space": "none"})
	if !errors.As(err, &optErr) || optErr.Option != "space" {
		t.Fatalf("unknown option: got %v", err)
	}
	_, err = fixer.Build("nullable_type_default_null", fixer.Options{"use_nullable_type_declaration": "yes"})
	if !errors.As(err, &optErr) {
		t.Fatalf("bad bool: got %v", err)
	}
}

func TestDefinitionSamples(t *testing.T) {
	for _, def := range fixer.All() {
		doTest(t, build(t, def.Name, nil), fixCase{
			name:     def.Name + " sample",
			expected: def.Sample[1],
			input:    def.Sample[0],
		})
	}
}
