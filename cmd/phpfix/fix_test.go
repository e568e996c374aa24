package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"phpfix/internal/driver"
	"phpfix/internal/project"
)

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Fatalf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected an error")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Fatal("explicit modes must win")
	}
}

func TestDiscoverFilesUsesFinderPaths(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"src/a.php", "lib/b.php", "vendor/c.php"} {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("<?php\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cfg := project.Default(root)
	cfg.Finder.Paths = []string{"src", "vendor"}

	files, err := discoverFiles(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != filepath.Join(root, "src", "a.php") {
		t.Fatalf("files = %v", files)
	}

	files, err = discoverFiles(cfg, []string{filepath.Join(root, "lib")})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || !strings.HasSuffix(files[0], "b.php") {
		t.Fatalf("files = %v", files)
	}
}

func TestApplyRuleFlag(t *testing.T) {
	cfg := project.Default(t.TempDir())
	if err := applyRuleFlag(cfg, "  "); err != nil {
		t.Fatal(err)
	}
	if len(cfg.EnabledRules()) != 4 {
		t.Fatalf("blank flag must keep the configured rules: %v", cfg.EnabledRules())
	}
	if err := applyRuleFlag(cfg, "types_spaces,single_line_throw"); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(cfg.EnabledRules(), ","); got != "types_spaces,single_line_throw" {
		t.Fatalf("rules = %s", got)
	}
}

func TestExitStatus(t *testing.T) {
	report := &driver.Report{Files: []driver.FileResult{{Path: "a.php", Status: driver.StatusFixed}}}

	r := &fixRunner{flags: fixFlags{dryRun: true}}
	var exitErr *exitError
	if err := r.exitStatus(report); !errors.As(err, &exitErr) || exitErr.code != exitCodeWouldChange {
		t.Fatalf("dry run with changes: %v", err)
	}

	r.flags.dryRun = false
	if err := r.exitStatus(report); err != nil {
		t.Fatalf("applied fixes are a success: %v", err)
	}

	report.Files = append(report.Files, driver.FileResult{Path: "b.php", Status: driver.StatusError})
	if err := r.exitStatus(report); err == nil || errors.As(err, &exitErr) {
		t.Fatalf("failed files: %v", err)
	}
}
