package watch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"phpfix/internal/driver"
	"phpfix/internal/project"
)

func newFinder(t *testing.T, base string) *driver.Finder {
	t.Helper()
	f, err := driver.NewFinder(project.FinderConfig{Exclude: []string{"vendor/**"}, Extensions: []string{".php"}}, base)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFlushBatchesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.php")
	b := filepath.Join(dir, "b.php")
	for _, p := range []string{a, b} {
		if err := os.WriteFile(p, []byte("<?php\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var got [][]string
	w, err := New(time.Hour, newFinder(t, dir), func(paths []string) { got = append(got, paths) })
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()

	w.scheduleChange(b)
	w.scheduleChange(a)
	w.scheduleChange(b)
	w.scheduleChange(filepath.Join(dir, "gone.php"))
	w.flushChanges()

	if len(got) != 1 || strings.Join(got[0], ",") != a+","+b {
		t.Fatalf("batches = %v", got)
	}
	w.flushChanges()
	if len(got) != 1 {
		t.Fatal("empty flush must not call back")
	}
}

func TestWantedFiltersFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(0, newFinder(t, dir), func([]string) {})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()

	if w.debounce != DefaultDebounce {
		t.Fatalf("debounce = %v", w.debounce)
	}
	cases := map[string]bool{
		filepath.Join(dir, "a.php"):                true,
		filepath.Join(dir, "a.txt"):                false,
		filepath.Join(dir, ".phpfix-123"):          false,
		filepath.Join(dir, "vendor", "x", "a.php"): false,
	}
	for path, want := range cases {
		if got := w.wanted(path); got != want {
			t.Errorf("wanted(%s) = %v, want %v", path, got, want)
		}
	}
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "src"), 0o755); err != nil {
		t.Fatal(err)
	}
	changes := make(chan []string, 4)
	w, err := New(20*time.Millisecond, newFinder(t, dir), func(paths []string) { changes <- paths })
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()
	if err := w.Watch([]string{dir}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	target := filepath.Join(dir, "src", "a.php")
	if err := os.WriteFile(target, []byte("<?php\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "src", "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case paths := <-changes:
		if len(paths) != 1 || paths[0] != target {
			t.Fatalf("paths = %v", paths)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}
