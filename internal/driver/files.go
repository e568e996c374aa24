package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"phpfix/internal/project"
)

// Finder selects files under a set of roots.
type Finder struct {
	base       string
	extensions []string
	excludes   []glob.Glob
}

// NewFinder compiles the exclude patterns of cfg. Patterns are matched with
// '/' as separator against the path relative to base, and against the base
// name.
func NewFinder(cfg project.FinderConfig, base string) (*Finder, error) {
	f := &Finder{base: base, extensions: cfg.Extensions}
	if len(f.extensions) == 0 {
		f.extensions = []string{".php"}
	}
	for _, p := range cfg.Exclude {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		f.excludes = append(f.excludes, g)
	}
	return f, nil
}

// Excluded reports whether path matches an exclude pattern.
func (f *Finder) Excluded(path string, isDir bool) bool {
	rel := f.rel(path)
	name := filepath.Base(path)
	for _, g := range f.excludes {
		if g.Match(rel) || g.Match(name) {
			return true
		}
		// "vendor/**" должен отсекать и сам каталог
		if isDir && g.Match(rel+"/") {
			return true
		}
	}
	return false
}

// Matches reports whether path has one of the configured extensions.
func (f *Finder) Matches(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range f.extensions {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

func (f *Finder) rel(path string) string {
	if f.base != "" {
		if r, err := filepath.Rel(f.base, path); err == nil && !strings.HasPrefix(r, "..") {
			return filepath.ToSlash(r)
		}
	}
	return filepath.ToSlash(path)
}

// List walks roots and returns the matching files sorted and without
// duplicates. A root naming a file is returned as is.
func (f *Finder) List(roots []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && f.Excluded(path, true) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !f.Matches(path) || f.Excluded(path, false) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ListFiles is NewFinder followed by List.
func ListFiles(roots []string, cfg project.FinderConfig, base string) ([]string, error) {
	f, err := NewFinder(cfg, base)
	if err != nil {
		return nil, err
	}
	return f.List(roots)
}
