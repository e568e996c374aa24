package project

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"

	"phpfix/internal/fix"
	"phpfix/internal/fixer"
)

// Config is the resolved project configuration.
type Config struct {
	// Path of the file the config came from, empty for defaults.
	Path string
	// Root is the directory relative paths are resolved against.
	Root string

	Finder FinderConfig
	Runner RunnerConfig
	// Rules in the order they appear in the file.
	Rules []RuleConfig
}

// FinderConfig selects the files to fix.
type FinderConfig struct {
	Paths      []string `toml:"paths"`
	Exclude    []string `toml:"exclude"`
	Extensions []string `toml:"extensions"`
}

// RunnerConfig controls how files are processed.
type RunnerConfig struct {
	Jobs      int    `toml:"jobs"`
	MaxPasses int    `toml:"max_passes"`
	Cache     bool   `toml:"cache"`
	CacheFile string `toml:"cache_file"`
}

// RuleConfig is one entry of the [rules] table.
type RuleConfig struct {
	Name    string
	Enabled bool
	Options fixer.Options
}

type rawConfig struct {
	Finder FinderConfig              `toml:"finder"`
	Runner RunnerConfig              `toml:"runner"`
	Rules  map[string]toml.Primitive `toml:"rules"`
}

// Default returns the configuration used when no file is found: every
// registered rule with default options.
func Default(root string) *Config {
	cfg := &Config{
		Root: root,
		Finder: FinderConfig{
			Paths:      []string{"."},
			Exclude:    []string{"vendor/**"},
			Extensions: []string{".php"},
		},
		Runner: RunnerConfig{
			MaxPasses: fix.DefaultMaxPasses,
			Cache:     true,
			CacheFile: ".phpfix.cache",
		},
	}
	for _, def := range fixer.All() {
		cfg.Rules = append(cfg.Rules, RuleConfig{Name: def.Name, Enabled: true})
	}
	return cfg
}

// Load finds .phpfix.toml above startDir and decodes it. Without a file the
// defaults rooted at startDir are returned.
func Load(startDir string) (*Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		if startDir == "" {
			startDir = "."
		}
		root, err := filepath.Abs(startDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve start directory: %w", err)
		}
		return Default(root), nil
	}
	return LoadFile(path)
}

// LoadFile decodes the given configuration file.
func LoadFile(path string) (*Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	cfg := Default(filepath.Dir(abs))
	cfg.Path = abs

	raw := rawConfig{Finder: cfg.Finder, Runner: cfg.Runner}
	meta, err := toml.DecodeFile(abs, &raw)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", abs, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		// ключи внутри [rules] декодируются позже через PrimitiveDecode
		for _, k := range undecoded {
			if len(k) > 0 && k[0] == "rules" {
				continue
			}
			return nil, fmt.Errorf("%s: unknown key %q", abs, k.String())
		}
	}
	cfg.Finder = raw.Finder
	cfg.Runner = raw.Runner

	if meta.IsDefined("rules") {
		rules, err := decodeRules(meta, raw.Rules)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", abs, err)
		}
		cfg.Rules = rules
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", abs, err)
	}
	return cfg, nil
}

func decodeRules(meta toml.MetaData, prims map[string]toml.Primitive) ([]RuleConfig, error) {
	var order []string
	for _, k := range meta.Keys() {
		if len(k) == 2 && k[0] == "rules" {
			order = append(order, k[1])
		}
	}
	rules := make([]RuleConfig, 0, len(order))
	for _, name := range order {
		prim, ok := prims[name]
		if !ok {
			continue
		}
		var v any
		if err := meta.PrimitiveDecode(prim, &v); err != nil {
			return nil, fmt.Errorf("[rules].%s: %w", name, err)
		}
		rc := RuleConfig{Name: name}
		switch val := v.(type) {
		case bool:
			rc.Enabled = val
		case map[string]any:
			rc.Enabled = true
			rc.Options = fixer.Options(val)
		default:
			return nil, fmt.Errorf("[rules].%s: expected a boolean or a table, got %T", name, v)
		}
		rules = append(rules, rc)
	}
	return rules, nil
}

// Validate checks rule names, rule options, runner limits and exclude
// patterns.
func (c *Config) Validate() error {
	if c.Runner.Jobs < 0 {
		return fmt.Errorf("[runner].jobs must not be negative, got %d", c.Runner.Jobs)
	}
	if c.Runner.MaxPasses < 1 {
		return fmt.Errorf("[runner].max_passes must be at least 1, got %d", c.Runner.MaxPasses)
	}
	if len(c.Finder.Extensions) == 0 {
		return fmt.Errorf("[finder].extensions must not be empty")
	}
	for i, ext := range c.Finder.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Finder.Extensions[i] = "." + ext
		}
	}
	for _, pattern := range c.Finder.Exclude {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("[finder].exclude: bad pattern %q: %w", pattern, err)
		}
	}
	seen := make(map[string]bool, len(c.Rules))
	for _, r := range c.Rules {
		if seen[r.Name] {
			return fmt.Errorf("rule %s listed twice", r.Name)
		}
		seen[r.Name] = true
		if _, ok := fixer.Lookup(r.Name); !ok {
			return fmt.Errorf("unknown rule %q", r.Name)
		}
		if !r.Enabled {
			continue
		}
		if _, err := fixer.Build(r.Name, r.Options); err != nil {
			return err
		}
	}
	return nil
}

// Select keeps only the named rules enabled, in the given order. Options
// already configured for a rule are kept.
func (c *Config) Select(names []string) error {
	byName := make(map[string]RuleConfig, len(c.Rules))
	for _, r := range c.Rules {
		byName[r.Name] = r
	}
	selected := make([]RuleConfig, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := fixer.Lookup(name); !ok {
			return fmt.Errorf("unknown rule %q", name)
		}
		rc := byName[name]
		rc.Name = name
		rc.Enabled = true
		selected = append(selected, rc)
	}
	c.Rules = selected
	return nil
}

// EnabledRules returns the names of enabled rules in run order.
func (c *Config) EnabledRules() []string {
	var names []string
	for _, r := range c.Rules {
		if r.Enabled {
			names = append(names, r.Name)
		}
	}
	return names
}

// BuildRules instantiates the enabled rules.
func (c *Config) BuildRules() ([]fix.Rule, error) {
	var rules []fix.Rule
	for _, r := range c.Rules {
		if !r.Enabled {
			continue
		}
		f, err := fixer.Build(r.Name, r.Options)
		if err != nil {
			return nil, err
		}
		rules = append(rules, fix.Rule{Name: r.Name, Fixer: f})
	}
	return rules, nil
}

// Signature identifies the enabled rule set with its options. Cached
// results are only valid for the same signature.
func (c *Config) Signature() Digest {
	var sb strings.Builder
	fmt.Fprintf(&sb, "passes=%d\n", c.Runner.MaxPasses)
	for _, r := range c.Rules {
		if !r.Enabled {
			continue
		}
		sb.WriteString(r.Name)
		keys := make([]string, 0, len(r.Options))
		for k := range r.Options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, " %s=%v", k, r.Options[k])
		}
		sb.WriteByte('\n')
	}
	return Sum(sb.String())
}

// SearchPaths resolves [finder].paths against Root.
func (c *Config) SearchPaths() []string {
	out := make([]string, 0, len(c.Finder.Paths))
	for _, p := range c.Finder.Paths {
		out = append(out, c.resolve(p))
	}
	return out
}

// CachePath is the absolute location of the result cache.
func (c *Config) CachePath() string {
	return c.resolve(c.Runner.CacheFile)
}

func (c *Config) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}
