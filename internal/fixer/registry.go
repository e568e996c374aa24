package fixer

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a configured rule instance.
type Factory func(opts Options) (Fixer, error)

type entry struct {
	def     Definition
	factory Factory
}

var (
	registryMu sync.RWMutex
	registry   = map[string]entry{}
)

// Register adds a rule. Registering the same name twice panics.
func Register(def Definition, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[def.Name]; dup {
		panic("fixer: duplicate rule " + def.Name)
	}
	registry[def.Name] = entry{def: def, factory: factory}
}

// Lookup returns the definition of a registered rule.
func Lookup(name string) (Definition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := registry[name]
	return e.def, ok
}

// All returns every registered definition sorted by name.
func All() []Definition {
	registryMu.RLock()
	defer registryMu.RUnlock()
	defs := make([]Definition, 0, len(registry))
	for _, e := range registry {
		defs = append(defs, e.def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Build constructs the named rule from its options. Unknown rules and
// unknown option keys are errors.
func Build(name string, opts Options) (Fixer, error) {
	registryMu.RLock()
	e, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown rule %q", name)
	}
	if err := opts.checkKeys(e.def); err != nil {
		return nil, err
	}
	return e.factory(opts)
}

func init() {
	Register(singleLineThrowDefinition, func(Options) (Fixer, error) {
		return NewSingleLineThrow(), nil
	})
	Register(typesSpacesDefinition, newTypesSpacesFromOptions)
	Register(nativeFunctionCasingDefinition, func(Options) (Fixer, error) {
		return NewNativeFunctionCasing(), nil
	})
	Register(nullableTypeDefaultNullDefinition, newNullableTypeDefaultNullFromOptions)
}
