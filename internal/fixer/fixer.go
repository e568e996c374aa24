package fixer

import (
	"fmt"

	"phpfix/internal/tokens"
)

// Fixer is a single rewriting rule.
//
// IsCandidate is a cheap pre-check, usually on token kind presence; it must
// not mutate the stream. ApplyFix rewrites the stream in place. A rule that
// returns an error may have left the stream partially modified, so the
// caller has to discard it.
type Fixer interface {
	IsCandidate(s *tokens.Stream) bool
	ApplyFix(s *tokens.Stream) error
}

// Definition describes a rule for `phpfix rules` and configuration.
type Definition struct {
	Name    string
	Summary string
	// Sample is a short before/after example, before on the first line.
	Sample [2]string
	// Options lists accepted option keys with their defaults.
	Options map[string]any
}

// Options are the raw option values from the configuration file.
type Options map[string]any

// OptionError reports a bad rule option value.
type OptionError struct {
	Rule   string
	Option string
	Msg    string
}

func (e *OptionError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("rule %s: %s", e.Rule, e.Msg)
	}
	return fmt.Sprintf("rule %s: option %q: %s", e.Rule, e.Option, e.Msg)
}

// String reads a string option, falling back to def when it is absent.
func (o Options) String(rule, key, def string, allowed ...string) (string, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", &OptionError{Rule: rule, Option: key, Msg: fmt.Sprintf("expected a string, got %T", raw)}
	}
	if len(allowed) == 0 {
		return v, nil
	}
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", &OptionError{Rule: rule, Option: key, Msg: fmt.Sprintf("unknown value %q, expected one of %v", v, allowed)}
}

// Bool reads a boolean option.
func (o Options) Bool(rule, key string, def bool) (bool, error) {
	raw, ok := o[key]
	if !ok {
		return def, nil
	}
	v, ok := raw.(bool)
	if !ok {
		return false, &OptionError{Rule: rule, Option: key, Msg: fmt.Sprintf("expected a boolean, got %T", raw)}
	}
	return v, nil
}

// checkKeys rejects option keys the rule does not know.
func (o Options) checkKeys(def Definition) error {
	for k := range o {
		if _, ok := def.Options[k]; !ok {
			return &OptionError{Rule: def.Name, Option: k, Msg: "unknown option"}
		}
	}
	return nil
}
