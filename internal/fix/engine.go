package fix

import (
	"context"
	"errors"
	"fmt"

	"phpfix/internal/fixer"
	"phpfix/internal/tokens"
	"phpfix/internal/trace"
)

// ErrNoRules is returned when Run is called without rules.
var ErrNoRules = errors.New("no rules to run")

// DefaultMaxPasses bounds the fixed-point loop when Options leaves it zero.
const DefaultMaxPasses = 10

// Rule is a configured fixer with the name it was registered under.
type Rule struct {
	Name  string
	Fixer fixer.Fixer
}

// Options configures a run.
type Options struct {
	MaxPasses int
}

// AppliedFix records a rule application that changed the stream.
type AppliedFix struct {
	Rule string
	Pass int
	// Edits is the number of stream mutations the rule made.
	Edits uint64
}

// SkippedFix records a rule that was never a candidate for the stream.
type SkippedFix struct {
	Rule   string
	Reason string
}

// Result summarises a run over one stream.
type Result struct {
	Applied   []AppliedFix
	Skipped   []SkippedFix
	Passes    int
	Converged bool
}

// Changed reports whether any rule modified the stream.
func (r *Result) Changed() bool { return r != nil && len(r.Applied) > 0 }

// RuleNames returns the distinct names of applied rules in first-use order.
func (r *Result) RuleNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, a := range r.Applied {
		if !seen[a.Rule] {
			seen[a.Rule] = true
			names = append(names, a.Rule)
		}
	}
	return names
}

// RuleError wraps the error of a failing rule. The stream it ran on may
// be partially modified and must be discarded.
type RuleError struct {
	Rule string
	Pass int
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s (pass %d): %v", e.Rule, e.Pass, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

// Run applies rules to s in order, pass after pass, until a whole pass
// leaves the revision unchanged or MaxPasses is reached. Cleared tokens are
// compacted after every rule that changed something, so each rule sees a
// stream shaped like fresh lexer output.
func Run(ctx context.Context, s *tokens.Stream, rules []Rule, opts Options) (*Result, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	maxPasses := opts.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}

	candidate := make([]bool, len(rules))
	res := &Result{}

	for pass := 1; pass <= maxPasses; pass++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Passes = pass
		before := s.Revision()

		for i, r := range rules {
			if !r.Fixer.IsCandidate(s) {
				continue
			}
			candidate[i] = true

			span := trace.BeginRule(ctx, r.Name, pass)
			rev := s.Revision()
			err := r.Fixer.ApplyFix(s)
			edits := s.Revision() - rev
			span.SetEdits(edits).Fail(err).End("")

			if err != nil {
				return res, &RuleError{Rule: r.Name, Pass: pass, Err: err}
			}
			if edits > 0 {
				res.Applied = append(res.Applied, AppliedFix{Rule: r.Name, Pass: pass, Edits: edits})
				s.Compact()
			}
		}

		if s.Revision() == before {
			res.Converged = true
			break
		}
	}

	for i, r := range rules {
		if !candidate[i] {
			res.Skipped = append(res.Skipped, SkippedFix{Rule: r.Name, Reason: "not a candidate"})
		}
	}
	return res, nil
}
