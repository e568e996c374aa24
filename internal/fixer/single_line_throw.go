package fixer

import (
	"phpfix/internal/token"
	"phpfix/internal/tokens"
)

var singleLineThrowDefinition = Definition{
	Name:    "single_line_throw",
	Summary: "`throw` must be single line.",
	Sample: [2]string{
		"<?php\nthrow new Exception(\n    'Error',\n    500\n);\n",
		"<?php\nthrow new Exception('Error', 500);\n",
	},
	Options: map[string]any{},
}

// SingleLineThrow joins the argument list of a thrown expression onto the
// throw line.
type SingleLineThrow struct{}

// NewSingleLineThrow returns the rule.
func NewSingleLineThrow() *SingleLineThrow { return &SingleLineThrow{} }

func (*SingleLineThrow) IsCandidate(s *tokens.Stream) bool {
	return s.IsKindFound(token.KwThrow)
}

// ApplyFix collapses the first parenthesised group after each throw, unless
// the statement ends first. Only line-breaking whitespace changes, so
// indices stay valid during the loop.
func (*SingleLineThrow) ApplyFix(s *tokens.Stream) error {
	for i := 0; i < s.Len(); i++ {
		if s.At(i).Kind != token.KwThrow {
			continue
		}
		open := s.NextOfKind(i, token.Semicolon, token.LParen)
		if open < 0 || s.At(open).Kind != token.LParen {
			continue
		}
		close, err := s.MatchBlockEnd(open)
		if err != nil {
			return err
		}
		s.CollapseLineBreaks(open, close)
	}
	return nil
}
