package fixer

import (
	"phpfix/internal/token"
	"phpfix/internal/tokens"
)

// declarations returns the indices of 'function' and 'fn' keywords that
// start a parameter list: named functions, methods, closures and arrow
// functions. 'use function' imports are not declarations.
func declarations(s *tokens.Stream) []int {
	var out []int
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		if !t.Is(token.KwFunction, token.KwFn) {
			continue
		}
		j := s.NextMeaningful(i)
		if s.At(j).Kind == token.Amp {
			j = s.NextMeaningful(j)
		}
		if t.Kind == token.KwFunction && s.At(j).Kind == token.Ident {
			j = s.NextMeaningful(j)
		}
		if s.At(j).Kind == token.LParen {
			out = append(out, i)
		}
	}
	return out
}
