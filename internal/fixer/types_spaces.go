package fixer

import (
	"sort"

	"phpfix/internal/analyzer"
	"phpfix/internal/token"
	"phpfix/internal/tokens"
)

// Space modes for types_spaces.
const (
	SpaceNone   = "none"
	SpaceSingle = "single"
)

var typesSpacesDefinition = Definition{
	Name:    "types_spaces",
	Summary: "A single space or none should be around union type operator.",
	Sample: [2]string{
		"<?php\ntry {} catch (ErrorA | ErrorB $e) {}\n",
		"<?php\ntry {} catch (ErrorA|ErrorB $e) {}\n",
	},
	Options: map[string]any{"space": SpaceNone},
}

// TypesSpaces normalises spacing around '|' in catch clauses, parameter,
// return and property types. Whitespace spanning a line break is never
// touched, and a comment next to '|' does not count as a space.
type TypesSpaces struct {
	space string
	funcs *analyzer.Functions
}

// NewTypesSpaces returns the rule with the given space mode.
func NewTypesSpaces(space string) *TypesSpaces {
	return &TypesSpaces{space: space, funcs: analyzer.NewFunctions()}
}

func newTypesSpacesFromOptions(opts Options) (Fixer, error) {
	space, err := opts.String(typesSpacesDefinition.Name, "space", SpaceNone, SpaceNone, SpaceSingle)
	if err != nil {
		return nil, err
	}
	return NewTypesSpaces(space), nil
}

func (*TypesSpaces) IsCandidate(s *tokens.Stream) bool {
	return s.IsKindFound(token.Pipe)
}

func (f *TypesSpaces) ApplyFix(s *tokens.Stream) error {
	pipes, err := f.typePipes(s)
	if err != nil {
		return err
	}
	// с конца, чтобы вставки не сдвигали ещё не обработанные индексы
	sort.Sort(sort.Reverse(sort.IntSlice(pipes)))
	for _, p := range pipes {
		if f.space == SpaceSingle {
			s.EnsureSingleSpace(p)
			switch prev := s.At(p - 1); {
			case prev.Kind != token.Whitespace:
				s.InsertBefore(p, token.New(token.Whitespace, " "))
			case !prev.HasNewline():
				s.Set(p-1, token.New(token.Whitespace, " "))
			}
			continue
		}
		s.RemoveSpaceAt(p + 1)
		s.RemoveSpaceAt(p - 1)
	}
	return nil
}

// typePipes collects the indices of '|' tokens that separate types.
func (f *TypesSpaces) typePipes(s *tokens.Stream) ([]int, error) {
	seen := map[int]struct{}{}
	addRange := func(lo, hi int) {
		for k := lo; k <= hi; k++ {
			if s.At(k).Kind == token.Pipe {
				seen[k] = struct{}{}
			}
		}
	}

	for i := 0; i < s.Len(); i++ {
		if s.At(i).Kind != token.KwCatch {
			continue
		}
		open := s.NextMeaningful(i)
		if s.At(open).Kind != token.LParen {
			continue
		}
		close, err := s.MatchBlockEnd(open)
		if err != nil {
			return nil, err
		}
		addRange(open+1, close-1)
	}

	for _, fn := range declarations(s) {
		args, err := f.funcs.FunctionArguments(s, fn)
		if err != nil {
			return nil, err
		}
		for _, arg := range args {
			if arg.Type != nil {
				addRange(arg.Type.Start, arg.Type.End)
			}
		}
		ret, err := f.funcs.FunctionReturnType(s, fn)
		if err != nil {
			return nil, err
		}
		if ret != nil {
			addRange(ret.Start, ret.End)
		}
	}

	for i := 0; i < s.Len(); i++ {
		if lo, hi, ok := propertyType(s, i); ok {
			addRange(lo, hi)
		}
	}

	out := make([]int, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	return out, nil
}

func isModifier(k token.Kind) bool {
	switch k {
	case token.KwPublic, token.KwProtected, token.KwPrivate, token.KwVar,
		token.KwStatic, token.KwReadonly:
		return true
	}
	return false
}

// propertyType recognises 'private static A|B $x' starting at a modifier
// that opens a class body statement. It returns the range between the last
// modifier and the variable. A '(' may only open a DNF group at the start
// of the type or after '|', so 'new static(A | B)' and 'static::f()' are
// not types.
func propertyType(s *tokens.Stream, i int) (lo, hi int, ok bool) {
	if !isModifier(s.At(i).Kind) {
		return 0, 0, false
	}
	// перед объявлением: '{', ';', '}' или ']' атрибута
	if prev := s.PrevMeaningful(i); prev >= 0 && !s.At(prev).Is(token.LBrace, token.RBrace, token.Semicolon, token.RBracket) {
		return 0, 0, false
	}
	last, depth := i, 0
	typed, afterPipe := false, false
	for j := s.NextMeaningful(i); j >= 0; j = s.NextMeaningful(j) {
		t := s.At(j)
		switch {
		case !typed && isModifier(t.Kind):
			last = j
			continue
		case t.Kind == token.Variable && depth == 0:
			return last + 1, j - 1, typed
		case t.Kind == token.LParen:
			if depth > 0 || (typed && !afterPipe) {
				return 0, 0, false
			}
			depth++
		case t.Kind == token.RParen:
			if depth == 0 {
				return 0, 0, false
			}
			depth--
		case t.Kind == token.Pipe:
			if !typed {
				return 0, 0, false
			}
		case t.Is(token.Ident, token.NsSeparator, token.Question, token.Amp, token.KwArray, token.KwCallable):
		default:
			return 0, 0, false
		}
		typed = true
		afterPipe = t.Kind == token.Pipe
	}
	return 0, 0, false
}
