package tokens

import "phpfix/internal/token"

// NextOfKind returns the first index after from whose token has one of
// kinds, or -1.
func (s *Stream) NextOfKind(from int, kinds ...token.Kind) int {
	for i := from + 1; i < len(s.toks); i++ {
		if s.toks[i].Is(kinds...) {
			return i
		}
	}
	return -1
}

// PrevOfKind returns the last index before from whose token has one of
// kinds, or -1.
func (s *Stream) PrevOfKind(from int, kinds ...token.Kind) int {
	for i := min(from, len(s.toks)) - 1; i >= 0; i-- {
		if s.toks[i].Is(kinds...) {
			return i
		}
	}
	return -1
}

// NextMeaningful skips whitespace, comments and cleared tokens after i.
func (s *Stream) NextMeaningful(i int) int {
	for j := i + 1; j < len(s.toks); j++ {
		if s.toks[j].IsMeaningful() {
			return j
		}
	}
	return -1
}

// PrevMeaningful skips whitespace, comments and cleared tokens before i.
func (s *Stream) PrevMeaningful(i int) int {
	for j := min(i, len(s.toks)) - 1; j >= 0; j-- {
		if s.toks[j].IsMeaningful() {
			return j
		}
	}
	return -1
}

// NextNonWhitespace is like NextMeaningful but stops at comments.
func (s *Stream) NextNonWhitespace(i int) int {
	for j := i + 1; j < len(s.toks); j++ {
		if k := s.toks[j].Kind; k != token.Whitespace && k != token.Cleared {
			return j
		}
	}
	return -1
}

// PrevNonWhitespace is like PrevMeaningful but stops at comments.
func (s *Stream) PrevNonWhitespace(i int) int {
	for j := min(i, len(s.toks)) - 1; j >= 0; j-- {
		if k := s.toks[j].Kind; k != token.Whitespace && k != token.Cleared {
			return j
		}
	}
	return -1
}
