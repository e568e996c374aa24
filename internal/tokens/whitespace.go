package tokens

import "phpfix/internal/token"

// CollapseLineBreaks joins the block between open and close onto one line.
// Whitespace containing a line break right after open or right before close
// is cleared; any other such whitespace becomes a single space. Whitespace
// that ends a line comment is left alone.
func (s *Stream) CollapseLineBreaks(open, close int) {
	for i := open + 1; i < close; i++ {
		t := s.toks[i]
		if t.Kind != token.Whitespace || !t.HasNewline() {
			continue
		}
		if prev := s.PrevNonWhitespace(i); prev >= 0 && s.toks[prev].IsLineComment() {
			continue
		}
		if i == open+1 || i == close-1 {
			s.Clear(i)
			continue
		}
		s.Set(i, token.New(token.Whitespace, " "))
	}
}

// EnsureSingleSpace makes the gap between tokens i and i+1 a single space.
// Existing whitespace with a line break is kept.
func (s *Stream) EnsureSingleSpace(i int) {
	next := s.At(i + 1)
	if next.Kind == token.Whitespace {
		if !next.HasNewline() {
			s.Set(i+1, token.New(token.Whitespace, " "))
		}
		return
	}
	s.InsertAt(i+1, token.New(token.Whitespace, " "))
}

// RemoveSpaceAt clears the token at i if it is whitespace on a single line.
func (s *Stream) RemoveSpaceAt(i int) {
	if t := s.At(i); t.Kind == token.Whitespace && !t.HasNewline() {
		s.Clear(i)
	}
}
