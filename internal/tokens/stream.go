package tokens

import (
	"fmt"
	"strings"

	"phpfix/internal/lexer"
	"phpfix/internal/token"
)

// Stream is an ordered, mutable sequence of tokens.
type Stream struct {
	toks   []token.Token
	counts [256]int // сколько токенов каждого вида, для IsKindFound
	rev    uint64
}

// New wraps toks without validating block balance. The slice is owned by
// the stream afterwards.
func New(toks []token.Token) *Stream {
	s := &Stream{toks: toks}
	for _, t := range toks {
		s.counts[t.Kind]++
	}
	return s
}

// FromCode lexes code and checks that every block is balanced.
func FromCode(code string) (*Stream, error) {
	return FromBytes([]byte(code))
}

// FromBytes is FromCode for raw file content.
func FromBytes(src []byte) (*Stream, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	s := New(toks)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of tokens, cleared ones included.
func (s *Stream) Len() int { return len(s.toks) }

// At returns the token at i. Out of range indices yield an Invalid token.
func (s *Stream) At(i int) token.Token {
	if i < 0 || i >= len(s.toks) {
		return token.Token{Kind: token.Invalid}
	}
	return s.toks[i]
}

// Tokens returns a copy of the underlying tokens.
func (s *Stream) Tokens() []token.Token {
	out := make([]token.Token, len(s.toks))
	copy(out, s.toks)
	return out
}

// Set replaces the token at i. Setting an equal token is not a change.
func (s *Stream) Set(i int, t token.Token) {
	old := s.toks[i]
	if old.Equals(t) {
		return
	}
	s.counts[old.Kind]--
	s.counts[t.Kind]++
	s.toks[i] = t
	s.rev++
}

// Clear replaces the token at i with the Cleared marker, keeping positions.
func (s *Stream) Clear(i int) {
	s.Set(i, token.Token{Kind: token.Cleared})
}

// InsertAt inserts toks before position i; later indices shift right.
func (s *Stream) InsertAt(i int, toks ...token.Token) {
	if len(toks) == 0 {
		return
	}
	if i < 0 || i > len(s.toks) {
		panic(fmt.Sprintf("tokens: insert position %d out of range [0,%d]", i, len(s.toks)))
	}
	s.toks = append(s.toks[:i], append(append([]token.Token(nil), toks...), s.toks[i:]...)...)
	for _, t := range toks {
		s.counts[t.Kind]++
	}
	s.rev++
}

// InsertBefore is InsertAt(i, ...).
func (s *Stream) InsertBefore(i int, toks ...token.Token) { s.InsertAt(i, toks...) }

// InsertAfter inserts toks right after position i.
func (s *Stream) InsertAfter(i int, toks ...token.Token) { s.InsertAt(i+1, toks...) }

// RemoveAt deletes the token at i; later indices shift left.
func (s *Stream) RemoveAt(i int) {
	s.counts[s.toks[i].Kind]--
	s.toks = append(s.toks[:i], s.toks[i+1:]...)
	s.rev++
}

// Compact drops cleared tokens and merges whitespace runs that became
// adjacent, so the stream matches what the lexer would produce for its text.
func (s *Stream) Compact() {
	out := s.toks[:0]
	changed := false
	for _, t := range s.toks {
		if t.Kind == token.Cleared {
			changed = true
			continue
		}
		if t.Kind == token.Whitespace && len(out) > 0 && out[len(out)-1].Kind == token.Whitespace {
			out[len(out)-1].Text += t.Text
			changed = true
			continue
		}
		out = append(out, t)
	}
	if !changed {
		return
	}
	// хвост старого массива больше не нужен
	clear(s.toks[len(out):])
	s.toks = out
	s.counts = [256]int{}
	for _, t := range out {
		s.counts[t.Kind]++
	}
	s.rev++
}

// Clone returns an independent copy with the same revision.
func (s *Stream) Clone() *Stream {
	return &Stream{toks: s.Tokens(), counts: s.counts, rev: s.rev}
}

// Revision increases with every mutation of this stream.
func (s *Stream) Revision() uint64 { return s.rev }

// Changed reports whether the stream was mutated since it was built.
func (s *Stream) Changed() bool { return s.rev != 0 }

// IsKindFound reports in O(1) whether any token has kind k.
func (s *Stream) IsKindFound(k token.Kind) bool { return s.counts[k] > 0 }

// IsAnyKindFound reports whether at least one of kinds occurs.
func (s *Stream) IsAnyKindFound(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if s.counts[k] > 0 {
			return true
		}
	}
	return false
}

// IsAllKindsFound reports whether every one of kinds occurs.
func (s *Stream) IsAllKindsFound(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if s.counts[k] == 0 {
			return false
		}
	}
	return true
}

// Code serializes the stream; cleared tokens contribute nothing.
func (s *Stream) Code() string {
	var sb strings.Builder
	for _, t := range s.toks {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

func (s *Stream) String() string { return s.Code() }

// Bytes is Code as a byte slice.
func (s *Stream) Bytes() []byte { return []byte(s.Code()) }

// Offset returns the byte offset at which token i starts in Code().
func (s *Stream) Offset(i int) int {
	off := 0
	for j := 0; j < i && j < len(s.toks); j++ {
		off += len(s.toks[j].Text)
	}
	return off
}
