package lexer

import "fmt"

// LexError reports input that cannot be split into tokens: an unterminated
// literal or comment, or a control byte outside any literal.
type LexError struct {
	Offset int // byte offset where the bad input starts
	Msg    string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at offset %d: %s", e.Offset, e.Msg)
}
