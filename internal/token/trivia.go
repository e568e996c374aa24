package token

// Trivia are tokens that carry no syntax: whitespace, comments, and the
// Cleared marker. Scans for the "next meaningful token" skip them.

// IsWhitespace reports whether the token is a whitespace run.
func (t Token) IsWhitespace() bool { return t.Kind == Whitespace }

// IsComment reports whether the token is a comment or doc comment.
func (t Token) IsComment() bool { return t.Kind == Comment || t.Kind == DocComment }

// IsTrivia reports whitespace, comments and cleared tokens.
func (t Token) IsTrivia() bool {
	switch t.Kind {
	case Whitespace, Comment, DocComment, Cleared:
		return true
	default:
		return false
	}
}

// IsMeaningful is the complement of IsTrivia.
func (t Token) IsMeaningful() bool { return !t.IsTrivia() }
