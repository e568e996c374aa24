package token

import "strings"

// Token represents a single source token: its kind and exact text.
type Token struct {
	Kind Kind
	Text string
}

// New builds a token of the given kind.
func New(k Kind, text string) Token {
	return Token{Kind: k, Text: text}
}

// Is reports whether the token has any of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

// Equals compares kind and text exactly.
func (t Token) Equals(other Token) bool {
	return t.Kind == other.Kind && t.Text == other.Text
}

// EqualsText compares the token text exactly.
func (t Token) EqualsText(text string) bool {
	return t.Text == text
}

// EqualsTextFold compares the token text with ASCII case folding.
func (t Token) EqualsTextFold(text string) bool {
	return EqualFoldASCII(t.Text, text)
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsIdent reports whether the token is a bare name.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsLiteral reports whether the token is a numeric or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, Heredoc:
		return true
	default:
		return false
	}
}

// IsObjectOperator reports '->' and '?->'.
func (t Token) IsObjectOperator() bool {
	return t.Kind == ObjectOperator || t.Kind == NullsafeObjectOperator
}

// IsCleared reports whether the token was removed in place.
func (t Token) IsCleared() bool { return t.Kind == Cleared }

// HasNewline reports whether the token text spans a line break.
func (t Token) HasNewline() bool {
	return strings.ContainsAny(t.Text, "\n\r")
}

// IsLineComment reports '//' and '#' comments, which end at a line break.
func (t Token) IsLineComment() bool {
	if t.Kind != Comment {
		return false
	}
	return strings.HasPrefix(t.Text, "//") || strings.HasPrefix(t.Text, "#")
}
