package token_test

import (
	"testing"

	"phpfix/internal/token"
)

func tok(k token.Kind, text string) token.Token {
	return token.Token{Kind: k, Text: text}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Token{
		tok(token.IntLit, "1"), tok(token.FloatLit, "1.5"),
		tok(token.StringLit, "'a'"), tok(token.Heredoc, "<<<A\nA"),
	}
	for _, tk := range lits {
		if !tk.IsLiteral() {
			t.Fatalf("%v should be literal", tk.Kind)
		}
	}
	non := []token.Token{tok(token.Ident, "x"), tok(token.KwNew, "new"), tok(token.LParen, "(")}
	for _, tk := range non {
		if tk.IsLiteral() {
			t.Fatalf("%v must NOT be literal", tk.Kind)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	keywords := []token.Kind{
		token.KwAbstract, token.KwFunction, token.KwFn, token.KwNamespace,
		token.KwUse, token.KwThrow, token.KwNew, token.KwYield, token.KwClass,
	}
	for _, k := range keywords {
		if !tok(k, "").IsKeyword() {
			t.Fatalf("%v should be keyword", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.Variable, token.LParen, token.Other, token.Cleared} {
		if k.IsKeyword() {
			t.Fatalf("%v must NOT be keyword", k)
		}
	}
}

func TestTrivia(t *testing.T) {
	trivia := []token.Token{
		tok(token.Whitespace, " \n"), tok(token.Comment, "// x"),
		tok(token.DocComment, "/** x */"), tok(token.Cleared, ""),
	}
	for _, tk := range trivia {
		if tk.IsMeaningful() {
			t.Fatalf("%v must not be meaningful", tk.Kind)
		}
	}
	if !tok(token.Ident, "foo").IsMeaningful() {
		t.Fatalf("identifier must be meaningful")
	}
}

func TestLineComment(t *testing.T) {
	if !tok(token.Comment, "# hash").IsLineComment() {
		t.Fatalf("hash comment is a line comment")
	}
	if !tok(token.Comment, "// slashes").IsLineComment() {
		t.Fatalf("slash comment is a line comment")
	}
	if tok(token.Comment, "/* block */").IsLineComment() {
		t.Fatalf("block comment is not a line comment")
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.LParen:     "LParen",
		token.KwFunction: "Kw(function)",
		token.KwExit:     "Kw(die)",
		token.Other:      "Other",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

func TestIsObjectOperator(t *testing.T) {
	if !tok(token.ObjectOperator, "->").IsObjectOperator() || !tok(token.NullsafeObjectOperator, "?->").IsObjectOperator() {
		t.Fatalf("both member access operators expected")
	}
	if tok(token.DoubleColon, "::").IsObjectOperator() {
		t.Fatalf(":: is not an object operator")
	}
}
