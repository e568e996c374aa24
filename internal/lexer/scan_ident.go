package lexer

import (
	"phpfix/internal/token"
)

// scanIdentOrKeyword читает имя и решает, ключевое ли это слово.
// Namespaced names are not joined: 'Foo\Bar' lexes as Foo, '\', Bar.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)

	// после -> и ?-> любое имя это свойство или метод
	if lx.prev == token.ObjectOperator || lx.prev == token.NullsafeObjectOperator {
		return tok
	}

	kind, ok := token.LookupKeyword(tok.Text)
	if !ok {
		return tok
	}
	// Foo::list(), function print(): semi-reserved words used as member names
	if lx.prev == token.KwFunction || (lx.prev == token.DoubleColon && kind != token.KwClass) {
		return tok
	}
	if kind == token.KwEnum && !lx.enumFollows() {
		return tok
	}
	tok.Kind = kind
	return tok
}

// enumFollows reports whether 'enum' starts a declaration: whitespace and
// then a name that is not extends/implements.
func (lx *Lexer) enumFollows() bool {
	m := lx.cursor.Mark()
	defer lx.cursor.Reset(m)

	if !isSpace(lx.cursor.Peek()) {
		return false
	}
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if !isIdentStartByte(lx.cursor.Peek()) {
		return false
	}
	nameStart := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	name := lx.cursor.TextFrom(nameStart)
	return !token.EqualFoldASCII(name, "extends") && !token.EqualFoldASCII(name, "implements")
}

// scanVariable читает $name.
func (lx *Lexer) scanVariable() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '$'
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Variable, start)
}
