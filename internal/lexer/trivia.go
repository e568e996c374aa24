package lexer

import (
	"phpfix/internal/token"
)

// scanWhitespace склеивает подряд идущие пробелы, табы и переводы строк
// в один токен.
func (lx *Lexer) scanWhitespace() token.Token {
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.Whitespace, start)
}

// scanLineComment reads '//' or '#' up to, but not including, the line break
// or a closing '?>' tag.
func (lx *Lexer) scanLineComment() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || b == '\r' {
			break
		}
		if b == '?' && lx.cursor.PeekAt(1) == '>' {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.Comment, start)
}

// scanBlockComment reads '/* ... */'. '/**' followed by whitespace is a doc
// comment; '/**/' is a plain one.
func (lx *Lexer) scanBlockComment() token.Token {
	start := lx.cursor.Mark()
	kind := token.Comment
	if lx.cursor.PeekAt(2) == '*' && isSpace(lx.cursor.PeekAt(3)) {
		kind = token.DocComment
	}
	lx.cursor.Skip(2)
	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			return lx.emit(kind, start)
		}
		lx.cursor.Bump()
	}
	lx.fail(uint32(start), "unterminated comment")
	return token.Token{}
}
