package lexer

import (
	"phpfix/internal/token"
)

// scanSingleQuoted reads '...'; only \' and \\ are escapes.
func (lx *Lexer) scanSingleQuoted() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '\\':
			lx.cursor.Bump()
		case '\'':
			return lx.emit(token.StringLit, start)
		}
	}
	lx.fail(uint32(start), "unterminated string literal")
	return token.Token{}
}

// scanInterpolated reads "..." or `...` as one token, including any
// {$expr} interpolation, which may itself contain quotes.
func (lx *Lexer) scanInterpolated(quote byte) token.Token {
	start := lx.cursor.Mark()
	if !lx.skipInterpolated(quote) {
		lx.fail(uint32(start), "unterminated string literal")
		return token.Token{}
	}
	return lx.emit(token.StringLit, start)
}

// skipInterpolated moves past a quoted literal starting at the cursor.
func (lx *Lexer) skipInterpolated(quote byte) bool {
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		switch {
		case b == '\\':
			lx.cursor.Bump()
		case b == quote:
			return true
		case b == '{' && lx.cursor.Peek() == '$':
			if !lx.skipEmbeddedCode() {
				return false
			}
		case b == '$' && lx.cursor.Peek() == '{':
			lx.cursor.Bump()
			if !lx.skipEmbeddedCode() {
				return false
			}
		}
	}
	return false
}

// skipEmbeddedCode пропускает выражение внутри {$...} или ${...} до
// парной закрывающей скобки; вложенные строки пропускаются целиком.
func (lx *Lexer) skipEmbeddedCode() bool {
	depth := 1
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				lx.cursor.Bump()
				return true
			}
		case '\'':
			if lx.scanSingleQuoted(); lx.err != nil {
				return false
			}
			continue
		case '"', '`':
			if !lx.skipInterpolated(lx.cursor.Peek()) {
				return false
			}
			continue
		}
		lx.cursor.Bump()
	}
	return false
}

// scanHeredoc reads <<<LABEL ... LABEL (or <<<'LABEL' for nowdoc) as one
// token. ok is false when '<<<' does not start a heredoc.
func (lx *Lexer) scanHeredoc() (tok token.Token, ok bool) {
	start := lx.cursor.Mark()
	lx.cursor.Skip(3)
	lx.skipSpacesTabs()

	var quote byte
	if b := lx.cursor.Peek(); b == '\'' || b == '"' {
		quote = b
		lx.cursor.Bump()
	}
	if !isIdentStartByte(lx.cursor.Peek()) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	labelStart := lx.cursor.Mark()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	label := lx.cursor.TextFrom(labelStart)
	if quote != 0 && !lx.cursor.Eat(quote) {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	if !lx.eatNewline() {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}

	// ищем строку, где после отступа стоит метка, не продолженная именем
	for !lx.cursor.EOF() {
		lx.skipSpacesTabs()
		if lx.cursor.HasPrefix(label) {
			m := lx.cursor.Mark()
			lx.cursor.Skip(len(label))
			if !isIdentContinueByte(lx.cursor.Peek()) {
				return lx.emit(token.Heredoc, start), true
			}
			lx.cursor.Reset(m)
		}
		for !lx.cursor.EOF() && !lx.eatNewline() {
			lx.cursor.Bump()
		}
	}
	lx.fail(uint32(start), "unterminated heredoc")
	return token.Token{}, false
}

func (lx *Lexer) eatNewline() bool {
	if lx.cursor.Eat('\n') {
		return true
	}
	if lx.cursor.Eat('\r') {
		lx.cursor.Eat('\n')
		return true
	}
	return false
}
