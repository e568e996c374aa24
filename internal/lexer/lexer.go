package lexer

import (
	"phpfix/internal/source"
	"phpfix/internal/token"
)

// Lexer splits one PHP source file into tokens. Every byte of the input
// belongs to exactly one token, so joining token texts reproduces the file.
type Lexer struct {
	file   *source.File
	cursor Cursor
	inPHP  bool       // false пока мы в inline HTML
	prev   token.Kind // последний значимый токен
	err    *LexError
}

// New creates a lexer positioned at the start of file.
func New(file *source.File) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		prev:   token.Invalid,
	}
}

// Next returns the next token. ok is false at end of input or after the
// first error; Err reports which.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	if lx.err != nil || lx.cursor.EOF() {
		return token.Token{}, false
	}

	if !lx.inPHP {
		tok = lx.scanInlineHTML()
	} else {
		tok = lx.scanPHP()
	}
	if lx.err != nil {
		return token.Token{}, false
	}

	if tok.IsMeaningful() {
		lx.prev = tok.Kind
	}
	return tok, true
}

// Err returns the first lexing error, if any.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

func (lx *Lexer) scanPHP() token.Token {
	ch := lx.cursor.Peek()

	switch {
	case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
		return lx.scanWhitespace()

	case ch == '?' && lx.cursor.PeekAt(1) == '>':
		return lx.scanCloseTag()

	case ch == '#':
		if lx.cursor.PeekAt(1) == '[' {
			start := lx.cursor.Mark()
			lx.cursor.Skip(2)
			return lx.emit(token.AttributeOpen, start)
		}
		return lx.scanLineComment()

	case ch == '/' && lx.cursor.PeekAt(1) == '/':
		return lx.scanLineComment()

	case ch == '/' && lx.cursor.PeekAt(1) == '*':
		return lx.scanBlockComment()

	case ch == '$' && isIdentStartByte(lx.cursor.PeekAt(1)):
		return lx.scanVariable()

	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()

	case ch == '\'':
		return lx.scanSingleQuoted()

	case ch == '"' || ch == '`':
		return lx.scanInterpolated(ch)

	case ch == '<' && lx.cursor.HasPrefixFold("<<<"):
		if tok, ok := lx.scanHeredoc(); ok || lx.err != nil {
			return tok
		}
		return lx.scanOperatorOrPunct()

	case ch == '(':
		if tok, ok := lx.scanCast(); ok {
			return tok
		}
		return lx.scanOperatorOrPunct()

	case ch < 0x20 || ch == 0x7f:
		lx.fail(lx.cursor.Off, "unexpected control character")
		return token.Token{}

	default:
		return lx.scanOperatorOrPunct()
	}
}

// scanInlineHTML читает текст до открывающего тега, либо сам тег.
func (lx *Lexer) scanInlineHTML() token.Token {
	start := lx.cursor.Mark()
	if tok, ok := lx.scanOpenTag(); ok {
		return tok
	}
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '<' && lx.cursor.PeekAt(1) == '?' && lx.isOpenTag() {
			break
		}
		lx.cursor.Bump()
	}
	return lx.emit(token.InlineHTML, start)
}

func (lx *Lexer) isOpenTag() bool {
	if lx.cursor.HasPrefixFold("<?=") {
		return true
	}
	if !lx.cursor.HasPrefixFold("<?php") {
		return false
	}
	after := lx.cursor.PeekAt(5)
	return after == 0 && lx.cursor.Off+5 >= lx.cursor.Limit || isSpace(after)
}

func (lx *Lexer) scanOpenTag() (token.Token, bool) {
	if !lx.isOpenTag() {
		return token.Token{}, false
	}
	start := lx.cursor.Mark()
	lx.inPHP = true
	if lx.cursor.HasPrefixFold("<?=") {
		lx.cursor.Skip(3)
		return lx.emit(token.OpenTagWithEcho, start), true
	}
	lx.cursor.Skip(5)
	// тег забирает ровно один пробельный символ (или \r\n)
	if lx.cursor.Peek() == '\r' && lx.cursor.PeekAt(1) == '\n' {
		lx.cursor.Skip(2)
	} else if isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(token.OpenTag, start), true
}

func (lx *Lexer) scanCloseTag() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Skip(2)
	if lx.cursor.Peek() == '\r' && lx.cursor.PeekAt(1) == '\n' {
		lx.cursor.Skip(2)
	} else {
		lx.cursor.Eat('\n')
	}
	lx.inPHP = false
	return lx.emit(token.CloseTag, start)
}

func (lx *Lexer) emit(k token.Kind, start Mark) token.Token {
	return token.Token{Kind: k, Text: lx.cursor.TextFrom(start)}
}

func (lx *Lexer) fail(off uint32, msg string) {
	if lx.err == nil {
		lx.err = &LexError{Offset: int(off), Msg: msg}
	}
}

// TokenizeFile lexes a whole file. No partial result is returned on error.
func TokenizeFile(f *source.File) ([]token.Token, error) {
	lx := New(f)
	toks := make([]token.Token, 0, len(f.Content)/4+1)
	for {
		tok, ok := lx.Next()
		if !ok {
			break
		}
		toks = append(toks, tok)
	}
	if err := lx.Err(); err != nil {
		return nil, err
	}
	return toks, nil
}

// Tokenize lexes src as an in-memory file.
func Tokenize(src []byte) ([]token.Token, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("input.php", src)
	return TokenizeFile(fs.Get(id))
}
