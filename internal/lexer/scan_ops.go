package lexer

import (
	"phpfix/internal/token"
)

// castTypes are the names accepted inside a '(type)' cast.
var castTypes = map[string]struct{}{
	"int": {}, "integer": {}, "bool": {}, "boolean": {},
	"float": {}, "double": {}, "real": {}, "string": {}, "binary": {},
	"array": {}, "object": {}, "unset": {},
}

// scanCast reads casts such as '(int)' or '( string )' as a single token.
func (lx *Lexer) scanCast() (token.Token, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '('
	lx.skipSpacesTabs()
	nameStart := lx.cursor.Mark()
	for b := lx.cursor.Peek(); (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z'); b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	name := token.ToLowerASCII(lx.cursor.TextFrom(nameStart))
	lx.skipSpacesTabs()
	if _, ok := castTypes[name]; !ok || !lx.cursor.Eat(')') {
		lx.cursor.Reset(start)
		return token.Token{}, false
	}
	return lx.emit(token.Cast, start), true
}

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
// Operators without a dedicated kind come out as token.Other.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		return lx.emit(k, start)
	}

	switch {
	case lx.try3('?', '-', '>'):
		return emit(token.NullsafeObjectOperator)
	case lx.try3('.', '.', '.'):
		return emit(token.Ellipsis)
	case lx.try3('<', '=', '>'),
		lx.try3('*', '*', '='),
		lx.try3('=', '=', '='),
		lx.try3('!', '=', '='),
		lx.try3('<', '<', '='),
		lx.try3('>', '>', '='),
		lx.try3('?', '?', '='):
		return emit(token.Other)
	case lx.try2(':', ':'):
		return emit(token.DoubleColon)
	case lx.try2('-', '>'):
		return emit(token.ObjectOperator)
	case lx.try2('=', '>'):
		return emit(token.DoubleArrow)
	case lx.try2('+', '+'), lx.try2('-', '-'),
		lx.try2('&', '&'), lx.try2('|', '|'), lx.try2('?', '?'),
		lx.try2('=', '='), lx.try2('!', '='), lx.try2('<', '>'),
		lx.try2('<', '='), lx.try2('>', '='),
		lx.try2('<', '<'), lx.try2('>', '>'), lx.try2('*', '*'),
		lx.try2('+', '='), lx.try2('-', '='), lx.try2('*', '='),
		lx.try2('/', '='), lx.try2('.', '='), lx.try2('%', '='),
		lx.try2('&', '='), lx.try2('|', '='), lx.try2('^', '='):
		return emit(token.Other)
	}

	// односимвольные
	switch lx.cursor.Bump() {
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case '\\':
		return emit(token.NsSeparator)
	case '&':
		return emit(token.Amp)
	case '|':
		return emit(token.Pipe)
	case '?':
		return emit(token.Question)
	case '=':
		return emit(token.Assign)
	case '$':
		return emit(token.Dollar)
	default:
		// + - * / % . ! < > ^ ~ @ и всё остальное
		return emit(token.Other)
	}
}
