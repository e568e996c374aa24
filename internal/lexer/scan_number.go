package lexer

import (
	"phpfix/internal/token"
)

// scanNumber reads integer and float literals: 0x/0o/0b prefixes, legacy
// octal, '_' separators between digits, fractions and exponents.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			if isHex(lx.cursor.PeekAt(2)) {
				lx.cursor.Skip(2)
				lx.digits(isHex)
				return lx.emit(token.IntLit, start)
			}
		case 'b', 'B':
			if isBin(lx.cursor.PeekAt(2)) {
				lx.cursor.Skip(2)
				lx.digits(isBin)
				return lx.emit(token.IntLit, start)
			}
		case 'o', 'O':
			if isOct(lx.cursor.PeekAt(2)) {
				lx.cursor.Skip(2)
				lx.digits(isOct)
				return lx.emit(token.IntLit, start)
			}
		}
	}

	kind := token.IntLit
	lx.digits(isDec)

	// дробная часть: "1.", "1.5", ".5"
	if lx.cursor.Peek() == '.' && lx.cursor.PeekAt(1) != '.' {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.digits(isDec)
	}

	// экспонента только если за ней действительно цифры
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		sign := lx.cursor.PeekAt(1)
		if isDec(sign) {
			kind = token.FloatLit
			lx.cursor.Bump()
			lx.digits(isDec)
		} else if (sign == '+' || sign == '-') && isDec(lx.cursor.PeekAt(2)) {
			kind = token.FloatLit
			lx.cursor.Skip(2)
			lx.digits(isDec)
		}
	}
	return lx.emit(kind, start)
}

// digits consumes a run of digits; '_' is accepted only between two digits.
func (lx *Lexer) digits(ok func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		switch {
		case ok(b):
			lx.cursor.Bump()
		case b == '_' && ok(lx.cursor.PeekAt(1)):
			lx.cursor.Skip(2)
		default:
			return
		}
	}
}
