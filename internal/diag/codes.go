package diag

import "fmt"

// Code identifies a kind of problem. The hundreds digit groups codes by
// origin.
type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo  Code = 1000
	LexError Code = 1001

	// Структурные: несбалансированные блоки, сбой правила
	StrInfo       Code = 2000
	StrUnbalanced Code = 2001
	StrRuleFailed Code = 2002

	// Ввод-вывод
	IOInfo        Code = 3000
	IOReadFailed  Code = 3001
	IOWriteFailed Code = 3002

	// Результаты правил (для --dry-run)
	FixInfo        Code = 4000
	FixWouldChange Code = 4001
	FixNotConverge Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:    "Unknown error",
	LexInfo:        "Lexical information",
	LexError:       "Source could not be tokenized",
	StrInfo:        "Structure information",
	StrUnbalanced:  "Unbalanced block",
	StrRuleFailed:  "Rule failed on the token stream",
	IOInfo:         "I/O information",
	IOReadFailed:   "File could not be read",
	IOWriteFailed:  "File could not be written",
	FixInfo:        "Fix information",
	FixWouldChange: "File would be changed",
	FixNotConverge: "Rules did not converge",
}

// ID returns the stable string form, e.g. LEX0001.
func (c Code) ID() string {
	prefix := "E"
	switch c / 1000 {
	case 1:
		prefix = "LEX"
	case 2:
		prefix = "STR"
	case 3:
		prefix = "IO"
	case 4:
		prefix = "FIX"
	}
	return fmt.Sprintf("%s%04d", prefix, c%1000)
}

func (c Code) String() string { return c.ID() }

// Title returns the short description of the code.
func (c Code) Title() string {
	if d, ok := codeDescription[c]; ok {
		return d
	}
	return codeDescription[UnknownCode]
}
