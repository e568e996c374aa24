package token

var keywords = map[string]Kind{
	"abstract":        KwAbstract,
	"and":             KwLogicalOp,
	"array":           KwArray,
	"as":              KwAs,
	"break":           KwBreak,
	"callable":        KwCallable,
	"case":            KwCase,
	"catch":           KwCatch,
	"class":           KwClass,
	"clone":           KwClone,
	"const":           KwConst,
	"continue":        KwContinue,
	"declare":         KwDeclare,
	"default":         KwDefault,
	"die":             KwExit,
	"do":              KwDo,
	"echo":            KwEcho,
	"else":            KwElse,
	"elseif":          KwElseif,
	"empty":           KwEmpty,
	"enddeclare":      KwEnddeclare,
	"endfor":          KwEndfor,
	"endforeach":      KwEndforeach,
	"endif":           KwEndif,
	"endswitch":       KwEndswitch,
	"endwhile":        KwEndwhile,
	"enum":            KwEnum,
	"eval":            KwEval,
	"exit":            KwExit,
	"extends":         KwExtends,
	"final":           KwFinal,
	"finally":         KwFinally,
	"fn":              KwFn,
	"for":             KwFor,
	"foreach":         KwForeach,
	"function":        KwFunction,
	"global":          KwGlobal,
	"goto":            KwGoto,
	"__halt_compiler": KwHaltCompiler,
	"if":              KwIf,
	"implements":      KwImplements,
	"include":         KwInclude,
	"include_once":    KwInclude,
	"instanceof":      KwInstanceof,
	"insteadof":       KwInsteadof,
	"interface":       KwInterface,
	"isset":           KwIsset,
	"list":            KwList,
	"match":           KwMatch,
	"namespace":       KwNamespace,
	"new":             KwNew,
	"or":              KwLogicalOp,
	"print":           KwPrint,
	"private":         KwPrivate,
	"protected":       KwProtected,
	"public":          KwPublic,
	"readonly":        KwReadonly,
	"require":         KwRequire,
	"require_once":    KwRequire,
	"return":          KwReturn,
	"static":          KwStatic,
	"switch":          KwSwitch,
	"throw":           KwThrow,
	"trait":           KwTrait,
	"try":             KwTry,
	"unset":           KwUnset,
	"use":             KwUse,
	"var":             KwVar,
	"while":           KwWhile,
	"xor":             KwLogicalOp,
	"yield":           KwYield,
	"__class__":       KwMagicConst,
	"__dir__":         KwMagicConst,
	"__file__":        KwMagicConst,
	"__function__":    KwMagicConst,
	"__line__":        KwMagicConst,
	"__method__":      KwMagicConst,
	"__namespace__":   KwMagicConst,
	"__trait__":       KwMagicConst,
}

// keywordSpelling is the canonical spelling used by Kind.String.
var keywordSpelling = func() map[Kind]string {
	m := make(map[Kind]string, len(keywords))
	for spelling, k := range keywords {
		if prev, ok := m[k]; ok && prev < spelling {
			continue
		}
		m[k] = spelling
	}
	return m
}()

// LookupKeyword reports whether ident is a reserved word and returns its kind.
// PHP keywords are case-insensitive; only ASCII letters are folded.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ToLowerASCII(ident)]
	return k, ok
}

// ToLowerASCII lower-cases ASCII letters only, the way PHP compares names.
func ToLowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'A' && c <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if b[j] >= 'A' && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

// EqualFoldASCII compares two names the way PHP does for functions and classes.
func EqualFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
