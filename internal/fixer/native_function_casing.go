package fixer

import (
	"phpfix/internal/analyzer"
	"phpfix/internal/token"
	"phpfix/internal/tokens"
)

var nativeFunctionCasingDefinition = Definition{
	Name:    "native_function_casing",
	Summary: "Function defined by PHP should be called using the correct casing.",
	Sample: [2]string{
		"<?php\nSTRLEN($str);\n",
		"<?php\nstrlen($str);\n",
	},
	Options: map[string]any{},
}

// NativeFunctionCasing lower-cases calls to built-in functions. Calls that
// may resolve to a namespaced function are left alone.
type NativeFunctionCasing struct {
	funcs *analyzer.Functions
}

// NewNativeFunctionCasing returns the rule.
func NewNativeFunctionCasing() *NativeFunctionCasing {
	return &NativeFunctionCasing{funcs: analyzer.NewFunctions()}
}

func (*NativeFunctionCasing) IsCandidate(s *tokens.Stream) bool {
	return s.IsKindFound(token.Ident)
}

func (f *NativeFunctionCasing) ApplyFix(s *tokens.Stream) error {
	// сначала собрать: каждое изменение сбрасывает кеш анализатора
	var fixes []int
	for i := 0; i < s.Len(); i++ {
		t := s.At(i)
		if t.Kind != token.Ident {
			continue
		}
		lower := token.ToLowerASCII(t.Text)
		if lower == t.Text {
			continue
		}
		if _, ok := nativeFunctions[lower]; !ok {
			continue
		}
		if f.funcs.IsGlobalFunctionCall(s, i) {
			fixes = append(fixes, i)
		}
	}
	for _, i := range fixes {
		s.Set(i, token.New(token.Ident, token.ToLowerASCII(s.At(i).Text)))
	}
	return nil
}
