package fixer

import (
	"strings"

	"phpfix/internal/analyzer"
	"phpfix/internal/token"
	"phpfix/internal/tokens"
)

var nullableTypeDefaultNullDefinition = Definition{
	Name:    "nullable_type_default_null",
	Summary: "Adds or removes `?` before single type declarations for parameters with a default null value.",
	Sample: [2]string{
		"<?php\nfunction sample(string $str = null) {}\n",
		"<?php\nfunction sample(?string $str = null) {}\n",
	},
	Options: map[string]any{"use_nullable_type_declaration": true},
}

// NullableTypeDefaultNull makes the implicit nullability of '= null'
// parameters explicit, or removes the explicit '?' when configured so.
// Union, intersection and mixed types are skipped.
type NullableTypeDefaultNull struct {
	nullable bool
	funcs    *analyzer.Functions
}

// NewNullableTypeDefaultNull returns the rule. With nullable false it
// removes '?' instead of adding it.
func NewNullableTypeDefaultNull(nullable bool) *NullableTypeDefaultNull {
	return &NullableTypeDefaultNull{nullable: nullable, funcs: analyzer.NewFunctions()}
}

func newNullableTypeDefaultNullFromOptions(opts Options) (Fixer, error) {
	nullable, err := opts.Bool(nullableTypeDefaultNullDefinition.Name, "use_nullable_type_declaration", true)
	if err != nil {
		return nil, err
	}
	return NewNullableTypeDefaultNull(nullable), nil
}

func (*NullableTypeDefaultNull) IsCandidate(s *tokens.Stream) bool {
	return s.IsAnyKindFound(token.KwFunction, token.KwFn) && s.IsKindFound(token.Variable)
}

func (f *NullableTypeDefaultNull) ApplyFix(s *tokens.Stream) error {
	decls := declarations(s)
	var changes []*analyzer.TypeSpan
	for _, fn := range decls {
		args, err := f.funcs.FunctionArguments(s, fn)
		if err != nil {
			return err
		}
		for _, arg := range args {
			if arg.Type == nil || !arg.HasDefault || !token.EqualFoldASCII(arg.Default, "null") {
				continue
			}
			if !f.eligible(arg.Type) {
				continue
			}
			changes = append(changes, arg.Type)
		}
	}

	// объявления и параметры идут по возрастанию, правим с конца
	for i := len(changes) - 1; i >= 0; i-- {
		typ := changes[i]
		if f.nullable {
			s.InsertBefore(typ.Start, token.New(token.Question, "?"))
			continue
		}
		s.Clear(typ.Start)
		if next := typ.Start + 1; s.At(next).Kind == token.Whitespace {
			s.Clear(next)
		}
	}
	return nil
}

func (f *NullableTypeDefaultNull) eligible(typ *analyzer.TypeSpan) bool {
	if typ.IsUnion() || strings.Contains(typ.Text, "&") {
		return false
	}
	if f.nullable {
		base := token.ToLowerASCII(typ.Text)
		return !typ.IsNullable() && base != "mixed" && base != "null"
	}
	return strings.HasPrefix(typ.Text, "?")
}
