package analyzer_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpfix/internal/analyzer"
	"phpfix/internal/token"
	"phpfix/internal/tokens"
)

func stream(t *testing.T, code string) *tokens.Stream {
	t.Helper()
	s, err := tokens.FromCode(code)
	require.NoError(t, err)
	return s
}

func globalCalls(t *testing.T, code string) []int {
	t.Helper()
	s := stream(t, code)
	a := analyzer.NewFunctions()
	found := []int{}
	for i := 0; i < s.Len(); i++ {
		if a.IsGlobalFunctionCall(s, i) {
			found = append(found, i)
		}
	}
	return found
}

func TestIsGlobalFunctionCall(t *testing.T) {
	cases := []struct {
		name string
		code string
		want []int
	}{
		{"constant", `<?php CONSTANT;`, []int{}},
		{"plain call", `<?php foo("bar");`, []int{1}},
		{"leading backslash", `<?php \foo("bar");`, []int{2}},
		{"qualified", `<?php foo\bar("baz");`, []int{}},
		{"static call", `<?php foo::bar("baz");`, []int{}},
		{"method call", `<?php $foo->bar("baz");`, []int{}},
		{"nullsafe method call", `<?php $x?->count();`, []int{}},
		{"instantiation", `<?php new bar("baz");`, []int{}},
		{"declaration", `<?php function foo() {}`, []int{}},
		{"by-ref declaration", `<?php function & foo() {}`, []int{}},
		{"relative name", `<?php namespace\foo("bar");`, []int{}},
		{"arrow function", `<?php $foo = fn() => false;`, []int{}},
		{
			"declared in global namespace",
			"<?php\n                function A(){}\n                A();\n            ",
			[]int{10},
		},
		{
			"case-insensitive name",
			"<?php\n                function A(){}\n                a();\n            ",
			[]int{10},
		},
		{
			"explicit global namespace block",
			"<?php\n                namespace {\n                    function A(){}\n                    A();\n                }\n            ",
			[]int{14},
		},
		{
			"declared in the same named namespace",
			"<?php\n                namespace Z {\n                    function A(){}\n                    A();\n                }\n            ",
			[]int{16},
		},
		{
			"declared in the same statement namespace",
			"<?php\n            namespace Z;\n\n            function A(){}\n            A();\n            ",
			[]int{15},
		},
		{
			"by-ref declaration then call",
			"<?php\n                function & A(){}\n                A();\n            ",
			[]int{12},
		},
		{
			"method of the same name",
			"<?php\n                class Foo\n                {\n                    public function A(){}\n                }\n                A();\n            ",
			[]int{20},
		},
		{
			"declared in another namespace only",
			"<?php\n                namespace A {\n                    function A(){}\n                }\n                namespace B {\n                    A();\n                }\n            ",
			[]int{},
		},
		{
			"imported in another namespace only",
			"<?php\n                namespace A {\n                    use function A;\n                }\n                namespace B {\n                    use function D;\n                    A();\n                }\n            ",
			[]int{},
		},
		{"qualified function import", "<?php\n                use function X\\a;\n                A();\n            ", []int{}},
		{"class import", "<?php\n                use A;\n                A();\n            ", []int{7}},
		{"const import is ignored", "<?php\n                use const A;\n                A();\n            ", []int{9}},
		{"unrelated import", "<?php\n                use function A;\n                str_repeat($a, $b);\n            ", []int{9}},
		{
			"closure after declaration",
			"<?php\n                namespace {\n                    function A(){}\n                    A();\n                    $b = function(){};\n                }\n            ",
			[]int{14},
		},
		{
			"repeated calls",
			`<?php implode($a);implode($a);implode($a);implode($a);implode($a);implode($a);`,
			[]int{1, 6, 11, 16, 21, 26},
		},
		{
			"spaced import name",
			"<?php\n                    use function \\  str_repeat;\n                    str_repeat($a, $b);\n                ",
			[]int{11},
		},
		{
			"anonymous classes",
			"<?php\n$z = new class(\n    new class(){ private function A(){} }\n){\n    public function A() {}\n};\n\nA();\n                ",
			[]int{46},
		},
		{"dynamic new", `<?php $a = new (foo());`, []int{8}},
		{"dynamic instanceof", `<?php $b = $foo instanceof (foo());`, []int{10}},
		{"attribute", "<?php\n#[\\Attribute(\\Attribute::TARGET_CLASS)]\nclass Foo {}\n", []int{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, globalCalls(t, tc.code))
		})
	}
}

func TestCallResolutionInNamespaces(t *testing.T) {
	a := analyzer.NewFunctions()

	cases := []struct {
		name string
		code string
		want bool
	}{
		{
			"own declaration wins over another namespace",
			`<?php namespace A { function A(){} } namespace B { function A(){} A(); }`,
			true,
		},
		{"function import", `<?php namespace N; use function A; A();`, true},
		{"aliased import", `<?php namespace N; use function Foo as Bar; bar();`, true},
		{"aliased qualified import", `<?php namespace N; use function X\Foo as Bar; Bar();`, false},
		{"grouped import", `<?php namespace N; use function X\{strlen, trim}; trim();`, false},
		{"grouped mixed import", `<?php namespace N; use X\{Foo, function bar as baz}; Baz();`, false},
		{"comma import", `<?php namespace N; use function a, b; b();`, true},
		{"nothing visible", `<?php namespace N; A();`, false},
		{"leading backslash in namespace", `<?php namespace N; \A();`, true},
		{"closure inherits imports", `<?php namespace N; use function strlen; $f = function () { return strlen('x'); };`, true},
		{"closure use clause is not an import", `<?php namespace N; $f = function () use ($A) { return A(); };`, false},
		{"nested declaration does not count", `<?php namespace N; function outer() { function A() {} } A();`, false},
		{"conditional declaration counts", `<?php namespace N; if (true) { function A() {} } A();`, true},
		{"declaration in previous statement namespace", `<?php namespace P; function A(){} namespace Q; A();`, false},
		{"trait use is not an import", `<?php namespace N; class C { use A; } A();`, false},
		{"after braced global namespace", `<?php namespace N { } namespace { A(); }`, true},
		{"statement namespace then braced", `<?php namespace P; function A(){} namespace Q { A(); }`, false},
		{"braced namespace then statement", `<?php namespace P { function A(){} } namespace Q; A();`, false},
		{"declared in statement namespace after braced", `<?php namespace P { } namespace Q; function A(){} A();`, true},
		{"braced global block after statement namespace", `<?php namespace P; function A(){} namespace { A(); }`, true},
		{"code after braced namespace", `<?php namespace P { function A(){} } A();`, false},
		{"code before statement namespace", `<?php A(); namespace P;`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := stream(t, tc.code)
			idx := -1
			for i := s.Len() - 1; i >= 0; i-- {
				if s.At(i).Kind == token.Ident && s.NextMeaningful(i) >= 0 && s.At(s.NextMeaningful(i)).Kind == token.LParen {
					idx = i
					break
				}
			}
			require.GreaterOrEqual(t, idx, 0)
			assert.Equal(t, tc.want, a.IsGlobalFunctionCall(s, idx))
		})
	}
}

func TestCacheFollowsRevision(t *testing.T) {
	a := analyzer.NewFunctions()
	s := stream(t, `<?php namespace N; function f(){} f();`)
	call := s.Len() - 4 // f ( ) ;
	require.Equal(t, "f", s.At(call).Text)
	require.True(t, a.IsGlobalFunctionCall(s, call))

	// переименовали объявление: кэш не должен отдать старый ответ
	decl := s.NextOfKind(0, token.Ident)
	decl = s.NextOfKind(decl, token.Ident)
	require.Equal(t, "f", s.At(decl).Text)
	s.Set(decl, token.New(token.Ident, "g"))
	assert.False(t, a.IsGlobalFunctionCall(s, call))
}

func TestIsTheSameClassCall(t *testing.T) {
	template := `<?php
            class Foo {
                public function methodOne() {
                    $x = %sotherMethod(1, 2, 3);
                }
            }
        `
	a := analyzer.NewFunctions()

	s := stream(t, fmt.Sprintf(template, "$this->"))
	assert.False(t, a.IsTheSameClassCall(s, -1))

	// 24 is the index of "otherMethod"
	for _, prefix := range []string{"$this->", "self::", "static::"} {
		s := stream(t, fmt.Sprintf(template, prefix))
		for i := 0; i < 40; i++ {
			assert.Equal(t, i == 24, a.IsTheSameClassCall(s, i), "%s at %d", prefix, i)
		}
	}

	cases := map[string]bool{
		"$THIS->":    true,
		"$this?->":   true,
		"$this::":    true,
		"parent::":   true,
		"SELF::":     true,
		"$notThis->": false,
		"Bar::":      false,
	}
	for prefix, want := range cases {
		s := stream(t, fmt.Sprintf(template, prefix))
		assert.Equal(t, want, a.IsTheSameClassCall(s, 24), prefix)
	}
}
