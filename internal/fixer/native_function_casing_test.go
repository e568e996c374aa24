package fixer_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"phpfix/internal/fixer"
	"phpfix/internal/tokens"
)

func TestNativeFunctionCasing(t *testing.T) {
	cases := []fixCase{
		{name: "global call", expected: "<?php strlen($a); Str_Repeat_X();", input: "<?php STRLEN($a); Str_Repeat_X();"},
		{name: "leading backslash", expected: "<?php \\strlen($a);", input: "<?php \\StrLen($a);"},
		{name: "already lower", expected: "<?php strlen($a);"},
		{name: "namespaced file", expected: "<?php namespace A; STRLEN($a);"},
		{name: "global namespace block", expected: "<?php namespace { strlen($a); }", input: "<?php namespace { STRLEN($a); }"},
		{name: "method call", expected: "<?php $a->STRLEN(); $a?->Count();"},
		{name: "static call", expected: "<?php Foo::STRLEN();"},
		{name: "declaration", expected: "<?php class A { function STRLEN() {} }"},
		{name: "constant", expected: "<?php echo COUNT;"},
		{name: "instantiation", expected: "<?php new Count();"},
		{name: "qualified", expected: "<?php Foo\\STRLEN();"},
		{
			name:     "function import",
			expected: "<?php namespace A; use function strlen; strlen($a);",
			input:    "<?php namespace A; use function strlen; STRLEN($a);",
		},
	}
	for _, tc := range cases {
		doTest(t, fixer.NewNativeFunctionCasing(), tc)
	}
}

func TestNativeFunctionCasingSharedBetweenWorkers(t *testing.T) {
	f := fixer.NewNativeFunctionCasing()
	cases := []fixCase{
		{expected: "<?php strlen($a);", input: "<?php STRLEN($a);"},
		{expected: "<?php namespace A; STRLEN($a);", input: "<?php namespace A; STRLEN($a);"},
		{expected: "<?php namespace A; function strlen(){} strlen();", input: "<?php namespace A; function strlen(){} STRLEN();"},
		{expected: "<?php namespace { strlen($a); }", input: "<?php namespace { STRLEN($a); }"},
	}

	var wg sync.WaitGroup
	for range 8 {
		for _, tc := range cases {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s, err := tokens.FromCode(tc.input)
				if !assert.NoError(t, err) {
					return
				}
				// повторные прогоны на том же потоке идут через кэш
				for range 3 {
					assert.NoError(t, f.ApplyFix(s))
				}
				assert.Equal(t, tc.expected, s.Code())
			}()
		}
	}
	wg.Wait()
}
