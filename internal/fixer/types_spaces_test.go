package fixer_test

import (
	"testing"

	"phpfix/internal/fixer"
)

func TestTypesSpacesNone(t *testing.T) {
	cases := []fixCase{
		{name: "catch", expected: "<?php try {} catch (ErrorA|ErrorB $e) {}", input: "<?php try {} catch (ErrorA | ErrorB $e) {}"},
		{name: "catch wide", expected: "<?php try {} catch (ErrorA|ErrorB $e) {}", input: "<?php try {} catch (ErrorA    |    ErrorB $e) {}"},
		{name: "parameter", expected: "<?php function foo(TypeA|TypeB $x) {}", input: "<?php function foo(TypeA | TypeB $x) {}"},
		{name: "return", expected: "<?php function foo(): TypeA|TypeB {}", input: "<?php function foo(): TypeA | TypeB {}"},
		{name: "property", expected: "<?php class Foo { private array|int $x; }", input: "<?php class Foo { private array | int $x; }"},
		{name: "static property", expected: "<?php class Foo { public static ?A $a; protected static A|null $b; }", input: "<?php class Foo { public static ?A $a; protected static A | null $b; }"},
		{name: "promoted", expected: "<?php class Foo { function __construct(private A|B $x) {} }", input: "<?php class Foo { function __construct(private A | B $x) {} }"},
		{name: "closure", expected: "<?php $f = function (A|B $x) use ($y): int|false {};", input: "<?php $f = function (A | B $x) use ($y): int | false {};"},
		{name: "arrow", expected: "<?php $f = fn(int|string $x): int|string => $x;", input: "<?php $f = fn(int | string $x): int | string => $x;"},
		{name: "multiline", expected: "<?php function foo(TypeA\n                |\n                TypeB $x) {}"},
		{name: "comments", expected: "<?php function foo(TypeA/* not a space */|/* not a space */TypeB $x) {}"},
		{name: "line comments", expected: "<?php function foo(TypeA// not a space\n|//not a space\nTypeB $x) {}"},
		{name: "bitwise or", expected: "<?php $a = $b | $c; foo($x | 1);"},
		{name: "import is not a declaration", expected: "<?php use function foo; $a = 1 | 2;"},
		{name: "bitwise or in new static", expected: "<?php class A { function f($m) { return new static(FLAG_A | FLAG_B | $m); } }"},
		{name: "bitwise or after static call", expected: "<?php class A { function f() { static::g(A | B); static fn() => X | Y; } }"},
		{
			name:     "dnf property",
			expected: "<?php class Foo { #[Inject] private (A&B)|null $x; }",
			input:    "<?php class Foo { #[Inject] private (A&B) | null $x; }",
		},
	}
	for _, tc := range cases {
		doTest(t, fixer.NewTypesSpaces(fixer.SpaceNone), tc)
	}
}

func TestTypesSpacesSingle(t *testing.T) {
	cases := []fixCase{
		{name: "catch", expected: "<?php try {} catch (ErrorA | ErrorB $e) {}", input: "<?php try {} catch (ErrorA|ErrorB $e) {}"},
		{name: "catch wide", expected: "<?php try {} catch (ErrorA | ErrorB $e) {}", input: "<?php try {} catch (ErrorA    |    ErrorB $e) {}"},
		{name: "parameter", expected: "<?php function foo(TypeA | TypeB | null $x) {}", input: "<?php function foo(TypeA|TypeB  |null $x) {}"},
		{name: "property", expected: "<?php class Foo { var int | string $x; }", input: "<?php class Foo { var int|string $x; }"},
		{name: "multiline", expected: "<?php function foo(TypeA\n                |\n                TypeB $x) {}"},
		{
			name:     "comments",
			expected: "<?php function foo(TypeA/* not a space */ | /* not a space */TypeB $x) {}",
			input:    "<?php function foo(TypeA/* not a space */|/* not a space */TypeB $x) {}",
		},
		{
			name:     "line comments",
			expected: "<?php function foo(TypeA// not a space\n| //not a space\nTypeB $x) {}",
			input:    "<?php function foo(TypeA// not a space\n|//not a space\nTypeB $x) {}",
		},
		{name: "bitwise or", expected: "<?php $a = $b|$c;"},
		{name: "bitwise or in new static", expected: "<?php class A { function f($m) { return new static(FLAG_A|FLAG_B|$m); } }"},
	}
	for _, tc := range cases {
		doTest(t, fixer.NewTypesSpaces(fixer.SpaceSingle), tc)
	}
}

func TestTypesSpacesFromOptions(t *testing.T) {
	doTest(t, build(t, "types_spaces", fixer.Options{"space": "single"}), fixCase{
		name:     "configured",
		expected: "<?php function foo(): A | B {}",
		input:    "<?php function foo(): A|B {}",
	})
}
