package tokens_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpfix/internal/lexer"
	"phpfix/internal/token"
	"phpfix/internal/tokens"
)

func mustStream(t *testing.T, code string) *tokens.Stream {
	t.Helper()
	s, err := tokens.FromCode(code)
	require.NoError(t, err)
	return s
}

func TestFromCodeRoundTrip(t *testing.T) {
	for _, code := range []string{
		"",
		"<?php\n",
		"<?php\r\nnamespace A { function f(array $a = [1, [2]]) { return $a[0] ?? null; } }\r\n",
		"<h1><?= $title ?></h1>\n",
		"<?php #[Route('/x', methods: ['GET'])] function g() {}",
	} {
		s := mustStream(t, code)
		assert.Equal(t, code, s.Code())
		assert.False(t, s.Changed())
	}
}

func TestFromCodeErrors(t *testing.T) {
	_, err := tokens.FromCode("<?php 'open")
	var lexErr *lexer.LexError
	require.True(t, errors.As(err, &lexErr), "want *lexer.LexError, got %v", err)

	cases := map[string]int{
		"<?php f(;":     2,
		"<?php f());":   4,
		"<?php [(]);":   3,
		"<?php { ( } )": 5,
	}
	for code, index := range cases {
		_, err := tokens.FromCode(code)
		var se *tokens.StructuralError
		require.True(t, errors.As(err, &se), "%q: want *StructuralError, got %v", code, err)
		assert.Equal(t, index, se.Index, code)
	}
}

func TestMutationsTrackKindsAndRevision(t *testing.T) {
	s := mustStream(t, "<?php throw $e;")
	require.True(t, s.IsKindFound(token.KwThrow))
	assert.False(t, s.IsKindFound(token.KwNew))
	assert.True(t, s.IsAnyKindFound(token.KwNew, token.Variable))
	assert.False(t, s.IsAllKindsFound(token.KwNew, token.Variable))

	rev := s.Revision()
	s.Set(1, s.At(1)) // то же самое значение
	assert.Equal(t, rev, s.Revision())

	s.Clear(1)
	assert.False(t, s.IsKindFound(token.KwThrow))
	assert.Equal(t, token.Cleared, s.At(1).Kind)
	assert.Equal(t, "<?php  $e;", s.Code())
	assert.Greater(t, s.Revision(), rev)

	s.InsertAfter(0, token.New(token.KwReturn, "return"))
	assert.True(t, s.IsKindFound(token.KwReturn))
	assert.Equal(t, "<?php return $e;", s.Code())

	s.RemoveAt(1)
	assert.False(t, s.IsKindFound(token.KwReturn))
	assert.Equal(t, token.Invalid, s.At(-1).Kind)
	assert.Equal(t, token.Invalid, s.At(s.Len()).Kind)
}

func TestCompact(t *testing.T) {
	s := mustStream(t, "<?php a ( b );")
	// "<?php ", a, " ", (, " ", b, " ", ), ;
	s.Clear(3)
	s.Compact()
	assert.Equal(t, "<?php a  b );", s.Code())
	assert.Equal(t, 7, s.Len())
	assert.Equal(t, "  ", s.At(2).Text)
	assert.False(t, s.IsKindFound(token.Cleared))

	rev := s.Revision()
	s.Compact()
	assert.Equal(t, rev, s.Revision(), "compacting a clean stream is not a change")
}

func TestCloneIsIndependent(t *testing.T) {
	s := mustStream(t, "<?php foo();")
	c := s.Clone()
	c.Set(1, token.New(token.Ident, "bar"))
	assert.Equal(t, "<?php foo();", s.Code())
	assert.Equal(t, "<?php bar();", c.Code())
}

func TestNavigation(t *testing.T) {
	s := mustStream(t, "<?php throw /* x */ new E( 1 );")
	// 0 open, 1 throw, 2 ws, 3 comment, 4 ws, 5 new, 6 ws, 7 E, 8 (, 9 ws, 10 1, 11 ws, 12 ), 13 ;
	assert.Equal(t, 8, s.NextOfKind(1, token.Semicolon, token.LParen))
	assert.Equal(t, 13, s.NextOfKind(8, token.Semicolon))
	assert.Equal(t, -1, s.NextOfKind(13, token.Semicolon))
	assert.Equal(t, 1, s.PrevOfKind(8, token.KwThrow))
	assert.Equal(t, 5, s.NextMeaningful(1))
	assert.Equal(t, 1, s.PrevMeaningful(5))
	assert.Equal(t, 3, s.NextNonWhitespace(1))
	assert.Equal(t, 3, s.PrevNonWhitespace(5))
	assert.Equal(t, len("<?php throw /* x */ "), s.Offset(5))
}

func TestMatchBlocks(t *testing.T) {
	s := mustStream(t, "<?php #[A([1])] function f() { $a[0] = [fn() => (1)]; }")

	for i := 0; i < s.Len(); i++ {
		bt, opener := tokens.DetectBlock(s.At(i))
		if bt == tokens.BlockNone || !opener {
			continue
		}
		end, err := s.MatchBlockEnd(i)
		require.NoError(t, err)
		start, err := s.MatchBlockStart(end)
		require.NoError(t, err)
		assert.Equal(t, i, start, "symmetry for opener %d", i)
	}

	end, err := s.MatchBlockEnd(1) // #[
	require.NoError(t, err)
	assert.Equal(t, "]", s.At(end).Text)
	assert.Equal(t, 8, end)

	_, err = s.MatchBlockEnd(2)
	var se *tokens.StructuralError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Index)

	_, err = s.MatchBlockStart(1)
	require.ErrorAs(t, err, &se)
}

func TestMatchBlockUnterminated(t *testing.T) {
	s := tokens.New([]token.Token{
		token.New(token.OpenTag, "<?php "),
		token.New(token.LParen, "("),
		token.New(token.LParen, "("),
		token.New(token.RParen, ")"),
	})
	_, err := s.MatchBlockEnd(1)
	var se *tokens.StructuralError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 1, se.Index)
	assert.Error(t, s.Validate())
}

func TestCollapseLineBreaks(t *testing.T) {
	s := mustStream(t, "<?php f(\n    'a',\n    1\n);")
	open := s.NextOfKind(0, token.LParen)
	end, err := s.MatchBlockEnd(open)
	require.NoError(t, err)
	s.CollapseLineBreaks(open, end)
	assert.Equal(t, "<?php f('a', 1);", s.Code())

	s = mustStream(t, "<?php f(\n    1, // one\n    2\n);")
	open = s.NextOfKind(0, token.LParen)
	end, err = s.MatchBlockEnd(open)
	require.NoError(t, err)
	s.CollapseLineBreaks(open, end)
	assert.Equal(t, "<?php f(1, // one\n    2);", s.Code())
}

func TestSpacingHelpers(t *testing.T) {
	s := mustStream(t, "<?php A|B |\nC")
	// 0 open, 1 A, 2 |, 3 B, 4 ws, 5 |, 6 ws\n, 7 C
	s.EnsureSingleSpace(5)
	s.EnsureSingleSpace(1)
	assert.Equal(t, "<?php A |B |\nC", s.Code())

	s.RemoveSpaceAt(5) // " " before the second pipe
	s.RemoveSpaceAt(7) // keeps the line break
	assert.Equal(t, "<?php A |B|\nC", s.Code())
}
