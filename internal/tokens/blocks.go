package tokens

import "phpfix/internal/token"

// BlockType identifies a delimiter pair.
type BlockType uint8

const (
	// BlockNone means the token does not delimit a block.
	BlockNone BlockType = iota
	// BlockParenthesis is '(' ... ')'.
	BlockParenthesis
	// BlockCurly is '{' ... '}'.
	BlockCurly
	// BlockIndex is '[' ... ']'; attributes '#[' share its closer.
	BlockIndex
)

func (b BlockType) String() string {
	switch b {
	case BlockParenthesis:
		return "parenthesis"
	case BlockCurly:
		return "curly brace"
	case BlockIndex:
		return "square bracket"
	default:
		return "none"
	}
}

// DetectBlock classifies a token as an opener or a closer of some block type.
func DetectBlock(t token.Token) (bt BlockType, opener bool) {
	switch t.Kind {
	case token.LParen:
		return BlockParenthesis, true
	case token.RParen:
		return BlockParenthesis, false
	case token.LBrace:
		return BlockCurly, true
	case token.RBrace:
		return BlockCurly, false
	case token.LBracket, token.AttributeOpen:
		return BlockIndex, true
	case token.RBracket:
		return BlockIndex, false
	default:
		return BlockNone, false
	}
}

// MatchBlockEnd returns the index of the closer matching the opener at open.
// It runs in O(distance) and keeps only a depth counter.
func (s *Stream) MatchBlockEnd(open int) (int, error) {
	bt, opener := DetectBlock(s.At(open))
	if bt == BlockNone || !opener {
		return -1, structuralf(open, "%q is not a block opener", s.At(open).Text)
	}
	depth := 0
	for i := open; i < len(s.toks); i++ {
		b, isOpen := DetectBlock(s.toks[i])
		if b != bt {
			continue
		}
		if isOpen {
			depth++
			continue
		}
		depth--
		if depth == 0 {
			return i, nil
		}
	}
	return -1, structuralf(open, "unterminated %s block", bt)
}

// MatchBlockStart returns the index of the opener matching the closer at
// close.
func (s *Stream) MatchBlockStart(close int) (int, error) {
	bt, opener := DetectBlock(s.At(close))
	if bt == BlockNone || opener {
		return -1, structuralf(close, "%q is not a block closer", s.At(close).Text)
	}
	depth := 0
	for i := close; i >= 0; i-- {
		b, isOpen := DetectBlock(s.toks[i])
		if b != bt {
			continue
		}
		if !isOpen {
			depth++
			continue
		}
		depth--
		if depth == 0 {
			return i, nil
		}
	}
	return -1, structuralf(close, "unmatched %s closer", bt)
}

// Validate checks that all blocks are balanced and properly nested.
func (s *Stream) Validate() error {
	type open struct {
		bt    BlockType
		index int
	}
	var stack []open
	for i, t := range s.toks {
		bt, isOpen := DetectBlock(t)
		if bt == BlockNone {
			continue
		}
		if isOpen {
			stack = append(stack, open{bt: bt, index: i})
			continue
		}
		if len(stack) == 0 {
			return structuralf(i, "unmatched %s closer", bt)
		}
		top := stack[len(stack)-1]
		if top.bt != bt {
			return structuralf(i, "%s closer does not match %s opened at token %d", bt, top.bt, top.index)
		}
		stack = stack[:len(stack)-1]
	}
	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return structuralf(top.index, "unterminated %s block", top.bt)
	}
	return nil
}
