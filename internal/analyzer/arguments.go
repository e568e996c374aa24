package analyzer

import (
	"strings"

	"phpfix/internal/token"
	"phpfix/internal/tokens"
)

// TypeSpan is a declared type: its text without trivia and the inclusive
// token range it covers.
type TypeSpan struct {
	Text  string
	Start int
	End   int
}

// IsNullable reports '?T' and unions that include null.
func (t *TypeSpan) IsNullable() bool {
	if strings.HasPrefix(t.Text, "?") {
		return true
	}
	for _, part := range strings.Split(t.Text, "|") {
		if token.EqualFoldASCII(strings.Trim(part, "()"), "null") {
			return true
		}
	}
	return false
}

// IsUnion reports 'A|B' types.
func (t *TypeSpan) IsUnion() bool {
	return strings.Contains(t.Text, "|")
}

// ArgumentInfo describes one declared parameter.
type ArgumentInfo struct {
	Name       string // with the leading '$'
	NameIndex  int
	Default    string // verbatim source text of the default value
	HasDefault bool
	Type       *TypeSpan // nil when untyped
}

// FunctionArguments returns the parameters of the function, method, closure
// or arrow function whose keyword is at i, in declaration order.
func (a *Functions) FunctionArguments(s *tokens.Stream, i int) ([]ArgumentInfo, error) {
	open, close, err := parameterBlock(s, i)
	if err != nil {
		return nil, err
	}

	args := []ArgumentInfo{}
	start := open + 1
	for j := open + 1; j <= close; j++ {
		t := s.At(j)
		if bt, isOpen := tokens.DetectBlock(t); bt != tokens.BlockNone && isOpen {
			end, err := s.MatchBlockEnd(j)
			if err != nil {
				return nil, err
			}
			j = end
			continue
		}
		if t.Kind != token.Comma && j != close {
			continue
		}
		if arg, ok := parseParameter(s, start, j-1); ok {
			args = append(args, arg)
		}
		start = j + 1
	}
	return args, nil
}

// parameterBlock finds the '(' after i and its closer.
func parameterBlock(s *tokens.Stream, i int) (open, close int, err error) {
	open = s.NextOfKind(i, token.LParen)
	if open < 0 {
		return -1, -1, &tokens.StructuralError{Index: i, Msg: "no parameter list after declaration"}
	}
	close, err = s.MatchBlockEnd(open)
	if err != nil {
		return -1, -1, err
	}
	return open, close, nil
}

// parseParameter reads one comma separated segment [lo, hi]. Segments
// without a variable, such as the gap after a trailing comma, are skipped.
func parseParameter(s *tokens.Stream, lo, hi int) (ArgumentInfo, bool) {
	arg := ArgumentInfo{NameIndex: -1}
	var typ *TypeSpan
	var typeText strings.Builder

	for j := lo; j <= hi; j++ {
		t := s.At(j)
		if t.IsTrivia() {
			continue
		}
		if arg.NameIndex >= 0 {
			if t.Kind == token.Assign {
				arg.HasDefault = true
				arg.Default = meaningfulText(s, j+1, hi)
				break
			}
			continue
		}

		switch t.Kind {
		case token.AttributeOpen:
			if end, err := s.MatchBlockEnd(j); err == nil {
				j = end
			}
		case token.Variable:
			arg.Name, arg.NameIndex = t.Text, j
		case token.Ellipsis, token.KwPublic, token.KwProtected, token.KwPrivate, token.KwReadonly:
		case token.Amp:
			// A&B это пересечение типов, &$x это ссылка
			if typ != nil && !s.At(s.NextMeaningful(j)).Is(token.Variable, token.Ellipsis) {
				typ.End = j
				typeText.WriteString(t.Text)
			}
		default:
			if typ == nil {
				typ = &TypeSpan{Start: j}
			}
			typ.End = j
			typeText.WriteString(t.Text)
		}
	}

	if arg.NameIndex < 0 {
		return ArgumentInfo{}, false
	}
	if typ != nil {
		typ.Text = typeText.String()
		arg.Type = typ
	}
	return arg, true
}

// meaningfulText returns the source between the first and last meaningful
// tokens of [lo, hi], inner trivia included.
func meaningfulText(s *tokens.Stream, lo, hi int) string {
	for lo <= hi && s.At(lo).IsTrivia() {
		lo++
	}
	for hi >= lo && s.At(hi).IsTrivia() {
		hi--
	}
	var sb strings.Builder
	for j := lo; j <= hi; j++ {
		sb.WriteString(s.At(j).Text)
	}
	return sb.String()
}

// FunctionReturnType returns the declared return type of the function whose
// keyword is at i, or nil when there is none. A closure's 'use (...)' clause
// is skipped.
func (a *Functions) FunctionReturnType(s *tokens.Stream, i int) (*TypeSpan, error) {
	_, close, err := parameterBlock(s, i)
	if err != nil {
		return nil, err
	}

	j := s.NextMeaningful(close)
	if j >= 0 && s.At(j).Kind == token.KwUse {
		_, useClose, err := parameterBlock(s, j)
		if err != nil {
			return nil, err
		}
		j = s.NextMeaningful(useClose)
	}
	if j < 0 || s.At(j).Kind != token.Colon {
		return nil, nil
	}

	var typ *TypeSpan
	var sb strings.Builder
	for k := s.NextMeaningful(j); k >= 0; k = s.NextMeaningful(k) {
		t := s.At(k)
		if t.Is(token.LBrace, token.Semicolon, token.DoubleArrow) {
			break
		}
		if typ == nil {
			typ = &TypeSpan{Start: k}
		}
		typ.End = k
		sb.WriteString(t.Text)
	}
	if typ != nil {
		typ.Text = sb.String()
	}
	return typ, nil
}
