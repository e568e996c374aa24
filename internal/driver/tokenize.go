package driver

import (
	"errors"

	"phpfix/internal/diag"
	"phpfix/internal/lexer"
	"phpfix/internal/source"
	"phpfix/internal/token"
	"phpfix/internal/tokens"
)

// TokenizeResult holds the tokens of one file and any problems found.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file. Lexing and block balance problems end up in the
// bag; only I/O errors are returned.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	toks, err := lexer.TokenizeFile(file)
	if err != nil {
		reportLoadError(diag.BagReporter{Bag: bag}, file, nil, err)
		return &TokenizeResult{FileSet: fs, File: file, Bag: bag}, nil
	}
	if err := tokens.New(toks).Validate(); err != nil {
		reportLoadError(diag.BagReporter{Bag: bag}, file, toks, err)
	}
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  toks,
		Bag:     bag,
	}, nil
}

// loadStream lexes file and checks block balance, reporting failures.
func loadStream(r diag.Reporter, file *source.File) (*tokens.Stream, bool) {
	toks, err := lexer.TokenizeFile(file)
	if err != nil {
		reportLoadError(r, file, nil, err)
		return nil, false
	}
	s := tokens.New(toks)
	if err := s.Validate(); err != nil {
		reportLoadError(r, file, toks, err)
		return nil, false
	}
	return s, true
}

func reportLoadError(r diag.Reporter, file *source.File, toks []token.Token, err error) {
	var lexErr *lexer.LexError
	var structErr *tokens.StructuralError
	switch {
	case errors.As(err, &lexErr):
		diag.ReportError(r, diag.LexError, file.SpanAt(lexErr.Offset, 1), lexErr.Msg).Emit()
	case errors.As(err, &structErr):
		diag.ReportError(r, diag.StrUnbalanced, tokenSpan(file, toks, structErr.Index), structErr.Msg).Emit()
	default:
		diag.ReportError(r, diag.UnknownCode, source.WholeFile(file.ID), err.Error()).Emit()
	}
}

// tokenSpan covers token i of toks, which were lexed from file.
func tokenSpan(file *source.File, toks []token.Token, i int) source.Span {
	if i < 0 || i >= len(toks) {
		return source.WholeFile(file.ID)
	}
	off := 0
	for _, t := range toks[:i] {
		off += len(t.Text)
	}
	return file.SpanAt(off, len(toks[i].Text))
}
