package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"fortio.org/safecast"

	"phpfix/internal/source"
	"phpfix/internal/token"
)

type TokenOutput struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
	Text  string `json:"text"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Line  uint32 `json:"line"`
	Col   uint32 `json:"col"`
}

// tokenOutputs вычисляет смещения токенов: у токенов нет span, позиции
// восстанавливаются суммированием длин, поток без потерь.
func tokenOutputs(toks []token.Token, f *source.File) ([]TokenOutput, error) {
	out := make([]TokenOutput, 0, len(toks))
	var off uint32
	for i, tok := range toks {
		n, err := safecast.Conv[uint32](len(tok.Text))
		if err != nil {
			return nil, fmt.Errorf("token %d too long: %w", i, err)
		}
		pos := f.Position(off)
		out = append(out, TokenOutput{
			Index: i,
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: off,
			End:   off + n,
			Line:  pos.Line,
			Col:   pos.Col,
		})
		off += n
	}
	return out, nil
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, toks []token.Token, f *source.File) error {
	outs, err := tokenOutputs(toks, f)
	if err != nil {
		return err
	}
	for _, o := range outs {
		if _, err := fmt.Fprintf(w, "%4d: %-24s %q at %d:%d\n", o.Index, o.Kind, o.Text, o.Line, o.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, toks []token.Token, f *source.File) error {
	outs, err := tokenOutputs(toks, f)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outs)
}
