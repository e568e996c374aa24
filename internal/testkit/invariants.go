package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"phpfix/internal/source"
	"phpfix/internal/token"
)

// CheckTokenInvariants runs the lexer invariants on the tokens of one file:
// 1) no token is empty or Cleared
// 2) token texts joined back give the file content byte for byte
// 3) no two whitespace tokens are adjacent
func CheckTokenInvariants(toks []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	var off uint32
	for i, tok := range toks {
		if tok.Kind == token.Cleared || tok.Kind == token.Invalid {
			return fmt.Errorf("token %d has kind %v", i, tok.Kind)
		}
		if tok.Text == "" {
			return fmt.Errorf("token %d (%v) is empty", i, tok.Kind)
		}
		if i > 0 && tok.Kind == token.Whitespace && toks[i-1].Kind == token.Whitespace {
			return fmt.Errorf("tokens %d and %d are both whitespace", i-1, i)
		}

		n, err := safecast.Conv[uint32](len(tok.Text))
		if err != nil {
			return fmt.Errorf("token %d length overflow: %w", i, err)
		}
		end := off + n
		if int(end) > len(sf.Content) {
			return fmt.Errorf("token %d ends at %d beyond content length %d", i, end, len(sf.Content))
		}
		if string(sf.Content[off:end]) != tok.Text {
			return fmt.Errorf("token %d text %q does not match content at %d", i, tok.Text, off)
		}
		off = end
	}
	if int(off) != len(sf.Content) {
		return fmt.Errorf("tokens cover %d of %d bytes", off, len(sf.Content))
	}
	return nil
}
