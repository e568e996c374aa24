package tokens

import "fmt"

// StructuralError reports unbalanced or mismatched blocks, or a block
// operation applied to a token that is not a delimiter.
type StructuralError struct {
	Index int // token index where the problem was found
	Msg   string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("structural error at token %d: %s", e.Index, e.Msg)
}

func structuralf(index int, format string, args ...any) *StructuralError {
	return &StructuralError{Index: index, Msg: fmt.Sprintf(format, args...)}
}
