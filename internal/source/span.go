package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range inside one file. A zero-width span at
// offset 0 stands for the file as a whole.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

// WholeFile is the span diagnostics about the file itself point at.
func WholeFile(id FileID) Span {
	return Span{File: id}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// SpanAt returns [off, off+width) clamped to the content of f. Offsets
// that do not fit a Span fall back to WholeFile.
func (f *File) SpanAt(off, width int) Span {
	n := len(f.Content)
	start := min(max(off, 0), n)
	end := min(start+max(width, 0), n)
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		return WholeFile(f.ID)
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		return WholeFile(f.ID)
	}
	return Span{File: f.ID, Start: s, End: e}
}
