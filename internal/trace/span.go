package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	globalSeq   uint64
	globalSpans uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return atomic.AddUint64(&globalSeq, 1)
}

func nextSpanID() uint64 {
	return atomic.AddUint64(&globalSpans, 1)
}

// goroutineID parses the header line of runtime.Stack:
// "goroutine 123 [running]:".
func goroutineID() uint64 {
	var buf [64]byte
	line := buf[:runtime.Stack(buf[:], false)]
	line = bytes.TrimPrefix(line, []byte("goroutine "))
	if end := bytes.IndexByte(line, ' '); end > 0 {
		if gid, err := strconv.ParseUint(string(line[:end]), 10, 64); err == nil {
			return gid
		}
	}
	return 0
}

// Span is one traced step of a run: a command, a pass, a file or a rule
// application on a file.
type Span struct {
	tracer  Tracer
	started time.Time
	ev      Event // общие поля для begin и end
	extra   map[string]string
}

// Begin starts a span under parent (0 for a root span). Spans the tracer
// would drop share one disabled instance.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	return begin(t, Event{Scope: scope, Name: name, ParentID: parent})
}

func begin(t Tracer, base Event) *Span {
	if !active(t, base.Scope) {
		return disabledSpan
	}
	base.SpanID = nextSpanID()
	base.GID = goroutineID()
	s := &Span{tracer: t, started: time.Now(), ev: base}

	ev := base
	ev.Time = s.started
	ev.Seq = NextSeq()
	ev.Kind = KindSpanBegin
	t.Emit(&ev)
	return s
}

// End emits the end event and returns the span duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	ev := s.ev
	ev.Time = now
	ev.Seq = NextSeq()
	ev.Kind = KindSpanEnd
	if detail != "" {
		ev.Detail = detail
	}
	ev.Extra = s.extra
	s.tracer.Emit(&ev)
	return now.Sub(s.started)
}

// WithExtra adds a free-form key-value pair to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// SetEdits records how many stream edits the rule made.
func (s *Span) SetEdits(n uint64) *Span {
	if s.live() {
		s.ev.Edits = n
	}
	return s
}

// Fail marks the span as failed; err becomes the end detail unless End
// is given one.
func (s *Span) Fail(err error) *Span {
	if s.live() && err != nil {
		s.ev.Failed = true
		s.ev.Detail = err.Error()
	}
	return s
}

// ID returns the span ID, 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.ev.SpanID
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}
