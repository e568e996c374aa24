package trace

import (
	"strconv"
	"time"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	// ScopeDriver is a whole CLI command.
	ScopeDriver Scope = iota + 1
	// ScopePass is a run phase: discover, fix, write.
	ScopePass
	// ScopeFile is the processing of one file.
	ScopeFile
	// ScopeRule is one rule application on one file.
	ScopeRule
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	case ScopeRule:
		return "rule"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	GID      uint64            // goroutine ID (for concurrent spans)
	Name     string            // e.g. "fix", "file:src/a.php", "rule:types_spaces"
	Detail   string            // optional detail message
	Extra    map[string]string // extensible key-value pairs

	File   string // processed file, inherited by nested spans
	Rule   string // rule of a ScopeRule span
	Pass   int    // fix pass of a ScopeRule span, from 1
	Edits  uint64 // stream edits the rule made
	Failed bool   // the span ended with an error
}

// fields returns Extra merged with the typed attributes worth printing.
func (ev *Event) fields() map[string]string {
	if ev.Rule == "" && !ev.Failed {
		return ev.Extra
	}
	out := make(map[string]string, len(ev.Extra)+3)
	for k, v := range ev.Extra {
		out[k] = v
	}
	if ev.Rule != "" {
		out["pass"] = strconv.Itoa(ev.Pass)
		if ev.Kind == KindSpanEnd {
			out["edits"] = strconv.FormatUint(ev.Edits, 10)
		}
	}
	if ev.Failed {
		out["failed"] = "true"
	}
	return out
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !active(t, scope) {
		return
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: parent,
		GID:      goroutineID(),
		Name:     name,
		Detail:   detail,
	})
}
