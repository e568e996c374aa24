package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory (circular buffer). At
// LevelError it records every scope, so a failed file can be replayed down
// to its rule applications.
type RingTracer struct {
	mu       sync.RWMutex
	events   []Event
	capacity int
	head     int  // next write position
	full     bool // has wrapped around
	level    Level
}

// NewRingTracer creates a new RingTracer with specified capacity.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{
		events:   make([]Event, capacity),
		capacity: capacity,
		level:    level,
	}
}

// Emit adds an event to the ring buffer.
func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	stored := *ev
	stored.Seq = NextSeq()
	t.events[t.head] = stored
	t.head = (t.head + 1) % t.capacity
	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns a copy of all stored events in chronological order.
func (t *RingTracer) Snapshot() []Event {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.full {
		result := make([]Event, t.head)
		copy(result, t.events[:t.head])
		return result
	}
	result := make([]Event, t.capacity)
	copy(result, t.events[t.head:])
	copy(result[t.capacity-t.head:], t.events[:t.head])
	return result
}

// Dump writes all events to w in the specified format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	return writeEvents(w, t.Snapshot(), format, func(*Event) bool { return true })
}

// FailedFiles lists the files whose span ended with Fail, oldest first.
func (t *RingTracer) FailedFiles() []string {
	var files []string
	for _, ev := range t.Snapshot() {
		if ev.Kind == KindSpanEnd && ev.Scope == ScopeFile && ev.Failed && ev.File != "" {
			files = append(files, ev.File)
		}
	}
	return files
}

// DumpFile writes the events recorded for one file: its span and the rule
// spans nested in it.
func (t *RingTracer) DumpFile(w io.Writer, file string, format Format) error {
	return writeEvents(w, t.Snapshot(), format, func(ev *Event) bool { return ev.File == file })
}

// DumpFailures writes the events of every failed file, or all events when
// no file failed and the run broke down elsewhere.
func (t *RingTracer) DumpFailures(w io.Writer, format Format) error {
	failed := t.FailedFiles()
	if len(failed) == 0 {
		return t.Dump(w, format)
	}
	seen := make(map[string]bool, len(failed))
	for _, f := range failed {
		seen[f] = true
	}
	return writeEvents(w, t.Snapshot(), format, func(ev *Event) bool { return seen[ev.File] })
}

func writeEvents(w io.Writer, events []Event, format Format, keep func(*Event) bool) error {
	for i := range events {
		if !keep(&events[i]) {
			continue
		}
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
