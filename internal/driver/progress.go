package driver

import "time"

// Stage describes a step of processing one file.
type Stage string

const (
	// StageRead loads and tokenizes the file.
	StageRead Stage = "read"
	// StageFix runs the rules.
	StageFix Stage = "fix"
	// StageWrite stores the result.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusFixed means at least one rule changed the file.
	StatusFixed Status = "fixed"
	// StatusClean means no rule changed the file.
	StatusClean Status = "clean"
	// StatusCached means the file was skipped as known clean.
	StatusCached Status = "cached"
	// StatusError means the file could not be processed.
	StatusError Status = "error"
)

// Final reports whether no more events follow for the file.
func (s Status) Final() bool {
	switch s {
	case StatusFixed, StatusClean, StatusCached, StatusError:
		return true
	}
	return false
}

// Event reports progress for a file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
