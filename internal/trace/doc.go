// Package trace records what phpfix does while it runs: which files were
// processed, which rules touched them and how long each step took.
//
// # Usage
//
//	phpfix fix --trace=- --trace-level=detail src/
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr, text or NDJSON
//   - RingTracer: keeps the last events in memory, dumped when a run fails
//
// # Levels and scopes
//
// LevelPhase shows driver and pass boundaries, LevelDetail adds one span
// per file, LevelDebug adds one span per rule application.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartFile(ctx, "a.php")
//	defer span.End("")
package trace
