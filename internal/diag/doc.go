// Package diag defines the diagnostic model used to report per-file
// problems: files that cannot be tokenized, unbalanced blocks, failing
// rules, I/O errors and, in dry-run mode, files that would change.
//
// A Diagnostic carries a Severity, a Code with a stable string form
// (LEX0001, STR0001, IO0001, FIX0001), a message and a primary source.Span.
// Producers emit through a Reporter; BagReporter collects into a Bag, which
// sorts and deduplicates. Rendering lives in internal/diagfmt.
package diag
