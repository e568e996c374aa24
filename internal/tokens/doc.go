// Package tokens holds the mutable token stream that fixers rewrite.
//
// A Stream is an arena of tokens addressed by position. Positions are not
// identities: InsertAt, RemoveAt and Compact shift every later index, so an
// index computed before such a call must not be used after it. Set and Clear
// keep positions stable. Multi-step rewrites either finish all analysis before
// mutating, or walk backwards so that edits only move indices already visited.
package tokens
