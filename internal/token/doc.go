// Package token defines lexical token kinds for PHP source handled by phpfix.
// Invariants:
//   - Token.Text is the exact source text of the token (original case and bytes).
//   - Whitespace and comments are ordinary tokens; concatenating Text of every
//     token in order reproduces the source byte-for-byte.
//   - Kind is a closed enumeration. Operators without structural meaning share
//     the catch-all Other kind and are told apart by Text.
//   - Cleared marks a removed token; it carries no text and is skipped by every
//     meaningful-token scan.
package token
