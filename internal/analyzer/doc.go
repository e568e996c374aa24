// Package analyzer answers structural questions about a token stream without
// building a syntax tree: whether an identifier is a call to a free function,
// whether a call targets the current class, and what a function signature
// declares.
//
// Results are plain values holding token indices. They are valid until the
// next mutation that inserts or removes tokens. When a question cannot be
// answered from the tokens alone the analyzer answers false or nil, never an
// error; callers treat that as "do not rewrite".
package analyzer
