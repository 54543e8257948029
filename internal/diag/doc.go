// Package diag defines the diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: a Severity, a stable numeric Code, a
// message, a primary source.Span and optional secondary Notes. Phases emit
// through the Reporter interface so that storage and formatting stay out of
// the lexer, grammar and interpreter. BagReporter aggregates diagnostics
// into a Bag, which supports sorting, capping and deduplication.
//
// Rendering lives in internal/diagfmt; this package does no IO.
package diag
