package grammar

import (
	"chirp/internal/diag"
	"chirp/internal/source"
)

// parseErr distinguishes the two failure modes of the grammar. A backtrack
// error ends the current alternative or repetition and is usually swallowed
// by the caller; a cut error means the parser already committed to a
// construct and the failure is final. Only backtrack errors may rewind the
// stream.
type parseErr struct {
	cut  bool
	code diag.Code
	span source.Span
	msg  string
}

func backtrackAt(span source.Span) *parseErr {
	return &parseErr{code: diag.SynUnexpected, span: span, msg: "unexpected token"}
}

func cutErr(code diag.Code, span source.Span, msg string) *parseErr {
	return &parseErr{cut: true, code: code, span: span, msg: msg}
}
