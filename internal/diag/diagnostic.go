package diag

import (
	"chirp/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the central record produced by every phase.
// Primary points at the offending construct; Notes add secondary spans.
// A Diagnostic owns its data and outlives the AST it was produced from.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
