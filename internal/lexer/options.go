package lexer

import (
	"chirp/internal/diag"
	"chirp/internal/source"
)

type Options struct {
	// Reporter may be nil; lexing errors are then dropped (lexing continues
	// either way, the stream stays total).
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
