package lexer

import (
	"chirp/internal/diag"
	"chirp/internal/token"
)

// scanString scans a literal delimited by quote (either '"' or '\'').
// A backslash escapes the next byte, including the closing quote. The
// resulting span includes both delimiters. Literals may span lines.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() {
		b := lx.cursor.Bump()
		if b == '\\' {
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		if b == quote {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.file.Slice(sp)}
		}
	}
	// EOF without a closing quote
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.file.Slice(sp)}
}
