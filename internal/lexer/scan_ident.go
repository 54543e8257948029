package lexer

import (
	"chirp/internal/token"
)

// scanIdent scans a maximal run of identifier bytes. Anything that is not
// punctuation, a quote or ASCII whitespace continues an identifier; this is
// what lets `button!` (template call) and `widgets/` (use path) lex as a
// single token.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && isIdentByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: lx.file.Slice(sp)}
}

func isIdentByte(b byte) bool {
	switch b {
	case '=', '(', ')', '{', '}', '[', ']', ',', '"', '\'', ' ', '\n', '\t', '\r':
		return false
	}
	return true
}
