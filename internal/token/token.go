package token

import (
	"chirp/internal/source"
)

// Token represents a single source token with its location.
// Text is a slice of the original source, never a copy.
type Token struct {
	Kind Kind
	Span source.Span
	Text []byte
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IdentIs reports whether the token is an identifier with exactly this text.
// The grammar uses it to match the contextual keywords (use, fn, pub, code, as).
func (t Token) IdentIs(text string) bool {
	return t.Kind == Ident && string(t.Text) == text
}

// IsTemplateCall reports whether the token is an identifier ending in '!',
// which the grammar treats as a template call head.
func (t Token) IsTemplateCall() bool {
	return t.Kind == Ident && len(t.Text) > 1 && t.Text[len(t.Text)-1] == '!'
}
