package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// StringLit represents a quoted string literal token.
	StringLit

	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBrace represents '{'.
	LBrace
	// RBrace represents '}'.
	RBrace
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
	// Comma represents ','.
	Comma
	// Equal represents '='.
	Equal
)

// String returns a human-readable name used in diagnostics.
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "an invalid token"
	case EOF:
		return "the end of file"
	case Ident:
		return "an identifier"
	case StringLit:
		return "a string literal"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case Comma:
		return "','"
	case Equal:
		return "'='"
	}
	return "an unknown token"
}

// IsPunct reports whether the token kind is single-character punctuation.
func (k Kind) IsPunct() bool {
	switch k {
	case LParen, RParen, LBrace, RBrace, LBracket, RBracket, Comma, Equal:
		return true
	default:
		return false
	}
}

// CloserFor returns the closing kind matching an opening delimiter and
// whether k opens a delimited group.
func (k Kind) CloserFor() (Kind, bool) {
	switch k {
	case LParen:
		return RParen, true
	case LBrace:
		return RBrace, true
	case LBracket:
		return RBracket, true
	default:
		return Invalid, false
	}
}

// IsCloser reports whether the token kind closes a delimited group.
func (k Kind) IsCloser() bool {
	return k == RParen || k == RBrace || k == RBracket
}
