package lexer

import (
	"chirp/internal/diag"
	"chirp/internal/source"
	"chirp/internal/token"
)

// Lexer is a lazy forward cursor over the chirp token stream.
// It keeps at most one token of lookahead; checkpoints capture the full
// lexer state and restoring one rewinds the stream exactly.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1-token lookahead buffer
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
		}
	}

	ch := lx.cursor.Peek()
	switch {
	case ch == '"' || ch == '\'':
		return lx.scanString(ch)
	case punctKind(ch) != token.Invalid:
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: punctKind(ch), Span: sp, Text: lx.file.Slice(sp)}
	default:
		return lx.scanIdent()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Checkpoint is a saved lexer state. Restoring one is O(1).
type Checkpoint struct {
	off     uint32
	look    token.Token
	hasLook bool
}

// Offset returns the byte offset the stream resumes at when restored.
func (cp Checkpoint) Offset() uint32 {
	if cp.hasLook {
		return cp.look.Span.Start
	}
	return cp.off
}

// Checkpoint saves the current stream position.
func (lx *Lexer) Checkpoint() Checkpoint {
	cp := Checkpoint{off: lx.cursor.Off}
	if lx.look != nil {
		cp.look = *lx.look
		cp.hasLook = true
	}
	return cp
}

// Restore rewinds the stream to a previously saved checkpoint.
func (lx *Lexer) Restore(cp Checkpoint) {
	lx.cursor.Off = cp.off
	if cp.hasLook {
		look := cp.look
		lx.look = &look
	} else {
		lx.look = nil
	}
}

// File returns the file this lexer reads from.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.At(lx.file.ID, lx.cursor.Off)
}

// skipTrivia consumes ASCII whitespace and //-comments.
// A lone '/' is not part of the format: it is reported once and skipped so
// that lexing stays total.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r':
			lx.cursor.Bump()
		case '/':
			if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '/' {
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				continue
			}
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.report(diag.LexUnknownChar, lx.cursor.SpanFrom(start), "unknown character '/'")
		default:
			return
		}
	}
}

func punctKind(b byte) token.Kind {
	switch b {
	case '(':
		return token.LParen
	case ')':
		return token.RParen
	case '{':
		return token.LBrace
	case '}':
		return token.RBrace
	case '[':
		return token.LBracket
	case ']':
		return token.RBracket
	case ',':
		return token.Comma
	case '=':
		return token.Equal
	}
	return token.Invalid
}
