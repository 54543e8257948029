// Package grammar parses chirp files with a recursive descent parser.
//
// Single-token lookahead decides every alternative, so the parser never
// consumes input it has to give back. Errors follow the backtrack/cut
// split described in error.go; the first cut error aborts the file, there
// is no recovery.
package grammar

import (
	"chirp/internal/ast"
	"chirp/internal/diag"
	"chirp/internal/lexer"
	"chirp/internal/source"
	"chirp/internal/template"
	"chirp/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

type Result struct {
	File      *ast.File
	Templates *template.Table
	Ok        bool
}

// Parser holds the state for one file parse.
type Parser struct {
	lx       *lexer.Lexer
	b        *ast.Builder
	tpl      *template.Table
	opts     Options
	lastSpan source.Span
}

// ParseFile parses one chirp file: imports, then fn definitions, then at
// most one root statement. On failure the AST is discarded and Result.File
// is nil; the template table is returned either way since fn definitions
// before the error point are still usable.
func ParseFile(src *source.File, opts Options) Result {
	lx := lexer.New(src, lexer.Options{Reporter: opts.Reporter})
	p := &Parser{
		lx:       lx,
		b:        ast.NewBuilder(),
		tpl:      template.NewTable(),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	if err := p.parseChirpFile(); err != nil {
		p.emit(err)
		return Result{Templates: p.tpl}
	}
	return Result{File: p.b.Finish(src), Templates: p.tpl, Ok: true}
}

// ParseStatementAt re-parses a single statement from a saved checkpoint,
// typically a template body at expansion time. The returned AST holds the
// statement as its only top-level node.
func ParseStatementAt(src *source.File, cp lexer.Checkpoint, opts Options) (*ast.File, bool) {
	lx := lexer.New(src, lexer.Options{Reporter: opts.Reporter})
	lx.Restore(cp)
	p := &Parser{
		lx:       lx,
		b:        ast.NewBuilder(),
		tpl:      template.NewTable(),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	if err := p.parseNode(); err != nil {
		p.emit(err)
		return nil, false
	}
	return p.b.Finish(src), true
}

func (p *Parser) parseChirpFile() *parseErr {
	for p.lx.Peek().IdentIs("use") {
		if err := p.parseUse(); err != nil {
			return err
		}
	}
	for p.lx.Peek().IdentIs("pub") || p.lx.Peek().IdentIs("fn") {
		if err := p.parseFn(); err != nil {
			return err
		}
	}
	if !p.at(token.EOF) {
		if err := p.parseNode(); err != nil {
			return err
		}
	}
	if !p.at(token.EOF) {
		return cutErr(diag.SynTrailingText, p.lx.Peek().Span, "expected end of file after the root statement")
	}
	return nil
}

// --- cursor helpers ---

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagSpan picks the span to point a diagnostic at: the next token, or the
// position right after the last consumed token when the stream is at EOF.
func (p *Parser) diagSpan() source.Span {
	peek := p.lx.Peek()
	if (peek.Kind == token.EOF || peek.Kind == token.Invalid) && peek.Span.Empty() {
		if p.lastSpan.End > 0 {
			return source.At(p.lastSpan.File, p.lastSpan.End)
		}
	}
	return peek.Span
}

// expect consumes a token of the given kind or fails with a cut error.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, *parseErr) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, cutErr(code, p.diagSpan(), msg+", got "+p.lx.Peek().Kind.String())
}

// offset is the progress measure for the zero-consumption repetition guard.
func (p *Parser) offset() uint32 {
	return p.lx.Checkpoint().Offset()
}

func (p *Parser) emit(err *parseErr) {
	if p.opts.Reporter == nil {
		return
	}
	p.opts.Reporter.Report(err.code, diag.SevError, err.span, err.msg, nil)
}
