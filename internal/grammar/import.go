package grammar

import (
	"chirp/internal/ast"
	"chirp/internal/diag"
	"chirp/internal/source"
	"chirp/internal/token"
)

// parseUse handles 'use' path '{' item (',' item)* '}' where an item is an
// ident with an optional 'as' alias. The path is a bare ident (possible
// since '/' is an identifier byte) or a quoted string; a trailing '/'
// before the brace is part of the path and stripped by the resolver.
func (p *Parser) parseUse() *parseErr {
	p.advance()
	h := p.b.Reserve()
	path := p.lx.Peek()
	if path.Kind != token.Ident && path.Kind != token.StringLit {
		return cutErr(diag.SynFileName, p.diagSpan(),
			"expected an import path after 'use', got "+path.Kind.String())
	}
	p.advance()
	p.b.WriteSpan(path.Span)
	if _, err := p.expect(token.LBrace, diag.SynImportItem, "expected '{' after the import path"); err != nil {
		return err
	}
	countH := p.b.Reserve()
	var count uint32
	for {
		name, err := p.expect(token.Ident, diag.SynImportItem, "expected a template name to import")
		if err != nil {
			return err
		}
		alias := source.Span{File: name.Span.File}
		if p.lx.Peek().IdentIs("as") {
			p.advance()
			aliasTok, err := p.expect(token.Ident, diag.SynImportItem, "expected an alias after 'as'")
			if err != nil {
				return err
			}
			alias = aliasTok.Span
		}
		p.b.WriteSpan(name.Span)
		p.b.WriteSpan(alias)
		count++
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.b.Fill(countH, count)
	if _, err := p.expect(token.RBrace, diag.SynImportItem, "expected ',' or '}' in the import list"); err != nil {
		return err
	}
	p.b.Seal(h, ast.KindImport)
	return nil
}
