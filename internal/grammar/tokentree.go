package grammar

import (
	"chirp/internal/diag"
	"chirp/internal/source"
	"chirp/internal/token"
)

// parseArgsSpan consumes a method's '(' TokenTree* ')' and returns the span
// covering the whole list, parens included. Argument extraction happens at
// interpretation time; parsing only validates balance.
func (p *Parser) parseArgsSpan() (source.Span, *parseErr) {
	open := p.advance()
	if _, err := p.parseTreeList(false); err != nil {
		return source.Span{}, err
	}
	closeTok, err := p.expect(token.RParen, diag.SynUnbalanced, "expected ')' to close the argument list")
	if err != nil {
		return source.Span{}, err
	}
	return open.Span.Cover(closeTok.Span), nil
}

// parseCallArgs consumes a template call's argument list: comma-separated
// groups of one or more token trees. Returns the span including parens.
func (p *Parser) parseCallArgs() (source.Span, *parseErr) {
	open, err := p.expect(token.LParen, diag.SynExpected, "expected '(' after the template name")
	if err != nil {
		return source.Span{}, err
	}
	if !p.at(token.RParen) {
		for {
			n, err := p.parseTreeList(true)
			if err != nil {
				return source.Span{}, err
			}
			if n == 0 {
				return source.Span{}, cutErr(diag.SynExpected, p.diagSpan(), "expected a template argument")
			}
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	closeTok, err := p.expect(token.RParen, diag.SynUnbalanced, "expected ')' to close the template arguments")
	if err != nil {
		return source.Span{}, err
	}
	return open.Span.Cover(closeTok.Span), nil
}

// parseTreeList consumes consecutive token trees until one backtracks,
// returning how many it consumed.
func (p *Parser) parseTreeList(splitComma bool) (int, *parseErr) {
	n := 0
	for {
		before := p.offset()
		if err := p.parseTokenTree(splitComma); err != nil {
			if err.cut {
				return n, err
			}
			return n, nil
		}
		n++
		if p.offset() == before {
			panic("grammar: token-tree repetition made no progress")
		}
	}
}

// parseTokenTree consumes one token tree: a single ident, string, '=' or
// ',', or a balanced delimited group. Closers backtrack so the enclosing
// repetition can stop; with splitComma set a top-level ',' backtracks too,
// which is how call arguments are separated.
func (p *Parser) parseTokenTree(splitComma bool) *parseErr {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.LParen, token.LBrace, token.LBracket:
		p.advance()
		closer, _ := tok.Kind.CloserFor()
		if _, err := p.parseTreeList(false); err != nil {
			return err
		}
		if _, err := p.expect(closer, diag.SynUnbalanced, "expected "+closer.String()); err != nil {
			return err
		}
		return nil
	case token.Comma:
		if splitComma {
			return backtrackAt(tok.Span)
		}
		p.advance()
		return nil
	case token.Ident, token.StringLit, token.Equal:
		p.advance()
		return nil
	case token.EOF, token.RParen, token.RBrace, token.RBracket:
		return backtrackAt(tok.Span)
	default:
		return cutErr(diag.SynUnbalanced, p.diagSpan(), "unbalanced delimiters")
	}
}
