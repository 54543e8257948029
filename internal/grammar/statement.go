package grammar

import (
	"chirp/internal/ast"
	"chirp/internal/diag"
	"chirp/internal/source"
	"chirp/internal/token"
)

// parseNode parses one statement. A '}' backtracks so that child
// repetitions end cleanly; anything else that cannot start a statement is
// a cut error.
func (p *Parser) parseNode() *parseErr {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.RBrace:
		return backtrackAt(tok.Span)
	case tok.IdentIs("code"):
		return p.parseCode()
	case tok.IsTemplateCall():
		return p.parseTemplateCall()
	case tok.Kind == token.Ident || tok.Kind == token.StringLit:
		return p.parseSpawn(tok)
	default:
		return cutErr(diag.SynStartStatement, p.diagSpan(),
			"expected an entity statement, got "+tok.Kind.String())
	}
}

// parseCode handles 'code' '(' ident ')'.
func (p *Parser) parseCode() *parseErr {
	h := p.b.Reserve()
	p.advance()
	if _, err := p.expect(token.LParen, diag.SynExpected, "expected '(' after 'code'"); err != nil {
		return err
	}
	name, err := p.expect(token.Ident, diag.SynExpected, "expected a handle name inside 'code'")
	if err != nil {
		return err
	}
	if _, err := p.expect(token.RParen, diag.SynExpected, "expected ')' after the handle name"); err != nil {
		return err
	}
	p.b.WriteSpan(name.Span)
	p.b.Seal(h, ast.KindCode)
	return nil
}

// parseSpawn handles an entity statement. The head is either an identifier
// or a string literal; 'Entity' and 'spawn' heads spawn anonymously, any
// other ident head is a readability label with no semantics of its own, and
// a string head names the entity.
func (p *Parser) parseSpawn(head token.Token) *parseErr {
	p.advance()
	h := p.b.Reserve()
	if head.IdentIs("Entity") || head.IdentIs("spawn") {
		p.b.WriteSpan(source.Span{File: head.Span.File})
	} else {
		p.b.WriteSpan(head.Span)
	}
	countH := p.b.Reserve()
	count, err := p.parseMethodList()
	if err != nil {
		return err
	}
	p.b.Fill(countH, count)
	if err := p.parseChildren(); err != nil {
		return err
	}
	p.b.Seal(h, ast.KindSpawn)
	return nil
}

// parseTemplateCall handles 'name!' '(' args ')' with an optional tail of
// extra methods and children applied at the call site.
func (p *Parser) parseTemplateCall() *parseErr {
	head := p.advance()
	h := p.b.Reserve()
	p.b.WriteSpan(head.Span)
	argsSpan, err := p.parseCallArgs()
	if err != nil {
		return err
	}
	p.b.WriteSpan(argsSpan)
	countH := p.b.Reserve()
	count, err := p.parseMethodList()
	if err != nil {
		return err
	}
	p.b.Fill(countH, count)
	if err := p.parseChildren(); err != nil {
		return err
	}
	p.b.Seal(h, ast.KindTemplate)
	return nil
}

// parseMethodList consumes the optional '(' Method* ')' tail and returns
// the number of method nodes written.
func (p *Parser) parseMethodList() (uint32, *parseErr) {
	if !p.at(token.LParen) {
		return 0, nil
	}
	p.advance()
	var count uint32
	for {
		before := p.offset()
		if err := p.parseMethod(); err != nil {
			if err.cut {
				return 0, err
			}
			break
		}
		count++
		if p.offset() == before {
			panic("grammar: method repetition made no progress")
		}
	}
	if _, err := p.expect(token.RParen, diag.SynBadMethod, "expected a method name or ')'"); err != nil {
		return 0, err
	}
	return count, nil
}

// parseMethod handles Ident ('(' TokenTree* ')')?. A bare string literal in
// method position names the entity: it becomes the synthetic named method,
// recognizable on the read side by its quoted name span.
func (p *Parser) parseMethod() *parseErr {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.StringLit:
		p.advance()
		h := p.b.Reserve()
		p.b.WriteSpan(tok.Span)
		p.b.WriteSpan(tok.Span)
		p.b.Seal(h, ast.KindMethod)
		return nil
	case token.Ident:
		p.advance()
		h := p.b.Reserve()
		p.b.WriteSpan(tok.Span)
		args := source.Span{File: tok.Span.File}
		if p.at(token.LParen) {
			var err *parseErr
			if args, err = p.parseArgsSpan(); err != nil {
				return err
			}
		}
		p.b.WriteSpan(args)
		p.b.Seal(h, ast.KindMethod)
		return nil
	default:
		return backtrackAt(tok.Span)
	}
}

// parseChildren consumes the optional '{' Statement* '}' tail.
func (p *Parser) parseChildren() *parseErr {
	if !p.at(token.LBrace) {
		return nil
	}
	p.advance()
	for {
		before := p.offset()
		if err := p.parseNode(); err != nil {
			if err.cut {
				return err
			}
			break
		}
		if p.offset() == before {
			panic("grammar: statement repetition made no progress")
		}
	}
	if _, err := p.expect(token.RBrace, diag.SynStatementDelimiter, "expected a statement or '}'"); err != nil {
		return err
	}
	return nil
}
