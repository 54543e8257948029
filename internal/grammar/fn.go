package grammar

import (
	"chirp/internal/ast"
	"chirp/internal/diag"
	"chirp/internal/source"
	"chirp/internal/token"
)

// parseFn handles ('pub')? 'fn' name '(' params ')' '{' Statement '}'.
//
// The body statement is parsed into the AST like any other, nested inside
// the fn node, which validates it eagerly. The template table additionally
// records a checkpoint taken right after the body '{' so call sites can
// re-parse the statement with their own bindings.
func (p *Parser) parseFn() *parseErr {
	var flags ast.Block
	if p.lx.Peek().IdentIs("pub") {
		p.advance()
		flags |= ast.FnFlagPub
	}
	if !p.lx.Peek().IdentIs("fn") {
		return cutErr(diag.SynExpected, p.diagSpan(), "expected 'fn' after 'pub'")
	}
	p.advance()
	name, err := p.expect(token.Ident, diag.SynFnName, "expected a template name after 'fn'")
	if err != nil {
		return err
	}
	if text := name.Text; text[len(text)-1] == '!' {
		return cutErr(diag.SynFnName, name.Span, "template names are declared without the '!' marker")
	}

	if _, err := p.expect(token.LParen, diag.SynFnParams, "expected '(' after the template name"); err != nil {
		return err
	}
	var params []source.Span
	if p.at(token.Ident) {
		for {
			param := p.advance()
			params = append(params, param.Span)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
			if !p.at(token.Ident) {
				return cutErr(diag.SynFnParams, p.diagSpan(), "expected a parameter name after ','")
			}
		}
	}
	if _, err := p.expect(token.RParen, diag.SynFnParams, "expected ')' after the parameter list"); err != nil {
		return err
	}

	h := p.b.Reserve()
	p.b.WriteSpan(name.Span)
	p.b.Write(flags)
	bodyOffH := p.b.Reserve()
	p.b.Write(ast.Block(len(params)))
	for _, sp := range params {
		p.b.WriteSpan(sp)
	}

	if _, err := p.expect(token.LBrace, diag.SynFnBody, "expected '{' before the template body"); err != nil {
		return err
	}
	body := p.lx.Checkpoint()
	p.b.Fill(bodyOffH, body.Offset())
	if err := p.parseNode(); err != nil {
		if err.cut {
			return err
		}
		return cutErr(diag.SynFnBody, err.span, "expected a statement as the template body")
	}
	if _, err := p.expect(token.RBrace, diag.SynFnBody, "expected '}' after the template body"); err != nil {
		return err
	}
	p.b.Seal(h, ast.KindFn)

	if _, ok := p.tpl.Define(p.lx.File(), name.Span, params, flags&ast.FnFlagPub != 0, body); !ok {
		return cutErr(diag.SynFnName, name.Span, "template '"+string(name.Text)+"' is already defined")
	}
	return nil
}
