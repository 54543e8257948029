package lexer_test

import (
	"testing"

	"chirp/internal/diag"
	"chirp/internal/lexer"
	"chirp/internal/source"
	"chirp/internal/token"
)

// testReporter collects every diagnostic the lexer reports.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.chirp", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

// expectTokens checks the token kind sequence for an input, ignoring EOF.
func expectTokens(t *testing.T, input string, expected []token.Kind) []token.Token {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	tokens = tokens[:len(tokens)-1] // drop EOF

	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %v\ndiagnostics: %v",
			len(expected), len(tokens), input, tokens, reporter.diagnostics)
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func TestPunctuation(t *testing.T) {
	expectTokens(t, "(){}[],=", []token.Kind{
		token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.LBracket, token.RBracket, token.Comma, token.Equal,
	})
}

func TestIdentifiers(t *testing.T) {
	tokens := expectTokens(t, "Root row margin 9px 20% rules.less", []token.Kind{
		token.Ident, token.Ident, token.Ident, token.Ident, token.Ident, token.Ident,
	})
	if string(tokens[3].Text) != "9px" {
		t.Errorf("expected text %q, got %q", "9px", tokens[3].Text)
	}
}

func TestTemplateCallIdent(t *testing.T) {
	tokens := expectTokens(t, "button!(\"Ok\")", []token.Kind{
		token.Ident, token.LParen, token.StringLit, token.RParen,
	})
	if string(tokens[0].Text) != "button!" {
		t.Errorf("expected %q, got %q", "button!", tokens[0].Text)
	}
	if !tokens[0].IsTemplateCall() {
		t.Error("expected button! to be a template call head")
	}
}

func TestUsePathIdent(t *testing.T) {
	tokens := expectTokens(t, "use widgets/ {a, b as c}", []token.Kind{
		token.Ident, token.Ident, token.LBrace,
		token.Ident, token.Comma, token.Ident, token.Ident, token.Ident,
		token.RBrace,
	})
	if string(tokens[1].Text) != "widgets/" {
		t.Errorf("expected %q, got %q", "widgets/", tokens[1].Text)
	}
}

func TestStringLiterals(t *testing.T) {
	tokens := expectTokens(t, `"double" 'single' "with \" escape"`, []token.Kind{
		token.StringLit, token.StringLit, token.StringLit,
	})
	// spans include both delimiters
	if string(tokens[0].Text) != `"double"` {
		t.Errorf("expected %q, got %q", `"double"`, tokens[0].Text)
	}
	if string(tokens[2].Text) != `"with \" escape"` {
		t.Errorf("expected %q, got %q", `"with \" escape"`, tokens[2].Text)
	}
}

func TestMultilineString(t *testing.T) {
	expectTokens(t, "\"line one\nline two\"", []token.Kind{token.StringLit})
}

func TestUnterminatedString(t *testing.T) {
	lx, reporter := makeTestLexer(`"never closed`)
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Errorf("expected Invalid, got %v", tok.Kind)
	}
	if len(reporter.diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(reporter.diagnostics))
	}
	if reporter.diagnostics[0].Code != diag.LexUnterminatedString {
		t.Errorf("expected LexUnterminatedString, got %v", reporter.diagnostics[0].Code)
	}
}

func TestComments(t *testing.T) {
	expectTokens(t, "a // rest of the line\nb", []token.Kind{token.Ident, token.Ident})
}

func TestCommentAtEOF(t *testing.T) {
	expectTokens(t, "a // no trailing newline", []token.Kind{token.Ident})
}

func TestEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x")
	lx.Next()
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d after end: expected EOF, got %v", i, tok.Kind)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	p := lx.Peek()
	n := lx.Next()
	if p.Kind != n.Kind || p.Span != n.Span {
		t.Errorf("Peek returned %v, Next returned %v", p, n)
	}
	if next := lx.Next(); string(next.Text) != "b" {
		t.Errorf("expected b after peeked a, got %q", next.Text)
	}
}

func TestCheckpointRestore(t *testing.T) {
	lx, _ := makeTestLexer("one two three")
	lx.Next() // one

	cp := lx.Checkpoint()
	two := lx.Next()
	lx.Next() // three

	lx.Restore(cp)
	again := lx.Next()
	if again.Span != two.Span || string(again.Text) != "two" {
		t.Errorf("after restore expected token %q at %v, got %q at %v", "two", two.Span, again.Text, again.Span)
	}
}

func TestCheckpointCapturesLookahead(t *testing.T) {
	lx, _ := makeTestLexer("one two")
	lx.Peek()
	cp := lx.Checkpoint()
	if cp.Offset() != 0 {
		t.Errorf("checkpoint with lookahead should resume at the peeked token, got offset %d", cp.Offset())
	}
	lx.Next()
	lx.Next()
	lx.Restore(cp)
	if tok := lx.Next(); string(tok.Text) != "one" {
		t.Errorf("expected %q after restore, got %q", "one", tok.Text)
	}
}

func TestLoneSlashReported(t *testing.T) {
	lx, reporter := makeTestLexer("/ x")
	tok := lx.Next()
	if string(tok.Text) != "x" {
		t.Errorf("expected lexing to continue at %q, got %q", "x", tok.Text)
	}
	if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code != diag.LexUnknownChar {
		t.Errorf("expected one LexUnknownChar diagnostic, got %v", reporter.diagnostics)
	}
}

func TestEmptyInput(t *testing.T) {
	lx, _ := makeTestLexer("")
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Errorf("expected EOF for empty input, got %v", tok.Kind)
	}
}
