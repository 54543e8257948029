package diagfmt_test

import (
	"strings"
	"testing"

	"chirp/internal/diagfmt"
	"chirp/internal/grammar"
	"chirp/internal/source"
	"chirp/internal/token"
)

func parseForFormat(t *testing.T, input string) (*grammar.Result, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("scene.chirp", []byte(input)))
	res := grammar.ParseFile(file, grammar.Options{})
	if !res.Ok {
		t.Fatalf("parse failed for %q", input)
	}
	return &res, fs
}

func TestFormatASTTree(t *testing.T) {
	res, _ := parseForFormat(t, `use widgets/ {button, card as panel}
pub fn title(txt) { Header(label(txt)) }
Root(row "Top") { Entity { code(menu) } button!("OK")(grow) }`)

	var out strings.Builder
	diagfmt.FormatAST(&out, res.File)

	want := `use widgets/ button, card as panel
pub fn title(txt)
  Header(label(txt))
Root(row "Top")
  spawn
    code(menu)
  button!("OK")(grow)
`
	if out.String() != want {
		t.Errorf("unexpected tree:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestFormatASTImportPrefix(t *testing.T) {
	res, _ := parseForFormat(t, "use a/ {b}\nRoot")
	var out strings.Builder
	diagfmt.FormatAST(&out, res.File)
	if !strings.HasPrefix(out.String(), "use a/ b\n") {
		t.Errorf("unexpected import line: %q", out.String())
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("scene.chirp", []byte("Root(row)"))
	tokens := []token.Token{
		{Kind: token.Ident, Span: source.Span{File: id, Start: 0, End: 4}, Text: []byte("Root")},
		{Kind: token.LParen, Span: source.Span{File: id, Start: 4, End: 5}, Text: []byte("(")},
		{Kind: token.EOF, Span: source.Span{File: id, Start: 9, End: 9}},
	}

	var out strings.Builder
	if err := diagfmt.FormatTokensPretty(&out, tokens, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[0], `"Root"`) || !strings.Contains(lines[0], "at 1:1-1:5") {
		t.Errorf("unexpected first line: %q", lines[0])
	}
}
