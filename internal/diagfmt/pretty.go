package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"chirp/internal/diag"
	"chirp/internal/source"
)

// Pretty formats diagnostics for humans. It walks bag.Items() (the bag is
// expected to be sorted already) and prints for each:
//
//	<path>:<line>:<col>: <SEV> [<ID>]: <message>
//
// followed by the source line with a ^~~~ underline covering the span, then
// the notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s: %s [%s]: %s\n",
		location(d.Primary, fs, opts.PathMode), sev, d.Code.ID(), d.Message)
	underline(w, d.Primary, fs, opts)

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		fmt.Fprintf(w, "%s: note: %s\n", location(note.Span, fs, opts.PathMode), note.Msg)
		underline(w, note.Span, fs, opts)
	}
}

func location(sp source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	path := f.Path
	switch mode {
	case PathModeRelative:
		if rel, err := filepath.Rel(fs.BaseDir(), path); err == nil {
			path = filepath.ToSlash(rel)
		}
	case PathModeBasename:
		path = filepath.Base(path)
	}
	return fmt.Sprintf("%s:%d:%d", path, start.Line, start.Col)
}

// underline prints the offending source line with a caret marker under the
// span, preceded by up to opts.Context lines for orientation.
func underline(w io.Writer, sp source.Span, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)

	for i := int8(0); i < opts.Context; i++ {
		n := int64(start.Line) - int64(opts.Context) + int64(i)
		if n < 1 {
			continue
		}
		fmt.Fprintf(w, "  %s\n", f.GetLine(uint32(n)))
	}
	fmt.Fprintf(w, "  %s\n", line)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(line[:col])

	markEnd := len(line)
	if end.Line == start.Line && int(end.Col)-1 < markEnd {
		markEnd = int(end.Col) - 1
	}
	width := 1
	if markEnd > col {
		width = runewidth.StringWidth(line[col:markEnd])
		if width < 1 {
			width = 1
		}
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = severityColor(diag.SevError).Sprint(marker)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), marker)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
