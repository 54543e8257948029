package driver

import (
	"chirp/internal/ast"
	"chirp/internal/diag"
	"chirp/internal/grammar"
	"chirp/internal/source"
	"chirp/internal/template"
)

type ParseResult struct {
	FileSet   *source.FileSet
	File      *source.File
	AST       *ast.File
	Templates *template.Table
	Bag       *diag.Bag
	Ok        bool
}

// Parse lexes and parses one file. AST is nil when parsing failed; the
// template table holds whatever fn definitions preceded the error.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	res := grammar.ParseFile(file, grammar.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})

	return &ParseResult{
		FileSet:   fs,
		File:      file,
		AST:       res.File,
		Templates: res.Templates,
		Bag:       bag,
		Ok:        res.Ok,
	}, nil
}
