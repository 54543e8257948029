package interp

import (
	"bytes"
	"errors"

	"chirp/internal/ast"
	"chirp/internal/diag"
	"chirp/internal/source"
	"chirp/internal/template"
)

// ErrImportCycle is returned (possibly wrapped) by an ImportResolver when
// resolving a path re-enters a file that is still being resolved.
var ErrImportCycle = errors.New("import cycle")

// ResolvedFile is the read-only view of an already-parsed chirp file that
// an ImportResolver hands back.
type ResolvedFile struct {
	Src       *source.File
	Templates *template.Table
}

// ImportResolver loads and parses the target of a 'use' statement. The
// interpreter only pulls pub templates out of the result.
type ImportResolver interface {
	Resolve(path []byte) (*ResolvedFile, error)
}

// ImportKey normalizes a use path as written into the key handed to the
// resolver: surrounding quotes (the path may be a string literal) and a
// trailing '/' are stripped.
func ImportKey(raw []byte) []byte {
	if len(raw) >= 2 && (raw[0] == '"' || raw[0] == '\'') && raw[len(raw)-1] == raw[0] {
		raw = raw[1 : len(raw)-1]
	}
	return bytes.TrimSuffix(raw, []byte("/"))
}

// processImports walks the file's use statements and adopts the requested
// pub templates into the local table under their item name or alias.
func (it *interp) processImports(file *ast.File) {
	nodes := file.Nodes()
	for n, ok := nodes.Next(); ok; n, ok = nodes.Next() {
		if n.Kind() != ast.KindImport {
			continue
		}
		path := ImportKey(n.ImportPathText())
		if it.opts.Resolver == nil {
			it.errorf(diag.InterpImportFailed, n.ImportPath(), "no import resolver configured")
			continue
		}
		rf, err := it.opts.Resolver.Resolve(path)
		if err != nil {
			code := diag.InterpImportFailed
			if errors.Is(err, ErrImportCycle) {
				code = diag.InterpImportCycle
			}
			it.errorf(code, n.ImportPath(), "cannot import '"+string(path)+"': "+err.Error())
			continue
		}
		it.adoptItems(n, rf)
	}
}

func (it *interp) adoptItems(n ast.Node, rf *ResolvedFile) {
	for _, item := range n.ImportItems() {
		name := it.file.Src.Content[item.Name.Start:item.Name.End]
		entry, ok := rf.Templates.Lookup(name)
		if !ok || !entry.Pub {
			it.errorf(diag.InterpImportFailed, item.Name,
				"'"+string(name)+"' is not a pub template of the imported file")
			continue
		}
		local := name
		if !item.Alias.Empty() {
			local = it.file.Src.Content[item.Alias.Start:item.Alias.End]
		}
		if !it.tpl.Adopt(string(local), entry) {
			it.errorf(diag.InterpImportFailed, item.Name,
				"'"+string(local)+"' is already defined in this file")
		}
	}
}
