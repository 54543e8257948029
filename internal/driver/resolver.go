package driver

import (
	"fmt"
	"os"
	"path/filepath"

	"chirp/internal/ast"
	"chirp/internal/diag"
	"chirp/internal/grammar"
	"chirp/internal/interp"
	"chirp/internal/source"
)

// Resolver loads 'use' targets from the import roots, parses them once and
// hands their template tables to the interpreter. Resolution recurses into
// the target's own imports so that cycles surface as ErrImportCycle rather
// than unbounded recursion.
type Resolver struct {
	fs       *source.FileSet
	roots    []string
	reporter diag.Reporter
	cache    map[string]*interp.ResolvedFile
	loading  map[string]bool
}

func NewResolver(fs *source.FileSet, roots []string, reporter diag.Reporter) *Resolver {
	return &Resolver{
		fs:       fs,
		roots:    roots,
		reporter: reporter,
		cache:    make(map[string]*interp.ResolvedFile),
		loading:  make(map[string]bool),
	}
}

func (r *Resolver) Resolve(path []byte) (*interp.ResolvedFile, error) {
	key := string(path)
	if rf, ok := r.cache[key]; ok {
		return rf, nil
	}
	if r.loading[key] {
		return nil, fmt.Errorf("%w through '%s'", interp.ErrImportCycle, key)
	}
	r.loading[key] = true
	defer delete(r.loading, key)

	full, err := r.locate(key)
	if err != nil {
		return nil, err
	}
	fileID, err := r.fs.Load(full)
	if err != nil {
		return nil, err
	}
	file := r.fs.Get(fileID)

	res := grammar.ParseFile(file, grammar.Options{Reporter: r.reporter})
	if !res.Ok {
		return nil, fmt.Errorf("'%s' has syntax errors", key)
	}
	if err := r.resolveNested(res.File); err != nil {
		return nil, err
	}

	rf := &interp.ResolvedFile{Src: file, Templates: res.Templates}
	r.cache[key] = rf
	return rf, nil
}

// resolveNested walks the imported file's own use statements so the whole
// import graph is validated up front.
func (r *Resolver) resolveNested(file *ast.File) error {
	nodes := file.Nodes()
	for n, ok := nodes.Next(); ok; n, ok = nodes.Next() {
		if n.Kind() != ast.KindImport {
			continue
		}
		if _, err := r.Resolve(interp.ImportKey(n.ImportPathText())); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resolver) locate(key string) (string, error) {
	rel := filepath.FromSlash(key) + ".chirp"
	for _, root := range r.roots {
		candidate := filepath.Join(root, rel)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no file '%s' under the import roots", rel)
}
