package driver

import (
	"path/filepath"

	"chirp/internal/diag"
	"chirp/internal/grammar"
	"chirp/internal/interp"
	"chirp/internal/source"
)

type CheckOptions struct {
	MaxDiagnostics int
	MaxDepth       int
	ImportRoots    []string
	Handles        *interp.Handles
}

type CheckStats struct {
	Entities int
	Methods  int
}

type CheckResult struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Stats   CheckStats
	Ok      bool
}

// Check parses a file and dry-runs the interpreter over it: imports are
// resolved, templates expanded and every statement walked, with the scene
// events going into a counter instead of a real scene.
func Check(path string, opts CheckOptions) (*CheckResult, error) {
	dir := filepath.Dir(path)
	fs := source.NewFileSetWithBase(dir)
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}
	out := &CheckResult{FileSet: fs, File: file, Bag: bag}

	res := grammar.ParseFile(file, grammar.Options{Reporter: reporter})
	if !res.Ok {
		return out, nil
	}

	roots := append([]string{dir}, opts.ImportRoots...)
	sb := &countBuilder{stats: &out.Stats}
	out.Ok = interp.Interpret(res.File, res.Templates, sb, interp.Options{
		MaxDepth: opts.MaxDepth,
		Reporter: reporter,
		Resolver: NewResolver(fs, roots, reporter),
		Handles:  opts.Handles,
		// host code only exists in a live scene, so a dry run cannot
		// demand registered handles
		AssumeCode: true,
	})
	return out, nil
}

// countBuilder is the no-op scene used by Check: it accepts every method
// and only tallies events.
type countBuilder struct {
	next  interp.EntityID
	stats *CheckStats
}

func (b *countBuilder) SpawnEntity() interp.EntityID {
	id := b.next
	b.next++
	b.stats.Entities++
	return id
}

func (b *countBuilder) SetParent(child, parent interp.EntityID) {}

func (b *countBuilder) ApplyMethod(entity interp.EntityID, ctx *interp.MethodCtx) error {
	b.stats.Methods++
	return nil
}
