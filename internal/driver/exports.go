package driver

import (
	"fmt"

	"chirp/internal/diag"
	"chirp/internal/project"
	"chirp/internal/source"
)

type ExportsResult struct {
	Path      string
	Exports   []ExportEntry
	FromCache bool
	FileSet   *source.FileSet
	Bag       *diag.Bag
}

// Exports lists the pub templates of a file. When cache is non-nil the
// answer for an unchanged file comes from disk without parsing.
func Exports(path string, cache *ExportCache, maxDiagnostics int) (*ExportsResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	key := project.Digest(file.Hash)

	if cache != nil {
		var payload ExportsPayload
		if hit, err := cache.Get(key, &payload); err == nil && hit {
			return &ExportsResult{Path: path, Exports: payload.Exports, FromCache: true}, nil
		}
	}

	res, err := Parse(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	if !res.Ok {
		return &ExportsResult{Path: path, FileSet: res.FileSet, Bag: res.Bag}, fmt.Errorf("'%s' has syntax errors", path)
	}

	var exports []ExportEntry
	for _, e := range res.Templates.Entries() {
		if !e.Pub {
			continue
		}
		entry := ExportEntry{Name: e.Name}
		for i := 0; i < e.Arity(); i++ {
			entry.Params = append(entry.Params, string(e.Param(i)))
		}
		exports = append(exports, entry)
	}

	if cache != nil {
		if err := cache.Put(key, &ExportsPayload{
			Schema:  exportCacheSchema,
			Path:    path,
			Exports: exports,
		}); err != nil {
			return nil, err
		}
	}
	return &ExportsResult{Path: path, Exports: exports, FileSet: res.FileSet, Bag: res.Bag}, nil
}
