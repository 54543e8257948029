// Package project locates and reads the chirp.toml project manifest.
package project

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a project root.
const ManifestName = "chirp.toml"

// Manifest is the parsed chirp.toml.
type Manifest struct {
	// Entry is the scene file interpreted by default.
	Entry string `toml:"entry"`
	// MaxDepth bounds template expansion.
	MaxDepth int `toml:"max_depth"`
	// MaxDiagnostics caps the number of collected diagnostics per run.
	MaxDiagnostics int `toml:"max_diagnostics"`
	// ImportRoots are extra directories searched by 'use', relative to the
	// project root.
	ImportRoots []string `toml:"import_roots"`
}

// DefaultManifest returns the values used when no chirp.toml exists.
func DefaultManifest() Manifest {
	return Manifest{
		Entry:          "main.chirp",
		MaxDepth:       64,
		MaxDiagnostics: 100,
	}
}

// LoadManifest reads a chirp.toml and fills unset fields with defaults.
func LoadManifest(path string) (Manifest, error) {
	m := DefaultManifest()
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return Manifest{}, fmt.Errorf("read %s: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		return Manifest{}, fmt.Errorf("%s: unknown key %q", path, undec[0].String())
	}
	if m.MaxDepth <= 0 {
		m.MaxDepth = DefaultManifest().MaxDepth
	}
	if m.MaxDiagnostics <= 0 {
		m.MaxDiagnostics = DefaultManifest().MaxDiagnostics
	}
	return m, nil
}
