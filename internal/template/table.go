// Package template keeps the per-file table of fn definitions.
//
// A definition is not stored as an AST subtree: the table records a lexer
// checkpoint at the statement following the body '{', and every call site
// re-parses the body from that checkpoint with its own bindings. Entries
// are insertion-ordered and carry an ordinal so that a body may only call
// templates defined before its own fn.
package template

import (
	"chirp/internal/lexer"
	"chirp/internal/source"
)

// Entry is one callable template.
type Entry struct {
	Name     string
	NameSpan source.Span
	Params   []source.Span
	Pub      bool
	Body     lexer.Checkpoint
	Src      *source.File

	// Ordinal is the definition position within its file; imported entries
	// carry -1 and are callable from anywhere.
	Ordinal int
}

func (e *Entry) Arity() int { return len(e.Params) }

// Param returns the i-th parameter name.
func (e *Entry) Param(i int) []byte {
	sp := e.Params[i]
	return e.Src.Content[sp.Start:sp.End]
}

// Table maps template names to their entries, preserving definition order.
type Table struct {
	entries []*Entry
	index   map[string]int
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Define registers a fn parsed from src. The first definition of a name
// wins; a duplicate returns ok=false and leaves the table unchanged.
func (t *Table) Define(src *source.File, nameSpan source.Span, params []source.Span, pub bool, body lexer.Checkpoint) (*Entry, bool) {
	name := string(src.Content[nameSpan.Start:nameSpan.End])
	if _, dup := t.index[name]; dup {
		return t.entries[t.index[name]], false
	}
	e := &Entry{
		Name:     name,
		NameSpan: nameSpan,
		Params:   params,
		Pub:      pub,
		Body:     body,
		Src:      src,
		Ordinal:  len(t.entries),
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, e)
	return e, true
}

// Adopt registers an entry from another file's table under the given name,
// typically an import alias. Adopted entries always resolve regardless of
// definition order.
func (t *Table) Adopt(name string, from *Entry) bool {
	if _, dup := t.index[name]; dup {
		return false
	}
	e := *from
	e.Name = name
	e.Ordinal = -1
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, &e)
	return true
}

func (t *Table) Lookup(name []byte) (*Entry, bool) {
	i, ok := t.index[string(name)]
	if !ok {
		return nil, false
	}
	return t.entries[i], true
}

func (t *Table) Len() int { return len(t.entries) }

// Entries returns all entries in definition order.
func (t *Table) Entries() []*Entry { return t.entries }
