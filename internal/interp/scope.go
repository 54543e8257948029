package interp

import (
	"bytes"

	"chirp/internal/ast"
	"chirp/internal/source"
	"chirp/internal/template"
)

// frame is one level of the template expansion stack. It binds the callee's
// parameters to the argument texts from the call site and remembers the
// call-site extras (trailing methods and children) that get inlined into
// the body's root statement. caller is the frame the call was written in,
// which is what the extras evaluate against; chain continues the extras
// chain and is set only for calls in root position of a body, so a call
// made from a child statement starts a fresh chain.
type frame struct {
	entry    *template.Entry
	params   [][]byte
	values   [][]byte
	extrasM  []ast.Node
	extrasC  []ast.Node
	caller   *frame
	chain    *frame
	callSpan source.Span
}

// lookup resolves an argument text against this frame's bindings. Only a
// whole argument equal to a parameter name is substituted.
func (fr *frame) lookup(arg []byte) ([]byte, bool) {
	if fr == nil {
		return nil, false
	}
	for i, p := range fr.params {
		if bytes.Equal(p, arg) {
			return fr.values[i], true
		}
	}
	return nil, false
}

// substitute replaces every bound argument of fields and reassembles the
// list. When nothing is bound the original raw bytes come back untouched.
func substitute(raw []byte, fields [][]byte, fr *frame) []byte {
	if fr == nil || len(fr.params) == 0 {
		return raw
	}
	changed := false
	for i, f := range fields {
		if v, ok := fr.lookup(f); ok {
			fields[i] = v
			changed = true
		}
	}
	if !changed {
		return raw
	}
	var buf bytes.Buffer
	buf.WriteByte('(')
	for i, f := range fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.Write(f)
	}
	buf.WriteByte(')')
	return buf.Bytes()
}
