// Package interp walks a parsed chirp file and emits scene-builder events.
//
// Statements execute in document order: spawn, parent, synthetic named
// method, user methods, then children. Template calls push a binding frame,
// re-parse the callee's body from its checkpoint and interpret the result
// with the frame's substitutions; the expansion depth is bounded by
// Options.MaxDepth. Interpretation errors are collected per statement
// through the reporter, they do not stop the walk.
package interp

import (
	"errors"
	"fmt"

	"chirp/internal/args"
	"chirp/internal/ast"
	"chirp/internal/diag"
	"chirp/internal/escape"
	"chirp/internal/grammar"
	"chirp/internal/source"
	"chirp/internal/template"
)

// DefaultMaxDepth bounds template expansion when Options.MaxDepth is zero.
const DefaultMaxDepth = 64

type Options struct {
	MaxDepth int
	Reporter diag.Reporter
	Resolver ImportResolver
	Handles  *Handles

	// AssumeCode treats every code handle as present: a code statement
	// whose handle is not registered is skipped instead of reported.
	// Dry runs use this, since host code only exists in a live scene.
	AssumeCode bool
}

type interp struct {
	file  *ast.File
	tpl   *template.Table
	sb    SceneBuilder
	opts  Options
	depth int
	errs  int
}

// Interpret emits the scene described by file into sb. It reports every
// error it finds and returns whether there were none; on a false return the
// caller is expected to discard any entities already spawned.
func Interpret(file *ast.File, tpl *template.Table, sb SceneBuilder, opts Options) bool {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	it := &interp{file: file, tpl: tpl, sb: sb, opts: opts}
	it.processImports(file)
	nodes := file.Nodes()
	for n, ok := nodes.Next(); ok; n, ok = nodes.Next() {
		switch n.Kind() {
		case ast.KindImport, ast.KindFn:
			continue
		default:
			it.node(n, NoParent, nil, false)
		}
	}
	return it.errs == 0
}

func (it *interp) node(n ast.Node, parent EntityID, fr *frame, root bool) {
	switch n.Kind() {
	case ast.KindCode:
		it.code(n, parent)
	case ast.KindTemplate:
		it.expand(n, parent, fr, root)
	case ast.KindSpawn:
		it.statement(n, parent, fr, root)
	}
}

func (it *interp) statement(n ast.Node, parent EntityID, fr *frame, root bool) {
	entity := it.sb.SpawnEntity()
	if parent != NoParent {
		it.sb.SetParent(entity, parent)
	}

	if !n.Anonymous() {
		sp := n.SpawnName()
		head := n.Src().Content[sp.Start:sp.End]
		// only a string head names the entity; ident heads are labels
		if head[0] == '"' || head[0] == '\'' {
			it.apply(entity, []byte("named"), escape.Unescape(head), sp, sp)
		}
	}

	methods := n.SpawnMethods()
	for m, ok := methods.Next(); ok; m, ok = methods.Next() {
		it.method(entity, m, fr)
	}
	if root {
		// call-site extras, innermost call first, each with the bindings
		// of the frame the extra was written in
		for f := fr; f != nil; f = f.chain {
			for _, m := range f.extrasM {
				it.method(entity, m, f.caller)
			}
		}
	}

	children := n.SpawnChildren()
	for c, ok := children.Next(); ok; c, ok = children.Next() {
		it.node(c, entity, fr, false)
	}
	if root {
		for f := fr; f != nil; f = f.chain {
			for _, c := range f.extrasC {
				it.node(c, entity, f.caller, false)
			}
		}
	}
}

// method dispatches one method node, substituting bound template arguments
// first. A string literal in method position becomes the synthetic named
// method.
func (it *interp) method(entity EntityID, m ast.Node, fr *frame) {
	nameSp := m.MethodName()
	name := m.MethodNameText()
	if name[0] == '"' || name[0] == '\'' {
		it.apply(entity, []byte("named"), escape.Unescape(name), nameSp, nameSp)
		return
	}
	if name[0] >= 'A' && name[0] <= 'Z' {
		it.errorf(diag.InterpUppercaseMethod, nameSp,
			"method names are lowercase, did you mean a child statement?")
		return
	}

	argsSp := m.MethodArgs()
	var raw []byte
	if !argsSp.Empty() {
		raw = m.Src().Content[argsSp.Start:argsSp.End]
	}
	if fr != nil && len(raw) > 0 {
		if fields, err := args.Fields(raw); err == nil {
			raw = substitute(raw, fields, fr)
		}
	}
	it.apply(entity, name, raw, nameSp, argsSp)
}

func (it *interp) apply(entity EntityID, name, argBytes []byte, nameSp, argsSp source.Span) {
	ctx := &MethodCtx{
		Name:     name,
		Args:     argBytes,
		NameSpan: nameSp,
		ArgsSpan: argsSp,
		Handles:  it.opts.Handles,
	}
	err := it.sb.ApplyMethod(entity, ctx)
	if err == nil {
		return
	}
	var (
		noMethod  *NoSuchMethodError
		badCount  *args.CountError
		badEscape *escape.BadEscape
	)
	switch {
	case errors.As(err, &noMethod):
		it.errorf(diag.InterpNoSuchMethod, nameSp, err.Error())
	case errors.As(err, &badCount):
		it.errorf(diag.ArgCountMismatch, argsSp, err.Error())
	case errors.Is(err, args.ErrUnbalanced):
		it.errorf(diag.ArgUnbalanced, argsSp, err.Error())
	case errors.As(err, &badEscape):
		it.errorf(diag.ArgBadEscape, argsSp, err.Error())
	default:
		it.errorf(diag.InterpDispatch, nameSp, "method '"+string(name)+"' failed: "+err.Error())
	}
}

func (it *interp) expand(n ast.Node, parent EntityID, fr *frame, root bool) {
	nameSp := n.TemplateName()
	callee := n.TemplateCallee()
	entry, ok := it.tpl.Lookup(callee)
	if !ok {
		it.errorf(diag.InterpNoSuchTemplate, nameSp, "no template named '"+string(callee)+"'")
		return
	}
	if fr != nil && entry.Ordinal >= 0 && fr.entry.Ordinal >= 0 && entry.Ordinal >= fr.entry.Ordinal {
		it.errorf(diag.InterpNoSuchTemplate, nameSp,
			"template '"+string(callee)+"' is defined after '"+fr.entry.Name+"' and cannot be called from it")
		return
	}

	argsSp := n.TemplateArgs()
	raw := n.Src().Content[argsSp.Start:argsSp.End]
	fields, err := args.Fields(raw)
	if err != nil {
		code := diag.ArgUnbalanced
		var badEscape *escape.BadEscape
		if errors.As(err, &badEscape) {
			code = diag.ArgBadEscape
		}
		it.errorf(code, argsSp, err.Error())
		return
	}
	if len(fields) != entry.Arity() {
		it.errorf(diag.InterpTemplateArity, argsSp, fmt.Sprintf(
			"template '%s' takes %d arguments, got %d", entry.Name, entry.Arity(), len(fields)))
		return
	}
	if it.depth+1 > it.opts.MaxDepth {
		it.errorf(diag.InterpTemplateRecursion, nameSp, fmt.Sprintf(
			"template expansion is deeper than the limit of %d", it.opts.MaxDepth))
		return
	}

	// forwarded parameters resolve against the calling frame now, so the
	// body and extras see the caller's values rather than the param name
	for i, f := range fields {
		if v, ok := fr.lookup(f); ok {
			fields[i] = v
		}
	}
	params := make([][]byte, entry.Arity())
	for i := range params {
		params[i] = entry.Param(i)
	}
	next := &frame{
		entry:    entry,
		params:   params,
		values:   fields,
		extrasM:  collect(n.TemplateMethods()),
		extrasC:  collect(n.TemplateChildren()),
		caller:   fr,
		callSpan: nameSp,
	}
	if root {
		// only a call in root position of a body extends the extras chain;
		// a call from a child statement spawns a fresh subtree
		next.chain = fr
	}

	body, ok := grammar.ParseStatementAt(entry.Src, entry.Body, grammar.Options{Reporter: it.opts.Reporter})
	if !ok {
		it.errs++
		return
	}
	it.depth++
	defer func() { it.depth-- }()
	nodes := body.Nodes()
	if bn, ok := nodes.Next(); ok {
		it.node(bn, parent, next, true)
	}
}

func (it *interp) code(n ast.Node, parent EntityID) {
	name := n.CodeNameText()
	if it.opts.Handles == nil {
		if it.opts.AssumeCode {
			return
		}
		it.errorf(diag.InterpCodeNotPresent, n.CodeName(), "no handles registry configured")
		return
	}
	fn, ok := it.opts.Handles.Code(string(name))
	if !ok {
		if it.opts.AssumeCode {
			return
		}
		it.errorf(diag.InterpCodeNotPresent, n.CodeName(), "no code handle named '"+string(name)+"'")
		return
	}
	if err := fn(it.sb, parent); err != nil {
		it.errorf(diag.InterpDispatch, n.CodeName(), "code '"+string(name)+"' failed: "+err.Error())
	}
}

func (it *interp) errorf(code diag.Code, sp source.Span, msg string) {
	it.errs++
	if it.opts.Reporter != nil {
		it.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func collect(l ast.NodeList) []ast.Node {
	var out []ast.Node
	for n, ok := l.Next(); ok; n, ok = l.Next() {
		out = append(out, n)
	}
	return out
}
