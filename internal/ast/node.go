package ast

import "chirp/internal/source"

// File is the sealed block buffer for one parsed source file.
type File struct {
	Src    *source.File
	blocks []Block
}

// Len returns the buffer size in blocks.
func (f *File) Len() uint32 { return uint32(len(f.blocks)) }

// Nodes iterates the top-level node sequence: imports, then fn definitions,
// then at most one root statement.
func (f *File) Nodes() NodeList {
	return NodeList{f: f, off: 0, end: f.Len()}
}

// NodeList walks sibling nodes between two buffer offsets.
type NodeList struct {
	f   *File
	off uint32
	end uint32
}

func (l *NodeList) Next() (Node, bool) {
	if l.off >= l.end {
		return Node{}, false
	}
	n := Node{f: l.f, off: l.off}
	l.off = n.end()
	return n, true
}

// Node is a view over one packed node.
type Node struct {
	f   *File
	off uint32
}

func (n Node) Kind() Kind  { return headerKind(n.f.blocks[n.off]) }
func (n Node) end() uint32 { return n.off + headerLen(n.f.blocks[n.off]) }

// Src returns the source file the node's spans point into.
func (n Node) Src() *source.File { return n.f.Src }

func (n Node) at(i uint32) Block {
	return n.f.blocks[n.off+i]
}

func (n Node) spanAt(i uint32) source.Span {
	return source.Span{
		File:  n.f.Src.ID,
		Start: n.at(i),
		End:   n.at(i + 1),
	}
}

// text slices the file content under a span.
func (n Node) text(sp source.Span) []byte {
	return n.f.Src.Content[sp.Start:sp.End]
}

// --- import ---
// layout: header, path.start, path.end, itemCount, items (4 blocks each)

// ImportItem is one entry of an import list, with an optional alias.
type ImportItem struct {
	Name  source.Span
	Alias source.Span // empty when the item is not renamed
}

func (n Node) ImportPath() source.Span { return n.spanAt(1) }

func (n Node) ImportPathText() []byte { return n.text(n.ImportPath()) }

func (n Node) ImportItems() []ImportItem {
	count := n.at(3)
	items := make([]ImportItem, 0, count)
	for i := uint32(0); i < count; i++ {
		base := 4 + i*4
		items = append(items, ImportItem{
			Name:  n.spanAt(base),
			Alias: n.spanAt(base + 2),
		})
	}
	return items
}

// --- fn ---
// layout: header, name.start, name.end, flags, bodyOff, paramCount,
// params (2 blocks each), body statement node

// FnFlagPub marks a pub fn in the fn node's flag block.
const FnFlagPub = 1

func (n Node) FnName() source.Span { return n.spanAt(1) }
func (n Node) FnNameText() []byte  { return n.text(n.FnName()) }
func (n Node) FnPub() bool         { return n.at(3)&FnFlagPub != 0 }

// FnBody returns the byte offset right after the '{' opening the fn body,
// where template expansion re-lexes from.
func (n Node) FnBody() uint32 { return n.at(4) }

// FnBodyNode returns the body statement, parsed and nested inside the fn
// node.
func (n Node) FnBodyNode() Node {
	return Node{f: n.f, off: n.off + 6 + n.at(5)*2}
}

func (n Node) FnParams() []source.Span {
	count := n.at(5)
	params := make([]source.Span, 0, count)
	for i := uint32(0); i < count; i++ {
		params = append(params, n.spanAt(6+i*2))
	}
	return params
}

// --- spawn ---
// layout: header, name.start, name.end, methodCount, methods, children

func (n Node) SpawnName() source.Span { return n.spanAt(1) }

// Anonymous reports whether the spawn statement carries no name.
func (n Node) Anonymous() bool { return n.at(1) == 0 && n.at(2) == 0 }

func (n Node) SpawnMethods() NodeList { return n.methodsAt(3) }
func (n Node) SpawnChildren() NodeList {
	return n.childrenAfter(n.methodsAt(3))
}

// --- template call ---
// layout: header, name.start, name.end, args.start, args.end, methodCount,
// methods, children

// TemplateName spans the callee identifier including its trailing '!'.
func (n Node) TemplateName() source.Span { return n.spanAt(1) }

// TemplateCallee returns the callee name with the '!' marker stripped.
func (n Node) TemplateCallee() []byte {
	t := n.text(n.TemplateName())
	return t[:len(t)-1]
}

func (n Node) TemplateArgs() source.Span { return n.spanAt(3) }
func (n Node) TemplateMethods() NodeList { return n.methodsAt(5) }
func (n Node) TemplateChildren() NodeList {
	return n.childrenAfter(n.methodsAt(5))
}

// --- code ---
// layout: header, name.start, name.end

func (n Node) CodeName() source.Span { return n.spanAt(1) }
func (n Node) CodeNameText() []byte  { return n.text(n.CodeName()) }

// --- method ---
// layout: header, name.start, name.end, args.start, args.end

func (n Node) MethodName() source.Span { return n.spanAt(1) }
func (n Node) MethodNameText() []byte  { return n.text(n.MethodName()) }

// MethodArgs spans the argument list including its parens; empty when the
// method was written bare.
func (n Node) MethodArgs() source.Span { return n.spanAt(3) }

// methodsAt walks methodCount consecutive method nodes following the count
// block at index i.
func (n Node) methodsAt(i uint32) NodeList {
	count := n.at(i)
	start := n.off + i + 1
	off := start
	for j := uint32(0); j < count; j++ {
		off += headerLen(n.f.blocks[off])
	}
	return NodeList{f: n.f, off: start, end: off}
}

// childrenAfter walks the child statements between the last method and the
// end of the node.
func (n Node) childrenAfter(methods NodeList) NodeList {
	return NodeList{f: n.f, off: methods.end, end: n.end()}
}
