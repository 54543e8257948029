package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"chirp/internal/ast"
)

// FormatAST prints the packed AST as an indented tree, one node per line.
func FormatAST(w io.Writer, f *ast.File) {
	nodes := f.Nodes()
	for n, ok := nodes.Next(); ok; n, ok = nodes.Next() {
		formatNode(w, n, 0)
	}
}

func formatNode(w io.Writer, n ast.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	src := n.Src()
	switch n.Kind() {
	case ast.KindImport:
		fmt.Fprintf(w, "%suse %s", indent, n.ImportPathText())
		for i, item := range n.ImportItems() {
			sep := " "
			if i > 0 {
				sep = ", "
			}
			fmt.Fprintf(w, "%s%s", sep, src.Slice(item.Name))
			if !item.Alias.Empty() {
				fmt.Fprintf(w, " as %s", src.Slice(item.Alias))
			}
		}
		fmt.Fprintln(w)
	case ast.KindFn:
		pub := ""
		if n.FnPub() {
			pub = "pub "
		}
		params := make([]string, 0, len(n.FnParams()))
		for _, p := range n.FnParams() {
			params = append(params, string(src.Slice(p)))
		}
		fmt.Fprintf(w, "%s%sfn %s(%s)\n", indent, pub, n.FnNameText(), strings.Join(params, ", "))
		formatNode(w, n.FnBodyNode(), depth+1)
	case ast.KindSpawn:
		head := "spawn"
		if !n.Anonymous() {
			head = string(src.Slice(n.SpawnName()))
		}
		fmt.Fprintf(w, "%s%s%s\n", indent, head, methodSuffix(n.SpawnMethods()))
		children := n.SpawnChildren()
		for c, ok := children.Next(); ok; c, ok = children.Next() {
			formatNode(w, c, depth+1)
		}
	case ast.KindTemplate:
		fmt.Fprintf(w, "%s%s!%s%s\n", indent, n.TemplateCallee(),
			string(src.Slice(n.TemplateArgs())), methodSuffix(n.TemplateMethods()))
		children := n.TemplateChildren()
		for c, ok := children.Next(); ok; c, ok = children.Next() {
			formatNode(w, c, depth+1)
		}
	case ast.KindCode:
		fmt.Fprintf(w, "%scode(%s)\n", indent, n.CodeNameText())
	}
}

func methodSuffix(methods ast.NodeList) string {
	var parts []string
	for m, ok := methods.Next(); ok; m, ok = methods.Next() {
		name := string(m.MethodNameText())
		if name[0] == '"' || name[0] == '\'' {
			parts = append(parts, name)
			continue
		}
		if sp := m.MethodArgs(); !sp.Empty() {
			name += string(m.Src().Slice(sp))
		}
		parts = append(parts, name)
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}
