// Package testkit holds shared invariant checks used by tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"chirp/internal/ast"
	"chirp/internal/source"
)

// CheckASTInvariants walks a parsed file and verifies:
// 1) every node header length stays within the buffer
// 2) every non-empty span lies within the file content bounds
// 3) method lists precede children and stay inside their statement node
func CheckASTInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil ast or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	nodes := f.Nodes()
	for n, ok := nodes.Next(); ok; n, ok = nodes.Next() {
		if err := checkNode(n, lenContent); err != nil {
			return err
		}
	}
	return nil
}

func checkNode(n ast.Node, lenContent uint32) error {
	check := func(sp source.Span, what string) error {
		if sp.Empty() {
			return nil
		}
		if sp.End > lenContent || sp.Start > sp.End {
			return fmt.Errorf("%s span %v out of bounds (content %d bytes)", what, sp, lenContent)
		}
		return nil
	}

	switch n.Kind() {
	case ast.KindImport:
		if err := check(n.ImportPath(), "import path"); err != nil {
			return err
		}
		for _, item := range n.ImportItems() {
			if err := check(item.Name, "import item"); err != nil {
				return err
			}
			if err := check(item.Alias, "import alias"); err != nil {
				return err
			}
		}
	case ast.KindFn:
		if err := check(n.FnName(), "fn name"); err != nil {
			return err
		}
		for _, p := range n.FnParams() {
			if err := check(p, "fn param"); err != nil {
				return err
			}
		}
		if n.FnBody() > lenContent {
			return fmt.Errorf("fn body offset %d beyond content", n.FnBody())
		}
		return checkNode(n.FnBodyNode(), lenContent)
	case ast.KindSpawn:
		if err := check(n.SpawnName(), "spawn name"); err != nil {
			return err
		}
		if err := checkList(n.SpawnMethods(), lenContent); err != nil {
			return err
		}
		return checkList(n.SpawnChildren(), lenContent)
	case ast.KindTemplate:
		if err := check(n.TemplateName(), "template name"); err != nil {
			return err
		}
		if err := check(n.TemplateArgs(), "template args"); err != nil {
			return err
		}
		if err := checkList(n.TemplateMethods(), lenContent); err != nil {
			return err
		}
		return checkList(n.TemplateChildren(), lenContent)
	case ast.KindCode:
		return check(n.CodeName(), "code name")
	case ast.KindMethod:
		if err := check(n.MethodName(), "method name"); err != nil {
			return err
		}
		return check(n.MethodArgs(), "method args")
	default:
		return fmt.Errorf("unknown node kind %d", n.Kind())
	}
	return nil
}

func checkList(l ast.NodeList, lenContent uint32) error {
	for n, ok := l.Next(); ok; n, ok = l.Next() {
		if err := checkNode(n, lenContent); err != nil {
			return err
		}
	}
	return nil
}
