package ast

import (
	"testing"

	"chirp/internal/source"
)

func testFile(t *testing.T) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.chirp", []byte("Root { }"))
	return fs.Get(id)
}

func TestBuilderSealEncodesKindAndLength(t *testing.T) {
	b := NewBuilder()
	h := b.Reserve()
	b.Write(1)
	b.Write(2)
	b.Seal(h, KindCode)

	f := b.Finish(testFile(t))
	if f.Len() != 3 {
		t.Fatalf("expected 3 blocks, got %d", f.Len())
	}
	header := f.blocks[0]
	if headerKind(header) != KindCode {
		t.Errorf("expected kind %v, got %v", KindCode, headerKind(header))
	}
	if headerLen(header) != 3 {
		t.Errorf("expected length 3, got %d", headerLen(header))
	}
}

func TestBuilderWriteSpan(t *testing.T) {
	b := NewBuilder()
	b.WriteSpan(source.Span{Start: 5, End: 9})
	if b.Len() != 2 || b.blocks[0] != 5 || b.blocks[1] != 9 {
		t.Errorf("expected blocks [5 9], got %v", b.blocks)
	}
}

func TestBuilderFill(t *testing.T) {
	b := NewBuilder()
	h := b.Reserve()
	b.Fill(h, 42)
	if b.blocks[h] != 42 {
		t.Errorf("expected 42 in filled slot, got %d", b.blocks[h])
	}
}

func TestBuilderDoubleSealPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on double seal")
		}
	}()
	b := NewBuilder()
	h := b.Reserve()
	b.Seal(h, KindCode)
	b.Seal(h, KindCode)
}

func TestBuilderFinishWithOpenReservationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on Finish with an open reservation")
		}
	}()
	b := NewBuilder()
	b.Reserve()
	b.Finish(testFile(t))
}

func TestNodeListSkipsWholeSubtrees(t *testing.T) {
	b := NewBuilder()

	h1 := b.Reserve()
	b.WriteSpan(source.Span{Start: 0, End: 4})
	b.Seal(h1, KindCode)

	h2 := b.Reserve()
	b.WriteSpan(source.Span{Start: 5, End: 8})
	b.Seal(h2, KindCode)

	f := b.Finish(testFile(t))
	nodes := f.Nodes()

	n1, ok := nodes.Next()
	if !ok || n1.Kind() != KindCode {
		t.Fatalf("expected first code node, got %v ok=%v", n1.Kind(), ok)
	}
	n2, ok := nodes.Next()
	if !ok || n2.CodeName().Start != 5 {
		t.Fatalf("expected second node at offset 5, got %v ok=%v", n2.CodeName(), ok)
	}
	if _, ok := nodes.Next(); ok {
		t.Error("expected exhausted list")
	}
}
