package ast

import (
	"fmt"

	"fortio.org/safecast"

	"chirp/internal/source"
)

// Handle addresses a block reserved with Reserve until it is sealed or
// filled.
type Handle uint32

// Builder appends blocks to the buffer in parse order. Node headers carry
// the subtree length, which is unknown until the subtree is written, so the
// parser reserves the header slot up front and seals it afterwards. Finish
// panics while any reservation is still open; a sealed buffer can never
// contain a half-written node.
type Builder struct {
	blocks []Block
	open   map[Handle]struct{}
}

func NewBuilder() *Builder {
	return &Builder{
		blocks: make([]Block, 0, 64),
		open:   make(map[Handle]struct{}),
	}
}

// Len returns the number of blocks written so far.
func (b *Builder) Len() uint32 {
	n, err := safecast.Conv[uint32](len(b.blocks))
	if err != nil {
		panic(fmt.Errorf("len(blocks) overflow: %w", err))
	}
	return n
}

// Write appends one raw block.
func (b *Builder) Write(v Block) {
	b.blocks = append(b.blocks, v)
}

// WriteSpan appends a span as its start and end offsets.
func (b *Builder) WriteSpan(sp source.Span) {
	b.blocks = append(b.blocks, sp.Start, sp.End)
}

// Reserve appends a placeholder block and returns its handle.
func (b *Builder) Reserve() Handle {
	h := Handle(b.Len())
	b.blocks = append(b.blocks, reservedBlock)
	b.open[h] = struct{}{}
	return h
}

// Fill writes a value into a reserved slot.
func (b *Builder) Fill(h Handle, v Block) {
	b.close(h)
	b.blocks[h] = v
}

// Seal writes the node header for h, with the node spanning from the
// reserved slot to the current end of the buffer.
func (b *Builder) Seal(h Handle, k Kind) {
	b.close(h)
	b.blocks[h] = packHeader(k, b.Len()-uint32(h))
}

// Finish seals the buffer into a read-only File.
func (b *Builder) Finish(src *source.File) *File {
	if len(b.open) != 0 {
		panic(fmt.Sprintf("ast: %d reservation(s) never written", len(b.open)))
	}
	f := &File{Src: src, blocks: b.blocks}
	b.blocks = nil
	return f
}

func (b *Builder) close(h Handle) {
	if _, ok := b.open[h]; !ok {
		panic(fmt.Sprintf("ast: block %d written twice or never reserved", h))
	}
	delete(b.open, h)
}
