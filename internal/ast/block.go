// Package ast stores parsed chirp files as a flat buffer of 32-bit blocks.
//
// Every node begins with a header block packing its Kind into the top four
// bits and the node's total length in blocks (header included) into the low
// 28. Kind-specific fields follow, then any nested nodes, so a reader skips
// a whole subtree by jumping header length blocks forward. Spans are stored
// as start/end offset pairs into the source file; an all-zero pair means
// the field is absent.
package ast

import "fmt"

// Block is one 32-bit cell of the packed buffer.
type Block = uint32

// Kind tags a node header.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindImport
	KindFn
	KindSpawn
	KindTemplate
	KindCode
	KindMethod
)

func (k Kind) String() string {
	switch k {
	case KindImport:
		return "import"
	case KindFn:
		return "fn"
	case KindSpawn:
		return "spawn"
	case KindTemplate:
		return "template"
	case KindCode:
		return "code"
	case KindMethod:
		return "method"
	default:
		return "invalid"
	}
}

const (
	kindShift = 28
	lenMask   = 1<<kindShift - 1
	// reservedBlock fills slots handed out by Builder.Reserve until sealed.
	reservedBlock = Block(0xFFFFFFFF)
)

func packHeader(k Kind, length uint32) Block {
	if length > lenMask {
		panic(fmt.Sprintf("ast: node length %d out of range", length))
	}
	return Block(k)<<kindShift | Block(length)
}

func headerKind(b Block) Kind { return Kind(b >> kindShift) }
func headerLen(b Block) uint32 {
	return uint32(b & lenMask)
}
