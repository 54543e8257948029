package escape

import (
	"encoding/binary"
)

const (
	ones  = 0x0101010101010101
	highs = 0x8080808080808080
)

// Contains reports whether b contains the byte what.
// The word-at-a-time body broadcasts the byte into a 64-bit mask, XORs each
// input word against it and tests for a zero byte with the usual
// (w-0x01..01) & ^w & 0x80..80 trick; head and tail fall back to a byte loop.
func Contains(b []byte, what byte) bool {
	mask := uint64(what) * ones
	for len(b) >= 8 {
		w := binary.LittleEndian.Uint64(b) ^ mask
		if (w-ones)&^w&highs != 0 {
			return true
		}
		b = b[8:]
	}
	for _, c := range b {
		if c == what {
			return true
		}
	}
	return false
}

// IndexByte returns the offset of the first occurrence of what, or -1.
func IndexByte(b []byte, what byte) int {
	mask := uint64(what) * ones
	off := 0
	for len(b)-off >= 8 {
		w := binary.LittleEndian.Uint64(b[off:]) ^ mask
		if m := (w - ones) &^ w & highs; m != 0 {
			for i := 0; i < 8; i++ {
				if b[off+i] == what {
					return off + i
				}
			}
		}
		off += 8
	}
	for ; off < len(b); off++ {
		if b[off] == what {
			return off
		}
	}
	return -1
}
