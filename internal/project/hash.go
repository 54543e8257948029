package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a SHA-256 content hash, the key type of the export cache.
type Digest [32]byte

func HashBytes(b []byte) Digest {
	return sha256.Sum256(b)
}

func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}

// IsZero reports whether the digest was never set.
func (d Digest) IsZero() bool {
	var z Digest
	return d == z
}
