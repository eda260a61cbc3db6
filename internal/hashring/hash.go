package hashring

import (
	"crypto/sha256"
	"encoding/binary"
)

// LookupHash maps a key onto the ring: the first 8 bytes of SHA-256(s) read as a
// big-endian uint64.
func LookupHash(s string) uint64 {
	sum := sha256.Sum256([]byte(s))
	return binary.BigEndian.Uint64(sum[:8])
}

// PlacementHash positions a virtual node. It must stay unseeded so a ring rebuilt
// after a restart lands every virtual node on the same spot.
func PlacementHash(label string) uint64 {
	return LookupHash(label)
}
