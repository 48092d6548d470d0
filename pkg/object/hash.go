package object

import (
	"encoding/hex"
	"fmt"

	"lukechampine.com/blake3"
)

// HashBytes computes the raw BLAKE3-256 hash of data and returns it as a
// lowercase hex-encoded Hash.
func HashBytes(data []byte) Hash {
	sum := blake3.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// HashObject computes the BLAKE3-256 of the envelope "type len\0content",
// mirroring Git's object hashing with BLAKE3 in place of SHA-1.
func HashObject(objType ObjectType, data []byte) Hash {
	h := blake3.New(32, nil)
	fmt.Fprintf(h, "%s %d\x00", objType, len(data))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}
