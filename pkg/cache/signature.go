package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"
)

// Signature fingerprints everything that determines cache validity: the
// embedding model, its dimension, the full vocabulary sequence, and the
// context template. Two builds with the same signature are
// interchangeable; any mismatch invalidates the cache entirely.
//
// Each field is length-prefixed so adjacent fields cannot collide under
// concatenation.
func Signature(model string, dim int, words []string, template string) string {
	h := sha256.New()
	writeField := func(s string) {
		var lenBuf [8]byte
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(s)))
		h.Write(lenBuf[:])
		h.Write([]byte(s))
	}
	writeField(model)
	writeField(strconv.Itoa(dim))
	writeField(template)
	for _, w := range words {
		writeField(w)
	}
	return hex.EncodeToString(h.Sum(nil))
}
