// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package bip143

import (
	"crypto/sha256"
	"hash"

	"github.com/decred/dcrd/crypto/blake256"
	blake2b "github.com/minio/blake2b-simd"
)

// HashFunc creates fresh hash state. Double hashing calls it twice.
type HashFunc func() hash.Hash

var (
	// SHA256 defines bitcoin family hashing, the default one.
	SHA256 HashFunc = sha256.New
	// Blake256 defines decred family hashing.
	Blake256 HashFunc = func() hash.Hash { return blake256.New() }
	// Blake2b256 defines unpersonalized BLAKE2b with 32 bytes output.
	Blake2b256 HashFunc = func() hash.Hash { return blake2b.New256() }
)

// DoubleHash returns fn(fn(data)).
func DoubleHash(fn HashFunc, data []byte) []byte {
	return single(fn, single(fn, data))
}

// single returns fn(data).
func single(fn HashFunc, data []byte) []byte {
	h := fn()
	_, _ = h.Write(data)

	return h.Sum(nil)
}
