// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package bip143

import (
	"hash"
)

// RunningHash is an append-only accumulator finalized with double hashing.
// Sum does not reset the accumulator, it may be called any number of times,
// although digest taken before all data is written covers only a part of it.
// After Seal no more data can be written.
type RunningHash struct {
	fn     HashFunc
	state  hash.Hash
	length int
	sealed bool
}

// NewRunningHash is a constructor for RunningHash.
func NewRunningHash(fn HashFunc) *RunningHash {
	return &RunningHash{
		fn:    fn,
		state: fn(),
	}
}

// Write appends p to the accumulator. Implements io.Writer.
func (r *RunningHash) Write(p []byte) (int, error) {
	if r.sealed {
		return 0, ErrSealed
	}

	n, err := r.state.Write(p)
	r.length += n

	return n, err
}

// Sum returns double hash of all bytes written so far.
func (r *RunningHash) Sum() []byte {
	return single(r.fn, r.state.Sum(nil))
}

// Len returns amount of bytes written so far.
func (r *RunningHash) Len() int {
	return r.length
}

// Seal forbids further writes.
func (r *RunningHash) Seal() {
	r.sealed = true
}

// Sealed returns true if accumulator is sealed.
func (r *RunningHash) Sealed() bool {
	return r.sealed
}
