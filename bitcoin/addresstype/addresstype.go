// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package addresstype

import (
	"errors"
	"fmt"
)

// ErrInvalidAddress defines that raw address prefix does not match expected address type.
var ErrInvalidAddress = errors.New("invalid address")

// AddressType defines numeric address version prefix. Prefix length (1-4 bytes)
// is implied by the value magnitude, prefix itself is encoded big-endian.
type AddressType uint32

// Width returns prefix length in bytes of the address type.
func Width(t AddressType) int {
	switch {
	case t <= 0xFF:
		return 1
	case t <= 0xFFFF:
		return 2
	case t <= 0xFFFFFF:
		return 3
	default:
		return 4
	}
}

// Width returns prefix length in bytes.
func (t AddressType) Width() int {
	return Width(t)
}

// Bytes returns big-endian encoded prefix of Width length.
func (t AddressType) Bytes() []byte {
	w := Width(t)
	b := make([]byte, w)
	for i := 0; i < w; i++ {
		b[w-1-i] = byte(t >> (8 * i))
	}

	return b
}

// Check returns true if raw address starts with the address type prefix.
// Address shorter than the prefix never matches.
func Check(t AddressType, raw []byte) bool {
	w := Width(t)
	if len(raw) < w {
		return false
	}

	var prefix uint32
	for _, b := range raw[:w] {
		prefix = prefix<<8 | uint32(b)
	}

	return prefix == uint32(t)
}

// Strip returns raw address payload with the address type prefix removed.
// NOTE: returned slice shares memory with raw.
func Strip(t AddressType, raw []byte) ([]byte, error) {
	if !Check(t, raw) {
		return nil, fmt.Errorf("%w: prefix does not match type %#x", ErrInvalidAddress, uint32(t))
	}

	return raw[Width(t):], nil
}

// MustStrip uses Strip, panics in case of error.
func MustStrip(t AddressType, raw []byte) []byte {
	payload, err := Strip(t, raw)
	if err != nil {
		panic(err)
	}

	return payload
}
