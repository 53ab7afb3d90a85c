// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package bip143

import (
	"fmt"
)

// SigHashType defines which parts of the transaction the signature commits to.
type SigHashType uint32

const (
	// SigHashAll commits to all inputs and outputs.
	SigHashAll SigHashType = 0x01
	// SigHashNone commits to all inputs and no outputs.
	SigHashNone SigHashType = 0x02
	// SigHashSingle commits to all inputs and the output with the same index.
	SigHashSingle SigHashType = 0x03
	// SigHashAnyOneCanPay modifier, commits to the signed input only.
	SigHashAnyOneCanPay SigHashType = 0x80

	// sigHashMask defines base type bits.
	sigHashMask SigHashType = 0x1f
)

// base returns type without modifiers.
func (t SigHashType) base() SigHashType {
	return t & sigHashMask
}

// AnyOneCanPay returns true if ANYONECANPAY modifier is set.
func (t SigHashType) AnyOneCanPay() bool {
	return t&SigHashAnyOneCanPay == SigHashAnyOneCanPay
}

// commitsPrevouts returns true if hashPrevouts is committed.
func (t SigHashType) commitsPrevouts() bool {
	return !t.AnyOneCanPay()
}

// commitsSequence returns true if hashSequence is committed.
func (t SigHashType) commitsSequence() bool {
	return !t.AnyOneCanPay() && t.base() == SigHashAll
}

// commitsOutputs returns true if hashOutputs is committed.
func (t SigHashType) commitsOutputs() bool {
	return t.base() == SigHashAll
}

// validate returns error for types the builder can not produce preimage for.
// SINGLE requires output retention by index and is not supported.
func (t SigHashType) validate() error {
	if t&^(sigHashMask|SigHashAnyOneCanPay) != 0 {
		return fmt.Errorf("%w: %#x", ErrUnsupportedSigHashType, uint32(t))
	}

	switch t.base() {
	case SigHashAll, SigHashNone:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedSigHashType, t)
	}
}

// String returns type name.
func (t SigHashType) String() string {
	var name string
	switch t.base() {
	case SigHashAll:
		name = "ALL"
	case SigHashNone:
		name = "NONE"
	case SigHashSingle:
		name = "SINGLE"
	default:
		name = fmt.Sprintf("%#x", uint32(t.base()))
	}

	if t.AnyOneCanPay() {
		name += "|ANYONECANPAY"
	}

	return name
}
