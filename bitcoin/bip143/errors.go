// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package bip143

import (
	"errors"

	"github.com/BoostyLabs/hwsigner/bitcoin"
)

var (
	// ErrUnsupportedScriptType defines that script code can not be derived for the input script type.
	ErrUnsupportedScriptType = errors.New("unknown input script type for bip143 script code")
	// ErrUnsupportedSigHashType defines that preimage can not be built for the signature hash type.
	ErrUnsupportedSigHashType = errors.New("unsupported signature hash type")
	// ErrInvalidPubKeyHash defines invalid public key hash length.
	ErrInvalidPubKeyHash = errors.New("public key hash must be 20 bytes")
	// ErrInvalidPrevHash defines invalid previous transaction hash length.
	ErrInvalidPrevHash = errors.New("previous transaction hash must be 32 bytes")
	// ErrSealed defines that accumulation phase is over.
	ErrSealed = errors.New("accumulator is sealed")
)

// ScriptTypeError describes input with script type unsupported by the script code derivation.
type ScriptTypeError struct {
	ScriptType bitcoin.InputScriptType
}

// Error returns error description.
func (e *ScriptTypeError) Error() string {
	return ErrUnsupportedScriptType.Error() + ": " + e.ScriptType.String()
}

// Is implements comparator method for [errors] package.
func (e *ScriptTypeError) Is(target error) bool {
	if target == ErrUnsupportedScriptType {
		return true
	}

	t, ok := target.(*ScriptTypeError)

	return ok && t.ScriptType == e.ScriptType
}
