// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package bip143

import (
	"github.com/btcsuite/btcd/txscript"

	"github.com/BoostyLabs/hwsigner/bitcoin"
)

// pubKeyHashSize defines HASH160 output length.
const pubKeyHashSize = 20

// DeriveScriptCode returns BIP143 scriptCode for the input. It is neither redeemScript nor
// scriptPubKey: for P2WPKH nested in P2SH it is always
// OP_DUP OP_HASH160 <20 bytes pubKeyHash> OP_EQUALVERIFY OP_CHECKSIG (25 bytes).
func DeriveScriptCode(in bitcoin.TxInput, pubKeyHash []byte) ([]byte, error) {
	if in.ScriptType != bitcoin.SpendP2SHWitness {
		return nil, &ScriptTypeError{ScriptType: in.ScriptType}
	}
	if len(pubKeyHash) != pubKeyHashSize {
		return nil, ErrInvalidPubKeyHash
	}

	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).
		AddOp(txscript.OP_HASH160).
		AddData(pubKeyHash).
		AddOp(txscript.OP_EQUALVERIFY).
		AddOp(txscript.OP_CHECKSIG).
		Script()
}
