// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package bitcoin

// InputScriptType defines how the spent output is locked and therefore how the input must be signed.
type InputScriptType byte

const (
	// SpendAddress defines legacy P2PKH input.
	SpendAddress InputScriptType = 0
	// SpendMultisig defines legacy bare or P2SH multisig input.
	SpendMultisig InputScriptType = 1
	// External defines input that is signed by someone else.
	External InputScriptType = 2
	// SpendWitness defines native segwit (P2WPKH/P2WSH) input.
	SpendWitness InputScriptType = 3
	// SpendP2SHWitness defines P2WPKH nested into P2SH input.
	SpendP2SHWitness InputScriptType = 4
)

// String returns human-readable script type name.
func (t InputScriptType) String() string {
	switch t {
	case SpendAddress:
		return "SPENDADDRESS"
	case SpendMultisig:
		return "SPENDMULTISIG"
	case External:
		return "EXTERNAL"
	case SpendWitness:
		return "SPENDWITNESS"
	case SpendP2SHWitness:
		return "SPENDP2SHWITNESS"
	default:
		return "UNKNOWN"
	}
}

// TxInput describes single input of the transaction being signed.
type TxInput struct {
	PrevHash   []byte // 32 bytes, in display (big-endian) order as host supplies it.
	PrevIndex  uint32 // spent output index in previous transaction.
	Sequence   uint32
	Amount     uint64 // in Satoshi.
	ScriptType InputScriptType
}

// SignTx describes transaction wide fields committed by the signature.
type SignTx struct {
	Version  uint32
	LockTime uint32
}
