// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package signer

import (
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/txscript"

	"github.com/BoostyLabs/hwsigner/bitcoin"
)

// prevPkScript returns script of the output spent by PSBT input, nil if unknown.
func prevPkScript(packet *psbt.Packet, idx int) []byte {
	input := &packet.Inputs[idx]
	switch {
	case input.WitnessUtxo != nil:
		return input.WitnessUtxo.PkScript
	case input.NonWitnessUtxo != nil:
		prevIndex := packet.UnsignedTx.TxIn[idx].PreviousOutPoint.Index
		if int(prevIndex) < len(input.NonWitnessUtxo.TxOut) {
			return input.NonWitnessUtxo.TxOut[prevIndex].PkScript
		}
	}

	return nil
}

// InputScriptTypeOf returns script type of PSBT input based on spent output and redeem script.
// Inputs with unknown spent output are considered External.
func InputScriptTypeOf(packet *psbt.Packet, idx int) bitcoin.InputScriptType {
	var (
		input    = &packet.Inputs[idx]
		pkScript = prevPkScript(packet, idx)
	)
	if pkScript == nil {
		return bitcoin.External
	}

	switch txscript.GetScriptClass(pkScript) {
	case txscript.PubKeyHashTy:
		return bitcoin.SpendAddress
	case txscript.MultiSigTy:
		return bitcoin.SpendMultisig
	case txscript.WitnessV0PubKeyHashTy, txscript.WitnessV0ScriptHashTy:
		return bitcoin.SpendWitness
	case txscript.ScriptHashTy:
		switch {
		case txscript.IsPayToWitnessPubKeyHash(input.RedeemScript):
			return bitcoin.SpendP2SHWitness
		case txscript.GetScriptClass(input.RedeemScript) == txscript.MultiSigTy:
			return bitcoin.SpendMultisig
		}
	}

	return bitcoin.External
}
