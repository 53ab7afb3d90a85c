// Copyright (C) 2024 Creditor Corp. Group.
// See LICENSE for copying information.

package signer

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/BoostyLabs/hwsigner/bitcoin"
	"github.com/BoostyLabs/hwsigner/bitcoin/bip143"
	"github.com/BoostyLabs/hwsigner/internal/reverse"
)

var (
	// ErrSigner defines errors class for the signer.
	ErrSigner = errors.New("sign p2sh witness")
	// ErrInvalidInputIndex defines requested input index is out of range.
	ErrInvalidInputIndex = errors.New("invalid input index")
	// ErrMissingWitnessUtxo defines that segwit input lacks spent output data.
	ErrMissingWitnessUtxo = errors.New("witness utxo is required")
	// ErrKeyMismatch defines that private key does not control the input.
	ErrKeyMismatch = errors.New("public key hash does not match redeem script")
)

// SignParams defines parameters for SignP2SHWitness method.
type SignParams struct {
	SerializedPSBT []byte
	Inputs         []int // inputs indexes.
	PrivateKey     *btcec.PrivateKey
}

// inputDigest holds data needed to sign single input.
type inputDigest struct {
	index      int
	pubKeyHash []byte
	hashType   bip143.SigHashType
	digest     []byte
}

// Signer provides transaction signing related logic.
type Signer struct {
	networkParams *chaincfg.Params
	hashFn        bip143.HashFunc
}

// NewSigner is a constructor for Signer. Nil hashFn means SHA256.
func NewSigner(networkParams *chaincfg.Params, hashFn bip143.HashFunc) *Signer {
	if hashFn == nil {
		hashFn = bip143.SHA256
	}

	return &Signer{
		networkParams: networkParams,
		hashFn:        hashFn,
	}
}

// NetworkParams returns network the signer is configured for.
func (signer *Signer) NetworkParams() *chaincfg.Params {
	return signer.networkParams
}

// Digests returns BIP143 signature hashes of provided P2SH-P2WPKH inputs by index.
func (signer *Signer) Digests(packet *psbt.Packet, inputs []int) (map[int][]byte, error) {
	digests, err := signer.digests(packet, inputs)
	if err != nil {
		return nil, err
	}

	result := make(map[int][]byte, len(digests))
	for _, d := range digests {
		result[d.index] = d.digest
	}

	return result, nil
}

// SignP2SHWitness signs P2SH-P2WPKH inputs by provided indexes, returns updated serialized PSBT.
func (signer *Signer) SignP2SHWitness(params SignParams) (_ []byte, err error) {
	defer func(err *error) {
		if err != nil && *err != nil {
			*err = errors.Join(ErrSigner, *err)
		}
	}(&err)

	packet, err := psbt.NewFromRawBytes(bytes.NewReader(params.SerializedPSBT), false)
	if err != nil {
		return nil, err
	}

	digests, err := signer.digests(packet, params.Inputs)
	if err != nil {
		return nil, err
	}

	pubKey := params.PrivateKey.PubKey().SerializeCompressed()
	pubKeyHash := btcutil.Hash160(pubKey)
	for _, d := range digests {
		if !bytes.Equal(pubKeyHash, d.pubKeyHash) {
			return nil, fmt.Errorf("%w: input %d", ErrKeyMismatch, d.index)
		}

		sig := ecdsa.Sign(params.PrivateKey, d.digest)
		input := &packet.Inputs[d.index]
		input.PartialSigs = append(input.PartialSigs, &psbt.PartialSig{
			PubKey:    pubKey,
			Signature: append(sig.Serialize(), byte(d.hashType)),
		})

		log.Infof("Signed input %d (%s)", d.index, d.hashType)
	}

	w := bytes.NewBuffer(nil)
	err = packet.Serialize(w)
	if err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// digests runs both BIP143 phases over the packet: accumulates every input and output,
// then computes signature hash for each requested input.
func (signer *Signer) digests(packet *psbt.Packet, indexes []int) ([]inputDigest, error) {
	var (
		tx      = packet.UnsignedTx
		builder = bip143.NewBuilder(bip143.WithHashFunc(signer.hashFn))
		inputs  = make([]bitcoin.TxInput, len(tx.TxIn))
	)
	for idx := range tx.TxIn {
		inputs[idx] = txInput(packet, idx)

		if err := builder.AddPrevout(inputs[idx]); err != nil {
			return nil, err
		}
		if err := builder.AddSequence(inputs[idx]); err != nil {
			return nil, err
		}
	}
	for _, out := range tx.TxOut {
		if err := builder.AddTxOut(out); err != nil {
			return nil, err
		}
	}
	builder.Seal()

	var (
		signTx  = bitcoin.SignTx{Version: uint32(tx.Version), LockTime: tx.LockTime}
		digests = make([]inputDigest, 0, len(indexes))
	)
	for _, idx := range indexes {
		if idx < 0 || idx >= len(inputs) {
			return nil, fmt.Errorf("%w: %d", ErrInvalidInputIndex, idx)
		}

		input := &packet.Inputs[idx]
		if inputs[idx].ScriptType != bitcoin.SpendP2SHWitness {
			return nil, &bip143.ScriptTypeError{ScriptType: inputs[idx].ScriptType}
		}
		if input.WitnessUtxo == nil {
			return nil, fmt.Errorf("%w: input %d", ErrMissingWitnessUtxo, idx)
		}

		hashType := bip143.SigHashType(input.SighashType)
		if hashType == 0 {
			hashType = bip143.SigHashAll
		}

		// redeem script is OP_0 <20 bytes pubKeyHash>.
		pubKeyHash := input.RedeemScript[2:]
		digest, err := builder.PreimageHashWithType(signTx, inputs[idx], pubKeyHash, hashType)
		if err != nil {
			return nil, err
		}

		digests = append(digests, inputDigest{
			index:      idx,
			pubKeyHash: pubKeyHash,
			hashType:   hashType,
			digest:     digest,
		})
	}

	return digests, nil
}

// txInput converts PSBT input into signing input. Previous hash is returned in display order.
func txInput(packet *psbt.Packet, idx int) bitcoin.TxInput {
	var (
		txIn = packet.UnsignedTx.TxIn[idx]
		in   = bitcoin.TxInput{
			PrevHash:   reverse.Copy(txIn.PreviousOutPoint.Hash[:]),
			PrevIndex:  txIn.PreviousOutPoint.Index,
			Sequence:   txIn.Sequence,
			ScriptType: InputScriptTypeOf(packet, idx),
		}
	)
	if utxo := packet.Inputs[idx].WitnessUtxo; utxo != nil {
		in.Amount = uint64(utxo.Value)
	}

	return in
}
