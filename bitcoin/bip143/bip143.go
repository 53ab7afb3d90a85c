// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

// Package bip143 builds segwit v0 signature hashes (BIP143).
//
// Builder works in two phases. First every input prevout and sequence and every
// output of the transaction is added in transaction order. Then digest for each
// segwit input is requested. The first digest request seals the builder,
// any later Add call fails with ErrSealed.
package bip143

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/wire"

	"github.com/BoostyLabs/hwsigner/bitcoin"
	"github.com/BoostyLabs/hwsigner/internal/reverse"
)

// prevHashSize defines previous transaction hash length.
const prevHashSize = 32

// Option configures Builder.
type Option func(*Builder)

// WithHashFunc sets hash function used by all Builder accumulators and the final digest.
func WithHashFunc(fn HashFunc) Option {
	return func(b *Builder) {
		if fn != nil {
			b.hashFn = fn
		}
	}
}

// Builder accumulates transaction wide hashes and computes per input signature hashes.
// Builder is owned by one signing flow and is not safe for concurrent use.
type Builder struct {
	hashFn   HashFunc
	prevouts *RunningHash
	sequence *RunningHash
	outputs  *RunningHash
}

// NewBuilder is a constructor for Builder. SHA256 is used unless WithHashFunc is provided.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{hashFn: SHA256}
	for _, opt := range opts {
		opt(b)
	}

	b.prevouts = NewRunningHash(b.hashFn)
	b.sequence = NewRunningHash(b.hashFn)
	b.outputs = NewRunningHash(b.hashFn)

	return b
}

// AddPrevout appends input outpoint: reversed previous hash followed by LE32 index.
func (b *Builder) AddPrevout(in bitcoin.TxInput) error {
	outpoint, err := serializeOutpoint(in)
	if err != nil {
		return err
	}

	_, err = b.prevouts.Write(outpoint)

	return err
}

// AddSequence appends input sequence as LE32.
func (b *Builder) AddSequence(in bitcoin.TxInput) error {
	_, err := b.sequence.Write(binary.LittleEndian.AppendUint32(nil, in.Sequence))

	return err
}

// AddOutput appends serialized output (value and length prefixed pkScript) verbatim.
func (b *Builder) AddOutput(serializedOutput []byte) error {
	_, err := b.outputs.Write(serializedOutput)

	return err
}

// AddTxOut serializes output and appends it.
func (b *Builder) AddTxOut(out *wire.TxOut) error {
	if b.outputs.Sealed() {
		return ErrSealed
	}

	return wire.WriteTxOut(b.outputs, 0, 0, out)
}

// PrevoutsHash returns hashPrevouts over prevouts added so far.
func (b *Builder) PrevoutsHash() []byte {
	return b.prevouts.Sum()
}

// SequenceHash returns hashSequence over sequences added so far.
func (b *Builder) SequenceHash() []byte {
	return b.sequence.Sum()
}

// OutputsHash returns hashOutputs over outputs added so far.
func (b *Builder) OutputsHash() []byte {
	return b.outputs.Sum()
}

// Seal finishes accumulation phase.
func (b *Builder) Seal() {
	b.prevouts.Seal()
	b.sequence.Seal()
	b.outputs.Seal()
}

// Sealed returns true if accumulation phase is finished.
func (b *Builder) Sealed() bool {
	return b.prevouts.Sealed()
}

// DeriveScriptCode returns scriptCode of the input, see DeriveScriptCode.
func (b *Builder) DeriveScriptCode(in bitcoin.TxInput, pubKeyHash []byte) ([]byte, error) {
	return DeriveScriptCode(in, pubKeyHash)
}

// PreimageHash returns SIGHASH_ALL digest to be signed for the input.
func (b *Builder) PreimageHash(tx bitcoin.SignTx, in bitcoin.TxInput, pubKeyHash []byte) ([]byte, error) {
	return b.PreimageHashWithType(tx, in, pubKeyHash, SigHashAll)
}

// PreimageHashWithType returns digest to be signed for the input with provided signature hash type.
func (b *Builder) PreimageHashWithType(tx bitcoin.SignTx, in bitcoin.TxInput, pubKeyHash []byte, hashType SigHashType) ([]byte, error) {
	preimage, err := b.Preimage(tx, in, pubKeyHash, hashType)
	if err != nil {
		return nil, err
	}

	digest := DoubleHash(b.hashFn, preimage)
	log.Debugf("Input %x:%d signature hash (%s): %x", in.PrevHash, in.PrevIndex, hashType, digest)

	return digest, nil
}

// Preimage assembles BIP143 preimage for the input and seals the builder.
//
//	┌──────────────┬──────────┬────────────────────────────────────────┐
//	│    field     │   size   │             description                │
//	├==============┼==========┼========================================┤
//	│ nVersion     │ 4        │ LE32 transaction version               │
//	│ hashPrevouts │ 32       │ zeros for ANYONECANPAY                 │
//	│ hashSequence │ 32       │ zeros for ANYONECANPAY, NONE           │
//	│ outpoint     │ 32 + 4   │ reversed prev hash, LE32 index         │
//	│ scriptCode   │ variable │ varint length prefixed                 │
//	│ amount       │ 8        │ LE64 spent output value                │
//	│ nSequence    │ 4        │ LE32 input sequence                    │
//	│ hashOutputs  │ 32       │ zeros for NONE                         │
//	│ nLockTime    │ 4        │ LE32 transaction lock time             │
//	│ nHashType    │ 4        │ LE32 signature hash type               │
//	└──────────────┴──────────┴────────────────────────────────────────┘
func (b *Builder) Preimage(tx bitcoin.SignTx, in bitcoin.TxInput, pubKeyHash []byte, hashType SigHashType) ([]byte, error) {
	if err := hashType.validate(); err != nil {
		return nil, err
	}

	scriptCode, err := DeriveScriptCode(in, pubKeyHash)
	if err != nil {
		return nil, err
	}

	outpoint, err := serializeOutpoint(in)
	if err != nil {
		return nil, err
	}

	b.Seal()

	var (
		zeroHash     = make([]byte, b.hashFn().Size())
		hashPrevouts = zeroHash
		hashSequence = zeroHash
		hashOutputs  = zeroHash
	)
	if hashType.commitsPrevouts() {
		hashPrevouts = b.PrevoutsHash()
	}
	if hashType.commitsSequence() {
		hashSequence = b.SequenceHash()
	}
	if hashType.commitsOutputs() {
		hashOutputs = b.OutputsHash()
	}

	w := bytes.NewBuffer(make([]byte, 0, 4+3*len(zeroHash)+len(outpoint)+1+len(scriptCode)+8+4+4+4))
	w.Write(binary.LittleEndian.AppendUint32(nil, tx.Version))
	w.Write(hashPrevouts)
	w.Write(hashSequence)
	w.Write(outpoint)
	if err = wire.WriteVarBytes(w, 0, scriptCode); err != nil {
		return nil, err
	}
	w.Write(binary.LittleEndian.AppendUint64(nil, in.Amount))
	w.Write(binary.LittleEndian.AppendUint32(nil, in.Sequence))
	w.Write(hashOutputs)
	w.Write(binary.LittleEndian.AppendUint32(nil, tx.LockTime))
	w.Write(binary.LittleEndian.AppendUint32(nil, uint32(hashType)))

	return w.Bytes(), nil
}

// serializeOutpoint returns reversed previous hash followed by LE32 previous index.
func serializeOutpoint(in bitcoin.TxInput) ([]byte, error) {
	if len(in.PrevHash) != prevHashSize {
		return nil, ErrInvalidPrevHash
	}

	outpoint := make([]byte, 0, prevHashSize+4)
	outpoint = append(outpoint, reverse.Copy(in.PrevHash)...)
	outpoint = binary.LittleEndian.AppendUint32(outpoint, in.PrevIndex)

	return outpoint, nil
}
