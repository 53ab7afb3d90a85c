// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package bip143_test

import (
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/BoostyLabs/hwsigner/bitcoin"
	"github.com/BoostyLabs/hwsigner/bitcoin/bip143"
)

// BIP143 "P2SH-P2WPKH" example.
var (
	vectorTx = bitcoin.SignTx{Version: 1, LockTime: 1170}
	vectorIn = bitcoin.TxInput{
		PrevHash:   mustHex("77541aeb3c4dac9260b68f74f44c973081a9d4cb2ebe8038b2d70faa201b6bdb"),
		PrevIndex:  1,
		Sequence:   0xfffffffe,
		Amount:     1_000_000_000,
		ScriptType: bitcoin.SpendP2SHWitness,
	}
	vectorOutputs = [][]byte{
		mustHex("b8b4eb0b000000001976a914a457b684d7f0d539a46a45bbc043f35b59d0d96388ac"),
		mustHex("0008af2f000000001976a914fd270b1ee6abcaea97fea7ad0402e8bd8ad6d77c88ac"),
	}
	vectorPubKeyHash = mustHex("79091972186c449eb1ded22b78e40d009bdf0089")
)

func newVectorBuilder(t *testing.T) *bip143.Builder {
	b := bip143.NewBuilder()
	require.NoError(t, b.AddPrevout(vectorIn))
	require.NoError(t, b.AddSequence(vectorIn))
	for _, out := range vectorOutputs {
		require.NoError(t, b.AddOutput(out))
	}

	return b
}

func TestBIP143Vector(t *testing.T) {
	b := newVectorBuilder(t)

	require.Equal(t, "b0287b4a252ac05af83d2dcef00ba313af78a3e9c329afa216eb3aa2a7b4613a", hex.EncodeToString(b.PrevoutsHash()))
	require.Equal(t, "18606b350cd8bf565266bc352f0caddcf01e8fa789dd8a15386327cf8cabe198", hex.EncodeToString(b.SequenceHash()))
	require.Equal(t, "de984f44532e2173ca0d64314fcefe6d30da6f8cf27bafa706da61df8a226c83", hex.EncodeToString(b.OutputsHash()))

	preimage, err := b.Preimage(vectorTx, vectorIn, vectorPubKeyHash, bip143.SigHashAll)
	require.NoError(t, err)
	require.Equal(t, "01000000"+
		"b0287b4a252ac05af83d2dcef00ba313af78a3e9c329afa216eb3aa2a7b4613a"+
		"18606b350cd8bf565266bc352f0caddcf01e8fa789dd8a15386327cf8cabe198"+
		"db6b1b20aa0fd7b23880be2ecbd4a98130974cf4748fb66092ac4d3ceb1a547701000000"+
		"1976a91479091972186c449eb1ded22b78e40d009bdf008988ac"+
		"00ca9a3b00000000"+
		"feffffff"+
		"de984f44532e2173ca0d64314fcefe6d30da6f8cf27bafa706da61df8a226c83"+
		"92040000"+
		"01000000", hex.EncodeToString(preimage))

	digest, err := b.PreimageHash(vectorTx, vectorIn, vectorPubKeyHash)
	require.NoError(t, err)
	require.Equal(t, "64f3b0f4dd2bb3aa1ce8566d220cc74dda9df97d8490cc81d89d735c92e59fb6", hex.EncodeToString(digest))
	require.Equal(t, bip143.DoubleHash(bip143.SHA256, preimage), digest)
}

func TestAddPrevout(t *testing.T) {
	prevHash := make([]byte, 32)
	for i := range prevHash {
		prevHash[i] = byte(i)
	}
	in := bitcoin.TxInput{PrevHash: prevHash, PrevIndex: 7, ScriptType: bitcoin.SpendP2SHWitness}

	b := bip143.NewBuilder()
	require.NoError(t, b.AddPrevout(in))

	expected := make([]byte, 0, 36)
	for i := 31; i >= 0; i-- {
		expected = append(expected, byte(i))
	}
	expected = binary.LittleEndian.AppendUint32(expected, 7)

	require.Equal(t, bip143.DoubleHash(bip143.SHA256, expected), b.PrevoutsHash())
	require.Equal(t, "e36c51dfea669dd2e72aca64dd26baaa7a37f847e6a5dd9c61acd512466a039a", hex.EncodeToString(b.PrevoutsHash()))
	// host hash stays untouched.
	require.EqualValues(t, 0, prevHash[0])
	require.EqualValues(t, 31, prevHash[31])

	t.Run("outpoint inside preimage", func(t *testing.T) {
		preimage, err := b.Preimage(bitcoin.SignTx{}, in, vectorPubKeyHash, bip143.SigHashAll)
		require.NoError(t, err)
		require.Equal(t, expected, preimage[4+32+32:4+32+32+36])
	})

	t.Run("invalid prev hash", func(t *testing.T) {
		err := bip143.NewBuilder().AddPrevout(bitcoin.TxInput{PrevHash: prevHash[:31]})
		require.ErrorIs(t, err, bip143.ErrInvalidPrevHash)

		_, err = bip143.NewBuilder().PreimageHash(bitcoin.SignTx{}, bitcoin.TxInput{ScriptType: bitcoin.SpendP2SHWitness}, vectorPubKeyHash)
		require.ErrorIs(t, err, bip143.ErrInvalidPrevHash)
	})
}

func TestFinalizers(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		b := newVectorBuilder(t)

		require.Equal(t, b.PrevoutsHash(), b.PrevoutsHash())
		require.Equal(t, b.SequenceHash(), b.SequenceHash())
		require.Equal(t, b.OutputsHash(), b.OutputsHash())

		first, err := b.PreimageHash(vectorTx, vectorIn, vectorPubKeyHash)
		require.NoError(t, err)
		second, err := b.PreimageHash(vectorTx, vectorIn, vectorPubKeyHash)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})

	t.Run("premature finalization", func(t *testing.T) {
		b := bip143.NewBuilder()
		require.NoError(t, b.AddPrevout(vectorIn))
		partial := b.PrevoutsHash()

		second := vectorIn
		second.PrevIndex = 0
		require.NoError(t, b.AddPrevout(second))
		require.NotEqual(t, partial, b.PrevoutsHash())
	})

	t.Run("independent accumulators", func(t *testing.T) {
		b := bip143.NewBuilder()
		empty := bip143.DoubleHash(bip143.SHA256, nil)

		require.NoError(t, b.AddSequence(vectorIn))
		require.Equal(t, empty, b.PrevoutsHash())
		require.Equal(t, empty, b.OutputsHash())
		require.NotEqual(t, empty, b.SequenceHash())
	})
}

func TestSealing(t *testing.T) {
	b := newVectorBuilder(t)
	require.False(t, b.Sealed())

	_, err := b.PreimageHash(vectorTx, vectorIn, vectorPubKeyHash)
	require.NoError(t, err)
	require.True(t, b.Sealed())

	prevouts := b.PrevoutsHash()
	require.ErrorIs(t, b.AddPrevout(vectorIn), bip143.ErrSealed)
	require.ErrorIs(t, b.AddSequence(vectorIn), bip143.ErrSealed)
	require.ErrorIs(t, b.AddOutput(vectorOutputs[0]), bip143.ErrSealed)
	require.ErrorIs(t, b.AddTxOut(wire.NewTxOut(1, nil)), bip143.ErrSealed)
	require.Equal(t, prevouts, b.PrevoutsHash())

	t.Run("explicit seal", func(t *testing.T) {
		b := bip143.NewBuilder()
		b.Seal()
		require.True(t, b.Sealed())
		require.ErrorIs(t, b.AddSequence(vectorIn), bip143.ErrSealed)
	})

	t.Run("failed preimage does not seal", func(t *testing.T) {
		b := newVectorBuilder(t)
		in := vectorIn
		in.ScriptType = bitcoin.SpendWitness

		_, err := b.PreimageHash(vectorTx, in, vectorPubKeyHash)
		require.ErrorIs(t, err, bip143.ErrUnsupportedScriptType)
		require.False(t, b.Sealed())
	})
}

func TestAddTxOut(t *testing.T) {
	serialized := bip143.NewBuilder()
	for _, out := range vectorOutputs {
		require.NoError(t, serialized.AddOutput(out))
	}

	txOuts := bip143.NewBuilder()
	require.NoError(t, txOuts.AddTxOut(wire.NewTxOut(199996600, mustHex("76a914a457b684d7f0d539a46a45bbc043f35b59d0d96388ac"))))
	require.NoError(t, txOuts.AddTxOut(wire.NewTxOut(800000000, mustHex("76a914fd270b1ee6abcaea97fea7ad0402e8bd8ad6d77c88ac"))))

	require.Equal(t, serialized.OutputsHash(), txOuts.OutputsHash())
}

func TestDeriveScriptCode(t *testing.T) {
	t.Run("p2sh-p2wpkh", func(t *testing.T) {
		scriptCode, err := bip143.DeriveScriptCode(vectorIn, vectorPubKeyHash)
		require.NoError(t, err)
		require.Len(t, scriptCode, 25)
		require.Equal(t, "76a91479091972186c449eb1ded22b78e40d009bdf008988ac", hex.EncodeToString(scriptCode))

		fromBuilder, err := bip143.NewBuilder().DeriveScriptCode(vectorIn, vectorPubKeyHash)
		require.NoError(t, err)
		require.Equal(t, scriptCode, fromBuilder)
	})

	t.Run("unsupported script types", func(t *testing.T) {
		for _, scriptType := range []bitcoin.InputScriptType{bitcoin.SpendAddress, bitcoin.SpendMultisig, bitcoin.External, bitcoin.SpendWitness, 42} {
			in := vectorIn
			in.ScriptType = scriptType

			scriptCode, err := bip143.DeriveScriptCode(in, vectorPubKeyHash)
			require.ErrorIs(t, err, bip143.ErrUnsupportedScriptType)
			require.ErrorIs(t, err, &bip143.ScriptTypeError{ScriptType: scriptType})
			require.Nil(t, scriptCode)

			var typeErr *bip143.ScriptTypeError
			require.ErrorAs(t, err, &typeErr)
			require.Equal(t, scriptType, typeErr.ScriptType)
		}
	})

	t.Run("invalid public key hash", func(t *testing.T) {
		_, err := bip143.DeriveScriptCode(vectorIn, vectorPubKeyHash[:19])
		require.ErrorIs(t, err, bip143.ErrInvalidPubKeyHash)

		_, err = bip143.DeriveScriptCode(vectorIn, nil)
		require.ErrorIs(t, err, bip143.ErrInvalidPubKeyHash)
	})
}

func TestSigHashType(t *testing.T) {
	b := newVectorBuilder(t)

	for _, hashType := range []bip143.SigHashType{bip143.SigHashSingle, bip143.SigHashSingle | bip143.SigHashAnyOneCanPay, 0x00, 0x04, 0x101} {
		_, err := b.PreimageHashWithType(vectorTx, vectorIn, vectorPubKeyHash, hashType)
		require.ErrorIs(t, err, bip143.ErrUnsupportedSigHashType, hashType.String())
	}
	require.False(t, b.Sealed())

	all, err := b.PreimageHashWithType(vectorTx, vectorIn, vectorPubKeyHash, bip143.SigHashAll)
	require.NoError(t, err)
	none, err := b.PreimageHashWithType(vectorTx, vectorIn, vectorPubKeyHash, bip143.SigHashNone)
	require.NoError(t, err)
	require.NotEqual(t, all, none)

	preimage, err := b.Preimage(vectorTx, vectorIn, vectorPubKeyHash, bip143.SigHashNone|bip143.SigHashAnyOneCanPay)
	require.NoError(t, err)
	require.Equal(t, make([]byte, 64), preimage[4:4+64])
	require.Equal(t, []byte{0x82, 0x00, 0x00, 0x00}, preimage[len(preimage)-4:])

	require.Equal(t, "ALL", bip143.SigHashAll.String())
	require.Equal(t, "NONE|ANYONECANPAY", (bip143.SigHashNone | bip143.SigHashAnyOneCanPay).String())
	require.Equal(t, "SINGLE", bip143.SigHashSingle.String())
}

func TestHashFunc(t *testing.T) {
	for name, fn := range map[string]bip143.HashFunc{"blake256": bip143.Blake256, "blake2b": bip143.Blake2b256} {
		t.Run(name, func(t *testing.T) {
			b := bip143.NewBuilder(bip143.WithHashFunc(fn))
			require.NoError(t, b.AddPrevout(vectorIn))
			require.NoError(t, b.AddSequence(vectorIn))
			require.NoError(t, b.AddOutput(vectorOutputs[0]))

			reference := bip143.NewBuilder()
			require.NoError(t, reference.AddPrevout(vectorIn))
			require.NotEqual(t, reference.PrevoutsHash(), b.PrevoutsHash())
			require.Len(t, b.PrevoutsHash(), 32)

			outpoint := append(mustHex("db6b1b20aa0fd7b23880be2ecbd4a98130974cf4748fb66092ac4d3ceb1a5477"), 0x01, 0x00, 0x00, 0x00)
			require.Equal(t, bip143.DoubleHash(fn, outpoint), b.PrevoutsHash())

			preimage, err := b.Preimage(vectorTx, vectorIn, vectorPubKeyHash, bip143.SigHashAll)
			require.NoError(t, err)

			digest, err := b.PreimageHash(vectorTx, vectorIn, vectorPubKeyHash)
			require.NoError(t, err)
			require.Equal(t, bip143.DoubleHash(fn, preimage), digest)
		})
	}

	t.Run("nil keeps default", func(t *testing.T) {
		b := bip143.NewBuilder(bip143.WithHashFunc(nil))
		require.Equal(t, bip143.DoubleHash(bip143.SHA256, nil), b.OutputsHash())
	})
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}

	return b
}
