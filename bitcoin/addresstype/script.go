// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package addresstype

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// payloadSize defines expected payload length per address kind.
var payloadSize = map[Kind]int{
	KindDefault: 20,
	KindP2SH:    20,
	KindP2WPKH:  20,
	KindP2WSH:   32,
}

// Payload validates raw address against the coin profile and returns its kind and payload.
func Payload(coin *Coin, raw []byte) (Kind, []byte, error) {
	v, err := coin.match(raw)
	if err != nil {
		return 0, nil, err
	}

	payload := raw[Width(v.at):]
	if len(payload) != payloadSize[v.kind] {
		return 0, nil, fmt.Errorf("%w: %s payload must be %d bytes, got %d",
			ErrInvalidAddress, v.kind, payloadSize[v.kind], len(payload))
	}

	return v.kind, payload, nil
}

// PayToScript builds output locking script paying to the raw address.
//
//	default: OP_DUP OP_HASH160 <20> OP_EQUALVERIFY OP_CHECKSIG
//	p2sh:    OP_HASH160 <20> OP_EQUAL
//	p2wpkh:  OP_0 <20>
//	p2wsh:   OP_0 <32>
func PayToScript(coin *Coin, raw []byte) ([]byte, error) {
	kind, payload, err := Payload(coin, raw)
	if err != nil {
		return nil, err
	}

	builder := txscript.NewScriptBuilder()
	switch kind {
	case KindDefault:
		builder.
			AddOp(txscript.OP_DUP).
			AddOp(txscript.OP_HASH160).
			AddData(payload).
			AddOp(txscript.OP_EQUALVERIFY).
			AddOp(txscript.OP_CHECKSIG)
	case KindP2SH:
		builder.
			AddOp(txscript.OP_HASH160).
			AddData(payload).
			AddOp(txscript.OP_EQUAL)
	case KindP2WPKH, KindP2WSH:
		builder.
			AddOp(txscript.OP_0).
			AddData(payload)
	}

	return builder.Script()
}

// ToAddress converts raw address into btcutil.Address for provided network.
func ToAddress(coin *Coin, raw []byte, params *chaincfg.Params) (btcutil.Address, error) {
	kind, payload, err := Payload(coin, raw)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindDefault:
		return btcutil.NewAddressPubKeyHash(payload, params)
	case KindP2SH:
		return btcutil.NewAddressScriptHashFromHash(payload, params)
	case KindP2WPKH:
		return btcutil.NewAddressWitnessPubKeyHash(payload, params)
	default:
		return btcutil.NewAddressWitnessScriptHash(payload, params)
	}
}
