// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package addresstype

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// Kind defines address role in the coin profile.
type Kind int

const (
	// KindDefault defines legacy (pay to public key hash) address.
	KindDefault Kind = iota
	// KindP2SH defines pay to script hash address.
	KindP2SH
	// KindP2WPKH defines pay to witness public key hash address.
	KindP2WPKH
	// KindP2WSH defines pay to witness script hash address.
	KindP2WSH
)

// String returns kind name.
func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindP2SH:
		return "p2sh"
	case KindP2WPKH:
		return "p2wpkh"
	case KindP2WSH:
		return "p2wsh"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Coin defines address types supported by the coin. Unset (nil) types are skipped.
type Coin struct {
	Name              string
	AddressType       *AddressType
	AddressTypeP2SH   *AddressType
	AddressTypeP2WPKH *AddressType
	AddressTypeP2WSH  *AddressType
}

// variant is a coin address type bound to its role.
type variant struct {
	kind Kind
	at   AddressType
}

// variants returns set address types in matching order: default, p2sh, p2wpkh, p2wsh.
func (c *Coin) variants() []variant {
	var (
		all = []*AddressType{c.AddressType, c.AddressTypeP2SH, c.AddressTypeP2WPKH, c.AddressTypeP2WSH}
		vs  = make([]variant, 0, len(all))
	)
	for kind, at := range all {
		if at == nil {
			continue
		}

		vs = append(vs, variant{kind: Kind(kind), at: *at})
	}

	return vs
}

// Type returns address type for provided kind, false if coin does not support it.
func (c *Coin) Type(kind Kind) (AddressType, bool) {
	for _, v := range c.variants() {
		if v.kind == kind {
			return v.at, true
		}
	}

	return 0, false
}

// match returns first coin variant matching raw address.
func (c *Coin) match(raw []byte) (variant, error) {
	for _, v := range c.variants() {
		if Check(v.at, raw) {
			return v, nil
		}
	}

	return variant{}, fmt.Errorf("%w: no %s address type matches", ErrInvalidAddress, c.Name)
}

// Split splits raw address into prefix and payload using the first matching coin address type.
// The split width is the width of the matched type.
func Split(coin *Coin, raw []byte) (prefix, payload []byte, err error) {
	v, err := coin.match(raw)
	if err != nil {
		return nil, nil, err
	}

	w := Width(v.at)

	return raw[:w], raw[w:], nil
}

// Detect returns kind of the first matching coin address type.
func Detect(coin *Coin, raw []byte) (Kind, error) {
	v, err := coin.match(raw)
	if err != nil {
		return 0, err
	}

	return v.kind, nil
}

// CoinFromParams builds legacy-only coin profile from btcd network parameters.
func CoinFromParams(params *chaincfg.Params) *Coin {
	return &Coin{
		Name:            params.Name,
		AddressType:     Ptr(AddressType(params.PubKeyHashAddrID)),
		AddressTypeP2SH: Ptr(AddressType(params.ScriptHashAddrID)),
	}
}

// Ptr returns pointer to provided address type.
func Ptr(t AddressType) *AddressType {
	return &t
}

var (
	// Bitcoin defines bitcoin mainnet profile.
	Bitcoin = &Coin{"Bitcoin", Ptr(0x00), Ptr(0x05), Ptr(0x06), Ptr(0x0A)}
	// Testnet defines bitcoin testnet profile.
	Testnet = &Coin{"Testnet", Ptr(0x6F), Ptr(0xC4), Ptr(0x03), Ptr(0x28)}
	// Litecoin defines litecoin mainnet profile.
	Litecoin = &Coin{"Litecoin", Ptr(0x30), Ptr(0x32), nil, nil}
	// Dogecoin defines dogecoin mainnet profile.
	Dogecoin = &Coin{"Dogecoin", Ptr(0x1E), Ptr(0x16), nil, nil}
	// Dash defines dash mainnet profile.
	Dash = &Coin{"Dash", Ptr(0x4C), Ptr(0x10), nil, nil}
	// Zcash defines zcash mainnet transparent profile (t1/t3 addresses).
	Zcash = &Coin{"Zcash", Ptr(0x1CB8), Ptr(0x1CBD), nil, nil}
	// Decred defines decred mainnet profile (Ds/Dc addresses).
	Decred = &Coin{"Decred", Ptr(0x073F), Ptr(0x071A), nil, nil}
)
