// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/BoostyLabs/hwsigner/bitcoin/addresstype"
)

// coins maps coin option to address profile.
var coins = map[string]*addresstype.Coin{
	"bitcoin":  addresstype.Bitcoin,
	"testnet":  addresstype.Testnet,
	"litecoin": addresstype.Litecoin,
	"dogecoin": addresstype.Dogecoin,
	"dash":     addresstype.Dash,
	"zcash":    addresstype.Zcash,
	"decred":   addresstype.Decred,
}

// addressCommand splits raw address into prefix and payload.
type addressCommand struct {
	cfg *config

	Coin string `long:"coin" default:"bitcoin" choice:"bitcoin" choice:"testnet" choice:"litecoin" choice:"dogecoin" choice:"dash" choice:"zcash" choice:"decred" description:"Coin address profile"`
	Raw  string `long:"raw" required:"true" description:"Hex encoded raw (decoded, checksum stripped) address"`
}

// Execute implements flags.Commander.
func (c *addressCommand) Execute(_ []string) error {
	if err := c.cfg.setupLogging(); err != nil {
		return err
	}

	raw, err := hex.DecodeString(c.Raw)
	if err != nil {
		return err
	}

	coin := coins[c.Coin]
	kind, err := addresstype.Detect(coin, raw)
	if err != nil {
		return err
	}

	prefix, payload, err := addresstype.Split(coin, raw)
	if err != nil {
		return err
	}

	fmt.Printf("kind: %s\nprefix: %x\npayload: %x\n", kind, prefix, payload)

	script, err := addresstype.PayToScript(coin, raw)
	if err != nil {
		return err
	}

	fmt.Printf("script: %x\n", script)

	return nil
}
