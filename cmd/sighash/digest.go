// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/psbt"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/BoostyLabs/hwsigner/bitcoin"
	"github.com/BoostyLabs/hwsigner/bitcoin/signer"
)

// networks maps network option to btcd network parameters.
var networks = map[string]*chaincfg.Params{
	"mainnet":  &chaincfg.MainNetParams,
	"testnet3": &chaincfg.TestNet3Params,
	"regtest":  &chaincfg.RegressionNetParams,
	"signet":   &chaincfg.SigNetParams,
}

// digestCommand prints signature hashes of PSBT inputs.
type digestCommand struct {
	cfg *config

	PSBT    string `long:"psbt" required:"true" description:"Base64 encoded PSBT"`
	Inputs  []int  `long:"input" description:"Input index to hash, may be repeated. All P2SH-P2WPKH inputs by default"`
	Network string `long:"network" default:"mainnet" choice:"mainnet" choice:"testnet3" choice:"regtest" choice:"signet" description:"Network used for address rendering"`
}

// Execute implements flags.Commander.
func (c *digestCommand) Execute(_ []string) error {
	if err := c.cfg.setupLogging(); err != nil {
		return err
	}

	packet, err := psbt.NewFromRawBytes(strings.NewReader(c.PSBT), true)
	if err != nil {
		return err
	}

	inputs := c.Inputs
	if len(inputs) == 0 {
		for idx := range packet.Inputs {
			if signer.InputScriptTypeOf(packet, idx) == bitcoin.SpendP2SHWitness {
				inputs = append(inputs, idx)
			}
		}
	}

	s := signer.NewSigner(networks[c.Network], hashFuncs[c.cfg.Hash])
	digests, err := s.Digests(packet, inputs)
	if err != nil {
		return err
	}

	for _, idx := range inputs {
		address, err := btcutil.NewAddressScriptHash(packet.Inputs[idx].RedeemScript, s.NetworkParams())
		if err != nil {
			return err
		}

		fmt.Printf("input %d %s: %s\n", idx, address.EncodeAddress(), hex.EncodeToString(digests[idx]))
	}

	return nil
}
