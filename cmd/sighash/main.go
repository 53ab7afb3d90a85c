// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

// Command sighash prints BIP143 signature hashes of PSBT inputs and splits raw addresses.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/btcsuite/btclog"
	"github.com/jessevdk/go-flags"

	"github.com/BoostyLabs/hwsigner/bitcoin/bip143"
	"github.com/BoostyLabs/hwsigner/bitcoin/signer"
)

// config defines options shared by all commands.
type config struct {
	LogLevel string `long:"loglevel" default:"info" description:"Logging level {trace, debug, info, warn, error, critical, off}"`
	Hash     string `long:"hash" default:"sha256" choice:"sha256" choice:"blake256" choice:"blake2b" description:"Hash function used for double hashing"`
}

// hashFuncs maps hash option to hash function.
var hashFuncs = map[string]bip143.HashFunc{
	"sha256":   bip143.SHA256,
	"blake256": bip143.Blake256,
	"blake2b":  bip143.Blake2b256,
}

// setupLogging wires package loggers to stderr backend.
func (cfg *config) setupLogging() error {
	level, ok := btclog.LevelFromString(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}

	backend := btclog.NewBackend(os.Stderr)

	bip143Log := backend.Logger("B143")
	bip143Log.SetLevel(level)
	bip143.UseLogger(bip143Log)

	signerLog := backend.Logger("SGNR")
	signerLog.SetLevel(level)
	signer.UseLogger(signerLog)

	return nil
}

func main() {
	var cfg config

	parser := flags.NewParser(&cfg, flags.Default)
	_, err := parser.AddCommand("digest", "Print input signature hashes",
		"Computes BIP143 signature hashes of P2SH-P2WPKH inputs of a base64 encoded PSBT.",
		&digestCommand{cfg: &cfg})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	_, err = parser.AddCommand("address", "Split raw address",
		"Splits hex encoded raw address into address type prefix and payload.",
		&addressCommand{cfg: &cfg})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if _, err = parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}

		os.Exit(1)
	}
}
