// Copyright (C) 2026 Creditor Corp. Group.
// See LICENSE for copying information.

package bip143

import (
	"github.com/btcsuite/btclog"
)

// log is a logger that is initialized with no output filters.
// Logging is disabled by default until UseLogger is called.
var log = btclog.Disabled

// DisableLog disables all library log output.
func DisableLog() {
	UseLogger(btclog.Disabled)
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger btclog.Logger) {
	log = logger
}
