// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/jrick/logrotate/rotator"

	"github.com/chainweb-spv/spvcore/header"
	"github.com/chainweb-spv/spvcore/log"
	"github.com/chainweb-spv/spvcore/payload"
	"github.com/chainweb-spv/spvcore/proof"
)

// logRotator rotates the spvdemo log file the same way flokicoind
// rotates its own, closed once in fmain's deferred cleanup.
var logRotator *rotator.Rotator

// logWriter sends logged bytes to both stdout and the log rotator, so
// the demo is readable interactively and still leaves a trail on
// disk.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	return logRotator.Write(p)
}

// initLogRotator opens (creating if necessary) the log rotator at
// logDir/spvdemo.log and wires a leveled logger into every
// package-scoped UseLogger in this module.
func initLogRotator(logDir, levelName string) error {
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}

	logFile := filepath.Join(logDir, "spvdemo.log")
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r

	level, _ := log.LevelFromString(levelName)

	var w io.Writer = logWriter{}
	header.UseLogger(log.New(w, "HDR", level))
	payload.UseLogger(log.New(w, "PLD", level))
	proof.UseLogger(log.New(w, "PRF", level))

	return nil
}
