// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command spvdemo builds a small braided chainweb in memory and walks
// through the construction/verification scenarios an SPV proof system
// is meant to handle: a same-chain proof, a cross-chain proof, a
// source chain that hasn't caught up yet, a target chain too young
// for the requested path, a tampered proof, and a corrupted payload
// store.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/chainweb-spv/spvcore/chaincfg"
)

var appVersion = "0.1.0"

func version() string {
	return appVersion
}

func fmain() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogRotator(cfg.LogDir, cfg.LogLevel); err != nil {
		return fmt.Errorf("unable to open log rotator: %v", err)
	}
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	params, err := chaincfg.NetworkParams(cfg.Network)
	if err != nil {
		return err
	}

	fmt.Printf("building %s chainweb (%d chains) to height %d\n",
		params.Name, len(params.Graph.Chains()), cfg.MaxHeight)
	cw, err := buildChainweb(params, cfg.MaxHeight)
	if err != nil {
		return fmt.Errorf("unable to build chainweb: %v", err)
	}

	scenarios := []string{"s1", "s2", "s3", "s4", "s5", "s6"}
	if want := strings.ToLower(cfg.Scenario); want != "all" {
		scenarios = []string{want}
	}

	for _, s := range scenarios {
		if err := runScenario(s, cw); err != nil {
			fmt.Fprintf(os.Stderr, "%s failed: %v\n", strings.ToUpper(s), err)
		}
		fmt.Println()
	}

	return nil
}

func main() {
	if err := fmain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
