// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"

	"github.com/chainweb-spv/spvcore/log"
)

const (
	defaultNetwork   = "triangle"
	defaultScenario  = "all"
	defaultMaxHeight = 10
	defaultLogLevel  = "info"
	defaultLogDir    = "spvdemo-logs"
)

// config defines the command line options for spvdemo. It mirrors the
// shape of a btcsuite-family CLI config: every option has a long flag
// and a one-line description, and all but --version have a default
// and all but --logdir a short flag, loaded with a
// single go-flags parse (spvdemo has no config file of its own, so
// there is no pre-parse/ini-parse split here).
type config struct {
	Network     string `short:"n" long:"network" description:"Chainweb version to build: pair or triangle" default:"triangle"`
	Scenario    string `short:"s" long:"scenario" description:"Scenario to run: s1..s6, or all" default:"all"`
	MaxHeight   uint64 `short:"m" long:"maxheight" description:"Height every chain is built to before scenarios run" default:"10"`
	LogLevel    string `short:"l" long:"loglevel" description:"Logging level: trace, debug, info, warn, error, critical, off" default:"info"`
	LogDir      string `long:"logdir" description:"Directory to write spvdemo.log into" default:"spvdemo-logs"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
}

// loadConfig parses the command line into a config with sane defaults,
// the single-pass equivalent of the node's multi-stage loadConfig.
func loadConfig() (*config, error) {
	cfg := config{
		Network:   defaultNetwork,
		Scenario:  defaultScenario,
		MaxHeight: defaultMaxHeight,
		LogLevel:  defaultLogLevel,
		LogDir:    defaultLogDir,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); ok && e.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version())
		os.Exit(0)
	}

	if _, ok := log.LevelFromString(cfg.LogLevel); !ok {
		return nil, fmt.Errorf("invalid loglevel %q", cfg.LogLevel)
	}

	switch cfg.Network {
	case "pair", "triangle":
	default:
		return nil, fmt.Errorf("unknown network %q: must be pair or triangle", cfg.Network)
	}

	switch strings.ToLower(cfg.Scenario) {
	case "s1", "s2", "s3", "s4", "s5", "s6", "all":
	default:
		return nil, fmt.Errorf("unknown scenario %q", cfg.Scenario)
	}

	return &cfg, nil
}
