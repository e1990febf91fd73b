// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg fixes the shape of a braided chainweb instance: its
// ChainGraph and the genesis BlockHeader of every chain in it. This is
// the SPV proof system's equivalent of the teacher's chaincfg.Params
// registry, which fixes network parameters and a genesis block per
// network (mainnet/testnet/simnet) rather than per chainweb version.
package chaincfg

import (
	"fmt"

	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/header"
	"github.com/chainweb-spv/spvcore/merklelog"
)

// Params names the fixed shape of one chainweb version: its graph and
// a genesis header per chain, mirroring the teacher's
// chaincfg.Params grouping of a network's consensus parameters.
type Params struct {
	// Name identifies the chainweb version, e.g. "pair" or "triangle".
	Name string

	// Graph is the immutable adjacency graph every header in this
	// chainweb version must respect.
	Graph *chaingraph.Graph

	// GenesisHeaders holds the height-0 header for every chain named
	// in Graph.Chains().
	GenesisHeaders map[chaingraph.ChainId]*header.BlockHeader
}

var registry = make(map[string]*Params)

// RegisterNetwork adds p to the set of known chainweb versions,
// mirroring the teacher's chaincfg.Register. It panics on a duplicate
// name, since this is meant to be called from package-level var
// initialization, the same place the teacher registers MainNetParams/
// TestNet3Params/etc.
func RegisterNetwork(p *Params) {
	if _, exists := registry[p.Name]; exists {
		panic(fmt.Sprintf("chaincfg: network %q already registered", p.Name))
	}
	registry[p.Name] = p
}

// NetworkParams looks up a previously registered chainweb version by
// name.
func NetworkParams(name string) (*Params, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("chaincfg: unknown chainweb version %q", name)
	}
	return p, nil
}

func genesisHeader(c chaingraph.ChainId, seed byte) *header.BlockHeader {
	var payloadHash merklelog.Hash
	for i := range payloadHash {
		payloadHash[i] = seed
	}
	return &header.BlockHeader{
		ChainID:        c,
		Height:         0,
		PayloadHash:    payloadHash,
		ParentHash:     merklelog.Hash{},
		AdjacentHashes: map[chaingraph.ChainId]merklelog.Hash{},
	}
}

func init() {
	RegisterNetwork(pairParams())
	RegisterNetwork(triangleParams())
}

// pairParams is the smallest nontrivial chainweb version: two chains,
// one edge. Useful for exercising the one-hop cross-chain path.
func pairParams() *Params {
	const (
		chain0 chaingraph.ChainId = 0
		chain1 chaingraph.ChainId = 1
	)
	graph := chaingraph.NewGraph([][2]chaingraph.ChainId{{chain0, chain1}})
	return &Params{
		Name:  "pair",
		Graph: graph,
		GenesisHeaders: map[chaingraph.ChainId]*header.BlockHeader{
			chain0: genesisHeader(chain0, 0x01),
			chain1: genesisHeader(chain1, 0x02),
		},
	}
}

// triangleParams is the 3-chain, fully-adjacent chainweb version
// spec.md §8's concrete scenarios are built against.
func triangleParams() *Params {
	const (
		chainA chaingraph.ChainId = 0
		chainB chaingraph.ChainId = 1
		chainC chaingraph.ChainId = 2
	)
	graph := chaingraph.NewGraph([][2]chaingraph.ChainId{
		{chainA, chainB},
		{chainB, chainC},
		{chainA, chainC},
	})
	return &Params{
		Name:  "triangle",
		Graph: graph,
		GenesisHeaders: map[chaingraph.ChainId]*header.BlockHeader{
			chainA: genesisHeader(chainA, 0x01),
			chainB: genesisHeader(chainB, 0x02),
			chainC: genesisHeader(chainC, 0x03),
		},
	}
}
