// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/chainweb-spv/spvcore/chaincfg"
	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/header"
	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/chainweb-spv/spvcore/proof"
)

// runScenario drives one of the six concrete construction/verification
// walkthroughs the demo exposes, printing what it did as it goes. Each
// scenario is self-contained: it may grow its own chainweb rather than
// reuse cw, since one of them (s4) needs a topology and height the
// default build doesn't have.
func runScenario(name string, cw *chainweb) error {
	switch name {
	case "s1":
		return scenarioSameChain(cw)
	case "s2":
		return scenarioOneHop(cw)
	case "s3":
		return scenarioSourceTooRecent(cw)
	case "s4":
		return scenarioChainTooYoung()
	case "s5":
		return scenarioTamperedSubject(cw)
	case "s6":
		return scenarioCorruptPayloadStore(cw)
	default:
		return fmt.Errorf("unknown scenario %q", name)
	}
}

func chains(cw *chainweb) []chaingraph.ChainId {
	return cw.params.Graph.Chains()
}

func scenarioSameChain(cw *chainweb) error {
	cs := chains(cw)
	if len(cs) == 0 {
		return fmt.Errorf("empty chainweb")
	}
	c := cs[0]
	builder := proof.NewBuilder(cw.ctx)
	runner := proof.NewRunner(cw.ctx)

	fmt.Printf("S1 same-chain: proving a transaction on chain %s against its own head\n", c)
	p, err := builder.CreateTransactionProof(c, c, 0, 0)
	if err != nil {
		return err
	}
	tx, err := runner.VerifyTransactionProof(p)
	if err != nil {
		return err
	}
	fmt.Printf("S1 verified: %s\n", tx)
	return nil
}

func scenarioOneHop(cw *chainweb) error {
	cs := chains(cw)
	if len(cs) < 2 {
		return fmt.Errorf("scenario s2 needs at least two chains")
	}
	target, source := cs[0], cs[1]
	builder := proof.NewBuilder(cw.ctx)
	runner := proof.NewRunner(cw.ctx)

	fmt.Printf("S2 cross-chain: proving a transaction on chain %s against chain %s's head\n", source, target)
	p, err := builder.CreateTransactionProof(target, source, 0, 0)
	if err != nil {
		return err
	}
	tx, err := runner.VerifyTransactionProof(p)
	if err != nil {
		return err
	}
	fmt.Printf("S2 verified: %s\n", tx)
	return nil
}

func scenarioSourceTooRecent(cw *chainweb) error {
	cs := chains(cw)
	if len(cs) < 2 {
		return fmt.Errorf("scenario s3 needs at least two chains")
	}
	target, source := cs[0], cs[1]
	builder := proof.NewBuilder(cw.ctx)

	fmt.Printf("S3 unreachable source: requesting a height above chain %s's reachable head from %s\n", source, target)
	_, err := builder.CreateTransactionProof(target, source, 1<<32, 0)
	if err == nil {
		return fmt.Errorf("expected an error, got none")
	}
	fmt.Printf("S3 rejected as expected: %v\n", err)
	return nil
}

func scenarioChainTooYoung() error {
	const (
		chainA chaingraph.ChainId = 0
		chainB chaingraph.ChainId = 1
		chainC chaingraph.ChainId = 2
	)
	linear := chaingraph.NewGraph([][2]chaingraph.ChainId{{chainA, chainB}, {chainB, chainC}})
	genesis := map[chaingraph.ChainId]*header.BlockHeader{}
	for i, c := range linear.Chains() {
		var payloadHash merklelog.Hash
		payloadHash[0] = byte(i + 1)
		genesis[c] = &header.BlockHeader{
			ChainID:        c,
			PayloadHash:    payloadHash,
			AdjacentHashes: map[chaingraph.ChainId]merklelog.Hash{},
		}
	}
	params := &chaincfg.Params{Name: "linear", Graph: linear, GenesisHeaders: genesis}
	cw, err := buildChainweb(params, 0)
	if err != nil {
		return err
	}

	builder := proof.NewBuilder(cw.ctx)
	fmt.Println("S4 chain too young: requesting a 2-hop cross-chain proof from a chain only at height 0")
	_, err = builder.CreateTransactionProof(chainA, chainC, 0, 0)
	if err == nil {
		return fmt.Errorf("expected an error, got none")
	}
	fmt.Printf("S4 rejected as expected: %v\n", err)
	return nil
}

func scenarioTamperedSubject(cw *chainweb) error {
	cs := chains(cw)
	if len(cs) == 0 {
		return fmt.Errorf("empty chainweb")
	}
	c := cs[0]
	builder := proof.NewBuilder(cw.ctx)
	runner := proof.NewRunner(cw.ctx)

	p, err := builder.CreateTransactionProof(c, c, 0, 0)
	if err != nil {
		return err
	}
	p.Inner.Subject.Raw = []byte("forged transaction bytes")

	fmt.Println("S5 tampered subject: verifying a proof whose subject has been overwritten")
	_, err = runner.VerifyTransactionProof(p)
	if err == nil {
		return fmt.Errorf("expected an error, got none")
	}
	fmt.Printf("S5 rejected as expected: %v\n", err)
	return nil
}

func scenarioCorruptPayloadStore(cw *chainweb) error {
	cs := chains(cw)
	if len(cs) == 0 {
		return fmt.Errorf("empty chainweb")
	}
	c := cs[0]
	chainDB, err := cw.headers.Chain(c)
	if err != nil {
		return err
	}
	hdr, err := chainDB.HeaderByHeight(0)
	if err != nil {
		return err
	}
	storedPayload, ok, err := cw.store.LookupPayload(hdr.PayloadHash)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no payload for chain %s genesis", c)
	}
	storedPayload.TransactionsHash[0] ^= 0xFF

	builder := proof.NewBuilder(cw.ctx)
	fmt.Println("S6 corrupt payload store: building a proof whose payload no longer hashes to its header's commitment")
	_, err = builder.CreateTransactionProof(c, c, 0, 0)
	if err == nil {
		return fmt.Errorf("expected an error, got none")
	}
	fmt.Printf("S6 rejected as expected: %v\n", err)
	return nil
}
