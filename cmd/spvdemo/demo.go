// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/chainweb-spv/spvcore/chaincfg"
	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/chainutil"
	"github.com/chainweb-spv/spvcore/cutdb"
	"github.com/chainweb-spv/spvcore/header"
	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/chainweb-spv/spvcore/payload"
	"github.com/chainweb-spv/spvcore/proof"
)

// chainweb bundles the store handles a running demo needs, the same
// grouping cutdb.Cut, header.DB and payload.Store are threaded
// through proof.Context in the test fixtures this package imitates.
type chainweb struct {
	params  *chaincfg.Params
	headers header.DB
	store   *payload.MemStore
	cut     *cutdb.Cut
	ctx     *proof.Context
}

// buildChainweb grows every chain named in params.Graph from its
// registered genesis header (stored with its payload hash replaced by
// that of the genesis payload it puts in the store) up to maxHeight,
// three transactions and
// two outputs per block, with every non-genesis header carrying an
// adjacent-parent entry for each of its graph neighbors.
func buildChainweb(params *chaincfg.Params, maxHeight uint64) (*chainweb, error) {
	headers := header.NewMemDB(params.Graph)
	store := payload.NewMemStore()
	heads := make(map[chaingraph.ChainId]map[uint64]merklelog.Hash)
	for _, c := range params.Graph.Chains() {
		heads[c] = make(map[uint64]merklelog.Hash)
	}

	for h := uint64(0); h <= maxHeight; h++ {
		for _, c := range params.Graph.Chains() {
			chainDB, err := headers.Chain(c)
			if err != nil {
				return nil, err
			}

			if h == 0 {
				genesis, ok := params.GenesisHeaders[c]
				if !ok {
					return nil, fmt.Errorf("no genesis header registered for chain %s", c)
				}
				genesisPayloadHash, err := storeGenesisPayload(store, genesis)
				if err != nil {
					return nil, err
				}
				stored := *genesis
				stored.PayloadHash = genesisPayloadHash
				genesis = &stored
				if err := chainDB.Put(genesis); err != nil {
					return nil, err
				}
				hash, err := genesis.BlockHash()
				if err != nil {
					return nil, err
				}
				heads[c][0] = hash
				continue
			}

			bp, err := blockPayload(store, c, h)
			if err != nil {
				return nil, err
			}
			payloadHash, err := bp.Hash()
			if err != nil {
				return nil, err
			}

			hdr := &header.BlockHeader{
				ChainID:        c,
				Height:         h,
				PayloadHash:    payloadHash,
				ParentHash:     heads[c][h-1],
				AdjacentHashes: map[chaingraph.ChainId]merklelog.Hash{},
			}
			for _, adj := range params.Graph.Adjacent(c) {
				hdr.AdjacentHashes[adj] = heads[adj][h-1]
			}

			if err := chainDB.Put(hdr); err != nil {
				return nil, err
			}
			hash, err := hdr.BlockHash()
			if err != nil {
				return nil, err
			}
			heads[c][h] = hash
		}
	}

	cut := cutdb.New(headers, params.Graph)
	ctx := proof.NewContext(cut, params.Graph, store)
	return &chainweb{params: params, headers: headers, store: store, cut: cut, ctx: ctx}, nil
}

// storeGenesisPayload materializes a one-transaction, one-output
// payload for a genesis header and returns its hash; buildChainweb
// stores the genesis header with that hash as its payload hash, so
// proof construction at height 0 has something to open.
func storeGenesisPayload(store *payload.MemStore, genesis *header.BlockHeader) (merklelog.Hash, error) {
	txs := payload.Transactions{payload.Transaction(fmt.Sprintf("genesis-tx-%s", genesis.ChainID))}
	outs := payload.Outputs{payload.Output(fmt.Sprintf("genesis-out-%s", genesis.ChainID))}
	if err := store.PutTransactions(txs); err != nil {
		return merklelog.Hash{}, err
	}
	if err := store.PutOutputs(outs); err != nil {
		return merklelog.Hash{}, err
	}
	txRoot, err := txs.Root()
	if err != nil {
		return merklelog.Hash{}, err
	}
	outRoot, err := outs.Root()
	if err != nil {
		return merklelog.Hash{}, err
	}
	bp := &payload.BlockPayload{TransactionsHash: txRoot, OutputsHash: outRoot}
	if err := store.PutPayload(bp); err != nil {
		return merklelog.Hash{}, err
	}
	return bp.Hash()
}

// formatOutput renders a synthetic output leaf as "out-<chain>-<height>-<index> <amount>",
// using chainutil.Amount to format the value the same way the teacher's
// wallet-facing code formats a coin amount.
func formatOutput(c chaingraph.ChainId, h uint64, i int) string {
	amount, err := chainutil.NewAmount(float64(h+1) * float64(i+1) * 0.5)
	if err != nil {
		amount = 0
	}
	return fmt.Sprintf("out-%s-%d-%d %s", c, h, i, amount.Format(chainutil.AmountBase))
}

func blockPayload(store *payload.MemStore, c chaingraph.ChainId, h uint64) (*payload.BlockPayload, error) {
	txs := payload.Transactions{
		payload.Transaction(fmt.Sprintf("tx-%s-%d-0", c, h)),
		payload.Transaction(fmt.Sprintf("tx-%s-%d-1", c, h)),
		payload.Transaction(fmt.Sprintf("tx-%s-%d-2", c, h)),
	}
	outs := payload.Outputs{
		payload.Output(formatOutput(c, h, 0)),
		payload.Output(formatOutput(c, h, 1)),
	}
	if err := store.PutTransactions(txs); err != nil {
		return nil, err
	}
	if err := store.PutOutputs(outs); err != nil {
		return nil, err
	}
	txRoot, err := txs.Root()
	if err != nil {
		return nil, err
	}
	outRoot, err := outs.Root()
	if err != nil {
		return nil, err
	}
	bp := &payload.BlockPayload{TransactionsHash: txRoot, OutputsHash: outRoot}
	if err := store.PutPayload(bp); err != nil {
		return nil, err
	}
	return bp, nil
}
