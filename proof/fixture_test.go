// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof_test

import (
	"fmt"
	"testing"

	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/cutdb"
	"github.com/chainweb-spv/spvcore/header"
	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/chainweb-spv/spvcore/payload"
	"github.com/chainweb-spv/spvcore/proof"
	"github.com/stretchr/testify/require"
)

// spec.md §8's concrete-scenario fixture: a 3-chain graph {A,B,C}, all
// pairwise adjacent, every chain built to the same height.
const (
	chainA chaingraph.ChainId = 0
	chainB chaingraph.ChainId = 1
	chainC chaingraph.ChainId = 2
)

func triangleGraph() *chaingraph.Graph {
	return chaingraph.NewGraph([][2]chaingraph.ChainId{
		{chainA, chainB},
		{chainB, chainC},
		{chainA, chainC},
	})
}

type fixture struct {
	graph   *chaingraph.Graph
	headers header.DB
	store   *payload.MemStore
	cut     *cutdb.Cut
	ctx     *proof.Context

	// heads[c][h] is the BlockHash of chain c's header at height h.
	heads map[chaingraph.ChainId]map[uint64]merklelog.Hash
}

// buildFixture builds every chain in g from genesis up to maxHeight
// inclusive, three transactions and two outputs per block, wiring
// adjacency so every non-genesis header on chain c carries an
// adjacent-parent entry for every neighbor at height-1.
func buildFixture(t *testing.T, g *chaingraph.Graph, maxHeight uint64) *fixture {
	t.Helper()

	headers := header.NewMemDB(g)
	store := payload.NewMemStore()
	heads := make(map[chaingraph.ChainId]map[uint64]merklelog.Hash)
	for _, c := range g.Chains() {
		heads[c] = make(map[uint64]merklelog.Hash)
	}

	for h := uint64(0); h <= maxHeight; h++ {
		for _, c := range g.Chains() {
			txs := payload.Transactions{
				payload.Transaction(fmt.Sprintf("tx-%s-%d-0", c, h)),
				payload.Transaction(fmt.Sprintf("tx-%s-%d-1", c, h)),
				payload.Transaction(fmt.Sprintf("tx-%s-%d-2", c, h)),
			}
			outs := payload.Outputs{
				payload.Output(fmt.Sprintf("out-%s-%d-0", c, h)),
				payload.Output(fmt.Sprintf("out-%s-%d-1", c, h)),
			}
			txRoot, err := txs.Root()
			require.NoError(t, err)
			outRoot, err := outs.Root()
			require.NoError(t, err)

			bp := &payload.BlockPayload{TransactionsHash: txRoot, OutputsHash: outRoot}
			payloadHash, err := bp.Hash()
			require.NoError(t, err)

			require.NoError(t, store.PutTransactions(txs))
			require.NoError(t, store.PutOutputs(outs))
			require.NoError(t, store.PutPayload(bp))

			hdr := &header.BlockHeader{
				ChainID:        c,
				Height:         h,
				PayloadHash:    payloadHash,
				AdjacentHashes: map[chaingraph.ChainId]merklelog.Hash{},
			}
			if h > 0 {
				hdr.ParentHash = heads[c][h-1]
				for _, adj := range g.Adjacent(c) {
					hdr.AdjacentHashes[adj] = heads[adj][h-1]
				}
			}

			chainDB, err := headers.Chain(c)
			require.NoError(t, err)
			require.NoError(t, chainDB.Put(hdr))

			hash, err := hdr.BlockHash()
			require.NoError(t, err)
			heads[c][h] = hash
		}
	}

	cut := cutdb.New(headers, g)
	ctx := proof.NewContext(cut, g, store)

	return &fixture{graph: g, headers: headers, store: store, cut: cut, ctx: ctx, heads: heads}
}
