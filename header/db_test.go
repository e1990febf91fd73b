// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package header_test

import (
	"testing"

	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/header"
	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/stretchr/testify/require"
)

func triangleGraph() *chaingraph.Graph {
	return chaingraph.NewGraph([][2]chaingraph.ChainId{
		{chainA, chainB},
		{chainB, chainC},
		{chainA, chainC},
	})
}

// buildTriangleFixture builds three one-block-tall chains (genesis +
// height 1), each adjacent-linked to its two neighbors, stored in a
// shared MemDB.
func buildTriangleFixture(t *testing.T) (*header.MemDB, map[chaingraph.ChainId]*header.BlockHeader) {
	t.Helper()
	g := triangleGraph()
	db := header.NewMemDB(g)

	genesis := map[chaingraph.ChainId]*header.BlockHeader{}
	for _, c := range g.Chains() {
		gh := genesisHeader(c)
		genesis[c] = gh
		chainDB, err := db.Chain(c)
		require.NoError(t, err)
		require.NoError(t, chainDB.Put(gh))
	}

	tip := map[chaingraph.ChainId]*header.BlockHeader{}
	for _, c := range g.Chains() {
		parentHash, err := genesis[c].BlockHash()
		require.NoError(t, err)

		h := &header.BlockHeader{
			ChainID:        c,
			Height:         1,
			PayloadHash:    fillHash(byte(c) + 10),
			ParentHash:     parentHash,
			AdjacentHashes: map[chaingraph.ChainId]merklelog.Hash{},
		}
		for _, adj := range g.Adjacent(c) {
			adjHash, err := genesis[adj].BlockHash()
			require.NoError(t, err)
			h.AdjacentHashes[adj] = adjHash
		}
		tip[c] = h
	}
	for _, c := range g.Chains() {
		chainDB, err := db.Chain(c)
		require.NoError(t, err)
		require.NoError(t, chainDB.Put(tip[c]))
	}

	return db, tip
}

func TestMaxHeaderReturnsTip(t *testing.T) {
	db, tip := buildTriangleFixture(t)
	chainDB, err := db.Chain(chainA)
	require.NoError(t, err)
	max, err := header.MaxHeader(chainDB)
	require.NoError(t, err)
	require.Equal(t, tip[chainA].Height, max.Height)
}

func TestLookupParentHeader(t *testing.T) {
	db, tip := buildTriangleFixture(t)
	chainDB, err := db.Chain(chainA)
	require.NoError(t, err)

	parent, err := header.LookupParentHeader(chainDB, tip[chainA])
	require.NoError(t, err)
	require.Equal(t, uint64(0), parent.Height)
}

func TestLookupParentHeaderFailsAtGenesis(t *testing.T) {
	db, _ := buildTriangleFixture(t)
	chainDB, err := db.Chain(chainA)
	require.NoError(t, err)

	genesis, err := chainDB.HeaderByHeight(0)
	require.NoError(t, err)

	_, err = header.LookupParentHeader(chainDB, genesis)
	require.Error(t, err)
}

func TestLookupAdjacentParentHeader(t *testing.T) {
	db, tip := buildTriangleFixture(t)

	adj, err := header.LookupAdjacentParentHeader(db, tip[chainA], chainB)
	require.NoError(t, err)
	require.Equal(t, chainB, adj.ChainID)
	require.Equal(t, uint64(0), adj.Height)
}

func TestLookupAdjacentParentHeaderMissingEntry(t *testing.T) {
	db, tip := buildTriangleFixture(t)
	_, err := header.LookupAdjacentParentHeader(db, tip[chainA], chaingraph.ChainId(99))
	require.Error(t, err)
}
