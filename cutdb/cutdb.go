// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package cutdb implements the cut database facade spec.md §4.4
// describes: "is header H currently on chain C's confirmed frontier?"
// plus access to the per-chain header dbs behind it.
//
// Grounded on the teacher's blockchain.BlockChain.BestSnapshot, which
// exposes the node's single current best-chain tip; a cut generalizes
// that to one best tip per chain in the braided set.
package cutdb

import (
	"fmt"
	"sync"

	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/header"
	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/decred/dcrd/lru"
)

// membershipCacheSize bounds the recently-checked-hash cache every Cut
// keeps per chain, mirroring the teacher's use of a fixed-size
// lru.Cache for its recently-seen-transaction/orphan sets rather than
// an unbounded map.
const membershipCacheSize = 4096

// Cut is the cut database: the multi-chain header DB plus, per chain,
// a bounded cache of hashes recently confirmed as on-frontier. A Cut
// represents one snapshot-consistent view; per spec.md §5, two
// sequential calls against a live, mutating Cut may observe different
// frontiers.
type Cut struct {
	headerDB header.DB
	graph    *chaingraph.Graph

	mu     sync.Mutex
	caches map[chaingraph.ChainId]*lru.Cache
}

// New builds a Cut over the given multi-chain header DB and graph.
func New(db header.DB, g *chaingraph.Graph) *Cut {
	return &Cut{
		headerDB: db,
		graph:    g,
		caches:   make(map[chaingraph.ChainId]*lru.Cache),
	}
}

func (c *Cut) cacheFor(chainID chaingraph.ChainId) *lru.Cache {
	c.mu.Lock()
	defer c.mu.Unlock()
	cache, ok := c.caches[chainID]
	if !ok {
		cache = lru.NewCache(membershipCacheSize)
		c.caches[chainID] = cache
	}
	return cache
}

// WebHeaderDb is webHeaderDb(cutDb): access to the per-chain header
// databases underlying this cut.
func (c *Cut) WebHeaderDb() header.DB { return c.headerDB }

// Chain returns the ChainDB for a single chain, the typical
// db[chainId] access pattern spec.md §4.4 names.
func (c *Cut) Chain(chainID chaingraph.ChainId) (header.ChainDB, error) {
	return c.headerDB.Chain(chainID)
}

// Member is member(cutDb, chainId, blockHash): true iff hash
// identifies a header currently on chainId's confirmed frontier — the
// ancestor chain of chainId's current MaxHeader, inclusive.
func (c *Cut) Member(chainID chaingraph.ChainId, hash merklelog.Hash) (bool, error) {
	cache := c.cacheFor(chainID)
	if cache.Contains(hash) {
		return true, nil
	}

	chainDB, err := c.headerDB.Chain(chainID)
	if err != nil {
		return false, fmt.Errorf("cutdb: no header db for chain %s: %w", chainID, err)
	}

	cur, err := header.MaxHeader(chainDB)
	if err != nil {
		return false, fmt.Errorf("cutdb: no current head for chain %s: %w", chainID, err)
	}

	for {
		curHash, err := cur.BlockHash()
		if err != nil {
			return false, err
		}
		if curHash == hash {
			cache.Add(hash)
			return true, nil
		}
		if cur.IsGenesis() {
			return false, nil
		}
		cur, err = header.LookupParentHeader(chainDB, cur)
		if err != nil {
			return false, fmt.Errorf("cutdb: walking ancestors of chain %s: %w", chainID, err)
		}
	}
}
