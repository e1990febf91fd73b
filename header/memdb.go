// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package header

import (
	"fmt"
	"sync"

	"github.com/aead/siphash"
	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/merklelog"
)

// memShardCount is the number of lock-striped buckets a MemChainDB
// splits its index across. Sharding by a siphash of the block hash
// keeps concurrent Put/lookup traffic from one chain's header feed
// from serializing on a single mutex, the way the teacher's
// blockchain.orphans index does not bother to for a single node, but
// an SPV verifier serving many concurrent proof requests does.
const memShardCount = 16

var memShardKey = [16]byte{
	0x63, 0x68, 0x61, 0x69, 0x6e, 0x77, 0x65, 0x62,
	0x2d, 0x73, 0x68, 0x61, 0x72, 0x64, 0x2d, 0x6b,
}

func shardFor(hash merklelog.Hash) int {
	sum := siphash.Sum64(hash[:], &memShardKey)
	return int(sum % uint64(memShardCount))
}

type memShard struct {
	mu      sync.RWMutex
	byHash  map[merklelog.Hash]*BlockHeader
}

// MemChainDB is an in-memory reference ChainDB, suitable for tests and
// the demo binary's synthetic fixtures. It additionally indexes
// headers by height, since the chain it serves is expected to be a
// single linear sequence (braided across chains, not within one).
type MemChainDB struct {
	chain chaingraph.ChainId

	shards [memShardCount]*memShard

	mu        sync.RWMutex
	byHeight  map[uint64]merklelog.Hash
	maxHeight uint64
	hasAny    bool
}

// NewMemChainDB creates an empty in-memory ChainDB for the given
// chain id.
func NewMemChainDB(c chaingraph.ChainId) *MemChainDB {
	db := &MemChainDB{
		chain:    c,
		byHeight: make(map[uint64]merklelog.Hash),
	}
	for i := range db.shards {
		db.shards[i] = &memShard{byHash: make(map[merklelog.Hash]*BlockHeader)}
	}
	return db
}

func (db *MemChainDB) Put(h *BlockHeader) error {
	if h.ChainID != db.chain {
		return fmt.Errorf("header: cannot store header for chain %s in chain %s db", h.ChainID, db.chain)
	}
	hash, err := h.BlockHash()
	if err != nil {
		return err
	}

	shard := db.shards[shardFor(hash)]
	shard.mu.Lock()
	shard.byHash[hash] = h
	shard.mu.Unlock()

	db.mu.Lock()
	db.byHeight[h.Height] = hash
	if !db.hasAny || h.Height > db.maxHeight {
		db.maxHeight = h.Height
		db.hasAny = true
	}
	db.mu.Unlock()

	logger.Debugf("stored header %s@%d (%s)", db.chain, h.Height, hash)
	return nil
}

func (db *MemChainDB) HeaderByHash(hash merklelog.Hash) (*BlockHeader, error) {
	shard := db.shards[shardFor(hash)]
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	h, ok := shard.byHash[hash]
	if !ok {
		return nil, fmt.Errorf("header: no header with hash %s on chain %s", hash, db.chain)
	}
	return h, nil
}

func (db *MemChainDB) HeaderByHeight(height uint64) (*BlockHeader, error) {
	db.mu.RLock()
	hash, ok := db.byHeight[height]
	db.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("header: no header at height %d on chain %s", height, db.chain)
	}
	return db.HeaderByHash(hash)
}

func (db *MemChainDB) MaxHeader() (*BlockHeader, error) {
	db.mu.RLock()
	height, ok := db.maxHeight, db.hasAny
	db.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("header: chain %s has no headers", db.chain)
	}
	return db.HeaderByHeight(height)
}

// MemDB is an in-memory, multi-chain DB: a MemChainDB per chain.
type MemDB struct {
	mu     sync.RWMutex
	chains map[chaingraph.ChainId]*MemChainDB
}

// NewMemDB builds a MemDB with one empty MemChainDB per chain in g.
func NewMemDB(g *chaingraph.Graph) *MemDB {
	db := &MemDB{chains: make(map[chaingraph.ChainId]*MemChainDB)}
	for _, c := range g.Chains() {
		db.chains[c] = NewMemChainDB(c)
	}
	return db
}

func (db *MemDB) Chain(c chaingraph.ChainId) (ChainDB, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	chainDB, ok := db.chains[c]
	if !ok {
		return nil, fmt.Errorf("header: unknown chain %s", c)
	}
	return chainDB, nil
}
