// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package header

import (
	"encoding/binary"
	"fmt"

	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/syndtr/goleveldb/leveldb"
)

// Key layout inside the chain's leveldb namespace, grounded on the
// teacher's blockchain/indexers prefix-byte convention: a one-byte
// record kind tag followed by the record's natural key.
const (
	kindByHash   byte = 0x01
	kindByHeight byte = 0x02
	kindMeta     byte = 0x03
)

var metaMaxHeightKey = []byte{kindMeta, 0x01}

// LevelChainDB is a ChainDB backed by a goleveldb store, namespaced by
// a chain-id prefix so one on-disk database can serve every chain in
// the braid, matching the teacher's single ffldb-per-node layout
// generalized to per-chain column families.
type LevelChainDB struct {
	db    *leveldb.DB
	chain chaingraph.ChainId
}

// NewLevelChainDB wraps db as the ChainDB for chain c. The caller owns
// db's lifetime.
func NewLevelChainDB(db *leveldb.DB, c chaingraph.ChainId) *LevelChainDB {
	return &LevelChainDB{db: db, chain: c}
}

func (l *LevelChainDB) prefixed(kind byte, key []byte) []byte {
	out := make([]byte, 0, 5+len(key))
	out = append(out, l.chain.Bytes()...)
	out = append(out, kind)
	out = append(out, key...)
	return out
}

func heightKey(height uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, height)
	return buf
}

func (l *LevelChainDB) Put(h *BlockHeader) error {
	if h.ChainID != l.chain {
		return fmt.Errorf("header: cannot store header for chain %s in chain %s db", h.ChainID, l.chain)
	}
	hash, err := h.BlockHash()
	if err != nil {
		return err
	}

	enc, err := encodeHeader(h)
	if err != nil {
		return err
	}

	batch := new(leveldb.Batch)
	batch.Put(l.prefixed(kindByHash, hash[:]), enc)
	batch.Put(l.prefixed(kindByHeight, heightKey(h.Height)), hash[:])

	cur, err := l.currentMaxHeight()
	if err != nil {
		if err != leveldb.ErrNotFound {
			return err
		}
		batch.Put(l.prefixed(kindMeta, metaMaxHeightKey), heightKey(h.Height))
	} else if h.Height > cur {
		batch.Put(l.prefixed(kindMeta, metaMaxHeightKey), heightKey(h.Height))
	}

	if err := l.db.Write(batch, nil); err != nil {
		return fmt.Errorf("header: leveldb write failed: %w", err)
	}
	logger.Debugf("stored header %s@%d (%s) in leveldb", l.chain, h.Height, hash)
	return nil
}

func (l *LevelChainDB) currentMaxHeight() (uint64, error) {
	raw, err := l.db.Get(l.prefixed(kindMeta, metaMaxHeightKey), nil)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(raw), nil
}

func (l *LevelChainDB) HeaderByHash(hash merklelog.Hash) (*BlockHeader, error) {
	raw, err := l.db.Get(l.prefixed(kindByHash, hash[:]), nil)
	if err != nil {
		return nil, fmt.Errorf("header: no header with hash %s on chain %s: %w", hash, l.chain, err)
	}
	return decodeHeader(raw)
}

func (l *LevelChainDB) HeaderByHeight(height uint64) (*BlockHeader, error) {
	hash, err := l.db.Get(l.prefixed(kindByHeight, heightKey(height)), nil)
	if err != nil {
		return nil, fmt.Errorf("header: no header at height %d on chain %s: %w", height, l.chain, err)
	}
	var h merklelog.Hash
	copy(h[:], hash)
	return l.HeaderByHash(h)
}

func (l *LevelChainDB) MaxHeader() (*BlockHeader, error) {
	height, err := l.currentMaxHeight()
	if err != nil {
		return nil, fmt.Errorf("header: chain %s has no headers: %w", l.chain, err)
	}
	return l.HeaderByHeight(height)
}

// LevelDB is the multi-chain DB backed by a single goleveldb store.
type LevelDB struct {
	db     *leveldb.DB
	graph  *chaingraph.Graph
	chains map[chaingraph.ChainId]*LevelChainDB
}

// OpenLevelDB opens (or creates) a goleveldb store at path and wires
// one LevelChainDB per chain in g.
func OpenLevelDB(path string, g *chaingraph.Graph) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("header: opening leveldb at %s: %w", path, err)
	}
	out := &LevelDB{db: db, graph: g, chains: make(map[chaingraph.ChainId]*LevelChainDB)}
	for _, c := range g.Chains() {
		out.chains[c] = NewLevelChainDB(db, c)
	}
	return out, nil
}

// Close releases the underlying leveldb handle.
func (l *LevelDB) Close() error { return l.db.Close() }

func (l *LevelDB) Chain(c chaingraph.ChainId) (ChainDB, error) {
	chainDB, ok := l.chains[c]
	if !ok {
		return nil, fmt.Errorf("header: unknown chain %s", c)
	}
	return chainDB, nil
}
