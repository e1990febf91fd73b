// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload

import (
	"sync"

	"github.com/chainweb-spv/spvcore/log"
	"github.com/chainweb-spv/spvcore/merklelog"
)

var logger log.Logger = log.Disabled

// UseLogger wires a logger into this package.
func UseLogger(l log.Logger) { logger = l }

// Store is the content-addressed facade spec.md §4.3 describes: three
// named sub-stores (BlockPayload, BlockTransactions, BlockOutputs),
// each keyed by its own content hash. lookup returning "not found" is
// not itself an error at this layer — callers (the proof builder)
// decide whether absence is fatal.
type Store interface {
	LookupPayload(hash merklelog.Hash) (*BlockPayload, bool, error)
	LookupTransactions(hash merklelog.Hash) (Transactions, bool, error)
	LookupOutputs(hash merklelog.Hash) (Outputs, bool, error)

	PutPayload(p *BlockPayload) error
	PutTransactions(txs Transactions) error
	PutOutputs(outs Outputs) error
}

// MemStore is an in-memory reference Store, suitable for tests and
// the demo binary's synthetic fixtures.
type MemStore struct {
	mu           sync.RWMutex
	payloads     map[merklelog.Hash]*BlockPayload
	transactions map[merklelog.Hash]Transactions
	outputs      map[merklelog.Hash]Outputs
}

// NewMemStore creates an empty in-memory Store.
func NewMemStore() *MemStore {
	return &MemStore{
		payloads:     make(map[merklelog.Hash]*BlockPayload),
		transactions: make(map[merklelog.Hash]Transactions),
		outputs:      make(map[merklelog.Hash]Outputs),
	}
}

func (s *MemStore) LookupPayload(hash merklelog.Hash) (*BlockPayload, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.payloads[hash]
	return p, ok, nil
}

func (s *MemStore) LookupTransactions(hash merklelog.Hash) (Transactions, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txs, ok := s.transactions[hash]
	return txs, ok, nil
}

func (s *MemStore) LookupOutputs(hash merklelog.Hash) (Outputs, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	outs, ok := s.outputs[hash]
	return outs, ok, nil
}

func (s *MemStore) PutPayload(p *BlockPayload) error {
	hash, err := p.Hash()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.payloads[hash] = p
	s.mu.Unlock()
	logger.Tracef("stored payload %s", hash)
	return nil
}

func (s *MemStore) PutTransactions(txs Transactions) error {
	hash, err := txs.Root()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.transactions[hash] = txs
	s.mu.Unlock()
	logger.Tracef("stored transactions root %s (%d txs)", hash, len(txs))
	return nil
}

func (s *MemStore) PutOutputs(outs Outputs) error {
	hash, err := outs.Root()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.outputs[hash] = outs
	s.mu.Unlock()
	logger.Tracef("stored outputs root %s (%d outputs)", hash, len(outs))
	return nil
}
