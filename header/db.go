// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package header

import (
	"fmt"

	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/log"
	"github.com/chainweb-spv/spvcore/merklelog"
)

var logger log.Logger = log.Disabled

// UseLogger wires a logger into this package, matching the
// btcsuite-family per-package UseLogger convention.
func UseLogger(l log.Logger) { logger = l }

// ChainDB is a single chain's header database: the per-chain view
// spec.md §4.2 and §4.4's webHeaderDb expose.
type ChainDB interface {
	// MaxHeader returns the chain's current best header according to
	// the cut frontier this ChainDB reflects.
	MaxHeader() (*BlockHeader, error)

	// HeaderByHash looks up a header by its BlockHash.
	HeaderByHash(hash merklelog.Hash) (*BlockHeader, error)

	// HeaderByHeight looks up the header at a given height. The proof
	// builder does not use it; its parent walk goes through
	// LookupParentHeader.
	HeaderByHeight(height uint64) (*BlockHeader, error)

	// Put stores a header, keyed by its own BlockHash.
	Put(h *BlockHeader) error
}

// DB is the multi-chain header database: one ChainDB per chain in the
// braided set.
type DB interface {
	Chain(c chaingraph.ChainId) (ChainDB, error)
}

// MaxHeader is maxHeader(chainDb): the chain's current best header.
func MaxHeader(db ChainDB) (*BlockHeader, error) {
	return db.MaxHeader()
}

// LookupParentHeader is lookupParentHeader(h): the parent header of h
// on the same chain. It fails with InternalInvariantViolation at
// genesis, since a genesis header has no parent.
func LookupParentHeader(db ChainDB, h *BlockHeader) (*BlockHeader, error) {
	if h.IsGenesis() {
		return nil, internalInvariantViolation("header %s@%d is genesis and has no parent", h.ChainID, h.Height)
	}
	parent, err := db.HeaderByHash(h.ParentHash)
	if err != nil {
		return nil, internalInvariantViolation("parent header %s of %s@%d not found in store: %v",
			h.ParentHash, h.ChainID, h.Height, err)
	}
	if parent.ChainID != h.ChainID || parent.Height != h.Height-1 {
		return nil, internalInvariantViolation("parent of %s@%d is not %s@%d as required, got %s@%d",
			h.ChainID, h.Height, h.ChainID, h.Height-1, parent.ChainID, parent.Height)
	}
	logger.Tracef("resolved parent of %s@%d -> %s@%d", h.ChainID, h.Height, parent.ChainID, parent.Height)
	return parent, nil
}

// LookupAdjacentParentHeader is lookupAdjacentParentHeader(h, c'): the
// header on chain c' that h's adjacent-hash entry for c' points at. It
// fails with InternalInvariantViolation if the entry is absent, which
// violates the data-model invariant that a non-genesis header must
// carry an adjacent-hash entry for every graph neighbor.
func LookupAdjacentParentHeader(multi DB, h *BlockHeader, cPrime chaingraph.ChainId) (*BlockHeader, error) {
	adjHash, ok := h.AdjacentHashes[cPrime]
	if !ok {
		return nil, internalInvariantViolation("header %s@%d has no adjacent-parent entry for chain %s",
			h.ChainID, h.Height, cPrime)
	}

	chainDB, err := multi.Chain(cPrime)
	if err != nil {
		return nil, internalInvariantViolation("no header db for chain %s: %v", cPrime, err)
	}

	adjHeader, err := chainDB.HeaderByHash(adjHash)
	if err != nil {
		return nil, internalInvariantViolation("adjacent-parent %s on chain %s (referenced by %s@%d) not found: %v",
			adjHash, cPrime, h.ChainID, h.Height, err)
	}
	if adjHeader.Height != h.Height-1 {
		return nil, internalInvariantViolation("adjacent-parent on chain %s referenced by %s@%d is at height %d, want %d",
			cPrime, h.ChainID, h.Height, adjHeader.Height, h.Height-1)
	}
	logger.Tracef("resolved adjacent-parent of %s@%d on chain %s -> height %d", h.ChainID, h.Height, cPrime, adjHeader.Height)
	return adjHeader, nil
}

func internalInvariantViolation(format string, args ...interface{}) error {
	return invariantError{msg: fmt.Sprintf(format, args...)}
}

// invariantError is a small local error type so this package does not
// need to import spverrors and create an import cycle. The proof
// builder turns an adjacent-parent lookup failure into
// spverrors.InternalInvariantViolation and a parent-walk failure into
// spverrors.TargetNotReachable; cutdb wraps it in a plain error.
type invariantError struct{ msg string }

func (e invariantError) Error() string { return e.msg }
