// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package header defines the BlockHeader record and the header
// databases that answer "what is the parent/adjacent-parent of this
// header" — the per-chain and cross-chain navigation spec.md §4.2
// builds proofs on top of.
//
// Grounded on the teacher's wire.BlockHeader (header shape, BlockHash
// computation over a domain-encoded body) and wire.AuxPowHeader (a
// header carrying a proof tying it to a block on a structurally
// different chain — the closest teacher analogue to the
// adjacent-parent links a braided chainweb header carries for every
// neighbor chain).
package header

import (
	"fmt"
	"sort"

	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/merklelog"
)

// BlockHeader is the logical record spec.md §3 describes: chain id,
// height, payload hash, parent hash, and an adjacent-parent hash per
// neighbor chain. A header is Merkle-encodable — its BlockHash is the
// root of the tree built from these fields.
type BlockHeader struct {
	ChainID        chaingraph.ChainId
	Height         uint64
	PayloadHash    merklelog.Hash
	ParentHash     merklelog.Hash
	AdjacentHashes map[chaingraph.ChainId]merklelog.Hash
}

// adjacentSorted returns the header's adjacent chain ids in ascending
// order — the canonical total order spec.md §9 requires, shared by
// both the tree builder below and chainIdxInAdjacentRecord.
func (h *BlockHeader) adjacentSorted() []chaingraph.ChainId {
	ids := make([]chaingraph.ChainId, 0, len(h.AdjacentHashes))
	for id := range h.AdjacentHashes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// leaves returns the header's Merkle leaves in canonical order:
// payload hash, parent hash, then one adjacent-parent hash per
// neighbor chain sorted ascending by ChainId. Each of these fields is
// itself the root of another tree (the payload's, or another header's),
// so the leaf here is the raw child root, not a re-hashed tagged
// leaf: a proof frame that climbs into this tree must be able to feed
// in that same child root and have it fold straight through.
func (h *BlockHeader) leaves() []merklelog.Hash {
	out := make([]merklelog.Hash, 0, 2+len(h.AdjacentHashes))
	out = append(out, h.PayloadHash)
	out = append(out, h.ParentHash)
	for _, id := range h.adjacentSorted() {
		out = append(out, h.AdjacentHashes[id])
	}
	return out
}

// Tree builds the header's full Merkle tree.
func (h *BlockHeader) Tree() (*merklelog.Tree, error) {
	return merklelog.BuildTree(h.leaves())
}

// BlockHash computes the header's block identifier: the root of its
// Merkle tree. This is the invariant spec.md §3 names: "a header's
// serialized Merkle form yields exactly its BlockHash."
func (h *BlockHeader) BlockHash() (merklelog.Hash, error) {
	tree, err := h.Tree()
	if err != nil {
		return merklelog.Hash{}, err
	}
	return tree.Root(), nil
}

// PayloadHashIndex is the fixed leaf position of the payload-hash
// field in the header's canonical encoding.
func (h *BlockHeader) PayloadHashIndex() int { return 0 }

// ParentHashIndex is the fixed leaf position of the parent-hash field
// in the header's canonical encoding.
func (h *BlockHeader) ParentHashIndex() int { return 1 }

// AdjacentIndex is chainIdxInAdjacentRecord: the leaf position of c'
// in h's Merkle tree, i.e. c's index inside h's canonical
// adjacent-hashes ordering offset by the two fixed leaves (payload
// hash, parent hash) that precede it. It fails if c' is
// not one of h's recorded neighbors, which (for a non-genesis header)
// would itself be a data-model invariant violation.
func (h *BlockHeader) AdjacentIndex(c chaingraph.ChainId) (int, error) {
	for i, id := range h.adjacentSorted() {
		if id == c {
			return i + 2, nil
		}
	}
	return 0, fmt.Errorf("header: chain %s is not an adjacent-parent entry of %s@%d", c, h.ChainID, h.Height)
}

// PayloadHashFrame is headerTree_<PayloadHash>(header): the frame
// that splices through the payload-hash child of h.
func (h *BlockHeader) PayloadHashFrame() (merklelog.Frame, error) {
	tree, err := h.Tree()
	if err != nil {
		return merklelog.Frame{}, err
	}
	return merklelog.Frame{Position: h.PayloadHashIndex(), Tree: tree}, nil
}

// ParentHashFrame is headerTree_<ParentHash>(header): the frame that
// splices through the parent-hash child of h.
func (h *BlockHeader) ParentHashFrame() (merklelog.Frame, error) {
	tree, err := h.Tree()
	if err != nil {
		return merklelog.Frame{}, err
	}
	return merklelog.Frame{Position: h.ParentHashIndex(), Tree: tree}, nil
}

// AdjacentParentFrame is headerTree_<AdjacentParent-on-c>(header): the
// frame that splices through h's adjacent-parent-on-c child.
func (h *BlockHeader) AdjacentParentFrame(c chaingraph.ChainId) (merklelog.Frame, error) {
	idx, err := h.AdjacentIndex(c)
	if err != nil {
		return merklelog.Frame{}, err
	}
	tree, err := h.Tree()
	if err != nil {
		return merklelog.Frame{}, err
	}
	return merklelog.Frame{Position: idx, Tree: tree}, nil
}

// IsGenesis reports whether h is the first block of its chain.
func (h *BlockHeader) IsGenesis() bool { return h.Height == 0 }
