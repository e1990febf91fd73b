// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package payload defines a block's body: an ordered transaction list
// and an ordered output list, each Merkle-rooted, plus the
// BlockPayload record that ties both roots together under the hash a
// header's payloadHash field names.
//
// Grounded on the teacher's wire.MsgBlock/wire.MsgTx pairing (a block
// carries an ordered transaction list whose Merkle root is what
// blockchain.BuildMerkleTreeStore computes) and blockchain's odd-leaf
// duplication convention, generalized here to two independently
// rooted sequences instead of one.
package payload

import (
	"github.com/chainweb-spv/spvcore/merklelog"
)

// Merkle-universe tags naming the semantic fields of the payload's
// member sequences.
var (
	TagTransaction = []byte("payload:transaction")
	TagOutput      = []byte("payload:output")
)

// BlockPayload is the logical record spec.md §3 describes: two
// sub-roots (transactions root, outputs root) whose own hash is the
// payloadHash field a BlockHeader carries.
type BlockPayload struct {
	TransactionsHash merklelog.Hash
	OutputsHash      merklelog.Hash
}

// leaves splices the transactions and outputs roots in raw: each is
// itself the root of another tree, and a frame that climbs into this
// tree must be able to feed that same root straight through without
// re-tagging it.
func (p *BlockPayload) leaves() []merklelog.Hash {
	return []merklelog.Hash{
		p.TransactionsHash,
		p.OutputsHash,
	}
}

// Tree builds the payload's two-leaf Merkle tree.
func (p *BlockPayload) Tree() (*merklelog.Tree, error) {
	return merklelog.BuildTree(p.leaves())
}

// Hash computes the payload's content hash: the root of its tree.
// This is the value the owning header's PayloadHash field must equal.
func (p *BlockPayload) Hash() (merklelog.Hash, error) {
	tree, err := p.Tree()
	if err != nil {
		return merklelog.Hash{}, err
	}
	return tree.Root(), nil
}

// TransactionsHashIndex is the fixed leaf position of the transactions
// root inside the payload's canonical encoding.
func (p *BlockPayload) TransactionsHashIndex() int { return 0 }

// OutputsHashIndex is the fixed leaf position of the outputs root
// inside the payload's canonical encoding.
func (p *BlockPayload) OutputsHashIndex() int { return 1 }

// TransactionsHashFrame is headerTree_<TransactionsHash>(payload): the
// frame that splices through the transactions-root child of p.
func (p *BlockPayload) TransactionsHashFrame() (merklelog.Frame, error) {
	tree, err := p.Tree()
	if err != nil {
		return merklelog.Frame{}, err
	}
	return merklelog.Frame{Position: p.TransactionsHashIndex(), Tree: tree}, nil
}

// OutputsHashFrame is headerTree_<OutputsHash>(payload): the frame
// that splices through the outputs-root child of p.
func (p *BlockPayload) OutputsHashFrame() (merklelog.Frame, error) {
	tree, err := p.Tree()
	if err != nil {
		return merklelog.Frame{}, err
	}
	return merklelog.Frame{Position: p.OutputsHashIndex(), Tree: tree}, nil
}

// Transaction is a single opaque transaction body. Its exact wire
// encoding is out of scope (spec Non-goal: proof encoding format); the
// core only needs its raw bytes to compute a leaf hash.
type Transaction []byte

// Output is a single opaque transaction-output body.
type Output []byte

// Transactions is the ordered sequence whose Merkle root is a block's
// transactions root.
type Transactions []Transaction

// Outputs is the ordered sequence whose Merkle root is a block's
// outputs root.
type Outputs []Output

// Tree builds the Merkle tree over seq's transaction leaves, each
// tagged TagTransaction.
func (seq Transactions) Tree() (*merklelog.Tree, error) {
	leaves := make([]merklelog.Hash, len(seq))
	for i, tx := range seq {
		leaves[i] = merklelog.HashLeaf(TagTransaction, tx)
	}
	return merklelog.BuildTree(leaves)
}

// Root computes the transactions root: the value a BlockPayload's
// TransactionsHash field must equal.
func (seq Transactions) Root() (merklelog.Hash, error) {
	tree, err := seq.Tree()
	if err != nil {
		return merklelog.Hash{}, err
	}
	return tree.Root(), nil
}

// Tree builds the Merkle tree over seq's output leaves, each tagged
// TagOutput.
func (seq Outputs) Tree() (*merklelog.Tree, error) {
	leaves := make([]merklelog.Hash, len(seq))
	for i, out := range seq {
		leaves[i] = merklelog.HashLeaf(TagOutput, out)
	}
	return merklelog.BuildTree(leaves)
}

// Root computes the outputs root: the value a BlockPayload's
// OutputsHash field must equal.
func (seq Outputs) Root() (merklelog.Hash, error) {
	tree, err := seq.Tree()
	if err != nil {
		return merklelog.Hash{}, err
	}
	return tree.Root(), nil
}

// BodyTree is bodyTree<Tag>(seq, i): given an ordered sequence and a
// leaf index, returns the tagged subject at that index, its position,
// and the Merkle tree of the whole sequence. Callers splice the
// returned frame into an outer proof to prove membership of leaf i.
//
// tag names the semantic kind of leaf (TagTransaction or TagOutput);
// leaf is the raw content at index i. An out-of-range i is not an
// error here: it is returned unchanged as the position, with an empty
// subject, and merklelog.NewProof rejects the frame built from it as
// malformed, unless the caller opts into Builder.StrictLeafIndex
// upstream.
func BodyTree(tag []byte, leaves [][]byte, i int) (merklelog.Subject, int, *merklelog.Tree, error) {
	hashes := make([]merklelog.Hash, len(leaves))
	for idx, l := range leaves {
		hashes[idx] = merklelog.HashLeaf(tag, l)
	}
	tree, err := merklelog.BuildTree(hashes)
	if err != nil {
		return merklelog.Subject{}, 0, nil, err
	}
	if i < 0 || i >= len(leaves) {
		return merklelog.NewRawSubject(tag, nil), i, tree, nil
	}
	return merklelog.NewRawSubject(tag, leaves[i]), i, tree, nil
}
