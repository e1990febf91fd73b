// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merklelog

import "fmt"

// Subject is the tagged leaf a MerkleProof is about: either raw bytes
// (hashed under Tag when the proof runs) or an already-computed hash
// spliced in directly, matching spec.md's "subject (a tagged leaf:
// either raw bytes or a hash)".
type Subject struct {
	Tag     []byte
	Raw     []byte
	PreHash Hash
	IsHash  bool
}

// NewRawSubject builds a Subject whose leaf hash is computed from raw
// content under tag when the proof runs.
func NewRawSubject(tag []byte, raw []byte) Subject {
	return Subject{Tag: tag, Raw: raw}
}

// NewHashSubject builds a Subject that is already a hash and is used
// directly as the starting leaf value, with no further leaf-hashing.
func NewHashSubject(h Hash) Subject {
	return Subject{PreHash: h, IsHash: true}
}

// LeafHash returns the subject's starting hash for a fold.
func (s Subject) LeafHash() Hash {
	if s.IsHash {
		return s.PreHash
	}
	return HashLeaf(s.Tag, s.Raw)
}

// Frame is one (position, tree) level of a proof's fold: which
// sibling path to hash with, and at which leaf index.
type Frame struct {
	Position int
	Tree     *Tree
}

// Proof is a subject plus an ordered, non-empty list of frames.
// Running a Proof folds the subject outward through each frame in
// order, producing one final root hash.
type Proof struct {
	Subject Subject
	Frames  []Frame
}

// NewProof builds a Proof from a subject and a non-empty ordered list
// of frames, checking that each frame's position lies within its
// tree. It fails with a malformed-proof error otherwise, per
// spec.md §4.1's merkleProof_ contract.
func NewProof(subject Subject, frames []Frame) (*Proof, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("merklelog: malformed proof: no frames")
	}
	for i, f := range frames {
		if f.Tree == nil {
			return nil, fmt.Errorf("merklelog: malformed proof: frame %d has no tree", i)
		}
		if f.Position < 0 || f.Position >= f.Tree.NumLeaves() {
			return nil, fmt.Errorf("merklelog: malformed proof: frame %d position %d out of range [0,%d)",
				i, f.Position, f.Tree.NumLeaves())
		}
	}
	return &Proof{Subject: subject, Frames: frames}, nil
}

// Run folds the proof from its subject outward: the subject is hashed
// into frame[0] at its position, that frame's recomputed root becomes
// the next level's subject, and so on until a single root remains.
// Run is a pure function of the proof (spec.md §8 property 2).
func Run(p *Proof) (Hash, error) {
	cur := p.Subject.LeafHash()
	for i, f := range p.Frames {
		next, err := f.Tree.foldFrom(f.Position, cur)
		if err != nil {
			return Hash{}, fmt.Errorf("merklelog: run proof: frame %d: %w", i, err)
		}
		cur = next
	}
	return cur, nil
}
