// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package merklelog implements the domain-separated SHA-512/256 Merkle
// primitives this module's proofs are built from: leaf/node hashing,
// tree construction, and the positioned-frame proof object that folds
// a subject outward into a single root hash.
//
// The hashing scheme is fixed by the spec this module implements and
// is not itself pluggable: HashLeaf and HashNode are domain-separated
// by a one-byte kind tag (leaf vs. node), and HashLeaf additionally
// prefixes its content with a Merkle-universe tag naming the semantic
// field. Trees whose leaves are the roots of other trees (the header
// and payload trees) take those roots as leaves directly, without
// HashLeaf, so their leaves carry neither the kind tag nor a
// field-naming tag; a frame splices through one of their children by
// leaf position alone.
package merklelog

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
)

// HashSize is the width in bytes of a Hash (SHA-512/256 truncated
// digest).
const HashSize = 32

// Hash is a fixed-width SHA-512/256 digest. It is the root type for
// every tree, leaf, and node value in this package.
type Hash [HashSize]byte

const (
	kindLeaf byte = 0x00
	kindNode byte = 0x01
)

// HashLeaf computes the leaf hash of content under the given
// Merkle-universe tag: sha512/256(0x00 || tag || content).
func HashLeaf(tag []byte, content []byte) Hash {
	h := sha512.New512_256()
	h.Write([]byte{kindLeaf})
	h.Write(tag)
	h.Write(content)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// HashNode computes the inner-node hash of a left/right pair:
// sha512/256(0x01 || left || right).
func HashNode(left, right Hash) Hash {
	h := sha512.New512_256()
	h.Write([]byte{kindNode})
	h.Write(left[:])
	h.Write(right[:])
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// String returns the lowercase hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether h is the all-zero sentinel, used for the
// parent/adjacent-parent fields of a genesis header.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// HashFromHex parses a 64-character hex string into a Hash.
func HashFromHex(s string) (Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("merklelog: invalid hex hash: %w", err)
	}
	if len(b) != HashSize {
		return Hash{}, fmt.Errorf("merklelog: hash must be %d bytes, got %d", HashSize, len(b))
	}
	var out Hash
	copy(out[:], b)
	return out, nil
}
