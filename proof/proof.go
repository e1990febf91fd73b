// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package proof implements the proof builder and runner/verifier:
// the orchestration spec.md §4.5-4.6 describes, composed from
// chaingraph, header, payload, cutdb and merklelog.
//
// Grounded on certenIO-certen-validator's ProofBuilder/ProofVerifier
// staged-construction idiom (head lookup -> cross-chain walk ->
// source walk -> payload open -> leaf -> header spine), adapted from
// its fixed three-layer shape to this package's variable-length
// cross-chain-path-plus-parent-walk shape, and on the teacher's
// blockchain.checkConnectBlock single-pass, no-retry staged
// validation style.
package proof

import (
	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/cutdb"
	"github.com/chainweb-spv/spvcore/log"
	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/chainweb-spv/spvcore/payload"
)

var logger log.Logger = log.Disabled

// UseLogger wires a logger into this package.
func UseLogger(l log.Logger) { logger = l }

// Context is the explicit struct-of-handles spec.md §9's "Implicit
// context" design note calls for: the source implementation threads
// its web-header-db through an ambient value, which this package
// instead takes as an ordinary constructor argument.
type Context struct {
	Cut     *cutdb.Cut
	Graph   *chaingraph.Graph
	Payload payload.Store
}

// NewContext builds a proof Context over the given collaborators.
func NewContext(cut *cutdb.Cut, graph *chaingraph.Graph, store payload.Store) *Context {
	return &Context{Cut: cut, Graph: graph, Payload: store}
}

// Kind distinguishes a transaction proof from a transaction-output
// proof — the two differ only in which payload sub-tree is opened.
type Kind uint8

const (
	KindTransaction Kind = iota
	KindOutput
)

func (k Kind) String() string {
	if k == KindOutput {
		return "output"
	}
	return "transaction"
}

// Proof is the tagged pair (ChainId, MerkleProof) spec.md §3 names as
// TransactionProof / TransactionOutputProof. Its fields are exported;
// the package adds no accessor methods on it.
type Proof struct {
	Kind    Kind
	ChainID chaingraph.ChainId
	Inner   *merklelog.Proof
}
