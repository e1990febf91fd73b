// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"fmt"

	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/chainweb-spv/spvcore/payload"
	"github.com/chainweb-spv/spvcore/spverrors"
)

// Runner re-executes a proof to derive its claimed root and checks
// that root against the target chain's confirmed frontier.
type Runner struct {
	ctx *Context
}

// NewRunner creates a Runner over ctx.
func NewRunner(ctx *Context) *Runner {
	return &Runner{ctx: ctx}
}

// RunTransactionProof is runTransactionProof(proof): folds the proof
// and interprets the resulting root as a BlockHash.
func RunTransactionProof(p *Proof) (merklelog.Hash, error) {
	root, err := merklelog.Run(p.Inner)
	if err != nil {
		return merklelog.Hash{}, spverrors.VerificationFailed(fmt.Sprintf("merkle fold failed: %v", err))
	}
	return root, nil
}

// RunTransactionOutputProof is the symmetric operation for output
// proofs; the fold is identical regardless of kind, since the kind
// only affected which leaf-prefix frames were recorded at
// construction time.
func RunTransactionOutputProof(p *Proof) (merklelog.Hash, error) {
	return RunTransactionProof(p)
}

// VerifyTransactionProof is verifyTransactionProof(cutDb, proof):
// folds the proof, checks the resulting hash is on the target chain's
// confirmed frontier, and returns the recovered transaction.
func (r *Runner) VerifyTransactionProof(p *Proof) (payload.Transaction, error) {
	if p.Kind != KindTransaction {
		return nil, spverrors.InternalInvariantViolation("VerifyTransactionProof called on a non-transaction proof")
	}
	raw, err := r.verify(p)
	if err != nil {
		return nil, err
	}
	return payload.Transaction(raw), nil
}

// VerifyTransactionOutputProof is the symmetric operation for output
// proofs.
func (r *Runner) VerifyTransactionOutputProof(p *Proof) (payload.Output, error) {
	if p.Kind != KindOutput {
		return nil, spverrors.InternalInvariantViolation("VerifyTransactionOutputProof called on a non-output proof")
	}
	raw, err := r.verify(p)
	if err != nil {
		return nil, err
	}
	return payload.Output(raw), nil
}

func (r *Runner) verify(p *Proof) ([]byte, error) {
	h, err := RunTransactionProof(p)
	if err != nil {
		return nil, err
	}

	ok, err := r.ctx.Cut.Member(p.ChainID, h)
	if err != nil {
		return nil, spverrors.VerificationFailed(fmt.Sprintf("membership check failed: %v", err))
	}
	if !ok {
		return nil, spverrors.VerificationFailed("target header is not in the chain")
	}

	return p.Inner.Subject.Raw, nil
}
