// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package proof

import (
	"fmt"

	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/header"
	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/chainweb-spv/spvcore/payload"
	"github.com/chainweb-spv/spvcore/spverrors"
)

// Builder orchestrates graph traversal, header/payload lookups and
// Merkle frame composition into a single proof. Per spec.md §5 it is
// synchronous and performs no retries: the algorithm runs once,
// top to bottom, and any failed step aborts construction.
type Builder struct {
	ctx *Context

	// StrictLeafIndex is the opt-in "stricter variant" spec.md §9
	// names: when set, an out-of-range leafIndex is rejected with
	// TargetNotReachable before the body tree is built. When unset, the
	// out-of-range position reaches merklelog.NewProof, and construction
	// fails there with a malformed-proof VerificationFailed.
	StrictLeafIndex bool
}

// NewBuilder creates a Builder over ctx.
func NewBuilder(ctx *Context) *Builder {
	return &Builder{ctx: ctx}
}

// CreateTransactionProof is createTransactionProof(...): builds a
// proof that the transaction at (sourceChain, srcHeight, leafIndex) is
// included, witnessed against targetChain's current head.
func (b *Builder) CreateTransactionProof(targetChain, sourceChain chaingraph.ChainId, srcHeight uint64, leafIndex int) (*Proof, error) {
	return b.create(KindTransaction, targetChain, sourceChain, srcHeight, leafIndex)
}

// CreateTransactionOutputProof is createTransactionOutputProof(...):
// the symmetric operation over the outputs sub-tree.
func (b *Builder) CreateTransactionOutputProof(targetChain, sourceChain chaingraph.ChainId, srcHeight uint64, leafIndex int) (*Proof, error) {
	return b.create(KindOutput, targetChain, sourceChain, srcHeight, leafIndex)
}

func (b *Builder) create(kind Kind, targetChain, sourceChain chaingraph.ChainId, srcHeight uint64, leafIndex int) (*Proof, error) {
	targetDB, err := b.ctx.Cut.Chain(targetChain)
	if err != nil {
		return nil, spverrors.TargetNotReachable(fmt.Sprintf("unknown target chain %s", targetChain))
	}

	// 1. Head & reachability.
	trgHead, err := header.MaxHeader(targetDB)
	if err != nil {
		return nil, spverrors.TargetNotReachable(fmt.Sprintf("no current head for target chain %s", targetChain))
	}

	path, err := b.ctx.Graph.ShortestPath(targetChain, sourceChain)
	if err != nil {
		return nil, spverrors.TargetNotReachable(fmt.Sprintf("no path from %s to %s: %v", targetChain, sourceChain, err))
	}
	if trgHead.Height+1 < uint64(len(path)) {
		return nil, spverrors.TargetNotReachable("chain too young")
	}

	// 2. Walk adjacent edges, target towards source.
	var crossChainFrames []merklelog.Frame
	cur := trgHead
	for _, cPrime := range path {
		adjP, err := header.LookupAdjacentParentHeader(b.ctx.Cut.WebHeaderDb(), cur, cPrime)
		if err != nil {
			return nil, spverrors.InternalInvariantViolation(err.Error())
		}
		adjIdx, err := cur.AdjacentIndex(cPrime)
		if err != nil {
			return nil, spverrors.InternalInvariantViolation(err.Error())
		}
		tree, err := cur.Tree()
		if err != nil {
			return nil, spverrors.InternalInvariantViolation(err.Error())
		}
		crossChainFrames = append(crossChainFrames, merklelog.Frame{Position: adjIdx, Tree: tree})
		cur = adjP
	}
	srcHead := cur

	if srcHead.Height < srcHeight {
		return nil, spverrors.TargetNotReachable("source transaction above reachable source head")
	}

	// 3. Walk parent edges on source chain from srcHead down to
	// srcHeight, recording the spine from srcHeader to srcHead.
	sourceDB, err := b.ctx.Cut.Chain(sourceChain)
	if err != nil {
		return nil, spverrors.TargetNotReachable(fmt.Sprintf("unknown source chain %s", sourceChain))
	}

	var spine []*header.BlockHeader // [srcHeader, ..., srcHead]
	walker := srcHead
	spine = append(spine, walker)
	for walker.Height > srcHeight {
		parent, err := header.LookupParentHeader(sourceDB, walker)
		if err != nil {
			return nil, spverrors.TargetNotReachable("parent walk cannot reach source height")
		}
		spine = append(spine, parent)
		walker = parent
	}
	// spine is currently [srcHead, ..., srcHeader]; reverse it so the
	// first element is srcHeader per spec.md §4.5 step 3.
	for i, j := 0, len(spine)-1; i < j; i, j = i+1, j-1 {
		spine[i], spine[j] = spine[j], spine[i]
	}
	srcHeader := spine[0]
	if srcHeader.Height != srcHeight {
		return nil, spverrors.TargetNotReachable("parent walk cannot reach source height")
	}

	// 4. Open payload.
	blockPayload, ok, err := b.ctx.Payload.LookupPayload(srcHeader.PayloadHash)
	if err != nil {
		return nil, spverrors.InconsistentPayloadData("payload store lookup failed", err)
	}
	if !ok {
		return nil, spverrors.InconsistentPayloadData(fmt.Sprintf("no payload for hash %s", srcHeader.PayloadHash), nil)
	}

	// 6. Consistency (checked here, ahead of leaf prefix construction,
	// since both read blockPayload).
	payloadHash, err := blockPayload.Hash()
	if err != nil {
		return nil, spverrors.InconsistentPayloadData("payload hash computation failed", err)
	}
	if payloadHash != srcHeader.PayloadHash {
		return nil, spverrors.InconsistentPayloadData("payload hash does not match owning header", nil)
	}

	// 5. Leaf prefix.
	subj, leafFrames, err := b.leafPrefix(kind, blockPayload, leafIndex)
	if err != nil {
		return nil, err
	}

	// 7. Header spine.
	headerSpineFrames, err := b.headerSpine(srcHeader, spine[1:], crossChainFrames)
	if err != nil {
		return nil, err
	}

	allFrames := append(leafFrames, headerSpineFrames...)

	// 8. Finalize.
	merkleProof, err := merklelog.NewProof(subj, allFrames)
	if err != nil {
		return nil, spverrors.VerificationFailed(fmt.Sprintf("malformed proof: %v", err))
	}

	return &Proof{Kind: kind, ChainID: targetChain, Inner: merkleProof}, nil
}

// leafPrefix builds prefix := [(pos, tree), headerTree_<...Hash>(payload)]
// per spec.md §4.5 step 5, and checks leafIndex range first when the
// Builder opted into StrictLeafIndex.
func (b *Builder) leafPrefix(kind Kind, blockPayload *payload.BlockPayload, leafIndex int) (merklelog.Subject, []merklelog.Frame, error) {
	var tag []byte
	var raw [][]byte
	var subFrame func() (merklelog.Frame, error)

	switch kind {
	case KindTransaction:
		txs, ok, err := b.ctx.Payload.LookupTransactions(blockPayload.TransactionsHash)
		if err != nil {
			return merklelog.Subject{}, nil, spverrors.InconsistentPayloadData("transactions store lookup failed", err)
		}
		if !ok {
			return merklelog.Subject{}, nil, spverrors.InconsistentPayloadData(
				fmt.Sprintf("no transactions for hash %s", blockPayload.TransactionsHash), nil)
		}
		tag = payload.TagTransaction
		raw = make([][]byte, len(txs))
		for i, tx := range txs {
			raw[i] = tx
		}
		subFrame = blockPayload.TransactionsHashFrame
	case KindOutput:
		outs, ok, err := b.ctx.Payload.LookupOutputs(blockPayload.OutputsHash)
		if err != nil {
			return merklelog.Subject{}, nil, spverrors.InconsistentPayloadData("outputs store lookup failed", err)
		}
		if !ok {
			return merklelog.Subject{}, nil, spverrors.InconsistentPayloadData(
				fmt.Sprintf("no outputs for hash %s", blockPayload.OutputsHash), nil)
		}
		tag = payload.TagOutput
		raw = make([][]byte, len(outs))
		for i, out := range outs {
			raw[i] = out
		}
		subFrame = blockPayload.OutputsHashFrame
	default:
		return merklelog.Subject{}, nil, spverrors.InternalInvariantViolation("unknown proof kind")
	}

	if b.StrictLeafIndex && (leafIndex < 0 || leafIndex >= len(raw)) {
		return merklelog.Subject{}, nil, spverrors.TargetNotReachable(
			fmt.Sprintf("leaf index %d out of range for %d leaves", leafIndex, len(raw)))
	}

	subj, pos, tree, err := payload.BodyTree(tag, raw, leafIndex)
	if err != nil {
		return merklelog.Subject{}, nil, spverrors.InternalInvariantViolation(err.Error())
	}

	headerFrame, err := subFrame()
	if err != nil {
		return merklelog.Subject{}, nil, spverrors.InternalInvariantViolation(err.Error())
	}

	return subj, []merklelog.Frame{{Position: pos, Tree: tree}, headerFrame}, nil
}

// headerSpine appends the payload-hash child of srcHeader, the
// parent-hash child of every header on the parent walk excluding
// srcHeader, then the cross-chain frames accumulated in step 2 —
// reversed, so the fold climbs from srcHead up to trgHead and ends
// there, per spec.md §4.5 step 7.
func (b *Builder) headerSpine(srcHeader *header.BlockHeader, ancestors []*header.BlockHeader, crossChainFrames []merklelog.Frame) ([]merklelog.Frame, error) {
	var frames []merklelog.Frame

	payloadFrame, err := srcHeader.PayloadHashFrame()
	if err != nil {
		return nil, spverrors.InternalInvariantViolation(err.Error())
	}
	frames = append(frames, payloadFrame)

	for _, h := range ancestors {
		f, err := h.ParentHashFrame()
		if err != nil {
			return nil, spverrors.InternalInvariantViolation(err.Error())
		}
		frames = append(frames, f)
	}

	// crossChainFrames was accumulated walking from trgHead towards
	// srcHead: frame i's tree is the header i hops from trgHead, and
	// its splice position holds the hash of header i+1. The fold
	// applies the subject to frames in list order, so to climb back
	// up from srcHead's hash to trgHead's hash the frame nearest the
	// source must be applied first and the frame over trgHead itself
	// must be applied last — the reverse of build order. That is what
	// makes the fold end at trgHead, per spec.md §4.5 step 7.
	for i := len(crossChainFrames) - 1; i >= 0; i-- {
		frames = append(frames, crossChainFrames[i])
	}

	return frames, nil
}
