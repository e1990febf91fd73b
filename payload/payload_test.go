// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload_test

import (
	"testing"

	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/chainweb-spv/spvcore/payload"
	"github.com/stretchr/testify/require"
)

func TestPayloadHashMatchesSubRoots(t *testing.T) {
	txs := payload.Transactions{
		payload.Transaction("tx-0"),
		payload.Transaction("tx-1"),
		payload.Transaction("tx-2"),
	}
	outs := payload.Outputs{
		payload.Output("out-0"),
		payload.Output("out-1"),
	}

	txRoot, err := txs.Root()
	require.NoError(t, err)
	outRoot, err := outs.Root()
	require.NoError(t, err)

	p := &payload.BlockPayload{TransactionsHash: txRoot, OutputsHash: outRoot}
	hash, err := p.Hash()
	require.NoError(t, err)
	require.False(t, hash.IsZero())
}

func TestBodyTreeProvesMembership(t *testing.T) {
	txs := payload.Transactions{
		payload.Transaction("tx-0"),
		payload.Transaction("tx-1"),
		payload.Transaction("tx-2"),
	}
	raw := make([][]byte, len(txs))
	for i, tx := range txs {
		raw[i] = tx
	}

	subj, pos, tree, err := payload.BodyTree(payload.TagTransaction, raw, 1)
	require.NoError(t, err)
	require.Equal(t, 1, pos)

	proof, err := merklelog.NewProof(subj, []merklelog.Frame{{Position: pos, Tree: tree}})
	require.NoError(t, err)

	root, err := merklelog.Run(proof)
	require.NoError(t, err)

	txRoot, err := txs.Root()
	require.NoError(t, err)
	require.Equal(t, txRoot, root)
}

func TestTransactionAndOutputProofsShareHeaderSpine(t *testing.T) {
	txs := payload.Transactions{payload.Transaction("tx-0")}
	outs := payload.Outputs{payload.Output("out-0")}

	txRoot, err := txs.Root()
	require.NoError(t, err)
	outRoot, err := outs.Root()
	require.NoError(t, err)

	p := &payload.BlockPayload{TransactionsHash: txRoot, OutputsHash: outRoot}

	txFrame, err := p.TransactionsHashFrame()
	require.NoError(t, err)
	outFrame, err := p.OutputsHashFrame()
	require.NoError(t, err)

	require.NotEqual(t, txFrame.Position, outFrame.Position)
	require.Equal(t, txFrame.Tree.Root(), outFrame.Tree.Root())
}
