// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package payload_test

import (
	"testing"

	"github.com/chainweb-spv/spvcore/payload"
	"github.com/stretchr/testify/require"
)

func TestMemStoreRoundTrip(t *testing.T) {
	store := payload.NewMemStore()

	txs := payload.Transactions{payload.Transaction("tx-0"), payload.Transaction("tx-1")}
	outs := payload.Outputs{payload.Output("out-0")}

	txRoot, err := txs.Root()
	require.NoError(t, err)
	outRoot, err := outs.Root()
	require.NoError(t, err)

	p := &payload.BlockPayload{TransactionsHash: txRoot, OutputsHash: outRoot}

	require.NoError(t, store.PutPayload(p))
	require.NoError(t, store.PutTransactions(txs))
	require.NoError(t, store.PutOutputs(outs))

	payloadHash, err := p.Hash()
	require.NoError(t, err)

	gotPayload, ok, err := store.LookupPayload(payloadHash)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, p, gotPayload)

	gotTxs, ok, err := store.LookupTransactions(txRoot)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, txs, gotTxs)

	gotOuts, ok, err := store.LookupOutputs(outRoot)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, outs, gotOuts)
}

func TestMemStoreMissingEntry(t *testing.T) {
	store := payload.NewMemStore()
	var zero [32]byte
	_, ok, err := store.LookupPayload(zero)
	require.NoError(t, err)
	require.False(t, ok)
}
