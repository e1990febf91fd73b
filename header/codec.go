// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package header

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/chainweb-spv/spvcore/merklelog"
)

// encodeHeader serializes a BlockHeader for on-disk storage. This is a
// storage encoding only, distinct from the Merkle leaf encoding
// BlockHash uses — it never needs to be canonical across
// implementations, only round-trippable by this one.
func encodeHeader(h *BlockHeader) ([]byte, error) {
	var buf bytes.Buffer

	if err := binary.Write(&buf, binary.BigEndian, uint32(h.ChainID)); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, h.Height); err != nil {
		return nil, err
	}
	buf.Write(h.PayloadHash[:])
	buf.Write(h.ParentHash[:])

	adj := h.adjacentSorted()
	if err := binary.Write(&buf, binary.BigEndian, uint32(len(adj))); err != nil {
		return nil, err
	}
	for _, c := range adj {
		if err := binary.Write(&buf, binary.BigEndian, uint32(c)); err != nil {
			return nil, err
		}
		hash := h.AdjacentHashes[c]
		buf.Write(hash[:])
	}

	return buf.Bytes(), nil
}

// decodeHeader is the inverse of encodeHeader.
func decodeHeader(raw []byte) (*BlockHeader, error) {
	r := bytes.NewReader(raw)

	var chainID uint32
	if err := binary.Read(r, binary.BigEndian, &chainID); err != nil {
		return nil, fmt.Errorf("header: decoding chain id: %w", err)
	}
	var height uint64
	if err := binary.Read(r, binary.BigEndian, &height); err != nil {
		return nil, fmt.Errorf("header: decoding height: %w", err)
	}

	var payloadHash, parentHash merklelog.Hash
	if _, err := r.Read(payloadHash[:]); err != nil {
		return nil, fmt.Errorf("header: decoding payload hash: %w", err)
	}
	if _, err := r.Read(parentHash[:]); err != nil {
		return nil, fmt.Errorf("header: decoding parent hash: %w", err)
	}

	var adjCount uint32
	if err := binary.Read(r, binary.BigEndian, &adjCount); err != nil {
		return nil, fmt.Errorf("header: decoding adjacency count: %w", err)
	}
	adj := make(map[chaingraph.ChainId]merklelog.Hash, adjCount)
	for i := uint32(0); i < adjCount; i++ {
		var cid uint32
		if err := binary.Read(r, binary.BigEndian, &cid); err != nil {
			return nil, fmt.Errorf("header: decoding adjacency chain id: %w", err)
		}
		var hash merklelog.Hash
		if _, err := r.Read(hash[:]); err != nil {
			return nil, fmt.Errorf("header: decoding adjacency hash: %w", err)
		}
		adj[chaingraph.ChainId(cid)] = hash
	}

	return &BlockHeader{
		ChainID:        chaingraph.ChainId(chainID),
		Height:         height,
		PayloadHash:    payloadHash,
		ParentHash:     parentHash,
		AdjacentHashes: adj,
	}, nil
}
