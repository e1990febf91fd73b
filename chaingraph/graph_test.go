// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaingraph_test

import (
	"testing"

	"github.com/chainweb-spv/spvcore/chaingraph"
	"github.com/stretchr/testify/require"
)

const (
	chainA chaingraph.ChainId = 0
	chainB chaingraph.ChainId = 1
	chainC chaingraph.ChainId = 2
)

func triangleGraph() *chaingraph.Graph {
	return chaingraph.NewGraph([][2]chaingraph.ChainId{
		{chainA, chainB},
		{chainB, chainC},
		{chainA, chainC},
	})
}

func TestShortestPathSameChainIsEmpty(t *testing.T) {
	g := triangleGraph()
	path, err := g.ShortestPath(chainA, chainA)
	require.NoError(t, err)
	require.Empty(t, path)
}

func TestShortestPathDirectEdge(t *testing.T) {
	g := triangleGraph()
	path, err := g.ShortestPath(chainB, chainA)
	require.NoError(t, err)
	require.Equal(t, []chaingraph.ChainId{chainA}, path)
}

func TestShortestPathTwoHop(t *testing.T) {
	g := chaingraph.NewGraph([][2]chaingraph.ChainId{
		{chainA, chainB},
		{chainB, chainC},
	})
	path, err := g.ShortestPath(chainA, chainC)
	require.NoError(t, err)
	require.Equal(t, []chaingraph.ChainId{chainB, chainC}, path)
}

func TestShortestPathUnknownChain(t *testing.T) {
	g := triangleGraph()
	_, err := g.ShortestPath(chainA, chaingraph.ChainId(99))
	require.Error(t, err)
}

func TestAdjacentIsSortedAndDeterministic(t *testing.T) {
	g := triangleGraph()
	require.Equal(t, []chaingraph.ChainId{chainA, chainC}, g.Adjacent(chainB))
}

func TestIsAdjacent(t *testing.T) {
	g := triangleGraph()
	require.True(t, g.IsAdjacent(chainA, chainB))
	require.False(t, g.IsAdjacent(chainA, chainA))
}
