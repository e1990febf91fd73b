// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaingraph models the fixed adjacency graph of a braided
// chainweb: which chains are neighbors, and therefore between which
// pairs of chains a header may carry an adjacent-parent link.
package chaingraph

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// ChainId is an opaque identifier for one chain within the braided
// set. It is small and totally ordered so it can serve as the
// canonical sort key the header's adjacency encoding relies on
// (spec.md §9 "Positional indices").
type ChainId uint32

// Bytes returns the big-endian canonical encoding of the ChainId,
// used as the chain prefix of header leveldb keys. Its byte order
// matches the numeric order adjacency sorting uses.
func (c ChainId) Bytes() []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(c))
	return b[:]
}

func (c ChainId) String() string {
	return fmt.Sprintf("chain-%d", uint32(c))
}

// Graph is an immutable undirected graph over ChainIds, fixing which
// chains are adjacent. A Graph is built once (typically from a
// chaincfg-registered chainweb version) and never mutated afterward,
// matching spec.md's "ChainGraph — immutable".
type Graph struct {
	adjacency map[ChainId]map[ChainId]struct{}
}

// NewGraph builds a Graph from a list of undirected edges.
func NewGraph(edges [][2]ChainId) *Graph {
	g := &Graph{adjacency: make(map[ChainId]map[ChainId]struct{})}
	for _, e := range edges {
		g.addEdge(e[0], e[1])
	}
	return g
}

func (g *Graph) addEdge(a, b ChainId) {
	if g.adjacency[a] == nil {
		g.adjacency[a] = make(map[ChainId]struct{})
	}
	if g.adjacency[b] == nil {
		g.adjacency[b] = make(map[ChainId]struct{})
	}
	g.adjacency[a][b] = struct{}{}
	g.adjacency[b][a] = struct{}{}
}

// Chains returns every ChainId known to the graph, in ascending
// order.
func (g *Graph) Chains() []ChainId {
	out := make([]ChainId, 0, len(g.adjacency))
	for c := range g.adjacency {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Adjacent returns the neighbors of c, sorted ascending by ChainId.
// This order is the canonical total order spec.md §9 requires be
// shared between the header-tree builder and the cross-chain frame
// position lookup.
func (g *Graph) Adjacent(c ChainId) []ChainId {
	neighbors := g.adjacency[c]
	out := make([]ChainId, 0, len(neighbors))
	for n := range neighbors {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// IsAdjacent reports whether a and b are neighbors in the graph.
func (g *Graph) IsAdjacent(a, b ChainId) bool {
	_, ok := g.adjacency[a][b]
	return ok
}

// ShortestPath returns the sequence of ChainIds to traverse from
// `from` to `to`, exclusive of `from` itself and inclusive of `to`
// (each entry is one adjacent-parent hop). It is empty if from == to.
// Search is breadth-first with ties broken by ascending ChainId, so
// the result is deterministic for a given graph, matching spec.md
// §4.2's `shortestPath`.
func (g *Graph) ShortestPath(from, to ChainId) ([]ChainId, error) {
	if from == to {
		return nil, nil
	}
	if _, ok := g.adjacency[from]; !ok {
		return nil, fmt.Errorf("chaingraph: unknown chain %s", from)
	}
	if _, ok := g.adjacency[to]; !ok {
		return nil, fmt.Errorf("chaingraph: unknown chain %s", to)
	}

	visited := map[ChainId]bfsStep{from: {chain: from}}
	queue := []ChainId{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range g.Adjacent(cur) {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = bfsStep{chain: next, prev: cur, hasPrev: true}
			if next == to {
				return reconstructPath(visited, to), nil
			}
			queue = append(queue, next)
		}
	}

	return nil, fmt.Errorf("chaingraph: no path from %s to %s", from, to)
}

type bfsStep struct {
	chain   ChainId
	prev    ChainId
	hasPrev bool
}

// reconstructPath walks the BFS parent chain back from `to` to `from`
// and returns the hops in from-exclusive, to-inclusive order.
func reconstructPath(visited map[ChainId]bfsStep, to ChainId) []ChainId {
	var rev []ChainId
	cur := to
	for {
		rev = append(rev, cur)
		s := visited[cur]
		if !s.hasPrev {
			break
		}
		cur = s.prev
	}

	out := make([]ChainId, 0, len(rev)-1)
	for i := len(rev) - 2; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out
}
