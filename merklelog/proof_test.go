// Copyright (c) 2024 The Flokicoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merklelog_test

import (
	"testing"

	"github.com/chainweb-spv/spvcore/merklelog"
	"github.com/stretchr/testify/require"
)

func buildFixtureTree(t *testing.T) (*merklelog.Tree, []merklelog.Hash) {
	t.Helper()
	leaves := leafHashes("leaf-0", "leaf-1", "leaf-2", "leaf-3")
	tree, err := merklelog.BuildTree(leaves)
	require.NoError(t, err)
	return tree, leaves
}

func TestNewProofRejectsEmptyFrames(t *testing.T) {
	_, err := merklelog.NewProof(merklelog.NewHashSubject(merklelog.Hash{}), nil)
	require.Error(t, err)
}

func TestNewProofRejectsOutOfRangePosition(t *testing.T) {
	tree, _ := buildFixtureTree(t)
	_, err := merklelog.NewProof(merklelog.NewHashSubject(merklelog.Hash{}), []merklelog.Frame{
		{Position: 99, Tree: tree},
	})
	require.Error(t, err)
}

func TestRunProofRoundTrip(t *testing.T) {
	tree, _ := buildFixtureTree(t)
	subject := merklelog.NewRawSubject(testTag, []byte("leaf-2"))
	proof, err := merklelog.NewProof(subject, []merklelog.Frame{{Position: 2, Tree: tree}})
	require.NoError(t, err)

	root, err := merklelog.Run(proof)
	require.NoError(t, err)
	require.Equal(t, tree.Root(), root)
}

// TestTamperedSubjectFailsVerification covers spec.md §8 property 4:
// flipping any bit of the subject must change the folded root.
func TestTamperedSubjectFailsVerification(t *testing.T) {
	tree, _ := buildFixtureTree(t)
	good := merklelog.NewRawSubject(testTag, []byte("leaf-2"))
	bad := merklelog.NewRawSubject(testTag, []byte("leaf-X"))

	goodProof, err := merklelog.NewProof(good, []merklelog.Frame{{Position: 2, Tree: tree}})
	require.NoError(t, err)
	badProof, err := merklelog.NewProof(bad, []merklelog.Frame{{Position: 2, Tree: tree}})
	require.NoError(t, err)

	goodRoot, err := merklelog.Run(goodProof)
	require.NoError(t, err)
	badRoot, err := merklelog.Run(badProof)
	require.NoError(t, err)

	require.NotEqual(t, goodRoot, badRoot)
	require.Equal(t, tree.Root(), goodRoot)
}

// TestMultiFrameFold covers composing several frames, the way a full
// proof chains body -> header -> cross-chain steps.
func TestMultiFrameFold(t *testing.T) {
	innerLeaves := leafHashes("inner-0", "inner-1")
	innerTree, err := merklelog.BuildTree(innerLeaves)
	require.NoError(t, err)

	// The outer tree splices the inner tree's root in as one of its
	// own leaves, the way a header tree splices in a payload hash.
	outerLeaves := []merklelog.Hash{innerTree.Root(), merklelog.HashLeaf(testTag, []byte("sibling"))}
	outerTree, err := merklelog.BuildTree(outerLeaves)
	require.NoError(t, err)

	subject := merklelog.NewRawSubject(testTag, []byte("inner-0"))
	proof, err := merklelog.NewProof(subject, []merklelog.Frame{
		{Position: 0, Tree: innerTree},
		{Position: 0, Tree: outerTree},
	})
	require.NoError(t, err)

	root, err := merklelog.Run(proof)
	require.NoError(t, err)
	require.Equal(t, outerTree.Root(), root)
}
