package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dominant-strategies/go-ziftr/consensus/ziftr"
	"github.com/dominant-strategies/go-ziftr/core/rawdb"
)

func minedSolution(t *testing.T, nonce uint32) *ziftr.Solution {
	t.Helper()
	var header ziftr.Header
	header.SetVersion(1)
	outcome := ziftr.Search(header, ziftr.MaxTarget, nonce, nonce+1, nil)
	require.Equal(t, ziftr.Found, outcome.Status)
	return &ziftr.Solution{
		Header:          outcome.Header,
		Nonce:           outcome.Nonce,
		Hash:            outcome.Hash,
		HashesAttempted: outcome.HashesAttempted,
	}
}

func TestManageSolutions(t *testing.T) {
	db := rawdb.NewMemoryDatabase()
	defer db.Close()

	first, second := minedSolution(t, 3), minedSolution(t, 4)
	rawdb.WriteSolution(db, first)
	rawdb.WriteSolution(db, second)

	var out bytes.Buffer
	require.NoError(t, manageSolutions(&out, db, "", false))
	assert.Contains(t, out.String(), first.Hash.Hex())
	assert.Contains(t, out.String(), second.Hash.Hex())
	assert.True(t, strings.HasSuffix(out.String(), "solutions: 2\n"))

	out.Reset()
	require.NoError(t, manageSolutions(&out, db, first.Hash.Hex(), false))
	assert.Contains(t, out.String(), "nonce:    3\n")
	assert.Contains(t, out.String(), first.Header.Hex())
	assert.NotContains(t, out.String(), second.Hash.Hex())

	out.Reset()
	require.NoError(t, manageSolutions(&out, db, first.Hash.Hex(), true))
	assert.Equal(t, "deleted: "+first.Hash.Hex()+"\n", out.String())
	assert.False(t, rawdb.HasSolution(db, first.Hash))
	assert.ErrorIs(t, manageSolutions(&out, db, first.Hash.Hex(), false), errSolutionNotFound)

	out.Reset()
	require.NoError(t, manageSolutions(&out, db, "", false))
	assert.True(t, strings.HasSuffix(out.String(), "solutions: 1\n"))
}

func TestManageSolutionsBadInput(t *testing.T) {
	db := rawdb.NewMemoryDatabase()
	defer db.Close()

	var out bytes.Buffer
	assert.ErrorIs(t, manageSolutions(&out, db, "", true), errDeleteNeedsHash)
	assert.Error(t, manageSolutions(&out, db, "0xabcd", false))
	assert.Empty(t, out.String())
}
