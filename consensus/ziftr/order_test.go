package ziftr

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrdersArePermutations(t *testing.T) {
	seen := make(map[Order]bool)
	for i := 0; i < NumOrders; i++ {
		order := OrderAt(i)
		var count [numPrimitives]int
		for _, id := range order {
			require.Less(t, int(id), numPrimitives, "order %d", i)
			count[id]++
		}
		for id, c := range count {
			require.Equal(t, 1, c, "order %d applies primitive %d %d times", i, id, c)
		}
		require.False(t, seen[order], "order %d is duplicated", i)
		seen[order] = true
	}
	require.Len(t, seen, NumOrders)
}

func TestOrderIndexRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		var seed Digest
		rng.Read(seed[:])
		idx := OrderIndex(&seed)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, NumOrders)
	}
}

func TestOrderIndexReadsLittleEndian(t *testing.T) {
	var seed Digest
	seed[0] = 25 // 25 % 24
	require.Equal(t, 1, OrderIndex(&seed))

	seed = Digest{}
	seed[1] = 1 // 256 % 24
	require.Equal(t, 16, OrderIndex(&seed))

	seed = Digest{0xff, 0xff, 0xff, 0xff} // 4294967295 % 24
	require.Equal(t, 15, OrderIndex(&seed))
}

func TestOrderOfHeaders(t *testing.T) {
	var header Header
	header.SetVersion(1)
	hit := make(map[int]bool)
	for nonce := uint32(0); nonce < 2000; nonce++ {
		header.SetNonce(nonce)
		idx := OrderOf(&header)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, NumOrders)
		hit[idx] = true
	}
	// 2000 uniform draws over 24 buckets leave none empty in practice
	require.Len(t, hit, NumOrders)
}

func TestPrimitiveIDString(t *testing.T) {
	require.Equal(t, "blake512", Blake.String())
	require.Equal(t, "groestl512", Groestl.String())
	require.Equal(t, "jh512", JH.String())
	require.Equal(t, "skein512", Skein.String())
	require.Equal(t, "primitive(9)", PrimitiveID(9).String())
}
