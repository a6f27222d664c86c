package ziftr

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonceRangePartition(t *testing.T) {
	cases := []struct {
		start   uint32
		span    uint64
		threads int
	}{
		{0, 10, 3},
		{100, 7, 7},
		{5, 1000, 4},
		{math.MaxUint32 - 9, 9, 2},
		{0, math.MaxUint32, 8},
	}
	for _, c := range cases {
		next := uint64(c.start)
		for i := 0; i < c.threads; i++ {
			first, last := nonceRange(c.start, c.span, c.threads, i)
			require.Equal(t, next, uint64(first), "case %+v worker %d", c, i)
			require.Less(t, first, last, "case %+v worker %d", c, i)
			size := uint64(last - first)
			require.LessOrEqual(t, size, c.span/uint64(c.threads)+1)
			next = uint64(last)
		}
		require.Equal(t, uint64(c.start)+c.span, next, "case %+v", c)
	}
}

func TestMineMaximalTarget(t *testing.T) {
	engine := newTestEngine(4)
	defer engine.Close()

	work := &Work{Header: testHeader(), Target: MaxTarget, NonceStart: 0, NonceMax: 1000}
	solution, err := engine.Mine(context.Background(), work)
	require.NoError(t, err)
	require.NotNil(t, solution)

	// every worker's first nonce is a solution
	first, _ := nonceRange(work.NonceStart, 1000, 4, solution.Worker)
	assert.Equal(t, first, solution.Nonce)
	assert.Equal(t, uint64(1), solution.HashesAttempted)
	assert.Equal(t, solution.Nonce, solution.Header.Nonce())
	assert.Equal(t, ProofHash(solution.Header), solution.Hash)
	require.NoError(t, engine.VerifySeal(solution.Header, work.Target))
}

func TestMineEasyTarget(t *testing.T) {
	engine := newTestEngine(2)
	defer engine.Close()

	target := MaxTarget
	target[7] = 0x00ffffff
	work := &Work{Header: testHeader(), Target: target, NonceStart: 0, NonceMax: 1 << 20}
	solution, err := engine.Mine(context.Background(), work)
	require.NoError(t, err)
	require.NoError(t, engine.VerifySeal(solution.Header, target))
	assert.Greater(t, engine.Hashrate(), 0.0)
}

func TestMineExhausted(t *testing.T) {
	engine := newTestEngine(3)
	defer engine.Close()

	work := &Work{Header: testHeader(), Target: Target{}, NonceStart: 0, NonceMax: 300}
	solution, err := engine.Mine(context.Background(), work)
	require.ErrorIs(t, err, ErrNonceRangeExhausted)
	require.Nil(t, solution)
}

func TestMineContextCancelled(t *testing.T) {
	engine := newTestEngine(2)
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	work := &Work{Header: testHeader(), Target: Target{}, NonceStart: 0, NonceMax: math.MaxUint32}
	_, err := engine.Mine(ctx, work)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMineEngineClosed(t *testing.T) {
	engine := newTestEngine(1)
	work := &Work{Header: testHeader(), Target: Target{}, NonceStart: 0, NonceMax: math.MaxUint32}
	go func() {
		time.Sleep(20 * time.Millisecond)
		engine.Close()
	}()
	_, err := engine.Mine(context.Background(), work)
	require.ErrorIs(t, err, ErrEngineClosed)
	require.NoError(t, engine.Close())
}

func TestSealRejectsBadWork(t *testing.T) {
	engine := newTestEngine(1)
	defer engine.Close()

	results := make(chan *Solution, 1)
	err := engine.Seal(&Work{Header: testHeader(), NonceStart: 10, NonceMax: 10}, results, nil)
	require.ErrorIs(t, err, ErrEmptyNonceRange)

	engine.SetThreads(-1)
	require.Equal(t, -1, engine.Threads())
	err = engine.Seal(&Work{Header: testHeader(), NonceStart: 0, NonceMax: 10}, results, nil)
	require.ErrorIs(t, err, ErrMiningDisabled)
}

func TestSealStop(t *testing.T) {
	engine := newTestEngine(2)
	defer engine.Close()

	results := make(chan *Solution, 1)
	stop := make(chan struct{})
	work := &Work{Header: testHeader(), Target: Target{}, NonceStart: 0, NonceMax: math.MaxUint32}
	require.NoError(t, engine.Seal(work, results, stop))
	time.Sleep(20 * time.Millisecond)
	close(stop)

	select {
	case result := <-results:
		t.Fatalf("unexpected result %+v", result)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSealThreadUpdateRestarts(t *testing.T) {
	engine := newTestEngine(1)
	defer engine.Close()

	results := make(chan *Solution, 1)
	stop := make(chan struct{})
	defer close(stop)
	target := MaxTarget
	target[7] = 0x000fffff
	work := &Work{Header: testHeader(), Target: target, NonceStart: 0, NonceMax: math.MaxUint32}
	require.NoError(t, engine.Seal(work, results, stop))
	engine.SetThreads(2)

	select {
	case solution := <-results:
		require.NoError(t, engine.VerifySeal(solution.Header, target))
	case <-time.After(60 * time.Second):
		t.Fatal("no solution after thread update")
	}
	require.Equal(t, 2, engine.Threads())
}

func TestMineThreadUpdateDisablesMining(t *testing.T) {
	engine := newTestEngine(2)
	defer engine.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	work := &Work{Header: testHeader(), Target: Target{}, NonceStart: 0, NonceMax: math.MaxUint32}
	go func() {
		time.Sleep(50 * time.Millisecond)
		engine.SetThreads(-1)
	}()

	start := time.Now()
	solution, err := engine.Mine(ctx, work)
	require.ErrorIs(t, err, ErrMiningDisabled)
	require.Nil(t, solution)
	require.Less(t, time.Since(start), 2*time.Second, "Mine waited for its context after mining was disabled")
}

func TestFakeSeal(t *testing.T) {
	engine := NewFaker()
	defer engine.Close()

	work := &Work{Header: testHeader(), Target: Target{}, NonceStart: 9, NonceMax: 10}
	solution, err := engine.Mine(context.Background(), work)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), solution.Nonce)
	assert.Equal(t, uint32(9), solution.Header.Nonce())
	require.NoError(t, engine.VerifySeal(solution.Header, work.Target))
}
