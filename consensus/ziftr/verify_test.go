package ziftr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dominant-strategies/go-ziftr/log"
)

func newTestEngine(threads int) *Ziftr {
	return New(Config{Threads: threads, Log: log.NewNullLogger()})
}

func TestVerifySeal(t *testing.T) {
	engine := newTestEngine(1)
	defer engine.Close()

	outcome := Search(testHeader(), MaxTarget, 12, 13, nil)
	require.Equal(t, Found, outcome.Status)
	require.NoError(t, engine.VerifySeal(outcome.Header, MaxTarget))
	// cached path
	require.NoError(t, engine.VerifySeal(outcome.Header, MaxTarget))

	require.ErrorIs(t, engine.VerifySeal(outcome.Header, Target{}), ErrInvalidPoW)

	tampered := outcome.Header
	tampered.SetVersion(tampered.Version() ^ 0x00010000)
	require.ErrorIs(t, engine.VerifySeal(tampered, MaxTarget), ErrInvalidEmbedding)

	unsealed := outcome.Header
	unsealed.SetNonce(13)
	require.ErrorIs(t, engine.VerifySeal(unsealed, MaxTarget), ErrInvalidEmbedding)
}

func TestVerifySealFake(t *testing.T) {
	engine := NewFaker()
	defer engine.Close()
	require.NoError(t, engine.VerifySeal(testHeader(), Target{}))
}

func TestVerifySealCacheKeyedByTarget(t *testing.T) {
	engine := New(Config{CacheSize: 2, Log: log.NewNullLogger()})
	defer engine.Close()

	outcome := Search(testHeader(), MaxTarget, 0, 1, nil)
	require.NoError(t, engine.VerifySeal(outcome.Header, MaxTarget))
	require.ErrorIs(t, engine.VerifySeal(outcome.Header, Target{}), ErrInvalidPoW)
	require.NoError(t, engine.VerifySeal(outcome.Header, MaxTarget))
	require.Equal(t, 2, engine.verified.Len())
}
