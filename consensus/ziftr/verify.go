package ziftr

import (
	"errors"
	"fmt"

	"github.com/dominant-strategies/go-ziftr/common"
)

var (
	// ErrInvalidEmbedding is returned when the version word does not carry the
	// data bits of its own kernel pass.
	ErrInvalidEmbedding = errors.New("invalid kernel data embedding")
	// ErrInvalidPoW is returned when the final digest exceeds the target.
	ErrInvalidPoW = errors.New("invalid proof-of-work")
)

type sealKey [HeaderLength + TargetLength]byte

func newSealKey(header *Header, target *Target) sealKey {
	var key sealKey
	h, t := header.Bytes(), target.Bytes()
	copy(key[:], h[:])
	copy(key[HeaderLength:], t[:])
	return key
}

// VerifySeal checks that header is a valid solution for target: its embedded
// data must match the kernel pass of its base header and its final digest must
// meet the target. Results are cached.
func (ziftr *Ziftr) VerifySeal(header Header, target Target) error {
	if ziftr.config.PowMode == ModeFake {
		return nil
	}
	key := newSealKey(&header, &target)
	if err, ok := ziftr.verified.Get(key); ok {
		return err
	}
	err := verifySeal(header, target)
	ziftr.verified.Add(key, err)
	return err
}

func verifySeal(header Header, target Target) error {
	work := header
	work.SetVersion(header.BaseVersion())
	digest := prove(&work)
	if work.Version() != header.Version() {
		return fmt.Errorf("%w: have %#08x, want %#08x", ErrInvalidEmbedding, header.EmbeddedData(), work.EmbeddedData())
	}
	if !MeetsTarget(&digest, &target) {
		return fmt.Errorf("%w: hash %s above target %s", ErrInvalidPoW, digest.Hash(), target.Hex())
	}
	return nil
}

// ProofHash returns the visible final digest of a sealed header.
func ProofHash(header Header) common.Hash {
	digest := Combine(&header)
	return digest.Hash()
}
