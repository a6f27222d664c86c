package ziftr

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dominant-strategies/go-ziftr/common"
)

// Digest is the full 512-bit output of the cascade. Only the first 32 bytes
// are compared against a target.
type Digest [DigestLength]byte

// Word returns the i-th little-endian 32-bit word of the digest.
func (d *Digest) Word(i int) uint32 {
	return binary.LittleEndian.Uint32(d[4*i:])
}

// Words returns the digest as sixteen little-endian words.
func (d *Digest) Words() [DigestLength / 4]uint32 {
	var w [DigestLength / 4]uint32
	for i := range w {
		w[i] = d.Word(i)
	}
	return w
}

// Hash returns the externally visible proof hash.
func (d *Digest) Hash() common.Hash {
	return common.BytesToHash(d[:common.HashLength])
}

// Uint256 returns the numeric value of the proof hash, word 7 most significant.
func (d *Digest) Uint256() *uint256.Int {
	var be [common.HashLength]byte
	for i := 0; i < common.HashLength; i++ {
		be[i] = d[common.HashLength-1-i]
	}
	return new(uint256.Int).SetBytes32(be[:])
}

// Combine runs the cascade over the serialized header: Keccak-512 seeds the
// running value and picks the order, then each of the four primitives is
// applied once, in that order, to the previous 64-byte output.
func Combine(header *Header) Digest {
	input := header.Bytes()
	return combine(input[:])
}

// CombineBytes is Combine over a serialized 80-byte header.
func CombineBytes(input []byte) (Digest, error) {
	if len(input) != HeaderLength {
		return Digest{}, errors.Wrapf(ErrInvalidInput, "header has %d bytes, want %d", len(input), HeaderLength)
	}
	return combine(input), nil
}

// OrderOf reports the order index the cascade selects for header.
func OrderOf(header *Header) int {
	input := header.Bytes()
	var seed Digest
	keccak512.Sum512((*[DigestLength]byte)(&seed), input[:])
	return OrderIndex(&seed)
}

func combine(input []byte) Digest {
	var running Digest
	keccak512.Sum512((*[DigestLength]byte)(&running), input)

	for _, id := range orders[OrderIndex(&running)] {
		chain[id].Sum512((*[DigestLength]byte)(&running), running[:])
	}
	return running
}
