//go:build !x11keccak

package ziftr

import "golang.org/x/crypto/sha3"

type legacyKeccak struct{}

func (legacyKeccak) Name() string { return "keccak512" }

func (legacyKeccak) Sum512(dst *[DigestLength]byte, data []byte) {
	h := sha3.NewLegacyKeccak512()
	h.Write(data)
	h.Sum(dst[:0])
}

// keccak512 is the original (pre-FIPS 202 padding) Keccak-512.
var keccak512 Primitive = legacyKeccak{}
