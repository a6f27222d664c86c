//go:build x11keccak

package ziftr

import "github.com/bitbandi/go-x11/keccak"

// keccak512 is the sphlib Keccak-512, bit-identical to the default
// golang.org/x/crypto build.
var keccak512 Primitive = sphPrimitive{"keccak512", func() sphDigest { return keccak.New() }}
