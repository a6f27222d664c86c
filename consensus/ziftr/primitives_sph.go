package ziftr

import (
	"github.com/bitbandi/go-x11/blake"
	"github.com/bitbandi/go-x11/groest"
	"github.com/bitbandi/go-x11/jhash"
	"github.com/bitbandi/go-x11/skein"
)

// sphDigest is the subset of the go-x11 digest API used here. Close writes the
// final hash into dst and resets the digest.
type sphDigest interface {
	Write(p []byte) (int, error)
	Close(dst []byte, bits uint8, bcnt uint8) error
}

type sphPrimitive struct {
	name string
	new  func() sphDigest
}

func (p sphPrimitive) Name() string { return p.name }

func (p sphPrimitive) Sum512(dst *[DigestLength]byte, data []byte) {
	d := p.new()
	d.Write(data)
	d.Close(dst[:], 0, 0)
}

var (
	blake512   Primitive = sphPrimitive{"blake512", func() sphDigest { return blake.New() }}
	groestl512 Primitive = sphPrimitive{"groestl512", func() sphDigest { return groest.New() }}
	jh512      Primitive = sphPrimitive{"jh512", func() sphDigest { return jhash.New() }}
	skein512   Primitive = sphPrimitive{"skein512", func() sphDigest { return skein.New() }}
)
