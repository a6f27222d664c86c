package ziftr

import "fmt"

// DigestLength is the output size of every primitive in the cascade.
const DigestLength = 64

// Primitive is a fixed-output 512-bit hash function. Each Sum512 call runs a
// complete init, update, finalize cycle; data may alias dst.
type Primitive interface {
	Name() string
	Sum512(dst *[DigestLength]byte, data []byte)
}

// PrimitiveID identifies one of the four chained primitives.
type PrimitiveID uint8

const (
	Blake PrimitiveID = iota
	Groestl
	JH
	Skein

	numPrimitives = 4
)

func (id PrimitiveID) String() string {
	if int(id) < numPrimitives {
		return chain[id].Name()
	}
	return fmt.Sprintf("primitive(%d)", uint8(id))
}

// chain is indexed by PrimitiveID. keccak seeds the cascade and is not part of
// the permutation. Both are bound at build time, see primitives_*.go.
var chain = [numPrimitives]Primitive{
	Blake:   blake512,
	Groestl: groestl512,
	JH:      jh512,
	Skein:   skein512,
}
