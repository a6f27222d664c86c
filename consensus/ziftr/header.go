package ziftr

import (
	"encoding/binary"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/dominant-strategies/go-ziftr/common"
)

const (
	// HeaderWords is the number of 32-bit words in a block header.
	HeaderWords = 20
	// HeaderLength is the serialized header size in bytes.
	HeaderLength = HeaderWords * 4

	versionWord = 0
	nonceWord   = HeaderWords - 1

	// DataMask covers the version bits filled from the kernel pass.
	DataMask uint32 = 0xFFFF0000
	// KernelFlagMask is reserved in the version word and never set by the
	// search. It is exposed for callers only.
	KernelFlagMask uint32 = 0x00008000
)

// ErrInvalidInput is returned for headers, targets or hashes of the wrong size.
var ErrInvalidInput = errors.New("invalid input")

// Header is an 80-byte block header as twenty little-endian words. Word 0 is
// the version and word 19 the nonce; the words in between are opaque.
type Header [HeaderWords]uint32

// HeaderFromBytes decodes an 80-byte serialized header.
func HeaderFromBytes(b []byte) (Header, error) {
	var h Header
	if len(b) != HeaderLength {
		return h, pkgerrors.Wrapf(ErrInvalidInput, "header has %d bytes, want %d", len(b), HeaderLength)
	}
	for i := range h {
		h[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return h, nil
}

// HeaderFromHex decodes a hex encoded serialized header.
func HeaderFromHex(s string) (Header, error) {
	b, err := common.FromHex(s)
	if err != nil {
		return Header{}, pkgerrors.Wrap(ErrInvalidInput, err.Error())
	}
	return HeaderFromBytes(b)
}

// Bytes serializes the header. These are the exact bytes that get hashed.
func (h *Header) Bytes() [HeaderLength]byte {
	var b [HeaderLength]byte
	for i, w := range h {
		binary.LittleEndian.PutUint32(b[4*i:], w)
	}
	return b
}

// Hex returns the serialized header as 0x-prefixed hex.
func (h *Header) Hex() string {
	b := h.Bytes()
	return common.BytesToHex(b[:])
}

// Version returns word 0, including any embedded data bits.
func (h *Header) Version() uint32 { return h[versionWord] }

// SetVersion overwrites word 0.
func (h *Header) SetVersion(v uint32) { h[versionWord] = v }

// Nonce returns word 19.
func (h *Header) Nonce() uint32 { return h[nonceWord] }

// SetNonce overwrites word 19.
func (h *Header) SetNonce(n uint32) { h[nonceWord] = n }

// BaseVersion is the version with the embedded data bits cleared.
func (h *Header) BaseVersion() uint32 { return h[versionWord] &^ DataMask }

// EmbeddedData returns the bits of the version covered by DataMask.
func (h *Header) EmbeddedData() uint32 { return h[versionWord] & DataMask }

// KernelFlag reports whether the reserved kernel-valid bit is set.
func (h *Header) KernelFlag() bool { return h[versionWord]&KernelFlagMask != 0 }

// MarshalText encodes the header as hex.
func (h Header) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText decodes a hex encoded header.
func (h *Header) UnmarshalText(input []byte) error {
	decoded, err := HeaderFromHex(string(input))
	if err != nil {
		return err
	}
	*h = decoded
	return nil
}
