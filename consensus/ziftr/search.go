package ziftr

import (
	"fmt"
	"sync/atomic"

	"github.com/dominant-strategies/go-ziftr/common"
)

// Status is the terminal state of a nonce search.
type Status uint8

const (
	Exhausted Status = iota
	Found
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Exhausted:
		return "exhausted"
	case Found:
		return "found"
	case Cancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Outcome is the result of one Search call. Header, Nonce and Hash are only
// meaningful when Status is Found.
type Outcome struct {
	Status          Status
	Header          Header
	Nonce           uint32
	Hash            common.Hash
	HashesAttempted uint64
}

// Search enumerates nonces in [nonceStart, nonceMax) over a copy of header and
// returns the first one whose final digest meets target.
//
// Every candidate is hashed twice. The kernel pass runs over the header with
// the embedded data bits cleared; the high half of its first word is then
// written into the version and the final pass is compared against the target.
// cancel is polled once per nonce, never during a hash, and may be nil.
func Search(header Header, target Target, nonceStart, nonceMax uint32, cancel *atomic.Bool) Outcome {
	version := header.BaseVersion()
	for nonce := nonceStart; ; nonce++ {
		attempted := uint64(nonce - nonceStart)
		if cancel != nil && cancel.Load() {
			return Outcome{Status: Cancelled, HashesAttempted: attempted}
		}
		if nonce >= nonceMax {
			return Outcome{Status: Exhausted, HashesAttempted: attempted}
		}
		header.SetNonce(nonce)
		header.SetVersion(version)
		digest := prove(&header)

		if quickTest(&digest, &target) && fullTest(&digest, &target) {
			return Outcome{
				Status:          Found,
				Header:          header,
				Nonce:           nonce,
				Hash:            digest.Hash(),
				HashesAttempted: attempted + 1,
			}
		}
	}
}

// prove runs the kernel pass, embeds its data bits into the version word of
// work and returns the final pass. The version of work must not carry
// embedded data on entry.
func prove(work *Header) Digest {
	version := work.Version()
	kernel := Combine(work)
	work.SetVersion(version | kernel.Word(0)&DataMask)
	return Combine(work)
}

// KernelData returns the bits the kernel pass embeds for header, computed on
// its base version.
func KernelData(header Header) uint32 {
	header.SetVersion(header.BaseVersion())
	kernel := Combine(&header)
	return kernel.Word(0) & DataMask
}
