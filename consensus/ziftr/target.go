package ziftr

import (
	"encoding/binary"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/dominant-strategies/go-ziftr/common"
)

const (
	// TargetWords is the number of 32-bit words in a target.
	TargetWords = 8
	// TargetLength is the size of a target in bytes.
	TargetLength = TargetWords * 4
)

// Target is a 256-bit ceiling as eight words, word 7 most significant.
type Target [TargetWords]uint32

// MaxTarget is satisfied by every digest.
var MaxTarget = Target{
	0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF,
	0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF, 0xFFFFFFFF,
}

// TargetFromBytes decodes a 32-byte big-endian number.
func TargetFromBytes(b []byte) (Target, error) {
	var t Target
	if len(b) != TargetLength {
		return t, errors.Wrapf(ErrInvalidInput, "target has %d bytes, want %d", len(b), TargetLength)
	}
	for i := range t {
		t[i] = binary.BigEndian.Uint32(b[TargetLength-4*(i+1):])
	}
	return t, nil
}

// TargetFromHex decodes a big-endian hex number of at most 32 bytes.
func TargetFromHex(s string) (Target, error) {
	b, err := common.FromHex(s)
	if err != nil {
		return Target{}, errors.Wrap(ErrInvalidInput, err.Error())
	}
	if len(b) > TargetLength {
		return Target{}, errors.Wrapf(ErrInvalidInput, "target has %d bytes, want at most %d", len(b), TargetLength)
	}
	padded := make([]byte, TargetLength)
	copy(padded[TargetLength-len(b):], b)
	return TargetFromBytes(padded)
}

// TargetFromUint256 converts a numeric target.
func TargetFromUint256(x *uint256.Int) Target {
	b := x.Bytes32()
	t, _ := TargetFromBytes(b[:])
	return t
}

// TargetFromDifficulty returns (2^256-1)/difficulty. Difficulties 0 and 1
// both map to MaxTarget.
func TargetFromDifficulty(difficulty uint64) Target {
	if difficulty <= 1 {
		return MaxTarget
	}
	ceil := new(uint256.Int).SetAllOne()
	return TargetFromUint256(ceil.Div(ceil, uint256.NewInt(difficulty)))
}

// Bytes encodes the target as a 32-byte big-endian number.
func (t *Target) Bytes() [TargetLength]byte {
	var b [TargetLength]byte
	for i, w := range t {
		binary.BigEndian.PutUint32(b[TargetLength-4*(i+1):], w)
	}
	return b
}

func (t *Target) Hex() string {
	b := t.Bytes()
	return common.BytesToHex(b[:])
}

func (t *Target) Uint256() *uint256.Int {
	b := t.Bytes()
	return new(uint256.Int).SetBytes32(b[:])
}

// quickTest compares only the most significant words. It never rejects a
// digest that fullTest accepts.
func quickTest(d *Digest, t *Target) bool {
	return d.Word(TargetWords-1) <= t[TargetWords-1]
}

// fullTest reports whether the visible digest is numerically <= t, comparing
// unsigned words from most to least significant.
func fullTest(d *Digest, t *Target) bool {
	for i := TargetWords - 1; i >= 0; i-- {
		w := d.Word(i)
		if w > t[i] {
			return false
		}
		if w < t[i] {
			return true
		}
	}
	return true
}

// MeetsTarget reports whether d satisfies t.
func MeetsTarget(d *Digest, t *Target) bool {
	return quickTest(d, t) && fullTest(d, t)
}

// MarshalText encodes the target as big-endian hex.
func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.Hex()), nil
}

// UnmarshalText decodes a big-endian hex target.
func (t *Target) UnmarshalText(input []byte) error {
	decoded, err := TargetFromHex(string(input))
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}
