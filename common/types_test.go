package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToHash(t *testing.T) {
	h, err := HexToHash("0x00000000000000000000000000000000000000000000000000000000000000ff")
	require.NoError(t, err)
	assert.Equal(t, byte(0xff), h[31])
	assert.Equal(t, "0x00000000000000000000000000000000000000000000000000000000000000ff", h.Hex())

	_, err = HexToHash("0xabcd")
	require.ErrorIs(t, err, ErrInvalidHex)

	_, err = HexToHash("zz")
	require.ErrorIs(t, err, ErrInvalidHex)
}

func TestFromHexOddLength(t *testing.T) {
	b, err := FromHex("0xabc")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0a, 0xbc}, b)
}

func TestBytesToHashCrops(t *testing.T) {
	b := make([]byte, 40)
	b[39] = 1
	b[0] = 9
	h := BytesToHash(b)
	assert.Equal(t, byte(1), h[31])
	assert.Equal(t, byte(0), h[0])
}

func TestPrettyFormatting(t *testing.T) {
	assert.Equal(t, "1.234s", PrettyDuration(1234567890*time.Nanosecond).String())
	assert.Equal(t, "999.00 H/s", PrettyHashrate(999).String())
	assert.Equal(t, "1.50 kH/s", PrettyHashrate(1500).String())
	assert.Equal(t, "2.00 MH/s", PrettyHashrate(2e6).String())
}
