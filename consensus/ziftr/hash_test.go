package ziftr

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func testHeader() Header {
	var header Header
	header.SetVersion(0x00000001)
	return header
}

func TestPrimitiveKnownAnswers(t *testing.T) {
	cases := []struct {
		primitive Primitive
		empty     string
		abc       string
	}{
		{
			blake512,
			"a8cfbbd73726062df0c6864dda65defe58ef0cc52a5625090fa17601e1eecd1b628e94f396ae402a00acc9eab77b4d4c2e852aaaa25a636d80af3fc7913ef5b8",
			"14266c7c704a3b58fb421ee69fd005fcc6eeff742136be67435df995b7c986e7cbde4dbde135e7689c354d2bc5b8d260536c554b4f84c118e61efc576fed7cd3",
		},
		{
			groestl512,
			"6d3ad29d279110eef3adbd66de2a0345a77baede1557f5d099fce0c03d6dc2ba8e6d4a6633dfbd66053c20faa87d1a11f39a7fbe4a6c2f009801370308fc4ad8",
			"70e1c68c60df3b655339d67dc291cc3f1dde4ef343f11b23fdd44957693815a75a8339c682fc28322513fd1f283c18e53cff2b264e06bf83a2f0ac8c1f6fbff6",
		},
		{
			jh512,
			"90ecf2f76f9d2c8017d979ad5ab96b87d58fc8fc4b83060f3f900774faa2c8fabe69c5f4ff1ec2b61d6b316941cedee117fb04b1f4c5bc1b919ae841c50eec4f",
			"a05eab9c641cb901107d9880bcdf0eedb19b0073188896365921bd200225d9176cf136e7af90d67bdb05dfa3037e48b757d23a905b2270db67255b9eca982973",
		},
		{
			skein512,
			"bc5b4c50925519c290cc634277ae3d6257212395cba733bbad37a4af0fa06af41fca7903d06564fea7a2d3730dbdb80c1f85562dfcc070334ea4d1d9e72cba7a",
			"8f5dd9ec798152668e35129496b029a960c9a9b88662f7f9482f110b31f9f93893ecfb25c009baad9e46737197d5630379816a886aa05526d3a70df272d96e75",
		},
		{
			keccak512,
			"0eab42de4c3ceb9235fc91acffe746b29c29a8c366b7c60e4e67c466f36a4304c00fa9caf9d87976ba469bcbe06713b435f091ef2769fb160cdab33d3670680e",
			"18587dc2ea106b9a1563e32b3312421ca164c7f1f07bc922a9c83d77cea3a1e5d0c69910739025372dc14ac9642629379540c17e2a65b19d77aa511a9d00bb96",
		},
	}
	for _, c := range cases {
		var out [DigestLength]byte
		c.primitive.Sum512(&out, nil)
		require.Equal(t, c.empty, hex.EncodeToString(out[:]), "%s(\"\")", c.primitive.Name())
		c.primitive.Sum512(&out, []byte("abc"))
		require.Equal(t, c.abc, hex.EncodeToString(out[:]), "%s(\"abc\")", c.primitive.Name())
	}
}

func TestPrimitivesAreDistinctAndDeterministic(t *testing.T) {
	input := []byte("ziftr primitive input")
	outputs := make(map[[DigestLength]byte]string)
	for _, p := range append(chain[:], keccak512) {
		var a, b [DigestLength]byte
		p.Sum512(&a, input)
		p.Sum512(&b, input)
		require.Equal(t, a, b, p.Name())
		require.NotEqual(t, [DigestLength]byte{}, a, p.Name())
		_, dup := outputs[a]
		require.False(t, dup, "%s collides with %s", p.Name(), outputs[a])
		outputs[a] = p.Name()
	}
}

func TestSum512InPlace(t *testing.T) {
	for _, p := range chain {
		var src, aliased, separate [DigestLength]byte
		for i := range src {
			src[i] = byte(i)
		}
		aliased = src
		p.Sum512(&aliased, aliased[:])
		p.Sum512(&separate, src[:])
		require.Equal(t, separate, aliased, p.Name())
	}
}

func TestCombineFollowsSelectedOrder(t *testing.T) {
	header := testHeader()
	header.SetNonce(42)
	input := header.Bytes()

	var running [DigestLength]byte
	keccak512.Sum512(&running, input[:])
	seed := Digest(running)
	for _, id := range OrderAt(OrderIndex(&seed)) {
		var next [DigestLength]byte
		chain[id].Sum512(&next, running[:])
		running = next
	}
	require.Equal(t, Digest(running), Combine(&header))
	require.Equal(t, OrderIndex(&seed), OrderOf(&header))
}

func TestCombineKnownAnswer(t *testing.T) {
	header := testHeader()
	require.Equal(t, 1, OrderOf(&header))
	digest := Combine(&header)
	require.Equal(t,
		"c177e73140002b7aeb88cc97e31c1cb17ce70525e7cb5b09666369b8300932e4"+
			"bf40f4de091a828bb9e4f8d7fe5ef99c5bdd40204757ad768dbef3d8fdba2abe",
		hex.EncodeToString(digest[:]))

	header.SetNonce(42)
	require.Equal(t, 6, OrderOf(&header))
	digest = Combine(&header)
	require.Equal(t,
		"2eaa7223694ac94e54d47d38db190e75b0aa2d4034dcfb8ed0fba6e6ef9a55d7"+
			"c92b43bd7bba54fa1704687b43e147b3f8b262f99abf64ececee989e6d0fd8b1",
		hex.EncodeToString(digest[:]))
}

func TestCombineDeterministic(t *testing.T) {
	header := testHeader()
	header[5] = 0xdeadbeef
	first := Combine(&header)
	for i := 0; i < 3; i++ {
		other := testHeader()
		Combine(&other) // unrelated call in between
		require.Equal(t, first, Combine(&header))
	}
	b := header.Bytes()
	fromBytes, err := CombineBytes(b[:])
	require.NoError(t, err)
	require.Equal(t, first, fromBytes)
}

func TestCombineDoesNotMutate(t *testing.T) {
	header := testHeader()
	header.SetNonce(99)
	before := header
	Combine(&header)
	require.Equal(t, before, header)
}

func TestCombineNonceAvalanche(t *testing.T) {
	header := testHeader()
	header.SetNonce(0x12345678)
	base := Combine(&header)
	for bit := 0; bit < 32; bit++ {
		flipped := header
		flipped.SetNonce(header.Nonce() ^ 1<<bit)
		digest := Combine(&flipped)
		require.NotEqual(t, base, digest, "flipping nonce bit %d left the digest unchanged", bit)
		require.NotEqual(t, base.Hash(), digest.Hash(), "bit %d", bit)
	}
}

func TestCombineBytesInvalidLength(t *testing.T) {
	for _, n := range []int{0, 79, 81, 160} {
		_, err := CombineBytes(make([]byte, n))
		require.ErrorIs(t, err, ErrInvalidInput, "length %d", n)
	}
}

func TestDigestWords(t *testing.T) {
	var d Digest
	d[0], d[1], d[2], d[3] = 0x01, 0x02, 0x03, 0x04
	d[28], d[31] = 0xff, 0x80
	require.Equal(t, uint32(0x04030201), d.Word(0))
	require.Equal(t, uint32(0x800000ff), d.Word(7))
	words := d.Words()
	require.Equal(t, d.Word(0), words[0])
	require.Equal(t, d.Word(15), words[15])

	h := d.Hash()
	require.Equal(t, d[:32], h.Bytes())
	n := d.Uint256()
	b := n.Bytes32()
	require.Equal(t, byte(0x80), b[0])
	require.Equal(t, byte(0x01), b[31])
}
