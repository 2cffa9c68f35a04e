package wireformat

import (
	"testing"

	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
)

func TestMultihashHashWithSameCodecMatches(t *testing.T) {
	data := []byte("for great justice, move every zig!")

	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	require.NoError(t, err)

	stored, err := DecodeMultihash(sum)
	require.NoError(t, err)

	code, err := stored.Code()
	require.NoError(t, err)
	require.EqualValues(t, multihash.SHA2_256, code)

	candidate, err := stored.HashWithSameCodec(data)
	require.NoError(t, err)
	require.True(t, stored.Equal(candidate))
}

func TestMultihashMismatchOnWrongPreimage(t *testing.T) {
	sum, err := multihash.Sum([]byte("the real preimage"), multihash.SHA2_256, -1)
	require.NoError(t, err)

	stored, err := DecodeMultihash(sum)
	require.NoError(t, err)

	candidate, err := stored.HashWithSameCodec([]byte("a different value entirely"))
	require.NoError(t, err)
	require.False(t, stored.Equal(candidate))
}

func TestMultihashUsesStoredCodecNotADefault(t *testing.T) {
	data := []byte("codec sensitivity check")

	sha256Sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	require.NoError(t, err)
	sha512Sum, err := multihash.Sum(data, multihash.SHA2_512, -1)
	require.NoError(t, err)

	stored, err := DecodeMultihash(sha256Sum)
	require.NoError(t, err)

	other, err := DecodeMultihash(sha512Sum)
	require.NoError(t, err)

	require.False(t, stored.Equal(other), "same input, different codec tag, must compare unequal")

	candidate, err := other.HashWithSameCodec(data)
	require.NoError(t, err)
	require.True(t, other.Equal(candidate), "re-hashing must use the stored sha2-512 codec, not a sha2-256 default")
}
