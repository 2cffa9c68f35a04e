// Package wireformat implements the opaque, self-describing binary
// formats spec.md §1 and the glossary call multihash, multikey, and
// multisig: tag-length-value blobs the core treats as opaque except to
// request decode and verification. Multihash uses the upstream
// go-multihash hash codes; for multikey and multisig Comrade does not use
// the upstream multicodec table but assigns its own codec tags from the
// multicodec private-use range (0x300000+). It defers the actual hashing
// and signature math to real cryptographic libraries, following
// pkg/arkade/sigvalidate.go's parse-then-verify shape.
package wireformat

import (
	"github.com/multiformats/go-varint"
)

// Codec tags. Each multikey/multisig blob is [varint codec][payload].
const (
	// CodecSecp256k1Schnorr tags a 32-byte BIP340 x-only public key
	// (multikey) or a 64-byte schnorr signature (multisig).
	CodecSecp256k1Schnorr uint64 = 0x300001
	// CodecSecp256k1ECDSA tags a 33-byte compressed public key
	// (multikey) or a DER-encoded ECDSA signature (multisig).
	CodecSecp256k1ECDSA uint64 = 0x300002
)

// splitCodec reads the leading varint codec tag and returns it alongside
// the remaining payload.
func splitCodec(data []byte) (codec uint64, payload []byte, err error) {
	codec, n, err := varint.FromUvarint(data)
	if err != nil {
		return 0, nil, err
	}
	return codec, data[n:], nil
}

// encodeCodec prepends a varint codec tag to payload.
func encodeCodec(codec uint64, payload []byte) []byte {
	prefix := varint.ToUvarint(codec)
	out := make([]byte, 0, len(prefix)+len(payload))
	out = append(out, prefix...)
	out = append(out, payload...)
	return out
}
