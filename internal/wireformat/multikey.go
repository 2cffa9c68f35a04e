package wireformat

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// Multikey is an opaque, codec-tagged public key (spec.md §4.4 step 1).
type Multikey struct {
	codec uint64
	pub   *btcec.PublicKey
}

// DecodeMultikey decodes a multikey blob produced by EncodeMultikeySchnorr
// or EncodeMultikeyECDSA.
func DecodeMultikey(data []byte) (*Multikey, error) {
	codec, payload, err := splitCodec(data)
	if err != nil {
		return nil, fmt.Errorf("multikey: %w", err)
	}

	switch codec {
	case CodecSecp256k1Schnorr:
		// schnorr.ParsePubKey already fully validates the x-only key per
		// BIP340; no further on-curve check is needed here.
		pub, err := schnorr.ParsePubKey(payload)
		if err != nil {
			return nil, fmt.Errorf("multikey: schnorr pubkey: %w", err)
		}
		return &Multikey{codec: codec, pub: pub}, nil

	case CodecSecp256k1ECDSA:
		pub, err := btcec.ParsePubKey(payload)
		if err != nil {
			return nil, fmt.Errorf("multikey: ecdsa pubkey: %w", err)
		}
		return &Multikey{codec: codec, pub: pub}, nil

	default:
		return nil, fmt.Errorf("multikey: unsupported codec %#x", codec)
	}
}

// EncodeMultikeySchnorr serializes a schnorr (BIP340) public key into the
// multikey wire format.
func EncodeMultikeySchnorr(pub *btcec.PublicKey) []byte {
	return encodeCodec(CodecSecp256k1Schnorr, schnorr.SerializePubKey(pub))
}

// EncodeMultikeyECDSA serializes a compressed secp256k1 public key into
// the multikey wire format.
func EncodeMultikeyECDSA(pub *btcec.PublicKey) []byte {
	return encodeCodec(CodecSecp256k1ECDSA, pub.SerializeCompressed())
}

// Codec reports the multicodec tag mk was decoded with, letting callers
// apply codec-specific rules (e.g. BIP340's fixed 32-byte message) without
// reaching into Multikey's internals.
func (mk *Multikey) Codec() uint64 { return mk.codec }

// Verifier returns the verify capability spec.md §4.4 step 5 asks for:
// something that can check sig against msg under this key. The concrete
// verifier depends on the key's codec, mirroring how
// pkg/arkade/sigvalidate.go dispatches between keyspend and tapscript
// verifiers based on context.
func (mk *Multikey) Verifier(sig *Multisig) (Verifier, error) {
	if mk.codec != sig.codec {
		return nil, fmt.Errorf("multikey: codec mismatch: key %#x sig %#x", mk.codec, sig.codec)
	}
	switch mk.codec {
	case CodecSecp256k1Schnorr:
		return &schnorrVerifier{pub: mk.pub, sig: sig.schnorrSig}, nil
	case CodecSecp256k1ECDSA:
		return &ecdsaVerifier{pub: mk.pub, sig: sig.ecdsaSig}, nil
	default:
		return nil, fmt.Errorf("multikey: unsupported codec %#x", mk.codec)
	}
}
