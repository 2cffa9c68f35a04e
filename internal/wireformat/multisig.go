package wireformat

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// Multisig is an opaque, codec-tagged signature (spec.md §4.4 step 4).
type Multisig struct {
	codec      uint64
	schnorrSig *schnorr.Signature
	ecdsaSig   *ecdsa.Signature
}

// DecodeMultisig decodes a multisig blob produced by EncodeMultisig*.
func DecodeMultisig(data []byte) (*Multisig, error) {
	codec, payload, err := splitCodec(data)
	if err != nil {
		return nil, fmt.Errorf("multisig: %w", err)
	}

	switch codec {
	case CodecSecp256k1Schnorr:
		sig, err := schnorr.ParseSignature(payload)
		if err != nil {
			return nil, fmt.Errorf("multisig: schnorr signature: %w", err)
		}
		return &Multisig{codec: codec, schnorrSig: sig}, nil

	case CodecSecp256k1ECDSA:
		sig, err := ecdsa.ParseDERSignature(payload)
		if err != nil {
			return nil, fmt.Errorf("multisig: ecdsa signature: %w", err)
		}
		return &Multisig{codec: codec, ecdsaSig: sig}, nil

	default:
		return nil, fmt.Errorf("multisig: unsupported codec %#x", codec)
	}
}

// EncodeMultisigSchnorr serializes a BIP340 schnorr signature into the
// multisig wire format.
func EncodeMultisigSchnorr(sig *schnorr.Signature) []byte {
	return encodeCodec(CodecSecp256k1Schnorr, sig.Serialize())
}

// EncodeMultisigECDSA serializes a DER-encoded ECDSA signature into the
// multisig wire format.
func EncodeMultisigECDSA(sig *ecdsa.Signature) []byte {
	return encodeCodec(CodecSecp256k1ECDSA, sig.Serialize())
}

// Verifier is the abstraction over the type of signature verification
// being executed, generalized from pkg/arkade/sigvalidate.go's
// signatureVerifier interface from "taproot witness spend" to "opaque
// multikey/multisig pair".
type Verifier interface {
	// Verify returns whether the verifier deems the signature valid for
	// the given message digest.
	Verify(message []byte) VerifyResult
}

// VerifyResult reports the outcome of signature verification, mirroring
// sigvalidate.go's verifyResult.
type VerifyResult struct {
	Valid bool
}
