package wireformat

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// schnorrVerifier verifies a BIP340 schnorr signature against a message
// digest, following pkg/arkade/sigvalidate.go's taprootSigVerifier.verifySig.
type schnorrVerifier struct {
	pub *btcec.PublicKey
	sig *schnorr.Signature
}

func (v *schnorrVerifier) Verify(message []byte) VerifyResult {
	return VerifyResult{Valid: v.sig.Verify(message, v.pub)}
}

// ecdsaVerifier verifies a DER-encoded ECDSA signature against a message
// digest.
type ecdsaVerifier struct {
	pub *btcec.PublicKey
	sig interface {
		Verify(hash []byte, pub *btcec.PublicKey) bool
	}
}

func (v *ecdsaVerifier) Verify(message []byte) VerifyResult {
	return VerifyResult{Valid: v.sig.Verify(message, v.pub)}
}
