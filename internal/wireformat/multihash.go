package wireformat

import (
	"bytes"
	"fmt"

	"github.com/multiformats/go-multihash"
)

// Multihash wraps github.com/multiformats/go-multihash's self-describing
// digest format: a codec-tagged hash spec.md §4.4 step 1 decodes from
// current, then re-derives (step 4) from the witness to compare (step 5).
type Multihash struct {
	raw multihash.Multihash
}

// DecodeMultihash parses a multihash blob, carrying its codec identifier.
func DecodeMultihash(data []byte) (*Multihash, error) {
	mh, err := multihash.Cast(data)
	if err != nil {
		return nil, fmt.Errorf("multihash: %w", err)
	}
	return &Multihash{raw: mh}, nil
}

// Code returns the multicodec hash function identifier this multihash was
// produced with (e.g. multihash.SHA2_256).
func (h *Multihash) Code() (uint64, error) {
	decoded, err := multihash.Decode(h.raw)
	if err != nil {
		return 0, fmt.Errorf("multihash: %w", err)
	}
	return decoded.Code, nil
}

// HashWithSameCodec hashes data using this multihash's own codec,
// producing a second multihash (spec.md §4.4 step 4).
func (h *Multihash) HashWithSameCodec(data []byte) (*Multihash, error) {
	code, err := h.Code()
	if err != nil {
		return nil, err
	}
	sum, err := multihash.Sum(data, code, -1)
	if err != nil {
		return nil, fmt.Errorf("multihash: sum: %w", err)
	}
	return &Multihash{raw: sum}, nil
}

// Equal reports structural equality, including the codec tag (spec.md
// §4.4 step 5).
func (h *Multihash) Equal(other *Multihash) bool {
	return bytes.Equal([]byte(h.raw), []byte(other.raw))
}

// Bytes returns the raw encoded multihash.
func (h *Multihash) Bytes() []byte {
	return []byte(h.raw)
}
