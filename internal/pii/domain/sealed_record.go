package domain

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// sealedMagic marks the binary encoding of a sealed record. 0xFF can never
// begin well-formed UTF-8 text, so staging plaintext can never collide with
// the sealed encoding.
var sealedMagic = []byte{0xff, 0x70}

// SealedRecord is the ciphertext form of a protected field: a versioned
// AEAD ciphertext together with the id of the key that sealed it.
//
// Invariants: Version identifies the AEAD scheme, IV is unique per
// encryption under a given key and exactly 12 bytes, Tag is exactly
// 16 bytes, and Ciphertext has the same length as the plaintext (the
// schemes are stream ciphers).
//
// The wire form is the two-byte sealed marker followed by a CBOR map with
// short field tags.
type SealedRecord struct {
	Version    uint8  `cbor:"v"`
	KeyID      []byte `cbor:"k"`
	IV         []byte `cbor:"i"`
	Tag        []byte `cbor:"t"`
	Ciphertext []byte `cbor:"c"`
}

// Validate checks the structural invariants of the record.
func (r SealedRecord) Validate() error {
	if r.Version != VersionAESGCM && r.Version != VersionChaCha20 {
		return fmt.Errorf("%w: unknown version %d", ErrMalformedRecord, r.Version)
	}
	if len(r.KeyID) == 0 {
		return fmt.Errorf("%w: empty key id", ErrMalformedRecord)
	}
	if len(r.IV) != IVSize {
		return fmt.Errorf("%w: iv must be %d bytes, got %d", ErrMalformedRecord, IVSize, len(r.IV))
	}
	if len(r.Tag) != TagSize {
		return fmt.Errorf("%w: tag must be %d bytes, got %d", ErrMalformedRecord, TagSize, len(r.Tag))
	}
	return nil
}

// Encode serializes the record to its binary form.
// A serialization failure is an unrecoverable internal error, not something
// a caller can trigger under normal operation.
func (r SealedRecord) Encode() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	body, err := cbor.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sealed record: %w", err)
	}

	out := make([]byte, 0, len(sealedMagic)+len(body))
	out = append(out, sealedMagic...)
	out = append(out, body...)
	return out, nil
}

// String renders the record for debug inspection. Key material never
// appears here; ciphertext is reported by length only.
func (r SealedRecord) String() string {
	return fmt.Sprintf(
		"Sealed{version: %d, key_id: %x, iv: %x, tag: %x, ciphertext: %d bytes}",
		r.Version, r.KeyID, r.IV, r.Tag, len(r.Ciphertext),
	)
}

// decodeSealedRecord parses bytes produced by Encode. The input must carry
// the sealed marker.
func decodeSealedRecord(raw []byte) (SealedRecord, error) {
	var record SealedRecord
	if err := cbor.Unmarshal(raw[len(sealedMagic):], &record); err != nil {
		return SealedRecord{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if err := record.Validate(); err != nil {
		return SealedRecord{}, err
	}
	return record, nil
}

// hasSealedMagic reports whether raw begins with the sealed marker.
func hasSealedMagic(raw []byte) bool {
	return bytes.HasPrefix(raw, sealedMagic)
}
