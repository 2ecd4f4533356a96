// Package domain defines the core models for field-level envelope encryption.
//
// A protected field holds either staging plaintext (not yet sealed) or a
// sealed record: a versioned AEAD ciphertext bound to the key that produced
// it. Keys are named by an opaque key id and fetched from an external
// transit-style key service.
package domain

import (
	"encoding/hex"
	"fmt"
)

// Scheme represents the AEAD scheme used to seal a value.
//
// Both schemes provide authenticated encryption with associated data using
// 256-bit keys, 12-byte nonces and 16-byte authentication tags. The scheme
// is recorded in the sealed record's version byte so records sealed under
// either scheme can always be unsealed.
type Scheme string

const (
	// AESGCM is the AES-256-GCM scheme, recorded as version 1.
	// Preferred on CPUs with AES-NI hardware acceleration.
	AESGCM Scheme = "aes-gcm"

	// ChaCha20 is the ChaCha20-Poly1305 scheme, recorded as version 2.
	// Preferred on platforms without AES hardware acceleration.
	ChaCha20 Scheme = "chacha20-poly1305"
)

// Sealed record version bytes. The version identifies the AEAD scheme used
// to produce the record.
const (
	VersionAESGCM   uint8 = 1
	VersionChaCha20 uint8 = 2
)

const (
	// KeySize is the required key material length in bytes (256 bits).
	KeySize = 32

	// IVSize is the AEAD nonce length in bytes.
	IVSize = 12

	// TagSize is the AEAD authentication tag length in bytes.
	TagSize = 16

	// MaskedValue is returned by unseal in place of plaintext when
	// decryption is impossible. Readers cannot distinguish the failure
	// cause from this output.
	MaskedValue = "****"
)

// Version returns the sealed record version byte for the scheme.
func (s Scheme) Version() (uint8, error) {
	switch s {
	case AESGCM:
		return VersionAESGCM, nil
	case ChaCha20:
		return VersionChaCha20, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedScheme, string(s))
	}
}

// ParseScheme converts a string to a Scheme.
// Returns ErrUnsupportedScheme if the value is not a known scheme.
func ParseScheme(s string) (Scheme, error) {
	switch s {
	case string(AESGCM):
		return AESGCM, nil
	case string(ChaCha20):
		return ChaCha20, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, s)
	}
}

// KeyContext derives the associated-data string binding a ciphertext to the
// logical field domain of its key. It is recomputed per operation and never
// stored. Binding the context prevents an attacker from substituting
// ciphertexts between columns or rows that happen to share a key.
func KeyContext(keyID []byte) string {
	return "col:piitext:id:" + hex.EncodeToString(keyID)
}
