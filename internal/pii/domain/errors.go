package domain

import (
	"github.com/allisson/piivault/internal/errors"
)

// Envelope encryption error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic and key-service failures. All errors
// are mapped to appropriate HTTP status codes by the error handling layer.
var (
	// ErrUnsupportedScheme indicates the requested AEAD scheme or sealed
	// record version is not supported. Only AES-256-GCM (version 1) and
	// ChaCha20-Poly1305 (version 2) are defined.
	ErrUnsupportedScheme = errors.Wrap(errors.ErrInvalidInput, "unsupported encryption scheme")

	// ErrInvalidKeySize indicates the key material is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidKeyMaterial indicates the key service returned material
	// that could not be decoded or has the wrong length.
	ErrInvalidKeyMaterial = errors.Wrap(errors.ErrInvalidInput, "invalid key material")

	// ErrMalformedRecord indicates bytes carrying the sealed marker could
	// not be parsed into a structurally valid sealed record.
	ErrMalformedRecord = errors.Wrap(errors.ErrInvalidInput, "malformed sealed record")

	// ErrDecryptionFailed indicates authenticated decryption failed.
	//
	// Tampering, a wrong key and a wrong context are deliberately
	// indistinguishable through this error to prevent information leakage.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrInvalidPlaintext indicates decryption succeeded but the recovered
	// bytes are not valid UTF-8 text.
	ErrInvalidPlaintext = errors.Wrap(errors.ErrInvalidInput, "plaintext is not valid utf-8")

	// ErrMissingVaultConfig indicates a required key service setting
	// (URL or token) is absent while not running in mock mode.
	ErrMissingVaultConfig = errors.Wrap(errors.ErrInvalidInput, "vault configuration missing")

	// ErrKeyService indicates the key service could not satisfy a fetch:
	// transport failure, non-success response or malformed response body.
	// The call is terminal; no automatic retry happens beyond the single
	// create-on-miss round trip.
	ErrKeyService = errors.Wrap(errors.ErrUnavailable, "key service request failed")
)
