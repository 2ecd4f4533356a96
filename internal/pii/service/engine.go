package service

import (
	"fmt"
	"unicode/utf8"

	piiDomain "github.com/allisson/piivault/internal/pii/domain"
)

// CryptoEngineService performs authenticated encryption and decryption of
// field values, binding every ciphertext to its key context as associated
// data. The context is derived from the key id and recomputed per
// operation; it is never stored.
type CryptoEngineService struct {
	ciphers CipherSuite
}

// NewCryptoEngine creates a new CryptoEngineService with the provided CipherSuite.
func NewCryptoEngine(ciphers CipherSuite) *CryptoEngineService {
	return &CryptoEngineService{ciphers: ciphers}
}

// Encrypt seals plaintext under the given key and scheme.
//
// A fresh 12-byte IV is generated per call. The AEAD's combined output is
// split into ciphertext and the trailing 16-byte tag, which are stored as
// separate record fields. Failures on this path are fatal to the calling
// operation; there is no safe default for a failed seal.
func (e *CryptoEngineService) Encrypt(
	plaintext string,
	key, keyID []byte,
	scheme piiDomain.Scheme,
) (piiDomain.SealedRecord, error) {
	version, err := scheme.Version()
	if err != nil {
		return piiDomain.SealedRecord{}, err
	}

	aead, err := e.ciphers.ForScheme(key, scheme)
	if err != nil {
		return piiDomain.SealedRecord{}, err
	}

	context := piiDomain.KeyContext(keyID)
	combined, nonce, err := aead.Encrypt([]byte(plaintext), []byte(context))
	if err != nil {
		return piiDomain.SealedRecord{}, fmt.Errorf("failed to encrypt value: %w", err)
	}

	// The AEAD appends the tag to the ciphertext; the record stores them
	// separately.
	tagPos := len(combined) - piiDomain.TagSize
	record := piiDomain.SealedRecord{
		Version:    version,
		KeyID:      append([]byte(nil), keyID...),
		IV:         nonce,
		Tag:        combined[tagPos:],
		Ciphertext: combined[:tagPos],
	}

	return record, nil
}

// Decrypt opens a sealed record under the given key.
//
// The context is recomputed from the record's key id; tampering, a wrong
// key and a wrong context all surface as ErrDecryptionFailed. Recovered
// bytes must be valid UTF-8 or the call fails with ErrInvalidPlaintext.
func (e *CryptoEngineService) Decrypt(record piiDomain.SealedRecord, key []byte) (string, error) {
	aead, err := e.ciphers.ForVersion(key, record.Version)
	if err != nil {
		return "", err
	}

	combined := make([]byte, 0, len(record.Ciphertext)+len(record.Tag))
	combined = append(combined, record.Ciphertext...)
	combined = append(combined, record.Tag...)

	context := piiDomain.KeyContext(record.KeyID)
	plaintext, err := aead.Decrypt(combined, record.IV, []byte(context))
	if err != nil {
		return "", fmt.Errorf("%w: %v", piiDomain.ErrDecryptionFailed, err)
	}

	if !utf8.Valid(plaintext) {
		return "", piiDomain.ErrInvalidPlaintext
	}

	return string(plaintext), nil
}
