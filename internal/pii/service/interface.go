// Package service provides the cryptographic and key-lifecycle services for
// field-level envelope encryption: AEAD ciphers, the crypto engine, the
// TTL-based key cache and the transit key provider.
package service

import (
	"context"
	"time"

	piiDomain "github.com/allisson/piivault/internal/pii/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// CipherSuite defines the interface for creating AEAD cipher instances,
// either by scheme (seal path) or by sealed record version (unseal path).
type CipherSuite interface {
	// ForScheme creates an AEAD cipher for the given scheme.
	ForScheme(key []byte, scheme piiDomain.Scheme) (AEAD, error)

	// ForVersion creates an AEAD cipher for the given sealed record version.
	ForVersion(key []byte, version uint8) (AEAD, error)
}

// KeyCache is an in-memory mapping from key id to key material with
// per-entry expiry. Expiry is checked lazily at read time; there is no
// sweeper. Expired entries are indistinguishable from absent entries.
type KeyCache interface {
	// Get returns cached key material if present and unexpired.
	Get(keyID []byte) ([]byte, bool)

	// Put inserts or overwrites the entry, expiring ttl from now.
	Put(keyID, material []byte, ttl time.Duration)
}

// KeyProvider fetches symmetric key material from the remote key service,
// provisioning the key on first use.
type KeyProvider interface {
	// Fetch returns the 32-byte key material for the named key.
	Fetch(ctx context.Context, keyID []byte) ([]byte, error)
}
