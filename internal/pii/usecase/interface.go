package usecase

import (
	"context"

	piiDomain "github.com/allisson/piivault/internal/pii/domain"
)

// CryptoEngine defines the interface for authenticated field encryption.
type CryptoEngine interface {
	Encrypt(plaintext string, key, keyID []byte, scheme piiDomain.Scheme) (piiDomain.SealedRecord, error)
	Decrypt(record piiDomain.SealedRecord, key []byte) (string, error)
}

// KeyResolver defines the interface for resolving key material by key id.
type KeyResolver interface {
	Resolve(ctx context.Context, keyID []byte) ([]byte, error)
}

// PiiUseCase defines the interface for field-level protection operations.
type PiiUseCase interface {
	Seal(ctx context.Context, raw []byte, keyID []byte) ([]byte, error)
	// Unseal recovers the plaintext of a protected value.
	//
	// Security Note: unseal is fail-closed but non-fatal. Any failure to
	// recover the plaintext yields the masked placeholder instead of an
	// error, so a read path never leaks ciphertext and never aborts.
	Unseal(ctx context.Context, raw []byte) (string, error)
	Reseal(ctx context.Context, raw []byte, newKeyID []byte) ([]byte, error)
	Inspect(raw []byte) string
}
