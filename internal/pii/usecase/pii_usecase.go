// Package usecase implements business logic orchestration for field-level
// protection operations.
//
// The use case layer decides how raw storage bytes are interpreted and which
// direction they move: staging text is sealed into an encrypted record,
// sealed records are unsealed back to plaintext, and reseal moves a value
// from one key to another. It coordinates the crypto engine and the key
// resolver but holds no key material of its own; resolved keys are zeroed
// as soon as the operation completes.
package usecase

import (
	"context"
	"log/slog"

	piiDomain "github.com/allisson/piivault/internal/pii/domain"
)

// piiUseCase implements the PiiUseCase interface.
type piiUseCase struct {
	engine   CryptoEngine
	resolver KeyResolver
	scheme   piiDomain.Scheme
	logger   *slog.Logger
}

// Seal encrypts a staging value under the given key id.
//
// Raw bytes that already parse as a sealed record pass through unchanged,
// so sealing is idempotent. Seal failures are fatal: a write path must
// never persist plaintext that was supposed to be protected.
func (p *piiUseCase) Seal(ctx context.Context, raw []byte, keyID []byte) ([]byte, error) {
	content := piiDomain.Decode(raw)

	text, ok := content.(piiDomain.StagingText)
	if !ok {
		return raw, nil
	}

	key, err := p.resolver.Resolve(ctx, keyID)
	if err != nil {
		return nil, err
	}
	defer piiDomain.Zero(key)

	record, err := p.engine.Encrypt(string(text), key, keyID, p.scheme)
	if err != nil {
		return nil, err
	}

	return record.Encode()
}

// Unseal recovers the plaintext of a protected value.
//
// Staging text is returned as-is without touching the key service. For a
// sealed record, any failure along the way masks the value instead of
// surfacing an error.
func (p *piiUseCase) Unseal(ctx context.Context, raw []byte) (string, error) {
	content := piiDomain.Decode(raw)

	record, ok := content.(piiDomain.SealedRecord)
	if !ok {
		return string(content.(piiDomain.StagingText)), nil
	}

	key, err := p.resolver.Resolve(ctx, record.KeyID)
	if err != nil {
		p.logger.Warn("failed to resolve key for unseal, masking value", "error", err)
		return piiDomain.MaskedValue, nil
	}
	defer piiDomain.Zero(key)

	plaintext, err := p.engine.Decrypt(record, key)
	if err != nil {
		p.logger.Warn("failed to unseal value, masking value", "error", err)
		return piiDomain.MaskedValue, nil
	}

	return plaintext, nil
}

// Reseal re-encrypts a protected value under a new key id.
//
// Unlike unseal, failures here are fatal: silently writing back a masked
// or stale value during key migration would corrupt data. Staging text is
// simply sealed under the new key. A record already sealed under the
// target key is still re-encrypted, picking up a fresh IV and the latest
// key version.
func (p *piiUseCase) Reseal(ctx context.Context, raw []byte, newKeyID []byte) ([]byte, error) {
	content := piiDomain.Decode(raw)

	record, ok := content.(piiDomain.SealedRecord)
	if !ok {
		return p.Seal(ctx, raw, newKeyID)
	}

	oldKey, err := p.resolver.Resolve(ctx, record.KeyID)
	if err != nil {
		return nil, err
	}
	defer piiDomain.Zero(oldKey)

	plaintext, err := p.engine.Decrypt(record, oldKey)
	if err != nil {
		return nil, err
	}

	newKey, err := p.resolver.Resolve(ctx, newKeyID)
	if err != nil {
		return nil, err
	}
	defer piiDomain.Zero(newKey)

	newRecord, err := p.engine.Encrypt(plaintext, newKey, newKeyID, p.scheme)
	if err != nil {
		return nil, err
	}

	return newRecord.Encode()
}

// Inspect renders a debug description of the raw bytes without decrypting
// anything. Plaintext never appears in the output of a sealed record.
func (p *piiUseCase) Inspect(raw []byte) string {
	return piiDomain.Decode(raw).String()
}

// NewPiiUseCase creates a new PiiUseCase with the provided dependencies.
func NewPiiUseCase(
	engine CryptoEngine,
	resolver KeyResolver,
	scheme piiDomain.Scheme,
	logger *slog.Logger,
) PiiUseCase {
	return &piiUseCase{
		engine:   engine,
		resolver: resolver,
		scheme:   scheme,
		logger:   logger,
	}
}
