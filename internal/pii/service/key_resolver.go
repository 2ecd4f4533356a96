package service

import (
	"context"
	"encoding/hex"
	"time"

	"golang.org/x/sync/singleflight"

	piiDomain "github.com/allisson/piivault/internal/pii/domain"
)

// KeyResolverService resolves key material for a key id: cache first, then
// the remote provider, populating the cache with the configured TTL on a
// successful fetch. Concurrent misses for the same key are deduplicated so
// a burst of operations triggers at most one key service round trip.
//
// In mock mode resolution is deterministic: a fixed all-zero key is
// returned and neither the cache nor the provider is touched. The bypass
// exists purely to make the system testable without a live key service.
type KeyResolverService struct {
	cache    KeyCache
	provider KeyProvider
	ttl      time.Duration
	mockMode bool
	group    singleflight.Group
}

// NewKeyResolver creates a resolver over the given cache and provider.
// When mockMode is true the provider may be nil; it is never consulted.
func NewKeyResolver(cache KeyCache, provider KeyProvider, ttl time.Duration, mockMode bool) *KeyResolverService {
	return &KeyResolverService{
		cache:    cache,
		provider: provider,
		ttl:      ttl,
		mockMode: mockMode,
	}
}

// Resolve returns the 32-byte key material for the key id.
func (r *KeyResolverService) Resolve(ctx context.Context, keyID []byte) ([]byte, error) {
	if r.mockMode {
		return make([]byte, piiDomain.KeySize), nil
	}

	if material, ok := r.cache.Get(keyID); ok {
		return material, nil
	}

	v, err, _ := r.group.Do(hex.EncodeToString(keyID), func() (interface{}, error) {
		material, err := r.provider.Fetch(ctx, keyID)
		if err != nil {
			return nil, err
		}
		r.cache.Put(keyID, material, r.ttl)
		return material, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers zero their key after use; shared singleflight results must
	// not alias.
	return append([]byte(nil), v.([]byte)...), nil
}
