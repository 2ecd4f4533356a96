package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/piivault/internal/errors"
	piiDomain "github.com/allisson/piivault/internal/pii/domain"
)

type countingProvider struct {
	calls    atomic.Int64
	material []byte
	err      error
	delay    time.Duration
}

func (p *countingProvider) Fetch(_ context.Context, _ []byte) ([]byte, error) {
	p.calls.Add(1)
	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.material, nil
}

func TestKeyResolverService_Resolve(t *testing.T) {
	ctx := context.Background()
	keyID := []byte{0x00, 0x00, 0x00, 0x7b}
	material := make([]byte, piiDomain.KeySize)
	material[0] = 0x01

	t.Run("fetches and caches on miss", func(t *testing.T) {
		provider := &countingProvider{material: material}
		resolver := NewKeyResolver(NewKeyCache(), provider, time.Minute, false)

		got, err := resolver.Resolve(ctx, keyID)
		require.NoError(t, err)
		assert.Equal(t, material, got)
		assert.Equal(t, int64(1), provider.calls.Load())

		// Second resolve is served from the cache.
		got, err = resolver.Resolve(ctx, keyID)
		require.NoError(t, err)
		assert.Equal(t, material, got)
		assert.Equal(t, int64(1), provider.calls.Load())
	})

	t.Run("refetches after ttl expires", func(t *testing.T) {
		provider := &countingProvider{material: material}
		resolver := NewKeyResolver(NewKeyCache(), provider, 10*time.Millisecond, false)

		_, err := resolver.Resolve(ctx, keyID)
		require.NoError(t, err)

		time.Sleep(20 * time.Millisecond)

		_, err = resolver.Resolve(ctx, keyID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), provider.calls.Load())
	})

	t.Run("non-positive ttl fetches every time", func(t *testing.T) {
		provider := &countingProvider{material: material}
		resolver := NewKeyResolver(NewKeyCache(), provider, 0, false)

		_, err := resolver.Resolve(ctx, keyID)
		require.NoError(t, err)
		_, err = resolver.Resolve(ctx, keyID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), provider.calls.Load())
	})

	t.Run("provider failure propagates and is not cached", func(t *testing.T) {
		provider := &countingProvider{err: errors.ErrUnavailable}
		resolver := NewKeyResolver(NewKeyCache(), provider, time.Minute, false)

		_, err := resolver.Resolve(ctx, keyID)
		assert.ErrorIs(t, err, errors.ErrUnavailable)

		_, err = resolver.Resolve(ctx, keyID)
		assert.ErrorIs(t, err, errors.ErrUnavailable)
		assert.Equal(t, int64(2), provider.calls.Load())
	})

	t.Run("mock mode returns zero key without provider", func(t *testing.T) {
		resolver := NewKeyResolver(NewKeyCache(), nil, time.Minute, true)

		got, err := resolver.Resolve(ctx, keyID)
		require.NoError(t, err)
		assert.Equal(t, make([]byte, piiDomain.KeySize), got)
	})

	t.Run("concurrent misses share one fetch", func(t *testing.T) {
		provider := &countingProvider{material: material, delay: 20 * time.Millisecond}
		resolver := NewKeyResolver(NewKeyCache(), provider, time.Minute, false)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				got, err := resolver.Resolve(ctx, keyID)
				assert.NoError(t, err)
				assert.Equal(t, material, got)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(1), provider.calls.Load())
	})
}
