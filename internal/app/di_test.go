package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/piivault/internal/config"
	piiDomain "github.com/allisson/piivault/internal/pii/domain"
)

func mockConfig() *config.Config {
	return &config.Config{
		LogLevel:         "error",
		ServerHost:       "127.0.0.1",
		ServerPort:       8080,
		VaultURL:         config.MockURLScheme + "test",
		VaultMount:       "transit",
		VaultTimeout:     10 * time.Second,
		KeyCacheTTL:      5 * time.Minute,
		SealScheme:       "aes-gcm",
		MetricsEnabled:   false,
		MetricsNamespace: "piivault",
	}
}

func TestNewContainer(t *testing.T) {
	cfg := mockConfig()
	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
}

func TestContainerLogger(t *testing.T) {
	container := NewContainer(mockConfig())

	logger := container.Logger()
	require.NotNil(t, logger)

	// Singleton: second access returns the same instance.
	assert.Same(t, logger, container.Logger())
}

func TestContainer_MockMode(t *testing.T) {
	container := NewContainer(mockConfig())

	provider, err := container.KeyProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	resolver, err := container.KeyResolver()
	require.NoError(t, err)

	key, err := resolver.Resolve(context.Background(), []byte{0x7b})
	require.NoError(t, err)
	assert.Equal(t, make([]byte, piiDomain.KeySize), key)
}

func TestContainer_PiiUseCase(t *testing.T) {
	t.Run("full seal path in mock mode", func(t *testing.T) {
		container := NewContainer(mockConfig())

		useCase, err := container.PiiUseCase()
		require.NoError(t, err)

		sealed, err := useCase.Seal(context.Background(), []byte("my secret"), []byte{0x7b})
		require.NoError(t, err)

		plaintext, err := useCase.Unseal(context.Background(), sealed)
		require.NoError(t, err)
		assert.Equal(t, "my secret", plaintext)
	})

	t.Run("invalid seal scheme", func(t *testing.T) {
		cfg := mockConfig()
		cfg.SealScheme = "des"
		container := NewContainer(cfg)

		_, err := container.PiiUseCase()
		require.Error(t, err)

		// The error is sticky across calls.
		_, err = container.PiiUseCase()
		assert.Error(t, err)
	})

	t.Run("metrics decorated when enabled", func(t *testing.T) {
		cfg := mockConfig()
		cfg.MetricsEnabled = true
		container := NewContainer(cfg)

		useCase, err := container.PiiUseCase()
		require.NoError(t, err)
		assert.NotNil(t, useCase)
	})
}

func TestContainer_KeyProviderValidation(t *testing.T) {
	cfg := mockConfig()
	cfg.VaultURL = "https://vault.internal:8200"
	cfg.VaultToken = "" // missing token
	container := NewContainer(cfg)

	_, err := container.KeyProvider()
	assert.Error(t, err)
}

func TestContainer_Servers(t *testing.T) {
	t.Run("http server", func(t *testing.T) {
		container := NewContainer(mockConfig())

		server, err := container.HTTPServer()
		require.NoError(t, err)
		assert.NotNil(t, server.GetHandler())
	})

	t.Run("metrics server disabled", func(t *testing.T) {
		container := NewContainer(mockConfig())

		server, err := container.MetricsServer()
		require.NoError(t, err)
		assert.Nil(t, server)
	})

	t.Run("metrics server enabled", func(t *testing.T) {
		cfg := mockConfig()
		cfg.MetricsEnabled = true
		cfg.MetricsPort = 8081
		container := NewContainer(cfg)

		server, err := container.MetricsServer()
		require.NoError(t, err)
		require.NotNil(t, server)
	})
}

func TestContainerShutdown(t *testing.T) {
	container := NewContainer(mockConfig())

	// Shutdown should not fail even if no components are initialized.
	assert.NoError(t, container.Shutdown(context.TODO()))
}
