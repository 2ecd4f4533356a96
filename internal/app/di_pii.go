package app

import (
	"fmt"
	"sync"

	piiDomain "github.com/allisson/piivault/internal/pii/domain"
	piiHTTP "github.com/allisson/piivault/internal/pii/http"
	piiService "github.com/allisson/piivault/internal/pii/service"
	piiUseCase "github.com/allisson/piivault/internal/pii/usecase"
)

// piiComponents holds the field-protection components managed by the container.
type piiComponents struct {
	keyCache     piiService.KeyCache
	keyProvider  piiService.KeyProvider
	keyResolver  *piiService.KeyResolverService
	cryptoEngine *piiService.CryptoEngineService
	piiUseCase   piiUseCase.PiiUseCase
	piiHandler   *piiHTTP.PiiHandler

	keyCacheInit     sync.Once
	keyProviderInit  sync.Once
	keyResolverInit  sync.Once
	cryptoEngineInit sync.Once
	piiUseCaseInit   sync.Once
	piiHandlerInit   sync.Once
}

// KeyCache returns the TTL key cache instance.
func (c *Container) KeyCache() piiService.KeyCache {
	c.keyCacheInit.Do(func() {
		c.keyCache = piiService.NewKeyCache()
	})
	return c.keyCache
}

// KeyProvider returns the remote key provider, or nil in mock mode where
// the key service is never contacted.
func (c *Container) KeyProvider() (piiService.KeyProvider, error) {
	var err error
	c.keyProviderInit.Do(func() {
		if c.config.IsMockMode() {
			return
		}
		c.keyProvider, err = piiService.NewVaultKeyProvider(piiService.VaultProviderConfig{
			URL:     c.config.VaultURL,
			Token:   c.config.VaultToken,
			Mount:   c.config.VaultMount,
			Timeout: c.config.VaultTimeout,
		}, c.Logger())
		if err != nil {
			c.initErrors["keyProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyProvider"]; exists {
		return nil, storedErr
	}
	return c.keyProvider, nil
}

// KeyResolver returns the key resolver instance.
func (c *Container) KeyResolver() (*piiService.KeyResolverService, error) {
	var err error
	c.keyResolverInit.Do(func() {
		var provider piiService.KeyProvider
		provider, err = c.KeyProvider()
		if err != nil {
			c.initErrors["keyResolver"] = err
			return
		}
		c.keyResolver = piiService.NewKeyResolver(
			c.KeyCache(),
			provider,
			c.config.KeyCacheTTL,
			c.config.IsMockMode(),
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyResolver"]; exists {
		return nil, storedErr
	}
	return c.keyResolver, nil
}

// CryptoEngine returns the crypto engine instance.
func (c *Container) CryptoEngine() *piiService.CryptoEngineService {
	c.cryptoEngineInit.Do(func() {
		c.cryptoEngine = piiService.NewCryptoEngine(piiService.NewCipherSuite())
	})
	return c.cryptoEngine
}

// PiiUseCase returns the field-protection use case, wrapped with metrics
// instrumentation when metrics are enabled.
func (c *Container) PiiUseCase() (piiUseCase.PiiUseCase, error) {
	var err error
	c.piiUseCaseInit.Do(func() {
		c.piiUseCase, err = c.initPiiUseCase()
		if err != nil {
			c.initErrors["piiUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["piiUseCase"]; exists {
		return nil, storedErr
	}
	return c.piiUseCase, nil
}

// PiiHandler returns the HTTP handler for field-protection operations.
func (c *Container) PiiHandler() (*piiHTTP.PiiHandler, error) {
	var err error
	c.piiHandlerInit.Do(func() {
		var useCase piiUseCase.PiiUseCase
		useCase, err = c.PiiUseCase()
		if err != nil {
			c.initErrors["piiHandler"] = err
			return
		}
		c.piiHandler = piiHTTP.NewPiiHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["piiHandler"]; exists {
		return nil, storedErr
	}
	return c.piiHandler, nil
}

// initPiiUseCase creates the use case with all its dependencies.
func (c *Container) initPiiUseCase() (piiUseCase.PiiUseCase, error) {
	scheme, err := piiDomain.ParseScheme(c.config.SealScheme)
	if err != nil {
		return nil, fmt.Errorf("invalid seal scheme %q: %w", c.config.SealScheme, err)
	}

	resolver, err := c.KeyResolver()
	if err != nil {
		return nil, fmt.Errorf("failed to get key resolver for pii use case: %w", err)
	}

	useCase := piiUseCase.NewPiiUseCase(c.CryptoEngine(), resolver, scheme, c.Logger())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for pii use case: %w", err)
		}
		useCase = piiUseCase.NewPiiUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}
