package service

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/vault/api"

	"github.com/allisson/piivault/internal/errors"
	piiDomain "github.com/allisson/piivault/internal/pii/domain"
)

// VaultProviderConfig holds the settings for the Vault transit key provider.
type VaultProviderConfig struct {
	// URL is the base URL of the Vault server.
	URL string
	// Token is the authentication token sent with every request.
	Token string
	// Mount is the mount path of the transit engine (e.g., "transit").
	Mount string
	// Timeout bounds each HTTP request to the key service. Key fetches sit
	// on the sealing path, so unbounded blocking is not acceptable.
	Timeout time.Duration
}

// VaultKeyProvider implements KeyProvider against a Vault transit engine.
//
// Fetch reads the exported key material for the hex-encoded key id. When
// the key does not exist yet, the provider creates an exportable
// aes256-gcm96 key under that name and re-reads exactly once. Any other
// failure is terminal for the call: client-level retries are disabled and
// no backoff is applied beyond the single create-and-re-read round trip.
type VaultKeyProvider struct {
	client *api.Client
	mount  string
	logger *slog.Logger
}

// NewVaultKeyProvider creates a provider from the given configuration.
// Returns ErrMissingVaultConfig when URL or token is absent.
func NewVaultKeyProvider(cfg VaultProviderConfig, logger *slog.Logger) (*VaultKeyProvider, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: url is not set", piiDomain.ErrMissingVaultConfig)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("%w: token is not set", piiDomain.ErrMissingVaultConfig)
	}

	apiConfig := api.DefaultConfig()
	apiConfig.Address = cfg.URL
	apiConfig.Timeout = cfg.Timeout
	apiConfig.MaxRetries = 0

	client, err := api.NewClient(apiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	client.SetToken(cfg.Token)

	mount := cfg.Mount
	if mount == "" {
		mount = "transit"
	}

	return &VaultKeyProvider{
		client: client,
		mount:  mount,
		logger: logger,
	}, nil
}

// Fetch returns the 32-byte key material for the named key, provisioning
// the key on first use.
func (p *VaultKeyProvider) Fetch(ctx context.Context, keyID []byte) ([]byte, error) {
	name := hex.EncodeToString(keyID)

	secret, found, err := p.readExport(ctx, name)
	if err != nil {
		return nil, err
	}

	if !found {
		p.logger.Info("key not found in vault, provisioning", slog.String("key_name", name))

		if err := p.createKey(ctx, name); err != nil {
			return nil, err
		}

		// Retry the export exactly once after provisioning.
		secret, found, err = p.readExport(ctx, name)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("%w: key %q missing after creation", piiDomain.ErrKeyService, name)
		}
	}

	return parseExportedKey(secret)
}

// readExport reads the exported key material. The second return value is
// false when the key does not exist.
func (p *VaultKeyProvider) readExport(ctx context.Context, name string) (*api.Secret, bool, error) {
	path := fmt.Sprintf("%s/export/encryption-key/%s", p.mount, name)

	secret, err := p.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		var respErr *api.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: %v", piiDomain.ErrKeyService, err)
	}
	if secret == nil {
		return nil, false, nil
	}

	return secret, true, nil
}

// createKey provisions an exportable symmetric key under the given name.
func (p *VaultKeyProvider) createKey(ctx context.Context, name string) error {
	path := fmt.Sprintf("%s/keys/%s", p.mount, name)
	data := map[string]interface{}{
		"type":       "aes256-gcm96",
		"exportable": true,
	}

	if _, err := p.client.Logical().WriteWithContext(ctx, path, data); err != nil {
		return fmt.Errorf("%w: create key: %v", piiDomain.ErrKeyService, err)
	}

	return nil
}

// parseExportedKey selects the latest key version from the export response
// and decodes it. The response maps version numbers to base64 key material;
// map iteration order is unspecified, so the highest numeric version is
// selected explicitly.
func parseExportedKey(secret *api.Secret) ([]byte, error) {
	rawKeys, ok := secret.Data["keys"].(map[string]interface{})
	if !ok || len(rawKeys) == 0 {
		return nil, fmt.Errorf("%w: no keys in export response", piiDomain.ErrKeyService)
	}

	bestVersion := -1
	var encoded string
	for version, value := range rawKeys {
		n, err := strconv.Atoi(version)
		if err != nil {
			continue
		}
		s, ok := value.(string)
		if !ok {
			continue
		}
		if n > bestVersion {
			bestVersion = n
			encoded = s
		}
	}
	if bestVersion < 0 {
		return nil, fmt.Errorf("%w: no versioned key in export response", piiDomain.ErrKeyService)
	}

	material, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", piiDomain.ErrInvalidKeyMaterial, err)
	}
	if len(material) != piiDomain.KeySize {
		return nil, fmt.Errorf(
			"%w: expected %d bytes, got %d",
			piiDomain.ErrInvalidKeyMaterial, piiDomain.KeySize, len(material),
		)
	}

	return material, nil
}
