package service

import (
	"fmt"

	piiDomain "github.com/allisson/piivault/internal/pii/domain"
)

// CipherSuiteService implements the CipherSuite interface for creating AEAD
// cipher instances by scheme or by sealed record version.
type CipherSuiteService struct{}

// NewCipherSuite creates a new CipherSuiteService.
func NewCipherSuite() *CipherSuiteService {
	return &CipherSuiteService{}
}

// ForScheme creates an AEAD cipher for the given scheme.
// Returns ErrInvalidKeySize if key is not 32 bytes or ErrUnsupportedScheme
// if the scheme is unknown.
func (cs *CipherSuiteService) ForScheme(key []byte, scheme piiDomain.Scheme) (AEAD, error) {
	if len(key) != piiDomain.KeySize {
		return nil, piiDomain.ErrInvalidKeySize
	}

	switch scheme {
	case piiDomain.AESGCM:
		return NewAESGCM(key)
	case piiDomain.ChaCha20:
		return NewChaCha20Poly1305(key)
	default:
		return nil, fmt.Errorf("%w: %q", piiDomain.ErrUnsupportedScheme, string(scheme))
	}
}

// ForVersion creates an AEAD cipher for the given sealed record version.
func (cs *CipherSuiteService) ForVersion(key []byte, version uint8) (AEAD, error) {
	switch version {
	case piiDomain.VersionAESGCM:
		return cs.ForScheme(key, piiDomain.AESGCM)
	case piiDomain.VersionChaCha20:
		return cs.ForScheme(key, piiDomain.ChaCha20)
	default:
		return nil, fmt.Errorf("%w: version %d", piiDomain.ErrUnsupportedScheme, version)
	}
}
