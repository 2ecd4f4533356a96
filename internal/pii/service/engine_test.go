package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	piiDomain "github.com/allisson/piivault/internal/pii/domain"
)

func TestCryptoEngineService_Encrypt(t *testing.T) {
	engine := NewCryptoEngine(NewCipherSuite())
	key := randomKey(t)
	keyID := []byte{0xa0, 0xee, 0xbc, 0x99}

	t.Run("produces well-formed record", func(t *testing.T) {
		record, err := engine.Encrypt("my secret", key, keyID, piiDomain.AESGCM)
		require.NoError(t, err)

		assert.Equal(t, piiDomain.VersionAESGCM, record.Version)
		assert.Equal(t, keyID, record.KeyID)
		assert.Len(t, record.IV, piiDomain.IVSize)
		assert.Len(t, record.Tag, piiDomain.TagSize)
		// GCM is a stream cipher: ciphertext length equals plaintext length.
		assert.Len(t, record.Ciphertext, len("my secret"))
		assert.NoError(t, record.Validate())
	})

	t.Run("chacha20 records carry version 2", func(t *testing.T) {
		record, err := engine.Encrypt("my secret", key, keyID, piiDomain.ChaCha20)
		require.NoError(t, err)
		assert.Equal(t, piiDomain.VersionChaCha20, record.Version)
	})

	t.Run("fresh iv per operation", func(t *testing.T) {
		r1, err := engine.Encrypt("p", key, keyID, piiDomain.AESGCM)
		require.NoError(t, err)
		r2, err := engine.Encrypt("p", key, keyID, piiDomain.AESGCM)
		require.NoError(t, err)
		assert.NotEqual(t, r1.IV, r2.IV)
	})

	t.Run("invalid key size", func(t *testing.T) {
		_, err := engine.Encrypt("p", make([]byte, 8), keyID, piiDomain.AESGCM)
		assert.ErrorIs(t, err, piiDomain.ErrInvalidKeySize)
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := engine.Encrypt("p", key, keyID, piiDomain.Scheme("des"))
		assert.ErrorIs(t, err, piiDomain.ErrUnsupportedScheme)
	})
}

func TestCryptoEngineService_Decrypt(t *testing.T) {
	engine := NewCryptoEngine(NewCipherSuite())
	key := randomKey(t)
	keyID := []byte{0x00, 0x00, 0x00, 0x7b}

	seal := func(t *testing.T, plaintext string, scheme piiDomain.Scheme) piiDomain.SealedRecord {
		t.Helper()
		record, err := engine.Encrypt(plaintext, key, keyID, scheme)
		require.NoError(t, err)
		return record
	}

	t.Run("round trip", func(t *testing.T) {
		for _, scheme := range []piiDomain.Scheme{piiDomain.AESGCM, piiDomain.ChaCha20} {
			record := seal(t, "my secret", scheme)
			plaintext, err := engine.Decrypt(record, key)
			require.NoError(t, err)
			assert.Equal(t, "my secret", plaintext)
		}
	})

	t.Run("round trip with empty plaintext", func(t *testing.T) {
		record := seal(t, "", piiDomain.AESGCM)
		plaintext, err := engine.Decrypt(record, key)
		require.NoError(t, err)
		assert.Equal(t, "", plaintext)
	})

	t.Run("tampered ciphertext fails authentication", func(t *testing.T) {
		record := seal(t, "my secret", piiDomain.AESGCM)
		record.Ciphertext[0] ^= 0x01

		_, err := engine.Decrypt(record, key)
		assert.ErrorIs(t, err, piiDomain.ErrDecryptionFailed)
	})

	t.Run("tampered tag fails authentication", func(t *testing.T) {
		record := seal(t, "my secret", piiDomain.AESGCM)
		record.Tag[piiDomain.TagSize-1] ^= 0x80

		_, err := engine.Decrypt(record, key)
		assert.ErrorIs(t, err, piiDomain.ErrDecryptionFailed)
	})

	t.Run("wrong key fails identically", func(t *testing.T) {
		record := seal(t, "my secret", piiDomain.AESGCM)

		_, err := engine.Decrypt(record, randomKey(t))
		assert.ErrorIs(t, err, piiDomain.ErrDecryptionFailed)
	})

	t.Run("swapped key id breaks context binding", func(t *testing.T) {
		// Substituting a ciphertext under another key id changes the
		// recomputed context, so authentication must fail even though the
		// key itself is unchanged.
		record := seal(t, "my secret", piiDomain.AESGCM)
		record.KeyID = []byte{0xde, 0xad, 0xbe, 0xef}

		_, err := engine.Decrypt(record, key)
		assert.ErrorIs(t, err, piiDomain.ErrDecryptionFailed)
	})

	t.Run("unknown record version", func(t *testing.T) {
		record := seal(t, "my secret", piiDomain.AESGCM)
		record.Version = 42

		_, err := engine.Decrypt(record, key)
		assert.ErrorIs(t, err, piiDomain.ErrUnsupportedScheme)
	})
}
