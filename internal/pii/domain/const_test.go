package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyContext(t *testing.T) {
	context := KeyContext([]byte{0xa0, 0xee, 0xbc, 0x99})
	assert.Equal(t, "col:piitext:id:a0eebc99", context)
}

func TestScheme_Version(t *testing.T) {
	v, err := AESGCM.Version()
	require.NoError(t, err)
	assert.Equal(t, VersionAESGCM, v)

	v, err = ChaCha20.Version()
	require.NoError(t, err)
	assert.Equal(t, VersionChaCha20, v)

	_, err = Scheme("des").Version()
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestParseScheme(t *testing.T) {
	scheme, err := ParseScheme("aes-gcm")
	require.NoError(t, err)
	assert.Equal(t, AESGCM, scheme)

	scheme, err = ParseScheme("chacha20-poly1305")
	require.NoError(t, err)
	assert.Equal(t, ChaCha20, scheme)

	_, err = ParseScheme("")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}
