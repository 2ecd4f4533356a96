package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() SealedRecord {
	return SealedRecord{
		Version:    VersionAESGCM,
		KeyID:      []byte{0xa0, 0xee, 0xbc, 0x99},
		IV:         bytes.Repeat([]byte{0x01}, IVSize),
		Tag:        bytes.Repeat([]byte{0x02}, TagSize),
		Ciphertext: []byte("opaque"),
	}
}

func TestSealedRecord_Validate(t *testing.T) {
	t.Run("valid record", func(t *testing.T) {
		assert.NoError(t, validRecord().Validate())
	})

	t.Run("unknown version", func(t *testing.T) {
		record := validRecord()
		record.Version = 9
		assert.ErrorIs(t, record.Validate(), ErrMalformedRecord)
	})

	t.Run("empty key id", func(t *testing.T) {
		record := validRecord()
		record.KeyID = nil
		assert.ErrorIs(t, record.Validate(), ErrMalformedRecord)
	})

	t.Run("wrong iv length", func(t *testing.T) {
		record := validRecord()
		record.IV = record.IV[:8]
		assert.ErrorIs(t, record.Validate(), ErrMalformedRecord)
	})

	t.Run("wrong tag length", func(t *testing.T) {
		record := validRecord()
		record.Tag = append(record.Tag, 0x00)
		assert.ErrorIs(t, record.Validate(), ErrMalformedRecord)
	})
}

func TestSealedRecord_Encode(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		record := validRecord()
		raw, err := record.Encode()
		require.NoError(t, err)
		assert.True(t, hasSealedMagic(raw))

		decoded, err := decodeSealedRecord(raw)
		require.NoError(t, err)
		assert.Equal(t, record, decoded)
	})

	t.Run("invalid record does not encode", func(t *testing.T) {
		record := validRecord()
		record.IV = nil
		_, err := record.Encode()
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})

	t.Run("truncated body fails decode", func(t *testing.T) {
		raw, err := validRecord().Encode()
		require.NoError(t, err)

		_, err = decodeSealedRecord(raw[:len(raw)-3])
		assert.ErrorIs(t, err, ErrMalformedRecord)
	})
}

func TestSealedRecord_String(t *testing.T) {
	out := validRecord().String()
	assert.Contains(t, out, "Sealed")
	assert.Contains(t, out, "version: 1")
	assert.Contains(t, out, "key_id: a0eebc99")
	assert.NotContains(t, out, "opaque")
}
