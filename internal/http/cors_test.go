package http

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateCORSMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("disabled returns nil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(false, "https://example.com", logger))
	})

	t.Run("enabled without origins returns nil", func(t *testing.T) {
		assert.Nil(t, createCORSMiddleware(true, "", logger))
		assert.Nil(t, createCORSMiddleware(true, " , ", logger))
	})

	t.Run("enabled with origins", func(t *testing.T) {
		assert.NotNil(t, createCORSMiddleware(true, "https://example.com", logger))
	})
}

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty",
			input:    "",
			expected: nil,
		},
		{
			name:     "single origin",
			input:    "https://example.com",
			expected: []string{"https://example.com"},
		},
		{
			name:     "multiple origins with whitespace",
			input:    "https://a.example.com, https://b.example.com ,https://c.example.com",
			expected: []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"},
		},
		{
			name:     "empty entries are dropped",
			input:    "https://example.com,,  ,",
			expected: []string{"https://example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseOrigins(tt.input))
		})
	}
}
