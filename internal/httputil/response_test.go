package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/piivault/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	return c, w
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestHandleErrorGin(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		err        error
		statusCode int
		errorCode  string
	}{
		{
			name:       "not found",
			err:        apperrors.ErrNotFound,
			statusCode: http.StatusNotFound,
			errorCode:  "not_found",
		},
		{
			name:       "invalid input",
			err:        apperrors.Wrap(apperrors.ErrInvalidInput, "key_id: must be valid hex"),
			statusCode: http.StatusUnprocessableEntity,
			errorCode:  "invalid_input",
		},
		{
			name:       "unauthorized",
			err:        apperrors.ErrUnauthorized,
			statusCode: http.StatusUnauthorized,
			errorCode:  "unauthorized",
		},
		{
			name:       "unavailable",
			err:        apperrors.Wrap(apperrors.ErrUnavailable, "key service unreachable"),
			statusCode: http.StatusServiceUnavailable,
			errorCode:  "unavailable",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			statusCode: http.StatusInternalServerError,
			errorCode:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()
			HandleErrorGin(c, tt.err, logger)

			assert.Equal(t, tt.statusCode, w.Code)
			assert.Equal(t, tt.errorCode, decodeErrorResponse(t, w).Error)
		})
	}

	t.Run("internal errors hide details", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, errors.New("secret detail"), logger)

		assert.NotContains(t, w.Body.String(), "secret detail")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		c, w := newTestContext()
		HandleErrorGin(c, nil, logger)

		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()
	HandleBadRequestGin(c, errors.New("invalid JSON"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "bad_request", decodeErrorResponse(t, w).Error)
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()
	HandleValidationErrorGin(c, errors.New("value: must not be blank"), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "validation_error", decodeErrorResponse(t, w).Error)
}
