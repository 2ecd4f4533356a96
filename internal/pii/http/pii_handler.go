// Package http provides HTTP handlers for field-level protection operations.
package http

import (
	"encoding/base64"
	"encoding/hex"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/piivault/internal/httputil"
	"github.com/allisson/piivault/internal/pii/http/dto"
	piiUseCase "github.com/allisson/piivault/internal/pii/usecase"
	customValidation "github.com/allisson/piivault/internal/validation"
)

// PiiHandler handles HTTP requests for seal, unseal, reseal and inspect operations.
type PiiHandler struct {
	useCase piiUseCase.PiiUseCase
	logger  *slog.Logger
}

// NewPiiHandler creates a new PII handler with required dependencies.
func NewPiiHandler(useCase piiUseCase.PiiUseCase, logger *slog.Logger) *PiiHandler {
	return &PiiHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// SealHandler encrypts a staging value under the given key id.
// POST /v1/pii/seal - Returns 200 OK with the sealed bytes base64-encoded.
func (h *PiiHandler) SealHandler(c *gin.Context) {
	var req dto.SealRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	raw, keyID, err := decodeValueAndKeyID(req.Value, req.KeyID)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	sealed, err := h.useCase.Seal(c.Request.Context(), raw, keyID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SealResponse{
		Value: base64.StdEncoding.EncodeToString(sealed),
	})
}

// UnsealHandler recovers the plaintext of a protected value.
// POST /v1/pii/unseal - Returns 200 OK; unrecoverable values come back masked.
func (h *PiiHandler) UnsealHandler(c *gin.Context) {
	var req dto.UnsealRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Value)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	plaintext, err := h.useCase.Unseal(c.Request.Context(), raw)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.UnsealResponse{Plaintext: plaintext})
}

// ResealHandler re-encrypts a protected value under a new key id.
// POST /v1/pii/reseal - Returns 200 OK with the re-sealed bytes base64-encoded.
func (h *PiiHandler) ResealHandler(c *gin.Context) {
	var req dto.ResealRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	raw, keyID, err := decodeValueAndKeyID(req.Value, req.KeyID)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	sealed, err := h.useCase.Reseal(c.Request.Context(), raw, keyID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ResealResponse{
		Value: base64.StdEncoding.EncodeToString(sealed),
	})
}

// InspectHandler renders a debug description of a value without decrypting it.
// POST /v1/pii/inspect - Returns 200 OK; sealed plaintext never appears in the output.
func (h *PiiHandler) InspectHandler(c *gin.Context) {
	var req dto.InspectRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.Value)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.InspectResponse{
		Description: h.useCase.Inspect(raw),
	})
}

func decodeValueAndKeyID(value, keyID string) ([]byte, []byte, error) {
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, nil, err
	}
	id, err := hex.DecodeString(keyID)
	if err != nil {
		return nil, nil, err
	}
	return raw, id, nil
}
