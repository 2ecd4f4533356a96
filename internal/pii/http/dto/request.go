// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/piivault/internal/validation"
)

// SealRequest contains the parameters for sealing a field value.
// Value carries the raw storage bytes base64-encoded; it may be empty,
// since an empty field is still a sealable value.
type SealRequest struct {
	Value string `json:"value"`
	KeyID string `json:"key_id"` // Hex-encoded key id
}

// Validate checks if the seal request is valid.
func (r *SealRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			customValidation.Base64,
		),
		validation.Field(&r.KeyID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Hex,
		),
	)
}

// UnsealRequest contains the parameters for unsealing a field value.
type UnsealRequest struct {
	Value string `json:"value"` // Base64-encoded raw storage bytes
}

// Validate checks if the unseal request is valid.
func (r *UnsealRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			customValidation.Base64,
		),
	)
}

// ResealRequest contains the parameters for re-encrypting a value under a new key.
type ResealRequest struct {
	Value string `json:"value"`  // Base64-encoded raw storage bytes
	KeyID string `json:"key_id"` // Hex-encoded target key id
}

// Validate checks if the reseal request is valid.
func (r *ResealRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			customValidation.Base64,
		),
		validation.Field(&r.KeyID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Hex,
		),
	)
}

// InspectRequest contains the parameters for inspecting a field value.
type InspectRequest struct {
	Value string `json:"value"` // Base64-encoded raw storage bytes
}

// Validate checks if the inspect request is valid.
func (r *InspectRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Value,
			customValidation.Base64,
		),
	)
}
