package dto

// SealResponse contains the result of a seal operation.
type SealResponse struct {
	Value string `json:"value"` // Base64-encoded sealed bytes
}

// UnsealResponse contains the result of an unseal operation.
// SECURITY: Plaintext contains sensitive data and should be transmitted over HTTPS.
type UnsealResponse struct {
	Plaintext string `json:"plaintext"`
}

// ResealResponse contains the result of a reseal operation.
type ResealResponse struct {
	Value string `json:"value"` // Base64-encoded sealed bytes
}

// InspectResponse contains the debug description of a field value.
type InspectResponse struct {
	Description string `json:"description"`
}
