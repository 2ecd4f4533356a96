package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	piiDomain "github.com/allisson/piivault/internal/pii/domain"
)

// RunKeygen generates random 32-byte key material and writes it
// base64-encoded to the output. Useful for provisioning key services that
// accept imported keys.
func RunKeygen(io IOTuple) error {
	key := make([]byte, piiDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key material: %w", err)
	}
	defer piiDomain.Zero(key)

	fmt.Fprintln(io.Writer, base64.StdEncoding.EncodeToString(key))
	return nil
}
