package commands

import (
	"encoding/base64"
	"fmt"

	piiUseCase "github.com/allisson/piivault/internal/pii/usecase"
)

// RunInspect writes a debug description of a base64-encoded stored value to
// the output without decrypting anything.
func RunInspect(
	useCase piiUseCase.PiiUseCase,
	io IOTuple,
	valueB64 string,
) error {
	raw, err := base64.StdEncoding.DecodeString(valueB64)
	if err != nil {
		return fmt.Errorf("invalid value: must be base64-encoded: %w", err)
	}

	fmt.Fprintln(io.Writer, useCase.Inspect(raw))
	return nil
}
