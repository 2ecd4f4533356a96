package commands

import (
	"context"
	"encoding/base64"
	"fmt"

	piiUseCase "github.com/allisson/piivault/internal/pii/usecase"
)

// RunUnseal recovers the plaintext of a base64-encoded stored value and
// writes it to the output. Unrecoverable values are printed masked.
func RunUnseal(
	ctx context.Context,
	useCase piiUseCase.PiiUseCase,
	io IOTuple,
	valueB64 string,
) error {
	raw, err := base64.StdEncoding.DecodeString(valueB64)
	if err != nil {
		return fmt.Errorf("invalid value: must be base64-encoded: %w", err)
	}

	plaintext, err := useCase.Unseal(ctx, raw)
	if err != nil {
		return fmt.Errorf("failed to unseal value: %w", err)
	}

	fmt.Fprintln(io.Writer, plaintext)
	return nil
}
