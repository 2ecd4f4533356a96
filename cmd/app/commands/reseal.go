package commands

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	piiUseCase "github.com/allisson/piivault/internal/pii/usecase"
)

// RunReseal re-encrypts a base64-encoded stored value under a new key id
// and writes the re-sealed bytes base64-encoded to the output.
func RunReseal(
	ctx context.Context,
	useCase piiUseCase.PiiUseCase,
	io IOTuple,
	valueB64 string,
	newKeyIDHex string,
) error {
	raw, err := base64.StdEncoding.DecodeString(valueB64)
	if err != nil {
		return fmt.Errorf("invalid value: must be base64-encoded: %w", err)
	}

	newKeyID, err := hex.DecodeString(newKeyIDHex)
	if err != nil {
		return fmt.Errorf("invalid key id %q: must be hex-encoded: %w", newKeyIDHex, err)
	}

	sealed, err := useCase.Reseal(ctx, raw, newKeyID)
	if err != nil {
		return fmt.Errorf("failed to reseal value: %w", err)
	}

	fmt.Fprintln(io.Writer, base64.StdEncoding.EncodeToString(sealed))
	return nil
}
