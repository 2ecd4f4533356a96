package commands

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	piiUseCase "github.com/allisson/piivault/internal/pii/usecase"
)

// RunSeal encrypts a plaintext value under the given key id and writes the
// sealed bytes base64-encoded to the output.
func RunSeal(
	ctx context.Context,
	useCase piiUseCase.PiiUseCase,
	io IOTuple,
	value string,
	keyIDHex string,
) error {
	keyID, err := hex.DecodeString(keyIDHex)
	if err != nil {
		return fmt.Errorf("invalid key id %q: must be hex-encoded: %w", keyIDHex, err)
	}

	sealed, err := useCase.Seal(ctx, []byte(value), keyID)
	if err != nil {
		return fmt.Errorf("failed to seal value: %w", err)
	}

	fmt.Fprintln(io.Writer, base64.StdEncoding.EncodeToString(sealed))
	return nil
}
