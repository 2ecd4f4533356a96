// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/piivault/cmd/app/commands"
	"github.com/allisson/piivault/internal/app"
	"github.com/allisson/piivault/internal/config"
	piiUseCase "github.com/allisson/piivault/internal/pii/usecase"
)

const version = "1.0.0"

// withUseCase loads configuration, builds the container and hands the use
// case to the command body, tearing the container down afterwards.
func withUseCase(
	fn func(ctx context.Context, cmd *cli.Command, useCase piiUseCase.PiiUseCase) error,
) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := config.Load()
		container := app.NewContainer(cfg)

		useCase, err := container.PiiUseCase()
		if err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}

		defer func() {
			if err := container.Shutdown(context.Background()); err != nil {
				container.Logger().Error("failed to shutdown container", slog.Any("error", err))
			}
		}()

		return fn(ctx, cmd, useCase)
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "piivault",
		Usage:   "Field-level encryption for PII values",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "seal",
				Usage: "Encrypt a plaintext value under a key id",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "value",
						Aliases:  []string{"v"},
						Required: true,
						Usage:    "Plaintext value to seal",
					},
					&cli.StringFlag{
						Name:     "key-id",
						Aliases:  []string{"k"},
						Required: true,
						Usage:    "Hex-encoded key id (e.g., 0000007b)",
					},
				},
				Action: withUseCase(func(ctx context.Context, cmd *cli.Command, useCase piiUseCase.PiiUseCase) error {
					return commands.RunSeal(ctx, useCase, commands.DefaultIO(), cmd.String("value"), cmd.String("key-id"))
				}),
			},
			{
				Name:  "unseal",
				Usage: "Recover the plaintext of a stored value",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "value",
						Aliases:  []string{"v"},
						Required: true,
						Usage:    "Base64-encoded stored value",
					},
				},
				Action: withUseCase(func(ctx context.Context, cmd *cli.Command, useCase piiUseCase.PiiUseCase) error {
					return commands.RunUnseal(ctx, useCase, commands.DefaultIO(), cmd.String("value"))
				}),
			},
			{
				Name:  "reseal",
				Usage: "Re-encrypt a stored value under a new key id",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "value",
						Aliases:  []string{"v"},
						Required: true,
						Usage:    "Base64-encoded stored value",
					},
					&cli.StringFlag{
						Name:     "key-id",
						Aliases:  []string{"k"},
						Required: true,
						Usage:    "Hex-encoded target key id",
					},
				},
				Action: withUseCase(func(ctx context.Context, cmd *cli.Command, useCase piiUseCase.PiiUseCase) error {
					return commands.RunReseal(ctx, useCase, commands.DefaultIO(), cmd.String("value"), cmd.String("key-id"))
				}),
			},
			{
				Name:  "inspect",
				Usage: "Describe a stored value without decrypting it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "value",
						Aliases:  []string{"v"},
						Required: true,
						Usage:    "Base64-encoded stored value",
					},
				},
				Action: withUseCase(func(ctx context.Context, cmd *cli.Command, useCase piiUseCase.PiiUseCase) error {
					return commands.RunInspect(useCase, commands.DefaultIO(), cmd.String("value"))
				}),
			},
			{
				Name:  "keygen",
				Usage: "Generate random 32-byte key material",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunKeygen(commands.DefaultIO())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
