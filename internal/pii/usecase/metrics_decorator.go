package usecase

import (
	"context"
	"time"

	"github.com/allisson/piivault/internal/metrics"
)

// piiUseCaseWithMetrics decorates PiiUseCase with metrics instrumentation.
type piiUseCaseWithMetrics struct {
	next    PiiUseCase
	metrics metrics.BusinessMetrics
}

// NewPiiUseCaseWithMetrics wraps a PiiUseCase with metrics recording.
func NewPiiUseCaseWithMetrics(useCase PiiUseCase, m metrics.BusinessMetrics) PiiUseCase {
	return &piiUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Seal records metrics for seal operations.
func (p *piiUseCaseWithMetrics) Seal(ctx context.Context, raw []byte, keyID []byte) ([]byte, error) {
	start := time.Now()
	sealed, err := p.next.Seal(ctx, raw, keyID)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "pii", "pii_seal", status)
	p.metrics.RecordDuration(ctx, "pii", "pii_seal", time.Since(start), status)

	return sealed, err
}

// Unseal records metrics for unseal operations. A masked result still
// counts as success; masking is the operation working as intended.
func (p *piiUseCaseWithMetrics) Unseal(ctx context.Context, raw []byte) (string, error) {
	start := time.Now()
	plaintext, err := p.next.Unseal(ctx, raw)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "pii", "pii_unseal", status)
	p.metrics.RecordDuration(ctx, "pii", "pii_unseal", time.Since(start), status)

	return plaintext, err
}

// Reseal records metrics for reseal operations.
func (p *piiUseCaseWithMetrics) Reseal(ctx context.Context, raw []byte, newKeyID []byte) ([]byte, error) {
	start := time.Now()
	sealed, err := p.next.Reseal(ctx, raw, newKeyID)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "pii", "pii_reseal", status)
	p.metrics.RecordDuration(ctx, "pii", "pii_reseal", time.Since(start), status)

	return sealed, err
}

// Inspect records metrics for inspect operations.
func (p *piiUseCaseWithMetrics) Inspect(raw []byte) string {
	start := time.Now()
	description := p.next.Inspect(raw)

	p.metrics.RecordOperation(context.Background(), "pii", "pii_inspect", "success")
	p.metrics.RecordDuration(context.Background(), "pii", "pii_inspect", time.Since(start), "success")

	return description
}
