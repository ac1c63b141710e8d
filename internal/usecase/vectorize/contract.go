package vectorize

import (
	"context"

	"github.com/kailas-cloud/textvec/internal/domain"
)

// ResultCache stores deterministic results by their full input.
type ResultCache interface {
	Get(ctx context.Context, key domain.ResultKey, dst any) bool
	Put(ctx context.Context, key domain.ResultKey, v any)
}
