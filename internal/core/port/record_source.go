package port

import (
	"context"
	"time"

	"adlytics/internal/core/domain"
)

// RecordSource supplies normalized ad event rows to the core. The
// ingestion side guarantees dates are comparable calendar dates and
// numeric fields are pre-filled to zero. The returned column list names
// the fields actually present in the underlying source; the predictive
// pipeline uses it to distinguish an absent column from a zero value.
// A zero from/to disables the corresponding bound.
type RecordSource interface {
	Fetch(ctx context.Context, from, to time.Time) ([]domain.Record, []string, error)
}
