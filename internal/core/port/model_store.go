package port

import (
	"context"

	"adlytics/internal/core/predict"
)

// ModelStore persists the prediction model between runs as one opaque
// blob holding the fitted estimator together with its feature encoding.
// Save must be atomic so concurrent readers never observe a partially
// written model. Load on a missing location returns (nil, nil) — "never
// trained" is not an error and is distinguishable from corrupt state.
type ModelStore interface {
	Save(ctx context.Context, m *predict.Model) error
	Load(ctx context.Context) (*predict.Model, error)
}
