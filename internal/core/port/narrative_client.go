package port

import (
	"context"

	"adlytics/internal/core/domain"
)

// NarrativeClient is the outbound port to the external narrative
// service. Generate returns free-form text structured as three labeled
// sections (overview, key insights, recommendations). Any error — auth,
// network, quota, malformed response — obliges the caller to fall back
// to the deterministic rule-based summary; the fallback is a hard
// requirement, not an optimization.
type NarrativeClient interface {
	Generate(ctx context.Context, kpis domain.KPISet, trend domain.DailyTrend) (string, error)
}
