package port

import (
	"context"
	"time"

	"adlytics/internal/core/domain"
)

// ReportUseCase is the primary port into the analytics engine. It turns
// raw event rows into aggregate KPIs, a daily trend and a narrative
// summary.
type ReportUseCase interface {
	// BuildReport runs the full pipeline for the period: aggregation,
	// derivation, trend rollup and narrative generation. The report
	// always completes with exactly one narrative, either from the
	// external service or from the rule-based fallback.
	BuildReport(ctx context.Context, req ReportReq) (*Report, error)

	// Overview returns the derived global KPISet for the period without
	// generating a narrative.
	Overview(ctx context.Context, req ReportReq) (domain.KPISet, error)

	// Daily returns the derived per-day trend for the period.
	Daily(ctx context.Context, req ReportReq) (domain.DailyTrend, error)
}

// PredictUseCase owns the optional click-prediction branch. It consumes
// raw rows only and never feeds the report path.
type PredictUseCase interface {
	// Train fits a fresh model on the period's rows and atomically
	// replaces the persisted one. Missing required columns abort with a
	// MissingInputError and leave no partial model behind.
	Train(ctx context.Context, req ReportReq) (*TrainResult, error)

	// Predict scores the given rows with the current model, loading it
	// lazily from the store. ErrModelUnavailable is returned when no
	// model has ever been trained.
	Predict(ctx context.Context, rows []domain.Record, columns []string) ([]domain.Prediction, error)
}

// ReportReq bounds the reporting period. Zero values disable the
// corresponding bound.
type ReportReq struct {
	From time.Time
	To   time.Time
}

// Report is the assembled output of one pipeline run. NarrativeSource
// is "llm" when the external service produced the text and "rules" when
// the deterministic fallback did.
type Report struct {
	ID              string
	GeneratedAt     time.Time
	Rows            int
	KPIs            domain.KPISet
	Trend           domain.DailyTrend
	Narrative       string
	NarrativeSource string
}

// TrainResult summarizes a completed training run.
type TrainResult struct {
	Rows      int
	Trees     int
	TrainedAt time.Time
}
