package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"adlytics/internal/core/analytics"
	"adlytics/internal/core/domain"
	"adlytics/internal/core/insight"
	"adlytics/internal/core/port"
	"adlytics/internal/metrics"
)

// ReportService implements port.ReportUseCase. It orchestrates the
// record source, the aggregation core and the narrative service with
// its rule-based fallback.
type ReportService struct {
	source    port.RecordSource
	narrative port.NarrativeClient // nil when the external service is not configured
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewReportService creates the usecase. narrative may be nil; the
// rule-based generator then serves every run.
func NewReportService(source port.RecordSource, narrative port.NarrativeClient, logger *slog.Logger, m *metrics.Metrics) *ReportService {
	return &ReportService{source: source, narrative: narrative, logger: logger, metrics: m}
}

// BuildReport runs the full pipeline: fetch → totals → derived KPIs →
// daily trend → narrative. The prediction branch is independent and
// never consulted here.
func (s *ReportService) BuildReport(ctx context.Context, req port.ReportReq) (*port.Report, error) {
	records, _, err := s.source.Fetch(ctx, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	s.metrics.RecordsFetched.Add(float64(len(records)))

	kpis := analytics.DeriveGlobal(analytics.AggregateTotals(records))
	trend := analytics.DeriveDaily(analytics.AggregateDaily(records))

	text, source, err := s.narrativeFor(ctx, kpis, trend)
	if err != nil {
		return nil, err
	}
	s.metrics.ReportRuns.WithLabelValues(source).Inc()

	return &port.Report{
		ID:              uuid.NewString(),
		GeneratedAt:     time.Now().UTC(),
		Rows:            len(records),
		KPIs:            kpis,
		Trend:           trend,
		Narrative:       text,
		NarrativeSource: source,
	}, nil
}

// Overview returns derived global KPIs for the period.
func (s *ReportService) Overview(ctx context.Context, req port.ReportReq) (domain.KPISet, error) {
	records, _, err := s.source.Fetch(ctx, req.From, req.To)
	if err != nil {
		return domain.KPISet{}, fmt.Errorf("fetch records: %w", err)
	}
	return analytics.DeriveGlobal(analytics.AggregateTotals(records)), nil
}

// Daily returns the derived per-day trend for the period.
func (s *ReportService) Daily(ctx context.Context, req port.ReportReq) (domain.DailyTrend, error) {
	records, _, err := s.source.Fetch(ctx, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	return analytics.DeriveDaily(analytics.AggregateDaily(records)), nil
}

// narrativeFor tries the external service first and falls back to the
// deterministic generator on any error. The run fails only when the
// fallback itself cannot produce text (empty trend).
func (s *ReportService) narrativeFor(ctx context.Context, kpis domain.KPISet, trend domain.DailyTrend) (text, source string, err error) {
	if s.narrative != nil {
		text, err = s.narrative.Generate(ctx, kpis, trend)
		if err == nil {
			return text, "llm", nil
		}
		s.metrics.NarrativeFallbacks.Inc()
		s.logger.Warn("narrative service failed, using rule-based summary", slog.Any("error", err))
	}

	report, err := insight.Generate(kpis, trend)
	if err != nil {
		return "", "", fmt.Errorf("narrative: %w", err)
	}
	return report.Text(), "rules", nil
}
