package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"

	"adlytics/internal/core/domain"
)

// handleBuildReport runs the full analytics pipeline for an optional
// from/to period (YYYY-MM-DD query parameters) and returns the report:
// derived KPIs, daily trend and the chosen narrative. Invalid dates are
// HTTP 400; a period with no dated rows cannot produce a narrative and
// is HTTP 422.
func (h *Handler) handleBuildReport(w http.ResponseWriter, r *http.Request) {
	req, err := periodFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	report, err := h.reports.BuildReport(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTrend) {
			http.Error(w, "no dated rows in period, nothing to report on", http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("build report error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, reportDTO{
		ReportID:        report.ID,
		GeneratedAt:     report.GeneratedAt,
		Rows:            report.Rows,
		KPIs:            toKPIDTO(report.KPIs),
		DailyTrend:      toTrendDTO(report.Trend),
		Narrative:       report.Narrative,
		NarrativeSource: report.NarrativeSource,
	})
}
