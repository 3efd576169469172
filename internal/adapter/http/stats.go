package httpadapter

import (
	"log/slog"
	"net/http"
)

// handleStatsOverview returns the derived global KPISet for an optional
// from/to period without running the narrative stage. This is the
// projection consumed by report-assembly and rendering collaborators.
func (h *Handler) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	req, err := periodFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	kpis, err := h.reports.Overview(r.Context(), req)
	if err != nil {
		h.logger.Error("stats overview error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, toKPIDTO(kpis))
}

// handleStatsDaily returns the derived per-day trend. Days with a zero
// denominator carry null ctr/roas in the JSON; charting consumers treat
// null as a gap.
func (h *Handler) handleStatsDaily(w http.ResponseWriter, r *http.Request) {
	req, err := periodFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	trend, err := h.reports.Daily(r.Context(), req)
	if err != nil {
		h.logger.Error("stats daily error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, toTrendDTO(trend))
}
