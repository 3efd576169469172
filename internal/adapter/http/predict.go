package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"adlytics/internal/core/domain"
)

// handleModelTrain retrains the click predictor on the period's rows and
// atomically replaces the persisted model. A source missing a required
// training column is the caller's problem and maps to HTTP 422.
func (h *Handler) handleModelTrain(w http.ResponseWriter, r *http.Request) {
	req, err := periodFromQuery(r.URL.Query())
	if err != nil {
		http.Error(w, "invalid date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	result, err := h.predicts.Train(r.Context(), req)
	if err != nil {
		var missing *domain.MissingInputError
		if errors.As(err, &missing) {
			http.Error(w, missing.Error(), http.StatusUnprocessableEntity)
			return
		}
		h.logger.Error("model train error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"rows":       result.Rows,
		"trees":      result.Trees,
		"trained_at": result.TrainedAt,
	})
}

// predictRowDTO uses pointer fields so an omitted key is distinguishable
// from an explicit zero; the union of present keys across all rows forms
// the column list handed to the pipeline, which synthesizes defaults for
// the rest.
type predictRowDTO struct {
	Date        *string  `json:"date"`
	Impressions *int64   `json:"impressions"`
	Cost        *float64 `json:"cost"`
	Device      *string  `json:"device"`
	Country     *string  `json:"country"`
}

type predictRequest struct {
	Rows []predictRowDTO `json:"rows"`
}

type predictionDTO struct {
	Impressions     int64     `json:"impressions"`
	Cost            float64   `json:"cost"`
	Device          string    `json:"device"`
	Country         string    `json:"country"`
	PredictedClicks float64   `json:"predicted_clicks"`
	PredictedCTR    jsonFloat `json:"predicted_ctr"`
}

// handleModelPredict scores the posted rows with the current model.
// Missing fields are synthesized rather than rejected; only a missing
// model (HTTP 409) or malformed JSON (HTTP 400) fails the call.
func (h *Handler) handleModelPredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.Rows) == 0 {
		http.Error(w, "no rows to predict", http.StatusBadRequest)
		return
	}

	records, columns := toPredictInput(req.Rows)
	predictions, err := h.predicts.Predict(r.Context(), records, columns)
	if err != nil {
		if errors.Is(err, domain.ErrModelUnavailable) {
			http.Error(w, "prediction model unavailable, train it first", http.StatusConflict)
			return
		}
		h.logger.Error("model predict error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out := make([]predictionDTO, len(predictions))
	for i, p := range predictions {
		out[i] = predictionDTO{
			Impressions:     p.Impressions,
			Cost:            p.Cost,
			Device:          p.Device,
			Country:         p.Country,
			PredictedClicks: p.PredictedClicks,
			PredictedCTR:    jsonFloat(p.PredictedCTR),
		}
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"predictions": out})
}

// toPredictInput converts the DTOs into records plus the list of columns
// present in at least one row.
func toPredictInput(rows []predictRowDTO) ([]domain.Record, []string) {
	present := make(map[string]bool)
	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		var rec domain.Record
		if row.Date != nil {
			if d, err := time.Parse(dateLayout, *row.Date); err == nil {
				rec.Date = d
			}
			present[domain.ColDate] = true
		}
		if row.Impressions != nil {
			rec.Impressions = *row.Impressions
			present[domain.ColImpressions] = true
		}
		if row.Cost != nil {
			rec.Cost = *row.Cost
			present[domain.ColCost] = true
		}
		if row.Device != nil {
			rec.Device = *row.Device
			present[domain.ColDevice] = true
		}
		if row.Country != nil {
			rec.Country = *row.Country
			present[domain.ColCountry] = true
		}
		records[i] = rec
	}

	columns := make([]string, 0, len(present))
	for _, col := range domain.AllColumns {
		if present[col] {
			columns = append(columns, col)
		}
	}
	return records, columns
}
