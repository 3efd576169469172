package httpadapter

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"adlytics/internal/core/domain"
	"adlytics/internal/core/port"
)

const dateLayout = "2006-01-02"

// jsonFloat renders non-finite values as null. The core deliberately
// propagates Inf/NaN through per-day derived metrics and predicted CTR;
// mapping them to null is a rendering concern that keeps the JSON valid.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v, 'f', -1, 64), nil
}

type kpiDTO struct {
	TotalImpressions int64     `json:"total_impressions"`
	TotalClicks      int64     `json:"total_clicks"`
	TotalCost        float64   `json:"total_cost"`
	TotalRevenue     float64   `json:"total_revenue"`
	TotalConversions int64     `json:"total_conversions"`
	CTR              jsonFloat `json:"ctr"`
	CPC              jsonFloat `json:"cpc"`
	CPM              jsonFloat `json:"cpm"`
	ROAS             jsonFloat `json:"roas"`
}

func toKPIDTO(k domain.KPISet) kpiDTO {
	return kpiDTO{
		TotalImpressions: k.Impressions,
		TotalClicks:      k.Clicks,
		TotalCost:        k.Cost,
		TotalRevenue:     k.Revenue,
		TotalConversions: k.Conversions,
		CTR:              jsonFloat(k.CTR),
		CPC:              jsonFloat(k.CPC),
		CPM:              jsonFloat(k.CPM),
		ROAS:             jsonFloat(k.ROAS),
	}
}

type dailyStatDTO struct {
	Date        string    `json:"date"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Cost        float64   `json:"cost"`
	Revenue     float64   `json:"revenue"`
	Conversions int64     `json:"conversions"`
	CTR         jsonFloat `json:"ctr"`
	ROAS        jsonFloat `json:"roas"`
}

func toTrendDTO(trend domain.DailyTrend) []dailyStatDTO {
	out := make([]dailyStatDTO, len(trend))
	for i, d := range trend {
		out[i] = dailyStatDTO{
			Date:        d.Date.Format(dateLayout),
			Impressions: d.Impressions,
			Clicks:      d.Clicks,
			Cost:        d.Cost,
			Revenue:     d.Revenue,
			Conversions: d.Conversions,
			CTR:         jsonFloat(d.CTR),
			ROAS:        jsonFloat(d.ROAS),
		}
	}
	return out
}

type reportDTO struct {
	ReportID        string         `json:"report_id"`
	GeneratedAt     time.Time      `json:"generated_at"`
	Rows            int            `json:"rows"`
	KPIs            kpiDTO         `json:"kpis"`
	DailyTrend      []dailyStatDTO `json:"daily_trend"`
	Narrative       string         `json:"narrative"`
	NarrativeSource string         `json:"narrative_source"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// periodFromQuery parses optional from/to date bounds. An error is
// returned for values that are present but unparseable.
func periodFromQuery(q url.Values) (port.ReportReq, error) {
	var req port.ReportReq
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return req, err
		}
		req.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return req, err
		}
		req.To = t
	}
	return req, nil
}
