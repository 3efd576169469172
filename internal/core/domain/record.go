package domain

import "time"

// UnknownCategory is the sentinel used when a categorical field is not
// supplied by the source.
const UnknownCategory = "Unknown"

// Column names as they appear in ingested sources. Record sources report
// which of these were actually present so the predictive pipeline can
// distinguish an absent column from a zero value.
const (
	ColDate        = "date"
	ColImpressions = "impressions"
	ColClicks      = "clicks"
	ColCost        = "cost"
	ColRevenue     = "revenue"
	ColConversions = "conversions"
	ColDevice      = "device"
	ColCountry     = "country"
)

// AllColumns lists every column a fully populated source provides, in
// canonical order.
var AllColumns = []string{
	ColDate, ColImpressions, ColClicks, ColCost,
	ColRevenue, ColConversions, ColDevice, ColCountry,
}

// Record is one row of raw advertising events. Numeric fields default to
// zero and categorical fields to UnknownCategory when the source omits
// them. A zero Date means the row carried no usable date; such rows are
// excluded from the daily trend but still count towards global totals.
// Clicks exceeding impressions is tolerated, not validated.
type Record struct {
	Date        time.Time `json:"date"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	Cost        float64   `json:"cost"`
	Revenue     float64   `json:"revenue"`
	Conversions int64     `json:"conversions"`
	Device      string    `json:"device,omitempty"`
	Country     string    `json:"country,omitempty"`
}
