package domain

import "time"

// DailyStat is the per-day aggregate for one distinct date in the input.
// CTR and ROAS are computed per day, independently of the global KPISet,
// and carry no zero-denominator guard: a day with zero impressions or
// zero cost yields a non-finite value, which downstream consumers use to
// detect degenerate days.
type DailyStat struct {
	Date        time.Time
	Impressions int64
	Clicks      int64
	Cost        float64
	Revenue     float64
	Conversions int64

	CTR  float64
	ROAS float64
}

// DailyTrend is the ordered per-day breakdown, one entry per distinct
// date present in the input, ascending.
type DailyTrend []DailyStat
