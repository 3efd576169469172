package domain

// KPISet holds the five raw totals over a reporting period and, once
// derivation has run, the four ratio metrics. Aggregation and derivation
// both return fresh values; a KPISet is never mutated after it is handed
// to a caller.
type KPISet struct {
	Impressions int64
	Clicks      int64
	Cost        float64
	Revenue     float64
	Conversions int64

	// Derived metrics, zero until DeriveGlobal has run.
	CTR  float64 // clicks / impressions * 100
	CPC  float64 // cost / clicks
	CPM  float64 // cost / impressions * 1000
	ROAS float64 // revenue / cost
}
