package analytics

import "adlytics/internal/core/domain"

// DeriveGlobal computes CTR, CPC, CPM and ROAS from the raw totals. A
// zero denominator is substituted with 1 for the division only; the
// totals in the returned KPISet stay exact. This is a deliberate
// approximation so an all-zero period derives to all-zero ratios instead
// of failing.
func DeriveGlobal(k domain.KPISet) domain.KPISet {
	impressions := float64(k.Impressions)
	if impressions == 0 {
		impressions = 1
	}
	clicks := float64(k.Clicks)
	if clicks == 0 {
		clicks = 1
	}
	cost := k.Cost
	if cost == 0 {
		cost = 1
	}

	out := k
	out.CTR = float64(k.Clicks) / impressions * 100
	out.CPC = k.Cost / clicks
	out.CPM = k.Cost / impressions * 1000
	out.ROAS = k.Revenue / cost
	return out
}

// DeriveDaily fills per-day CTR and ROAS. Unlike DeriveGlobal there is
// no zero-denominator guard: a day with zero impressions or zero cost
// produces Inf or NaN for that day only, and consumers rely on seeing
// it. The input trend is not modified.
func DeriveDaily(trend domain.DailyTrend) domain.DailyTrend {
	out := make(domain.DailyTrend, len(trend))
	for i, d := range trend {
		d.CTR = float64(d.Clicks) / float64(d.Impressions) * 100
		d.ROAS = d.Revenue / d.Cost
		out[i] = d
	}
	return out
}
