package analytics

import (
	"sort"
	"time"

	"adlytics/internal/core/domain"
)

// AggregateTotals reduces records into the five raw sums. An empty input
// yields an all-zero KPISet, not an error. The function is pure; the
// input slice is not modified.
func AggregateTotals(records []domain.Record) domain.KPISet {
	var k domain.KPISet
	for _, r := range records {
		k.Impressions += r.Impressions
		k.Clicks += r.Clicks
		k.Cost += r.Cost
		k.Revenue += r.Revenue
		k.Conversions += r.Conversions
	}
	return k
}

// AggregateDaily groups records by exact Date equality (no timezone
// normalization) and returns one entry per distinct date, ascending.
// Records with a zero Date are left out of the trend; they still count
// towards AggregateTotals, so the trend may cover fewer rows than the
// global totals.
func AggregateDaily(records []domain.Record) domain.DailyTrend {
	byDate := make(map[time.Time]*domain.DailyStat)
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		st, ok := byDate[r.Date]
		if !ok {
			st = &domain.DailyStat{Date: r.Date}
			byDate[r.Date] = st
		}
		st.Impressions += r.Impressions
		st.Clicks += r.Clicks
		st.Cost += r.Cost
		st.Revenue += r.Revenue
		st.Conversions += r.Conversions
	}

	trend := make(domain.DailyTrend, 0, len(byDate))
	for _, st := range byDate {
		trend = append(trend, *st)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date.Before(trend[j].Date) })
	return trend
}
