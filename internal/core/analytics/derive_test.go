package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adlytics/internal/core/domain"
)

func TestDeriveGlobalScenario(t *testing.T) {
	totals := domain.KPISet{
		Impressions: 10000,
		Clicks:      200,
		Cost:        500,
		Revenue:     1500,
		Conversions: 20,
	}

	got := DeriveGlobal(totals)
	assert.InDelta(t, 2.0, got.CTR, 1e-9)
	assert.InDelta(t, 2.5, got.CPC, 1e-9)
	assert.InDelta(t, 50.0, got.CPM, 1e-9)
	assert.InDelta(t, 3.0, got.ROAS, 1e-9)

	// totals stay exact, the guard only affects the division
	assert.Equal(t, totals.Impressions, got.Impressions)
	assert.Equal(t, totals.Clicks, got.Clicks)
	assert.InDelta(t, totals.Cost, got.Cost, 1e-9)
}

func TestDeriveGlobalAllZeroGuards(t *testing.T) {
	got := DeriveGlobal(domain.KPISet{})
	assert.Zero(t, got.CTR)
	assert.Zero(t, got.CPC)
	assert.Zero(t, got.CPM)
	assert.Zero(t, got.ROAS)
}

func TestDeriveGlobalDoesNotMutateInput(t *testing.T) {
	in := domain.KPISet{Impressions: 10, Clicks: 1, Cost: 2, Revenue: 4}
	_ = DeriveGlobal(in)
	assert.Equal(t, domain.KPISet{Impressions: 10, Clicks: 1, Cost: 2, Revenue: 4}, in)
}

func TestDeriveDailyZeroImpressionsDayIsNonFiniteOnly(t *testing.T) {
	trend := domain.DailyTrend{
		{Impressions: 1000, Clicks: 20, Cost: 10, Revenue: 30},
		{Impressions: 0, Clicks: 5, Cost: 10, Revenue: 30},
	}

	got := DeriveDaily(trend)
	require.Len(t, got, 2)

	assert.InDelta(t, 2.0, got[0].CTR, 1e-9)
	assert.InDelta(t, 3.0, got[0].ROAS, 1e-9)

	// the degenerate day propagates Inf rather than being patched
	assert.True(t, math.IsInf(got[1].CTR, 1))
	assert.InDelta(t, 3.0, got[1].ROAS, 1e-9)
}

func TestDeriveDailyZeroCostDay(t *testing.T) {
	got := DeriveDaily(domain.DailyTrend{{Impressions: 100, Clicks: 1, Cost: 0, Revenue: 10}})
	assert.True(t, math.IsInf(got[0].ROAS, 1))
}
