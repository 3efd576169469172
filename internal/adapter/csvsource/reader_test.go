package csvsource

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adlytics/internal/core/domain"
)

func writeCSV(t *testing.T, content string) *Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ad_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return New(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFetchParsesRowsAndColumns(t *testing.T) {
	r := writeCSV(t, `date,impressions,clicks,cost,revenue,conversions,device,country
2025-06-01,1000,20,50.5,120.25,3,Mobile,US
2025-06-02,2000,35,70,210,5,Desktop,DE
`)

	records, columns, err := r.Fetch(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, domain.AllColumns, columns)
	require.Len(t, records, 2)

	assert.Equal(t, int64(1000), records[0].Impressions)
	assert.InDelta(t, 120.25, records[0].Revenue, 1e-9)
	assert.Equal(t, "Mobile", records[0].Device)
	assert.Equal(t, "2025-06-02", records[1].Date.Format("2006-01-02"))
}

func TestFetchFillsMissingValues(t *testing.T) {
	r := writeCSV(t, `date,impressions,clicks,cost,revenue,conversions,device,country
2025-06-01,1000,,,,,Mobile,
`)

	records, _, err := r.Fetch(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Zero(t, records[0].Clicks)
	assert.Zero(t, records[0].Cost)
	assert.Equal(t, domain.UnknownCategory, records[0].Country)
	assert.Equal(t, "Mobile", records[0].Device)
}

func TestFetchKeepsRowsWithBadDates(t *testing.T) {
	r := writeCSV(t, `date,impressions,clicks,cost,revenue,conversions
not-a-date,500,5,1,2,0
2025-06-01,1000,20,50,120,3
`)

	records, columns, err := r.Fetch(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	// the dateless row stays for global totals but carries a zero date
	assert.True(t, records[0].Date.IsZero())
	assert.Equal(t, int64(500), records[0].Impressions)
	assert.NotContains(t, columns, domain.ColDevice)
}

func TestFetchAppliesPeriodBounds(t *testing.T) {
	r := writeCSV(t, `date,impressions,clicks,cost,revenue,conversions
2025-06-01,100,1,1,1,0
2025-06-10,200,2,2,2,0
2025-06-20,300,3,3,3,0
`)

	from, _ := time.Parse("2006-01-02", "2025-06-05")
	to, _ := time.Parse("2006-01-02", "2025-06-15")
	records, _, err := r.Fetch(context.Background(), from, to)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(200), records[0].Impressions)
}

func TestFetchMissingFile(t *testing.T) {
	r := New(filepath.Join(t.TempDir(), "absent.csv"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, _, err := r.Fetch(context.Background(), time.Time{}, time.Time{})
	assert.Error(t, err)
}
