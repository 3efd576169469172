// Package csvsource implements port.RecordSource over a local CSV file,
// the same file shape the reporting pipeline was originally fed with.
// The header row decides which columns the source provides; missing
// numeric cells become 0 and missing categorical cells become the
// Unknown sentinel.
package csvsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"adlytics/internal/core/domain"
)

const dateLayout = "2006-01-02"

// Reader reads ad event rows from one CSV file per Fetch call. The file
// is re-read every time so a refreshed export is picked up without a
// restart.
type Reader struct {
	path   string
	logger *slog.Logger
}

// New returns a reader for the given file path.
func New(path string, logger *slog.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Fetch parses the file and returns its rows plus the lowercased header
// as the column list. Rows with an unparseable date keep a zero Date:
// they are counted in global totals but stay out of the daily trend.
// When from/to are set, only dated rows inside the period are returned.
func (r *Reader) Fetch(ctx context.Context, from, to time.Time) ([]domain.Record, []string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%s: file has no header row", r.path)
	}

	columns := make([]string, len(rows[0]))
	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.ToLower(strings.TrimSpace(name))
		columns[i] = name
		index[name] = i
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := domain.Record{
			Impressions: r.intCell(row, index, domain.ColImpressions),
			Clicks:      r.intCell(row, index, domain.ColClicks),
			Cost:        r.floatCell(row, index, domain.ColCost),
			Revenue:     r.floatCell(row, index, domain.ColRevenue),
			Conversions: r.intCell(row, index, domain.ColConversions),
			Device:      categoryCell(row, index, domain.ColDevice),
			Country:     categoryCell(row, index, domain.ColCountry),
		}
		if v := cell(row, index, domain.ColDate); v != "" {
			d, err := time.Parse(dateLayout, v)
			if err != nil {
				r.logger.Warn("unparseable date, row kept without one",
					slog.String("value", v))
			} else {
				rec.Date = d
			}
		}
		if !rec.Date.IsZero() {
			if !from.IsZero() && rec.Date.Before(from) {
				continue
			}
			if !to.IsZero() && rec.Date.After(to) {
				continue
			}
		}
		records = append(records, rec)
	}

	r.logger.Info("csv loaded",
		slog.String("path", r.path), slog.Int("rows", len(records)))
	return records, columns, nil
}

func cell(row []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func categoryCell(row []string, index map[string]int, col string) string {
	if _, ok := index[col]; !ok {
		return ""
	}
	v := cell(row, index, col)
	if v == "" {
		return domain.UnknownCategory
	}
	return v
}

func (r *Reader) intCell(row []string, index map[string]int, col string) int64 {
	v := cell(row, index, col)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		// tolerate decimals in count columns
		f, ferr := strconv.ParseFloat(v, 64)
		if ferr != nil {
			r.logger.Warn("bad numeric cell, defaulting to 0",
				slog.String("column", col), slog.String("value", v))
			return 0
		}
		return int64(f)
	}
	return n
}

func (r *Reader) floatCell(row []string, index map[string]int, col string) float64 {
	v := cell(row, index, col)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.logger.Warn("bad numeric cell, defaulting to 0",
			slog.String("column", col), slog.String("value", v))
		return 0
	}
	return f
}
