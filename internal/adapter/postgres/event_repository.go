package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adlytics/internal/core/domain"
)

// EventRepository implements port.RecordSource over the ad_events table
// using pgxpool. The table always carries the full column set, so Fetch
// reports every canonical column as present.
type EventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository returns a new repository instance.
func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

// Fetch returns ad event rows in the period, ordered by event date. Zero
// bounds are left open. Nullable categorical columns come back as the
// Unknown sentinel via COALESCE so the core never sees empty categories
// from this source.
func (r *EventRepository) Fetch(ctx context.Context, from, to time.Time) ([]domain.Record, []string, error) {
	query := `
        SELECT
            event_date,
            impressions,
            clicks,
            cost,
            revenue,
            conversions,
            COALESCE(NULLIF(device, ''), 'Unknown'),
            COALESCE(NULLIF(country, ''), 'Unknown')
        FROM ad_events`

	var (
		where []string
		args  []interface{}
	)
	if !from.IsZero() {
		args = append(args, from)
		where = append(where, fmt.Sprintf("event_date >= $%d", len(args)))
	}
	if !to.IsZero() {
		args = append(args, to)
		where = append(where, fmt.Sprintf("event_date <= $%d", len(args)))
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY event_date"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Record, error) {
		var rec domain.Record
		err := row.Scan(
			&rec.Date,
			&rec.Impressions,
			&rec.Clicks,
			&rec.Cost,
			&rec.Revenue,
			&rec.Conversions,
			&rec.Device,
			&rec.Country,
		)
		return rec, err
	})
	if err != nil {
		return nil, nil, err
	}
	return records, domain.AllColumns, nil
}
