package db

import (
	"context"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts a month of demo ad events so the reporting and training
// endpoints can be exercised without a real export. Rows are skewed so
// mobile traffic clicks more than desktop, which gives the click
// predictor something to learn.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	devices := []string{"Mobile", "Desktop", "Tablet"}
	countries := []string{"US", "DE", "GB", "FR", "IN"}

	start := time.Now().AddDate(0, 0, -30)
	for day := 0; day < 30; day++ {
		date := start.AddDate(0, 0, day)
		for i := 0; i < 20; i++ {
			device := devices[r.Intn(len(devices))]
			country := countries[r.Intn(len(countries))]

			impressions := int64(1000 + r.Intn(9000))
			ctr := 0.008 + r.Float64()*0.01
			if device == "Mobile" {
				ctr *= 1.8
			}
			clicks := int64(float64(impressions) * ctr)
			cost := float64(clicks) * (0.3 + r.Float64()*0.7)
			conversions := int64(float64(clicks) * (0.02 + r.Float64()*0.08))
			revenue := float64(conversions) * (10 + r.Float64()*40)

			_, err := db.Exec(ctx, `INSERT INTO ad_events
    (event_date, impressions, clicks, cost, revenue, conversions, device, country)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
				date, impressions, clicks, cost, revenue, conversions, device, country)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
