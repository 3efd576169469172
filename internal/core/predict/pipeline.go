// Package predict learns a mapping from {impressions, cost, device,
// country} to clicks and applies it to new rows for advisory
// forecasting. It is not on the mandatory report path; predictions do
// not feed the narrative.
package predict

import (
	"errors"
	"slices"
	"time"

	"adlytics/internal/core/domain"
)

// featureColumns are required for both training and inference; training
// additionally requires the clicks label.
var featureColumns = []string{
	domain.ColImpressions, domain.ColCost, domain.ColDevice, domain.ColCountry,
}

// Config controls the tree ensemble. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	Trees    int
	MaxDepth int
	MinLeaf  int
	Seed     int64
}

// DefaultConfig mirrors the conventional forest shape: 100 trees, fixed
// seed for reproducible training.
func DefaultConfig() Config {
	return Config{Trees: 100, MaxDepth: 12, MinLeaf: 2, Seed: 42}
}

// Model couples the fitted forest with the feature encoding it was
// trained with, so persistence always round-trips a self-consistent
// pair. A model is replaced wholesale on retrain, never mutated.
type Model struct {
	Encoder   *OneHotEncoder
	Forest    *Forest
	TrainedAt time.Time
	Rows      int
}

// Train fits a forest on the given rows. Every feature column and the
// clicks label must be present in the source's column list; a missing
// column is a fatal MissingInputError, with no partial model produced.
// Training is strict where Predict is deliberately best-effort.
func Train(rows []domain.Record, columns []string, cfg Config) (*Model, error) {
	for _, col := range featureColumns {
		if !slices.Contains(columns, col) {
			return nil, &domain.MissingInputError{Stage: "train", Field: col}
		}
	}
	if !slices.Contains(columns, domain.ColClicks) {
		return nil, &domain.MissingInputError{Stage: "train", Field: domain.ColClicks}
	}
	if len(rows) == 0 {
		return nil, errors.New("train: training set is empty")
	}
	if cfg.Trees < 1 {
		return nil, errors.New("train: tree count must be positive")
	}

	enc := fitEncoder(rows)
	X := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, r := range rows {
		X[i] = enc.FeatureVector(r)
		y[i] = float64(r.Clicks)
	}

	return &Model{
		Encoder:   enc,
		Forest:    growForest(X, y, cfg),
		TrainedAt: time.Now().UTC(),
		Rows:      len(rows),
	}, nil
}

// Predict scores each row with the model. Missing feature columns are
// synthesized instead of rejected: categorical values default to
// UnknownCategory, numeric values stay zero. PredictedCTR divides by the
// row's impressions without a guard; zero impressions flow to Inf/NaN.
func Predict(m *Model, rows []domain.Record, columns []string) []domain.Prediction {
	hasDevice := slices.Contains(columns, domain.ColDevice)
	hasCountry := slices.Contains(columns, domain.ColCountry)

	out := make([]domain.Prediction, len(rows))
	for i, r := range rows {
		if !hasDevice || r.Device == "" {
			r.Device = domain.UnknownCategory
		}
		if !hasCountry || r.Country == "" {
			r.Country = domain.UnknownCategory
		}

		clicks := m.Forest.Predict(m.Encoder.FeatureVector(r))
		out[i] = domain.Prediction{
			Record:          r,
			PredictedClicks: clicks,
			PredictedCTR:    clicks / float64(r.Impressions) * 100,
		}
	}
	return out
}
