package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adlytics/internal/core/domain"
	"adlytics/internal/core/port"
	"adlytics/internal/core/predict"
)

// fakeStore keeps the model in memory and records saves.
type fakeStore struct {
	model   *predict.Model
	saves   int
	loadErr error
	saveErr error
}

func (f *fakeStore) Save(_ context.Context, m *predict.Model) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	f.model = m
	return nil
}

func (f *fakeStore) Load(context.Context) (*predict.Model, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.model, nil
}

func predictConfig() predict.Config {
	cfg := predict.DefaultConfig()
	cfg.Trees = 5
	return cfg
}

func trainingSource() *fakeSource {
	var records []domain.Record
	for i := 0; i < 30; i++ {
		records = append(records, domain.Record{
			Impressions: int64(1000 + 100*i),
			Clicks:      int64(10 + i),
			Cost:        float64(5 + i),
			Device:      "Mobile",
			Country:     "US",
		})
	}
	return &fakeSource{records: records, columns: domain.AllColumns}
}

func TestTrainPersistsAndCachesModel(t *testing.T) {
	store := &fakeStore{}
	svc := NewPredictService(trainingSource(), store, predictConfig(), testLogger(), testMetrics())

	result, err := svc.Train(context.Background(), port.ReportReq{})
	require.NoError(t, err)
	assert.Equal(t, 30, result.Rows)
	assert.Equal(t, 5, result.Trees)
	assert.Equal(t, 1, store.saves)

	// prediction must not need another Load: wipe the store
	store.loadErr = errors.New("should not be called")
	preds, err := svc.Predict(context.Background(), []domain.Record{
		{Impressions: 1500, Cost: 8, Device: "Mobile", Country: "US"},
	}, domain.AllColumns)
	require.NoError(t, err)
	require.Len(t, preds, 1)
	assert.Greater(t, preds[0].PredictedClicks, 0.0)
}

func TestTrainMissingColumnLeavesNoPartialModel(t *testing.T) {
	source := trainingSource()
	source.columns = []string{domain.ColImpressions, domain.ColDevice, domain.ColCountry, domain.ColClicks}
	store := &fakeStore{}
	svc := NewPredictService(source, store, predictConfig(), testLogger(), testMetrics())

	_, err := svc.Train(context.Background(), port.ReportReq{})
	var missing *domain.MissingInputError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, domain.ColCost, missing.Field)
	assert.Zero(t, store.saves)
}

func TestPredictWithoutModelReturnsSentinel(t *testing.T) {
	svc := NewPredictService(trainingSource(), &fakeStore{}, predictConfig(), testLogger(), testMetrics())

	_, err := svc.Predict(context.Background(), []domain.Record{{Impressions: 100}}, domain.AllColumns)
	assert.ErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestPredictLoadsPersistedModelLazily(t *testing.T) {
	store := &fakeStore{}

	// one service trains and persists
	trainer := NewPredictService(trainingSource(), store, predictConfig(), testLogger(), testMetrics())
	_, err := trainer.Train(context.Background(), port.ReportReq{})
	require.NoError(t, err)

	// a fresh service sees the persisted model without training
	svc := NewPredictService(trainingSource(), store, predictConfig(), testLogger(), testMetrics())
	preds, err := svc.Predict(context.Background(), []domain.Record{
		{Impressions: 2000, Cost: 10, Device: "Mobile", Country: "US"},
	}, domain.AllColumns)
	require.NoError(t, err)
	require.Len(t, preds, 1)
}

func TestPredictLoadErrorIsNotModelUnavailable(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("disk gone")}
	svc := NewPredictService(trainingSource(), store, predictConfig(), testLogger(), testMetrics())

	_, err := svc.Predict(context.Background(), []domain.Record{{Impressions: 100}}, domain.AllColumns)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrModelUnavailable)
}

func TestTrainSaveErrorPropagates(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("read-only filesystem")}
	svc := NewPredictService(trainingSource(), store, predictConfig(), testLogger(), testMetrics())

	_, err := svc.Train(context.Background(), port.ReportReq{})
	assert.ErrorContains(t, err, "persist model")
}
