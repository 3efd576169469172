package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"adlytics/internal/core/domain"
	"adlytics/internal/core/port"
	"adlytics/internal/core/predict"
	"adlytics/internal/metrics"
)

// PredictService implements port.PredictUseCase. The model is loaded
// lazily from the store, cached, and replaced wholesale on retrain. The
// mutex serializes cache access for concurrent train and predict
// requests against the same location; the persisted file itself is
// protected by the store's atomic write.
type PredictService struct {
	source  port.RecordSource
	store   port.ModelStore
	cfg     predict.Config
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu    sync.Mutex
	model *predict.Model
}

// NewPredictService creates the usecase with the given forest
// configuration.
func NewPredictService(source port.RecordSource, store port.ModelStore, cfg predict.Config, logger *slog.Logger, m *metrics.Metrics) *PredictService {
	return &PredictService{source: source, store: store, cfg: cfg, logger: logger, metrics: m}
}

// Train fetches the period's rows, fits a fresh model and persists it.
// A MissingInputError from the pipeline aborts before anything is
// written, so a failed run never leaves a partial model behind.
func (s *PredictService) Train(ctx context.Context, req port.ReportReq) (*port.TrainResult, error) {
	rows, columns, err := s.source.Fetch(ctx, req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("fetch training records: %w", err)
	}

	model, err := predict.Train(rows, columns, s.cfg)
	if err != nil {
		return nil, err
	}
	if err = s.store.Save(ctx, model); err != nil {
		return nil, fmt.Errorf("persist model: %w", err)
	}

	s.mu.Lock()
	s.model = model
	s.mu.Unlock()

	s.metrics.ModelTrainings.Inc()
	s.logger.Info("model trained",
		slog.Int("rows", model.Rows),
		slog.Int("trees", len(model.Forest.Trees)))

	return &port.TrainResult{
		Rows:      model.Rows,
		Trees:     len(model.Forest.Trees),
		TrainedAt: model.TrainedAt,
	}, nil
}

// Predict scores rows with the current model. The model is read-only
// here; ErrModelUnavailable is returned when no model was ever trained
// or persisted.
func (s *PredictService) Predict(ctx context.Context, rows []domain.Record, columns []string) ([]domain.Prediction, error) {
	model, err := s.currentModel(ctx)
	if err != nil {
		return nil, err
	}

	predictions := predict.Predict(model, rows, columns)
	s.metrics.PredictionsServed.Add(float64(len(predictions)))
	return predictions, nil
}

func (s *PredictService) currentModel(ctx context.Context) (*predict.Model, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.model != nil {
		return s.model, nil
	}
	model, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if model == nil {
		return nil, domain.ErrModelUnavailable
	}
	s.model = model
	return model, nil
}
