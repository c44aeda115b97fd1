// Package predict applies the loaded preprocessor and model to inference
// requests.
package predict

import (
	"context"
	"log/slog"
	"math"
	"time"

	"houseprice/internal/artifact"
	"houseprice/internal/features"
	"houseprice/internal/predict/metrics"
	dErrors "houseprice/pkg/domain-errors"
)

// Request is one housing record to price. Fields mirror the raw dataset
// columns; schema validation happens at the transport layer.
type Request struct {
	SquareFeet float64 `json:"sqft"`
	Bedrooms   float64 `json:"bedrooms"`
	Bathrooms  float64 `json:"bathrooms"`
	YearBuilt  float64 `json:"year_built"`
}

// Result is the response for a single prediction. The confidence interval is
// a fixed ±10% band around the estimate, a documented heuristic rather than a
// calibrated statistical interval. FeaturesImportance is always empty: no
// attribution is computed.
type Result struct {
	PredictedPrice     float64            `json:"predicted_price"`
	ConfidenceInterval []float64          `json:"confidence_interval"`
	FeaturesImportance map[string]float64 `json:"features_importance"`
	PredictionTime     string             `json:"prediction_time"`
}

// Recorder persists served predictions. Implementations must be best-effort;
// the service logs failures and never propagates them to the caller.
type Recorder interface {
	Record(ctx context.Context, requestID string, req Request, estimate float64) error
}

// Service holds the immutable artifact pair and serves predictions. Safe for
// concurrent use: the artifacts are read-only after load.
type Service struct {
	arts     *artifact.Artifacts
	logger   *slog.Logger
	metrics  *metrics.Metrics
	recorder Recorder
	now      func() time.Time
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithRecorder attaches a prediction recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithClock overrides the wall clock; tests pin the reference year with it.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService constructs the predictor around a loaded artifact pair.
func NewService(arts *artifact.Artifacts, logger *slog.Logger, m *metrics.Metrics, opts ...Option) *Service {
	s := &Service{arts: arts, logger: logger, metrics: m, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PredictOne prices a single record: derive features with the current year,
// transform, predict, round to two decimals, and attach the ±10% band.
func (s *Service) PredictOne(ctx context.Context, requestID string, req Request) (*Result, error) {
	start := s.now()

	estimates, err := s.estimate(ctx, []Request{req})
	if err != nil {
		s.metrics.IncrementPredictions("one", "error")
		return nil, err
	}

	price := round2(estimates[0])
	result := &Result{
		PredictedPrice:     price,
		ConfidenceInterval: []float64{round2(price * 0.9), round2(price * 1.1)},
		FeaturesImportance: map[string]float64{},
		PredictionTime:     s.now().Format(time.RFC3339),
	}

	s.metrics.IncrementPredictions("one", "ok")
	s.metrics.ObservePredictLatency(s.now().Sub(start))

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, requestID, req, price); err != nil {
			s.logger.WarnContext(ctx, "prediction log write failed",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
	}
	return result, nil
}

// PredictBatch prices many records, preserving input order. Only point
// estimates are returned, matching the batch contract.
func (s *Service) PredictBatch(ctx context.Context, reqs []Request) ([]float64, error) {
	if len(reqs) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "empty batch")
	}
	s.metrics.ObserveBatchSize(len(reqs))

	estimates, err := s.estimate(ctx, reqs)
	if err != nil {
		s.metrics.IncrementPredictions("batch", "error")
		return nil, err
	}

	out := make([]float64, len(estimates))
	for i, e := range estimates {
		out[i] = round2(e)
	}
	s.metrics.IncrementPredictions("batch", "ok")
	return out, nil
}

func (s *Service) estimate(ctx context.Context, reqs []Request) ([]float64, error) {
	referenceYear := s.now().Year()

	X := make([][]float64, len(reqs))
	for i, req := range reqs {
		vec, err := features.DeriveRecord(features.Record{
			SquareFeet: req.SquareFeet,
			Bedrooms:   req.Bedrooms,
			Bathrooms:  req.Bathrooms,
			YearBuilt:  req.YearBuilt,
		}, referenceYear)
		if err != nil {
			return nil, err
		}
		X[i] = vec
	}

	transformed, err := s.arts.Preprocessor.Transform(X)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "preprocessor transform", err)
	}
	estimates, err := s.arts.Model.Predict(transformed)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "model predict", err)
	}

	s.logger.DebugContext(ctx, "predicted", "rows", len(estimates), "reference_year", referenceYear)
	return estimates, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
