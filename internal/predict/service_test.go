package predict

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houseprice/internal/artifact"
	"houseprice/internal/features"
	"houseprice/internal/model"
	dErrors "houseprice/pkg/domain-errors"
)

// identityScaler returns inputs untouched so expected estimates are easy to
// compute by hand.
type identityScaler struct{}

func (identityScaler) Transform(X [][]float64) ([][]float64, error) { return X, nil }

func fixedClock() func() time.Time {
	t := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func testService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	// Weight only the house_age column so estimates depend on the reference
	// year in an obvious way: estimate = 1000*house_age + 100000.
	weights := make([]float64, len(features.InputColumns))
	weights[4] = 1000
	arts := &artifact.Artifacts{
		Model:        &model.Linear{Weights: weights, Bias: 100000},
		Preprocessor: identityScaler{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append([]Option{WithClock(fixedClock())}, opts...)
	return NewService(arts, logger, nil, opts...)
}

func TestPredictOne(t *testing.T) {
	svc := testService(t)

	res, err := svc.PredictOne(context.Background(), "req-1", Request{
		SquareFeet: 1800, Bedrooms: 3, Bathrooms: 2, YearBuilt: 2000,
	})
	require.NoError(t, err)

	// house_age = 2024 - 2000 = 24
	assert.Equal(t, 124000.0, res.PredictedPrice)
	require.Len(t, res.ConfidenceInterval, 2)
	assert.Equal(t, 111600.0, res.ConfidenceInterval[0])
	assert.Equal(t, 136400.0, res.ConfidenceInterval[1])
	assert.Empty(t, res.FeaturesImportance)
	assert.NotNil(t, res.FeaturesImportance)
	assert.Equal(t, "2024-06-01T12:00:00Z", res.PredictionTime)
}

func TestPredictOneZeroBathrooms(t *testing.T) {
	svc := testService(t)

	_, err := svc.PredictOne(context.Background(), "req-1", Request{
		SquareFeet: 1800, Bedrooms: 3, Bathrooms: 0, YearBuilt: 2000,
	})
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadData))
}

func TestPredictBatchPreservesOrder(t *testing.T) {
	svc := testService(t)

	out, err := svc.PredictBatch(context.Background(), []Request{
		{SquareFeet: 1000, Bedrooms: 2, Bathrooms: 1, YearBuilt: 2020},
		{SquareFeet: 1000, Bedrooms: 2, Bathrooms: 1, YearBuilt: 2000},
		{SquareFeet: 1000, Bedrooms: 2, Bathrooms: 1, YearBuilt: 2010},
	})
	require.NoError(t, err)

	assert.Equal(t, []float64{104000, 124000, 114000}, out)
}

func TestPredictOneMatchesSingletonBatch(t *testing.T) {
	svc := testService(t)
	req := Request{SquareFeet: 1800, Bedrooms: 3, Bathrooms: 2, YearBuilt: 2000}

	one, err := svc.PredictOne(context.Background(), "req-1", req)
	require.NoError(t, err)
	batch, err := svc.PredictBatch(context.Background(), []Request{req})
	require.NoError(t, err)

	require.Len(t, batch, 1)
	assert.Equal(t, one.PredictedPrice, batch[0])
}

func TestPredictBatchEmpty(t *testing.T) {
	svc := testService(t)

	_, err := svc.PredictBatch(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
}

func TestConfidenceIntervalInvariant(t *testing.T) {
	svc := testService(t)

	for _, yearBuilt := range []float64{1950, 1987, 2003, 2021} {
		res, err := svc.PredictOne(context.Background(), "req", Request{
			SquareFeet: 1500, Bedrooms: 3, Bathrooms: 2, YearBuilt: yearBuilt,
		})
		require.NoError(t, err)
		assert.Equal(t, round2(res.PredictedPrice*0.9), res.ConfidenceInterval[0])
		assert.Equal(t, round2(res.PredictedPrice*1.1), res.ConfidenceInterval[1])
	}
}

type captureRecorder struct {
	requestID string
	estimate  float64
	err       error
}

func (r *captureRecorder) Record(_ context.Context, requestID string, _ Request, estimate float64) error {
	r.requestID = requestID
	r.estimate = estimate
	return r.err
}

func TestPredictOneRecordsPrediction(t *testing.T) {
	rec := &captureRecorder{}
	svc := testService(t, WithRecorder(rec))

	res, err := svc.PredictOne(context.Background(), "req-42", Request{
		SquareFeet: 1800, Bedrooms: 3, Bathrooms: 2, YearBuilt: 2000,
	})
	require.NoError(t, err)
	assert.Equal(t, "req-42", rec.requestID)
	assert.Equal(t, res.PredictedPrice, rec.estimate)
}

func TestRecorderFailureNotSurfaced(t *testing.T) {
	rec := &captureRecorder{err: errors.New("pg down")}
	svc := testService(t, WithRecorder(rec))

	_, err := svc.PredictOne(context.Background(), "req-42", Request{
		SquareFeet: 1800, Bedrooms: 3, Bathrooms: 2, YearBuilt: 2000,
	})
	require.NoError(t, err)
}
