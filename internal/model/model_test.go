package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalerFitTransform(t *testing.T) {
	X := [][]float64{{1, 10}, {3, 10}}
	s, err := FitScaler([]string{"a", "b"}, X)
	require.NoError(t, err)

	out, err := s.Transform(X)
	require.NoError(t, err)

	assert.InDelta(t, -1, out[0][0], 1e-9)
	assert.InDelta(t, 1, out[1][0], 1e-9)
	// Zero-variance column maps to zero.
	assert.Equal(t, 0.0, out[0][1])
	assert.Equal(t, 0.0, out[1][1])
}

func TestScalerWidthMismatch(t *testing.T) {
	s, err := FitScaler([]string{"a"}, [][]float64{{1}, {2}})
	require.NoError(t, err)

	_, err = s.Transform([][]float64{{1, 2}})
	require.Error(t, err)
}

func TestScalerCodecRoundTrip(t *testing.T) {
	s, err := FitScaler([]string{"a", "b"}, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	data, err := EncodeScaler(s)
	require.NoError(t, err)
	got, err := DecodeScaler(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	_, err = DecodeScaler([]byte(`{"mean":[1],"std":[]}`))
	require.Error(t, err)
}

func TestLinearPredict(t *testing.T) {
	m := &Linear{Weights: []float64{2, -1}, Bias: 5}
	out, err := m.Predict([][]float64{{1, 1}, {0, 3}})
	require.NoError(t, err)
	assert.Equal(t, []float64{6, 2}, out)

	_, err = m.Predict([][]float64{{1}})
	require.Error(t, err)
}

func TestFitLinearRecoversLine(t *testing.T) {
	// y = 3x + 1 on standardized-ish inputs.
	X := [][]float64{{-1}, {-0.5}, {0}, {0.5}, {1}}
	y := make([]float64, len(X))
	for i, row := range X {
		y[i] = 3*row[0] + 1
	}

	m, err := FitLinear(X, y, FitConfig{LearningRate: 0.1, Epochs: 2000})
	require.NoError(t, err)

	assert.InDelta(t, 3, m.Weights[0], 1e-3)
	assert.InDelta(t, 1, m.Bias, 1e-3)
}

func TestFitLinearValidation(t *testing.T) {
	_, err := FitLinear(nil, nil, FitConfig{LearningRate: 0.1, Epochs: 10})
	require.Error(t, err)

	_, err = FitLinear([][]float64{{1}}, []float64{1, 2}, FitConfig{LearningRate: 0.1, Epochs: 10})
	require.Error(t, err)

	_, err = FitLinear([][]float64{{1}}, []float64{1}, FitConfig{})
	require.Error(t, err)
}

func TestLinearCodecRoundTrip(t *testing.T) {
	m := &Linear{Weights: []float64{1.5, -2}, Bias: 0.25}

	data, err := EncodeLinear(m)
	require.NoError(t, err)
	got, err := DecodeLinear(data)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	_, err = DecodeLinear([]byte(`{"weights":[]}`))
	require.Error(t, err)
}
