package model

import (
	"encoding/json"
	"fmt"
)

// Linear is a linear regression model: estimate = bias + w·x.
type Linear struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// Predict returns one estimate per input row.
func (m *Linear) Predict(X [][]float64) ([]float64, error) {
	out := make([]float64, len(X))
	for i, row := range X {
		if len(row) != len(m.Weights) {
			return nil, fmt.Errorf("model: row has %d features, trained on %d", len(row), len(m.Weights))
		}
		sum := m.Bias
		for j, v := range row {
			sum += m.Weights[j] * v
		}
		out[i] = sum
	}
	return out, nil
}

// FitConfig controls gradient-descent training.
type FitConfig struct {
	LearningRate float64
	Epochs       int
}

// FitLinear trains a linear regression on X/y via full-batch gradient descent
// on the mean squared error. X is expected to be preprocessed (standardized);
// unscaled inputs make the fixed learning rate diverge.
func FitLinear(X [][]float64, y []float64, cfg FitConfig) (*Linear, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("model: empty training matrix")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("model: %d rows but %d targets", len(X), len(y))
	}
	if cfg.LearningRate <= 0 || cfg.Epochs <= 0 {
		return nil, fmt.Errorf("model: learning rate and epochs must be positive")
	}

	n := float64(len(X))
	m := &Linear{Weights: make([]float64, len(X[0]))}

	for ep := 0; ep < cfg.Epochs; ep++ {
		gW := make([]float64, len(m.Weights))
		gb := 0.0
		for i, row := range X {
			if len(row) != len(m.Weights) {
				return nil, fmt.Errorf("model: row %d has %d features, expected %d", i, len(row), len(m.Weights))
			}
			pred := m.Bias
			for j, v := range row {
				pred += m.Weights[j] * v
			}
			d := 2 * (pred - y[i]) / n
			for j, v := range row {
				gW[j] += d * v
			}
			gb += d
		}
		for j := range m.Weights {
			m.Weights[j] -= cfg.LearningRate * gW[j]
		}
		m.Bias -= cfg.LearningRate * gb
	}
	return m, nil
}

// EncodeLinear serializes the model for artifact storage.
func EncodeLinear(m *Linear) ([]byte, error) {
	return json.Marshal(m)
}

// DecodeLinear deserializes a model artifact.
func DecodeLinear(data []byte) (*Linear, error) {
	var m Linear
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("model: decode: %w", err)
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("model: decoded artifact has no weights")
	}
	return &m, nil
}
