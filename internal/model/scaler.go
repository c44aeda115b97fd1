package model

import (
	"encoding/json"
	"fmt"

	"houseprice/internal/stats"
)

// StandardScaler standardizes each feature column to zero mean and unit
// variance using statistics captured at fit time. Columns with zero variance
// transform to zero.
type StandardScaler struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Std     []float64 `json:"std"`
}

// FitScaler computes per-column mean and standard deviation over the training
// matrix.
func FitScaler(columns []string, X [][]float64) (*StandardScaler, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("scaler: empty training matrix")
	}
	cols := len(X[0])
	if cols != len(columns) {
		return nil, fmt.Errorf("scaler: %d columns named, matrix has %d", len(columns), cols)
	}

	mean := make([]float64, cols)
	std := make([]float64, cols)
	col := make([]float64, len(X))
	for j := 0; j < cols; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		mean[j] = stats.Mean(col)
		std[j] = stats.Std(col)
	}

	return &StandardScaler{Columns: append([]string(nil), columns...), Mean: mean, Std: std}, nil
}

// Transform standardizes each row with the fitted statistics.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("scaler: row has %d features, fitted on %d", len(row), len(s.Mean))
		}
		o := make([]float64, len(row))
		for j, v := range row {
			if s.Std[j] != 0 {
				o[j] = (v - s.Mean[j]) / s.Std[j]
			}
		}
		out[i] = o
	}
	return out, nil
}

// EncodeScaler serializes the scaler for artifact storage.
func EncodeScaler(s *StandardScaler) ([]byte, error) {
	return json.Marshal(s)
}

// DecodeScaler deserializes a scaler artifact.
func DecodeScaler(data []byte) (*StandardScaler, error) {
	var s StandardScaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("scaler: decode: %w", err)
	}
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Std) {
		return nil, fmt.Errorf("scaler: decoded artifact has inconsistent statistics")
	}
	return &s, nil
}
