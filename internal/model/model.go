// Package model defines the artifact contracts the inference service depends
// on: a fitted Preprocessor exposing Transform and a Model exposing Predict.
// The concrete implementations here (StandardScaler, Linear) are what the
// training stage produces; the artifact loader treats their serialized forms
// as opaque bytes.
package model

// Preprocessor maps raw feature vectors into the space the model was trained
// on.
type Preprocessor interface {
	Transform(X [][]float64) ([][]float64, error)
}

// Model produces one point estimate per input row.
type Model interface {
	Predict(X [][]float64) ([]float64, error)
}
