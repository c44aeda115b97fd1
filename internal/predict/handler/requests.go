package handler

import (
	"houseprice/internal/predict"
	dErrors "houseprice/pkg/domain-errors"
)

// PredictRequest is the transport shape of one housing record.
type PredictRequest struct {
	SquareFeet float64 `json:"sqft"`
	Bedrooms   float64 `json:"bedrooms"`
	Bathrooms  float64 `json:"bathrooms"`
	YearBuilt  float64 `json:"year_built"`
}

// Validate rejects records the predictor cannot price, naming the offending
// field. A zero bathrooms value is left for the feature deriver so single and
// batch paths report it identically.
func (r PredictRequest) Validate() error {
	switch {
	case r.SquareFeet <= 0:
		return dErrors.New(dErrors.CodeBadRequest, "sqft must be positive")
	case r.Bedrooms <= 0:
		return dErrors.New(dErrors.CodeBadRequest, "bedrooms must be positive")
	case r.Bathrooms < 0:
		return dErrors.New(dErrors.CodeBadRequest, "bathrooms must not be negative")
	case r.YearBuilt <= 0:
		return dErrors.New(dErrors.CodeBadRequest, "year_built must be positive")
	}
	return nil
}

// ToDomain converts the transport record into the service request.
func (r PredictRequest) ToDomain() predict.Request {
	return predict.Request{
		SquareFeet: r.SquareFeet,
		Bedrooms:   r.Bedrooms,
		Bathrooms:  r.Bathrooms,
		YearBuilt:  r.YearBuilt,
	}
}

// BatchResponse wraps batch estimates in input order.
type BatchResponse struct {
	Predictions []float64 `json:"predictions"`
}
