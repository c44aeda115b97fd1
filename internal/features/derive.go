// Package features computes the derived columns shared by the training and
// inference paths. Derivation is a pure function of the input record and an
// explicit reference year; inference and the engineering stage must call it
// with the same definitions or the model sees skewed inputs.
package features

import (
	"math"
	"strconv"

	"houseprice/internal/dataset"
	dErrors "houseprice/pkg/domain-errors"
)

// Derived column names.
const (
	ColHouseAge     = "house_age"
	ColBedBathRatio = "bed_bath_ratio"
	ColPricePerSqft = "price_per_sqft"
)

// InputColumns is the feature matrix layout fed to the preprocessor and the
// model, in order. The engineering stage and the predictor must agree on it.
var InputColumns = []string{
	"sqft", "bedrooms", "bathrooms", "year_built",
	ColHouseAge, ColBedBathRatio, ColPricePerSqft,
}

// Record carries the numeric housing attributes of one inference request.
type Record struct {
	SquareFeet float64
	Bedrooms   float64
	Bathrooms  float64
	YearBuilt  float64
}

// DeriveRecord builds the feature vector for a single record, laid out in
// InputColumns order. A zero bathrooms value is a DataError: the ratio would
// not be finite and the caller decides whether to reject or impute.
func DeriveRecord(rec Record, referenceYear int) ([]float64, error) {
	if rec.Bathrooms == 0 {
		return nil, dErrors.New(dErrors.CodeBadData, "bathrooms must be non-zero")
	}

	houseAge := float64(referenceYear) - rec.YearBuilt
	ratio := rec.Bedrooms / rec.Bathrooms
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return nil, dErrors.New(dErrors.CodeBadData, "bed_bath_ratio is not finite")
	}

	// price_per_sqft is a placeholder constant. Models are trained against
	// the same constant, so serving must feed it unchanged.
	return []float64{
		rec.SquareFeet, rec.Bedrooms, rec.Bathrooms, rec.YearBuilt,
		houseAge, ratio, 0,
	}, nil
}

// Derive appends the derived columns to every row of the table.
func Derive(t *dataset.Table, referenceYear int) (*dataset.Table, error) {
	out := t.Clone()

	years, err := requireColumn(out, "year_built")
	if err != nil {
		return nil, err
	}
	beds, err := requireColumn(out, "bedrooms")
	if err != nil {
		return nil, err
	}
	baths, err := requireColumn(out, "bathrooms")
	if err != nil {
		return nil, err
	}

	ages := make([]string, len(out.Rows))
	ratios := make([]string, len(out.Rows))
	perSqft := make([]string, len(out.Rows))
	for i := range out.Rows {
		if baths[i] == 0 {
			return nil, dErrors.Newf(dErrors.CodeBadData, "row %d: bathrooms must be non-zero", i)
		}
		ages[i] = dataset.FormatFloat(float64(referenceYear) - years[i])
		ratios[i] = dataset.FormatFloat(beds[i] / baths[i])
		perSqft[i] = "0"
	}

	if err := out.AppendColumn(ColHouseAge, ages); err != nil {
		return nil, err
	}
	if err := out.AppendColumn(ColBedBathRatio, ratios); err != nil {
		return nil, err
	}
	if err := out.AppendColumn(ColPricePerSqft, perSqft); err != nil {
		return nil, err
	}
	return out, nil
}

// requireColumn parses a fully populated numeric column; any missing cell is
// a DataError because derivation runs after cleaning.
func requireColumn(t *dataset.Table, name string) ([]float64, error) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeBadData, "column %q not present", name)
	}
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		cell := row[idx]
		if dataset.IsMissing(cell) {
			return nil, dErrors.Newf(dErrors.CodeBadData, "column %q row %d is missing", name, i)
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, dErrors.Newf(dErrors.CodeBadData, "column %q row %d: %q is not numeric", name, i, cell)
		}
		out[i] = v
	}
	return out, nil
}
