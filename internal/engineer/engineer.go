// Package engineer implements the feature-engineering stage: derive the
// shared feature columns over the cleaned dataset, fit the preprocessor on
// the resulting matrix, and write both outputs for the training stage.
package engineer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"houseprice/internal/dataset"
	"houseprice/internal/features"
	"houseprice/internal/model"
)

// Params names the stage's file contract: paths in, paths out.
type Params struct {
	InputPath        string
	OutputPath       string
	PreprocessorPath string
	ReferenceYear    int
}

// Run executes the stage. The preprocessor is fitted on exactly the feature
// matrix the predictor will build at inference time, so train and serve see
// the same transformation.
func Run(ctx context.Context, logger *slog.Logger, p Params) error {
	tbl, err := dataset.ReadFile(p.InputPath)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "loaded cleaned dataset",
		"path", p.InputPath,
		"rows", tbl.NumRows(),
	)

	featured, err := features.Derive(tbl, p.ReferenceYear)
	if err != nil {
		return err
	}

	X, err := Matrix(featured)
	if err != nil {
		return err
	}
	scaler, err := model.FitScaler(features.InputColumns, X)
	if err != nil {
		return err
	}

	if err := dataset.WriteFile(p.OutputPath, featured); err != nil {
		return err
	}
	data, err := model.EncodeScaler(scaler)
	if err != nil {
		return err
	}
	if err := writeArtifact(p.PreprocessorPath, data); err != nil {
		return err
	}

	logger.InfoContext(ctx, "feature engineering complete",
		"rows", featured.NumRows(),
		"features", len(features.InputColumns),
		"output", p.OutputPath,
		"preprocessor", p.PreprocessorPath,
	)
	return nil
}

// Matrix extracts the feature matrix in features.InputColumns order.
func Matrix(t *dataset.Table) ([][]float64, error) {
	cols := make([][]float64, len(features.InputColumns))
	for j, name := range features.InputColumns {
		vals, err := t.NumericColumn(name)
		if err != nil {
			return nil, err
		}
		if len(vals) != t.NumRows() {
			return nil, fmt.Errorf("engineer: column %q has missing cells", name)
		}
		cols[j] = vals
	}

	X := make([][]float64, t.NumRows())
	for i := range X {
		row := make([]float64, len(cols))
		for j := range cols {
			row[j] = cols[j][i]
		}
		X[i] = row
	}
	return X, nil
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("engineer: create artifact dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("engineer: write %q: %w", path, err)
	}
	return nil
}
