// Package train implements the training stage: fit the regression model on
// the featured dataset and publish both artifacts to the configured store.
package train

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"houseprice/internal/cleaning"
	"houseprice/internal/dataset"
	"houseprice/internal/engineer"
	"houseprice/internal/model"
)

// Config is the model configuration the stage reads from YAML.
type Config struct {
	LearningRate float64 `yaml:"learning_rate"`
	Epochs       int     `yaml:"epochs"`
}

// LoadConfig reads and validates the training configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("train: read config %q: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("train: parse config %q: %w", path, err)
	}
	if cfg.LearningRate <= 0 || cfg.Epochs <= 0 {
		return Config{}, fmt.Errorf("train: config %q: learning_rate and epochs must be positive", path)
	}
	return cfg, nil
}

// Store is the blob interface artifacts are published to.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
}

// Params names the stage's inputs and outputs.
type Params struct {
	DataPath         string
	PreprocessorPath string
	ModelOutputPath  string
	Config           Config

	// Upload destination; nil Store skips publishing.
	Store           Store
	ModelKey        string
	PreprocessorKey string
}

// Run fits the model and, when a store is configured, uploads both artifacts.
// The preprocessor is uploaded alongside the model so the serving side always
// finds a matching pair.
func Run(ctx context.Context, logger *slog.Logger, p Params) error {
	tbl, err := dataset.ReadFile(p.DataPath)
	if err != nil {
		return err
	}

	preBytes, err := os.ReadFile(p.PreprocessorPath)
	if err != nil {
		return fmt.Errorf("train: read preprocessor %q: %w", p.PreprocessorPath, err)
	}
	scaler, err := model.DecodeScaler(preBytes)
	if err != nil {
		return err
	}

	X, err := engineer.Matrix(tbl)
	if err != nil {
		return err
	}
	y, err := tbl.NumericColumn(cleaning.TargetColumn)
	if err != nil {
		return err
	}
	if len(y) != len(X) {
		return fmt.Errorf("train: target column has missing cells")
	}

	scaled, err := scaler.Transform(X)
	if err != nil {
		return err
	}

	m, err := model.FitLinear(scaled, y, model.FitConfig{
		LearningRate: p.Config.LearningRate,
		Epochs:       p.Config.Epochs,
	})
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "model trained",
		"rows", len(X),
		"epochs", p.Config.Epochs,
		"mse", meanSquaredError(m, scaled, y),
	)

	modelBytes, err := model.EncodeLinear(m)
	if err != nil {
		return err
	}
	if err := writeArtifact(p.ModelOutputPath, modelBytes); err != nil {
		return err
	}

	if p.Store == nil {
		logger.InfoContext(ctx, "no artifact store configured, skipping upload")
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.Store.Put(gctx, p.ModelKey, modelBytes) })
	g.Go(func() error { return p.Store.Put(gctx, p.PreprocessorKey, preBytes) })
	if err := g.Wait(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "artifacts uploaded",
		"model_key", p.ModelKey,
		"preprocessor_key", p.PreprocessorKey,
	)
	return nil
}

func meanSquaredError(m *model.Linear, X [][]float64, y []float64) float64 {
	preds, err := m.Predict(X)
	if err != nil {
		return 0
	}
	var sum float64
	for i, p := range preds {
		d := p - y[i]
		sum += d * d
	}
	return sum / float64(len(y))
}

func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("train: create artifact dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("train: write %q: %w", path, err)
	}
	return nil
}
