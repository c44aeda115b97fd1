// Package pipeline declares the batch training workflow as a small DAG of
// stages and compiles it to a YAML document that an orchestrator can run.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	dErrors "houseprice/pkg/domain-errors"
)

// Stage is one step of the workflow. Inputs and Outputs are named artifact
// paths; DependsOn links stages into a DAG.
type Stage struct {
	Name      string            `yaml:"name"`
	Image     string            `yaml:"image,omitempty"`
	Command   []string          `yaml:"command"`
	Inputs    map[string]string `yaml:"inputs,omitempty"`
	Outputs   map[string]string `yaml:"outputs,omitempty"`
	DependsOn []string          `yaml:"depends_on,omitempty"`
}

// Pipeline is an ordered set of stages plus free-form parameters that the
// stage commands may reference.
type Pipeline struct {
	Name       string            `yaml:"name"`
	Parameters map[string]string `yaml:"parameters,omitempty"`
	Stages     []Stage           `yaml:"stages"`
}

// Validate checks that stage names are unique and that every dependency
// refers to a stage declared earlier in the list.
func (p *Pipeline) Validate() error {
	if p.Name == "" {
		return dErrors.New(dErrors.CodeBadRequest, "pipeline name must be set")
	}
	if len(p.Stages) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "pipeline has no stages")
	}
	seen := make(map[string]bool, len(p.Stages))
	for _, st := range p.Stages {
		if st.Name == "" {
			return dErrors.New(dErrors.CodeBadRequest, "stage name must be set")
		}
		if seen[st.Name] {
			return dErrors.Newf(dErrors.CodeBadRequest, "duplicate stage %q", st.Name)
		}
		if len(st.Command) == 0 {
			return dErrors.Newf(dErrors.CodeBadRequest, "stage %q has no command", st.Name)
		}
		for _, dep := range st.DependsOn {
			if !seen[dep] {
				return dErrors.Newf(dErrors.CodeBadRequest, "stage %q depends on unknown stage %q", st.Name, dep)
			}
		}
		seen[st.Name] = true
	}
	return nil
}

// Compile validates the pipeline and writes it as YAML to path.
func (p *Pipeline) Compile(path string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pipeline: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write pipeline: %w", err)
	}
	return nil
}

// Params carries the artifact locations the default workflow is built from.
type Params struct {
	RawDataPath     string
	ConfigPath      string
	Bucket          string
	ModelKey        string
	PreprocessorKey string

	// Image is the container image all stages run in. Empty leaves the
	// choice to the orchestrator.
	Image string
}

// Default returns the standard three-stage training workflow: clean the raw
// data, derive features and fit the preprocessor, then train the model and
// publish both artifacts.
func Default(p Params) *Pipeline {
	return &Pipeline{
		Name: "house-price-training",
		Parameters: map[string]string{
			"raw_data_path": p.RawDataPath,
			"config_path":   p.ConfigPath,
			"s3_bucket":     p.Bucket,
		},
		Stages: []Stage{
			{
				Name:    "process-data",
				Image:   p.Image,
				Command: []string{"process", "--input", p.RawDataPath, "--output", "data/processed/cleaned_house_data.csv"},
				Inputs:  map[string]string{"raw_data": p.RawDataPath},
				Outputs: map[string]string{"cleaned_data": "data/processed/cleaned_house_data.csv"},
			},
			{
				Name:  "engineer-features",
				Image: p.Image,
				Command: []string{
					"engineer",
					"--input", "data/processed/cleaned_house_data.csv",
					"--output", "data/processed/featured_house_data.csv",
					"--preprocessor", "models/trained/preprocessor.json",
				},
				Inputs: map[string]string{"cleaned_data": "data/processed/cleaned_house_data.csv"},
				Outputs: map[string]string{
					"featured_data": "data/processed/featured_house_data.csv",
					"preprocessor":  "models/trained/preprocessor.json",
				},
				DependsOn: []string{"process-data"},
			},
			{
				Name:  "train-and-upload",
				Image: p.Image,
				Command: []string{
					"train",
					"--config", p.ConfigPath,
					"--data", "data/processed/featured_house_data.csv",
					"--preprocessor", "models/trained/preprocessor.json",
					"--output-model-path", "models/trained/model.json",
					"--bucket", p.Bucket,
					"--model-key", p.ModelKey,
					"--preprocessor-key", p.PreprocessorKey,
				},
				Inputs: map[string]string{
					"featured_data": "data/processed/featured_house_data.csv",
					"preprocessor":  "models/trained/preprocessor.json",
				},
				Outputs:   map[string]string{"model": "models/trained/model.json"},
				DependsOn: []string{"engineer-features"},
			},
		},
	}
}
