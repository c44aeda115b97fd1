// Package artifact resolves the trained model and preprocessor at service
// startup. Sources are tried in order; the first one that yields both
// artifacts wins. Artifact bytes are opaque at this layer; decoding belongs
// to the loader's codec step.
package artifact

import (
	"context"
	"fmt"
	"os"

	dErrors "houseprice/pkg/domain-errors"
)

// Pair holds the raw bytes of both artifacts fetched from a single source.
// A source never returns a partial pair.
type Pair struct {
	Model        []byte
	Preprocessor []byte
}

// Source fetches both artifacts from one location.
type Source interface {
	// Name identifies the source in logs and aggregated failures.
	Name() string
	// Fetch returns both artifact payloads or an error; partial results are
	// never returned.
	Fetch(ctx context.Context) (*Pair, error)
}

// LocalSource reads artifacts from the filesystem fallback paths.
type LocalSource struct {
	ModelPath        string
	PreprocessorPath string
}

func (s *LocalSource) Name() string { return "local" }

// Fetch reads both files. A missing path is an ArtifactNotFound naming the
// path so operators can see which artifact is absent.
func (s *LocalSource) Fetch(_ context.Context) (*Pair, error) {
	modelBytes, err := readArtifact(s.ModelPath)
	if err != nil {
		return nil, err
	}
	preBytes, err := readArtifact(s.PreprocessorPath)
	if err != nil {
		return nil, err
	}
	return &Pair{Model: modelBytes, Preprocessor: preBytes}, nil
}

func readArtifact(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dErrors.Wrap(dErrors.CodeArtifactNotFound, fmt.Sprintf("local path %q", path), err)
		}
		return nil, dErrors.Wrap(dErrors.CodeArtifactNotFound, fmt.Sprintf("read %q", path), err)
	}
	return data, nil
}
