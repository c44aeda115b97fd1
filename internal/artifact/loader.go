package artifact

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"houseprice/internal/model"
	dErrors "houseprice/pkg/domain-errors"
)

// Artifacts is the decoded, immutable pair the service holds for its
// lifetime. Constructed once during startup and shared read-only across
// requests; no locking is required because it is never mutated post-load.
type Artifacts struct {
	Model        model.Model
	Preprocessor model.Preprocessor
}

// Loader resolves artifacts from an ordered list of sources: first success
// wins, every failure is remembered for the terminal error.
type Loader struct {
	sources []Source
	logger  *slog.Logger
}

// NewLoader builds a loader over the given sources, tried in order.
func NewLoader(logger *slog.Logger, sources ...Source) *Loader {
	return &Loader{sources: sources, logger: logger}
}

// Load tries each source in turn, decoding both artifacts. A source failure
// (fetch or decode) is logged and the next source is consulted. When every
// source has failed the result is an ArtifactLoadError aggregating each
// source's failure; the caller must treat it as fatal and refuse to serve.
func (l *Loader) Load(ctx context.Context) (*Artifacts, error) {
	if len(l.sources) == 0 {
		return nil, dErrors.New(dErrors.CodeArtifactLoad, "no artifact sources configured")
	}

	var failures []string
	for _, src := range l.sources {
		arts, err := l.loadFrom(ctx, src)
		if err != nil {
			l.logger.WarnContext(ctx, "artifact source failed, falling back",
				"source", src.Name(),
				"error", err.Error(),
			)
			failures = append(failures, fmt.Sprintf("%s: %v", src.Name(), err))
			continue
		}
		l.logger.InfoContext(ctx, "artifacts loaded", "source", src.Name())
		return arts, nil
	}

	return nil, dErrors.Newf(dErrors.CodeArtifactLoad,
		"all artifact sources failed: %s", strings.Join(failures, "; "))
}

func (l *Loader) loadFrom(ctx context.Context, src Source) (*Artifacts, error) {
	pair, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	m, err := model.DecodeLinear(pair.Model)
	if err != nil {
		return nil, err
	}
	p, err := model.DecodeScaler(pair.Preprocessor)
	if err != nil {
		return nil, err
	}
	return &Artifacts{Model: m, Preprocessor: p}, nil
}
