package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"houseprice/internal/artifact"
	"houseprice/internal/platform/config"
)

type noopS3 struct{}

func (noopS3) GetObject(_ context.Context, _ *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	return nil, errors.New("not implemented")
}

func (noopS3) PutObject(_ context.Context, _ *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	return nil, errors.New("not implemented")
}

func testConfig(bucket string) *config.Config {
	return &config.Config{
		S3Bucket:              bucket,
		ModelKey:              "production/model.json",
		PreprocessorKey:       "production/preprocessor.json",
		LocalModelPath:        "models/trained/model.json",
		LocalPreprocessorPath: "models/trained/preprocessor.json",
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sourceNames(sources []artifact.Source) []string {
	names := make([]string, len(sources))
	for i, s := range sources {
		names[i] = s.Name()
	}
	return names
}

func TestBuildSourcesRemoteThenLocal(t *testing.T) {
	sources := buildSources(context.Background(), testLogger(), testConfig("artifacts"),
		func(context.Context) (*artifact.S3Store, error) {
			return artifact.NewS3StoreWithClient(noopS3{}, "artifacts"), nil
		})

	assert.Equal(t, []string{"s3", "local"}, sourceNames(sources))
}

func TestBuildSourcesFailedClientInitFallsBackToLocal(t *testing.T) {
	sources := buildSources(context.Background(), testLogger(), testConfig("artifacts"),
		func(context.Context) (*artifact.S3Store, error) {
			return nil, errors.New("loading aws config: profile not found")
		})

	require.Equal(t, []string{"local"}, sourceNames(sources))
}

func TestBuildSourcesNoBucketSkipsRemote(t *testing.T) {
	factoryCalled := false
	sources := buildSources(context.Background(), testLogger(), testConfig(""),
		func(context.Context) (*artifact.S3Store, error) {
			factoryCalled = true
			return nil, nil
		})

	assert.Equal(t, []string{"local"}, sourceNames(sources))
	assert.False(t, factoryCalled)
}
