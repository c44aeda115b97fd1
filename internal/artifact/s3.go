package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	dErrors "houseprice/pkg/domain-errors"
)

// S3API is the slice of the S3 client the store needs; narrowed for tests.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store is a key-value blob client over one bucket: the remote side of the
// artifact contract (get at serve time, put at train time).
type S3Store struct {
	client S3API
	bucket string
}

// NewS3Store builds a store against the given bucket. When an explicit
// credential pair is supplied it is used as a static provider, mirroring how
// the training pipeline receives credentials; otherwise the SDK default chain
// applies.
func NewS3Store(ctx context.Context, bucket, region, accessKeyID, secretAccessKey string) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKeyID != "" && secretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUpstream, "loading aws config", err)
	}
	return &S3Store{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// NewS3StoreWithClient wires a prebuilt client; used by tests.
func NewS3StoreWithClient(client S3API, bucket string) *S3Store {
	return &S3Store{client: client, bucket: bucket}
}

// Get downloads one object.
func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUpstream, fmt.Sprintf("s3 get s3://%s/%s", s.bucket, key), err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeUpstream, fmt.Sprintf("s3 read s3://%s/%s", s.bucket, key), err)
	}
	return data, nil
}

// Put uploads one object.
func (s *S3Store) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return dErrors.Wrap(dErrors.CodeUpstream, fmt.Sprintf("s3 put s3://%s/%s", s.bucket, key), err)
	}
	return nil
}

// S3Source adapts the store to the Source interface for the loader.
type S3Source struct {
	Store           *S3Store
	ModelKey        string
	PreprocessorKey string
}

func (s *S3Source) Name() string { return "s3" }

func (s *S3Source) Fetch(ctx context.Context) (*Pair, error) {
	modelBytes, err := s.Store.Get(ctx, s.ModelKey)
	if err != nil {
		return nil, err
	}
	preBytes, err := s.Store.Get(ctx, s.PreprocessorKey)
	if err != nil {
		return nil, err
	}
	return &Pair{Model: modelBytes, Preprocessor: preBytes}, nil
}
