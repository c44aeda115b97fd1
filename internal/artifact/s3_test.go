package artifact

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "houseprice/pkg/domain-errors"
)

type fakeS3 struct {
	objects map[string][]byte
	getErr  error
	putErr  error
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3StorePutGet(t *testing.T) {
	store := NewS3StoreWithClient(&fakeS3{}, "labs-content")

	require.NoError(t, store.Put(context.Background(), "production/model.json", []byte(`{"weights":[1]}`)))
	data, err := store.Get(context.Background(), "production/model.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"weights":[1]}`), data)
}

func TestS3StoreGetMissingKeyIsUpstream(t *testing.T) {
	store := NewS3StoreWithClient(&fakeS3{}, "labs-content")

	_, err := store.Get(context.Background(), "production/model.json")
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeUpstream))
}

func TestS3SourceFetchesBothOrFails(t *testing.T) {
	client := &fakeS3{objects: map[string][]byte{
		"production/model.json": []byte("m"),
	}}
	src := &S3Source{
		Store:           NewS3StoreWithClient(client, "labs-content"),
		ModelKey:        "production/model.json",
		PreprocessorKey: "production/preprocessor.json",
	}

	_, err := src.Fetch(context.Background())
	require.Error(t, err)

	client.objects["production/preprocessor.json"] = []byte("p")
	pair, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("m"), pair.Model)
	assert.Equal(t, []byte("p"), pair.Preprocessor)
}
