package publish

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bilgisen/spacetraveling/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucket struct {
	objects      map[string]string
	contentTypes map[string]string
	failOn       string
}

func (f *fakeBucket) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	key := aws.ToString(in.Key)
	if key == f.failOn {
		return nil, errors.New("access denied")
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[key] = string(body)
	f.contentTypes[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func newBucket() *fakeBucket {
	return &fakeBucket{objects: map[string]string{}, contentTypes: map[string]string{}}
}

func seededStorage(t *testing.T) *storage.Storage {
	t.Helper()
	s, err := storage.NewStorage(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, s.WritePage(context.Background(), "index.html", []byte("<home>")))
	require.NoError(t, s.WritePage(context.Background(), "post/a/index.html", []byte("<post a>")))
	return s
}

func TestPublish(t *testing.T) {
	bucket := newBucket()
	p := NewPublisher(bucket, "spacetraveling")

	n, err := p.Publish(context.Background(), seededStorage(t))
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, "<home>", bucket.objects["index.html"])
	assert.Equal(t, "<post a>", bucket.objects["post/a/index.html"])
	assert.Contains(t, bucket.contentTypes["index.html"], "text/html")
}

func TestPublishStopsOnFailure(t *testing.T) {
	bucket := newBucket()
	bucket.failOn = "index.html"
	p := NewPublisher(bucket, "spacetraveling")

	n, err := p.Publish(context.Background(), seededStorage(t))

	assert.Error(t, err)
	assert.Equal(t, 0, n)
	assert.Empty(t, bucket.objects)
}
