// Package publish uploads exported pages to an S3-compatible bucket.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/bilgisen/spacetraveling/internal/logger"
)

// ObjectPutter is the subset of the S3 API used for publishing.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// PageSource lists and reads exported pages.
type PageSource interface {
	ListPages(ctx context.Context) ([]string, error)
	ReadPage(ctx context.Context, relPath string) ([]byte, error)
}

// R2Config holds the bucket credentials.
type R2Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// R2Publisher uploads pages to a Cloudflare R2 (or any S3-compatible) bucket.
type R2Publisher struct {
	client       ObjectPutter
	bucket       string
	cacheControl string
}

// NewR2Publisher builds an S3 client for the R2 endpoint.
func NewR2Publisher(ctx context.Context, cfg R2Config) (*R2Publisher, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return NewPublisher(client, cfg.Bucket), nil
}

// NewPublisher wraps an existing client.
func NewPublisher(client ObjectPutter, bucket string) *R2Publisher {
	return &R2Publisher{
		client:       client,
		bucket:       bucket,
		cacheControl: "public, max-age=3600",
	}
}

// Publish uploads every page of src and returns how many were uploaded. It
// stops at the first failed upload.
func (p *R2Publisher) Publish(ctx context.Context, src PageSource) (int, error) {
	log := logger.Component("publish")

	pages, err := src.ListPages(ctx)
	if err != nil {
		return 0, fmt.Errorf("list pages: %w", err)
	}

	for i, key := range pages {
		data, err := src.ReadPage(ctx, key)
		if err != nil {
			return i, err
		}

		contentType := mime.TypeByExtension(path.Ext(key))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:       aws.String(p.bucket),
			Key:          aws.String(key),
			Body:         bytes.NewReader(data),
			ContentType:  aws.String(contentType),
			CacheControl: aws.String(p.cacheControl),
		})
		if err != nil {
			return i, fmt.Errorf("upload %s: %w", key, err)
		}

		log.Debug().Str("bucket", p.bucket).Str("key", key).Int("bytes", len(data)).Msg("Uploaded page")
	}

	log.Info().Str("bucket", p.bucket).Int("pages", len(pages)).Msg("Published export")
	return len(pages), nil
}
