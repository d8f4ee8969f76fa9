// Package storage hands out presigned URLs for film assets. Asset bytes go
// straight between the client and the object store; this service only
// brokers keys and URLs.
package storage

import (
	"context"
	"fmt"
	"time"

	"screenvault/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

// AssetStore issues upload and download URLs for stored objects.
type AssetStore interface {
	PresignUpload(ctx context.Context, kind string) (key string, url string, err error)
	PresignDownload(ctx context.Context, key string) (url string, err error)
}

type s3Store struct {
	config  utils.S3Config
	presign *s3.PresignClient
}

func NewS3Store(ctx context.Context, config utils.S3Config) (AssetStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(config.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			config.AccessKey,
			config.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(config.BaseEndpoint)
		}
		o.UsePathStyle = config.BaseEndpoint != ""
	})

	return &s3Store{
		config:  config,
		presign: s3.NewPresignClient(client),
	}, nil
}

// objectKey partitions uploads by kind and date so buckets stay browsable.
func objectKey(kind string) string {
	d := time.Now()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s", kind, d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *s3Store) PresignUpload(ctx context.Context, kind string) (string, string, error) {
	key := objectKey(kind)

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", "", fmt.Errorf("presign upload for %s: %w", kind, err)
	}

	return key, req.URL, nil
}

func (s *s3Store) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign download for %s: %w", key, err)
	}

	return req.URL, nil
}
