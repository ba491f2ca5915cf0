package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/souviksingh11/farmmate/internal/config"
)

// ObjectStore holds scan images in S3-compatible storage. When no
// bucket is configured the server keeps images inline as data URIs, so
// every stored record still resolves on its own.
type ObjectStore struct {
	client   *s3.Client
	bucket   string
	endpoint string
	region   string
}

// NewObjectStore returns nil when the bucket is unconfigured; callers
// treat a nil store as "inline storage only".
func NewObjectStore(cfg *config.Config) *ObjectStore {
	if cfg.S3Bucket == "" {
		return nil
	}

	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey, cfg.S3SecretKey, "",
		),
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	return &ObjectStore{
		client:   client,
		bucket:   cfg.S3Bucket,
		endpoint: cfg.S3Endpoint,
		region:   cfg.S3Region,
	}
}

// PutScanImage uploads raw image bytes under an opaque key and returns
// the public URL.
func (s *ObjectStore) PutScanImage(ctx context.Context, data []byte, mime string) (string, error) {
	key := fmt.Sprintf("scans/%s%s", uuid.NewString(), extensionFor(mime))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mime),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put scan image: %w", err)
	}

	return s.objectURL(key), nil
}

func (s *ObjectStore) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.endpoint, "/"), s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

func extensionFor(mime string) string {
	switch mime {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
