package filestorage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// S3Config holds settings for an S3-compatible object store
type S3Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UploadTimeout time.Duration
}

// S3Storage stores objects in an S3-compatible bucket. A custom Endpoint
// makes it work against MinIO or Supabase storage as well as AWS.
type S3Storage struct {
	client *s3.Client
	config S3Config
	logger zerolog.Logger
}

// NewS3Storage builds the S3 client from static credentials.
func NewS3Storage(ctx context.Context, cfg S3Config, logger zerolog.Logger) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage credentials: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Storage{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

// Upload puts the object into the bucket and returns its public URL. The
// call is bounded by the configured upload timeout so a stalled store
// cannot hold the request forever.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (*ObjectInfo, error) {
	if s.config.UploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.UploadTimeout)
		defer cancel()
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("bucket", s.config.Bucket).Str("key", key).Msg("Object upload failed")
		return nil, fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	info := &ObjectInfo{
		Key:      key,
		URL:      s.publicURL(key),
		Size:     size,
		MimeType: contentType,
	}

	s.logger.Info().Str("bucket", s.config.Bucket).Str("key", key).Int64("size", size).Msg("Object uploaded")
	return info, nil
}

// publicURL builds the externally reachable URL for a stored object.
func (s *S3Storage) publicURL(key string) string {
	if s.config.Endpoint != "" {
		return strings.TrimRight(s.config.Endpoint, "/") + "/" + s.config.Bucket + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.Bucket, s.config.Region, key)
}

// BuildObjectKey derives a collision-resistant key from the original
// filename: a nanosecond timestamp prefix plus the sanitized base name.
func BuildObjectKey(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	if base == "." || base == ".." || base == "/" || base == "" {
		base = "upload"
	}
	return fmt.Sprintf("%d_%s", time.Now().UnixNano(), base)
}
