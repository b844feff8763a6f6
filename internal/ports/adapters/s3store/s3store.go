package s3store

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/sqclip/sqclip/internal/types"
)

// Config holds object store connection settings. Endpoint is optional and
// enables path-style addressing for S3-compatible stores.
type Config struct {
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// Store talks to an S3-compatible object store.
type Store struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	log           zerolog.Logger
}

func New(ctx context.Context, cfg Config, log zerolog.Logger) (*Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &Store{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		log:           log.With().Str("component", "s3-store").Logger(),
	}, nil
}

func (s *Store) Put(ctx context.Context, bucket, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("%w: s3://%s/%s: %v", types.ErrUploadFailed, bucket, key, err)
	}
	s.log.Debug().Str("bucket", bucket).Str("key", key).Int("bytes", len(body)).Msg("object uploaded")
	return nil
}

// Exists reports whether the object is currently visible. Any head error,
// including transient ones, reads as not-yet-visible; the caller's
// confirmation polling absorbs the difference.
func (s *Store) Exists(ctx context.Context, bucket, key string) bool {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	return err == nil
}

func (s *Store) SignedGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", fmt.Errorf("presign s3://%s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}
