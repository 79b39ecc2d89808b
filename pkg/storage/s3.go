package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/neuroeducatimo/landing/pkg/logger"
	"go.uber.org/zap"
)

// S3Client is the subset of the S3 API used by S3Storage
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage implements Storage interface for AWS S3
type S3Storage struct {
	client  S3Client
	bucket  string
	baseURL string
	now     func() time.Time
}

// S3Config holds S3-specific configuration
type S3Config struct {
	Bucket       string
	Region       string
	Endpoint     string // For S3-compatible storage (MinIO, etc.)
	AccessKey    string
	SecretKey    string
	BaseURL      string // CDN or custom domain URL prefix
	UsePathStyle bool
}

// NewS3Storage creates a new S3 storage instance
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}

	// Use explicit credentials if provided
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewS3StorageWithClient(client, cfg), nil
}

// NewS3StorageWithClient wraps an existing client
func NewS3StorageWithClient(client S3Client, cfg S3Config) *S3Storage {
	return &S3Storage{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: s3BaseURL(cfg),
		now:     time.Now,
	}
}

func s3BaseURL(cfg S3Config) string {
	if cfg.BaseURL != "" {
		return strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s", strings.TrimRight(cfg.Endpoint, "/"), cfg.Bucket)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
}

// Upload uploads a file to S3
func (s *S3Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (*UploadResult, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
		CacheControl:  aws.String("public, max-age=31536000, immutable"),
		ACL:           types.ObjectCannedACLPublicRead,
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		logger.WithContext(ctx).Error("Failed to upload to S3", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	logger.WithContext(ctx).Info("File uploaded to S3", zap.String("key", key), zap.Int64("size", size))

	return &UploadResult{
		Key:        key,
		URL:        s.GetURL(key),
		Size:       size,
		MimeType:   contentType,
		UploadedAt: s.now(),
	}, nil
}

// Delete deletes a file from S3
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		logger.WithContext(ctx).Error("Failed to delete from S3", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete from S3: %w", err)
	}

	logger.WithContext(ctx).Info("File deleted from S3", zap.String("key", key))
	return nil
}

// GetURL returns the public URL for a file
func (s *S3Storage) GetURL(key string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, strings.TrimLeft(key, "/"))
}
