// Package objectstore issues pre-signed upload URLs so image payloads bypass
// the API layer entirely.
package objectstore

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/config"
)

const uploadURLTTL = 5 * time.Minute

type (
	Upload struct {
		Key       string
		UploadURL string
		ReadURL   string
	}

	Client struct {
		cfg *config.Config
	}
)

func NewClient(cfg *config.Config) *Client {
	return &Client{cfg: cfg}
}

// UploadURL derives a fresh object key and returns a time-limited pre-signed
// PUT URL for it plus the public read URL.
func (c *Client) UploadURL(ctx context.Context) (*Upload, error) {
	presignClient, err := c.presignClient(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "presign client")
	}

	key := StorageKey(time.Now())
	req, err := presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.cfg.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(uploadURLTTL))
	if err != nil {
		return nil, errors.Wrap(err, "presign put")
	}

	return &Upload{
		Key:       key,
		UploadURL: req.URL,
		ReadURL:   c.ReadURL(key),
	}, nil
}

func (c *Client) ReadURL(key string) string {
	if c.cfg.S3Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", c.cfg.S3Endpoint, c.cfg.S3Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", c.cfg.S3Bucket, c.cfg.S3Region, key)
}

func (c *Client) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.cfg.S3Region),
	}
	if c.cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.cfg.S3AccessKey, c.cfg.S3SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(c.cfg.S3Endpoint)
		}
	})
	return s3.NewPresignClient(client), nil
}

// StorageKey derives a date-partitioned object key.
func StorageKey(now time.Time) string {
	return fmt.Sprintf("images/%d/%02d/%02d/%s", now.Year(), now.Month(), now.Day(), uuid.New())
}
