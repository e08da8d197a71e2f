// Package minio archives analysis request payloads in S3-compatible object
// storage so every engine call stays auditable and reproducible.
package minio

import (
	"context"
	"time"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/turtacn/WellNodal/internal/config"
	"github.com/turtacn/WellNodal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/WellNodal/pkg/errors"
)

// Client wraps the MinIO SDK with bucket bootstrap.
type Client struct {
	mc     *miniogo.Client
	bucket string
	logger logging.Logger
}

// NewClient connects to object storage and creates the configured bucket if
// it does not exist yet.
func NewClient(cfg config.MinIOConfig, log logging.Logger) (*Client, error) {
	mc, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "failed to create object storage client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeExternalService, "failed to check bucket")
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, miniogo.MakeBucketOptions{}); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeExternalService, "failed to create bucket")
		}
		log.Info("created object storage bucket", logging.String("bucket", cfg.Bucket))
	}

	return &Client{mc: mc, bucket: cfg.Bucket, logger: log}, nil
}

// Minio returns the underlying SDK client.
func (c *Client) Minio() *miniogo.Client {
	return c.mc
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
