package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/group-fitness/backend/internal/config"
)

// Client issues presigned upload URLs for GPS route files against an
// S3-compatible bucket (MinIO locally, S3 in production).
type Client struct {
	presigner *s3.PresignClient
	bucket    string
}

// NewClient builds the storage client from the declared S3_* configuration.
func NewClient(ctx context.Context, cfg *config.StorageConfig, region string) (*Client, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("storage is not configured")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		// MinIO requires path-style addressing.
		o.UsePathStyle = true
	})

	return &Client{
		presigner: s3.NewPresignClient(s3Client),
		bucket:    cfg.Bucket,
	}, nil
}

// UploadURL is a presigned PUT target for a single route file.
type UploadURL struct {
	URL       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PresignRouteUpload returns a presigned PUT URL for a new GPS route file
// owned by userID. The client stores the resulting object link in the
// event's gps_file_link field.
func (c *Client) PresignRouteUpload(ctx context.Context, userID string) (*UploadURL, error) {
	const expiry = 15 * time.Minute

	key := fmt.Sprintf("routes/%s/%s.gpx", userID, uuid.New().String())
	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &UploadURL{
		URL:       req.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(expiry),
	}, nil
}
