package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/signupdesk/signupdesk/backend/internal/config"
)

const presignExpiry = 15 * time.Minute

// MinIOExporter uploads record snapshots to a bucket and hands back a
// presigned download URL.
type MinIOExporter struct {
	client *minio.Client
	bucket string
}

// NewMinIOExporter creates the client and ensures the bucket exists.
func NewMinIOExporter(ctx context.Context, cfg config.MinIOConfig) (*MinIOExporter, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, cfg.Bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return &MinIOExporter{client: mc, bucket: cfg.Bucket}, nil
}

// Export stores data under key and returns a presigned GET URL for it.
func (s *MinIOExporter) Export(ctx context.Context, key string, data []byte) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, presignExpiry, make(url.Values))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return presigned.String(), nil
}

// SnapshotKey names an export object after its creation time.
func SnapshotKey(now time.Time) string {
	return "exports/submissions-" + now.UTC().Format("20060102T150405Z") + ".json"
}
