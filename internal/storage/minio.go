package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/MohamedX1935/SkillBoard/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ReportStore archives generated reports in a MinIO bucket.
type ReportStore struct {
	client *minio.Client
	bucket string
}

// NewReportStore creates a MinIO client and ensures the bucket exists.
func NewReportStore(ctx context.Context, cfg config.MinIOConfig) (*ReportStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint not configured")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &ReportStore{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// ReportKey names a report object by its generation time.
func ReportKey(now time.Time) string {
	return "reports/skillboard-report-" + now.UTC().Format("20060102-150405") + ".pdf"
}

// Upload stores a PDF under key.
func (s *ReportStore) Upload(ctx context.Context, key string, r io.Reader, size int64) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: "application/pdf"})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

// PresignedURL returns a GET URL for key valid for the given duration.
func (s *ReportStore) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	params := make(url.Values)
	params.Set("response-content-disposition", `attachment; filename="skillboard-report.pdf"`)
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expires, params)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
