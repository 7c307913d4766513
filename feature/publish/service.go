package publish

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"nms-extractor/core/storage"
)

// Service uploads generated catalog files to the configured bucket.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a new publish service.
func NewService(client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{client: client, bucket: bucket, logger: logger}
}

// Upload pushes every JSON file in dir to the bucket, creating the bucket
// when absent. Returns the number of files uploaded.
func (s *Service) Upload(ctx context.Context, dir string) (int, error) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return 0, fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return 0, fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
		s.logger.Info("bucket created", zap.String("bucket", s.bucket))
	}

	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("list catalogs in %s: %w", dir, err)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		return 0, fmt.Errorf("no catalog files in %s", dir)
	}

	uploaded := 0
	for _, path := range paths {
		name := filepath.Base(path)
		if err := s.uploadFile(ctx, path, name); err != nil {
			return uploaded, err
		}
		uploaded++
		s.logger.Info("catalog uploaded", zap.String("object", name))
	}
	return uploaded, nil
}

func (s *Service) uploadFile(ctx context.Context, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", name, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, name, f, info.Size(), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", name, err)
	}
	return nil
}
