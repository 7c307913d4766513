package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nms-extractor/core/storage/mocks"
)

func writeOutput(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("[]"), 0644))
	}
}

func TestUpload(t *testing.T) {
	t.Run("uploads every JSON file", func(t *testing.T) {
		dir := t.TempDir()
		writeOutput(t, dir, "Products.json", "Fish.json", "notes.txt")

		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalogs").Return(true, nil)
		client.On("PutObject", mock.Anything, "catalogs", "Fish.json",
			mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)
		client.On("PutObject", mock.Anything, "catalogs", "Products.json",
			mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

		svc := NewService(client, "catalogs", zap.NewNop())
		count, err := svc.Upload(context.Background(), dir)

		require.NoError(t, err)
		assert.Equal(t, 2, count)
		client.AssertExpectations(t)
		// Non-JSON files stay local.
		client.AssertNotCalled(t, "PutObject", mock.Anything, "catalogs", "notes.txt",
			mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("creates the bucket when absent", func(t *testing.T) {
		dir := t.TempDir()
		writeOutput(t, dir, "Products.json")

		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalogs").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "catalogs", mock.Anything).Return(nil)
		client.On("PutObject", mock.Anything, "catalogs", "Products.json",
			mock.Anything, mock.Anything, mock.Anything).Return(minio.UploadInfo{}, nil)

		svc := NewService(client, "catalogs", zap.NewNop())
		count, err := svc.Upload(context.Background(), dir)

		require.NoError(t, err)
		assert.Equal(t, 1, count)
		client.AssertExpectations(t)
	})

	t.Run("empty directory is an error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "catalogs").Return(true, nil)

		svc := NewService(client, "catalogs", zap.NewNop())
		_, err := svc.Upload(context.Background(), t.TempDir())

		assert.Error(t, err)
	})
}
