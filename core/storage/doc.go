// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so the publish feature can push generated
// catalogs to AWS S3 or a self-hosted MinIO instance behind one interface.
// The Client interface keeps storage interactions mockable for unit testing
// (see core/storage/mocks).
package storage
