// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the report archive needs: checking bucket existence, creating
// the bucket, and uploading rendered reports. This abstraction supports both
// AWS S3 and self-hosted MinIO instances, and lets tests substitute a mock
// client (see the mocks subpackage).
package storage
