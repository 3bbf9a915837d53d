// Package storage reads reference datasets from S3-compatible object storage.
package storage

import (
	"context"
	"io"
)

// ObjectReader is the read side of the object store used at startup.
type ObjectReader interface {
	// EnsureBucketReadable fails when the bucket is missing or unreachable.
	EnsureBucketReadable(ctx context.Context, bucket string) error

	// DownloadFile opens an object after checking its type and size.
	// The caller is responsible for closing the returned io.ReadCloser.
	DownloadFile(ctx context.Context, bucket, fileKey string) (io.ReadCloser, error)
}

// Config defines the configuration interface for storage.
type Config interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	IsMinIOEnabled() bool
}
