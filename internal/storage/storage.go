// Package storage holds the blob store the file engine writes payloads to.
// Paths are opaque handles minted by the engine; the backends never parse
// them beyond treating them as object names.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/radaiko/ReadRiser/internal/config"
)

type Blob interface {
	Save(ctx context.Context, path string, reader io.Reader, size int64, contentType string) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	Delete(ctx context.Context, path string) error
}

// New builds the blob backend named by the configuration.
func New(ctx context.Context, cfg config.StorageConfig) (Blob, error) {
	switch cfg.Backend {
	case "minio":
		client, err := NewMinIOBlob(cfg.MinIO)
		if err != nil {
			return nil, err
		}
		if err := client.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return client, nil
	case "filesystem":
		return NewFilesystemBlob(cfg.Filesystem.Root)
	case "memory":
		return NewMemoryBlob(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
