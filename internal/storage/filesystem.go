package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemBlob stores payloads as plain files under a root directory; the
// opaque storage path becomes the relative file path.
type FilesystemBlob struct {
	root string
}

func NewFilesystemBlob(root string) (*FilesystemBlob, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed creating storage root: %w", err)
	}
	return &FilesystemBlob{root: root}, nil
}

func (f *FilesystemBlob) resolve(path string) (string, error) {
	full := filepath.Join(f.root, filepath.FromSlash(path))
	rel, err := filepath.Rel(f.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage path %q", path)
	}
	return full, nil
}

func (f *FilesystemBlob) Save(_ context.Context, path string, reader io.Reader, size int64, _ string) error {
	full, err := f.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed creating blob directory: %w", err)
	}

	out, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed creating blob file: %w", err)
	}

	written, err := io.Copy(out, reader)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(full)
		return fmt.Errorf("failed writing blob: %w", err)
	}
	if written != size {
		_ = os.Remove(full)
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}
	return nil
}

func (f *FilesystemBlob) Open(_ context.Context, path string) (io.ReadCloser, error) {
	full, err := f.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.Open(full)
}

func (f *FilesystemBlob) Delete(_ context.Context, path string) error {
	full, err := f.resolve(path)
	if err != nil {
		return err
	}
	return os.Remove(full)
}
