package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"content-admin/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// ErrNotFound is returned by Delete when the object is already gone.
var ErrNotFound = errors.New("object not found")

// Storage holds uploaded files addressed by a relative key such as "books/<uuid>.png".
type Storage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New builds the backend selected by cfg.Backend.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case "", "local":
		logrus.WithField("root", cfg.MediaRoot).Info("Using local file storage")
		return NewLocalStorage(afero.NewOsFs(), cfg.MediaRoot, cfg.PublicBaseURL)
	case "minio":
		return NewMinioStorage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
