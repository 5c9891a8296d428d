package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/spf13/afero"
)

type LocalStorage struct {
	fs      afero.Fs
	baseURL string
}

// NewLocalStorage roots all keys under root on fs.
func NewLocalStorage(fs afero.Fs, root, baseURL string) (*LocalStorage, error) {
	if root != "" {
		if err := fs.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create media root: %w", err)
		}
		fs = afero.NewBasePathFs(fs, root)
	}
	return &LocalStorage{fs: fs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	if err := s.fs.MkdirAll(path.Dir(key), 0o755); err != nil {
		return err
	}

	f, err := s.fs.OpenFile(key, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	err := s.fs.Remove(key)
	if err != nil && os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

// Exists reports whether key is present.
func (s *LocalStorage) Exists(key string) bool {
	ok, err := afero.Exists(s.fs, key)
	return err == nil && ok
}

func (s *LocalStorage) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}

// FileSystem serves stored files read-only, for mounting under the public base URL.
func (s *LocalStorage) FileSystem() http.FileSystem {
	return afero.NewHttpFs(afero.NewReadOnlyFs(s.fs))
}
