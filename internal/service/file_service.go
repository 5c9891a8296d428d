package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"content-admin/internal/domain/entity"
	"content-admin/internal/infrastructure/metrics"
	"content-admin/internal/infrastructure/storage"
	"content-admin/pkg/apperror"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	sniffLen       = 3072
	maxParallelDel = 4
)

type FileKind int

const (
	FileKindImage FileKind = iota
	// FileKindDocument accepts images and PDFs.
	FileKindDocument
)

type FileService interface {
	NewChangeSet() *FileChangeSet
	URL(key string) string
}

type fileService struct {
	store   storage.Storage
	log     *logrus.Logger
	metrics *metrics.Metrics
	maxSize int64
}

func NewFileService(store storage.Storage, log *logrus.Logger, m *metrics.Metrics, maxSize int64) FileService {
	return &fileService{store: store, log: log, metrics: m, maxSize: maxSize}
}

func (s *fileService) URL(key string) string {
	return s.store.URL(key)
}

func (s *fileService) NewChangeSet() *FileChangeSet {
	return &FileChangeSet{svc: s}
}

// FileChangeSet tracks the storage side effects of one database transaction.
// Staged keys are new uploads removed on Discard; retired keys are replaced or
// orphaned files removed on Commit. Both are best-effort.
type FileChangeSet struct {
	svc     *fileService
	mu      sync.Mutex
	staged  []string
	retired []string
	done    bool
}

// Upload stores up under folder and stages the new key.
func (c *FileChangeSet) Upload(ctx context.Context, folder string, kind FileKind, up *entity.Upload) (string, error) {
	if up == nil {
		return "", nil
	}
	if c.svc.maxSize > 0 && up.Size > c.svc.maxSize {
		return "", apperror.Field(up.Field, "The submitted file is too large.")
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(up.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", apperror.Field(up.Field, "The submitted file could not be read.")
	}
	head = head[:n]
	if n == 0 {
		return "", apperror.Field(up.Field, "The submitted file is empty.")
	}

	mtype := mimetype.Detect(head)
	if !allowed(kind, mtype) {
		if kind == FileKindImage {
			return "", apperror.Field(up.Field, "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
		}
		return "", apperror.Field(up.Field, "Upload a valid image or PDF document.")
	}

	key := strings.Trim(folder, "/") + "/" + uuid.New().String() + mtype.Extension()
	body := io.MultiReader(bytes.NewReader(head), up.Content)
	size := up.Size
	if size <= 0 {
		size = -1
	}
	if err := c.svc.store.Put(ctx, key, body, size, mtype.String()); err != nil {
		c.svc.log.Warnf("Failed to store upload %s: %+v", up.Filename, err)
		return "", apperror.Unavailable("file storage unavailable", err)
	}

	c.mu.Lock()
	c.staged = append(c.staged, key)
	c.mu.Unlock()
	return key, nil
}

// Replace retires oldKey when it is set and differs from newKey.
func (c *FileChangeSet) Replace(oldKey, newKey string) {
	if oldKey != "" && oldKey != newKey {
		c.Retire(oldKey)
	}
}

func (c *FileChangeSet) Retire(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		if k != "" {
			c.retired = append(c.retired, k)
		}
	}
}

// Commit removes retired files. Call after the transaction commits.
func (c *FileChangeSet) Commit(ctx context.Context) {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}
	c.done = true
	keys := c.retired
	c.mu.Unlock()

	c.svc.deleteAll(ctx, keys)
}

// Discard removes staged uploads. It is a no-op after Commit, so it can be deferred.
func (c *FileChangeSet) Discard(ctx context.Context) {
	c.mu.Lock()
	if c.done {
		c.mu.Unlock()
		return
	}
	c.done = true
	keys := c.staged
	c.mu.Unlock()

	c.svc.deleteAll(ctx, keys)
}

func (s *fileService) deleteAll(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(maxParallelDel)
	for _, key := range keys {
		g.Go(func() error {
			s.delete(ctx, key)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *fileService) delete(ctx context.Context, key string) {
	err := s.store.Delete(ctx, key)
	switch {
	case err == nil:
		s.count("deleted")
	case errors.Is(err, storage.ErrNotFound):
		s.count("missing")
	default:
		s.count("failed")
		s.log.WithField("key", key).Warnf("Failed to delete stored file: %+v", err)
	}
}

func (s *fileService) count(result string) {
	if s.metrics != nil {
		s.metrics.FilesDeletedTotal.WithLabelValues(result).Inc()
	}
}

func allowed(kind FileKind, mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
		if kind == FileKindDocument && m.Is("application/pdf") {
			return true
		}
	}
	return false
}
