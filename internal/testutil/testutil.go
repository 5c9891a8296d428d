// Package testutil wires in-memory backends for repository, usecase and handler tests.
package testutil

import (
	"bytes"
	"fmt"
	"io"
	"sync/atomic"
	"testing"

	"content-admin/internal/domain/entity"
	"content-admin/internal/infrastructure/metrics"
	"content-admin/internal/infrastructure/storage"
	"content-admin/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory sqlite database with every model migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(entity.Models()...))
	return db
}

// NewRedis starts a miniredis server and returns a client bound to it.
func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

// NewStorage returns local storage over an in-memory filesystem.
func NewStorage(t *testing.T) *storage.LocalStorage {
	t.Helper()

	s, err := storage.NewLocalStorage(afero.NewMemMapFs(), "media", "/media/")
	require.NoError(t, err)
	return s
}

// NewLogger discards output.
func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Env bundles the shared collaborators most usecase tests need.
type Env struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Mini    *miniredis.Miniredis
	Store   *storage.LocalStorage
	Log     *logrus.Logger
	Metrics *metrics.Metrics
	Files   service.FileService
}

func NewEnv(t *testing.T) *Env {
	t.Helper()

	client, mr := NewRedis(t)
	store := NewStorage(t)
	log := NewLogger()
	m := metrics.New()
	return &Env{
		DB:      NewDB(t),
		Redis:   client,
		Mini:    mr,
		Store:   store,
		Log:     log,
		Metrics: m,
		Files:   service.NewFileService(store, log, m, 5<<20),
	}
}

// PNG is the smallest payload the mime sniffer accepts as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

// ImageUpload wraps PNG as a pending upload for field.
func ImageUpload(field string) *entity.Upload {
	return &entity.Upload{Field: field, Filename: field + ".png", Size: int64(len(PNG)), Content: bytes.NewReader(PNG)}
}
