package service_test

import (
	"context"
	"strings"
	"testing"

	"content-admin/internal/domain/entity"
	"content-admin/internal/service"
	"content-admin/internal/testutil"
	"content-admin/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileChangeSet_DiscardRemovesStaged(t *testing.T) {
	store := testutil.NewStorage(t)
	files := service.NewFileService(store, testutil.NewLogger(), nil, 0)
	ctx := context.Background()

	cs := files.NewChangeSet()
	key, err := cs.Upload(ctx, "books", service.FileKindImage, testutil.ImageUpload("image"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "books/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.True(t, store.Exists(key))

	cs.Discard(ctx)
	assert.False(t, store.Exists(key))
}

func TestFileChangeSet_CommitRemovesRetiredOnly(t *testing.T) {
	store := testutil.NewStorage(t)
	files := service.NewFileService(store, testutil.NewLogger(), nil, 0)
	ctx := context.Background()

	first := files.NewChangeSet()
	oldKey, err := first.Upload(ctx, "events", service.FileKindImage, testutil.ImageUpload("image"))
	require.NoError(t, err)
	first.Commit(ctx)
	require.True(t, store.Exists(oldKey))

	second := files.NewChangeSet()
	newKey, err := second.Upload(ctx, "events", service.FileKindImage, testutil.ImageUpload("image"))
	require.NoError(t, err)
	second.Replace(oldKey, newKey)
	second.Commit(ctx)
	second.Discard(ctx)

	assert.False(t, store.Exists(oldKey))
	assert.True(t, store.Exists(newKey))
}

func TestFileChangeSet_Upload(t *testing.T) {
	files := service.NewFileService(testutil.NewStorage(t), testutil.NewLogger(), nil, 16)
	ctx := context.Background()

	t.Run("nil upload is a no-op", func(t *testing.T) {
		key, err := files.NewChangeSet().Upload(ctx, "books", service.FileKindImage, nil)
		require.NoError(t, err)
		assert.Empty(t, key)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := files.NewChangeSet().Upload(ctx, "books", service.FileKindImage, testutil.ImageUpload("image"))
		assert.True(t, apperror.Is(err, apperror.KindValidation))
	})

	t.Run("not an image", func(t *testing.T) {
		up := &entity.Upload{Field: "image", Filename: "a.txt", Size: 5, Content: strings.NewReader("hello")}
		_, err := files.NewChangeSet().Upload(ctx, "books", service.FileKindImage, up)
		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Contains(t, appErr.Fields, "image")
	})

	t.Run("pdf allowed as document", func(t *testing.T) {
		docs := service.NewFileService(testutil.NewStorage(t), testutil.NewLogger(), nil, 0)
		pdf := "%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"
		up := &entity.Upload{Field: "portfolio", Filename: "cv.pdf", Size: int64(len(pdf)), Content: strings.NewReader(pdf)}
		key, err := docs.NewChangeSet().Upload(ctx, "professionals/portfolio", service.FileKindDocument, up)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(key, ".pdf"))
	})
}

func TestFileChangeSet_URL(t *testing.T) {
	files := service.NewFileService(testutil.NewStorage(t), testutil.NewLogger(), nil, 0)
	assert.Equal(t, "/media/books/a.png", files.URL("books/a.png"))
}
