package asset

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/service/oss"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func setupAssets(t *testing.T) (AssetService, string) {
	db, err := database.Init(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	root := t.TempDir()
	storage, err := oss.NewLocalProvider(config.StorageConfig{LocalPath: root, PublicBaseURL: "/uploads"})
	require.NoError(t, err)
	return NewAssetService(db, storage, "assets", 0), root
}

func pngFile(name string, size int) *File {
	data := make([]byte, size)
	copy(data, pngHeader)
	return &File{Name: name, Size: -1, Body: bytes.NewReader(data)}
}

func TestEndpointAllows(t *testing.T) {
	ep, ok := Lookup(EndpointMessageFile)
	require.True(t, ok)
	assert.True(t, ep.Allows("image/png"))
	assert.True(t, ep.Allows("application/pdf"))
	assert.False(t, ep.Allows("video/mp4"))

	attach, _ := Lookup(EndpointNoteAttachment)
	assert.True(t, attach.Allows("application/zip"))

	_, ok = Lookup("avatar")
	assert.False(t, ok)
}

func TestUpload(t *testing.T) {
	svc, root := setupAssets(t)
	ctx := context.Background()

	res, err := svc.Upload(ctx, "user_1", EndpointCourseImage, pngFile("cover.PNG", 1024))
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "cover.PNG", res.Name)
	assert.Equal(t, int64(1024), res.Size)
	assert.Equal(t, "image/png", res.Type)
	assert.True(t, strings.HasPrefix(res.URL, "/uploads/assets/courseImage/user_1/"))
	assert.True(t, strings.HasSuffix(res.URL, ".png"))

	stored := filepath.Join(root, strings.TrimPrefix(res.URL, "/uploads/"))
	info, err := os.Stat(stored)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), info.Size())

	asset, err := svc.Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Len(t, asset.Hash, 64)
	assert.Equal(t, oss.ProviderLocal, asset.Provider)

	t.Run("未知入口", func(t *testing.T) {
		_, err := svc.Upload(ctx, "user_1", "avatar", pngFile("a.png", 10))
		assert.True(t, errors.Is(err, apperrors.ErrInvalidUploadEndpointError))
	})

	t.Run("类型不符", func(t *testing.T) {
		_, err := svc.Upload(ctx, "user_1", EndpointChapterVideo, pngFile("a.png", 10))
		assert.True(t, errors.Is(err, apperrors.ErrFileTypeNotAllowedError))

		pdf := &File{Name: "notes.pdf", Size: -1, Body: strings.NewReader("%PDF-1.4\n%test document")}
		_, err = svc.Upload(ctx, "user_1", EndpointMessageFile, pdf)
		assert.NoError(t, err)
	})

	t.Run("声明大小超限", func(t *testing.T) {
		f := pngFile("big.png", 10)
		f.Size = 3 * mb
		_, err := svc.Upload(ctx, "user_1", EndpointProfileImage, f)
		assert.True(t, errors.Is(err, apperrors.ErrFileTooLargeError))
	})

	t.Run("实际大小超限时清理对象", func(t *testing.T) {
		_, err := svc.Upload(ctx, "user_2", EndpointProfileImage, pngFile("big.png", 2*mb+1))
		assert.True(t, errors.Is(err, apperrors.ErrFileTooLargeError))

		entries, _ := os.ReadDir(filepath.Join(root, "assets", "profileImage", "user_2"))
		assert.Empty(t, entries)
	})

	t.Run("空文件", func(t *testing.T) {
		_, err := svc.Upload(ctx, "user_1", EndpointNoteAttachment, &File{Name: "a.txt", Size: -1, Body: strings.NewReader("")})
		assert.Error(t, err)
	})
}

func TestListAndDelete(t *testing.T) {
	svc, root := setupAssets(t)
	ctx := context.Background()

	first, err := svc.Upload(ctx, "user_1", EndpointCourseImage, pngFile("a.png", 100))
	require.NoError(t, err)
	_, err = svc.Upload(ctx, "user_1", EndpointProfileImage, pngFile("b.png", 100))
	require.NoError(t, err)
	_, err = svc.Upload(ctx, "user_2", EndpointProfileImage, pngFile("c.png", 100))
	require.NoError(t, err)

	all, err := svc.List(ctx, "user_1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	images, err := svc.List(ctx, "user_1", EndpointCourseImage)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, first.ID, images[0].ID)

	_, err = svc.List(ctx, "user_1", "bogus")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidUploadEndpointError))

	assert.True(t, errors.Is(svc.Delete(ctx, "user_2", first.ID), apperrors.ErrForbiddenAccess))
	require.NoError(t, svc.Delete(ctx, "user_1", first.ID))

	_, err = svc.Get(ctx, first.ID)
	assert.True(t, errors.Is(err, apperrors.ErrAssetNotFoundError))
	_, err = os.Stat(filepath.Join(root, strings.TrimPrefix(first.URL, "/uploads/")))
	assert.True(t, os.IsNotExist(err))
}
