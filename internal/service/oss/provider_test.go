package oss

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weiwangfds/studyhub/config"
)

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "assets/u1/a.png", ObjectKey("/assets/", "u1", "/a.png"))
	assert.Equal(t, "u1/a.png", ObjectKey("", "u1", "a.png"))
	assert.Equal(t, "a.png", ObjectKey("", "", "a.png"))
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(config.StorageConfig{Provider: "ftp"})
	assert.Error(t, err)
}

func TestLocalProvider(t *testing.T) {
	root := t.TempDir()
	p, err := New(config.StorageConfig{Provider: ProviderLocal, LocalPath: root, PublicBaseURL: "/uploads/"})
	require.NoError(t, err)
	assert.Equal(t, ProviderLocal, p.Name())

	ctx := context.Background()
	key := ObjectKey("assets", "user_1", "notes.txt")

	require.NoError(t, p.Put(ctx, key, strings.NewReader("hello"), 5, "text/plain"))
	data, err := os.ReadFile(filepath.Join(root, "assets", "user_1", "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	exists, err := p.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "/uploads/assets/user_1/notes.txt", p.URL(key))

	require.NoError(t, p.Delete(ctx, key))
	exists, err = p.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	// 删除不存在的对象不报错
	assert.NoError(t, p.Delete(ctx, key))
}

func TestLocalProviderStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	p, err := NewLocalProvider(config.StorageConfig{LocalPath: root})
	require.NoError(t, err)

	require.NoError(t, p.Put(context.Background(), "../../escape.txt", strings.NewReader("x"), 1, ""))
	_, err = os.Stat(filepath.Join(root, "escape.txt"))
	assert.NoError(t, err)
}
