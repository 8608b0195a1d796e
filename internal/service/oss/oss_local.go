package oss

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/logger"
)

// LocalProvider 本地磁盘存储，文件通过静态路由对外提供
type LocalProvider struct {
	root    string // 存储根目录
	baseURL string // 对外访问前缀，如 /uploads
}

// NewLocalProvider 创建本地存储，目录不存在时自动创建
func NewLocalProvider(cfg config.StorageConfig) (*LocalProvider, error) {
	root := cfg.LocalPath
	if root == "" {
		root = "data/uploads"
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", root, err)
	}
	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = "/uploads"
	}

	logger.WithFields(map[string]interface{}{
		"root":     root,
		"base_url": baseURL,
	}).Info("Local storage ready")
	return &LocalProvider{root: root, baseURL: baseURL}, nil
}

// Name 返回 local
func (p *LocalProvider) Name() string { return ProviderLocal }

// Root 存储根目录
func (p *LocalProvider) Root() string { return p.root }

// Put 先写临时文件再重命名，避免读到写了一半的文件
func (p *LocalProvider) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	dst, err := p.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"key":          key,
		"content_type": contentType,
	}).Debug("Stored object on local disk")
	return nil
}

// Delete 删除本地文件
func (p *LocalProvider) Delete(ctx context.Context, key string) error {
	dst, err := p.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists 判断本地文件是否存在
func (p *LocalProvider) Exists(ctx context.Context, key string) (bool, error) {
	dst, err := p.resolve(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(dst); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// URL 返回 baseURL/key
func (p *LocalProvider) URL(key string) string {
	return publicURL(p.baseURL, key)
}

// resolve 将对象键映射到根目录下的路径，拒绝跳出根目录的键
func (p *LocalProvider) resolve(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	dst := filepath.Join(p.root, clean)
	if !strings.HasPrefix(dst, filepath.Clean(p.root)+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key: %s", key)
	}
	return dst, nil
}
