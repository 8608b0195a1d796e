// Package oss 封装上传文件使用的对象存储
// 支持本地磁盘、阿里云OSS、腾讯云COS和七牛云Kodo，由配置选择其一
package oss

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/logger"
)

// 存储提供商名称
const (
	ProviderLocal   = "local"
	ProviderAliyun  = "aliyun"
	ProviderTencent = "tencent"
	ProviderQiniu   = "qiniu"
)

// Provider 对象存储接口
type Provider interface {
	// Name 提供商名称，记录在资源表中
	Name() string

	// Put 写入对象，size 未知时传 -1
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error

	// Delete 删除对象，对象不存在时不报错
	Delete(ctx context.Context, key string) error

	// Exists 判断对象是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// URL 返回对象的公开访问地址
	URL(key string) string
}

// New 根据配置创建存储提供商
func New(cfg config.StorageConfig) (Provider, error) {
	logger.WithFields(map[string]interface{}{
		"provider": cfg.Provider,
		"bucket":   cfg.Bucket,
		"region":   cfg.Region,
	}).Info("Initializing storage provider")

	switch cfg.Provider {
	case "", ProviderLocal:
		return NewLocalProvider(cfg)
	case ProviderAliyun:
		return NewAliyunProvider(cfg)
	case ProviderTencent:
		return NewTencentProvider(cfg)
	case ProviderQiniu:
		return NewQiniuProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Provider)
	}
}

// ObjectKey 拼接对象键，去掉多余的斜杠
func ObjectKey(prefix string, parts ...string) string {
	elems := make([]string, 0, len(parts)+1)
	if p := strings.Trim(prefix, "/"); p != "" {
		elems = append(elems, p)
	}
	for _, part := range parts {
		if part = strings.Trim(part, "/"); part != "" {
			elems = append(elems, part)
		}
	}
	return path.Join(elems...)
}

// publicURL 拼接访问地址前缀和对象键
func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
