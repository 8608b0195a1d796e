package oss

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/logger"
)

// AliyunProvider 阿里云OSS存储
type AliyunProvider struct {
	client  *oss.Client // 阿里云OSS客户端实例
	bucket  *oss.Bucket // OSS存储桶实例
	baseURL string      // 对外访问前缀
}

// NewAliyunProvider 创建阿里云OSS存储
// 未配置 endpoint 时使用 https://oss-<region>.aliyuncs.com
func NewAliyunProvider(cfg config.StorageConfig) (*AliyunProvider, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://oss-%s.aliyuncs.com", cfg.Region)
	}

	client, err := oss.New(endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create aliyun oss client: %w", err)
	}
	bucket, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket %s: %w", cfg.Bucket, err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" || strings.HasPrefix(baseURL, "/") {
		host := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
		baseURL = fmt.Sprintf("https://%s.%s", cfg.Bucket, host)
	}

	logger.WithFields(map[string]interface{}{
		"endpoint": endpoint,
		"bucket":   cfg.Bucket,
	}).Info("Aliyun OSS storage ready")
	return &AliyunProvider{client: client, bucket: bucket, baseURL: baseURL}, nil
}

// Name 返回 aliyun
func (p *AliyunProvider) Name() string { return ProviderAliyun }

// Put 上传对象
func (p *AliyunProvider) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	options := []oss.Option{oss.WithContext(ctx)}
	if contentType != "" {
		options = append(options, oss.ContentType(contentType))
	}
	if size >= 0 {
		options = append(options, oss.ContentLength(size))
	}
	if err := p.bucket.PutObject(key, body, options...); err != nil {
		return fmt.Errorf("failed to upload file to aliyun oss: %w", err)
	}
	return nil
}

// Delete 删除对象
func (p *AliyunProvider) Delete(ctx context.Context, key string) error {
	if err := p.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete file from aliyun oss: %w", err)
	}
	return nil
}

// Exists 判断对象是否存在
func (p *AliyunProvider) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := p.bucket.IsObjectExist(key, oss.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to check aliyun oss object: %w", err)
	}
	return exists, nil
}

// URL 返回对象访问地址
func (p *AliyunProvider) URL(key string) string {
	return publicURL(p.baseURL, key)
}
