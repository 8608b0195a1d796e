package oss

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"
	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/logger"
)

// TencentProvider 腾讯云COS存储
type TencentProvider struct {
	client  *cos.Client
	baseURL string
}

// NewTencentProvider 创建腾讯云COS存储
// 未配置 endpoint 时使用 https://<bucket>.cos.<region>.myqcloud.com
func NewTencentProvider(cfg config.StorageConfig) (*TencentProvider, error) {
	bucketURL := fmt.Sprintf("https://%s.cos.%s.myqcloud.com", cfg.Bucket, cfg.Region)
	if cfg.Endpoint != "" {
		bucketURL = cfg.Endpoint
	}
	u, err := url.Parse(bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bucket URL: %w", err)
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: u}, &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		},
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" || strings.HasPrefix(baseURL, "/") {
		baseURL = bucketURL
	}

	logger.WithFields(map[string]interface{}{
		"bucket_url": bucketURL,
	}).Info("Tencent COS storage ready")
	return &TencentProvider{client: client, baseURL: baseURL}, nil
}

// Name 返回 tencent
func (p *TencentProvider) Name() string { return ProviderTencent }

// Put 上传对象
func (p *TencentProvider) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	options := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{ContentType: contentType},
	}
	if size >= 0 {
		options.ObjectPutHeaderOptions.ContentLength = size
	}
	if _, err := p.client.Object.Put(ctx, key, body, options); err != nil {
		return fmt.Errorf("failed to upload file to tencent cos: %w", err)
	}
	return nil
}

// Delete 删除对象
func (p *TencentProvider) Delete(ctx context.Context, key string) error {
	if _, err := p.client.Object.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete file from tencent cos: %w", err)
	}
	return nil
}

// Exists 通过 HEAD 请求判断对象是否存在
func (p *TencentProvider) Exists(ctx context.Context, key string) (bool, error) {
	_, err := p.client.Object.Head(ctx, key, nil)
	if err != nil {
		if cos.IsNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check tencent cos object: %w", err)
	}
	return true, nil
}

// URL 返回对象访问地址
func (p *TencentProvider) URL(key string) string {
	return publicURL(p.baseURL, key)
}
