package oss

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/qiniu/go-sdk/v7/auth/qbox"
	"github.com/qiniu/go-sdk/v7/storage"
	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/logger"
)

// qiniuNoSuchFile 七牛云对象不存在时返回的状态码
const qiniuNoSuchFile = 612

// QiniuProvider 七牛云Kodo存储
type QiniuProvider struct {
	mac    *qbox.Mac       // 七牛云认证凭证
	bucket string          // 存储桶名称
	domain string          // 存储桶绑定的访问域名
	region *storage.Region // 存储区域信息
}

// NewQiniuProvider 创建七牛云Kodo存储
// 配置了 region 时直接使用，否则按存储桶查询所在区域
func NewQiniuProvider(cfg config.StorageConfig) (*QiniuProvider, error) {
	mac := qbox.NewMac(cfg.AccessKey, cfg.SecretKey)

	var region *storage.Region
	if cfg.Region != "" {
		r, ok := storage.GetRegionByID(storage.RegionID(cfg.Region))
		if !ok {
			return nil, fmt.Errorf("unknown qiniu region: %s", cfg.Region)
		}
		region = &r
	} else {
		r, err := storage.GetRegion(cfg.AccessKey, cfg.Bucket)
		if err != nil {
			return nil, fmt.Errorf("failed to get qiniu region: %w", err)
		}
		region = r
	}

	// 七牛云没有默认公开域名，必须配置绑定的域名
	domain := cfg.PublicBaseURL
	if domain == "" || strings.HasPrefix(domain, "/") {
		domain = cfg.Endpoint
	}
	if domain == "" {
		return nil, fmt.Errorf("qiniu storage requires public_base_url or endpoint")
	}
	if !strings.HasPrefix(domain, "http://") && !strings.HasPrefix(domain, "https://") {
		domain = "https://" + domain
	}

	logger.WithFields(map[string]interface{}{
		"bucket": cfg.Bucket,
		"domain": domain,
	}).Info("Qiniu Kodo storage ready")
	return &QiniuProvider{mac: mac, bucket: cfg.Bucket, domain: domain, region: region}, nil
}

// Name 返回 qiniu
func (p *QiniuProvider) Name() string { return ProviderQiniu }

// Put 使用表单上传写入对象
func (p *QiniuProvider) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	putPolicy := storage.PutPolicy{
		Scope: fmt.Sprintf("%s:%s", p.bucket, key),
	}
	upToken := putPolicy.UploadToken(p.mac)

	uploader := storage.NewFormUploader(&storage.Config{
		Region:   p.region,
		UseHTTPS: true,
	})
	ret := storage.PutRet{}
	extra := storage.PutExtra{MimeType: contentType}
	if err := uploader.Put(ctx, &ret, upToken, key, body, size, &extra); err != nil {
		return fmt.Errorf("failed to upload file to qiniu kodo: %w", err)
	}
	return nil
}

// Delete 删除对象
func (p *QiniuProvider) Delete(ctx context.Context, key string) error {
	if err := p.manager().Delete(p.bucket, key); err != nil {
		if isQiniuNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file from qiniu kodo: %w", err)
	}
	return nil
}

// Exists 通过 Stat 判断对象是否存在
func (p *QiniuProvider) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := p.manager().Stat(p.bucket, key); err != nil {
		if isQiniuNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat qiniu kodo object: %w", err)
	}
	return true, nil
}

// URL 返回公开空间的访问地址
func (p *QiniuProvider) URL(key string) string {
	return storage.MakePublicURLv2(p.domain, key)
}

func (p *QiniuProvider) manager() *storage.BucketManager {
	return storage.NewBucketManager(p.mac, &storage.Config{Region: p.region})
}

func isQiniuNotFound(err error) bool {
	return strings.Contains(err.Error(), "no such file") || strings.Contains(err.Error(), fmt.Sprint(qiniuNoSuchFile))
}
