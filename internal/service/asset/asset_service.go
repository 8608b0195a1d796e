// Package asset 处理文件上传
// 上传入口固定，每个入口限制文件大小和类型，文件内容交给对象存储保存
package asset

import (
	"bufio"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/service/oss"
	"gorm.io/gorm"
)

// sniffLen http.DetectContentType 最多读取的字节数
const sniffLen = 512

// File 待上传的文件
type File struct {
	Name string
	Size int64 // 客户端声明的大小，未知时为 -1
	Body io.Reader
}

// UploadResult 上传结果
type UploadResult struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// AssetService 文件上传服务接口
type AssetService interface {
	// Upload 校验并保存文件，记录元数据
	Upload(ctx context.Context, ownerID, endpoint string, file *File) (*UploadResult, error)

	// List 用户上传的文件，endpoint 为空时返回全部
	List(ctx context.Context, ownerID, endpoint string) ([]database.Asset, error)

	// Get 获取文件元数据
	Get(ctx context.Context, assetID string) (*database.Asset, error)

	// Delete 删除文件，仅上传者可用
	Delete(ctx context.Context, ownerID, assetID string) error
}

type assetService struct {
	db         *gorm.DB
	storage    oss.Provider
	pathPrefix string
	maxSize    int64
}

// NewAssetService 创建文件上传服务实例
// maxSize 为全局上限，小于等于0时只使用各入口自己的限制
func NewAssetService(db *gorm.DB, storage oss.Provider, pathPrefix string, maxSize int64) AssetService {
	logger.WithFields(map[string]interface{}{
		"provider": storage.Name(),
		"prefix":   pathPrefix,
	}).Info("Initializing asset service")
	return &assetService{db: db, storage: storage, pathPrefix: pathPrefix, maxSize: maxSize}
}

func (s *assetService) Upload(ctx context.Context, ownerID, endpoint string, file *File) (*UploadResult, error) {
	ep, ok := Lookup(endpoint)
	if !ok {
		return nil, apperrors.ErrInvalidUploadEndpointError.WithDetails(endpoint)
	}
	if file == nil || file.Body == nil {
		return nil, apperrors.ErrInvalidParameters.WithDetails("file is required")
	}
	limit := ep.MaxSize
	if s.maxSize > 0 && s.maxSize < limit {
		limit = s.maxSize
	}
	if file.Size > limit {
		return nil, apperrors.ErrFileTooLargeError
	}

	br := bufio.NewReaderSize(file.Body, sniffLen)
	head, err := br.Peek(sniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, "failed to read upload", err)
	}
	if len(head) == 0 {
		return nil, apperrors.ErrInvalidParameters.WithDetails("file is empty")
	}
	contentType := detectContentType(file.Name, head)
	if !ep.Allows(contentType) {
		return nil, apperrors.ErrFileTypeNotAllowedError.WithDetails(contentType)
	}

	name := filepath.Base(strings.TrimSpace(file.Name))
	if name == "." || name == "/" || name == "" {
		name = "file"
	}
	key := oss.ObjectKey(s.pathPrefix, endpoint, ownerID, uuid.NewString()+strings.ToLower(filepath.Ext(name)))

	hasher := sha256.New()
	counter := &countingReader{r: io.LimitReader(br, limit+1)}
	body := io.TeeReader(counter, hasher)

	if err := s.storage.Put(ctx, key, body, file.Size, contentType); err != nil {
		logger.WithError(err).WithField("key", key).Error("Failed to store upload")
		return nil, apperrors.Wrap(apperrors.ErrUploadFailed, apperrors.GetErrorMessage(apperrors.ErrUploadFailed), err)
	}
	if counter.n > limit {
		s.removeObject(ctx, key)
		return nil, apperrors.ErrFileTooLargeError
	}

	asset := &database.Asset{
		OwnerID:     ownerID,
		Endpoint:    endpoint,
		FileName:    name,
		ContentType: contentType,
		Size:        counter.n,
		Hash:        hex.EncodeToString(hasher.Sum(nil)),
		StorageKey:  key,
		Provider:    s.storage.Name(),
		URL:         s.storage.URL(key),
	}
	if err := s.db.WithContext(ctx).Create(asset).Error; err != nil {
		s.removeObject(ctx, key)
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}

	logger.WithFields(map[string]interface{}{
		"asset_id": asset.ID,
		"owner_id": ownerID,
		"endpoint": endpoint,
		"size":     asset.Size,
		"type":     contentType,
	}).Info("File uploaded")
	return &UploadResult{
		ID:   asset.ID,
		URL:  asset.URL,
		Name: asset.FileName,
		Size: asset.Size,
		Type: asset.ContentType,
	}, nil
}

func (s *assetService) List(ctx context.Context, ownerID, endpoint string) ([]database.Asset, error) {
	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if endpoint != "" {
		if _, ok := Lookup(endpoint); !ok {
			return nil, apperrors.ErrInvalidUploadEndpointError.WithDetails(endpoint)
		}
		query = query.Where("endpoint = ?", endpoint)
	}

	var assets []database.Asset
	if err := query.Order("created_at DESC").Find(&assets).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return assets, nil
}

func (s *assetService) Get(ctx context.Context, assetID string) (*database.Asset, error) {
	var asset database.Asset
	if err := s.db.WithContext(ctx).Where("id = ?", assetID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFoundError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &asset, nil
}

func (s *assetService) Delete(ctx context.Context, ownerID, assetID string) error {
	asset, err := s.Get(ctx, assetID)
	if err != nil {
		return err
	}
	if asset.OwnerID != ownerID {
		return apperrors.ErrForbiddenAccess.WithDetails("only the uploader can delete this file")
	}

	if err := s.db.WithContext(ctx).Delete(asset).Error; err != nil {
		return apperrors.WrapCode(apperrors.ErrDatabaseDelete, err)
	}
	s.removeObject(ctx, asset.StorageKey)

	logger.WithFields(map[string]interface{}{
		"asset_id": assetID,
		"owner_id": ownerID,
	}).Info("File deleted")
	return nil
}

// removeObject 删除存储中的对象，失败只记录日志
func (s *assetService) removeObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.WithError(err).WithField("key", key).Warn("Failed to remove stored object")
	}
}

// detectContentType 优先按内容识别，识别不出时按扩展名推断
func detectContentType(name string, head []byte) string {
	ct := http.DetectContentType(head)
	if ct != "application/octet-stream" && !strings.HasPrefix(ct, "text/plain") {
		return ct
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return byExt
	}
	return ct
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
