// Package note 提供笔记（课程）和章节相关的业务逻辑服务
// 笔记由导师创建，章节按位置排序，发布后出现在课程目录中
package note

import (
	"context"
	"errors"
	"strings"

	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/service/profile"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
)

// ChapterXP 首次完成一个章节获得的积分
const ChapterXP = 10

// 课程目录分页
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// NoteService 笔记服务接口
type NoteService interface {
	// CreateNote 创建新笔记，仅导师可用
	// 参数:
	//   userID - 创建者
	//   req - 创建请求，标题不能为空
	// 返回:
	//   *database.Note - 创建的笔记
	//   error - 非导师返回 ErrTutorRequired
	CreateNote(ctx context.Context, userID string, req *validation.CreateNote) (*database.Note, error)

	// GetNote 获取笔记及章节
	// 创建者可以看到未发布的内容，其他用户只能看到已发布的笔记和章节
	GetNote(ctx context.Context, viewerID, noteID string) (*database.Note, error)

	// ListMine 创建者自己的笔记，按更新时间倒序
	ListMine(ctx context.Context, userID string) ([]database.Note, error)

	// ListPublished 课程目录，按创建时间倒序分页
	// 返回:
	//   []database.Note - 当前页的笔记
	//   int64 - 总数
	ListPublished(ctx context.Context, page, pageSize int) ([]database.Note, int64, error)

	// UpdateNote 修改笔记基本信息
	UpdateNote(ctx context.Context, userID, noteID string, req *validation.UpdateNote) (*database.Note, error)

	// DeleteNote 删除笔记及其章节和学习进度
	DeleteNote(ctx context.Context, userID, noteID string) error

	// Publish 发布笔记，需要标题和至少一个已发布章节
	Publish(ctx context.Context, userID, noteID string) (*database.Note, error)

	// Unpublish 取消发布
	Unpublish(ctx context.Context, userID, noteID string) (*database.Note, error)

	ChapterService
}

// noteService 笔记服务实现
type noteService struct {
	db       *gorm.DB
	profiles profile.ProfileService
}

// NewNoteService 创建笔记服务实例
func NewNoteService(db *gorm.DB, profiles profile.ProfileService) NoteService {
	logger.Info("Initializing note service")
	return &noteService{
		db:       db,
		profiles: profiles,
	}
}

// CreateNote 创建新笔记
func (s *noteService) CreateNote(ctx context.Context, userID string, req *validation.CreateNote) (*database.Note, error) {
	if _, err := s.profiles.RequireTutor(ctx, userID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.ErrInvalidParameters.WithDetails("title is required")
	}

	note := &database.Note{
		CreatorID: userID,
		Title:     title,
	}
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		logger.WithError(err).Error("Failed to create note")
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}

	logger.WithFields(map[string]interface{}{
		"note_id":    note.ID,
		"creator_id": userID,
	}).Info("Note created")
	return note, nil
}

// GetNote 获取笔记详情
func (s *noteService) GetNote(ctx context.Context, viewerID, noteID string) (*database.Note, error) {
	note, err := s.findNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	owner := note.CreatorID == viewerID
	if !owner && !note.IsPublished {
		return nil, apperrors.ErrNoteNotFoundError
	}

	query := s.db.WithContext(ctx).Where("note_id = ?", noteID)
	if !owner {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Order("position ASC").Find(&note.Chapters).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return note, nil
}

// ListMine 获取创建者的笔记
func (s *noteService) ListMine(ctx context.Context, userID string) ([]database.Note, error) {
	var notes []database.Note
	err := s.db.WithContext(ctx).
		Where("creator_id = ?", userID).
		Order("updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return notes, nil
}

// ListPublished 获取已发布的课程
func (s *noteService) ListPublished(ctx context.Context, page, pageSize int) ([]database.Note, int64, error) {
	page, pageSize = NormalizePage(page, pageSize)

	query := s.db.WithContext(ctx).Model(&database.Note{}).Where("is_published = ?", true).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}

	var notes []database.Note
	err := query.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("position ASC")
		}).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&notes).Error
	if err != nil {
		return nil, 0, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return notes, total, nil
}

// UpdateNote 修改笔记
func (s *noteService) UpdateNote(ctx context.Context, userID, noteID string, req *validation.UpdateNote) (*database.Note, error) {
	note, err := s.ownedNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperrors.ErrInvalidParameters.WithDetails("title cannot be empty")
		}
		updates["title"] = title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if len(updates) == 0 {
		return note, nil
	}

	if err := s.db.WithContext(ctx).Model(note).Updates(updates).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	return s.findNote(ctx, noteID)
}

// DeleteNote 删除笔记
func (s *noteService) DeleteNote(ctx context.Context, userID, noteID string) error {
	if _, err := s.ownedNote(ctx, userID, noteID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		chapterIDs := tx.Model(&database.NoteChapter{}).Select("id").Where("note_id = ?", noteID)
		if err := tx.Where("chapter_id IN (?)", chapterIDs).Delete(&database.ChapterProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("note_id = ?", noteID).Delete(&database.NoteChapter{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", noteID).Delete(&database.Note{}).Error
	})
	if err != nil {
		logger.WithError(err).WithField("note_id", noteID).Error("Failed to delete note")
		return apperrors.WrapCode(apperrors.ErrDatabaseDelete, err)
	}

	logger.WithField("note_id", noteID).Info("Note deleted")
	return nil
}

// Publish 发布笔记
func (s *noteService) Publish(ctx context.Context, userID, noteID string) (*database.Note, error) {
	note, err := s.ownedNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(note.Title) == "" {
		return nil, apperrors.ErrNoteNotPublishableError.WithDetails("title is required")
	}
	published, err := s.countPublishedChapters(s.db.WithContext(ctx), noteID)
	if err != nil {
		return nil, err
	}
	if published == 0 {
		return nil, apperrors.ErrNoteNotPublishableError.WithDetails("at least one published chapter is required")
	}

	if err := s.db.WithContext(ctx).Model(note).Update("is_published", true).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	note.IsPublished = true
	return note, nil
}

// Unpublish 取消发布
func (s *noteService) Unpublish(ctx context.Context, userID, noteID string) (*database.Note, error) {
	note, err := s.ownedNote(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(note).Update("is_published", false).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	note.IsPublished = false
	return note, nil
}

// findNote 按ID查询笔记，不含章节
func (s *noteService) findNote(ctx context.Context, noteID string) (*database.Note, error) {
	var note database.Note
	if err := s.db.WithContext(ctx).Where("id = ?", noteID).First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNoteNotFoundError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &note, nil
}

// ownedNote 查询笔记并校验创建者
func (s *noteService) ownedNote(ctx context.Context, userID, noteID string) (*database.Note, error) {
	note, err := s.findNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.CreatorID != userID {
		return nil, apperrors.ErrForbiddenAccess.WithDetails("only the creator can modify this note")
	}
	return note, nil
}

func (s *noteService) countPublishedChapters(db *gorm.DB, noteID string) (int64, error) {
	var count int64
	err := db.Model(&database.NoteChapter{}).
		Where("note_id = ? AND is_published = ?", noteID, true).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return count, nil
}

// NormalizePage 修正分页参数，页码从1开始，每页条数不超过 MaxPageSize
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
