package note

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/service/profile"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChapterService 章节服务接口
type ChapterService interface {
	// CreateChapter 在笔记末尾追加章节
	CreateChapter(ctx context.Context, userID, noteID string, req *validation.CreateChapter) (*database.NoteChapter, error)

	// ListChapters 按位置升序列出章节，非创建者只能看到已发布章节
	ListChapters(ctx context.Context, viewerID, noteID string) ([]database.NoteChapter, error)

	UpdateChapter(ctx context.Context, userID, noteID, chapterID string, req *validation.UpdateChapter) (*database.NoteChapter, error)

	// DeleteChapter 删除章节，没有剩余已发布章节时笔记自动取消发布
	DeleteChapter(ctx context.Context, userID, noteID, chapterID string) error

	// ReorderChapters 在一个事务中批量更新章节位置
	ReorderChapters(ctx context.Context, userID, noteID string, req *validation.ReorderChapters) error

	PublishChapter(ctx context.Context, userID, noteID, chapterID string) (*database.NoteChapter, error)

	// UnpublishChapter 取消发布章节，没有剩余已发布章节时笔记自动取消发布
	UnpublishChapter(ctx context.Context, userID, noteID, chapterID string) (*database.NoteChapter, error)

	// SetProgress 记录学习进度，首次完成章节时奖励 ChapterXP 积分
	SetProgress(ctx context.Context, userID, noteID, chapterID string, completed bool) (*database.ChapterProgress, error)
}

// CreateChapter 创建章节
func (s *noteService) CreateChapter(ctx context.Context, userID, noteID string, req *validation.CreateChapter) (*database.NoteChapter, error) {
	if _, err := s.ownedNote(ctx, userID, noteID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.ErrInvalidParameters.WithDetails("title is required")
	}

	chapter := &database.NoteChapter{NoteID: noteID, Title: title}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last database.NoteChapter
		err := tx.Where("note_id = ?", noteID).Order("position DESC").First(&last).Error
		switch {
		case err == nil:
			chapter.Position = last.Position + 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			chapter.Position = 1
		default:
			return err
		}
		return tx.Create(chapter).Error
	})
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}

	logger.WithFields(map[string]interface{}{
		"note_id":    noteID,
		"chapter_id": chapter.ID,
		"position":   chapter.Position,
	}).Info("Chapter created")
	return chapter, nil
}

// ListChapters 获取章节列表
func (s *noteService) ListChapters(ctx context.Context, viewerID, noteID string) ([]database.NoteChapter, error) {
	note, err := s.GetNote(ctx, viewerID, noteID)
	if err != nil {
		return nil, err
	}
	return note.Chapters, nil
}

// UpdateChapter 修改章节
func (s *noteService) UpdateChapter(ctx context.Context, userID, noteID, chapterID string, req *validation.UpdateChapter) (*database.NoteChapter, error) {
	chapter, err := s.ownedChapter(ctx, userID, noteID, chapterID)
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
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.VideoURL != nil {
		updates["video_url"] = *req.VideoURL
	}
	if req.IsFree != nil {
		updates["is_free"] = *req.IsFree
	}
	if len(updates) == 0 {
		return chapter, nil
	}

	if err := s.db.WithContext(ctx).Model(chapter).Updates(updates).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	return s.findChapter(ctx, noteID, chapterID)
}

// DeleteChapter 删除章节
func (s *noteService) DeleteChapter(ctx context.Context, userID, noteID, chapterID string) error {
	if _, err := s.ownedChapter(ctx, userID, noteID, chapterID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chapter_id = ?", chapterID).Delete(&database.ChapterProgress{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id = ?", chapterID).Delete(&database.NoteChapter{}).Error; err != nil {
			return err
		}
		return s.unpublishIfEmpty(tx, noteID)
	})
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrDatabaseDelete, err)
	}

	logger.WithFields(map[string]interface{}{
		"note_id":    noteID,
		"chapter_id": chapterID,
	}).Info("Chapter deleted")
	return nil
}

// ReorderChapters 调整章节顺序
func (s *noteService) ReorderChapters(ctx context.Context, userID, noteID string, req *validation.ReorderChapters) error {
	if _, err := s.ownedNote(ctx, userID, noteID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			res := tx.Model(&database.NoteChapter{}).
				Where("id = ? AND note_id = ?", item.ID, noteID).
				Update("position", item.Position)
			if res.Error != nil {
				return apperrors.WrapCode(apperrors.ErrDatabaseTransaction, res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.ErrChapterNotFoundError.WithDetails(item.ID)
			}
		}
		return nil
	})
}

// PublishChapter 发布章节
func (s *noteService) PublishChapter(ctx context.Context, userID, noteID, chapterID string) (*database.NoteChapter, error) {
	chapter, err := s.ownedChapter(ctx, userID, noteID, chapterID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(chapter.Title) == "" {
		return nil, apperrors.ErrInvalidParameters.WithDetails("chapter title is required")
	}

	if err := s.db.WithContext(ctx).Model(chapter).Update("is_published", true).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	chapter.IsPublished = true
	return chapter, nil
}

// UnpublishChapter 取消发布章节
func (s *noteService) UnpublishChapter(ctx context.Context, userID, noteID, chapterID string) (*database.NoteChapter, error) {
	chapter, err := s.ownedChapter(ctx, userID, noteID, chapterID)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(chapter).Update("is_published", false).Error; err != nil {
			return err
		}
		return s.unpublishIfEmpty(tx, noteID)
	})
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	chapter.IsPublished = false
	return chapter, nil
}

// SetProgress 记录学习进度
func (s *noteService) SetProgress(ctx context.Context, userID, noteID, chapterID string, completed bool) (*database.ChapterProgress, error) {
	chapter, err := s.findChapter(ctx, noteID, chapterID)
	if err != nil {
		return nil, err
	}
	note, err := s.findNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.CreatorID != userID && (!note.IsPublished || !chapter.IsPublished) {
		return nil, apperrors.ErrChapterNotPublishedError
	}

	// 积分累加依赖用户资料存在
	if _, err := s.profiles.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	var progress database.ChapterProgress
	awarded := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 冲突时 Create 的目标已带上新生成的ID，必须读入新变量
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "chapter_id"}},
			DoNothing: true,
		}).Create(&database.ChapterProgress{UserID: userID, ChapterID: chapterID}).Error; err != nil {
			return err
		}
		progress = database.ChapterProgress{}
		if err := tx.Where("user_id = ? AND chapter_id = ?", userID, chapterID).First(&progress).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"is_completed": completed}
		if completed {
			now := time.Now()
			updates["completed_at"] = now
			progress.CompletedAt = &now
		} else {
			updates["completed_at"] = nil
			progress.CompletedAt = nil
		}
		if completed && !progress.XPAwarded {
			if err := profile.AddXP(tx, userID, ChapterXP); err != nil {
				return err
			}
			updates["xp_awarded"] = true
			progress.XPAwarded = true
			awarded = true
		}
		progress.IsCompleted = completed
		return tx.Model(&database.ChapterProgress{}).Where("id = ?", progress.ID).Updates(updates).Error
	})
	if err != nil {
		if appErr, ok := apperrors.GetAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseTransaction, err)
	}

	if awarded {
		logger.WithFields(map[string]interface{}{
			"user_id":    userID,
			"chapter_id": chapterID,
			"xp":         ChapterXP,
		}).Info("Chapter completed, XP awarded")
	}
	return &progress, nil
}

// findChapter 查询属于指定笔记的章节
func (s *noteService) findChapter(ctx context.Context, noteID, chapterID string) (*database.NoteChapter, error) {
	var chapter database.NoteChapter
	err := s.db.WithContext(ctx).Where("id = ? AND note_id = ?", chapterID, noteID).First(&chapter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChapterNotFoundError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &chapter, nil
}

func (s *noteService) ownedChapter(ctx context.Context, userID, noteID, chapterID string) (*database.NoteChapter, error) {
	if _, err := s.ownedNote(ctx, userID, noteID); err != nil {
		return nil, err
	}
	return s.findChapter(ctx, noteID, chapterID)
}

// unpublishIfEmpty 笔记没有已发布章节时取消发布
func (s *noteService) unpublishIfEmpty(tx *gorm.DB, noteID string) error {
	published, err := s.countPublishedChapters(tx, noteID)
	if err != nil {
		return err
	}
	if published > 0 {
		return nil
	}
	return tx.Model(&database.Note{}).Where("id = ?", noteID).Update("is_published", false).Error
}
