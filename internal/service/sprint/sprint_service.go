// Package sprint 提供看板（Sprint）、列（List）和卡片（Card）的业务逻辑
// 所有写操作先通过 validation 中的请求结构校验，再访问数据库
// 看板归属于组织，读写时按 orgID 限定范围
package sprint

import (
	"context"
	"database/sql"
	"errors"

	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
)

// copySuffix 复制列或卡片时追加到标题后
const copySuffix = " - Copy"

// SprintService 看板服务接口
type SprintService interface {
	// CreateSprint 在组织下创建看板
	CreateSprint(ctx context.Context, req *validation.CreateSprint) (*database.Sprint, error)

	// GetSprint 获取看板，列和卡片按顺序排列
	GetSprint(ctx context.Context, orgID, sprintID string) (*database.Sprint, error)

	// OrgOf 返回看板所属组织，不做组织范围校验
	OrgOf(ctx context.Context, sprintID string) (string, error)

	// ListSprints 组织下的所有看板，最新的在前
	ListSprints(ctx context.Context, orgID string) ([]database.Sprint, error)

	UpdateSprint(ctx context.Context, orgID string, req *validation.UpdateSprint) (*database.Sprint, error)

	// DeleteSprint 删除看板及其列和卡片
	DeleteSprint(ctx context.Context, orgID string, req *validation.DeleteSprint) error

	ListService
	CardService
}

type sprintService struct {
	db *gorm.DB
}

// NewSprintService 创建看板服务实例
func NewSprintService(db *gorm.DB) SprintService {
	logger.Info("Initializing sprint service")
	return &sprintService{db: db}
}

func (s *sprintService) CreateSprint(ctx context.Context, req *validation.CreateSprint) (*database.Sprint, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}

	sprint := &database.Sprint{
		OrgID:    req.OrgID,
		Title:    req.Title,
		ImageURL: req.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(sprint).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}

	logger.WithFields(map[string]interface{}{
		"sprint_id": sprint.ID,
		"org_id":    sprint.OrgID,
	}).Info("Sprint created")
	return sprint, nil
}

func (s *sprintService) GetSprint(ctx context.Context, orgID, sprintID string) (*database.Sprint, error) {
	if _, err := s.scopedSprint(s.db.WithContext(ctx), orgID, sprintID); err != nil {
		return nil, err
	}

	var sprint database.Sprint
	err := s.db.WithContext(ctx).
		Preload("Lists", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Preload("Lists.Cards", func(db *gorm.DB) *gorm.DB { return db.Order("sort_order ASC") }).
		Where("id = ?", sprintID).
		First(&sprint).Error
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &sprint, nil
}

func (s *sprintService) OrgOf(ctx context.Context, sprintID string) (string, error) {
	var sprint database.Sprint
	err := s.db.WithContext(ctx).Select("id", "org_id").Where("id = ?", sprintID).First(&sprint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrSprintNotFoundError
		}
		return "", apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return sprint.OrgID, nil
}

func (s *sprintService) ListSprints(ctx context.Context, orgID string) ([]database.Sprint, error) {
	var sprints []database.Sprint
	err := s.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at DESC").
		Find(&sprints).Error
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return sprints, nil
}

func (s *sprintService) UpdateSprint(ctx context.Context, orgID string, req *validation.UpdateSprint) (*database.Sprint, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	sprint, err := s.scopedSprint(db, orgID, req.ID)
	if err != nil {
		return nil, err
	}
	if err := db.Model(sprint).Update("title", req.Title).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	sprint.Title = req.Title
	return sprint, nil
}

func (s *sprintService) DeleteSprint(ctx context.Context, orgID string, req *validation.DeleteSprint) error {
	if err := validation.CheckContext(ctx, req); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	if _, err := s.scopedSprint(db, orgID, req.ID); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		listIDs := tx.Model(&database.List{}).Select("id").Where("sprint_id = ?", req.ID)
		if err := tx.Where("list_id IN (?)", listIDs).Delete(&database.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sprint_id = ?", req.ID).Delete(&database.List{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", req.ID).Delete(&database.Sprint{}).Error
	})
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrDatabaseDelete, err)
	}

	logger.WithFields(map[string]interface{}{
		"sprint_id": req.ID,
		"org_id":    orgID,
	}).Info("Sprint deleted")
	return nil
}

// scopedSprint 查询属于组织的看板，不属于该组织时同样返回未找到
func (s *sprintService) scopedSprint(db *gorm.DB, orgID, sprintID string) (*database.Sprint, error) {
	var sprint database.Sprint
	err := db.Where("id = ? AND org_id = ?", sprintID, orgID).First(&sprint).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSprintNotFoundError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &sprint, nil
}

// nextOrder 返回表中满足条件的最大 sort_order 加一
func nextOrder(db *gorm.DB, model interface{}, column, value string) (int, error) {
	var maxOrder sql.NullInt64
	row := db.Model(model).
		Select("MAX(sort_order)").
		Where(column+" = ?", value).
		Row()
	if err := row.Scan(&maxOrder); err != nil {
		return 0, err
	}
	if !maxOrder.Valid {
		return 1, nil
	}
	return int(maxOrder.Int64) + 1, nil
}
