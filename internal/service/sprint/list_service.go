package sprint

import (
	"context"
	"errors"

	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
)

// ListService 看板列服务接口
type ListService interface {
	// CreateList 在看板末尾新建列
	CreateList(ctx context.Context, orgID string, req *validation.CreateList) (*database.List, error)
	UpdateList(ctx context.Context, orgID string, req *validation.UpdateList) (*database.List, error)
	// DeleteList 删除列及其卡片
	DeleteList(ctx context.Context, orgID string, req *validation.DeleteList) error
	// CopyList 复制列及其全部卡片，副本放在看板末尾
	CopyList(ctx context.Context, orgID string, req *validation.CopyList) (*database.List, error)
	// ReorderLists 在一个事务中更新列顺序
	ReorderLists(ctx context.Context, orgID string, req *validation.UpdateListOrder) ([]database.List, error)
}

func (s *sprintService) CreateList(ctx context.Context, orgID string, req *validation.CreateList) (*database.List, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if _, err := s.scopedSprint(db, orgID, req.SprintID); err != nil {
		return nil, err
	}

	list := &database.List{SprintID: req.SprintID, Title: req.Title}
	err := db.Transaction(func(tx *gorm.DB) error {
		order, err := nextOrder(tx, &database.List{}, "sprint_id", req.SprintID)
		if err != nil {
			return err
		}
		list.Order = order
		return tx.Create(list).Error
	})
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}
	return list, nil
}

func (s *sprintService) UpdateList(ctx context.Context, orgID string, req *validation.UpdateList) (*database.List, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	list, err := s.scopedList(db, orgID, req.SprintID, req.ID)
	if err != nil {
		return nil, err
	}
	if err := db.Model(list).Update("title", req.Title).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	list.Title = req.Title
	return list, nil
}

func (s *sprintService) DeleteList(ctx context.Context, orgID string, req *validation.DeleteList) error {
	if err := validation.CheckContext(ctx, req); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	if _, err := s.scopedList(db, orgID, req.SprintID, req.ID); err != nil {
		return err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", req.ID).Delete(&database.Card{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", req.ID).Delete(&database.List{}).Error
	})
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrDatabaseDelete, err)
	}
	return nil
}

func (s *sprintService) CopyList(ctx context.Context, orgID string, req *validation.CopyList) (*database.List, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	source, err := s.scopedList(db, orgID, req.SprintID, req.ID)
	if err != nil {
		return nil, err
	}

	var cards []database.Card
	if err := db.Where("list_id = ?", source.ID).Order("sort_order ASC").Find(&cards).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}

	copied := &database.List{SprintID: source.SprintID, Title: source.Title + copySuffix}
	err = db.Transaction(func(tx *gorm.DB) error {
		order, err := nextOrder(tx, &database.List{}, "sprint_id", source.SprintID)
		if err != nil {
			return err
		}
		copied.Order = order
		if err := tx.Create(copied).Error; err != nil {
			return err
		}

		for _, card := range cards {
			copied.Cards = append(copied.Cards, database.Card{
				ListID:      copied.ID,
				Title:       card.Title,
				Description: card.Description,
				Order:       card.Order,
			})
		}
		if len(copied.Cards) == 0 {
			return nil
		}
		return tx.Create(&copied.Cards).Error
	})
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}

	logger.WithFields(map[string]interface{}{
		"source_list_id": source.ID,
		"list_id":        copied.ID,
		"cards":          len(copied.Cards),
	}).Info("List copied")
	return copied, nil
}

func (s *sprintService) ReorderLists(ctx context.Context, orgID string, req *validation.UpdateListOrder) ([]database.List, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if _, err := s.scopedSprint(db, orgID, req.SprintID); err != nil {
		return nil, err
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			res := tx.Model(&database.List{}).
				Where("id = ? AND sprint_id = ?", item.ID, req.SprintID).
				Update("sort_order", item.Order)
			if res.Error != nil {
				return apperrors.WrapCode(apperrors.ErrDatabaseTransaction, res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.ErrListNotFoundError.WithDetails(item.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var lists []database.List
	if err := db.Where("sprint_id = ?", req.SprintID).Order("sort_order ASC").Find(&lists).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return lists, nil
}

// scopedList 查询属于组织内指定看板的列
func (s *sprintService) scopedList(db *gorm.DB, orgID, sprintID, listID string) (*database.List, error) {
	var list database.List
	err := db.Joins("JOIN sprints ON sprints.id = lists.sprint_id").
		Where("lists.id = ? AND lists.sprint_id = ? AND sprints.org_id = ?", listID, sprintID, orgID).
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListNotFoundError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &list, nil
}
