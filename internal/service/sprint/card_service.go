package sprint

import (
	"context"
	"errors"

	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
)

// CardService 卡片服务接口
type CardService interface {
	// CreateCard 在列末尾新建卡片
	CreateCard(ctx context.Context, orgID string, req *validation.CreateCard) (*database.Card, error)
	// UpdateCard 修改标题或描述，未提供的字段保持不变
	UpdateCard(ctx context.Context, orgID string, req *validation.UpdateCard) (*database.Card, error)
	DeleteCard(ctx context.Context, orgID string, req *validation.DeleteCard) error
	// CopyCard 在同一列末尾复制卡片
	CopyCard(ctx context.Context, orgID string, req *validation.CopyCard) (*database.Card, error)
	// ReorderCards 更新卡片顺序，卡片可以移动到同一看板的其他列
	ReorderCards(ctx context.Context, orgID string, req *validation.UpdateCardOrder) error
}

func (s *sprintService) CreateCard(ctx context.Context, orgID string, req *validation.CreateCard) (*database.Card, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if _, err := s.scopedList(db, orgID, req.SprintID, req.ListID); err != nil {
		return nil, err
	}

	card := &database.Card{ListID: req.ListID, Title: req.Title}
	err := db.Transaction(func(tx *gorm.DB) error {
		order, err := nextOrder(tx, &database.Card{}, "list_id", req.ListID)
		if err != nil {
			return err
		}
		card.Order = order
		return tx.Create(card).Error
	})
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}
	return card, nil
}

func (s *sprintService) UpdateCard(ctx context.Context, orgID string, req *validation.UpdateCard) (*database.Card, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	card, err := s.scopedCard(db, orgID, req.SprintID, req.ID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		return card, nil
	}

	if err := db.Model(card).Updates(updates).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	return s.scopedCard(db, orgID, req.SprintID, req.ID)
}

func (s *sprintService) DeleteCard(ctx context.Context, orgID string, req *validation.DeleteCard) error {
	if err := validation.CheckContext(ctx, req); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	if _, err := s.scopedCard(db, orgID, req.SprintID, req.ID); err != nil {
		return err
	}
	if err := db.Where("id = ?", req.ID).Delete(&database.Card{}).Error; err != nil {
		return apperrors.WrapCode(apperrors.ErrDatabaseDelete, err)
	}
	return nil
}

func (s *sprintService) CopyCard(ctx context.Context, orgID string, req *validation.CopyCard) (*database.Card, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	source, err := s.scopedCard(db, orgID, req.SprintID, req.ID)
	if err != nil {
		return nil, err
	}

	copied := &database.Card{
		ListID:      source.ListID,
		Title:       source.Title + copySuffix,
		Description: source.Description,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		order, err := nextOrder(tx, &database.Card{}, "list_id", source.ListID)
		if err != nil {
			return err
		}
		copied.Order = order
		return tx.Create(copied).Error
	})
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}
	return copied, nil
}

func (s *sprintService) ReorderCards(ctx context.Context, orgID string, req *validation.UpdateCardOrder) error {
	if err := validation.CheckContext(ctx, req); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	if _, err := s.scopedSprint(db, orgID, req.SprintID); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		sprintLists := tx.Model(&database.List{}).Select("id").Where("sprint_id = ?", req.SprintID)
		for _, item := range req.Items {
			var targets int64
			if err := tx.Model(&database.List{}).
				Where("id = ? AND sprint_id = ?", item.ListID, req.SprintID).
				Count(&targets).Error; err != nil {
				return apperrors.WrapCode(apperrors.ErrDatabaseTransaction, err)
			}
			if targets == 0 {
				return apperrors.ErrListNotFoundError.WithDetails(item.ListID)
			}

			res := tx.Model(&database.Card{}).
				Where("id = ? AND list_id IN (?)", item.ID, sprintLists).
				Updates(map[string]interface{}{"list_id": item.ListID, "sort_order": item.Order})
			if res.Error != nil {
				return apperrors.WrapCode(apperrors.ErrDatabaseTransaction, res.Error)
			}
			if res.RowsAffected == 0 {
				return apperrors.ErrCardNotFoundError.WithDetails(item.ID)
			}
		}
		return nil
	})
}

// scopedCard 查询属于组织内指定看板的卡片
func (s *sprintService) scopedCard(db *gorm.DB, orgID, sprintID, cardID string) (*database.Card, error) {
	var card database.Card
	err := db.Joins("JOIN lists ON lists.id = cards.list_id").
		Joins("JOIN sprints ON sprints.id = lists.sprint_id").
		Where("cards.id = ? AND lists.sprint_id = ? AND sprints.org_id = ?", cardID, sprintID, orgID).
		First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCardNotFoundError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &card, nil
}
