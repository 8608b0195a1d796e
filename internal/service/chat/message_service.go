package chat

import (
	"context"
	"errors"
	"time"

	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
)

// 消息分页
const (
	DefaultMessageBatch = 10
	MaxMessageBatch     = 50
)

// MessagePage 一页消息和下一页游标
type MessagePage struct {
	Items      []database.Message `json:"items"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

// MessageService 消息服务接口
type MessageService interface {
	// SendMessage 发送消息，仅成员可用
	SendMessage(ctx context.Context, userID, groupID string, req *validation.SendMessage) (*database.Message, error)

	// ListMessages 从游标处开始按时间倒序返回消息
	// cursor 为上一页最后一条消息的ID，为空时从最新消息开始
	ListMessages(ctx context.Context, userID, groupID, cursor string, limit int) (*MessagePage, error)

	// EditMessage 编辑消息，仅发送者可用，已删除的消息不能编辑
	EditMessage(ctx context.Context, userID, groupID, messageID string, req *validation.EditMessage) (*database.Message, error)

	// DeleteMessage 软删除消息，发送者、管理员和协管员可用
	DeleteMessage(ctx context.Context, userID, groupID, messageID string) (*database.Message, error)
}

func (s *chatService) SendMessage(ctx context.Context, userID, groupID string, req *validation.SendMessage) (*database.Message, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}
	if _, err := s.membership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	msg := &database.Message{
		GroupID:  groupID,
		SenderID: userID,
		Content:  req.Content,
		FileURL:  req.FileURL,
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}
	return msg, nil
}

func (s *chatService) ListMessages(ctx context.Context, userID, groupID, cursor string, limit int) (*MessagePage, error) {
	if _, err := s.membership(ctx, groupID, userID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMessageBatch
	}
	if limit > MaxMessageBatch {
		limit = MaxMessageBatch
	}

	query := s.db.WithContext(ctx).Where("group_id = ?", groupID)
	if cursor != "" {
		var anchor database.Message
		if err := s.db.WithContext(ctx).Where("id = ? AND group_id = ?", cursor, groupID).First(&anchor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrMessageNotFoundError.WithDetails("invalid cursor")
			}
			return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
		}
		query = query.Where("created_at < ? OR (created_at = ? AND id < ?)", anchor.CreatedAt, anchor.CreatedAt, anchor.ID)
	}

	var messages []database.Message
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}

	page := &MessagePage{Items: messages}
	if len(messages) == limit {
		page.NextCursor = messages[len(messages)-1].ID
	}
	return page, nil
}

func (s *chatService) EditMessage(ctx context.Context, userID, groupID, messageID string, req *validation.EditMessage) (*database.Message, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}
	if _, err := s.membership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	msg, err := s.findMessage(ctx, groupID, messageID)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != userID {
		return nil, apperrors.ErrForbiddenAccess.WithDetails("only the sender can edit this message")
	}
	if msg.Deleted {
		return nil, apperrors.ErrMessageNotFoundError
	}

	if err := s.db.WithContext(ctx).Model(msg).Updates(map[string]interface{}{
		"content":    req.Content,
		"edited":     true,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	return s.findMessage(ctx, groupID, messageID)
}

func (s *chatService) DeleteMessage(ctx context.Context, userID, groupID, messageID string) (*database.Message, error) {
	member, err := s.membership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	msg, err := s.findMessage(ctx, groupID, messageID)
	if err != nil {
		return nil, err
	}
	if msg.SenderID != userID && !member.CanModerate() {
		return nil, apperrors.ErrForbiddenAccess.WithDetails("cannot delete this message")
	}

	if err := s.db.WithContext(ctx).Model(msg).Updates(map[string]interface{}{
		"content":  database.DeletedMessageContent,
		"file_url": "",
		"deleted":  true,
	}).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	return s.findMessage(ctx, groupID, messageID)
}

func (s *chatService) findMessage(ctx context.Context, groupID, messageID string) (*database.Message, error) {
	var msg database.Message
	if err := s.db.WithContext(ctx).Where("id = ? AND group_id = ?", messageID, groupID).First(&msg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMessageNotFoundError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &msg, nil
}
