// Package chat 提供学习小组群聊的业务逻辑
// 包含群组管理、邀请码加入、成员角色和消息收发
package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatService 群聊服务接口
type ChatService interface {
	// CreateGroup 创建群组，创建者成为管理员
	CreateGroup(ctx context.Context, userID string, req *validation.CreateGroup) (*database.Group, error)

	// GetGroup 获取群组及成员，仅成员可见
	GetGroup(ctx context.Context, userID, groupID string) (*database.Group, error)

	// ListMyGroups 用户加入的所有群组
	ListMyGroups(ctx context.Context, userID string) ([]database.Group, error)

	// JoinByInvite 通过邀请码加入，已是成员时直接返回群组
	JoinByInvite(ctx context.Context, userID, inviteCode string) (*database.Group, error)

	// Leave 退出群组，群主不能退出
	Leave(ctx context.Context, userID, groupID string) error

	// RegenerateInvite 重新生成邀请码，仅管理员
	RegenerateInvite(ctx context.Context, userID, groupID string) (*database.Group, error)

	// UpdateMemberRole 修改成员角色，仅管理员，群主角色不可修改
	UpdateMemberRole(ctx context.Context, userID, groupID, memberID, role string) (*database.GroupMember, error)

	// RemoveMember 移除成员，管理员可移除任何人，协管员只能移除访客
	RemoveMember(ctx context.Context, userID, groupID, memberID string) error

	MessageService
}

type chatService struct {
	db *gorm.DB
}

// NewChatService 创建群聊服务实例
func NewChatService(db *gorm.DB) ChatService {
	logger.Info("Initializing chat service")
	return &chatService{db: db}
}

func (s *chatService) CreateGroup(ctx context.Context, userID string, req *validation.CreateGroup) (*database.Group, error) {
	if err := validation.CheckContext(ctx, req); err != nil {
		return nil, err
	}

	group := &database.Group{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		OwnerID:     userID,
		InviteCode:  uuid.NewString(),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		owner := database.GroupMember{GroupID: group.ID, UserID: userID, Role: database.MemberAdmin}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}
		group.Members = []database.GroupMember{owner}
		return nil
	})
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}

	logger.WithFields(map[string]interface{}{
		"group_id": group.ID,
		"owner_id": userID,
	}).Info("Group created")
	return group, nil
}

func (s *chatService) GetGroup(ctx context.Context, userID, groupID string) (*database.Group, error) {
	if _, err := s.membership(ctx, groupID, userID); err != nil {
		return nil, err
	}

	var group database.Group
	err := s.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ?", groupID).
		First(&group).Error
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &group, nil
}

func (s *chatService) ListMyGroups(ctx context.Context, userID string) ([]database.Group, error) {
	var groups []database.Group
	err := s.db.WithContext(ctx).
		Joins("JOIN group_members ON group_members.group_id = chat_groups.id").
		Where("group_members.user_id = ?", userID).
		Order("chat_groups.created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return groups, nil
}

func (s *chatService) JoinByInvite(ctx context.Context, userID, inviteCode string) (*database.Group, error) {
	db := s.db.WithContext(ctx)

	var group database.Group
	if err := db.Where("invite_code = ?", inviteCode).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidInviteError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}

	member := &database.GroupMember{GroupID: group.ID, UserID: userID, Role: database.MemberGuest}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "group_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member).Error
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}

	logger.WithFields(map[string]interface{}{
		"group_id": group.ID,
		"user_id":  userID,
	}).Info("Member joined group")
	return s.GetGroup(ctx, userID, group.ID)
}

func (s *chatService) Leave(ctx context.Context, userID, groupID string) error {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if group.OwnerID == userID {
		return apperrors.ErrOwnerCannotLeaveError
	}
	if _, err := s.membership(ctx, groupID, userID); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Delete(&database.GroupMember{}).Error; err != nil {
		return apperrors.WrapCode(apperrors.ErrDatabaseDelete, err)
	}
	return nil
}

func (s *chatService) RegenerateInvite(ctx context.Context, userID, groupID string) (*database.Group, error) {
	member, err := s.membership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if member.Role != database.MemberAdmin {
		return nil, apperrors.ErrForbiddenAccess.WithDetails("only group admins can regenerate the invite code")
	}

	code := uuid.NewString()
	if err := s.db.WithContext(ctx).Model(&database.Group{}).
		Where("id = ?", groupID).
		Update("invite_code", code).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	return s.findGroup(ctx, groupID)
}

func (s *chatService) UpdateMemberRole(ctx context.Context, userID, groupID, memberID, role string) (*database.GroupMember, error) {
	if err := validation.CheckContext(ctx, &validation.UpdateMemberRole{Role: role}); err != nil {
		return nil, err
	}

	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	actor, err := s.membership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if actor.Role != database.MemberAdmin {
		return nil, apperrors.ErrForbiddenAccess.WithDetails("only group admins can change roles")
	}
	if memberID == group.OwnerID {
		return nil, apperrors.ErrForbiddenAccess.WithDetails("the owner's role cannot be changed")
	}

	target, err := s.membership(ctx, groupID, memberID)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(target).Update("role", role).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	target.Role = role
	return target, nil
}

func (s *chatService) RemoveMember(ctx context.Context, userID, groupID, memberID string) error {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if memberID == group.OwnerID {
		return apperrors.ErrForbiddenAccess.WithDetails("the owner cannot be removed")
	}

	actor, err := s.membership(ctx, groupID, userID)
	if err != nil {
		return err
	}
	target, err := s.membership(ctx, groupID, memberID)
	if err != nil {
		return err
	}

	switch {
	case actor.Role == database.MemberAdmin:
	case actor.Role == database.MemberModerator && target.Role == database.MemberGuest:
	default:
		return apperrors.ErrForbiddenAccess.WithDetails("insufficient role to remove this member")
	}

	if err := s.db.WithContext(ctx).Delete(target).Error; err != nil {
		return apperrors.WrapCode(apperrors.ErrDatabaseDelete, err)
	}
	return nil
}

func (s *chatService) findGroup(ctx context.Context, groupID string) (*database.Group, error) {
	var group database.Group
	if err := s.db.WithContext(ctx).Where("id = ?", groupID).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGroupNotFoundError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &group, nil
}

// membership 返回用户在群中的成员记录
// 群不存在返回 ErrGroupNotFound，不是成员返回 ErrNotGroupMember
func (s *chatService) membership(ctx context.Context, groupID, userID string) (*database.GroupMember, error) {
	var member database.GroupMember
	err := s.db.WithContext(ctx).Where("group_id = ? AND user_id = ?", groupID, userID).First(&member).Error
	if err == nil {
		return &member, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	if _, err := s.findGroup(ctx, groupID); err != nil {
		return nil, err
	}
	return nil, apperrors.ErrNotGroupMemberError
}
