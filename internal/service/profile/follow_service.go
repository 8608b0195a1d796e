package profile

import (
	"context"

	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowService 关注关系服务接口
type FollowService interface {
	// Follow 关注用户，重复关注不报错
	Follow(ctx context.Context, followerID, followingID string) error
	// Unfollow 取消关注，未关注时不报错
	Unfollow(ctx context.Context, followerID, followingID string) error
	// Followers 关注该用户的人
	Followers(ctx context.Context, userID string) ([]database.Profile, error)
	// Following 该用户关注的人
	Following(ctx context.Context, userID string) ([]database.Profile, error)
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
}

type followService struct {
	db       *gorm.DB
	profiles ProfileService
}

// NewFollowService 创建关注服务实例
func NewFollowService(db *gorm.DB, profiles ProfileService) FollowService {
	return &followService{db: db, profiles: profiles}
}

func (s *followService) Follow(ctx context.Context, followerID, followingID string) error {
	if followerID == followingID {
		return apperrors.ErrCannotFollowSelfError
	}
	if _, err := s.profiles.Get(ctx, followingID); err != nil {
		return err
	}

	follow := &database.Follow{FollowerID: followerID, FollowingID: followingID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoNothing: true,
		}).
		Create(follow).Error
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}
	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followingID string) error {
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&database.Follow{}).Error
	if err != nil {
		return apperrors.WrapCode(apperrors.ErrDatabaseDelete, err)
	}
	return nil
}

func (s *followService) Followers(ctx context.Context, userID string) ([]database.Profile, error) {
	var profiles []database.Profile
	err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = profiles.user_id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return profiles, nil
}

func (s *followService) Following(ctx context.Context, userID string) ([]database.Profile, error) {
	var profiles []database.Profile
	err := s.db.WithContext(ctx).
		Joins("JOIN follows ON follows.following_id = profiles.user_id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return profiles, nil
}

func (s *followService) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&database.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return count > 0, nil
}
