// Package profile 提供用户资料、导师入驻、关注关系和排行榜相关的业务逻辑
package profile

import (
	"context"
	"errors"

	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/database"
	apperrors "github.com/weiwangfds/studyhub/internal/errors"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/service/identity"
	"github.com/weiwangfds/studyhub/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileService 用户资料服务接口
type ProfileService interface {
	// GetOrCreate 获取用户资料，不存在时根据身份提供商的信息创建
	// 参数:
	//   userID - 身份提供商中的用户ID
	// 返回:
	//   *database.Profile - 用户资料
	//   error - 错误信息
	GetOrCreate(ctx context.Context, userID string) (*database.Profile, error)

	// Get 获取已存在的用户资料，不存在时返回 ErrProfileNotFound
	Get(ctx context.Context, userID string) (*database.Profile, error)

	// Update 修改用户资料，只更新请求中提供的字段
	Update(ctx context.Context, userID string, req *validation.UpdateProfile) (*database.Profile, error)

	// AwardXP 为用户增加积分
	AwardXP(ctx context.Context, userID string, amount int) error

	// RequireTutor 校验用户是否有导师权限
	RequireTutor(ctx context.Context, userID string) (*database.Profile, error)

	// IsAdmin 判断用户是否为管理员
	IsAdmin(ctx context.Context, userID string) bool
}

// profileService 用户资料服务实现
type profileService struct {
	db       *gorm.DB
	identity identity.Provider
	auth     config.AuthConfig
}

// NewProfileService 创建用户资料服务实例
func NewProfileService(db *gorm.DB, idp identity.Provider, auth config.AuthConfig) ProfileService {
	logger.Info("Initializing profile service")
	return &profileService{
		db:       db,
		identity: idp,
		auth:     auth,
	}
}

// GetOrCreate 获取或创建用户资料
func (s *profileService) GetOrCreate(ctx context.Context, userID string) (*database.Profile, error) {
	db := s.db.WithContext(ctx)

	var profile database.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}

	profile = database.Profile{UserID: userID, Name: userID, Role: database.RoleStudent}
	if s.auth.IsAdmin(userID) {
		profile.Role = database.RoleAdmin
	}

	// 身份提供商不可用时仍然创建资料，名称留作用户ID
	if u, lookupErr := s.identity.Lookup(ctx, userID); lookupErr != nil {
		logger.WithError(lookupErr).WithField("user_id", userID).Warn("Identity lookup failed")
	} else {
		if u.Name != "" {
			profile.Name = u.Name
		}
		profile.Email = u.Email
		profile.ImageURL = u.ImageURL
	}

	// 并发请求可能同时插入，冲突时读取已存在的记录
	if err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&profile).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseInsert, err)
	}

	var stored database.Profile
	if err := db.Where("user_id = ?", userID).First(&stored).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}

	logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"role":    stored.Role,
	}).Info("Profile created")
	return &stored, nil
}

// Get 获取用户资料
func (s *profileService) Get(ctx context.Context, userID string) (*database.Profile, error) {
	var profile database.Profile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProfileNotFoundError
		}
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseQuery, err)
	}
	return &profile, nil
}

// Update 修改用户资料
func (s *profileService) Update(ctx context.Context, userID string, req *validation.UpdateProfile) (*database.Profile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if len(updates) == 0 {
		return profile, nil
	}

	if err := s.db.WithContext(ctx).Model(profile).Updates(updates).Error; err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrDatabaseUpdate, err)
	}
	return s.Get(ctx, userID)
}

// AwardXP 增加积分
func (s *profileService) AwardXP(ctx context.Context, userID string, amount int) error {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return AddXP(s.db.WithContext(ctx), userID, amount)
}

// RequireTutor 校验导师权限
func (s *profileService) RequireTutor(ctx context.Context, userID string) (*database.Profile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !profile.IsTutor() {
		return nil, apperrors.ErrTutorRequiredError
	}
	return profile, nil
}

// IsAdmin 配置中的管理员或角色为 admin 的用户
func (s *profileService) IsAdmin(ctx context.Context, userID string) bool {
	if s.auth.IsAdmin(userID) {
		return true
	}
	var count int64
	s.db.WithContext(ctx).Model(&database.Profile{}).
		Where("user_id = ? AND role = ?", userID, database.RoleAdmin).
		Count(&count)
	return count > 0
}

// AddXP 在给定的连接或事务中为用户增加积分
// 用户资料不存在时返回 ErrProfileNotFound
func AddXP(db *gorm.DB, userID string, amount int) error {
	if amount == 0 {
		return nil
	}
	res := db.Model(&database.Profile{}).
		Where("user_id = ?", userID).
		UpdateColumn("xp", gorm.Expr("xp + ?", amount))
	if res.Error != nil {
		return apperrors.WrapCode(apperrors.ErrDatabaseUpdate, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrProfileNotFoundError
	}
	return nil
}
