package router

import (
	"context"
	"fmt"

	"github.com/weiwangfds/studyhub/config"
	"github.com/weiwangfds/studyhub/internal/logger"
	"github.com/weiwangfds/studyhub/internal/service/asset"
	"github.com/weiwangfds/studyhub/internal/service/assistant"
	"github.com/weiwangfds/studyhub/internal/service/chat"
	"github.com/weiwangfds/studyhub/internal/service/identity"
	"github.com/weiwangfds/studyhub/internal/service/mail"
	"github.com/weiwangfds/studyhub/internal/service/note"
	"github.com/weiwangfds/studyhub/internal/service/oss"
	"github.com/weiwangfds/studyhub/internal/service/profile"
	"github.com/weiwangfds/studyhub/internal/service/sprint"
	"gorm.io/gorm"
)

// BuildServices 按配置创建所有业务服务
// 未配置 ai.api_key 时助手服务仍会创建，调用时返回不可用
func BuildServices(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Services, error) {
	storage, err := oss.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	var model assistant.Model
	if cfg.AI.APIKey != "" {
		gemini, err := assistant.NewGeminiModel(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return nil, fmt.Errorf("init assistant model: %w", err)
		}
		model = gemini
	} else {
		logger.Warn("ai.api_key is empty, assistant disabled")
	}

	idp := identity.New(cfg.Auth)
	mailer := mail.New(cfg.Mail)

	profiles := profile.NewProfileService(db, idp, cfg.Auth)
	return &Services{
		Profiles:    profiles,
		Tutors:      profile.NewTutorService(db, profiles, mailer, cfg.Mail.AdminEmails),
		Follows:     profile.NewFollowService(db, profiles),
		Leaderboard: profile.NewLeaderboardService(db),
		Notes:       note.NewNoteService(db, profiles),
		Sprints:     sprint.NewSprintService(db),
		Chat:        chat.NewChatService(db),
		Assistant:   assistant.NewAssistantService(model, cfg.AI),
		Assets:      asset.NewAssetService(db, storage, cfg.Storage.PathPrefix, cfg.Storage.MaxFileSize),
	}, nil
}
